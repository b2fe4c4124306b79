package domain

import (
	"strings"

	"github.com/tidwall/gjson"
)

type TxID string

type TxStatus string

const (
	TxStatusPending      TxStatus = "PENDING"
	TxStatusProposing    TxStatus = "PROPOSING"
	TxStatusCommitting   TxStatus = "COMMITTING"
	TxStatusRevealing    TxStatus = "REVEALING"
	TxStatusAccepted     TxStatus = "ACCEPTED"
	TxStatusFinalized    TxStatus = "FINALIZED"
	TxStatusUndetermined TxStatus = "UNDETERMINED"
	TxStatusCanceled     TxStatus = "CANCELED"
)

var txStatusRank = map[TxStatus]int{
	TxStatusPending:    1,
	TxStatusProposing:  2,
	TxStatusCommitting: 3,
	TxStatusRevealing:  4,
	TxStatusAccepted:   5,
	TxStatusFinalized:  6,
}

func NormalizeTxStatus(raw string) TxStatus {
	return TxStatus(strings.ToUpper(strings.TrimSpace(raw)))
}

// Reaches reports whether s is target or a later status on the happy path.
func (s TxStatus) Reaches(target TxStatus) bool {
	if s == target {
		return true
	}

	got, ok := txStatusRank[s]
	if !ok {
		return false
	}
	want, ok := txStatusRank[target]
	if !ok {
		return false
	}

	return got >= want
}

// Failed reports whether the transaction can no longer reach any target.
func (s TxStatus) Failed() bool {
	return s == TxStatusCanceled || s == TxStatusUndetermined
}

// Receipt is the confirmation record of a transaction as returned by the
// ledger. Body holds the raw JSON document.
type Receipt struct {
	TxID   TxID
	Status TxStatus
	Body   []byte
}

const (
	leaderReadablePath = "consensus_data.leader_receipt.0.result.payload.readable"
	flatResultPath     = "result"
)

// Payload extracts the human-readable result of the transaction. The leader
// receipt of the consensus data wins over a flat result field.
func (r Receipt) Payload() (string, bool) {
	if len(r.Body) == 0 || !gjson.ValidBytes(r.Body) {
		return "", false
	}

	for _, path := range []string{leaderReadablePath, flatResultPath} {
		if text, ok := payloadText(gjson.GetBytes(r.Body, path)); ok {
			return text, true
		}
	}

	return "", false
}

func payloadText(res gjson.Result) (string, bool) {
	switch res.Type {
	case gjson.String:
		return res.Str, res.Str != ""
	case gjson.JSON:
		return res.Raw, true
	default:
		return "", false
	}
}
