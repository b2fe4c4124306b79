// Package observability holds the Prometheus metrics of the storefront.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "primemall"

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// LedgerCalls counts ledger interactions by operation and outcome.
var LedgerCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "calls_total",
	Help:      "Ledger adapter calls by operation (connect, read, submit, receipt) and outcome.",
}, []string{"operation", "outcome"})

// ConfirmationAttempts observes how many receipt polls a write needed.
var ConfirmationAttempts = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "confirmation_attempts",
	Help:      "Receipt polls per confirmed or abandoned write.",
	Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 120},
}, []string{"function"})

// Fallbacks counts reads answered from local content.
var Fallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "knowledge",
	Name:      "fallbacks_total",
	Help:      "Reads served from static fallback content, by source (faq, knowledge).",
}, []string{"source"})

// ChatReplies counts decoded chat replies by how the payload was decoded.
var ChatReplies = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "chat",
	Name:      "replies_total",
	Help:      "Chat replies by decode kind (structured, raw_response, message_received) or failure.",
}, []string{"kind"})

// CartMutations counts funds ledger mutations.
var CartMutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "cart",
	Name:      "mutations_total",
	Help:      "Cart mutations by operation and outcome.",
}, []string{"operation", "outcome"})

// ReservedFunds is the cart total of the current session in cents.
var ReservedFunds = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "cart",
	Name:      "reserved_cents",
	Help:      "Funds currently held by the session cart, in cents.",
})

func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}

	return OutcomeOK
}
