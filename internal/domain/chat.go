package domain

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

type Intent string

const (
	IntentMessageReceived Intent = "message_received"
	IntentGeneralInquiry  Intent = "general_inquiry"
	IntentRawResponse     Intent = "raw_response"
)

const (
	AcknowledgementResponse = "Your message has been received. Our team will respond shortly."
	DefaultChatResponse     = "Thank you for your message. Our team will assist you shortly."
)

type ChatReply struct {
	Response string
	Intent   Intent
}

// ChatExchange is one message and the reply shown for it. It is not
// persisted.
type ChatExchange struct {
	ID          string    `json:"id"`
	UserMessage string    `json:"user_message"`
	Response    string    `json:"response"`
	Intent      Intent    `json:"intent"`
	At          time.Time `json:"at"`
}

// DecodeStep is one pure transformation of a receipt payload.
type DecodeStep func(string) string

// PayloadSteps normalize a payload before it is parsed. Order matters.
var PayloadSteps = []DecodeStep{
	StripWrappingQuotes,
	UnescapePayload,
	StripCodeFence,
}

var (
	leadingFence  = regexp.MustCompile("^```(?:json)?\\n?")
	trailingFence = regexp.MustCompile("\\n?```$")
)

func StripWrappingQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}

	return s
}

func UnescapePayload(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	return strings.ReplaceAll(s, `\\`, `\`)
}

func StripCodeFence(s string) string {
	s = leadingFence.ReplaceAllString(s, "")
	return trailingFence.ReplaceAllString(s, "")
}

func NormalizePayload(s string) string {
	for _, step := range PayloadSteps {
		s = step(s)
	}

	return s
}

// DecodeReply turns a normalized-or-raw payload into a reply. Payloads that
// are not JSON are returned verbatim with the raw_response intent.
func DecodeReply(payload string) ChatReply {
	normalized := NormalizePayload(payload)

	var parsed any
	// A bare null decodes like free text.
	if err := json.Unmarshal([]byte(normalized), &parsed); err != nil || parsed == nil {
		return ChatReply{Response: normalized, Intent: IntentRawResponse}
	}

	reply := ChatReply{Response: DefaultChatResponse, Intent: IntentGeneralInquiry}
	fields, ok := parsed.(map[string]any)
	if !ok {
		return reply
	}

	if response, ok := fields["response"].(string); ok && response != "" {
		reply.Response = response
	}
	if intent, ok := fields["intent"].(string); ok && intent != "" {
		reply.Intent = Intent(intent)
	}

	return reply
}

// DecodeReceiptReply extracts and decodes the reply carried by a confirmed
// receipt. A receipt without payload yields a plain acknowledgement.
func DecodeReceiptReply(receipt Receipt) ChatReply {
	payload, ok := receipt.Payload()
	if !ok {
		return ChatReply{Response: AcknowledgementResponse, Intent: IntentMessageReceived}
	}

	return DecodeReply(payload)
}
