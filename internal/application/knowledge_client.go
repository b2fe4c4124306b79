package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/bnema/primemall-cli/internal/observability"
	"github.com/bnema/primemall-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Ledger contract functions.
const (
	FunctionGetFAQAnswer    = "get_faq_answer"
	FunctionGetKnowledge    = "get_mall_knowledge"
	FunctionChat            = "chat_with_service"
	FunctionUpdateKnowledge = "update_knowledge"
)

type KnowledgeClientConfig struct {
	ContractAddress string
	ChatPolicy      RetryPolicy
	UpdatePolicy    RetryPolicy
}

// KnowledgeClient reads and writes mall knowledge on the ledger. Reads never
// fail: when the ledger cannot answer, static fallback content is returned.
type KnowledgeClient struct {
	connector   ports.LedgerConnector
	credentials CredentialSource
	cfg         KnowledgeClientConfig
	log         logrus.FieldLogger
	clock       ports.Clock
	wait        waitFunc
	newID       func() string
}

func NewKnowledgeClient(connector ports.LedgerConnector, credentials CredentialSource, cfg KnowledgeClientConfig, log logrus.FieldLogger, clock ports.Clock) *KnowledgeClient {
	if cfg.ChatPolicy == (RetryPolicy{}) {
		cfg.ChatPolicy = ChatPolicy
	}
	if cfg.UpdatePolicy == (RetryPolicy{}) {
		cfg.UpdatePolicy = UpdatePolicy
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &KnowledgeClient{
		connector:   connector,
		credentials: credentials,
		cfg:         cfg,
		log:         log.WithField("component", "knowledge_client"),
		clock:       clock,
		wait:        sleepContext,
		newID:       uuid.NewString,
	}
}

func (c *KnowledgeClient) connect(ctx context.Context) (ports.LedgerClient, error) {
	if c.connector == nil {
		return nil, domain.ErrAdapterUnavailable
	}
	if strings.TrimSpace(c.cfg.ContractAddress) == "" {
		return nil, fmt.Errorf("%w: contract address is not configured", domain.ErrAdapterUnavailable)
	}

	credential := ""
	if c.credentials != nil {
		value, err := c.credentials.Credential(ctx)
		if err != nil {
			observability.LedgerCalls.WithLabelValues("connect", observability.OutcomeError).Inc()
			return nil, fmt.Errorf("%w: %w", domain.ErrAdapterUnavailable, err)
		}
		credential = value
	}

	client, err := c.connector.Connect(ctx, credential)
	observability.LedgerCalls.WithLabelValues("connect", observability.Outcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAdapterUnavailable, err)
	}

	return client, nil
}

func (c *KnowledgeClient) read(ctx context.Context, function string, args []any) (string, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return "", err
	}

	result, err := client.ReadState(ctx, c.cfg.ContractAddress, function, args)
	observability.LedgerCalls.WithLabelValues("read", observability.Outcome(err)).Inc()
	if err != nil {
		return "", fmt.Errorf("read %s: %w", function, err)
	}

	return result, nil
}

// GetFaqAnswer returns the ledger answer for key, or the local fallback.
func (c *KnowledgeClient) GetFaqAnswer(ctx context.Context, key string) string {
	log := c.log.WithField("key", key)

	answer, err := c.read(ctx, FunctionGetFAQAnswer, []any{key})
	if err != nil {
		log.WithError(err).Warn("faq answer unavailable, using fallback")
		observability.Fallbacks.WithLabelValues("faq").Inc()
		return domain.FallbackAnswer(key)
	}
	if strings.TrimSpace(answer) == "" {
		log.Debug("empty faq answer, using fallback")
		observability.Fallbacks.WithLabelValues("faq").Inc()
		return domain.FallbackAnswer(key)
	}

	return answer
}

// GetKnowledge returns the full knowledge text, or the local fallback.
func (c *KnowledgeClient) GetKnowledge(ctx context.Context) string {
	text, err := c.read(ctx, FunctionGetKnowledge, []any{})
	if err != nil {
		c.log.WithError(err).Warn("knowledge unavailable, using fallback")
		observability.Fallbacks.WithLabelValues("knowledge").Inc()
		return domain.FallbackKnowledge
	}
	if strings.TrimSpace(text) == "" {
		c.log.Debug("empty knowledge, using fallback")
		observability.Fallbacks.WithLabelValues("knowledge").Inc()
		return domain.FallbackKnowledge
	}

	return text
}

// Sections fetches the knowledge text and splits it into titled sections.
func (c *KnowledgeClient) Sections(ctx context.Context) []domain.KnowledgeSection {
	return domain.ParseSections(c.GetKnowledge(ctx))
}

// submit sends a write and waits for its receipt to reach the policy target.
func (c *KnowledgeClient) submit(ctx context.Context, function string, args []any, policy RetryPolicy) (domain.Receipt, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return domain.Receipt{}, err
	}

	txID, err := client.Submit(ctx, c.cfg.ContractAddress, function, args)
	observability.LedgerCalls.WithLabelValues("submit", observability.Outcome(err)).Inc()
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("submit %s: %w", function, err)
	}

	log := c.log.WithFields(logrus.Fields{"function": function, "tx_id": txID})
	log.Debug("transaction submitted, awaiting confirmation")

	receipt, attempts, err := awaitConfirmation(ctx, client, txID, policy, c.wait)
	observability.ConfirmationAttempts.WithLabelValues(function).Observe(float64(attempts))
	observability.LedgerCalls.WithLabelValues("receipt", observability.Outcome(err)).Inc()
	if err != nil {
		return domain.Receipt{}, err
	}

	log.WithFields(logrus.Fields{"status": receipt.Status, "attempts": attempts}).Debug("transaction confirmed")
	return receipt, nil
}

// Chat sends message to the ledger chat function and decodes the reply. An
// error means no reply could be obtained.
func (c *KnowledgeClient) Chat(ctx context.Context, message string) (*domain.ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	receipt, err := c.submit(ctx, FunctionChat, []any{message}, c.cfg.ChatPolicy)
	if err != nil {
		c.log.WithError(err).Warn("chat failed")
		observability.ChatReplies.WithLabelValues("failed").Inc()
		return nil, err
	}

	reply := domain.DecodeReceiptReply(receipt)
	observability.ChatReplies.WithLabelValues(replyKind(reply.Intent)).Inc()
	return &reply, nil
}

// Exchange wraps Chat into a timestamped exchange record.
func (c *KnowledgeClient) Exchange(ctx context.Context, message string) (domain.ChatExchange, error) {
	reply, err := c.Chat(ctx, message)
	if err != nil {
		return domain.ChatExchange{}, err
	}

	return domain.ChatExchange{
		ID:          c.newID(),
		UserMessage: message,
		Response:    reply.Response,
		Intent:      reply.Intent,
		At:          c.clock.Now(),
	}, nil
}

// UpdateKnowledge replaces the knowledge text on the ledger. A nil error
// means the write reached the update policy's target status.
func (c *KnowledgeClient) UpdateKnowledge(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("knowledge text is empty")
	}

	if _, err := c.submit(ctx, FunctionUpdateKnowledge, []any{text}, c.cfg.UpdatePolicy); err != nil {
		c.log.WithError(err).Warn("knowledge update failed")
		return err
	}

	return nil
}

func replyKind(intent domain.Intent) string {
	switch intent {
	case domain.IntentRawResponse, domain.IntentMessageReceived:
		return string(intent)
	default:
		return "structured"
	}
}
