package application

import (
	"context"
	"strings"
	"sync"

	"github.com/bnema/primemall-cli/internal/domain"
)

type FAQAnswerer interface {
	GetFaqAnswer(ctx context.Context, key string) string
}

// FAQBook lazily resolves and caches the answer of each known question. An
// answer, once resolved, is never fetched again.
type FAQBook struct {
	answerer FAQAnswerer

	mu      sync.Mutex
	entries []domain.FaqEntry
	index   map[string]int
}

func NewFAQBook(answerer FAQAnswerer, questions []domain.FAQQuestion) *FAQBook {
	if questions == nil {
		questions = domain.FAQCatalog
	}

	book := &FAQBook{
		answerer: answerer,
		entries:  make([]domain.FaqEntry, 0, len(questions)),
		index:    make(map[string]int, len(questions)),
	}
	for _, q := range questions {
		if _, dup := book.index[q.Key]; dup {
			continue
		}
		book.index[q.Key] = len(book.entries)
		book.entries = append(book.entries, domain.FaqEntry{Question: q.Question, Key: q.Key})
	}

	return book
}

// Entries returns a copy of every entry in catalog order.
func (b *FAQBook) Entries() []domain.FaqEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.FaqEntry, len(b.entries))
	for i, entry := range b.entries {
		out[i] = copyEntry(entry)
	}

	return out
}

// Ask resolves the answer for key, fetching it on first use. Keys outside the
// catalog are answered on every call and never cached, so the answerer's
// catch-all support answer reaches the caller.
func (b *FAQBook) Ask(ctx context.Context, key string) (domain.FaqEntry, error) {
	if strings.TrimSpace(key) == "" {
		return domain.FaqEntry{}, domain.ErrFAQNotFound
	}

	b.mu.Lock()
	i, ok := b.index[key]
	if !ok {
		b.mu.Unlock()
		answer := b.answerer.GetFaqAnswer(ctx, key)
		return domain.FaqEntry{Question: key, Key: key, Answer: &answer}, nil
	}
	if b.entries[i].Resolved() {
		entry := copyEntry(b.entries[i])
		b.mu.Unlock()
		return entry, nil
	}
	b.entries[i].Pending = true
	b.mu.Unlock()

	answer := b.answerer.GetFaqAnswer(ctx, key)

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.entries[i].Resolved() {
		b.entries[i].Answer = &answer
	}
	b.entries[i].Pending = false

	return copyEntry(b.entries[i]), nil
}

// AskAll resolves every entry in order.
func (b *FAQBook) AskAll(ctx context.Context) []domain.FaqEntry {
	keys := make([]string, 0, len(b.entries))
	b.mu.Lock()
	for _, entry := range b.entries {
		keys = append(keys, entry.Key)
	}
	b.mu.Unlock()

	out := make([]domain.FaqEntry, 0, len(keys))
	for _, key := range keys {
		entry, err := b.Ask(ctx, key)
		if err != nil {
			continue
		}
		out = append(out, entry)
	}

	return out
}

func copyEntry(entry domain.FaqEntry) domain.FaqEntry {
	if entry.Answer != nil {
		answer := *entry.Answer
		entry.Answer = &answer
	}

	return entry
}
