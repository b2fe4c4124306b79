package application

import (
	"context"
	"sync"
	"testing"

	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAnswerer struct {
	mu    sync.Mutex
	calls map[string]int
}

func (a *countingAnswerer) GetFaqAnswer(_ context.Context, key string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.calls == nil {
		a.calls = map[string]int{}
	}
	a.calls[key]++
	return "answer for " + key
}

func TestFAQBookStartsUnresolvedInCatalogOrder(t *testing.T) {
	book := NewFAQBook(&countingAnswerer{}, nil)

	entries := book.Entries()
	require.Len(t, entries, len(domain.FAQCatalog))
	for i, entry := range entries {
		assert.Equal(t, domain.FAQCatalog[i].Key, entry.Key)
		assert.False(t, entry.Resolved())
		assert.False(t, entry.Pending)
	}
}

func TestFAQBookResolvesOnce(t *testing.T) {
	answerer := &countingAnswerer{}
	book := NewFAQBook(answerer, nil)

	first, err := book.Ask(context.Background(), "shipping_time")
	require.NoError(t, err)
	second, err := book.Ask(context.Background(), "shipping_time")
	require.NoError(t, err)

	require.NotNil(t, first.Answer)
	assert.Equal(t, "answer for shipping_time", *first.Answer)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, answerer.calls["shipping_time"])
}

func TestFAQBookEntriesAreCopies(t *testing.T) {
	book := NewFAQBook(&countingAnswerer{}, nil)
	entry, err := book.Ask(context.Background(), "contact_info")
	require.NoError(t, err)

	*entry.Answer = "mutated"

	again, err := book.Ask(context.Background(), "contact_info")
	require.NoError(t, err)
	assert.Equal(t, "answer for contact_info", *again.Answer)
}

func TestFAQBookAnswersUnknownKeyWithoutCaching(t *testing.T) {
	answerer := &countingAnswerer{}
	book := NewFAQBook(answerer, nil)

	for i := 0; i < 2; i++ {
		entry, err := book.Ask(context.Background(), "warranty")
		require.NoError(t, err)
		assert.Equal(t, "warranty", entry.Key)
		require.NotNil(t, entry.Answer)
		assert.Equal(t, "answer for warranty", *entry.Answer)
	}

	assert.Equal(t, 2, answerer.calls["warranty"])
	assert.Len(t, book.Entries(), len(domain.FAQCatalog))
}

func TestFAQBookRejectsBlankKey(t *testing.T) {
	answerer := &countingAnswerer{}
	book := NewFAQBook(answerer, nil)

	_, err := book.Ask(context.Background(), "  ")
	require.ErrorIs(t, err, domain.ErrFAQNotFound)
	assert.Empty(t, answerer.calls)
}

func TestFAQBookAskAllResolvesEveryEntry(t *testing.T) {
	answerer := &countingAnswerer{}
	book := NewFAQBook(answerer, []domain.FAQQuestion{
		{Question: "A?", Key: "a"},
		{Question: "B?", Key: "b"},
		{Question: "A again?", Key: "a"},
	})

	entries := book.AskAll(context.Background())
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.True(t, entry.Resolved())
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, answerer.calls)
}

func TestFAQBookFallbackWhenLedgerUnavailable(t *testing.T) {
	client := NewKnowledgeClient(nil, nil, KnowledgeClientConfig{}, nil, nil)
	book := NewFAQBook(client, nil)

	entry, err := book.Ask(context.Background(), "payment_methods")
	require.NoError(t, err)
	require.NotNil(t, entry.Answer)
	assert.Equal(t, domain.FallbackAnswer("payment_methods"), *entry.Answer)
}
