package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/promptlift/cli/internal/domain"
)

func testEvent(total int64) domain.TokenUsageEvent {
	return domain.TokenUsageEvent{
		Provider:         "inference-gateway",
		Model:            "anthropic/claude-4",
		PromptTokens:     total / 2,
		CompletionTokens: total - total/2,
		TotalTokens:      total,
		Timestamp:        total,
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("append and list preserve insertion order", func(t *testing.T) {
		store := NewMemoryStore()

		for i := int64(1); i <= 3; i++ {
			require.NoError(t, store.Append(ctx, testEvent(i)))
		}

		events, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, int64(1), events[0].TotalTokens)
		assert.Equal(t, int64(3), events[2].TotalTokens)
	})

	t.Run("list returns a copy", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Append(ctx, testEvent(1)))

		events, err := store.List(ctx)
		require.NoError(t, err)
		events[0].TotalTokens = 999

		fresh, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), fresh[0].TotalTokens)
	})

	t.Run("evicts oldest beyond the cap", func(t *testing.T) {
		store := NewMemoryStore()

		for i := int64(1); i <= int64(MaxEvents)+10; i++ {
			require.NoError(t, store.Append(ctx, testEvent(i)))
		}

		events, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, events, MaxEvents)
		assert.Equal(t, int64(11), events[0].TotalTokens)
		assert.Equal(t, int64(MaxEvents)+10, events[len(events)-1].TotalTokens)
	})

	t.Run("close clears retained events", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Append(ctx, testEvent(1)))
		require.NoError(t, store.Close())

		events, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("health is always fine", func(t *testing.T) {
		assert.NoError(t, NewMemoryStore().Health(ctx))
	})
}
