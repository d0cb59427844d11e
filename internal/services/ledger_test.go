package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/promptlift/cli/config"
	domain "github.com/promptlift/cli/internal/domain"
	storage "github.com/promptlift/cli/internal/infra/storage"
	logger "github.com/promptlift/cli/internal/logger"
)

type failingStore struct {
	appendErr error
	listErr   error
}

func (f *failingStore) Append(ctx context.Context, event domain.TokenUsageEvent) error {
	return f.appendErr
}

func (f *failingStore) List(ctx context.Context) ([]domain.TokenUsageEvent, error) {
	return nil, f.listErr
}

func (f *failingStore) Close() error { return nil }

func (f *failingStore) Health(ctx context.Context) error { return nil }

func usageEvent(at time.Time, total int64) domain.TokenUsageEvent {
	return domain.TokenUsageEvent{
		Provider:         "inference-gateway",
		Model:            "anthropic/claude-4",
		PromptTokens:     total / 2,
		CompletionTokens: total - total/2,
		TotalTokens:      total,
		Timestamp:        at.UnixMilli(),
	}
}

func TestUsageLedgerRecord(t *testing.T) {
	t.Run("retains events in insertion order", func(t *testing.T) {
		ledger := NewUsageLedger(storage.NewMemoryStore())
		ctx := logger.NopContext()
		now := time.Now()

		for i := int64(1); i <= 3; i++ {
			ledger.Record(ctx, usageEvent(now, i))
		}

		events := ledger.Recent(ctx, 0)
		require.Len(t, events, 3)
		assert.Equal(t, int64(1), events[0].TotalTokens)
		assert.Equal(t, int64(3), events[2].TotalTokens)
	})

	t.Run("evicts oldest beyond the cap", func(t *testing.T) {
		ledger := NewUsageLedger(storage.NewMemoryStore())
		ctx := logger.NopContext()
		now := time.Now()

		for i := int64(1); i <= int64(storage.MaxEvents)+1; i++ {
			ledger.Record(ctx, usageEvent(now, i))
		}

		events := ledger.Recent(ctx, 0)
		require.Len(t, events, storage.MaxEvents)
		assert.Equal(t, int64(2), events[0].TotalTokens)
		assert.Equal(t, int64(storage.MaxEvents)+1, events[len(events)-1].TotalTokens)
	})

	t.Run("store failure is logged and swallowed", func(t *testing.T) {
		ledger := NewUsageLedger(&failingStore{appendErr: errors.New("disk full")})
		ctx, logs := logger.TestContext()

		ledger.Record(ctx, usageEvent(time.Now(), 10))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "usage ledger append failed", logs.All()[0].Message)
	})
}

func TestUsageLedgerMonthlyTotals(t *testing.T) {
	ledger := NewUsageLedger(storage.NewMemoryStore())
	ctx := logger.NopContext()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	lastInstantOfMay := time.Date(2025, 5, 31, 23, 59, 59, 999_000_000, time.UTC)
	firstInstantOfJune := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	lastInstantOfJune := time.Date(2025, 6, 30, 23, 59, 59, 999_000_000, time.UTC)
	firstInstantOfJuly := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	ledger.Record(ctx, usageEvent(lastInstantOfMay, 100))
	ledger.Record(ctx, usageEvent(firstInstantOfJune, 10))
	ledger.Record(ctx, usageEvent(now, 20))
	ledger.Record(ctx, usageEvent(lastInstantOfJune, 40))
	ledger.Record(ctx, usageEvent(firstInstantOfJuly, 1000))

	totals := ledger.MonthlyTotals(ctx, now)

	assert.Equal(t, 3, totals.EventCount)
	assert.Equal(t, int64(70), totals.TotalTokens)
	assert.Equal(t, totals.TotalTokens, totals.PromptTokens+totals.CompletionTokens)
}

func TestUsageLedgerMonthlyCost(t *testing.T) {
	ledger := NewUsageLedger(storage.NewMemoryStore())
	ctx := logger.NopContext()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cfg := config.GetDefaultPricingConfig()
	cfg.CustomPrices["anthropic/claude-4"] = config.CustomPricing{
		InputPricePerMToken:  2.00,
		OutputPricePerMToken: 10.00,
	}
	pricing := NewPricingService(cfg)

	ledger.Record(ctx, usageEvent(now, 1_000_000))
	ledger.Record(ctx, usageEvent(now.AddDate(0, -1, 0), 1_000_000))

	unpriced := usageEvent(now, 2_000_000)
	unpriced.Model = "acme/imaginary-model"
	ledger.Record(ctx, unpriced)

	// 500k prompt tokens at $2/M plus 500k completion tokens at $10/M;
	// the prior-month and unpriced events contribute nothing
	assert.InDelta(t, 6.0, ledger.MonthlyCost(ctx, now, pricing), 1e-9)
}

func TestUsageLedgerRecent(t *testing.T) {
	ledger := NewUsageLedger(storage.NewMemoryStore())
	ctx := logger.NopContext()
	now := time.Now()

	for i := int64(1); i <= 5; i++ {
		ledger.Record(ctx, usageEvent(now, i))
	}

	tests := []struct {
		name      string
		limit     int
		wantLen   int
		wantFirst int64
	}{
		{name: "tail of the log", limit: 2, wantLen: 2, wantFirst: 4},
		{name: "zero limit returns all", limit: 0, wantLen: 5, wantFirst: 1},
		{name: "negative limit returns all", limit: -1, wantLen: 5, wantFirst: 1},
		{name: "limit beyond length returns all", limit: 10, wantLen: 5, wantFirst: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := ledger.Recent(ctx, tt.limit)
			require.Len(t, events, tt.wantLen)
			assert.Equal(t, tt.wantFirst, events[0].TotalTokens)
		})
	}
}

func TestUsageLedgerReadDegradation(t *testing.T) {
	ledger := NewUsageLedger(&failingStore{listErr: errors.New("corrupt")})
	ctx, logs := logger.TestContext()

	totals := ledger.MonthlyTotals(ctx, time.Now())
	assert.Zero(t, totals.EventCount)
	assert.Empty(t, ledger.Recent(ctx, 5))
	assert.GreaterOrEqual(t, logs.Len(), 1)
}
