package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/promptlift/cli/internal/domain"
	logger "github.com/promptlift/cli/internal/logger"
)

// UsageLedger is a bounded, append-only log of token-usage events.
// Recording is best-effort: a failing store is logged and otherwise
// ignored so usage tracking can never interrupt a completion. Reads
// degrade to empty results when the store is unreadable.
type UsageLedger struct {
	store domain.UsageStore
	mutex sync.Mutex
}

// NewUsageLedger creates a ledger over the given store
func NewUsageLedger(store domain.UsageStore) *UsageLedger {
	return &UsageLedger{store: store}
}

// Record appends a usage event. The append+trim sequence is serialized
// so concurrent completions cannot lose events under eviction.
func (l *UsageLedger) Record(ctx context.Context, event domain.TokenUsageEvent) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if err := l.store.Append(ctx, event); err != nil {
		logger.L(ctx).Warn("usage ledger append failed",
			zap.String("provider", event.Provider),
			zap.String("model", event.Model),
			zap.Error(err))
	}
}

// monthWindow returns the half-open calendar-month interval containing
// now, in now's location
func monthWindow(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

// MonthlyTotals aggregates events within the calendar month containing
// now, using a half-open interval in local time.
func (l *UsageLedger) MonthlyTotals(ctx context.Context, now time.Time) domain.MonthlyUsage {
	events := l.load(ctx)
	start, end := monthWindow(now)

	var totals domain.MonthlyUsage
	for _, event := range events {
		ts := event.Time()
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		totals.PromptTokens += event.PromptTokens
		totals.CompletionTokens += event.CompletionTokens
		totals.TotalTokens += event.TotalTokens
		totals.EventCount++
	}

	return totals
}

// MonthlyCost prices the current month's events against the given
// pricing service. Events for unpriced models contribute zero.
func (l *UsageLedger) MonthlyCost(ctx context.Context, now time.Time, pricing domain.PricingService) float64 {
	events := l.load(ctx)
	start, end := monthWindow(now)

	total := 0.0
	for _, event := range events {
		ts := event.Time()
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		_, _, cost := pricing.CalculateCost(event.Model, event.PromptTokens, event.CompletionTokens)
		total += cost
	}

	return total
}

// Recent returns the last limit events in insertion order, most recent
// last. Callers needing most-recent-first must reverse.
func (l *UsageLedger) Recent(ctx context.Context, limit int) []domain.TokenUsageEvent {
	events := l.load(ctx)

	if limit <= 0 || limit >= len(events) {
		return events
	}
	return events[len(events)-limit:]
}

func (l *UsageLedger) load(ctx context.Context) []domain.TokenUsageEvent {
	events, err := l.store.List(ctx)
	if err != nil {
		logger.L(ctx).Warn("usage ledger read failed", zap.Error(err))
		return nil
	}
	return events
}
