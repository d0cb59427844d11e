package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/promptlift/cli/internal/domain"
	storage "github.com/promptlift/cli/internal/infra/storage"
	logger "github.com/promptlift/cli/internal/logger"
)

// fakeProvider records the requests it receives and replies with a
// canned completion
type fakeProvider struct {
	lastRequest domain.CompletionRequest
	content     string
	usage       *domain.ProviderUsage
	err         error
}

func (f *fakeProvider) Name() string {
	return "fake"
}

func (f *fakeProvider) Complete(ctx context.Context, req domain.CompletionRequest) (*domain.CompletionResult, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.CompletionResult{Content: f.content, Usage: f.usage}, nil
}

func newTestOrchestrator(provider domain.CompletionProvider, ledger *UsageLedger) *OptimizedCompletionOrchestrator {
	return NewOrchestrator(OrchestratorConfig{
		Provider: provider,
		Ledger:   ledger,
	})
}

func TestOrchestratorRun(t *testing.T) {
	ctx := logger.NopContext()

	t.Run("optimizes before sending", func(t *testing.T) {
		provider := &fakeProvider{content: "A thorough explanation of DNS resolution, from stub resolver to authoritative server."}
		orchestrator := newTestOrchestrator(provider, nil)

		response, err := orchestrator.Run(ctx, RunRequest{
			Prompt:              "Could you please explain how DNS resolution works",
			Model:               "anthropic/claude-4",
			OptimizationEnabled: true,
			Options:             domain.OptimizationOptions{Level: domain.OptimizationMedium},
		})
		require.NoError(t, err)

		assert.NotContains(t, provider.lastRequest.Prompt, "Could you please")
		assert.Contains(t, provider.lastRequest.Prompt, "explain how DNS resolution works")
		assert.Greater(t, response.SavedTokens, 0)
		assert.Equal(t, provider.content, response.Content)
		assert.NotEmpty(t, response.RequestID)
	})

	t.Run("disabled optimization sends the prompt untouched", func(t *testing.T) {
		provider := &fakeProvider{content: "Understood. Here is a full breakdown of the request you sent over."}
		orchestrator := newTestOrchestrator(provider, nil)

		prompt := "Could you please explain how DNS resolution works"
		response, err := orchestrator.Run(ctx, RunRequest{
			Prompt: prompt,
			Model:  "anthropic/claude-4",
		})
		require.NoError(t, err)

		assert.Equal(t, prompt, provider.lastRequest.Prompt)
		assert.Zero(t, response.SavedTokens)
		assert.Empty(t, response.Methods)
	})

	t.Run("explicit system prompt bypasses assembly", func(t *testing.T) {
		provider := &fakeProvider{content: "Certainly, the migration plan follows in three ordered phases below."}
		orchestrator := newTestOrchestrator(provider, nil)

		_, err := orchestrator.Run(ctx, RunRequest{
			Prompt:       "Plan the database migration",
			Model:        "anthropic/claude-4",
			SystemPrompt: "You are a terse planning assistant.",
			Domain:       "developer",
		})
		require.NoError(t, err)

		assert.Equal(t, "You are a terse planning assistant.", provider.lastRequest.SystemPrompt)
	})

	t.Run("assembles a system prompt from the request", func(t *testing.T) {
		provider := &fakeProvider{content: "ROLE: database engineer. TASK: plan the migration across three phases."}
		orchestrator := newTestOrchestrator(provider, nil)

		_, err := orchestrator.Run(ctx, RunRequest{
			Prompt:     "Plan the database migration",
			Model:      "anthropic/claude-4",
			Domain:     "developer",
			Complexity: "expert",
		})
		require.NoError(t, err)

		assert.Contains(t, provider.lastRequest.SystemPrompt, "specialized in developer work")
	})

	t.Run("provider failure surfaces as a categorized error", func(t *testing.T) {
		provider := &fakeProvider{err: errors.New("429 too many requests")}
		orchestrator := newTestOrchestrator(provider, nil)

		_, err := orchestrator.Run(ctx, RunRequest{
			Prompt: "Plan the database migration",
			Model:  "anthropic/claude-4",
		})
		require.Error(t, err)

		var pe *domain.ProviderError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "fake", pe.Provider)
		assert.Equal(t, domain.ProviderErrorRateLimit, pe.Category)
	})
}

func TestOrchestratorUsageRecording(t *testing.T) {
	ctx := logger.NopContext()

	t.Run("provider-reported usage is recorded as exact", func(t *testing.T) {
		provider := &fakeProvider{
			content: "A reply that is comfortably long enough to avoid any shortness penalty at all.",
			usage:   &domain.ProviderUsage{PromptTokens: 11, CompletionTokens: 22, TotalTokens: 33},
		}
		ledger := NewUsageLedger(storage.NewMemoryStore())
		orchestrator := newTestOrchestrator(provider, ledger)

		response, err := orchestrator.Run(ctx, RunRequest{
			Prompt: "Summarize the incident report for the postmortem",
			Model:  "anthropic/claude-4",
		})
		require.NoError(t, err)

		require.NotNil(t, response.Usage)
		assert.False(t, response.Usage.Approximate)
		assert.Equal(t, int64(33), response.Usage.TotalTokens)

		events := ledger.Recent(ctx, 0)
		require.Len(t, events, 1)
		assert.Equal(t, int64(33), events[0].TotalTokens)
		assert.Equal(t, "fake", events[0].Provider)
	})

	t.Run("missing usage falls back to estimates", func(t *testing.T) {
		provider := &fakeProvider{content: "A reply that is comfortably long enough to avoid any shortness penalty at all."}
		ledger := NewUsageLedger(storage.NewMemoryStore())
		orchestrator := newTestOrchestrator(provider, ledger)

		response, err := orchestrator.Run(ctx, RunRequest{
			Prompt: "Summarize the incident report for the postmortem",
			Model:  "anthropic/claude-4",
		})
		require.NoError(t, err)

		require.NotNil(t, response.Usage)
		assert.True(t, response.Usage.Approximate)
		assert.Greater(t, response.Usage.PromptTokens, int64(0))
		assert.Greater(t, response.Usage.CompletionTokens, int64(0))
		assert.Equal(t, response.Usage.PromptTokens+response.Usage.CompletionTokens, response.Usage.TotalTokens)

		events := ledger.Recent(ctx, 0)
		require.Len(t, events, 1)
		assert.True(t, events[0].Approximate)
	})

	t.Run("cancelled context skips recording", func(t *testing.T) {
		provider := &fakeProvider{content: "A reply that is comfortably long enough to avoid any shortness penalty at all."}
		ledger := NewUsageLedger(storage.NewMemoryStore())
		orchestrator := newTestOrchestrator(provider, ledger)

		cancelled, cancel := context.WithCancel(logger.NopContext())
		cancel()

		_, err := orchestrator.Run(cancelled, RunRequest{
			Prompt: "Summarize the incident report",
			Model:  "anthropic/claude-4",
		})
		// The fake provider ignores cancellation, so the run succeeds
		// but nothing may be written to the ledger
		require.NoError(t, err)
		assert.Empty(t, ledger.Recent(logger.NopContext(), 0))
	})
}

func TestRoundTripQualityScore(t *testing.T) {
	longResponse := "A reply that is comfortably long enough to avoid any shortness penalty at all."

	tests := []struct {
		name             string
		original         string
		optimized        string
		response         string
		savingPercentage float64
		want             int
	}{
		{
			name:      "clean round trip",
			original:  "Summarize the incident",
			optimized: "Summarize the incident",
			response:  longResponse,
			want:      100,
		},
		{
			name:             "preserved action words reward",
			original:         "Write and explain the migration plan",
			optimized:        "Write and explain the migration plan",
			response:         longResponse,
			savingPercentage: 10,
			want:             110,
		},
		{
			name:             "lost action word earns nothing",
			original:         "Write the migration plan",
			optimized:        "the migration plan",
			response:         longResponse,
			savingPercentage: 10,
			want:             100,
		},
		{
			name:             "over-compression penalized",
			original:         "Summarize the incident",
			optimized:        "incident",
			response:         longResponse,
			savingPercentage: 85,
			want:             70,
		},
		{
			name:             "moderate compression penalized less",
			original:         "Summarize the incident",
			optimized:        "incident",
			response:         longResponse,
			savingPercentage: 65,
			want:             85,
		},
		{
			name:     "short response penalized",
			original: "Summarize the incident",
			response: "Done.",
			want:     80,
		},
		{
			name:     "apologetic response penalized",
			original: "Summarize the incident",
			response: "Sorry, I cannot summarize the incident without more detail from you here.",
			want:     85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundTripQualityScore(tt.original, tt.optimized, tt.response, tt.savingPercentage)
			assert.Equal(t, tt.want, got)
		})
	}
}
