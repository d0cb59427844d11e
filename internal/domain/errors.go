package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ProviderErrorCategory classifies completion-provider failures so a
// caller can present an actionable message and decide whether to retry.
type ProviderErrorCategory string

const (
	ProviderErrorAuth         ProviderErrorCategory = "auth"
	ProviderErrorRateLimit    ProviderErrorCategory = "rate_limit"
	ProviderErrorServer       ProviderErrorCategory = "server"
	ProviderErrorConnectivity ProviderErrorCategory = "connectivity"
)

// ProviderError wraps a completion-provider failure with the provider
// name and a failure category. This is the one error class the
// optimization pipeline surfaces to its caller.
type ProviderError struct {
	Provider string
	Category ProviderErrorCategory
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("completion provider %s failed (%s): %v", e.Provider, e.Category, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// WrapProviderError categorizes err and wraps it as a ProviderError.
// Already-wrapped errors pass through unchanged.
func WrapProviderError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}

	return &ProviderError{
		Provider: provider,
		Category: categorize(err),
		Err:      err,
	}
}

func categorize(err error) ProviderErrorCategory {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ProviderErrorConnectivity
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") ||
		strings.Contains(msg, "unauthorized") || strings.Contains(msg, "forbidden") ||
		strings.Contains(msg, "api key") || strings.Contains(msg, "authentication"):
		return ProviderErrorAuth
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") || strings.Contains(msg, "quota"):
		return ProviderErrorRateLimit
	case strings.Contains(msg, "500") || strings.Contains(msg, "502") ||
		strings.Contains(msg, "503") || strings.Contains(msg, "504") ||
		strings.Contains(msg, "internal server") || strings.Contains(msg, "overloaded"):
		return ProviderErrorServer
	default:
		return ProviderErrorConnectivity
	}
}
