package services

import (
	config "github.com/promptlift/cli/config"
)

// ModelPricingService resolves per-model prices from the static default
// table, with config-level custom overrides taking precedence. Unknown
// models price at 0.0 so cost math degrades to zero instead of failing.
type ModelPricingService struct {
	cfg config.PricingConfig
}

// NewPricingService creates a pricing service from the pricing config
func NewPricingService(cfg config.PricingConfig) *ModelPricingService {
	return &ModelPricingService{cfg: cfg}
}

// GetInputPrice returns the input price per million tokens for a model
func (s *ModelPricingService) GetInputPrice(model string) float64 {
	if custom, ok := s.cfg.CustomPrices[model]; ok {
		return custom.InputPricePerMToken
	}
	if pricing, ok := config.DefaultModelPricing[model]; ok {
		return pricing.InputPricePerMToken
	}
	return 0.0
}

// GetOutputPrice returns the output price per million tokens for a model
func (s *ModelPricingService) GetOutputPrice(model string) float64 {
	if custom, ok := s.cfg.CustomPrices[model]; ok {
		return custom.OutputPricePerMToken
	}
	if pricing, ok := config.DefaultModelPricing[model]; ok {
		return pricing.OutputPricePerMToken
	}
	return 0.0
}

// CalculateCost computes the cost for the given token counts
func (s *ModelPricingService) CalculateCost(model string, inputTokens, outputTokens int64) (inputCost, outputCost, totalCost float64) {
	inputCost = float64(inputTokens) * s.GetInputPrice(model) / 1_000_000
	outputCost = float64(outputTokens) * s.GetOutputPrice(model) / 1_000_000
	return inputCost, outputCost, inputCost + outputCost
}

// AverageInputPrice returns the mean input price per million tokens
// across the default pricing table. Used for batch estimates where no
// single model applies.
func AverageInputPrice() float64 {
	if len(config.DefaultModelPricing) == 0 {
		return 0.0
	}

	total := 0.0
	for _, pricing := range config.DefaultModelPricing {
		total += pricing.InputPricePerMToken
	}
	return total / float64(len(config.DefaultModelPricing))
}
