package config

// PricingConfig holds configuration for model pricing and cost tracking.
type PricingConfig struct {
	Enabled      bool                     `yaml:"enabled" mapstructure:"enabled"`
	Currency     string                   `yaml:"currency" mapstructure:"currency"`
	CustomPrices map[string]CustomPricing `yaml:"custom_prices" mapstructure:"custom_prices"`
}

// CustomPricing allows users to override default pricing for specific models.
type CustomPricing struct {
	InputPricePerMToken  float64 `yaml:"input_price_per_mtoken" mapstructure:"input_price_per_mtoken"`
	OutputPricePerMToken float64 `yaml:"output_price_per_mtoken" mapstructure:"output_price_per_mtoken"`
}

// ModelPricing represents pricing information for a specific model.
// Prices are per million tokens to align with common pricing conventions.
type ModelPricing struct {
	Provider             string
	Model                string
	InputPricePerMToken  float64
	OutputPricePerMToken float64
	Currency             string
}

// GetDefaultPricingConfig returns the default pricing configuration.
func GetDefaultPricingConfig() PricingConfig {
	return PricingConfig{
		Enabled:      true,
		Currency:     "USD",
		CustomPrices: make(map[string]CustomPricing),
	}
}

// DefaultModelPricing contains hardcoded pricing for common models.
// Prices are based on publicly available pricing as of December 2024.
// Users can override these in their config files.
var DefaultModelPricing = map[string]ModelPricing{
	"anthropic/claude-sonnet-4-20250514": {
		Provider:             "anthropic",
		Model:                "claude-sonnet-4-20250514",
		InputPricePerMToken:  3.00,
		OutputPricePerMToken: 15.00,
		Currency:             "USD",
	},
	"anthropic/claude-3-5-haiku-20241022": {
		Provider:             "anthropic",
		Model:                "claude-3-5-haiku-20241022",
		InputPricePerMToken:  0.80,
		OutputPricePerMToken: 4.00,
		Currency:             "USD",
	},
	"anthropic/claude-3-haiku-20240307": {
		Provider:             "anthropic",
		Model:                "claude-3-haiku-20240307",
		InputPricePerMToken:  0.25,
		OutputPricePerMToken: 1.25,
		Currency:             "USD",
	},
	"anthropic/claude-3-opus-20240229": {
		Provider:             "anthropic",
		Model:                "claude-3-opus-20240229",
		InputPricePerMToken:  15.00,
		OutputPricePerMToken: 75.00,
		Currency:             "USD",
	},
	"openai/gpt-4o": {
		Provider:             "openai",
		Model:                "gpt-4o",
		InputPricePerMToken:  2.50,
		OutputPricePerMToken: 10.00,
		Currency:             "USD",
	},
	"openai/gpt-4o-mini": {
		Provider:             "openai",
		Model:                "gpt-4o-mini",
		InputPricePerMToken:  0.150,
		OutputPricePerMToken: 0.600,
		Currency:             "USD",
	},
	"openai/gpt-4-turbo": {
		Provider:             "openai",
		Model:                "gpt-4-turbo",
		InputPricePerMToken:  10.00,
		OutputPricePerMToken: 30.00,
		Currency:             "USD",
	},
	"openai/gpt-3.5-turbo": {
		Provider:             "openai",
		Model:                "gpt-3.5-turbo",
		InputPricePerMToken:  0.50,
		OutputPricePerMToken: 1.50,
		Currency:             "USD",
	},
	"openai/o1": {
		Provider:             "openai",
		Model:                "o1",
		InputPricePerMToken:  15.00,
		OutputPricePerMToken: 60.00,
		Currency:             "USD",
	},
	"openai/o1-mini": {
		Provider:             "openai",
		Model:                "o1-mini",
		InputPricePerMToken:  3.00,
		OutputPricePerMToken: 12.00,
		Currency:             "USD",
	},
	"google/gemini-1.5-pro": {
		Provider:             "google",
		Model:                "gemini-1.5-pro",
		InputPricePerMToken:  1.25,
		OutputPricePerMToken: 5.00,
		Currency:             "USD",
	},
	"google/gemini-1.5-flash": {
		Provider:             "google",
		Model:                "gemini-1.5-flash",
		InputPricePerMToken:  0.075,
		OutputPricePerMToken: 0.30,
		Currency:             "USD",
	},
	"deepseek/deepseek-chat": {
		Provider:             "deepseek",
		Model:                "deepseek-chat",
		InputPricePerMToken:  0.28,
		OutputPricePerMToken: 0.42,
		Currency:             "USD",
	},
	"deepseek/deepseek-reasoner": {
		Provider:             "deepseek",
		Model:                "deepseek-reasoner",
		InputPricePerMToken:  0.28,
		OutputPricePerMToken: 0.42,
		Currency:             "USD",
	},
	"groq/llama-3.3-70b-versatile": {
		Provider:             "groq",
		Model:                "llama-3.3-70b-versatile",
		InputPricePerMToken:  0.59,
		OutputPricePerMToken: 0.79,
		Currency:             "USD",
	},
	"groq/llama-3.1-8b-instant": {
		Provider:             "groq",
		Model:                "llama-3.1-8b-instant",
		InputPricePerMToken:  0.05,
		OutputPricePerMToken: 0.08,
		Currency:             "USD",
	},
	"mistral/mistral-large": {
		Provider:             "mistral",
		Model:                "mistral-large",
		InputPricePerMToken:  2.00,
		OutputPricePerMToken: 6.00,
		Currency:             "USD",
	},
	"mistral/mistral-small": {
		Provider:             "mistral",
		Model:                "mistral-small",
		InputPricePerMToken:  0.20,
		OutputPricePerMToken: 0.60,
		Currency:             "USD",
	},
	"cohere/command-r-plus": {
		Provider:             "cohere",
		Model:                "command-r-plus",
		InputPricePerMToken:  2.50,
		OutputPricePerMToken: 10.00,
		Currency:             "USD",
	},
	"cohere/command-r": {
		Provider:             "cohere",
		Model:                "command-r",
		InputPricePerMToken:  0.50,
		OutputPricePerMToken: 1.50,
		Currency:             "USD",
	},
	"ollama/llama3.2": {
		Provider:             "ollama",
		Model:                "llama3.2",
		InputPricePerMToken:  0.0,
		OutputPricePerMToken: 0.0,
		Currency:             "USD",
	},
	"ollama/mistral": {
		Provider:             "ollama",
		Model:                "mistral",
		InputPricePerMToken:  0.0,
		OutputPricePerMToken: 0.0,
		Currency:             "USD",
	},
}
