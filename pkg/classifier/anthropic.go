package classifier

import (
	"context"
	"errors"
	"fmt"
)

// ErrProviderNotImplemented marks a configured provider that has no working
// integration yet. The facade counts these separately from transport failures.
var ErrProviderNotImplemented = errors.New("classifier provider not implemented")

// AnthropicConfig holds the settings for the Anthropic provider.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// AnthropicClassifier reserves the provider slot until an SDK integration
// lands. Every request it receives is served by the offline classifier
// instead.
type AnthropicClassifier struct {
	model string
}

// NewAnthropicClassifier validates the configuration for the reserved
// Anthropic slot.
func NewAnthropicClassifier(cfg AnthropicConfig) (*AnthropicClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}

	return &AnthropicClassifier{model: cfg.Model}, nil
}

func (a *AnthropicClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	return Classification{}, fmt.Errorf("anthropic (%s): %w", a.model, ErrProviderNotImplemented)
}
