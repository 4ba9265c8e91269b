package config

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CostDecimals is the number of decimal places cost_usd is rounded to.
const CostDecimals = 6

// ModelPricing holds per-1000-token prices for a model.
type ModelPricing struct {
	PromptPer1K     float64
	CompletionPer1K float64
}

// PricingConfig holds the default token prices and per-model overrides.
type PricingConfig struct {
	PromptPer1K     float64                         `toml:"prompt_per_1k"`
	CompletionPer1K float64                         `toml:"completion_per_1k"`
	Overrides       map[string]ModelPricingOverride `toml:"overrides,omitempty"`
}

// ModelPricingOverride replaces one or both default prices for a model.
type ModelPricingOverride struct {
	PromptPer1K     *float64 `toml:"prompt_per_1k,omitempty"`
	CompletionPer1K *float64 `toml:"completion_per_1k,omitempty"`
}

// Validate rejects negative prices.
func (p PricingConfig) Validate() error {
	if p.PromptPer1K < 0 || p.CompletionPer1K < 0 {
		return fmt.Errorf("%w: pricing must be >= 0", ErrInvalid)
	}
	for name, o := range p.Overrides {
		if (o.PromptPer1K != nil && *o.PromptPer1K < 0) ||
			(o.CompletionPer1K != nil && *o.CompletionPer1K < 0) {
			return fmt.Errorf("%w: pricing override for %s must be >= 0", ErrInvalid, name)
		}
	}
	return nil
}

// LookupPricing returns the effective prices for a model.
// Models without an override use the defaults.
func (p PricingConfig) LookupPricing(model string) ModelPricing {
	mp := ModelPricing{
		PromptPer1K:     p.PromptPer1K,
		CompletionPer1K: p.CompletionPer1K,
	}
	o, ok := p.Overrides[model]
	if !ok {
		return mp
	}
	if o.PromptPer1K != nil {
		mp.PromptPer1K = *o.PromptPer1K
	}
	if o.CompletionPer1K != nil {
		mp.CompletionPer1K = *o.CompletionPer1K
	}
	return mp
}

// CalculateCost computes the estimated cost in USD for one call, rounded to
// CostDecimals places (half away from zero).
func (p PricingConfig) CalculateCost(model string, promptTokens, completionTokens int64) float64 {
	pricing := p.LookupPricing(model)

	cost := float64(promptTokens) / 1000 * pricing.PromptPer1K
	cost += float64(completionTokens) / 1000 * pricing.CompletionPer1K

	return RoundCost(cost)
}

// RoundCost rounds a USD amount to CostDecimals places.
func RoundCost(cost float64) float64 {
	return decimal.NewFromFloat(cost).Round(CostDecimals).InexactFloat64()
}
