package catalog

import "strings"

// Offering represents one priced, capability-tagged model SKU from a provider.
// Fields match the catalog YAML schema exactly.
type Offering struct {
	Provider                string  `yaml:"provider" json:"provider"`
	Name                    string  `yaml:"name" json:"model_name"`
	DisplayName             string  `yaml:"display_name" json:"display_name"`
	InputCostPer1M          float64 `yaml:"input_cost_per_1m" json:"input_cost_per_1m_tokens"`
	OutputCostPer1M         float64 `yaml:"output_cost_per_1m" json:"output_cost_per_1m_tokens"`
	ContextWindow           int     `yaml:"context_window" json:"context_window"`
	MaxOutputTokens         int     `yaml:"max_output_tokens,omitempty" json:"max_output_tokens,omitempty"`
	SupportsFunctionCalling bool    `yaml:"supports_function_calling" json:"supports_function_calling"`
	SupportsVision          bool    `yaml:"supports_vision" json:"supports_vision"`
	SupportsJSONMode        bool    `yaml:"supports_json_mode" json:"supports_json_mode"`
	LastUpdated             string  `yaml:"last_updated,omitempty" json:"last_updated,omitempty"`
}

// Key returns the catalog-unique identifier for the offering.
func (o Offering) Key() string {
	return o.Provider + "/" + o.Name
}

// CombinedCostPer1M is the cost proxy used for affordability comparisons.
func (o Offering) CombinedCostPer1M() float64 {
	return o.InputCostPer1M + o.OutputCostPer1M
}

// ProviderInfo represents a provider.yaml file at the root of a provider directory.
type ProviderInfo struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	PricingURL  string `yaml:"pricing_url,omitempty"`
}

// MatchesName reports whether a free-form model identifier resolves to this
// offering: case-insensitive exact match first, substring match second.
func (o Offering) MatchesName(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	name := strings.ToLower(o.Name)
	return name == q || strings.Contains(name, q)
}
