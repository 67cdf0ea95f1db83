package catalog

// Seed returns the built-in offering set used when no catalog tree is
// configured. Pricing is per 1M tokens, current as of January 2026.
func Seed() []Offering {
	return []Offering{
		{
			Provider:                "OpenAI",
			Name:                    "gpt-4o",
			DisplayName:             "GPT-4o",
			InputCostPer1M:          2.50,
			OutputCostPer1M:         10.0,
			ContextWindow:           128000,
			MaxOutputTokens:         16384,
			SupportsFunctionCalling: true,
			SupportsVision:          true,
			SupportsJSONMode:        true,
		},
		{
			Provider:                "OpenAI",
			Name:                    "gpt-4o-mini",
			DisplayName:             "GPT-4o mini",
			InputCostPer1M:          0.15,
			OutputCostPer1M:         0.60,
			ContextWindow:           128000,
			MaxOutputTokens:         16384,
			SupportsFunctionCalling: true,
			SupportsVision:          true,
			SupportsJSONMode:        true,
		},
		{
			Provider:                "OpenAI",
			Name:                    "gpt-4-turbo",
			DisplayName:             "GPT-4 Turbo",
			InputCostPer1M:          10.0,
			OutputCostPer1M:         30.0,
			ContextWindow:           128000,
			MaxOutputTokens:         4096,
			SupportsFunctionCalling: true,
			SupportsVision:          true,
			SupportsJSONMode:        true,
		},
		{
			Provider:                "OpenAI",
			Name:                    "gpt-4",
			DisplayName:             "GPT-4",
			InputCostPer1M:          30.0,
			OutputCostPer1M:         60.0,
			ContextWindow:           8192,
			MaxOutputTokens:         8192,
			SupportsFunctionCalling: true,
			SupportsJSONMode:        true,
		},
		{
			Provider:                "OpenAI",
			Name:                    "gpt-3.5-turbo",
			DisplayName:             "GPT-3.5 Turbo",
			InputCostPer1M:          0.50,
			OutputCostPer1M:         1.50,
			ContextWindow:           16385,
			MaxOutputTokens:         4096,
			SupportsFunctionCalling: true,
			SupportsJSONMode:        true,
		},
		{
			Provider:        "OpenAI",
			Name:            "text-embedding-3-small",
			DisplayName:     "Text Embedding 3 Small",
			InputCostPer1M:  0.02,
			OutputCostPer1M: 0.0,
			ContextWindow:   8191,
		},
		{
			Provider:        "OpenAI",
			Name:            "text-embedding-3-large",
			DisplayName:     "Text Embedding 3 Large",
			InputCostPer1M:  0.13,
			OutputCostPer1M: 0.0,
			ContextWindow:   8191,
		},
	}
}
