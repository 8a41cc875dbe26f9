package core

import "testing"

func TestSamplingConfig_ValidateDefaults(t *testing.T) {
	if err := DefaultSamplingConfig().Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestSamplingConfig_ZeroDepthAllowed(t *testing.T) {
	// Depth 0 is a valid configuration: emission and direct lighting only
	config := DefaultSamplingConfig()
	config.MaxDepth = 0
	if err := config.Validate(); err != nil {
		t.Errorf("max depth 0 should validate, got %v", err)
	}
}

func TestSamplingConfig_ValidateRejectsBadValues(t *testing.T) {
	base := DefaultSamplingConfig()

	cases := []struct {
		name   string
		mutate func(*SamplingConfig)
	}{
		{"zero samples", func(c *SamplingConfig) { c.SamplesPerPixel = 0 }},
		{"negative samples", func(c *SamplingConfig) { c.SamplesPerPixel = -5 }},
		{"zero min samples", func(c *SamplingConfig) { c.MinSamplesPerPixel = 0 }},
		{"min exceeds max", func(c *SamplingConfig) { c.MinSamplesPerPixel = c.SamplesPerPixel + 1 }},
		{"negative depth", func(c *SamplingConfig) { c.MaxDepth = -1 }},
		{"zero width", func(c *SamplingConfig) { c.Width = 0 }},
		{"negative threshold", func(c *SamplingConfig) { c.VarianceThreshold = -0.1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := base
			tc.mutate(&config)
			if err := config.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
