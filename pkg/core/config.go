package core

import "fmt"

// SamplingConfig holds the per-frame rendering parameters
type SamplingConfig struct {
	Width              int     // Image width in pixels
	Height             int     // Image height in pixels
	SamplesPerPixel    int     // Hard cap on samples per pixel
	MinSamplesPerPixel int     // Floor before adaptive stopping is permitted
	MaxDepth           int     // Maximum ray bounce depth; 0 gathers emission and direct light only
	VarianceThreshold  float64 // Standard error threshold for adaptive stopping
}

// DefaultSamplingConfig returns the values used by the sample scenes
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:              400,
		Height:             225,
		SamplesPerPixel:    64,
		MinSamplesPerPixel: 32,
		MaxDepth:           32,
		VarianceThreshold:  0.05,
	}
}

// Validate checks the configuration before any rendering work begins.
// Bad values fail here, never mid-frame.
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MinSamplesPerPixel <= 0 {
		return fmt.Errorf("minimum samples per pixel must be positive, got %d", c.MinSamplesPerPixel)
	}
	if c.MinSamplesPerPixel > c.SamplesPerPixel {
		return fmt.Errorf("minimum samples per pixel (%d) exceeds samples per pixel (%d)",
			c.MinSamplesPerPixel, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must be non-negative, got %d", c.MaxDepth)
	}
	if c.VarianceThreshold < 0 {
		return fmt.Errorf("variance threshold must be non-negative, got %g", c.VarianceThreshold)
	}
	return nil
}
