package renderer

import (
	"math"

	"github.com/doubleailes/crust-render/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamples     int     // Maximum samples allowed per pixel
	MinSamples     int     // Minimum samples taken by any pixel
	MaxSamplesUsed int     // Maximum samples actually used by any pixel
}

// merge folds another stats block into this one
func (rs *RenderStats) merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	if other.MinSamples < rs.MinSamples {
		rs.MinSamples = other.MinSamples
	}
	if other.MaxSamplesUsed > rs.MaxSamplesUsed {
		rs.MaxSamplesUsed = other.MaxSamplesUsed
	}
	if rs.TotalPixels > 0 {
		rs.AverageSamples = float64(rs.TotalSamples) / float64(rs.TotalPixels)
	}
}

// PixelStats tracks sampling statistics for a single pixel. Luminance moments
// feed the adaptive stopping test; the color accumulator feeds the image.
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for the final result
	LuminanceAccum   float64   // Luminance accumulator for convergence
	LuminanceSqAccum float64   // Luminance squared for variance
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new radiance sample. NaN and negative components are
// zeroed first so a single bad path cannot poison the accumulator.
func (ps *PixelStats) AddSample(color core.Vec3) {
	color = color.Sanitize()
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Variance returns the luminance variance of the samples so far
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount < 2 {
		return math.Inf(1)
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	meanSq := ps.LuminanceSqAccum / n
	return math.Max(0, meanSq-mean*mean)
}

// StandardError returns the standard error of the luminance mean, the
// quantity the adaptive threshold is compared against. Below two samples the
// error is unknown and reported as +Inf, so the adaptive loop always takes at
// least two samples even when MinSamplesPerPixel is 1.
func (ps *PixelStats) StandardError() float64 {
	if ps.SampleCount < 2 {
		return math.Inf(1)
	}
	return math.Sqrt(ps.Variance() / float64(ps.SampleCount))
}
