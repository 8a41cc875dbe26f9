package renderer

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"runtime"

	"github.com/doubleailes/crust-render/pkg/core"
	"github.com/doubleailes/crust-render/pkg/integrator"
)

// Scene is what the renderer needs from a scene description: the traced
// geometry plus a camera and the sampling parameters baked into the scene
type Scene interface {
	core.Scene
	GetCamera() *Camera
	GetSamplingConfig() core.SamplingConfig
}

// Raytracer renders a scene into an image using adaptive per-pixel sampling
type Raytracer struct {
	scene      Scene
	config     core.SamplingConfig
	integrator *integrator.PathTracingIntegrator
	logger     core.Logger
	numWorkers int
}

// NewRaytracer creates a raytracer for the given scene. The sampling
// configuration is validated up front; a bad config never starts a render.
func NewRaytracer(scene Scene, logger core.Logger) (*Raytracer, error) {
	config := scene.GetSamplingConfig()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Raytracer{
		scene:      scene,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(config),
		logger:     logger,
		numWorkers: runtime.NumCPU(),
	}, nil
}

// SetNumWorkers overrides the worker count, mostly for tests
func (rt *Raytracer) SetNumWorkers(n int) {
	if n > 0 {
		rt.numWorkers = n
	}
}

// Render traces the full frame in parallel tiles and returns the image
// together with sampling statistics
func (rt *Raytracer) Render(seed int64) (*image.RGBA, RenderStats, error) {
	width, height := rt.config.Width, rt.config.Height

	pixelStats := make([][]PixelStats, height)
	for j := range pixelStats {
		pixelStats[j] = make([]PixelStats, width)
	}

	tiles := generateTiles(width, height, defaultTileSize, seed)

	pool := newWorkerPool(rt, rt.numWorkers, len(tiles))
	pool.start()
	for _, tile := range tiles {
		pool.submit(tileTask{tile: tile, pixelStats: pixelStats})
	}
	pool.finish()

	stats := RenderStats{
		MaxSamples: rt.config.SamplesPerPixel,
		MinSamples: rt.config.SamplesPerPixel,
	}
	for result := range pool.results {
		if result.err != nil {
			return nil, RenderStats{}, result.err
		}
		stats.merge(result.stats)
	}

	if rt.logger != nil {
		rt.logger.Printf("rendered %d pixels, %.1f samples/pixel average (min %d, max %d)",
			stats.TotalPixels, stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)
	}

	return rt.createImage(pixelStats), stats, nil
}

// renderBounds runs the adaptive sampling loop for every pixel inside
// bounds. Tiles never overlap, so writing to the shared stats array without
// locking is safe.
func (rt *Raytracer) renderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand) RenderStats {
	camera := rt.scene.GetCamera()
	sampler := core.NewRandomSampler(random)

	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  rt.config.SamplesPerPixel,
		MinSamples:  rt.config.SamplesPerPixel,
	}

	// One stratified jitter pattern per pixel; the pattern always covers
	// the sample cap
	samplesPerSide := int(math.Ceil(math.Sqrt(float64(rt.config.SamplesPerPixel))))

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			samplesUsed := rt.samplePixel(camera, i, j, &pixelStats[j][i], samplesPerSide, random, sampler)
			stats.TotalSamples += samplesUsed
			if samplesUsed < stats.MinSamples {
				stats.MinSamples = samplesUsed
			}
			if samplesUsed > stats.MaxSamplesUsed {
				stats.MaxSamplesUsed = samplesUsed
			}
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}

// pixelJitter builds the stratified jitter pattern for one pixel. The strata
// are visited in shuffled order: the pattern is generated row by row, and a
// pixel that converges early would otherwise only ever sample the bottom of
// its footprint. Any prefix of the shuffled sequence spreads across the whole
// footprint.
func pixelJitter(samplesPerSide int, random *rand.Rand) []core.Vec2 {
	jitter := core.GenerateCMJ2D(samplesPerSide, random)
	random.Shuffle(len(jitter), func(a, b int) {
		jitter[a], jitter[b] = jitter[b], jitter[a]
	})
	return jitter
}

// samplePixel samples one pixel until it converges or hits the sample cap
func (rt *Raytracer) samplePixel(camera *Camera, i, j int, ps *PixelStats, samplesPerSide int, random *rand.Rand, sampler core.Sampler) int {
	jitter := pixelJitter(samplesPerSide, random)
	initialCount := ps.SampleCount

	for ps.SampleCount < rt.config.SamplesPerPixel && !rt.shouldStopSampling(ps) {
		offset := jitter[ps.SampleCount%len(jitter)]

		s := (float64(i) + offset.X) / float64(rt.config.Width)
		t := 1.0 - (float64(j)+offset.Y)/float64(rt.config.Height)

		ray := camera.GetRay(s, t, sampler)
		ps.AddSample(rt.integrator.RayColor(ray, rt.scene, sampler))
	}

	return ps.SampleCount - initialCount
}

// shouldStopSampling is the adaptive stopping test: never before the floor,
// then as soon as the standard error of the luminance mean drops below the
// configured threshold
func (rt *Raytracer) shouldStopSampling(ps *PixelStats) bool {
	if ps.SampleCount < rt.config.MinSamplesPerPixel {
		return false
	}
	return ps.StandardError() < rt.config.VarianceThreshold
}

// createImage converts accumulated pixel statistics into an RGBA image
func (rt *Raytracer) createImage(pixelStats [][]PixelStats) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))
	for j := 0; j < rt.config.Height; j++ {
		for i := 0; i < rt.config.Width; i++ {
			img.Set(i, j, vec3ToColor(pixelStats[j][i].GetColor()))
		}
	}
	return img
}

// vec3ToColor converts linear radiance to a display color with gamma 2.0
func vec3ToColor(v core.Vec3) color.RGBA {
	v = v.GammaCorrect(2.0).Clamp(0.0, 0.999)
	return color.RGBA{
		R: uint8(256 * v.X),
		G: uint8(256 * v.Y),
		B: uint8(256 * v.Z),
		A: 255,
	}
}
