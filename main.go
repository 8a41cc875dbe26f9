package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/doubleailes/crust-render/pkg/renderer"
	"github.com/doubleailes/crust-render/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "default", "Scene type: 'default', 'showcase', or a path to a JSON scene document")
	seed := flag.Int64("seed", 42, "Random seed for the render")
	workers := flag.Int("workers", 0, "Number of render workers (0 = all CPUs)")
	output := flag.String("output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("crust-render, a physically based path tracer")
		fmt.Println("Usage: crust-render [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default    - Diffuse sphere on a ground sphere under a spherical light")
		fmt.Println("  showcase   - One sphere per material variant with depth of field")
		fmt.Println("  <path>     - JSON scene document")
		return
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)

	selectedScene, sceneName, err := loadScene(*sceneType)
	if err != nil {
		logger.Fatalf("Error loading scene: %v", err)
	}
	if err := selectedScene.Validate(); err != nil {
		logger.Fatalf("Invalid scene: %v", err)
	}

	raytracer, err := renderer.NewRaytracer(selectedScene, logger)
	if err != nil {
		logger.Fatalf("Error creating raytracer: %v", err)
	}
	if *workers > 0 {
		raytracer.SetNumWorkers(*workers)
	}

	config := selectedScene.GetSamplingConfig()
	logger.Printf("Rendering %s scene at %dx%d, up to %d samples/pixel",
		sceneName, config.Width, config.Height, config.SamplesPerPixel)

	startTime := time.Now()
	img, stats, err := raytracer.Render(*seed)
	if err != nil {
		logger.Fatalf("Render failed: %v", err)
	}
	logger.Printf("Render completed in %v, %.1f samples/pixel average (range %d - %d)",
		time.Since(startTime), stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	filename := *output
	if filename == "" {
		outputDir := filepath.Join("output", sceneName)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			logger.Fatalf("Error creating output directory: %v", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	if err := savePNG(img, filename); err != nil {
		logger.Fatalf("Error saving image: %v", err)
	}
	logger.Printf("Saved %s", filename)
}

// loadScene resolves the scene flag to a built-in scene or a document path
func loadScene(name string) (*scene.Scene, string, error) {
	switch name {
	case "default":
		return scene.NewDefaultScene(), "default", nil
	case "showcase":
		return scene.NewShowcaseScene(), "showcase", nil
	default:
		s, err := scene.LoadScene(name)
		if err != nil {
			return nil, "", err
		}
		base := filepath.Base(name)
		return s, base[:len(base)-len(filepath.Ext(base))], nil
	}
}

func savePNG(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
