package scene

import (
	"fmt"

	"github.com/doubleailes/crust-render/pkg/core"
	"github.com/doubleailes/crust-render/pkg/geometry"
	"github.com/doubleailes/crust-render/pkg/lights"
	"github.com/doubleailes/crust-render/pkg/material"
	"github.com/doubleailes/crust-render/pkg/renderer"
)

// Scene holds the world description: geometry, the light catalog, the camera
// and the sampling parameters. It satisfies renderer.Scene.
type Scene struct {
	camera      *renderer.Camera
	config      core.SamplingConfig
	shapes      []core.Shape
	lights      []core.Light
	bvh         *core.BVH
	topColor    core.Vec3
	bottomColor core.Vec3
}

// NewScene creates an empty scene with the given camera and configuration
func NewScene(camera *renderer.Camera, config core.SamplingConfig, topColor, bottomColor core.Vec3) *Scene {
	return &Scene{
		camera:      camera,
		config:      config,
		topColor:    topColor,
		bottomColor: bottomColor,
	}
}

// Add inserts a shape into the scene. Spheres carrying an emissive material
// are registered in the light catalog automatically, so geometry and lights
// cannot drift apart.
func (s *Scene) Add(shape core.Shape) {
	s.bvh = nil // geometry changed, rebuild lazily
	s.shapes = append(s.shapes, shape)

	if sphere, isSphere := shape.(*geometry.Sphere); isSphere {
		if emissive, isEmissive := sphere.Material.(*material.Emissive); isEmissive {
			s.lights = append(s.lights, lights.NewSphereLight(sphere, emissive.Emission))
		}
	}
}

// Validate checks the scene is renderable: a valid sampling configuration
// and no shape without a material
func (s *Scene) Validate() error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	for i, shape := range s.shapes {
		if sphere, isSphere := shape.(*geometry.Sphere); isSphere && sphere.Material == nil {
			return fmt.Errorf("shape %d has no material", i)
		}
	}
	return nil
}

// GetBVH returns the acceleration structure, building it on first use
func (s *Scene) GetBVH() *core.BVH {
	if s.bvh == nil {
		s.bvh = core.NewBVH(s.shapes)
	}
	return s.bvh
}

// GetLights returns the light catalog
func (s *Scene) GetLights() []core.Light {
	return s.lights
}

// GetBackgroundColors returns the background gradient colors
func (s *Scene) GetBackgroundColors() (core.Vec3, core.Vec3) {
	return s.topColor, s.bottomColor
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.camera
}

// GetSamplingConfig returns the sampling parameters baked into the scene
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.config
}
