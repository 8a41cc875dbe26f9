package scene

import (
	"github.com/doubleailes/crust-render/pkg/core"
	"github.com/doubleailes/crust-render/pkg/geometry"
	"github.com/doubleailes/crust-render/pkg/material"
	"github.com/doubleailes/crust-render/pkg/renderer"
)

// NewDefaultScene builds a simple test scene: a diffuse sphere on a large
// floor sphere under a single spherical light
func NewDefaultScene() *Scene {
	config := core.DefaultSamplingConfig()
	aspect := float64(config.Width) / float64(config.Height)

	camera := renderer.NewCamera(renderer.CameraConfig{
		LookFrom:      core.NewVec3(0, 1, 3),
		LookAt:        core.NewVec3(0, 0.5, 0),
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          40,
		AspectRatio:   aspect,
		Aperture:      0,
		FocusDistance: 3,
	})

	s := NewScene(camera, config,
		core.NewVec3(0.5, 0.7, 1.0), // top: soft blue
		core.NewVec3(1.0, 1.0, 1.0), // bottom: white
	)

	s.Add(geometry.NewSphere(core.NewVec3(0, -100.5, 0), 100,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0.5, 0), 0.5,
		material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))))
	s.Add(geometry.NewSphere(core.NewVec3(0, 3, 0), 0.5,
		material.NewEmissive(core.NewVec3(10, 10, 10))))

	return s
}

// NewShowcaseScene places one sphere per material variant in a row, lit by
// an overhead light, with depth of field focused on the center sphere
func NewShowcaseScene() *Scene {
	config := core.DefaultSamplingConfig()
	config.Width = 800
	config.Height = 450
	aspect := float64(config.Width) / float64(config.Height)

	camera := renderer.NewCamera(renderer.CameraConfig{
		LookFrom:      core.NewVec3(0, 2, 7),
		LookAt:        core.NewVec3(0, 0.5, 0),
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          35,
		AspectRatio:   aspect,
		Aperture:      0.1,
		FocusDistance: 7,
	})

	s := NewScene(camera, config,
		core.NewVec3(0.5, 0.7, 1.0),
		core.NewVec3(1.0, 1.0, 1.0),
	)

	// Floor
	s.Add(geometry.NewQuad(
		core.NewVec3(-10, 0, -10),
		core.NewVec3(20, 0, 0),
		core.NewVec3(0, 0, 20),
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	// One sphere per material variant
	s.Add(geometry.NewSphere(core.NewVec3(-3.75, 0.5, 0), 0.5,
		material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))))
	s.Add(geometry.NewSphere(core.NewVec3(-2.25, 0.5, 0), 0.5,
		material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.05)))
	s.Add(geometry.NewSphere(core.NewVec3(-0.75, 0.5, 0), 0.5,
		material.NewDielectric(1.5)))
	s.Add(geometry.NewSphere(core.NewVec3(0.75, 0.5, 0), 0.5,
		material.NewBlinnPhong(core.NewVec3(0.3, 0.5, 0.3), core.NewVec3(0.4, 0.4, 0.4), 64)))
	s.Add(geometry.NewSphere(core.NewVec3(2.25, 0.5, 0), 0.5,
		material.NewCookTorrance(core.NewVec3(0.9, 0.6, 0.2), 0.3, 1.0)))
	s.Add(geometry.NewSphere(core.NewVec3(3.75, 0.5, 0), 0.5,
		material.NewDisney(core.NewVec3(0.3, 0.3, 0.8), 0.0, 0.4, 0.5, 0.0, 0.5, 0.5, 1.0, 0.9)))

	// Overhead light
	s.Add(geometry.NewSphere(core.NewVec3(0, 5, 2), 1.0,
		material.NewEmissive(core.NewVec3(12, 12, 12))))

	return s
}
