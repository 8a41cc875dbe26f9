package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/doubleailes/crust-render/pkg/core"
	"github.com/doubleailes/crust-render/pkg/geometry"
	"github.com/doubleailes/crust-render/pkg/material"
	"github.com/doubleailes/crust-render/pkg/renderer"
)

// Document is the on-disk scene description: a camera, render settings and a
// list of named objects
type Document struct {
	Camera   CameraDocument   `json:"camera"`
	Settings SettingsDocument `json:"settings"`
	Objects  []ObjectDocument `json:"objects"`
}

// CameraDocument describes the camera placement
type CameraDocument struct {
	LookFrom      [3]float64 `json:"look_from"`
	LookAt        [3]float64 `json:"look_at"`
	VUp           [3]float64 `json:"vup"`
	VFov          float64    `json:"vfov"`
	Aperture      float64    `json:"aperture"`
	FocusDistance float64    `json:"focus_distance"`
}

// SettingsDocument describes the render settings
type SettingsDocument struct {
	Width              int        `json:"width"`
	Height             int        `json:"height"`
	SamplesPerPixel    int        `json:"samples_per_pixel"`
	MinSamplesPerPixel int        `json:"min_samples_per_pixel"`
	MaxDepth           int        `json:"max_depth"`
	VarianceThreshold  float64    `json:"variance_threshold"`
	BackgroundTop      [3]float64 `json:"background_top"`
	BackgroundBottom   [3]float64 `json:"background_bottom"`
}

// ObjectDocument is a named primitive with its material
type ObjectDocument struct {
	Name     string           `json:"name"`
	Sphere   *SphereDocument  `json:"sphere,omitempty"`
	Quad     *QuadDocument    `json:"quad,omitempty"`
	Plane    *PlaneDocument   `json:"plane,omitempty"`
	Material MaterialDocument `json:"material"`
}

// SphereDocument describes a sphere primitive
type SphereDocument struct {
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

// QuadDocument describes a quad primitive by corner and edge vectors
type QuadDocument struct {
	Corner [3]float64 `json:"corner"`
	U      [3]float64 `json:"u"`
	V      [3]float64 `json:"v"`
}

// PlaneDocument describes an infinite plane by a point and its normal
type PlaneDocument struct {
	Point  [3]float64 `json:"point"`
	Normal [3]float64 `json:"normal"`
}

// MaterialDocument is a tagged material description. Only the fields of the
// named type are read; the rest stay zero.
type MaterialDocument struct {
	Type string `json:"type"`

	Albedo    [3]float64 `json:"albedo,omitempty"`
	Fuzz      float64    `json:"fuzz,omitempty"`
	IOR       float64    `json:"ior,omitempty"`
	Emission  [3]float64 `json:"emission,omitempty"`
	Diffuse   [3]float64 `json:"diffuse,omitempty"`
	Specular  [3]float64 `json:"specular,omitempty"`
	Shininess float64    `json:"shininess,omitempty"`
	Roughness float64    `json:"roughness,omitempty"`
	Metallic  float64    `json:"metallic,omitempty"`

	BaseColor      [3]float64 `json:"base_color,omitempty"`
	SpecularLevel  float64    `json:"specular_level,omitempty"`
	SpecularTint   float64    `json:"specular_tint,omitempty"`
	Sheen          float64    `json:"sheen,omitempty"`
	SheenTint      float64    `json:"sheen_tint,omitempty"`
	Clearcoat      float64    `json:"clearcoat,omitempty"`
	ClearcoatGloss float64    `json:"clearcoat_gloss,omitempty"`
}

func toVec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// buildMaterial resolves a material document to a concrete material.
// An unknown type name is an error, not a silent default.
func buildMaterial(doc MaterialDocument) (core.Material, error) {
	switch doc.Type {
	case "lambertian":
		return material.NewLambertian(toVec3(doc.Albedo)), nil
	case "metal":
		return material.NewMetal(toVec3(doc.Albedo), doc.Fuzz), nil
	case "dielectric":
		if doc.IOR <= 0 {
			return nil, fmt.Errorf("dielectric material needs a positive ior, got %g", doc.IOR)
		}
		return material.NewDielectric(doc.IOR), nil
	case "emissive":
		return material.NewEmissive(toVec3(doc.Emission)), nil
	case "blinn_phong":
		return material.NewBlinnPhong(toVec3(doc.Diffuse), toVec3(doc.Specular), doc.Shininess), nil
	case "cook_torrance":
		return material.NewCookTorrance(toVec3(doc.Albedo), doc.Roughness, doc.Metallic), nil
	case "disney":
		return material.NewDisney(toVec3(doc.BaseColor), doc.Metallic, doc.Roughness,
			doc.SpecularLevel, doc.SpecularTint, doc.Sheen, doc.SheenTint,
			doc.Clearcoat, doc.ClearcoatGloss), nil
	case "":
		return nil, fmt.Errorf("object is missing a material type")
	default:
		return nil, fmt.Errorf("unknown material type %q", doc.Type)
	}
}

// BuildScene turns a document into a renderable scene
func (d *Document) BuildScene() (*Scene, error) {
	config := core.SamplingConfig{
		Width:              d.Settings.Width,
		Height:             d.Settings.Height,
		SamplesPerPixel:    d.Settings.SamplesPerPixel,
		MinSamplesPerPixel: d.Settings.MinSamplesPerPixel,
		MaxDepth:           d.Settings.MaxDepth,
		VarianceThreshold:  d.Settings.VarianceThreshold,
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	camera := renderer.NewCamera(renderer.CameraConfig{
		LookFrom:      toVec3(d.Camera.LookFrom),
		LookAt:        toVec3(d.Camera.LookAt),
		VUp:           toVec3(d.Camera.VUp),
		VFov:          d.Camera.VFov,
		AspectRatio:   float64(config.Width) / float64(config.Height),
		Aperture:      d.Camera.Aperture,
		FocusDistance: d.Camera.FocusDistance,
	})

	s := NewScene(camera, config,
		toVec3(d.Settings.BackgroundTop),
		toVec3(d.Settings.BackgroundBottom))

	for _, obj := range d.Objects {
		mat, err := buildMaterial(obj.Material)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", obj.Name, err)
		}

		switch {
		case obj.Sphere != nil:
			s.Add(geometry.NewSphere(toVec3(obj.Sphere.Center), obj.Sphere.Radius, mat))
		case obj.Quad != nil:
			s.Add(geometry.NewQuad(toVec3(obj.Quad.Corner), toVec3(obj.Quad.U), toVec3(obj.Quad.V), mat))
		case obj.Plane != nil:
			normal := toVec3(obj.Plane.Normal)
			if normal.Length() < 1e-12 {
				return nil, fmt.Errorf("object %q: plane needs a non-zero normal", obj.Name)
			}
			s.Add(geometry.NewPlane(toVec3(obj.Plane.Point), normal, mat))
		default:
			return nil, fmt.Errorf("object %q has no primitive", obj.Name)
		}
	}

	return s, nil
}

// LoadDocument reads a scene document from a JSON file
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scene document %s: %w", path, err)
	}
	return &doc, nil
}

// SaveDocument writes a scene document as indented JSON
func SaveDocument(doc *Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing scene document: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadScene reads a document and builds the scene in one step
func LoadScene(path string) (*Scene, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.BuildScene()
}
