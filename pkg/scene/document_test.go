package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validDocument() *Document {
	return &Document{
		Camera: CameraDocument{
			LookFrom:      [3]float64{0, 1, 3},
			LookAt:        [3]float64{0, 0.5, 0},
			VUp:           [3]float64{0, 1, 0},
			VFov:          40,
			FocusDistance: 3,
		},
		Settings: SettingsDocument{
			Width:              100,
			Height:             60,
			SamplesPerPixel:    16,
			MinSamplesPerPixel: 4,
			MaxDepth:           8,
			VarianceThreshold:  0.05,
			BackgroundTop:      [3]float64{0.5, 0.7, 1.0},
			BackgroundBottom:   [3]float64{1, 1, 1},
		},
		Objects: []ObjectDocument{
			{
				Name:     "floor",
				Quad:     &QuadDocument{Corner: [3]float64{-5, 0, -5}, U: [3]float64{10, 0, 0}, V: [3]float64{0, 0, 10}},
				Material: MaterialDocument{Type: "lambertian", Albedo: [3]float64{0.5, 0.5, 0.5}},
			},
			{
				Name:     "ball",
				Sphere:   &SphereDocument{Center: [3]float64{0, 0.5, 0}, Radius: 0.5},
				Material: MaterialDocument{Type: "disney", BaseColor: [3]float64{0.8, 0.3, 0.3}, Roughness: 0.4, SpecularLevel: 0.5},
			},
			{
				Name:     "lamp",
				Sphere:   &SphereDocument{Center: [3]float64{0, 4, 0}, Radius: 0.5},
				Material: MaterialDocument{Type: "emissive", Emission: [3]float64{10, 10, 10}},
			},
		},
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")

	if err := SaveDocument(validDocument(), path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadDocument(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(loaded.Objects) != 3 {
		t.Fatalf("expected 3 objects, got %d", len(loaded.Objects))
	}
	if loaded.Objects[1].Material.Type != "disney" {
		t.Errorf("material type lost in round trip: %q", loaded.Objects[1].Material.Type)
	}
	if loaded.Settings.SamplesPerPixel != 16 {
		t.Errorf("settings lost in round trip: %+v", loaded.Settings)
	}
}

func TestDocument_BuildScene(t *testing.T) {
	s, err := validDocument().BuildScene()
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Validate(); err != nil {
		t.Fatalf("built scene should validate: %v", err)
	}
	if len(s.GetLights()) != 1 {
		t.Fatalf("emissive object should become a light, catalog has %d", len(s.GetLights()))
	}
	if s.GetSamplingConfig().Width != 100 {
		t.Errorf("sampling config not carried over: %+v", s.GetSamplingConfig())
	}
}

func TestDocument_UnknownMaterialType(t *testing.T) {
	doc := validDocument()
	doc.Objects[0].Material.Type = "velvet"

	_, err := doc.BuildScene()
	if err == nil || !strings.Contains(err.Error(), "velvet") {
		t.Fatalf("expected an unknown-material error naming the type, got %v", err)
	}
}

func TestDocument_MissingMaterialType(t *testing.T) {
	doc := validDocument()
	doc.Objects[1].Material.Type = ""

	_, err := doc.BuildScene()
	if err == nil || !strings.Contains(err.Error(), "ball") {
		t.Fatalf("expected an error naming the object, got %v", err)
	}
}

func TestDocument_PlanePrimitive(t *testing.T) {
	doc := validDocument()
	doc.Objects[0] = ObjectDocument{
		Name:     "ground",
		Plane:    &PlaneDocument{Point: [3]float64{0, 0, 0}, Normal: [3]float64{0, 1, 0}},
		Material: MaterialDocument{Type: "lambertian", Albedo: [3]float64{0.5, 0.5, 0.5}},
	}

	s, err := doc.BuildScene()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("scene with a plane should validate: %v", err)
	}
}

func TestDocument_PlaneNeedsNormal(t *testing.T) {
	doc := validDocument()
	doc.Objects[0] = ObjectDocument{
		Name:     "ground",
		Plane:    &PlaneDocument{Point: [3]float64{0, 0, 0}},
		Material: MaterialDocument{Type: "lambertian", Albedo: [3]float64{0.5, 0.5, 0.5}},
	}

	_, err := doc.BuildScene()
	if err == nil || !strings.Contains(err.Error(), "normal") {
		t.Fatalf("expected a zero-normal error, got %v", err)
	}
}

func TestDocument_MissingPrimitive(t *testing.T) {
	doc := validDocument()
	doc.Objects[2].Sphere = nil

	if _, err := doc.BuildScene(); err == nil {
		t.Fatal("expected an error for an object without a primitive")
	}
}

func TestDocument_BadSettingsRejected(t *testing.T) {
	doc := validDocument()
	doc.Settings.MaxDepth = -1

	if _, err := doc.BuildScene(); err == nil {
		t.Fatal("expected an error for a negative max depth")
	}
}

func TestDocument_DielectricNeedsIOR(t *testing.T) {
	doc := validDocument()
	doc.Objects[1].Material = MaterialDocument{Type: "dielectric"}

	if _, err := doc.BuildScene(); err == nil {
		t.Fatal("expected an error for a dielectric without an ior")
	}
}

func TestLoadDocument_MissingFile(t *testing.T) {
	if _, err := LoadDocument(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadDocument_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDocument(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadScene_EndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := SaveDocument(validDocument(), path); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScene(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
}
