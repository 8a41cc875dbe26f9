package main

import (
	"path/filepath"
	"testing"

	"github.com/doubleailes/crust-render/pkg/scene"
)

func TestLoadScene(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "box.json")
	doc := &scene.Document{
		Camera: scene.CameraDocument{
			LookFrom: [3]float64{0, 1, 3},
			LookAt:   [3]float64{0, 0.5, 0},
			VUp:      [3]float64{0, 1, 0},
			VFov:     40,
		},
		Settings: scene.SettingsDocument{
			Width: 64, Height: 36,
			SamplesPerPixel: 8, MinSamplesPerPixel: 2,
			MaxDepth: 4, VarianceThreshold: 0.05,
		},
		Objects: []scene.ObjectDocument{
			{
				Name:     "ball",
				Sphere:   &scene.SphereDocument{Center: [3]float64{0, 0.5, 0}, Radius: 0.5},
				Material: scene.MaterialDocument{Type: "lambertian", Albedo: [3]float64{0.5, 0.5, 0.5}},
			},
		},
	}
	if err := scene.SaveDocument(doc, docPath); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		sceneType   string
		wantName    string
		expectError bool
	}{
		{"default scene", "default", "default", false},
		{"showcase scene", "showcase", "showcase", false},
		{"document path", docPath, "box", false},
		{"missing document", "nonexistent.json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, name, err := loadScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q, got none", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene %q: %v", tt.sceneType, err)
			}
			if s == nil {
				t.Fatalf("Expected a scene for %q, got nil", tt.sceneType)
			}
			if name != tt.wantName {
				t.Errorf("Scene name %q, expected %q", name, tt.wantName)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Scene %q should validate: %v", tt.sceneType, err)
			}
		})
	}
}
