package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

const threeSpheres = `{
	"name": "Three Spheres",
	"description": "Glass, diffuse and metal on a ground sphere",
	"camera": {
		"aspectRatio": 1.5,
		"width": 300,
		"lookFrom": [0, 1, 3],
		"lookAt": [0, 0, -1],
		"vfov": 40
	},
	"background": {"type": "gradient", "top": [0.5, 0.7, 1.0], "bottom": [1, 1, 1]},
	"materials": {
		"ground": {"type": "lambertian", "albedo": [0.8, 0.8, 0.0]},
		"glass": {"type": "dielectric", "refractiveIndex": 1.5},
		"gold": {"type": "metal", "albedo": [0.8, 0.6, 0.2], "fuzz": 0.3}
	},
	"spheres": [
		{"center": [0, -100.5, -1], "radius": 100, "material": "ground"},
		{"center": [-1, 0, -1], "radius": 0.5, "material": "glass"},
		{"center": [1, 0, -1], "center1": [1, 0.5, -1], "radius": 0.5, "material": "gold"}
	]
}`

func TestParseScene(t *testing.T) {
	scene, err := ParseScene(strings.NewReader(threeSpheres))
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	if scene.Name != "Three Spheres" {
		t.Errorf("Expected name %q, got %q", "Three Spheres", scene.Name)
	}
	if len(scene.Spheres) != 3 || len(scene.Materials) != 3 {
		t.Fatalf("Expected 3 spheres and 3 materials, got %d and %d", len(scene.Spheres), len(scene.Materials))
	}

	if scene.Camera.Width == nil || *scene.Camera.Width != 300 {
		t.Errorf("Expected camera width 300, got %v", scene.Camera.Width)
	}
	if scene.Camera.SamplesPerPixel != nil {
		t.Errorf("Expected absent samples per pixel to stay nil, got %d", *scene.Camera.SamplesPerPixel)
	}
	if got := scene.Camera.LookFrom.Vec3(); got != core.NewVec3(0, 1, 3) {
		t.Errorf("Expected lookFrom (0,1,3), got %v", got)
	}

	moving := scene.Spheres[2]
	if moving.Center1 == nil || moving.Center1.Vec3() != core.NewVec3(1, 0.5, -1) {
		t.Errorf("Expected moving sphere to end at (1,0.5,-1), got %v", moving.Center1)
	}
	if gold := scene.Materials["gold"]; gold.Fuzz != 0.3 {
		t.Errorf("Expected gold fuzz 0.3, got %f", gold.Fuzz)
	}
}

func TestParseScene_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		invalid bool // Expect ErrInvalidScene rather than a decode error
	}{
		{"malformed json", `{"spheres": [`, false},
		{"unknown field", `{"lights": []}`, false},
		{"unknown material reference", `{"materials": {}, "spheres": [{"center": [0,0,0], "radius": 1, "material": "x"}]}`, true},
		{"unknown material type", `{"materials": {"x": {"type": "emissive"}}}`, true},
		{"lambertian without albedo", `{"materials": {"x": {"type": "lambertian"}}}`, true},
		{"dielectric without index", `{"materials": {"x": {"type": "dielectric"}}}`, true},
		{"zero radius", `{"materials": {"x": {"type": "dielectric", "refractiveIndex": 1.5}}, "spheres": [{"center": [0,0,0], "radius": 0, "material": "x"}]}`, true},
		{"zero width", `{"camera": {"width": 0}}`, true},
		{"negative aspect", `{"camera": {"aspectRatio": -1}}`, true},
		{"gradient without colors", `{"background": {"type": "gradient"}}`, true},
		{"uniform without color", `{"background": {"type": "uniform"}}`, true},
		{"unknown background", `{"background": {"type": "hdri"}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if got := errors.Is(err, ErrInvalidScene); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalidScene) = %t, expected %t (err: %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "three.json")
	if err := os.WriteFile(path, []byte(threeSpheres), 0644); err != nil {
		t.Fatalf("Writing scene file: %v", err)
	}

	scene, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if len(scene.Spheres) != 3 {
		t.Errorf("Expected 3 spheres, got %d", len(scene.Spheres))
	}

	if _, err := LoadScene(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"scenes/three.json", false},
		{"/tmp/SCENE.JSON", false},
		{"", true},
		{"scenes/three.pbrt", true},
		{"scenes/bad\x00.json", true},
		{strings.Repeat("a", 600) + ".json", true},
	}

	for _, tt := range tests {
		if err := validateFilePath(tt.path); (err != nil) != tt.wantErr {
			t.Errorf("validateFilePath(%q) error = %v, wantErr %t", tt.path, err, tt.wantErr)
		}
	}
}
