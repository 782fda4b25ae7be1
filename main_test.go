package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"three-spheres scene", "three-spheres", false},
		{"final scene", "final", false},

		// Scene files (by name)
		{"mirror-pair file", "mirror-pair", false},
		{"glass-bubbles file", "glass-bubbles", false},

		// Scene files (by path)
		{"direct JSON path", "scenes/mirror-pair.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid JSON path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType, 42)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %v", tt.sceneType, scene.Name)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene == nil {
				t.Fatalf("Expected scene for valid scene type '%s', got nil", tt.sceneType)
			}
			if scene.CameraConfig.Width <= 0 {
				t.Errorf("Scene camera width should be positive, got %d", scene.CameraConfig.Width)
			}
			if scene.GetPrimitiveCount() == 0 {
				t.Errorf("Scene '%s' should contain objects", tt.sceneType)
			}
		})
	}
}

func TestTryLoadJSONScene(t *testing.T) {
	tests := []struct {
		name       string
		sceneType  string
		expectLoad bool
	}{
		{"existing file", "mirror-pair", true},
		{"missing file", "does-not-exist", false},
		{"built-in id is not a file", "default", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, ok := tryLoadJSONScene(tt.sceneType)
			if ok != tt.expectLoad {
				t.Fatalf("tryLoadJSONScene(%q) loaded = %t, expected %t", tt.sceneType, ok, tt.expectLoad)
			}
			if ok && scene == nil {
				t.Error("Expected a scene when load succeeds")
			}
		})
	}
}

func TestParseVec3(t *testing.T) {
	tests := []struct {
		input       string
		expected    core.Vec3
		expectError bool
	}{
		{"13,2,3", core.NewVec3(13, 2, 3), false},
		{" -1.5, 0 ,2e1 ", core.NewVec3(-1.5, 0, 20), false},
		{"1,2", core.Vec3{}, true},
		{"1,2,3,4", core.Vec3{}, true},
		{"a,b,c", core.Vec3{}, true},
		{"", core.Vec3{}, true},
	}

	for _, tt := range tests {
		got, err := parseVec3(tt.input)
		if tt.expectError {
			if err == nil {
				t.Errorf("parseVec3(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseVec3(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("parseVec3(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

// fakeFlags stands in for *cli.Context; only keys present count as set.
type fakeFlags map[string]interface{}

func (f fakeFlags) IsSet(name string) bool { _, ok := f[name]; return ok }

func (f fakeFlags) Int(name string) int {
	v, _ := f[name].(int)
	return v
}

func (f fakeFlags) Float64(name string) float64 {
	v, _ := f[name].(float64)
	return v
}

func (f fakeFlags) String(name string) string {
	v, _ := f[name].(string)
	return v
}

func TestApplyCameraFlags(t *testing.T) {
	t.Run("unset flags keep scene values", func(t *testing.T) {
		config := renderer.DefaultCameraConfig()
		if err := applyCameraFlags(fakeFlags{}, &config); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if config != renderer.DefaultCameraConfig() {
			t.Errorf("Expected config unchanged, got %+v", config)
		}
	})

	t.Run("set flags override", func(t *testing.T) {
		config := renderer.DefaultCameraConfig()
		flags := fakeFlags{
			"width":    64,
			"aspect":   2.0,
			"spp":      3,
			"depth":    7,
			"vfov":     45.0,
			"defocus":  0.5,
			"focus":    4.0,
			"lookfrom": "1,2,3",
			"lookat":   "0,0,0",
		}
		if err := applyCameraFlags(flags, &config); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		expected := renderer.CameraConfig{
			AspectRatio:     2.0,
			Width:           64,
			SamplesPerPixel: 3,
			MaxDepth:        7,
			VFov:            45,
			LookFrom:        core.NewVec3(1, 2, 3),
			LookAt:          core.NewVec3(0, 0, 0),
			Up:              renderer.DefaultCameraConfig().Up,
			DefocusAngle:    0.5,
			FocusDistance:   4,
		}
		if config != expected {
			t.Errorf("Expected %+v, got %+v", expected, config)
		}
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		for _, flags := range []fakeFlags{
			{"width": 0},
			{"aspect": -1.0},
			{"lookfrom": "1,2"},
			{"lookat": "x,y,z"},
		} {
			config := renderer.DefaultCameraConfig()
			if err := applyCameraFlags(flags, &config); err == nil {
				t.Errorf("Expected error for flags %v", flags)
			}
		}
	})
}

func TestSelectFormat(t *testing.T) {
	tests := []struct {
		name        string
		format      string
		outPath     string
		expected    output.Format
		expectError bool
	}{
		{"default", "", "", output.FormatPPM, false},
		{"stdout", "", "-", output.FormatPPM, false},
		{"from extension", "", "out/frame.png", output.FormatPNG, false},
		{"no extension", "", "frame", output.FormatPPM, false},
		{"explicit wins", "bmp", "frame.png", output.FormatBMP, false},
		{"unknown explicit", "gif", "", "", true},
		{"unknown extension", "", "frame.gif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectFormat(tt.format, tt.outPath)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCreateOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		sceneName string
		format    output.Format
		expected  string
	}{
		{"final", output.FormatPPM, filepath.Join("output", "final", "render_20240305_140709.ppm")},
		{"scenes/mirror-pair.json", output.FormatPNG, filepath.Join("output", "mirror-pair", "render_20240305_140709.png")},
	}

	for _, tt := range tests {
		if got := createOutputPath(tt.sceneName, tt.format, now); got != tt.expected {
			t.Errorf("createOutputPath(%q) = %q, expected %q", tt.sceneName, got, tt.expected)
		}
	}
}
