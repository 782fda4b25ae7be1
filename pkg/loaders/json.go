package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Material types understood by the loader
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// Background types understood by the loader
const (
	BackgroundGradient = "gradient"
	BackgroundUniform  = "uniform"
)

// Vec is a JSON [x, y, z] triple
type Vec [3]float64

// Vec3 converts v to a core vector
func (v Vec) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraStatement holds camera settings. Absent fields keep their defaults.
type CameraStatement struct {
	AspectRatio     *float64 `json:"aspectRatio,omitempty"`
	Width           *int     `json:"width,omitempty"`
	SamplesPerPixel *int     `json:"samplesPerPixel,omitempty"`
	MaxDepth        *int     `json:"maxDepth,omitempty"`
	VFov            *float64 `json:"vfov,omitempty"`
	LookFrom        *Vec     `json:"lookFrom,omitempty"`
	LookAt          *Vec     `json:"lookAt,omitempty"`
	Up              *Vec     `json:"up,omitempty"`
	DefocusAngle    *float64 `json:"defocusAngle,omitempty"`
	FocusDistance   *float64 `json:"focusDistance,omitempty"`
}

// BackgroundStatement describes the light seen by rays that escape
type BackgroundStatement struct {
	Type   string `json:"type"`
	Top    *Vec   `json:"top,omitempty"`    // gradient
	Bottom *Vec   `json:"bottom,omitempty"` // gradient
	Color  *Vec   `json:"color,omitempty"`  // uniform
}

// MaterialStatement describes a named material
type MaterialStatement struct {
	Type            string  `json:"type"`
	Albedo          *Vec    `json:"albedo,omitempty"`          // lambertian, metal
	Fuzz            float64 `json:"fuzz,omitempty"`            // metal
	RefractiveIndex float64 `json:"refractiveIndex,omitempty"` // dielectric
}

// SphereStatement places a sphere. Center1 makes it move from Center at
// time 0 to Center1 at time 1.
type SphereStatement struct {
	Center   Vec     `json:"center"`
	Center1  *Vec    `json:"center1,omitempty"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// SceneFile contains all parsed scene file data
type SceneFile struct {
	Name        string                       `json:"name,omitempty"`
	Description string                       `json:"description,omitempty"`
	Group       string                       `json:"group,omitempty"`
	Camera      CameraStatement              `json:"camera"`
	Background  *BackgroundStatement         `json:"background,omitempty"`
	Materials   map[string]MaterialStatement `json:"materials"`
	Spheres     []SphereStatement            `json:"spheres"`
}

// ParseScene parses and validates a JSON scene from an io.Reader
func ParseScene(reader io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var scene SceneFile
	if err := decoder.Decode(&scene); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return &scene, nil
}

// LoadScene loads and parses a JSON scene file
func LoadScene(filename string) (*SceneFile, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scene, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return scene, nil
}

// Validate checks that every sphere refers to a known, well-formed material
func (s *SceneFile) Validate() error {
	for name, mat := range s.Materials {
		if err := mat.validate(); err != nil {
			return fmt.Errorf("%w: material %q: %v", ErrInvalidScene, name, err)
		}
	}

	for i, sphere := range s.Spheres {
		if _, ok := s.Materials[sphere.Material]; !ok {
			return fmt.Errorf("%w: sphere %d uses unknown material %q", ErrInvalidScene, i, sphere.Material)
		}
		if sphere.Radius <= 0 {
			return fmt.Errorf("%w: sphere %d has non-positive radius %g", ErrInvalidScene, i, sphere.Radius)
		}
	}

	if s.Camera.Width != nil && *s.Camera.Width <= 0 {
		return fmt.Errorf("%w: camera width must be positive", ErrInvalidScene)
	}
	if s.Camera.AspectRatio != nil && *s.Camera.AspectRatio <= 0 {
		return fmt.Errorf("%w: camera aspect ratio must be positive", ErrInvalidScene)
	}

	if bg := s.Background; bg != nil {
		switch bg.Type {
		case BackgroundGradient:
			if bg.Top == nil || bg.Bottom == nil {
				return fmt.Errorf("%w: gradient background needs top and bottom colors", ErrInvalidScene)
			}
		case BackgroundUniform:
			if bg.Color == nil {
				return fmt.Errorf("%w: uniform background needs a color", ErrInvalidScene)
			}
		default:
			return fmt.Errorf("%w: unknown background type %q", ErrInvalidScene, bg.Type)
		}
	}

	return nil
}

func (m MaterialStatement) validate() error {
	switch m.Type {
	case MaterialLambertian, MaterialMetal:
		if m.Albedo == nil {
			return fmt.Errorf("%s needs an albedo", m.Type)
		}
	case MaterialDielectric:
		if m.RefractiveIndex <= 0 {
			return fmt.Errorf("dielectric needs a positive refractive index")
		}
	default:
		return fmt.Errorf("unknown material type %q", m.Type)
	}
	return nil
}

// validateFilePath validates a scene file path
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	if len(filename) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	if !strings.EqualFold(filepath.Ext(filename), ".json") {
		return fmt.Errorf("invalid file type: only .json files are allowed")
	}

	return nil
}
