package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/lights"
	"github.com/df07/go-sphere-tracer/pkg/loaders"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// NewJSONScene creates a scene from a JSON scene file
func NewJSONScene(path string) (*Scene, error) {
	sceneFile, err := loaders.LoadScene(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}

	name := sceneFile.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return NewSceneFromFile(sceneFile, name), nil
}

// NewSceneFromFile converts a parsed scene file. The file must have passed
// validation.
func NewSceneFromFile(sceneFile *loaders.SceneFile, name string) *Scene {
	s := NewScene(name)
	applyCamera(&sceneFile.Camera, s)

	if bg := sceneFile.Background; bg != nil {
		switch bg.Type {
		case loaders.BackgroundGradient:
			s.Background = lights.NewGradientInfiniteLight(bg.Top.Vec3(), bg.Bottom.Vec3())
		case loaders.BackgroundUniform:
			s.Background = lights.NewUniformInfiniteLight(bg.Color.Vec3())
		}
	}

	// Convert all materials first so spheres can share them
	materials := make(map[string]material.Material, len(sceneFile.Materials))
	for name, stmt := range sceneFile.Materials {
		materials[name] = convertMaterial(stmt)
	}

	for _, stmt := range sceneFile.Spheres {
		mat := materials[stmt.Material]
		if stmt.Center1 != nil {
			s.Add(geometry.NewMovingSphere(stmt.Center.Vec3(), stmt.Center1.Vec3(), stmt.Radius, mat))
		} else {
			s.Add(geometry.NewSphere(stmt.Center.Vec3(), stmt.Radius, mat))
		}
	}

	return s
}

func convertMaterial(stmt loaders.MaterialStatement) material.Material {
	switch stmt.Type {
	case loaders.MaterialMetal:
		return material.NewMetal(stmt.Albedo.Vec3(), stmt.Fuzz)
	case loaders.MaterialDielectric:
		return material.NewDielectric(stmt.RefractiveIndex)
	default:
		return material.NewLambertian(stmt.Albedo.Vec3())
	}
}

// applyCamera copies every camera setting present in the file over the defaults
func applyCamera(stmt *loaders.CameraStatement, s *Scene) {
	c := &s.CameraConfig
	if stmt.AspectRatio != nil {
		c.AspectRatio = *stmt.AspectRatio
	}
	if stmt.Width != nil {
		c.Width = *stmt.Width
	}
	if stmt.SamplesPerPixel != nil {
		c.SamplesPerPixel = *stmt.SamplesPerPixel
	}
	if stmt.MaxDepth != nil {
		c.MaxDepth = *stmt.MaxDepth
	}
	if stmt.VFov != nil {
		c.VFov = *stmt.VFov
	}
	c.LookFrom = vecOr(stmt.LookFrom, c.LookFrom)
	c.LookAt = vecOr(stmt.LookAt, c.LookAt)
	c.Up = vecOr(stmt.Up, c.Up)
	if stmt.DefocusAngle != nil {
		c.DefocusAngle = *stmt.DefocusAngle
	}
	if stmt.FocusDistance != nil {
		c.FocusDistance = *stmt.FocusDistance
	}
}

func vecOr(v *loaders.Vec, fallback core.Vec3) core.Vec3 {
	if v == nil {
		return fallback
	}
	return v.Vec3()
}
