package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// NewDefaultScene creates a grey sphere resting on a large ground sphere,
// viewed by the default camera
func NewDefaultScene() *Scene {
	s := NewScene("default")

	grey := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, grey),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, grey),
	)

	return s
}

// NewThreeSpheresScene creates a hollow glass sphere, a diffuse sphere and a
// fuzzed metal sphere side by side on a yellow ground
func NewThreeSpheresScene() *Scene {
	s := NewScene("three-spheres")

	cameraConfig := &s.CameraConfig
	cameraConfig.AspectRatio = 16.0 / 9.0
	cameraConfig.Width = 400
	cameraConfig.SamplesPerPixel = 100
	cameraConfig.MaxDepth = 50
	cameraConfig.VFov = 20
	cameraConfig.LookFrom = core.NewVec3(-2, 2, 1)
	cameraConfig.LookAt = core.NewVec3(0, 0, -1)
	cameraConfig.DefocusAngle = 10
	cameraConfig.FocusDistance = 3.4

	ground := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.5)
	bubble := material.NewDielectric(1.0 / 1.5) // Air inside glass
	metal := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, center),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.4, bubble),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, metal),
	)

	return s
}
