package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// NewFinalScene creates a 22x22 field of small random spheres around three
// large feature spheres. Diffuse spheres bounce upward during the exposure.
// The layout is drawn from seed, so a seed always gives the same scene.
func NewFinalScene(seed int64) *Scene {
	s := NewScene("final")

	cameraConfig := &s.CameraConfig
	cameraConfig.AspectRatio = 16.0 / 9.0
	cameraConfig.Width = 400
	cameraConfig.SamplesPerPixel = 100
	cameraConfig.MaxDepth = 50
	cameraConfig.VFov = 20
	cameraConfig.LookFrom = core.NewVec3(13, 2, 3)
	cameraConfig.LookAt = core.NewVec3(0, 0, 0)
	cameraConfig.DefocusAngle = 0.6
	cameraConfig.FocusDistance = 10

	sampler := core.NewSeededSampler(seed)

	ground := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	glass := material.NewDielectric(1.5)
	metalAlbedo := core.NewInterval(0.5, 1)
	metalFuzz := core.NewInterval(0, 0.5)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(sampler)
				center1 := center.Add(core.NewVec3(0, 0.5*sampler.Get1D(), 0))
				s.Add(geometry.NewMovingSphere(center, center1, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3InInterval(sampler, metalAlbedo)
				fuzz := metalFuzz.Random(sampler)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, glass))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}
