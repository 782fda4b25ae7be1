package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/lights"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// absorber swallows every ray that hits it
type absorber struct{}

func (absorber) Scatter(core.Ray, material.HitRecord, core.Sampler) (material.ScatterResult, bool) {
	return material.ScatterResult{}, false
}

func colorClose(a, b core.Color) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9 && math.Abs(a.Z-b.Z) < 1e-9
}

// createTestWorld creates a single lambertian sphere in front of the origin
func createTestWorld() *geometry.HittableList {
	lambertian := material.NewLambertian(core.NewColor(0.7, 0.3, 0.3))
	return geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertian))
}

func TestPathTracingDepthTermination(t *testing.T) {
	world := createTestWorld()
	sampler := core.NewSeededSampler(42)
	integrator := NewPathTracingIntegrator(nil)

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), // at the sphere
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),  // at the sky
	}
	for _, ray := range rays {
		for _, depth := range []int{0, -3} {
			if c := integrator.RayColor(ray, depth, world, sampler); c != (core.Color{}) {
				t.Errorf("Expected black for depth %d, got %v", depth, c)
			}
		}
	}
}

func TestPathTracingSkyGradient(t *testing.T) {
	integrator := NewPathTracingIntegrator(lights.NewSkyGradient())
	empty := geometry.NewHittableList()
	sampler := core.NewSeededSampler(42)
	origin := core.NewVec3(0, 0, 0)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Color
	}{
		{"up", core.NewVec3(0, 1, 0), core.NewColor(0.5, 0.7, 1.0)},
		{"down", core.NewVec3(0, -1, 0), core.NewColor(1, 1, 1)},
		{"horizon", core.NewVec3(0, 0, -1), core.NewColor(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := integrator.RayColor(core.NewRay(origin, tt.direction), 1, empty, sampler)
			if !colorClose(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPathTracingAbsorption(t *testing.T) {
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, -2), 1, absorber{}))
	integrator := NewPathTracingIntegrator(nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	c, segments := integrator.Trace(ray, 10, world, core.NewSeededSampler(42))
	if c != (core.Color{}) {
		t.Errorf("Expected absorbed path to be black, got %v", c)
	}
	if segments != 1 {
		t.Errorf("Expected 1 segment before absorption, got %d", segments)
	}
}

func TestPathTracingAttenuationMultiplies(t *testing.T) {
	albedo := core.NewColor(0.8, 0.6, 0.2)
	mirror := material.NewMetal(albedo, 0)
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mirror))
	background := core.NewColor(0.5, 0.5, 0.5)
	integrator := NewPathTracingIntegrator(lights.NewUniformInfiniteLight(background))

	// Head-on ray bounces straight back and escapes
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	sampler := core.NewSeededSampler(42)

	if c := integrator.RayColor(ray, 1, world, sampler); c != (core.Color{}) {
		t.Errorf("Expected black when the bounce limit cuts the path, got %v", c)
	}

	expected := albedo.MultiplyVec(background)
	c, segments := integrator.Trace(ray, 2, world, sampler)
	if !colorClose(c, expected) {
		t.Errorf("Expected %v, got %v", expected, c)
	}
	if segments != 2 {
		t.Errorf("Expected 2 segments, got %d", segments)
	}
}

func TestPathTracingEnclosedPathNeverEscapes(t *testing.T) {
	// Looking out from inside a diffuse sphere, nothing reaches the background
	inside := material.NewLambertian(core.NewColor(0.9, 0.9, 0.9))
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, 0), 10, inside))
	integrator := NewPathTracingIntegrator(nil)
	sampler := core.NewSeededSampler(42)

	for i := 0; i < 50; i++ {
		dir := core.RandomUnitVector(sampler)
		c, segments := integrator.Trace(core.NewRay(core.NewVec3(0, 0, 0), dir), 5, world, sampler)
		if c != (core.Color{}) {
			t.Fatalf("Expected black inside a closed sphere, got %v", c)
		}
		if segments != 5 {
			t.Fatalf("Expected all 5 segments to be used, got %d", segments)
		}
	}
}

func TestPathTracingNonNegative(t *testing.T) {
	world := createTestWorld()
	world.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewColor(0.8, 0.8, 0))))
	world.Add(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewDielectric(1.5)))
	integrator := NewPathTracingIntegrator(nil)
	sampler := core.NewSeededSampler(7)

	for i := 0; i < 500; i++ {
		dir := core.RandomUnitVector(sampler)
		c := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), dir), 10, world, sampler)
		if c.X < 0 || c.Y < 0 || c.Z < 0 {
			t.Fatalf("Expected non-negative radiance, got %v", c)
		}
	}
}
