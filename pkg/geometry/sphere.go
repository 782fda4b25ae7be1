package geometry

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Sphere represents a sphere shape. Its center is stored as a ray over time
// so moving and static spheres share one intersection routine.
type Sphere struct {
	center   core.Ray
	Radius   float64
	Material material.Material
}

// NewSphere creates a new static sphere. Negative radii are clamped to zero.
func NewSphere(center core.Point3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		center:   core.NewRay(center, core.Vec3{}),
		Radius:   math.Max(0, radius),
		Material: mat,
	}
}

// NewMovingSphere creates a sphere whose center travels from center0 at
// time 0 to center1 at time 1
func NewMovingSphere(center0, center1 core.Point3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		center:   core.NewRay(center0, center1.Subtract(center0)),
		Radius:   math.Max(0, radius),
		Material: mat,
	}
}

// Center returns the sphere center at the given time
func (s *Sphere) Center(time float64) core.Point3 {
	return s.center.At(time)
}

// IsMoving reports whether the center changes over time
func (s *Sphere) IsMoving() bool {
	return s.center.Direction != (core.Vec3{})
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	currentCenter := s.Center(ray.Time)

	// Vector from ray origin to sphere center
	oc := currentCenter.Subtract(ray.Origin)

	// Quadratic equation coefficients with b = -2h
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c

	// NaN fails this comparison too, so NaN rays fall through to the root checks below
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hitRecord.Point.Subtract(currentCenter).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
