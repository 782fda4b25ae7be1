package core

import "fmt"

// PixelTag identifies the image pixel a ray was cast for. It is carried
// through scatter chains for tracing only.
type PixelTag struct {
	X, Y int
}

func (p PixelTag) String() string {
	return fmt.Sprintf("[%d,%d]", p.X, p.Y)
}

// Ray represents a ray with an origin and direction, the time it was cast at
// (in [0,1), used by moving spheres) and an optional pixel tag.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Time      float64
	Pixel     *PixelTag
}

// NewRay creates a new ray at time 0 with no pixel tag
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewRayAtTime creates a new ray cast at the given time
func NewRayAtTime(origin, direction Vec3, time float64) Ray {
	return Ray{Origin: origin, Direction: direction, Time: time}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Continue returns a new ray from origin along direction that keeps r's time
// and pixel tag.
func (r Ray) Continue(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Time: r.Time, Pixel: r.Pixel}
}

// WithPixel returns a copy of r tagged with pixel (x, y)
func (r Ray) WithPixel(x, y int) Ray {
	r.Pixel = &PixelTag{X: x, Y: y}
	return r
}
