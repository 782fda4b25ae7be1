package lights

import "github.com/df07/go-sphere-tracer/pkg/core"

// GradientInfiniteLight is an infinitely distant sky that blends from a
// bottom color straight down to a top color straight up
type GradientInfiniteLight struct {
	topColor    core.Color
	bottomColor core.Color
}

// NewGradientInfiniteLight creates a new gradient infinite light
func NewGradientInfiniteLight(topColor, bottomColor core.Color) *GradientInfiniteLight {
	return &GradientInfiniteLight{
		topColor:    topColor,
		bottomColor: bottomColor,
	}
}

// NewSkyGradient creates the default sky: white at the horizon below, light
// blue overhead
func NewSkyGradient() *GradientInfiniteLight {
	return NewGradientInfiniteLight(core.NewColor(0.5, 0.7, 1.0), core.NewColor(1.0, 1.0, 1.0))
}

// TopColor returns the color seen looking straight up
func (gil *GradientInfiniteLight) TopColor() core.Color { return gil.topColor }

// BottomColor returns the color seen looking straight down
func (gil *GradientInfiniteLight) BottomColor() core.Color { return gil.bottomColor }

// Emit implements the Background interface
func (gil *GradientInfiniteLight) Emit(ray core.Ray) core.Color {
	direction := ray.Direction.Normalize()
	t := 0.5 * (direction.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return core.Lerp(t, gil.bottomColor, gil.topColor)
}
