package lights

import "github.com/df07/go-sphere-tracer/pkg/core"

// UniformInfiniteLight emits the same color in every direction
type UniformInfiniteLight struct {
	emission core.Color
}

// NewUniformInfiniteLight creates a new uniform infinite light
func NewUniformInfiniteLight(emission core.Color) *UniformInfiniteLight {
	return &UniformInfiniteLight{emission: emission}
}

// Emit implements the Background interface
func (uil *UniformInfiniteLight) Emit(ray core.Ray) core.Color {
	return uil.emission
}
