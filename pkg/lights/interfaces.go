package lights

import "github.com/df07/go-sphere-tracer/pkg/core"

// Background supplies the radiance seen along rays that escape the scene
type Background interface {
	// Emit evaluates emission in the direction of the given ray
	Emit(ray core.Ray) core.Color
}
