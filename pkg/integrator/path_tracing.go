package integrator

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/lights"
)

// ShadowAcneEpsilon is the minimum hit distance, which keeps scattered rays
// from re-hitting the surface they leave
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with no
// direct light sampling. Radiance only comes from the background.
type PathTracingIntegrator struct {
	background lights.Background
}

// NewPathTracingIntegrator creates a new path tracing integrator. A nil
// background falls back to the default sky gradient.
func NewPathTracingIntegrator(background lights.Background) *PathTracingIntegrator {
	if background == nil {
		background = lights.NewSkyGradient()
	}
	return &PathTracingIntegrator{background: background}
}

// RayColor implements the Integrator interface
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, depth int, world geometry.Hittable, sampler core.Sampler) core.Color {
	color, _ := pt.Trace(ray, depth, world, sampler)
	return color
}

// Trace follows a path iteratively and also reports how many ray segments
// were intersected against the world
func (pt *PathTracingIntegrator) Trace(ray core.Ray, depth int, world geometry.Hittable, sampler core.Sampler) (core.Color, int) {
	throughput := core.NewColor(1, 1, 1)
	segments := 0

	for ; depth > 0; depth-- {
		segments++
		hit, isHit := world.Hit(ray, core.NewInterval(ShadowAcneEpsilon, math.Inf(1)))
		if !isHit {
			return throughput.MultiplyVec(pt.background.Emit(ray)), segments
		}
		if hit.Material == nil {
			return core.Color{}, segments
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			// Absorbed
			return core.Color{}, segments
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce limit reached, no more light is gathered
	return core.Color{}, segments
}
