package renderer

import (
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// pathTracer is implemented by integrators that can report how many ray
// segments a path used
type pathTracer interface {
	Trace(ray core.Ray, depth int, world geometry.Hittable, sampler core.Sampler) (core.Color, int)
}

// TileRenderer renders individual tiles using an integrator. It holds no
// mutable state and is shared by all workers.
type TileRenderer struct {
	camera     *Camera
	world      geometry.Hittable
	integrator integrator.Integrator
	logger     core.Logger
}

// NewTileRenderer creates a new tile renderer for the given camera, world and integrator
func NewTileRenderer(camera *Camera, world geometry.Hittable, integratorInst integrator.Integrator, logger core.Logger) *TileRenderer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &TileRenderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		logger:     logger,
	}
}

// RenderTile renders every pixel of tile into raster. Tiles never overlap,
// so concurrent calls for different tiles may share one raster.
func (tr *TileRenderer) RenderTile(tile *Tile, raster *Raster) RenderStats {
	sampler := core.NewRandomSampler(tile.Random)
	stats := RenderStats{
		TotalPixels:     tile.Bounds.Dx() * tile.Bounds.Dy(),
		SamplesPerPixel: tr.camera.SamplesPerPixel(),
		Tiles:           1,
	}

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			color, rays := tr.samplePixel(i, j, sampler)
			raster.SetPixel(i, j, ToneMap(color))
			stats.TotalSamples += tr.camera.SamplesPerPixel()
			stats.RaysCast += rays
		}
	}

	return stats
}

// samplePixel averages SamplesPerPixel paths through pixel (i, j)
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler) (core.Color, int) {
	var colorAccum core.Color
	rays := 0

	for s := 0; s < tr.camera.SamplesPerPixel(); s++ {
		ray := tr.camera.GetRay(i, j, sampler)
		color, segments := tr.rayColor(ray, sampler)
		if !isFinite(color) {
			tr.logger.Printf("Dropping non-finite sample %v for pixel %v\n", color, ray.Pixel)
			continue
		}
		colorAccum = colorAccum.Add(color)
		rays += segments
	}

	return colorAccum.Multiply(tr.camera.PixelSamplesScale()), rays
}

func (tr *TileRenderer) rayColor(ray core.Ray, sampler core.Sampler) (core.Color, int) {
	if pt, ok := tr.integrator.(pathTracer); ok {
		return pt.Trace(ray, tr.camera.MaxDepth(), tr.world, sampler)
	}
	return tr.integrator.RayColor(ray, tr.camera.MaxDepth(), tr.world, sampler), 1
}

func isFinite(c core.Color) bool {
	for _, x := range []float64{c.X, c.Y, c.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
