package renderer

import (
	"image"
	"runtime"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

const (
	// DefaultTileHeight is the number of image rows in a tile
	DefaultTileHeight = 8
	// DefaultSeed is the master seed used when none is configured
	DefaultSeed = 42
)

// RenderConfig contains parallel rendering configuration
type RenderConfig struct {
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	TileHeight int   // Rows per tile
	Seed       int64 // Master seed that tile generators are derived from
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: runtime.NumCPU(),
		TileHeight: DefaultTileHeight,
		Seed:       DefaultSeed,
	}
}

// TileCompletion reports that one tile of a render has finished
type TileCompletion struct {
	TileID    int
	Bounds    image.Rectangle
	WorkerID  int
	Completed int // Tiles finished so far, including this one
	Total     int // Tiles in the render
	Duration  time.Duration
	Raster    *Raster // Image being rendered; rows of finished tiles are final
}

// Raytracer drives an integrator over every pixel of the camera image
type Raytracer struct {
	camera     *Camera
	world      geometry.Hittable
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. A nil integrator uses path tracing
// against the default sky and a nil logger discards output.
func NewRaytracer(camera *Camera, world geometry.Hittable, integratorInst integrator.Integrator, config RenderConfig, logger core.Logger) *Raytracer {
	if integratorInst == nil {
		integratorInst = integrator.NewPathTracingIntegrator(nil)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if config.TileHeight <= 0 {
		config.TileHeight = DefaultTileHeight
	}
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// Camera returns the camera being rendered
func (rt *Raytracer) Camera() *Camera { return rt.camera }

// Render renders the whole image and returns the tone-mapped raster. The
// optional callback is invoked from the calling goroutine as each tile
// finishes, in completion order.
func (rt *Raytracer) Render(onTile func(TileCompletion)) (*Raster, RenderStats) {
	start := time.Now()
	width, height := rt.camera.Width(), rt.camera.Height()
	raster := NewRaster(width, height)

	tiles := NewTileGrid(width, height, rt.config.TileHeight, rt.config.Seed)
	tileRenderer := NewTileRenderer(rt.camera, rt.world, rt.integrator, rt.logger)
	pool := NewWorkerPool(tileRenderer, rt.config.NumWorkers, len(tiles))

	rt.logger.Printf("Rendering %dx%d, %d spp, depth %d: %d tiles on %d workers\n",
		width, height, rt.camera.SamplesPerPixel(), rt.camera.MaxDepth(), len(tiles), pool.GetNumWorkers())

	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Raster: raster})
	}

	stats := RenderStats{SamplesPerPixel: rt.camera.SamplesPerPixel(), Workers: pool.GetNumWorkers()}
	for completed := 1; completed <= len(tiles); completed++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Merge(result.Stats)
		if onTile != nil {
			tile := tiles[result.TaskID]
			onTile(TileCompletion{
				TileID:    tile.ID,
				Bounds:    tile.Bounds,
				WorkerID:  result.WorkerID,
				Completed: completed,
				Total:     len(tiles),
				Duration:  result.Duration,
				Raster:    raster,
			})
		}
	}
	pool.Stop()

	stats.Elapsed = time.Since(start)
	stats.AverageLuminance = CalculateAverageLuminance(raster)
	rt.logger.Printf("Render finished in %v (%d rays)\n", stats.Elapsed, stats.RaysCast)

	return raster, stats
}
