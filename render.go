package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/log"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

const (
	scenesDir = "scenes"
	outputDir = "output"
)

func renderFlags() []cli.Flag {
	defaults := renderer.DefaultRenderConfig()
	return []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "default",
			Usage: "built-in scene id, a scene name under scenes/ or a path to a .json scene file",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "image width in pixels",
		},
		cli.Float64Flag{
			Name:  "aspect",
			Usage: "image aspect ratio (width / height)",
		},
		cli.IntFlag{
			Name:  "spp",
			Usage: "samples per pixel",
		},
		cli.IntFlag{
			Name:  "depth",
			Usage: "maximum ray segments per path",
		},
		cli.Float64Flag{
			Name:  "vfov",
			Usage: "vertical field of view in degrees",
		},
		cli.StringFlag{
			Name:  "lookfrom",
			Usage: "camera position as x,y,z",
		},
		cli.StringFlag{
			Name:  "lookat",
			Usage: "camera target as x,y,z",
		},
		cli.Float64Flag{
			Name:  "defocus",
			Usage: "defocus angle in degrees (0 disables depth of field)",
		},
		cli.Float64Flag{
			Name:  "focus",
			Usage: "distance to the plane of perfect focus",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: defaults.Seed,
			Usage: "master seed for scene generation and sampling",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: defaults.NumWorkers,
			Usage: "number of render workers",
		},
		cli.IntFlag{
			Name:  "tile-height",
			Value: defaults.TileHeight,
			Usage: "image rows per tile",
		},
		cli.StringFlag{
			Name:  "out, o",
			Usage: "output image file; - writes to stdout",
		},
		cli.StringFlag{
			Name:  "format, f",
			Usage: "output format: ppm, png, bmp or tiff (defaults to the --out extension, then ppm)",
		},
	}
}

// Render a single frame of the selected scene.
func renderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sceneName := ctx.String("scene")
	sc, err := createScene(sceneName, ctx.Int64("seed"))
	if err != nil {
		return err
	}
	if err := applyCameraFlags(ctx, &sc.CameraConfig); err != nil {
		return err
	}

	outPath := ctx.String("out")
	format, err := selectFormat(ctx.String("format"), outPath)
	if err != nil {
		return err
	}

	config := renderer.RenderConfig{
		NumWorkers: ctx.Int("workers"),
		TileHeight: ctx.Int("tile-height"),
		Seed:       ctx.Int64("seed"),
	}

	logger.Noticef("rendering scene %q (%d objects)", sc.Name, sc.GetPrimitiveCount())
	rt := sc.NewRaytracer(config, log.NewPrinter(logger, log.Info))
	img, stats := rt.Render(func(tc renderer.TileCompletion) {
		logger.Debugf("tile %d (rows %d-%d) done by worker %d in %v [%d/%d]",
			tc.TileID, tc.Bounds.Min.Y, tc.Bounds.Max.Y-1, tc.WorkerID, tc.Duration, tc.Completed, tc.Total)
	})

	if outPath == "-" {
		if err := output.Encode(os.Stdout, img, format); err != nil {
			return err
		}
	} else {
		if outPath == "" {
			outPath = createOutputPath(sceneName, format, time.Now())
		}
		if err := output.SaveImage(outPath, img, format); err != nil {
			return err
		}
		logger.Noticef("render saved as %s", outPath)
	}

	displayFrameStats(stats)
	return nil
}

// List built-in scenes and discovered scene files.
func listScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	response, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	for _, group := range response.Groups {
		fmt.Printf("%s:\n", group.Name)
		for _, info := range group.Scenes {
			if info.Description != "" {
				fmt.Printf("  %-24s %s\n", info.ID, info.Description)
			} else {
				fmt.Printf("  %s\n", info.ID)
			}
		}
	}
	return nil
}

// createScene resolves a scene name: a .json path, a built-in id, or a file
// under the scenes directory.
func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, errors.New("scene name cannot be empty")
	}

	if strings.HasSuffix(strings.ToLower(sceneType), ".json") {
		return scene.NewJSONScene(sceneType)
	}

	sc, err := scene.NewBuiltinScene(sceneType, seed)
	if err == nil {
		return sc, nil
	}

	if fileScene, ok := tryLoadJSONScene(sceneType); ok {
		return fileScene, nil
	}
	return nil, err
}

// tryLoadJSONScene looks for scenes/<name>.json
func tryLoadJSONScene(name string) (*scene.Scene, bool) {
	path := filepath.Join(scenesDir, name+".json")
	if _, err := os.Stat(path); err != nil {
		return nil, false
	}

	sc, err := scene.NewJSONScene(path)
	if err != nil {
		logger.Warningf("could not load %s: %v", path, err)
		return nil, false
	}
	return sc, true
}

// cameraFlags is the part of *cli.Context that camera overrides read
type cameraFlags interface {
	IsSet(name string) bool
	Int(name string) int
	Float64(name string) float64
	String(name string) string
}

// applyCameraFlags overrides camera settings with the flags the user set
func applyCameraFlags(ctx cameraFlags, config *renderer.CameraConfig) error {
	if ctx.IsSet("width") {
		config.Width = ctx.Int("width")
	}
	if ctx.IsSet("aspect") {
		config.AspectRatio = ctx.Float64("aspect")
	}
	if ctx.IsSet("spp") {
		config.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("depth") {
		config.MaxDepth = ctx.Int("depth")
	}
	if ctx.IsSet("vfov") {
		config.VFov = ctx.Float64("vfov")
	}
	if ctx.IsSet("defocus") {
		config.DefocusAngle = ctx.Float64("defocus")
	}
	if ctx.IsSet("focus") {
		config.FocusDistance = ctx.Float64("focus")
	}
	if ctx.IsSet("lookfrom") {
		v, err := parseVec3(ctx.String("lookfrom"))
		if err != nil {
			return fmt.Errorf("invalid lookfrom: %w", err)
		}
		config.LookFrom = v
	}
	if ctx.IsSet("lookat") {
		v, err := parseVec3(ctx.String("lookat"))
		if err != nil {
			return fmt.Errorf("invalid lookat: %w", err)
		}
		config.LookAt = v
	}

	if config.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", config.Width)
	}
	if config.AspectRatio <= 0 {
		return fmt.Errorf("aspect ratio must be positive, got %g", config.AspectRatio)
	}
	return nil
}

// parseVec3 parses "x,y,z"
func parseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}

	var xyz [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		xyz[i] = f
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

// selectFormat picks the explicit format, else the output extension, else PPM
func selectFormat(name, outPath string) (output.Format, error) {
	if name != "" {
		return output.ParseFormat(name)
	}
	if outPath != "" && outPath != "-" && filepath.Ext(outPath) != "" {
		return output.FormatForPath(outPath)
	}
	return output.FormatPPM, nil
}

// createOutputPath returns output/<scene>/render_<timestamp>.<ext>. Scene file
// paths are reduced to their base name.
func createOutputPath(sceneName string, format output.Format, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	timestamp := now.Format("20060102_150405")
	return filepath.Join(outputDir, name, fmt.Sprintf("render_%s.%s", timestamp, format))
}

func displayFrameStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	renderer.WriteStatsTable(&buf, stats)
	logger.Noticef("frame statistics\n%s", buf.String())
}
