package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// CameraConfig contains all camera and image parameters
type CameraConfig struct {
	AspectRatio     float64   // Image width over height
	Width           int       // Image width in pixels
	SamplesPerPixel int       // Number of rays per pixel
	MaxDepth        int       // Maximum ray bounce depth
	VFov            float64   // Vertical field of view in degrees
	LookFrom        core.Vec3 // Camera position
	LookAt          core.Vec3 // Point the camera looks at
	Up              core.Vec3 // Camera-relative up hint
	DefocusAngle    float64   // Variation angle of rays through each pixel, in degrees
	FocusDistance   float64   // Distance from LookFrom to the plane of perfect focus
}

// DefaultCameraConfig returns the default camera: a square 100px image with
// a 90° field of view looking down -Z from the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     1.0,
		Width:           100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDistance:   10,
	}
}

// Camera generates rays for rendering. It is immutable after construction
// and safe to share between workers.
type Camera struct {
	config CameraConfig

	width, height     int
	samplesPerPixel   int
	pixelSamplesScale float64

	center       core.Point3
	pixel00      core.Point3 // Location of pixel (0,0)
	pixelDeltaU  core.Vec3   // Offset to the pixel to the right
	pixelDeltaV  core.Vec3   // Offset to the pixel below
	u, v, w      core.Vec3   // Camera frame basis
	defocusDiskU core.Vec3
	defocusDiskV core.Vec3
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	width := max(1, config.Width)
	height := 1
	if config.AspectRatio > 0 {
		height = max(1, int(float64(width)/config.AspectRatio))
	}
	samplesPerPixel := max(1, config.SamplesPerPixel)

	center := config.LookFrom

	// Viewport dimensions on the focus plane
	theta := mgl64.DegToRad(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * float64(width) / float64(height)

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(width))
	pixelDeltaV := viewportV.Divide(float64(height))

	viewportUpperLeft := center.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDistance * math.Tan(mgl64.DegToRad(config.DefocusAngle/2))

	return &Camera{
		config:            config,
		width:             width,
		height:            height,
		samplesPerPixel:   samplesPerPixel,
		pixelSamplesScale: 1.0 / float64(samplesPerPixel),
		center:            center,
		pixel00:           pixel00,
		pixelDeltaU:       pixelDeltaU,
		pixelDeltaV:       pixelDeltaV,
		u:                 u,
		v:                 v,
		w:                 w,
		defocusDiskU:      u.Multiply(defocusRadius),
		defocusDiskV:      v.Multiply(defocusRadius),
	}
}

// GetRay generates a camera ray for pixel (i, j), where (0,0) is the top-left
// pixel. The ray is jittered within the pixel, starts on the defocus disk
// when depth of field is enabled, and carries a random time and its pixel tag.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offsetX := sampler.Get1D() - 0.5
	offsetY := sampler.Get1D() - 0.5
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offsetX)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offsetY))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	time := sampler.Get1D()
	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), time).WithPixel(i, j)
}

// defocusDiskSample returns a random point on the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Point3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.height }

// SamplesPerPixel returns the number of samples taken for every pixel
func (c *Camera) SamplesPerPixel() int { return c.samplesPerPixel }

// PixelSamplesScale returns the factor applied to a pixel's summed samples
func (c *Camera) PixelSamplesScale() float64 { return c.pixelSamplesScale }

// MaxDepth returns the maximum number of ray segments per path
func (c *Camera) MaxDepth() int { return c.config.MaxDepth }

// Center returns the camera position
func (c *Camera) Center() core.Point3 { return c.center }

// GetCameraForward returns the direction the camera is looking
func (c *Camera) GetCameraForward() core.Vec3 { return c.w.Negate() }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }
