package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

const tolerance = 1e-10

func newTestSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func vecClose(a, b core.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// taggedRay returns a ray with a non-zero time and a pixel tag so tests can
// check that scattered rays inherit both.
func taggedRay(origin, direction core.Vec3) core.Ray {
	return core.NewRayAtTime(origin, direction, 0.25).WithPixel(3, 7)
}

func checkInherited(t *testing.T, in, out core.Ray) {
	t.Helper()
	if out.Time != in.Time {
		t.Errorf("Scattered ray time %f, expected %f", out.Time, in.Time)
	}
	if out.Pixel == nil || *out.Pixel != *in.Pixel {
		t.Errorf("Scattered ray pixel tag %v, expected %v", out.Pixel, in.Pixel)
	}
}

// constSampler returns the same draw every time
type constSampler float64

func (c constSampler) Get1D() float64   { return float64(c) }
func (c constSampler) Get2D() core.Vec2 { return core.NewVec2(float64(c), float64(c)) }
