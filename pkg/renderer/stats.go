package renderer

import (
	"fmt"
	"image"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of camera samples taken
	SamplesPerPixel  int           // Samples taken for every pixel
	RaysCast         int           // Ray segments intersected against the world
	Tiles            int           // Number of tiles rendered
	Workers          int           // Number of parallel workers
	Elapsed          time.Duration // Wall-clock render time
	AverageLuminance float64       // Mean luminance of the final image in [0,1]
}

// Merge accumulates the counters of other into s
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.RaysCast += other.RaysCast
	s.Tiles += other.Tiles
}

// AverageRaysPerSample returns the mean path length in ray segments
func (s RenderStats) AverageRaysPerSample() float64 {
	if s.TotalSamples == 0 {
		return 0
	}
	return float64(s.RaysCast) / float64(s.TotalSamples)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img
// with channels scaled to [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
		}
	}
	return total / float64(pixels)
}

// WriteStatsTable renders stats as a text table to w
func WriteStatsTable(w io.Writer, stats RenderStats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pixels", "Samples/pixel", "Samples", "Rays", "Rays/sample", "Tiles", "Workers", "Luminance", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.SamplesPerPixel),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%d", stats.RaysCast),
		fmt.Sprintf("%.2f", stats.AverageRaysPerSample()),
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%.3f", stats.AverageLuminance),
		stats.Elapsed.String(),
	})
	table.Render()
}
