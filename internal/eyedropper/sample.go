package eyedropper

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/dev-tools-mcp/internal/colors"
)

// ErrOutOfBounds is returned when a coordinate or region falls outside the image.
var ErrOutOfBounds = errors.New("outside image bounds")

// Sample is the color found at one pixel.
type Sample struct {
	X     int                 `json:"x"`
	Y     int                 `json:"y"`
	Alpha uint8               `json:"alpha"`
	Color *colors.ColorResult `json:"color"`
}

// SampleColor reads the pixel at (x, y). Coordinates are 0-based from the
// top-left corner. Alpha is reported separately; the color itself is opaque.
func SampleColor(img image.Image, x, y int) (*Sample, error) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return nil, fmt.Errorf("pixel (%d,%d) %w", x, y, ErrOutOfBounds)
	}

	r, g, b, a := img.At(x, y).RGBA()
	c := colors.FromRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))

	return &Sample{
		X:     x,
		Y:     y,
		Alpha: uint8(a >> 8),
		Color: c.Describe(),
	}, nil
}

// Region is a rectangle with an inclusive top-left and exclusive bottom-right corner.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Swatch is one palette entry.
type Swatch struct {
	Hex        string  `json:"hex"`
	Percentage float64 `json:"percentage"`
	RGB        string  `json:"rgb"`
	HSL        string  `json:"hsl"`
}

// Palette returns the count most common colors of img, or of region when it
// is non-nil, most common first.
//
// Channels are quantized to multiples of 16 before counting so near-identical
// shades group together; #F0F0F0 and #FAFAFA share a bucket.
func Palette(img image.Image, count int, region *Region) ([]Swatch, error) {
	if count < 1 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	bounds := img.Bounds()
	if region != nil {
		r := image.Rect(region.X1, region.Y1, region.X2, region.Y2)
		if r.Empty() || !r.In(bounds) {
			return nil, fmt.Errorf("region (%d,%d)-(%d,%d) %w", region.X1, region.Y1, region.X2, region.Y2, ErrOutOfBounds)
		}
		bounds = r
	}

	counts := make(map[colors.RGBColor]int)
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := colors.RGBColor{
				R: uint8((r >> 8) / 16 * 16),
				G: uint8((g >> 8) / 16 * 16),
				B: uint8((b >> 8) / 16 * 16),
			}
			counts[key]++
			total++
		}
	}

	swatches := make([]Swatch, 0, len(counts))
	for rgb, n := range counts {
		c := colors.FromRGB(rgb.R, rgb.G, rgb.B)
		swatches = append(swatches, Swatch{
			Hex:        c.Hex(),
			Percentage: float64(n) / float64(total) * 100,
			RGB:        c.RGBString(),
			HSL:        c.HSLString(),
		})
	}

	sort.Slice(swatches, func(i, j int) bool {
		if swatches[i].Percentage != swatches[j].Percentage {
			return swatches[i].Percentage > swatches[j].Percentage
		}
		return swatches[i].Hex < swatches[j].Hex
	})

	if len(swatches) > count {
		swatches = swatches[:count]
	}
	return swatches, nil
}
