package eyedropper

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/dev-tools-mcp/internal/colors"
)

// Loupe limits.
const (
	DefaultLoupeRadius = 5
	MaxLoupeRadius     = 32
	DefaultLoupeZoom   = 10
	MaxLoupeZoom       = 32
)

// LoupeOptions configures a magnified view around one pixel. Zero values
// take the defaults.
type LoupeOptions struct {
	Radius    int    `json:"radius" validate:"omitempty,min=1,max=32"`
	Zoom      int    `json:"zoom" validate:"omitempty,min=2,max=32"`
	GridColor string `json:"grid_color"` // hex; empty disables the grid
}

// LoupeResult is the magnified PNG plus the color under the cursor.
type LoupeResult struct {
	Center      *Sample `json:"center"`
	Region      Region  `json:"region"`
	Zoom        int     `json:"zoom"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
}

// Loupe crops the square of the given radius around (x, y), clipped to the
// image, and scales it up so each source pixel becomes a zoom by zoom cell.
// Cells are separated by grid lines when GridColor is set, and the center
// cell is outlined in black or white, whichever contrasts with it.
func Loupe(img image.Image, x, y int, opts LoupeOptions) (*LoupeResult, error) {
	center, err := SampleColor(img, x, y)
	if err != nil {
		return nil, err
	}

	radius, zoom := opts.Radius, opts.Zoom
	if radius == 0 {
		radius = DefaultLoupeRadius
	}
	if zoom == 0 {
		zoom = DefaultLoupeZoom
	}
	if radius < 1 || radius > MaxLoupeRadius {
		return nil, fmt.Errorf("radius must be between 1 and %d, got %d", MaxLoupeRadius, radius)
	}
	if zoom < 2 || zoom > MaxLoupeZoom {
		return nil, fmt.Errorf("zoom must be between 2 and %d, got %d", MaxLoupeZoom, zoom)
	}

	var grid *color.NRGBA
	if opts.GridColor != "" {
		c, err := colors.ParseHex(opts.GridColor)
		if err != nil {
			return nil, err
		}
		n := c.NRGBA()
		grid = &n
	}

	rect := image.Rect(x-radius, y-radius, x+radius+1, y+radius+1).Intersect(img.Bounds())
	cropped := imaging.Crop(img, rect)
	w, h := rect.Dx()*zoom, rect.Dy()*zoom

	out := imaging.Resize(cropped, w, h, imaging.NearestNeighbor)

	if grid != nil {
		for gx := zoom; gx < w; gx += zoom {
			for gy := 0; gy < h; gy++ {
				out.SetNRGBA(gx, gy, *grid)
			}
		}
		for gy := zoom; gy < h; gy += zoom {
			for gx := 0; gx < w; gx++ {
				out.SetNRGBA(gx, gy, *grid)
			}
		}
	}

	outline := color.NRGBA{A: 255}
	if center.Color.HSL.L < 50 {
		outline = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	cx, cy := (x-rect.Min.X)*zoom, (y-rect.Min.Y)*zoom
	for i := 0; i < zoom; i++ {
		out.SetNRGBA(cx+i, cy, outline)
		out.SetNRGBA(cx+i, cy+zoom-1, outline)
		out.SetNRGBA(cx, cy+i, outline)
		out.SetNRGBA(cx+zoom-1, cy+i, outline)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode loupe: %w", err)
	}

	return &LoupeResult{
		Center:      center,
		Region:      Region{X1: rect.Min.X, Y1: rect.Min.Y, X2: rect.Max.X, Y2: rect.Max.Y},
		Zoom:        zoom,
		Width:       w,
		Height:      h,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
