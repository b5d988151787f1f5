// Package qrcode renders text as a colored QR code PNG.
package qrcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/transform"
	"github.com/boombuler/barcode/qr"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/dev-tools-mcp/internal/colors"
)

// Size limits in pixels.
const (
	DefaultSize = 256
	MinSize     = 64
	MaxSize     = 1024
)

// quietZone is the blank margin, in modules, kept on each side.
const quietZone = 4

// ErrEmptyInput is returned when there is no text to encode.
var ErrEmptyInput = errors.New("no text to encode")

// Options controls rendering. Zero values mean the defaults: 256 px, black
// on white.
type Options struct {
	Size       int    `json:"size" validate:"omitempty,min=64,max=1024"`
	Foreground string `json:"fg_color"`
	Background string `json:"bg_color"`
}

// Result is a rendered QR code.
type Result struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Modules     int    `json:"modules"`
	Foreground  string `json:"fg_color"`
	Background  string `json:"bg_color"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Generate encodes text at error correction level M and renders it as a
// square PNG of opts.Size pixels.
//
// Modules are scaled by the largest whole factor that fits the code plus its
// quiet zone, then centered, so every module is the same number of pixels.
func Generate(text string, opts Options) (*Result, error) {
	img, res, err := Render(text, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	res.ImageBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	res.MimeType = "image/png"
	return res, nil
}

// Render is Generate without the PNG encoding step.
func Render(text string, opts Options) (image.Image, *Result, error) {
	if text == "" {
		return nil, nil, ErrEmptyInput
	}
	if opts.Size == 0 {
		opts.Size = DefaultSize
	}
	if opts.Size < MinSize || opts.Size > MaxSize {
		return nil, nil, fmt.Errorf("size must be between %d and %d, got %d", MinSize, MaxSize, opts.Size)
	}
	fg, err := parseColor(opts.Foreground, "#000000")
	if err != nil {
		return nil, nil, fmt.Errorf("foreground: %w", err)
	}
	bg, err := parseColor(opts.Background, "#FFFFFF")
	if err != nil {
		return nil, nil, fmt.Errorf("background: %w", err)
	}

	code, err := qr.Encode(text, qr.M, qr.Auto)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	modules := code.Bounds().Dx()
	scale := opts.Size / (modules + 2*quietZone)
	if scale < 1 {
		return nil, nil, fmt.Errorf("text needs %d modules, too many for %d px", modules, opts.Size)
	}

	scaled := transform.Resize(code, modules*scale, modules*scale, transform.NearestNeighbor)
	canvas := imaging.New(opts.Size, opts.Size, color.White)
	canvas = imaging.PasteCenter(canvas, scaled)

	fgc, bgc := fg.NRGBA(), bg.NRGBA()
	out := imaging.AdjustFunc(canvas, func(c color.NRGBA) color.NRGBA {
		if int(c.R)+int(c.G)+int(c.B) < 3*128 {
			return fgc
		}
		return bgc
	})

	return out, &Result{
		Width:      opts.Size,
		Height:     opts.Size,
		Modules:    modules,
		Foreground: fg.Hex(),
		Background: bg.Hex(),
	}, nil
}

func parseColor(s, fallback string) (colors.Color, error) {
	if s == "" {
		s = fallback
	}
	return colors.ParseHex(s)
}
