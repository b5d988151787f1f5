package qrcode

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/dev-tools-mcp/internal/colors"
)

func TestGenerate_Defaults(t *testing.T) {
	res, err := Generate("https://example.com", Options{})
	require.NoError(t, err)

	assert.Equal(t, DefaultSize, res.Width)
	assert.Equal(t, DefaultSize, res.Height)
	assert.Equal(t, "image/png", res.MimeType)
	assert.Equal(t, "#000000", res.Foreground)
	assert.Equal(t, "#FFFFFF", res.Background)
	assert.GreaterOrEqual(t, res.Modules, 21)

	data, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
	assert.Equal(t, DefaultSize, img.Bounds().Dy())
}

func TestRender_Colors(t *testing.T) {
	img, res, err := Render("hello", Options{Size: 300, Foreground: "#008c8c", Background: "#FFEEDD"})
	require.NoError(t, err)
	assert.Equal(t, "#008C8C", res.Foreground)

	fg := colors.MustParseHex("#008C8C").NRGBA()
	bg := colors.MustParseHex("#FFEEDD").NRGBA()

	// corners are quiet zone
	assert.Equal(t, color.Color(bg), img.At(0, 0))
	assert.Equal(t, color.Color(bg), img.At(299, 299))

	// only the two colors are used
	seenFG := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 3 {
		for x := b.Min.X; x < b.Max.X; x += 3 {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c == fg {
				seenFG = true
				continue
			}
			require.Equal(t, bg, c, "pixel (%d,%d)", x, y)
		}
	}
	assert.True(t, seenFG, "foreground color should be used")
}

func TestRender_Errors(t *testing.T) {
	_, _, err := Render("", Options{})
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, _, err = Render("x", Options{Size: 10})
	assert.Error(t, err)

	_, _, err = Render("x", Options{Size: MaxSize + 1})
	assert.Error(t, err)

	_, _, err = Render("x", Options{Foreground: "black"})
	assert.ErrorIs(t, err, colors.ErrInvalidColorFormat)

	_, _, err = Render("x", Options{Background: "#12"})
	assert.ErrorIs(t, err, colors.ErrInvalidColorFormat)
}

func TestRender_TooDenseForSize(t *testing.T) {
	long := bytes.Repeat([]byte("0123456789abcdef"), 60)
	_, _, err := Render(string(long), Options{Size: MinSize})
	assert.Error(t, err)
}
