package qr

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/ciphervault/internal/domain"
)

func defaultSettings() domain.QRSettings {
	return domain.QRSettings{
		Size:       domain.DefaultQRSize,
		Margin:     domain.DefaultQRMargin,
		Foreground: domain.DefaultQRForeground,
		Background: domain.DefaultQRBackground,
	}
}

func TestPNGUsesConfiguredColours(t *testing.T) {
	r, err := NewRenderer(defaultSettings())
	require.NoError(t, err)

	data, err := r.PNG(context.Background(), "U2FsdGVkX18BAgMEBQYHCD/D6BgyIgRAnRZosFKUgkc=")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())

	// the corner sits inside the quiet zone
	assert.Equal(t, color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}, color.RGBAModel.Convert(img.At(0, 0)))

	var foreground bool
	for y := 0; y < 256 && !foreground; y++ {
		for x := 0; x < 256; x++ {
			if color.RGBAModel.Convert(img.At(x, y)) == (color.RGBA{R: 0x00, G: 0xff, B: 0x88, A: 0xff}) {
				foreground = true
				break
			}
		}
	}
	assert.True(t, foreground, "expected dark modules in the foreground colour")
}

func TestPNGRejectsEmptyText(t *testing.T) {
	r, err := NewRenderer(defaultSettings())
	require.NoError(t, err)

	_, err = r.PNG(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestPNGHonoursCancellation(t *testing.T) {
	r, err := NewRenderer(defaultSettings())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.PNG(ctx, "hello")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPNGGrowsForLongContent(t *testing.T) {
	r, err := NewRenderer(domain.QRSettings{Size: 30, Foreground: "#000000", Background: "#ffffff"})
	require.NoError(t, err)

	data, err := r.PNG(context.Background(), strings.Repeat("long content ", 20))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 30, "one pixel per module at minimum")
}

func TestRenderAsync(t *testing.T) {
	r, err := NewRenderer(defaultSettings())
	require.NoError(t, err)

	res := <-r.RenderAsync(context.Background(), "KHOOR")
	require.NoError(t, res.Err)
	assert.NotEmpty(t, res.PNG)

	res = <-r.RenderAsync(context.Background(), "")
	assert.ErrorIs(t, res.Err, ErrEmptyContent)
}

func TestTerminal(t *testing.T) {
	r, err := NewRenderer(defaultSettings())
	require.NoError(t, err)

	art, err := r.Terminal("KHOOR")
	require.NoError(t, err)
	assert.Greater(t, strings.Count(art, "\n"), 5)

	_, err = r.Terminal("")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestNewRendererValidatesColours(t *testing.T) {
	_, err := NewRenderer(domain.QRSettings{Foreground: "green", Background: "#000000"})
	assert.Error(t, err)

	_, err = NewRenderer(domain.QRSettings{Foreground: "#000000", Background: "#12345"})
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	c, err := parseHexColor("#00FF88")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0, G: 0xff, B: 0x88, A: 0xff}, c)

	_, err = parseHexColor("#zzzzzz")
	assert.Error(t, err)
}
