// Package qr renders transformation results as QR codes. It consumes the
// engine's output and never touches engine state.
package qr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

// ErrEmptyContent is returned when there is nothing to encode.
var ErrEmptyContent = errors.New("no result to encode as a QR code")

// Result is the outcome of an asynchronous render.
type Result struct {
	PNG []byte
	Err error
}

// Renderer draws QR codes with a configurable size, quiet zone and colours.
type Renderer struct {
	size       int
	margin     int
	foreground color.RGBA
	background color.RGBA
}

// NewRenderer validates settings and builds a renderer.
func NewRenderer(settings domain.QRSettings) (*Renderer, error) {
	fg, err := parseHexColor(settings.Foreground)
	if err != nil {
		return nil, fmt.Errorf("qr foreground: %w", err)
	}
	bg, err := parseHexColor(settings.Background)
	if err != nil {
		return nil, fmt.Errorf("qr background: %w", err)
	}
	size := settings.Size
	if size <= 0 {
		size = domain.DefaultQRSize
	}
	margin := settings.Margin
	if margin < 0 {
		margin = 0
	}
	return &Renderer{size: size, margin: margin, foreground: fg, background: bg}, nil
}

// PNG encodes text and returns the PNG bytes.
func (r *Renderer) PNG(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyContent
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	// the quiet zone is drawn here so the margin is configurable
	code.DisableBorder = true

	var buf bytes.Buffer
	if err := png.Encode(&buf, r.draw(code.Bitmap())); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderAsync renders in the background. The channel yields exactly one Result.
func (r *Renderer) RenderAsync(ctx context.Context, text string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		data, err := r.PNG(ctx, text)
		out <- Result{PNG: data, Err: err}
	}()
	return out
}

// Terminal returns a compact block-character rendering for terminals.
func (r *Renderer) Terminal(text string) (string, error) {
	if text == "" {
		return "", ErrEmptyContent
	}
	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return code.ToSmallString(false), nil
}

func (r *Renderer) draw(bitmap [][]bool) image.Image {
	modules := len(bitmap) + 2*r.margin
	scale := r.size / modules
	if scale < 1 {
		scale = 1
	}
	side := r.size
	if modules*scale > side {
		side = modules * scale
	}
	offset := (side-modules*scale)/2 + r.margin*scale

	palette := color.Palette{r.background, r.foreground}
	img := image.NewPaletted(image.Rect(0, 0, side, side), palette)
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0, y0 := offset+x*scale, offset+y*scale
			for py := y0; py < y0+scale; py++ {
				for px := x0; px < x0+scale; px++ {
					img.SetColorIndex(px, py, 1)
				}
			}
		}
	}
	return img
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

var _ ports.QRRenderer = (*Renderer)(nil)
