// Package snapshot is a headless render backend that rasterises into an
// in-memory image with gogpu/gg, for writing single frames to PNG.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"chosenoffset.com/shadowcast/internal/render"
)

// Renderer implements render.Renderer for snapshot images.
type Renderer struct{}

// NewRenderer creates a snapshot renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// NewImage creates a transparent image.
func (r *Renderer) NewImage(width, height int) render.Image {
	return NewImage(width, height)
}

// FillCircle draws a filled circle.
func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	img := dst.(*Image)
	img.ctx.SetColor(clr)
	img.ctx.DrawCircle(float64(x), float64(y), float64(radius))
	img.record(img.ctx.Fill())
}

// StrokeCircle draws a circle outline.
func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	img := dst.(*Image)
	img.ctx.SetColor(clr)
	img.ctx.SetLineWidth(float64(strokeWidth))
	img.ctx.DrawCircle(float64(x), float64(y), float64(radius))
	img.record(img.ctx.Stroke())
}

// StrokeLine draws a line segment.
func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	img := dst.(*Image)
	img.ctx.SetColor(clr)
	img.ctx.SetLineWidth(float64(strokeWidth))
	img.ctx.DrawLine(float64(x0), float64(y0), float64(x1), float64(y1))
	img.record(img.ctx.Stroke())
}

// DrawText is a no-op: snapshots carry no font.
func (r *Renderer) DrawText(render.Image, string, int, int) {}

// Image is a gg-backed render.Image. Drawing errors are sticky and reported
// by Err and the encoders.
type Image struct {
	ctx *gg.Context
	err error
}

// NewImage creates a width x height transparent image.
func NewImage(width, height int) *Image {
	return &Image{ctx: gg.NewContext(width, height)}
}

func (i *Image) record(err error) {
	if err != nil && i.err == nil {
		i.err = err
	}
}

// Err returns the first drawing error, if any.
func (i *Image) Err() error { return i.err }

// Bounds returns the image rectangle.
func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.ctx.Width(), i.ctx.Height())
}

// Size returns the image dimensions.
func (i *Image) Size() (width, height int) {
	return i.ctx.Width(), i.ctx.Height()
}

// Fill paints every pixel with clr.
func (i *Image) Fill(clr color.Color) {
	i.ctx.ClearWithColor(gg.FromColor(clr))
}

// Clear makes every pixel transparent.
func (i *Image) Clear() {
	i.ctx.Clear()
}

// DrawTriangles fills each triangle flat with its first vertex's colour.
// Vertex colours are straight (not premultiplied) alpha and src is ignored.
// Runs of same-coloured triangles are filled as one path with consistent
// winding so shared edges leave no seams.
func (i *Image) DrawTriangles(vertices []render.Vertex, indices []uint16, _ render.Image, _ *render.DrawTrianglesOptions) {
	var (
		open    bool
		current [4]float32
	)
	flush := func() {
		if open {
			i.record(i.ctx.Fill())
			open = false
		}
	}

	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := vertices[indices[t]], vertices[indices[t+1]], vertices[indices[t+2]]

		clr := [4]float32{a.ColorR, a.ColorG, a.ColorB, a.ColorA}
		if open && clr != current {
			flush()
		}
		if !open {
			i.ctx.SetRGBA(float64(clr[0]), float64(clr[1]), float64(clr[2]), float64(clr[3]))
			current = clr
			open = true
		}

		// Keep every triangle counter-clockwise for the non-zero rule.
		if cross(a, b, c) < 0 {
			b, c = c, b
		}
		i.ctx.MoveTo(float64(a.DstX), float64(a.DstY))
		i.ctx.LineTo(float64(b.DstX), float64(b.DstY))
		i.ctx.LineTo(float64(c.DstX), float64(c.DstY))
		i.ctx.ClosePath()
	}
	flush()
}

func cross(a, b, c render.Vertex) float32 {
	return (b.DstX-a.DstX)*(c.DstY-a.DstY) - (b.DstY-a.DstY)*(c.DstX-a.DstX)
}

// Dispose releases the drawing context.
func (i *Image) Dispose() {
	i.record(i.ctx.Close())
}

// Image returns the rendered pixels.
func (i *Image) Image() image.Image {
	return i.ctx.Image()
}

// EncodePNG writes the image as PNG.
func (i *Image) EncodePNG(w io.Writer) error {
	if i.err != nil {
		return fmt.Errorf("snapshot has drawing errors: %w", i.err)
	}
	return i.ctx.EncodePNG(w)
}

// SavePNG writes the image to path as PNG.
func (i *Image) SavePNG(path string) error {
	if i.err != nil {
		return fmt.Errorf("snapshot has drawing errors: %w", i.err)
	}
	if err := i.ctx.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	return nil
}

// ErrNotSnapshot is returned by Save for images from another backend.
var ErrNotSnapshot = errors.New("image was not created by the snapshot renderer")

// Save writes img to path if it came from this backend.
func Save(img render.Image, path string) error {
	s, ok := img.(*Image)
	if !ok {
		return ErrNotSnapshot
	}
	return s.SavePNG(path)
}
