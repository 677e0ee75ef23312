package snapshot

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/shadowcast/internal/render"
)

func rgba(t *testing.T, img *Image, x, y int) color.RGBA {
	t.Helper()
	r, g, b, a := img.Image().At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestFillAndTriangles(t *testing.T) {
	img := NewImage(64, 64)
	defer img.Dispose()

	img.Fill(color.White)
	w, h := img.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 64, h)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba(t, img, 2, 2))

	red := func(x, y float32) render.Vertex {
		return render.Vertex{DstX: x, DstY: y, ColorR: 1, ColorA: 1}
	}
	// A fan around (32,32) wound clockwise, covering the middle square.
	vertices := []render.Vertex{red(32, 32), red(16, 16), red(48, 16), red(48, 48), red(16, 48), red(16, 16)}
	indices := []uint16{0, 1, 2, 0, 2, 3, 0, 3, 4, 0, 4, 5}
	img.DrawTriangles(vertices, indices, nil, nil)
	require.NoError(t, img.Err())

	c := rgba(t, img, 32, 32)
	assert.Greater(t, c.R, uint8(200))
	assert.Less(t, c.G, uint8(50))

	c = rgba(t, img, 24, 40)
	assert.Greater(t, c.R, uint8(200), "inside a second triangle")
	assert.Less(t, c.G, uint8(50))

	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba(t, img, 4, 60), "outside stays white")
}

func TestRendererPrimitives(t *testing.T) {
	r := NewRenderer()
	dst := r.NewImage(32, 32)
	dst.Fill(color.Black)

	r.StrokeLine(dst, 0, 16, 32, 16, 4, color.White)
	r.FillCircle(dst, 8, 8, 4, color.RGBA{0, 0, 255, 255})
	r.StrokeCircle(dst, 24, 24, 5, 1, color.White)
	r.DrawText(dst, "ignored", 0, 0)

	img := dst.(*Image)
	require.NoError(t, img.Err())
	assert.Greater(t, rgba(t, img, 20, 16).R, uint8(200), "line drawn")
	assert.Greater(t, rgba(t, img, 8, 8).B, uint8(200), "circle filled")
	assert.Equal(t, uint8(0), rgba(t, img, 2, 28).R)
}

func TestSavePNG(t *testing.T) {
	img := NewImage(40, 30)
	img.Fill(color.White)

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, Save(img, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 40, decoded.Bounds().Dx())
	assert.Equal(t, 30, decoded.Bounds().Dy())

	var buf bytes.Buffer
	require.NoError(t, img.EncodePNG(&buf))
	assert.NotZero(t, buf.Len())
}

type foreign struct{ render.Image }

func TestSaveRejectsForeignImages(t *testing.T) {
	assert.ErrorIs(t, Save(foreign{}, "x.png"), ErrNotSnapshot)
}
