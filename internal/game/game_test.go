package game

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/shadowcast/internal/core/caster"
	"chosenoffset.com/shadowcast/internal/core/geom"
	"chosenoffset.com/shadowcast/internal/core/obstacles"
	"chosenoffset.com/shadowcast/internal/render"
	"chosenoffset.com/shadowcast/internal/render/snapshot"
	"chosenoffset.com/shadowcast/internal/world/scene"
)

// fakeInput replays one tick of input at a time.
type fakeInput struct {
	x, y    int
	keys    map[render.Key]bool
	buttons map[render.MouseButton]bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{keys: map[render.Key]bool{}, buttons: map[render.MouseButton]bool{}}
}

func (f *fakeInput) IsKeyPressed(k render.Key) bool     { return f.keys[k] }
func (f *fakeInput) IsKeyJustPressed(k render.Key) bool { return f.keys[k] }
func (f *fakeInput) GetCursorPosition() (int, int)      { return f.x, f.y }
func (f *fakeInput) IsMouseButtonPressed(b render.MouseButton) bool {
	return f.buttons[b]
}
func (f *fakeInput) IsMouseButtonJustPressed(b render.MouseButton) bool {
	return f.buttons[b]
}

// tick runs one Update with the given keys held and cursor position.
func tick(t *testing.T, g *Game, in *fakeInput, x, y int, keys ...render.Key) {
	t.Helper()
	in.x, in.y = x, y
	in.keys = map[render.Key]bool{}
	for _, k := range keys {
		in.keys[k] = true
	}
	require.NoError(t, g.Update())
}

func rightClick(t *testing.T, g *Game, in *fakeInput, x, y int) {
	t.Helper()
	in.buttons[render.MouseButtonRight] = true
	tick(t, g, in, x, y)
	in.buttons[render.MouseButtonRight] = false
}

func newGame(t *testing.T, opts Options) (*Game, *fakeInput) {
	t.Helper()
	in := newFakeInput()
	g, err := New(scene.Default(800, 600), snapshot.NewRenderer(), in, opts)
	require.NoError(t, err)
	return g, in
}

func TestNewLooksFromObserver(t *testing.T) {
	g, _ := newGame(t, DefaultOptions())

	assert.Equal(t, caster.ModeFilledEndpoint, g.Mode())
	for _, m := range caster.Modes() {
		c := g.slots[m].caster
		assert.Equal(t, geom.Pt(400, 300), c.Apex())
		_, err := c.Vertices()
		assert.NoError(t, err, "%v has looked", m)
	}
	assert.Equal(t, 12+scene.CircleSlices, g.Obstacles.Len())
	assert.Equal(t, 6*g.Obstacles.Len(), g.slots[caster.ModeLineEndpoint].caster.Rays())
	assert.Equal(t, caster.DefaultAngleRays, g.slots[caster.ModeLineAngle].caster.Rays())
}

func TestNewRejectsOversizedScene(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxObstacles = 10
	_, err := New(scene.Default(800, 600), nil, newFakeInput(), opts)
	assert.ErrorIs(t, err, obstacles.ErrCapacityExceeded)
}

func TestKeys(t *testing.T) {
	g, in := newGame(t, DefaultOptions())

	tick(t, g, in, 0, 0, render.Key3)
	assert.Equal(t, caster.ModeFilledAngle, g.Mode())
	assert.Equal(t, caster.KindAngle, g.Caster().Kind())

	tick(t, g, in, 0, 0, render.Key2)
	assert.Equal(t, caster.ModeLineEndpoint, g.Mode())

	tick(t, g, in, 0, 0, render.KeyB)
	assert.False(t, g.ShowBounds())

	tick(t, g, in, 0, 0, render.KeySpace)
	assert.False(t, g.FollowMouse())

	in.keys = map[render.Key]bool{render.KeyEscape: true}
	assert.ErrorIs(t, g.Update(), ErrQuit)
}

func TestFollowMouse(t *testing.T) {
	g, in := newGame(t, DefaultOptions())

	tick(t, g, in, 100, 100)
	assert.Equal(t, geom.Pt(100, 100), g.Caster().Apex())

	// Outside the padded floor the apex stays put.
	tick(t, g, in, 5, 5)
	assert.Equal(t, geom.Pt(100, 100), g.Caster().Apex())

	// Paused: the cursor no longer drives the apex.
	tick(t, g, in, 120, 120, render.KeySpace)
	tick(t, g, in, 130, 130)
	assert.Equal(t, geom.Pt(100, 100), g.Caster().Apex())
}

func TestModesKeepTheirOwnApex(t *testing.T) {
	g, in := newGame(t, DefaultOptions())

	tick(t, g, in, 100, 100)
	tick(t, g, in, 100, 100, render.Key4)
	assert.Equal(t, geom.Pt(100, 100), g.Caster().Apex(), "angle caster catches up on the next move check")

	tick(t, g, in, 700, 500)
	assert.Equal(t, geom.Pt(700, 500), g.Caster().Apex())

	tick(t, g, in, 700, 500, render.Key1)
	assert.Equal(t, geom.Pt(700, 500), g.Caster().Apex())
	assert.Equal(t, geom.Pt(400, 300), g.slots[caster.ModeLineEndpoint].caster.Apex(), "untouched mode keeps its apex")
}

func TestDrawWall(t *testing.T) {
	opts := DefaultOptions()
	opts.FollowMouse = false
	g, in := newGame(t, opts)
	before := g.Obstacles.Len()

	rightClick(t, g, in, 50, 50)
	a, ok := g.Anchor()
	require.True(t, ok)
	assert.Equal(t, geom.Pt(50, 50), a)

	rightClick(t, g, in, 50, 120)
	_, ok = g.Anchor()
	assert.False(t, ok)
	assert.Equal(t, 1, g.Obstacles.Pending())
	assert.Equal(t, before, g.Obstacles.Len(), "walls wait for the frame to finish")

	g.Draw(snapshot.NewImage(800, 600))
	assert.Equal(t, before+1, g.Obstacles.Len())
	assert.Equal(t, before+1, g.Bounds.Len())
	assert.Equal(t, geom.Seg(50, 50, 50, 120), g.Obstacles.At(before))

	tick(t, g, in, 0, 0)
	assert.Equal(t, 6*(before+1), g.Caster().Rays(), "endpoint caster grows to the new wall count")
}

func TestDrawWallSnaps(t *testing.T) {
	opts := DefaultOptions()
	opts.FollowMouse = false
	g, in := newGame(t, opts)

	// (190, 140) is the west pillar's top-left corner.
	rightClick(t, g, in, 60, 60)
	rightClick(t, g, in, 186, 143)
	g.Draw(snapshot.NewImage(800, 600))

	last := g.Obstacles.At(g.Obstacles.Len() - 1)
	assert.Equal(t, geom.Pt(60, 60), last.A)
	assert.Equal(t, geom.Pt(190, 140), last.B)
}

func TestDrawWallRefusedWhenFull(t *testing.T) {
	opts := DefaultOptions()
	opts.FollowMouse = false
	opts.MaxObstacles = 12 + scene.CircleSlices + 1
	g, in := newGame(t, opts)

	rightClick(t, g, in, 50, 50)
	rightClick(t, g, in, 50, 100)
	rightClick(t, g, in, 60, 50)
	rightClick(t, g, in, 60, 100)
	assert.Equal(t, 1, g.Obstacles.Pending())
	require.Len(t, g.Messages, 1)
	assert.Equal(t, "Obstacle buffer full", g.Messages[0].Text)

	g.Draw(snapshot.NewImage(800, 600))
	assert.True(t, g.Bounds.Full())
}

func pixel(img *snapshot.Image, x, y int) color.RGBA {
	r, g, b, a := img.Image().At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func near(c color.RGBA, want color.RGBA) bool {
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return d(c.R, want.R) < 8 && d(c.G, want.G) < 8 && d(c.B, want.B) < 8
}

func TestDrawLightsTheVisibleRegion(t *testing.T) {
	opts := DefaultOptions()
	g, _ := newGame(t, opts)

	img := snapshot.NewImage(800, 600)
	g.Draw(img)
	require.NoError(t, img.Err())

	// The observer starts inside the centre circle, so only the circle is lit.
	assert.True(t, near(pixel(img, 400, 380), opts.LightColor), "inside the circle: %v", pixel(img, 400, 380))
	assert.False(t, near(pixel(img, 100, 300), opts.LightColor), "outside the circle: %v", pixel(img, 100, 300))
}

func TestDrawWireframeModes(t *testing.T) {
	g, in := newGame(t, DefaultOptions())
	for _, key := range []render.Key{render.Key2, render.Key4} {
		tick(t, g, in, 400, 300, key)
		img := snapshot.NewImage(800, 600)
		g.Draw(img)
		assert.NoError(t, img.Err())
	}
}

func TestLayout(t *testing.T) {
	g, _ := newGame(t, DefaultOptions())
	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestMessagesExpire(t *testing.T) {
	g, in := newGame(t, DefaultOptions())
	g.ShowMessage("hello")
	for i := 0; i < 200; i++ {
		tick(t, g, in, 0, 0)
	}
	assert.Empty(t, g.Messages)
}

func TestDrawBoundsOutlinesWalls(t *testing.T) {
	g, in := newGame(t, DefaultOptions())
	require.True(t, g.ShowBounds())

	img := snapshot.NewImage(800, 600)
	g.Draw(img)
	require.NoError(t, img.Err())
	// Top edge of the west pillar, in shadow from the centre.
	assert.True(t, near(pixel(img, 200, 140), boundsColor), "outline: %v", pixel(img, 200, 140))

	tick(t, g, in, 0, 0, render.KeyB)
	img = snapshot.NewImage(800, 600)
	g.Draw(img)
	assert.False(t, near(pixel(img, 200, 140), boundsColor), "hidden: %v", pixel(img, 200, 140))
}
