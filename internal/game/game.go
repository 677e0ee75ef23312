// Package game runs the interactive frame loop: it reads input, moves the
// active caster's apex, looks, and draws the result.
package game

import (
	"fmt"

	"go.uber.org/zap"

	"chosenoffset.com/shadowcast/internal/core/caster"
	"chosenoffset.com/shadowcast/internal/core/geom"
	"chosenoffset.com/shadowcast/internal/core/obstacles"
	"chosenoffset.com/shadowcast/internal/render"
	"chosenoffset.com/shadowcast/internal/world/scene"
)

// ErrQuit is returned by Update when the user asks to leave.
var ErrQuit = render.ErrQuit

// Game holds the scene, one caster per render mode and the view toggles.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Scene        *scene.Scene
	Obstacles    *obstacles.Registry
	Bounds       *obstacles.Buffer
	Renderer     render.Renderer
	InputMgr     render.InputManager
	WhiteImg     render.Image

	mode        caster.Mode
	slots       [4]casterSlot
	showBounds  bool
	followMouse bool
	snapRadius  float64
	light       [4]float32

	// anchor is the first end of a wall being drawn.
	anchor *geom.Point

	Messages []Message
	log      *zap.Logger
}

// New builds a game for sc. The scene's walls must fit in opts.MaxObstacles;
// an error wrapping obstacles.ErrCapacityExceeded means they do not.
func New(sc *scene.Scene, r render.Renderer, input render.InputManager, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("game")

	bounds := obstacles.NewBuffer(opts.MaxObstacles)
	for _, s := range sc.Segments {
		if err := bounds.Add(s); err != nil {
			return nil, fmt.Errorf("scene %q: %w", sc.Name, err)
		}
	}

	g := &Game{
		ScreenWidth:  int(sc.Width),
		ScreenHeight: int(sc.Height),
		Scene:        sc,
		Obstacles:    obstacles.FromSegments(sc.Segments),
		Bounds:       bounds,
		Renderer:     r,
		InputMgr:     input,
		mode:         opts.Mode,
		showBounds:   opts.ShowBounds,
		followMouse:  opts.FollowMouse,
		snapRadius:   opts.SnapRadius,
		log:          logger,
	}
	g.light = [4]float32{
		float32(opts.LightColor.R) / 0xff,
		float32(opts.LightColor.G) / 0xff,
		float32(opts.LightColor.B) / 0xff,
		1,
	}

	casterOpts := append([]caster.Option{caster.WithLogger(logger)}, opts.CasterOptions...)
	for _, m := range caster.Modes() {
		c, err := caster.New(m.Kind(), opts.AngleRays, g.Obstacles.Len(), casterOpts...)
		if err != nil {
			return nil, fmt.Errorf("creating %v caster: %w", m, err)
		}
		g.slots[m] = casterSlot{caster: c}
	}
	g.LookFrom(sc.Observer.X, sc.Observer.Y)

	if r != nil {
		g.WhiteImg = r.NewImage(1, 1)
		g.WhiteImg.Fill(white)
	}

	logger.Info("scene ready",
		zap.String("scene", sc.Name),
		zap.Int("segments", g.Obstacles.Len()),
		zap.Stringer("mode", g.mode))
	return g, nil
}

// Mode returns the active render mode.
func (g *Game) Mode() caster.Mode { return g.mode }

// SetMode switches the active render mode.
func (g *Game) SetMode(m caster.Mode) {
	if m == g.mode {
		return
	}
	g.mode = m
	g.log.Debug("render mode", zap.Stringer("mode", m))
}

// Caster returns the active mode's caster.
func (g *Game) Caster() caster.Caster {
	return g.slots[g.mode].caster
}

// ShowBounds reports whether obstacle outlines are drawn.
func (g *Game) ShowBounds() bool { return g.showBounds }

// FollowMouse reports whether the apex tracks the cursor.
func (g *Game) FollowMouse() bool { return g.followMouse }

// LookFrom moves every mode's apex to (x, y) and looks.
func (g *Game) LookFrom(x, y float64) {
	for i := range g.slots {
		g.look(&g.slots[i], x, y)
	}
}

func (g *Game) look(slot *casterSlot, x, y float64) {
	slot.caster.Update(x, y)
	slot.caster.Look(g.Obstacles.Segments())
	slot.prevX, slot.prevY = x, y
	slot.seen = g.Obstacles.Len()
}

// Update handles one tick of input.
func (g *Game) Update() error {
	g.updateMessages(1.0 / 60.0)

	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return ErrQuit
	}

	for i, key := range [...]render.Key{render.Key1, render.Key2, render.Key3, render.Key4} {
		if g.InputMgr.IsKeyJustPressed(key) {
			g.SetMode(caster.Modes()[i])
		}
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyB) {
		g.showBounds = !g.showBounds
	}
	if g.InputMgr.IsKeyJustPressed(render.KeySpace) {
		g.followMouse = !g.followMouse
	}

	cx, cy := g.InputMgr.GetCursorPosition()
	cursor := geom.Pt(float64(cx), float64(cy))

	if g.InputMgr.IsMouseButtonJustPressed(render.MouseButtonRight) {
		g.placeWallEnd(cursor)
	}

	slot := &g.slots[g.mode]
	moved := cursor.X != slot.prevX || cursor.Y != slot.prevY
	switch {
	case g.followMouse && moved && g.Scene.Floor.Contains(cursor):
		g.look(slot, cursor.X, cursor.Y)
	case slot.seen != g.Obstacles.Len():
		apex := slot.caster.Apex()
		g.look(slot, apex.X, apex.Y)
	}
	return nil
}

// Layout returns the scene's size as the logical screen.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

func (g *Game) updateMessages(dt float64) {
	active := g.Messages[:0]
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a notice to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})
}
