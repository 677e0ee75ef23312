package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/shadowcast/internal/core/caster"
	"chosenoffset.com/shadowcast/internal/core/geom"
	"chosenoffset.com/shadowcast/internal/render"
)

var (
	white       = color.RGBA{255, 255, 255, 255}
	background  = color.RGBA{12, 12, 16, 255}
	floorColor  = [4]float32{0.16, 0.16, 0.2, 1}
	boundsColor = color.RGBA{230, 230, 230, 255}
	anchorColor = color.RGBA{255, 200, 60, 255}
	apexColor   = color.RGBA{255, 255, 255, 255}
)

// Draw renders the floor, the visible region, the obstacles and the apex,
// then applies any walls drawn this frame.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(background)

	g.drawFloor(screen)
	if err := g.drawVisibility(screen); err != nil {
		g.Renderer.DrawText(screen, err.Error(), 8, 8)
	}
	if g.showBounds {
		g.drawBounds(screen)
	}
	g.drawAnchor(screen)

	apex := g.Caster().Apex()
	g.Renderer.FillCircle(screen, float32(apex.X), float32(apex.Y), 4, apexColor)

	g.drawUI(screen)

	g.commitWalls()
}

func (g *Game) drawFloor(screen render.Image) {
	f := g.Scene.Floor
	quad := []geom.Point{
		geom.Pt(f.X, f.Y),
		geom.Pt(f.X+f.W, f.Y),
		geom.Pt(f.X+f.W, f.Y+f.H),
		geom.Pt(f.X, f.Y+f.H),
	}
	screen.DrawTriangles(vertices(quad, floorColor), []uint16{0, 1, 2, 0, 2, 3}, g.WhiteImg, nil)
}

func (g *Game) drawVisibility(screen render.Image) error {
	mesh, err := g.mode.Mesh(g.Caster())
	if err != nil {
		return err
	}

	if mesh.Topology == caster.TriangleFan {
		indices, err := mesh.FanIndices()
		if err != nil {
			return err
		}
		screen.DrawTriangles(vertices(mesh.Vertices, g.light), indices, g.WhiteImg,
			&render.DrawTrianglesOptions{AntiAlias: true})
		return nil
	}

	light := color.RGBA{
		R: uint8(g.light[0] * 0xff),
		G: uint8(g.light[1] * 0xff),
		B: uint8(g.light[2] * 0xff),
		A: 0xff,
	}
	for _, s := range mesh.Lines() {
		g.Renderer.StrokeLine(screen, float32(s.A.X), float32(s.A.Y), float32(s.B.X), float32(s.B.Y), 1, light)
	}
	return nil
}

func (g *Game) drawBounds(screen render.Image) {
	flat := g.Bounds.Flat()
	for i := 0; i < g.Bounds.Len(); i++ {
		v := flat[i*4 : i*4+4]
		g.Renderer.StrokeLine(screen, v[0], v[1], v[2], v[3], 2, boundsColor)
	}
}

func (g *Game) drawAnchor(screen render.Image) {
	a, ok := g.Anchor()
	if !ok {
		return
	}
	g.Renderer.StrokeCircle(screen, float32(a.X), float32(a.Y), 5, 1, anchorColor)
	if g.InputMgr != nil {
		cx, cy := g.InputMgr.GetCursorPosition()
		g.Renderer.StrokeLine(screen, float32(a.X), float32(a.Y), float32(cx), float32(cy), 1, anchorColor)
	}
}

func (g *Game) drawUI(screen render.Image) {
	c := g.Caster()
	g.Renderer.DrawText(screen, fmt.Sprintf("%v  rays:%d  walls:%d", g.mode, c.Rays(), g.Obstacles.Len()), 16, 16)

	y := 36
	for _, msg := range g.Messages {
		g.Renderer.DrawText(screen, msg.Text, 16, y)
		y += 16
	}
}

// vertices converts points to flat-coloured triangle vertices.
func vertices(pts []geom.Point, rgba [4]float32) []render.Vertex {
	out := make([]render.Vertex, len(pts))
	for i, p := range pts {
		out[i] = render.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			ColorR: rgba[0],
			ColorG: rgba[1],
			ColorB: rgba[2],
			ColorA: rgba[3],
		}
	}
	return out
}
