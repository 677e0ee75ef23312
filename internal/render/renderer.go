// Package render defines the drawing and input collaborators the frame loop
// talks to. Backends live in sub-packages: ebiten for the interactive window
// and snapshot for headless PNG output.
package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrQuit is returned from Game.Update to end the loop. Engines treat it as a
// normal exit rather than a failure.
var ErrQuit = errors.New("quit requested")

// Renderer creates images and draws vector primitives onto them.
type Renderer interface {
	NewImage(width, height int) Image

	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color)

	// DrawText draws debug text with its top-left corner at (x, y).
	// Backends without a font may ignore it.
	DrawText(dst Image, text string, x, y int)
}

// Image is a drawable surface.
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)

	Fill(clr color.Color)
	Clear()

	// DrawTriangles draws indexed triangles. src supplies texels at each
	// vertex's SrcX/SrcY and is tinted by the vertex colour; a 1x1 white
	// image gives flat vertex colours.
	DrawTriangles(vertices []Vertex, indices []uint16, src Image, opts *DrawTrianglesOptions)

	Dispose()
}

// DrawTrianglesOptions contains options for drawing triangles.
type DrawTrianglesOptions struct {
	AntiAlias bool
}

// Vertex is a triangle vertex.
type Vertex struct {
	DstX   float32
	DstY   float32
	SrcX   float32
	SrcY   float32
	ColorR float32
	ColorG float32
	ColorB float32
	ColorA float32
}

// InputManager reports keyboard and mouse state for the current tick.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
	IsMouseButtonPressed(button MouseButton) bool
	IsMouseButtonJustPressed(button MouseButton) bool
}

// Key represents a keyboard key.
type Key int

const (
	Key1 Key = iota
	Key2
	Key3
	Key4
	KeyB
	KeySpace
	KeyEscape
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Game is driven by an Engine once per tick.
type Game interface {
	// Update advances state. Returning an error stops the engine.
	Update() error

	// Draw renders the current state onto screen.
	Draw(screen Image)

	// Layout maps the outside size to the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine owns the window and the game loop.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)

	// RunGame blocks until the game ends.
	RunGame(game Game) error
}
