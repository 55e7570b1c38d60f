package render

import (
	"image"
	"image/color"
)

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. The effect only talks to this interface so the same
// pipeline runs in a window, in a terminal or headless.
type Renderer interface {
	// NewImage creates an offscreen surface of the given size.
	NewImage(width, height int) Image

	// MeasureText returns the advance width of str at the given pixel size.
	MeasureText(str string, size float64) float64

	// DrawText draws str centered horizontally on x with its vertical middle
	// on y. Glyph coverage is painted with fill, sampled in dst coordinates,
	// so a gradient image spans the whole surface.
	DrawText(dst Image, str string, x, y, size float64, fill image.Image)
}

// Image represents a renderable surface that can be drawn to and read back.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Fill operations
	Fill(clr color.Color)
	Clear()

	// FillRect paints an axis-aligned rectangle with a solid color.
	FillRect(x, y, width, height float64, clr color.Color)

	// ReadPixels copies the surface into buf as premultiplied RGBA, row by
	// row. buf must hold 4*width*height bytes.
	ReadPixels(buf []byte)

	// Resource management
	Dispose()
}

// InputManager handles input from the user (keyboard, mouse, etc).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	CursorPosition() (x, y int)

	// AppendInputChars appends the printable runes typed since the last
	// frame to runes and returns the extended slice.
	AppendInputChars(runes []rune) []rune

	// ClipboardText returns the system clipboard contents.
	ClipboardText() (string, error)
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the text entry uses
const (
	KeyEnter Key = iota
	KeyBackspace
	KeyEscape
	KeyControl
	KeyMeta
	KeyV
)

// Game represents the program interface that the engine will call.
type Game interface {
	// Update updates the logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the host that manages the frame loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the frame loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
