package ebiten

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/draw"

	"chosenoffset.com/textparticles/internal/render"
)

// EbitenRenderer implements the Renderer interface using Ebiten.
type EbitenRenderer struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace

	// Scratch surface text is drawn into before the fill is masked onto it
	scratch *ebiten.Image

	// Last rasterized fill, reused while the fill and surface size are unchanged
	fillSrc image.Image
	fillImg *ebiten.Image
}

// NewRenderer creates a new Ebiten-based renderer using the given font data.
func NewRenderer(fontData []byte) (*EbitenRenderer, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return &EbitenRenderer{
		source: source,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

func (r *EbitenRenderer) face(size float64) *text.GoTextFace {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: r.source, Size: size}
	r.faces[size] = f
	return f
}

// NewImage creates a new image with the given dimensions.
func (r *EbitenRenderer) NewImage(width, height int) render.Image {
	return &EbitenImage{img: ebiten.NewImage(max(width, 1), max(height, 1))}
}

// MeasureText returns the advance width of str in pixels.
func (r *EbitenRenderer) MeasureText(str string, size float64) float64 {
	if str == "" {
		return 0
	}
	return text.Advance(str, r.face(size))
}

// DrawText draws str centered on (x, y). Solid fills tint the glyphs
// directly; any other fill is rasterized once and masked onto the glyph
// coverage with source-in blending.
func (r *EbitenRenderer) DrawText(dst render.Image, str string, x, y, size float64, fill image.Image) {
	if str == "" {
		return
	}
	dstImg := dst.(*EbitenImage).img

	opts := &text.DrawOptions{}
	opts.GeoM.Translate(x, y)
	opts.PrimaryAlign = text.AlignCenter
	opts.SecondaryAlign = text.AlignCenter

	if u, ok := fill.(*image.Uniform); ok {
		opts.ColorScale.ScaleWithColor(u.C)
		text.Draw(dstImg, str, r.face(size), opts)
		return
	}

	bounds := dstImg.Bounds()
	if r.scratch == nil || r.scratch.Bounds() != bounds {
		if r.scratch != nil {
			r.scratch.Deallocate()
		}
		r.scratch = ebiten.NewImage(bounds.Dx(), bounds.Dy())
	}
	r.scratch.Clear()
	text.Draw(r.scratch, str, r.face(size), opts)

	mask := &ebiten.DrawImageOptions{}
	mask.Blend = ebiten.BlendSourceIn
	r.scratch.DrawImage(r.fillImage(fill, bounds), mask)

	dstImg.DrawImage(r.scratch, nil)
}

// fillImage rasterizes fill over bounds, caching the result.
func (r *EbitenRenderer) fillImage(fill image.Image, bounds image.Rectangle) *ebiten.Image {
	if r.fillImg != nil && r.fillSrc == fill && r.fillImg.Bounds() == bounds {
		return r.fillImg
	}
	if r.fillImg != nil {
		r.fillImg.Deallocate()
	}
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, fill, bounds.Min, draw.Src)
	r.fillSrc = fill
	r.fillImg = ebiten.NewImageFromImage(rgba)
	return r.fillImg
}

// whitePixel is the source for solid rectangles so they batch with other draws.
var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}()

// EbitenImage wraps an ebiten.Image to implement the render.Image interface.
type EbitenImage struct {
	img *ebiten.Image
}

// Bounds returns the bounds of the image.
func (i *EbitenImage) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Size returns the width and height of the image.
func (i *EbitenImage) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// Fill fills the entire image with the given color.
func (i *EbitenImage) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// Clear clears the image to transparent.
func (i *EbitenImage) Clear() {
	i.img.Clear()
}

// FillRect paints a solid rectangle.
func (i *EbitenImage) FillRect(x, y, width, height float64, clr color.Color) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(width, height)
	opts.GeoM.Translate(x, y)
	opts.ColorScale.ScaleWithColor(clr)
	i.img.DrawImage(whitePixel, opts)
}

// ReadPixels copies the premultiplied RGBA contents into buf.
// It must be called while the game loop is running.
func (i *EbitenImage) ReadPixels(buf []byte) {
	i.img.ReadPixels(buf)
}

// Dispose releases the image resources.
func (i *EbitenImage) Dispose() {
	if i.img != nil {
		i.img.Deallocate()
	}
}

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// IsKeyPressed returns whether the specified key is currently pressed.
func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	return ebiten.IsKeyPressed(keyToEbitenKey(key))
}

// IsKeyJustPressed returns whether the specified key was just pressed this frame.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	return inpututil.IsKeyJustPressed(keyToEbitenKey(key))
}

// CursorPosition returns the current cursor position.
func (m *EbitenInputManager) CursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

// AppendInputChars appends the runes typed this tick.
func (m *EbitenInputManager) AppendInputChars(runes []rune) []rune {
	return ebiten.AppendInputChars(runes)
}

// ClipboardText reads the system clipboard.
func (m *EbitenInputManager) ClipboardText() (string, error) {
	return clipboard.ReadAll()
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) ebiten.Key {
	switch key {
	case render.KeyEnter:
		return ebiten.KeyEnter
	case render.KeyBackspace:
		return ebiten.KeyBackspace
	case render.KeyEscape:
		return ebiten.KeyEscape
	case render.KeyControl:
		return ebiten.KeyControl
	case render.KeyMeta:
		return ebiten.KeyMeta
	case render.KeyV:
		return ebiten.KeyV
	default:
		return 0
	}
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct{}

// NewEngine creates a new Ebiten-based engine.
func NewEngine() render.Engine {
	return &EbitenEngine{}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// RunGame runs the game loop with the provided game.
func (e *EbitenEngine) RunGame(game render.Game) error {
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game render.Game
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	return a.game.Update()
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&EbitenImage{img: screen})
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
