// Package terminal hosts a render.Game inside a terminal using tcell. The
// game draws onto a software surface with one pixel per cell column and two
// per cell row; each frame the surface is presented with half-block glyphs
// whose foreground paints the upper pixel and background the lower one.
package terminal

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/textparticles/internal/render"
	"chosenoffset.com/textparticles/internal/render/software"
)

const (
	upperHalf = '▀'
	lowerHalf = '▄'
)

// Engine implements render.Engine on a tcell screen.
type Engine struct {
	screen tcell.Screen
	input  *InputManager
	canvas *software.Image
	status func() string
	frame  time.Duration
}

// NewEngine creates an engine for screen, which must not be initialized yet.
func NewEngine(screen tcell.Screen) *Engine {
	return &Engine{
		screen: screen,
		input:  NewInputManager(),
		frame:  16 * time.Millisecond, // ~60 FPS
	}
}

// Input returns the input manager fed by this engine's events.
func (e *Engine) Input() *InputManager {
	return e.input
}

// SetStatus installs a callback whose text is printed on the bottom row.
// The surface shrinks by that row.
func (e *Engine) SetStatus(status func() string) {
	e.status = status
}

// SetWindowSize is a no-op: the terminal decides its size.
func (e *Engine) SetWindowSize(width, height int) {}

// SetWindowTitle is a no-op for terminals.
func (e *Engine) SetWindowTitle(title string) {}

// SetWindowResizable is a no-op: terminals are always resizable.
func (e *Engine) SetWindowResizable(resizable bool) {}

// RunGame runs the frame loop until Ctrl+C or a game error.
func (e *Engine) RunGame(game render.Game) error {
	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer e.screen.Fini()
	e.screen.EnableMouse(tcell.MouseMotionEvents)
	e.screen.HideCursor()

	ticker := time.NewTicker(e.frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := e.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if quit := e.input.handleEvent(ev); quit {
				return nil
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				e.screen.Sync()
			}

		case <-ticker.C:
			if err := e.Frame(game); err != nil {
				return err
			}
		}
	}
}

// Frame runs one Update/Draw cycle and presents it.
func (e *Engine) Frame(game render.Game) error {
	cols, rows := e.screen.Size()
	if e.status != nil {
		rows--
	}
	w, h := game.Layout(max(cols, 0), max(rows, 0)*2)
	if e.canvas == nil {
		e.canvas = software.NewImage(w, h)
	} else if cw, ch := e.canvas.Size(); cw != w || ch != h {
		e.canvas = software.NewImage(w, h)
	}

	if err := game.Update(); err != nil {
		return err
	}
	e.input.endFrame()

	e.canvas.Clear()
	game.Draw(e.canvas)

	e.screen.Clear()
	Present(e.screen, e.canvas.RGBA())
	if e.status != nil {
		drawString(e.screen, 0, rows, e.status(), tcell.StyleDefault.Reverse(true))
	}
	e.screen.Show()
	return nil
}

// Present paints img onto screen, two vertical pixels per cell.
func Present(screen tcell.Screen, img *image.RGBA) {
	b := img.Bounds()
	for cy := 0; 2*cy < b.Dy(); cy++ {
		for cx := 0; cx < b.Dx(); cx++ {
			top := img.RGBAAt(b.Min.X+cx, b.Min.Y+2*cy)
			var bottom color.RGBA
			if 2*cy+1 < b.Dy() {
				bottom = img.RGBAAt(b.Min.X+cx, b.Min.Y+2*cy+1)
			}

			switch {
			case top.A == 0 && bottom.A == 0:
				continue
			case top.A == 0:
				screen.SetContent(cx, cy, lowerHalf, nil, tcell.StyleDefault.Foreground(toColor(bottom)))
			default:
				style := tcell.StyleDefault.Foreground(toColor(top))
				if bottom.A != 0 {
					style = style.Background(toColor(bottom))
				}
				screen.SetContent(cx, cy, upperHalf, nil, style)
			}
		}
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func drawString(screen tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// InputManager implements render.InputManager from tcell events. Key state
// collected between two frames is visible to the next Update only.
type InputManager struct {
	pressed     map[render.Key]bool
	justPressed map[render.Key]bool
	chars       []rune
	x, y        int
}

// NewInputManager creates an input manager with the pointer offscreen.
func NewInputManager() *InputManager {
	return &InputManager{
		pressed:     make(map[render.Key]bool),
		justPressed: make(map[render.Key]bool),
		x:           -1,
		y:           -1,
	}
}

// handleEvent records ev and reports whether the user asked to quit.
func (m *InputManager) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		m.handleMouse(x, y)
	}
	return false
}

func (m *InputManager) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		m.justPressed[render.KeyEnter] = true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		m.justPressed[render.KeyBackspace] = true
	case tcell.KeyEscape:
		m.justPressed[render.KeyEscape] = true
	case tcell.KeyCtrlV:
		m.pressed[render.KeyControl] = true
		m.justPressed[render.KeyV] = true
	case tcell.KeyRune:
		m.chars = append(m.chars, r)
	}
	return false
}

// handleMouse maps a cell to the surface pixel in the lower half of it.
func (m *InputManager) handleMouse(cellX, cellY int) {
	m.x = cellX
	m.y = cellY*2 + 1
}

func (m *InputManager) endFrame() {
	clear(m.pressed)
	clear(m.justPressed)
}

// IsKeyPressed returns whether key was held during the last batch of events.
func (m *InputManager) IsKeyPressed(key render.Key) bool {
	return m.pressed[key]
}

// IsKeyJustPressed returns whether key was pressed since the last frame.
func (m *InputManager) IsKeyJustPressed(key render.Key) bool {
	return m.justPressed[key]
}

// CursorPosition returns the mouse position in surface pixels.
func (m *InputManager) CursorPosition() (x, y int) {
	return m.x, m.y
}

// AppendInputChars appends and consumes the runes typed since the last frame.
func (m *InputManager) AppendInputChars(runes []rune) []rune {
	runes = append(runes, m.chars...)
	m.chars = m.chars[:0]
	return runes
}

// ClipboardText reads the system clipboard.
func (m *InputManager) ClipboardText() (string, error) {
	return clipboard.ReadAll()
}
