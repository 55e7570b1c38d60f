// Package app connects a host engine to the text effect: it implements the
// engine's Game interface, turns keystrokes into submitted text, forwards the
// cursor as the pointer and re-flows the text when the surface changes size.
package app

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"chosenoffset.com/textparticles/internal/config"
	"chosenoffset.com/textparticles/internal/effect"
	"chosenoffset.com/textparticles/internal/render"
)

const (
	promptSize  = 20.0
	messageSize = 16.0
	messageTime = 3.0
)

// Game holds the host-facing state around the effect controller.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Effect       *effect.Controller
	Config       *config.Config

	// Text being typed, submitted with Enter
	Input []rune

	// UI state
	Messages []Message

	// HUD draws the prompt and messages onto the surface. Hosts that show
	// StatusLine themselves turn it off.
	HUD bool

	started       bool
	resizePending bool
}

// NewGame creates the glue for a surface of the given initial size.
func NewGame(r render.Renderer, input render.InputManager, ctrl *effect.Controller, cfg *config.Config, width, height int) *Game {
	return &Game{
		ScreenWidth:   width,
		ScreenHeight:  height,
		Renderer:      r,
		InputMgr:      input,
		Effect:        ctrl,
		Config:        cfg,
		HUD:           true,
		resizePending: true,
	}
}

// Update handles input and advances the particles one tick.
func (g *Game) Update() error {
	// Delta time for timers (assuming 60 FPS)
	dt := 1.0 / 60.0
	g.updateMessages(dt)

	// Surface reads only work inside the loop, so resizes land here
	if g.resizePending {
		g.resizePending = false
		g.Effect.Resize(g.ScreenWidth, g.ScreenHeight)
	}
	if !g.started {
		g.started = true
		if initial := g.Config.Text.Initial; initial != "" {
			g.Submit(initial)
		}
	}

	g.handleTextInput()

	x, y := g.InputMgr.CursorPosition()
	g.Effect.SetPointer(float64(x), float64(y))
	g.Effect.Update()

	return nil
}

// Draw renders the particles and the HUD.
func (g *Game) Draw(screen render.Image) {
	g.Effect.Draw(screen)
	if g.HUD {
		g.drawUI(screen)
	}
}

// Layout follows the outside size so the surface always fills the host.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.ScreenWidth || outsideHeight != g.ScreenHeight {
		g.ScreenWidth = outsideWidth
		g.ScreenHeight = outsideHeight
		g.resizePending = true
	}
	return g.ScreenWidth, g.ScreenHeight
}

// Submit lays out text as particles.
func (g *Game) Submit(text string) {
	g.Effect.SubmitText(text)
	g.ShowMessage(fmt.Sprintf("%q: %d particles", text, g.Effect.Field().Len()))
}

func (g *Game) handleTextInput() {
	g.Input = g.InputMgr.AppendInputChars(g.Input)

	modifier := g.InputMgr.IsKeyPressed(render.KeyControl) || g.InputMgr.IsKeyPressed(render.KeyMeta)
	if modifier && g.InputMgr.IsKeyJustPressed(render.KeyV) {
		g.paste()
	}

	if g.InputMgr.IsKeyJustPressed(render.KeyBackspace) && len(g.Input) > 0 {
		g.Input = g.Input[:len(g.Input)-1]
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		g.Input = g.Input[:0]
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyEnter) {
		g.Submit(string(g.Input))
	}
}

func (g *Game) paste() {
	text, err := g.InputMgr.ClipboardText()
	if err != nil {
		g.ShowMessage(fmt.Sprintf("Paste failed: %v", err))
		return
	}
	// The effect wraps on spaces only
	text = strings.Join(strings.Fields(text), " ")
	g.Input = append(g.Input, []rune(text)...)
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: messageTime,
		MaxTime:  messageTime,
	})

	log.Printf("Message: %s", text)
}

// Prompt returns the entry line as shown to the user.
func (g *Game) Prompt() string {
	return "> " + string(g.Input) + "_"
}

// StatusLine returns the prompt followed by the newest message.
func (g *Game) StatusLine() string {
	if len(g.Messages) == 0 {
		return g.Prompt()
	}
	return g.Prompt() + "   " + g.Messages[len(g.Messages)-1].Text
}

func (g *Game) drawUI(screen render.Image) {
	w, h := screen.Size()

	// Draw on-screen messages
	y := 30.0
	for _, msg := range g.Messages {
		alpha := uint8(255 * (msg.TimeLeft / msg.MaxTime))
		fill := image.NewUniform(color.NRGBA{255, 255, 255, alpha})
		g.Renderer.DrawText(screen, msg.Text, float64(w)/2, y, messageSize, fill)
		y += messageSize * 1.25
	}

	g.Renderer.DrawText(screen, g.Prompt(), float64(w)/2, float64(h)-promptSize*1.5, promptSize, image.NewUniform(color.White))
}
