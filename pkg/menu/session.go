package menu

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-i2p/logger"
	opts "github.com/goliatone/go-options-menu"
	"github.com/goliatone/go-options-menu/pkg/edge"
)

var log = logger.GetGoI2PLogger()

// Renderer receives every frame the session draws.
type Renderer interface {
	Render(lines []string) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(lines []string) error

// Render implements Renderer.
func (fn RendererFunc) Render(lines []string) error {
	if fn == nil {
		return nil
	}
	return fn(lines)
}

// WriterRenderer writes each frame to W, one line per row, followed by
// Separator when it is set.
type WriterRenderer struct {
	W         io.Writer
	Separator string
}

// Render implements Renderer.
func (r WriterRenderer) Render(lines []string) error {
	if r.W == nil {
		return nil
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(r.Separator)
	_, err := io.WriteString(r.W, b.String())
	return err
}

// Session connects a Pad to a Controller and redraws through a Renderer.
// Hosts call Setup once, Start when the operator is ready, Loop once per
// tick and Stop at the end.
type Session struct {
	pad        *edge.Pad
	controller *Controller
	renderer   Renderer
}

// NewSession builds a session. A nil renderer discards frames.
func NewSession(pad *edge.Pad, controller *Controller, renderer Renderer) *Session {
	if renderer == nil {
		renderer = RendererFunc(nil)
	}
	return &Session{pad: pad, controller: controller, renderer: renderer}
}

// Controller exposes the underlying controller.
func (s *Session) Controller() *Controller {
	return s.controller
}

// Setup seeds the pad so buttons held before Start do not fire.
func (s *Session) Setup() {
	s.pad.Poll()
}

// Start draws the first frame.
func (s *Session) Start() error {
	return s.draw()
}

// Loop runs one tick: poll the pad and, when any button was just pressed,
// apply its events and redraw. It reports whether a frame was drawn.
func (s *Session) Loop(ctx context.Context) (bool, error) {
	s.pad.Poll()
	if !s.pad.JustTriggered() {
		return false, nil
	}
	ev := PadEvents(s.pad)
	if _, err := s.controller.HandleInput(ctx, ev); err != nil {
		log.WithError(err).WithFields(logger.Fields{
			"at":     "menu.Session.Loop",
			"option": s.controller.SelectedOption().Name,
		}).Warn("option_commit_failed")
		if drawErr := s.draw(); drawErr != nil {
			return false, drawErr
		}
		return true, err
	}
	return true, s.draw()
}

// Stop issues the final save.
func (s *Session) Stop(ctx context.Context) error {
	return s.controller.Close(ctx)
}

// Run drives the session on a fixed tick until ctx is done, then stops it.
func (s *Session) Run(ctx context.Context, tick time.Duration) error {
	if tick <= 0 {
		return fmt.Errorf("menu: tick must be positive, got %s", tick)
	}
	s.Setup()
	if err := s.Start(); err != nil {
		return err
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return s.Stop(ctx)
		case <-ticker.C:
			if _, err := s.Loop(ctx); err != nil {
				log.WithError(err).WithFields(logger.Fields{
					"at": "menu.Session.Run",
				}).Debug("menu_tick_failed")
			}
		}
	}
}

func (s *Session) draw() error {
	if err := s.renderer.Render(s.controller.Render()); err != nil {
		return fmt.Errorf("menu: render: %w", err)
	}
	return nil
}

// PadEvents reads the just-activated state of each pad button.
func PadEvents(p *edge.Pad) opts.Events {
	return opts.Events{
		SelectUp:   p.SelectUp.JustActivated(),
		SelectDown: p.SelectDown.JustActivated(),
		Increase:   p.Increase.JustActivated(),
		Decrease:   p.Decrease.JustActivated(),
	}
}
