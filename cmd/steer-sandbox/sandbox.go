package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/vi-steer/parameter"
	"github.com/lixenwraith/vi-steer/scenario"
	"github.com/lixenwraith/vi-steer/steer"
)

const (
	frameInterval  = 16 * time.Millisecond // ~60 FPS
	obstacleRadius = 8.0
)

// Sandbox drives a world from the terminal: one Step per frame, mouse as cursor target
type Sandbox struct {
	screen        tcell.Screen
	width, height int
	view          viewport

	world  *scenario.World
	paused bool

	audioInit   bool
	toneLimiter *rate.Limiter

	logger *zap.Logger
}

func NewSandbox(world *scenario.World, logger *zap.Logger) (*Sandbox, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newSandboxWithScreen(screen, world, logger), nil
}

func newSandboxWithScreen(screen tcell.Screen, world *scenario.World, logger *zap.Logger) *Sandbox {
	if logger == nil {
		logger = zap.NewNop()
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	s := &Sandbox{
		screen: screen,
		world:  world,
		logger: logger,
	}
	s.handleResize()
	return s
}

func (s *Sandbox) handleResize() {
	s.width, s.height = s.screen.Size()
	s.view = newViewport(worldExtent(s.world), s.width, s.height)
}

// handleInput returns false when the sandbox should exit
func (s *Sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				s.paused = !s.paused
			case 'c':
				s.world.ClearCursor()
			case '.':
				// Single step while paused
				if s.paused {
					s.step()
				}
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		if !s.view.inside(x, y) {
			break
		}
		p := s.view.toWorld(x, y)
		s.world.SetCursor(p)
		if ev.Buttons()&tcell.Button2 != 0 {
			s.world.AddObstacle(steer.Obstacle{Position: p, Radius: obstacleRadius})
			s.logger.Debug("obstacle added", zap.Float64("x", p.X), zap.Float64("y", p.Y))
		}

	case *tcell.EventResize:
		s.handleResize()
		s.screen.Sync()
	}
	return true
}

func (s *Sandbox) step() {
	stats := s.world.Step(parameter.DefaultTickSeconds)
	if stats.NewContacts > 0 {
		s.playContactTone()
	}
}

func (s *Sandbox) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go s.pollEvents(eventChan, done)

	s.logger.Info("sandbox started", zap.String("world", s.world.Name), zap.Int("agents", len(s.world.Entities)))
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !s.handleInput(ev) {
				s.logger.Info("sandbox stopped", zap.Uint64("tick", s.world.Tick()))
				return
			}

		case <-ticker.C:
			if !s.paused {
				s.step()
			}
			s.draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is closed
func (s *Sandbox) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (s *Sandbox) cleanup() {
	if s.audioInit {
		speaker.Close()
	}
	s.screen.Fini()
}

func formatStatus(w *scenario.World, state, sound string) string {
	contacts := 0
	for _, e := range w.Entities {
		if e.InContact() {
			contacts++
		}
	}
	return fmt.Sprintf(" %s | tick %d | %.1fs | agents %d | contact %d | %s | sound %s | space pause, . step, c clear, q quit",
		w.Name, w.Tick(), w.Time(), len(w.Entities), contacts, state, sound)
}
