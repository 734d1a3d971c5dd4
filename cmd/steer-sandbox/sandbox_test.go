package main

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-steer/geom"
	"github.com/lixenwraith/vi-steer/scenario"
	"github.com/lixenwraith/vi-steer/vmath"
)

const sandboxScenario = `
name: view
bounds: {x: 0, y: 0, w: 100, h: 50}
boundaries: [{rect: {x: 0, y: 0, w: 100, h: 50}}]
agents:
  - name: a
    position: {x: 50, y: 25}
    params: {radius: 2, mass: 1, max_speed: 40, max_force: 100}
    behaviors: [{type: seek}]
`

func newTestSandbox(t *testing.T) (*Sandbox, tcell.SimulationScreen) {
	t.Helper()
	sb, screen := newUnmanagedSandbox(t)
	t.Cleanup(screen.Fini)
	return sb, screen
}

// newUnmanagedSandbox leaves Fini to the caller, the simulation screen cannot be finalized twice
func newUnmanagedSandbox(t *testing.T) (*Sandbox, tcell.SimulationScreen) {
	t.Helper()
	s, err := scenario.LoadYAML(strings.NewReader(sandboxScenario))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	w, err := s.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(100, 26)

	return newSandboxWithScreen(screen, w, nil), screen
}

func TestViewportRoundTrip(t *testing.T) {
	v := newViewport(geom.NewRect(0, 0, 100, 50), 100, 26)

	tests := []struct {
		x, y int
	}{
		{0, 0}, {99, 24}, {50, 12}, {7, 3},
	}
	for _, tt := range tests {
		gx, gy := v.toCell(v.toWorld(tt.x, tt.y))
		if gx != tt.x || gy != tt.y {
			t.Errorf("Cell (%d, %d) round-tripped to (%d, %d)", tt.x, tt.y, gx, gy)
		}
	}

	if v.inside(100, 0) || v.inside(0, 25) || v.inside(-1, 0) {
		t.Errorf("Expected cells outside the map area to be rejected")
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		rotation float64
		want     rune
	}{
		{0, '→'},
		{math.Pi / 2, '↓'},
		{math.Pi, '←'},
		{-math.Pi / 2, '↑'},
		{-math.Pi / 4, '↗'},
		{3 * math.Pi / 4, '↙'},
		{0.3, '→'},
	}
	for _, tt := range tests {
		if got := headingGlyph(tt.rotation); got != tt.want {
			t.Errorf("Rotation %f: expected %c, got %c", tt.rotation, tt.want, got)
		}
	}
}

func TestDrawPlacesAgentAndStatus(t *testing.T) {
	sb, screen := newTestSandbox(t)

	sb.draw()

	x, y := sb.view.toCell(vmath.V2(50, 25))
	r, _, _, _ := screen.GetContent(x, y)
	if r != '→' {
		t.Errorf("Expected agent glyph at (%d, %d), got %q", x, y, r)
	}

	var status []rune
	for i := 0; i < 10; i++ {
		c, _, _, _ := screen.GetContent(i, 25)
		status = append(status, c)
	}
	if !strings.Contains(string(status), "view") {
		t.Errorf("Expected status line to name the world, got %q", string(status))
	}

	bx, by := sb.view.toCell(vmath.V2(1, 0))
	if c, _, _, _ := screen.GetContent(bx, by); c != '·' {
		t.Errorf("Expected boundary dash at top-left, got %q", c)
	}
}

func TestMouseSetsCursorAndObstacle(t *testing.T) {
	sb, _ := newTestSandbox(t)

	if !sb.handleInput(tcell.NewEventMouse(80, 10, tcell.ButtonNone, tcell.ModNone)) {
		t.Fatalf("Expected mouse move to keep running")
	}
	p, ok := sb.world.Target()
	if !ok {
		t.Fatalf("Expected cursor to be set")
	}
	if want := sb.view.toWorld(80, 10); p != want {
		t.Errorf("Expected cursor %v, got %v", want, p)
	}

	sb.handleInput(tcell.NewEventMouse(20, 5, tcell.Button2, tcell.ModNone))
	if n := len(sb.world.Obstacles()); n != 1 {
		t.Errorf("Expected 1 obstacle after right click, got %d", n)
	}

	// Status row is not part of the map
	sb.handleInput(tcell.NewEventMouse(10, 25, tcell.Button2, tcell.ModNone))
	if n := len(sb.world.Obstacles()); n != 1 {
		t.Errorf("Expected clicks on the status row to be ignored, got %d obstacles", n)
	}
}

func TestKeys(t *testing.T) {
	sb, _ := newTestSandbox(t)
	sb.world.SetCursor(vmath.V2(10, 10))

	sb.handleInput(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !sb.paused {
		t.Errorf("Expected space to pause")
	}

	sb.handleInput(tcell.NewEventKey(tcell.KeyRune, '.', tcell.ModNone))
	if sb.world.Tick() != 1 {
		t.Errorf("Expected single step while paused, got tick %d", sb.world.Tick())
	}

	sb.handleInput(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	if _, ok := sb.world.Target(); ok {
		t.Errorf("Expected c to clear the cursor")
	}

	if sb.handleInput(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Errorf("Expected q to quit")
	}
	if sb.handleInput(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Errorf("Expected Esc to quit")
	}
}

func TestContactToneWithoutAudio(t *testing.T) {
	sb, _ := newTestSandbox(t)
	// Audio never initialized, must be a silent no-op
	sb.playContactTone()
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	sb, screen := newTestSandbox(t)

	events := make(chan tcell.Event) // nobody reads, the forward blocks
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		sb.pollEvents(events, done)
		close(exited)
	}()

	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	close(done)

	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("Expected event pump to exit after done was closed")
	}
	if _, ok := <-events; ok {
		t.Errorf("Expected events channel to be closed")
	}
}

func TestPollEventsStopsOnFini(t *testing.T) {
	sb, screen := newUnmanagedSandbox(t)

	events := make(chan tcell.Event, 1)
	done := make(chan struct{})
	defer close(done)
	exited := make(chan struct{})
	go func() {
		sb.pollEvents(events, done)
		close(exited)
	}()

	screen.Fini()
	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("Expected event pump to exit after screen finalized")
	}
}
