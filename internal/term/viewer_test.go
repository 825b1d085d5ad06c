package term

import (
	"testing"
	"time"

	"mad-fusion/internal/core"
	"mad-fusion/internal/sims/fusion"

	"github.com/gdamore/tcell/v2"
)

func newTestViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(60, 20)

	cfg := fusion.GravityWellConfig()
	cfg.Bodies = 40
	cfg.MaxBodies = 100
	w, err := fusion.NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	clock := &core.ManualClock{T: time.Unix(0, 0)}
	return NewViewer(screen, w, clock, 60, 5, nil), screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestViewerKeysDriveSession(t *testing.T) {
	v, _ := newTestViewer(t)
	if !v.Handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)) {
		t.Fatal("enter ended the viewer")
	}
	if v.Session().State() != core.RunRunning {
		t.Fatalf("state = %v, want running", v.Session().State())
	}
	if !v.loop.Pending() {
		t.Fatal("no frame scheduled after start")
	}
	v.loop.RunPending()
	if !v.loop.Pending() {
		t.Fatal("frame did not reschedule through the draw wrapper")
	}

	v.Handle(key(' '))
	if v.Session().State() != core.RunPaused {
		t.Fatalf("state = %v, want paused", v.Session().State())
	}
	if v.Handle(key('q')) {
		t.Fatal("q should end the viewer")
	}
}

func TestViewerDrawsAnchorAndStatus(t *testing.T) {
	v, screen := newTestViewer(t)
	v.Handle(key('r'))

	cols, rows := screen.Size()
	foundAnchor := false
	for y := 0; y < rows-1 && !foundAnchor; y++ {
		for x := 0; x < cols; x++ {
			if r, _, _, _ := screen.GetContent(x, y); r == '@' {
				foundAnchor = true
				break
			}
		}
	}
	if !foundAnchor {
		t.Fatal("anchor not drawn")
	}
	var status []rune
	for x := 0; x < 12; x++ {
		r, _, _, _ := screen.GetContent(x, rows-1)
		status = append(status, r)
	}
	if got := string(status); got != "gravity-well" {
		t.Fatalf("status starts with %q", got)
	}
}
