package term

import (
	"context"
	"errors"
	"strings"

	"mad-fusion/internal/app"
	"mad-fusion/internal/core"
	"mad-fusion/internal/sims/fusion"
	"mad-fusion/internal/ui"

	"github.com/gdamore/tcell/v2"
)

var (
	styleBody   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleFused  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleHit    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleAnchor = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	styleStatus = tcell.StyleDefault.Reverse(true)
)

const helpLine = "enter start  space pause  s stop  r reset  n step  q quit"

// Viewer renders a scene to a tcell screen. Input, frames and drawing all run
// on the frame loop goroutine.
type Viewer struct {
	screen  tcell.Screen
	scene   core.Scene
	session *app.Session
	loop    *core.FrameLoop
	sound   *Sound

	bodies []core.BodyView
	cells  []Glyph
	quit   func()
}

// NewViewer attaches scene to a frame loop paced at tps. sound may be nil.
func NewViewer(screen tcell.Screen, scene core.Scene, clock core.Clock, tps int, seed int64, sound *Sound) *Viewer {
	if clock == nil {
		clock = core.SystemClock{}
	}
	v := &Viewer{
		screen: screen,
		scene:  scene,
		loop:   core.NewFrameLoop(tps, clock),
		sound:  sound,
		quit:   func() {},
	}
	v.session = app.NewSession(scene, clock, drawAfter{loop: v.loop, after: v.afterFrame}, seed)
	return v
}

// Session exposes the run controller.
func (v *Viewer) Session() *app.Session { return v.session }

// Run processes input and frames until ctx ends or the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	v.quit = cancel

	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			if !v.loop.Post(func() { v.Handle(ev) }) {
				return
			}
		}
	}()

	v.Draw()
	err := v.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Handle applies one terminal event. It reports false once the viewer should
// exit.
func (v *Viewer) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		var cmd app.Command
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			cmd = app.CmdQuit
		case tcell.KeyEnter:
			cmd = app.CmdStart
		case tcell.KeyRune:
			cmd = app.CommandForKey(ev.Rune(), v.session.State())
		}
		keep, err := v.session.Apply(cmd)
		if !keep {
			v.quit()
			return false
		}
		v.Draw()
		if err != nil {
			v.status(err.Error())
		}
	case *tcell.EventResize:
		v.screen.Sync()
		v.Draw()
	}
	return true
}

func (v *Viewer) afterFrame() {
	if st, ok := v.scene.(interface{ Stats() fusion.Stats }); ok {
		s := st.Stats()
		v.sound.Merge(s.Merges)
		if s.Captures > 0 {
			v.sound.Capture()
		}
	}
	v.Draw()
}

// Draw renders the scene above a status line.
func (v *Viewer) Draw() {
	cols, rows := v.screen.Size()
	v.screen.Clear()
	if rows < 2 || cols < 1 {
		v.screen.Show()
		return
	}
	v.bodies = v.scene.Snapshot(v.bodies[:0])
	v.cells = Rasterize(v.cells, cols, rows-1, v.scene.Viewport(), v.bodies)
	for i, g := range v.cells {
		if g == GlyphEmpty {
			continue
		}
		v.screen.SetContent(i%cols, i/cols, g.Rune(), nil, glyphStyle(g))
	}
	v.status("")
}

func (v *Viewer) status(msg string) {
	cols, rows := v.screen.Size()
	parts := []string{v.scene.Name(), v.session.State().String()}
	if ps, ok := v.scene.(core.ParametersProvider); ok {
		parts = append(parts, ui.DebugLines(ps.Parameters())...)
	}
	if msg != "" {
		parts = append(parts, msg)
	} else {
		parts = append(parts, helpLine)
	}
	drawText(v.screen, 0, rows-1, cols, strings.Join(parts, " | "), styleStatus)
	v.screen.Show()
}

func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		if col >= width {
			return
		}
		s.SetContent(x+col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		s.SetContent(x+col, y, ' ', nil, style)
	}
}

func glyphStyle(g Glyph) tcell.Style {
	switch g {
	case GlyphFused:
		return styleFused
	case GlyphHit:
		return styleHit
	case GlyphAnchor:
		return styleAnchor
	default:
		return styleBody
	}
}

// drawAfter wraps each scheduled frame so the screen is redrawn once the
// frame has stepped the scene.
type drawAfter struct {
	loop  *core.FrameLoop
	after func()
}

func (d drawAfter) Schedule(frame func()) {
	d.loop.Schedule(func() {
		frame()
		d.after()
	})
}

func (d drawAfter) Cancel() { d.loop.Cancel() }
