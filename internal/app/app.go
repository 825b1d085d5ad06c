//go:build ebiten

package app

import (
	"log"
	"strconv"

	"mad-fusion/internal/core"
	"mad-fusion/internal/render"
	"mad-fusion/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core scene to the ebiten.Game interface.
type Game struct {
	scene   core.Scene
	session *Session
	frames  *FrameSlot
	painter *render.BodyPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	bodies   []core.BodyView
	scale    float64
	hudWidth int
}

var keyBindings = map[ebiten.Key]rune{
	ebiten.KeyEnter:  '\r',
	ebiten.KeySpace:  ' ',
	ebiten.KeyS:      's',
	ebiten.KeyR:      'r',
	ebiten.KeyN:      'n',
	ebiten.KeyQ:      'q',
	ebiten.KeyEscape: 'q',
}

// New constructs a Game for the provided scene. Frames scheduled by the scene
// run from Update, so ebiten's tick rate is the only pacing.
func New(scene core.Scene, cfg *Config) *Game {
	frames := &FrameSlot{}
	maxSpeed := 10.0
	if ps, ok := scene.(core.ParametersProvider); ok {
		if p, ok := ps.Parameters().Lookup("max_speed"); ok {
			if v, err := strconv.ParseFloat(p.Value, 64); err == nil && v > 0 {
				maxSpeed = v
			}
		}
	}
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	g := &Game{
		scene:    scene,
		session:  NewSession(scene, core.SystemClock{}, frames, cfg.Seed),
		frames:   frames,
		painter:  render.NewBodyPainter(maxSpeed),
		overlay:  ui.NewOverlay(),
		hud:      ui.NewHUD(scene, cfg.HUDWidth),
		scale:    scale,
		hudWidth: cfg.HUDWidth,
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	return g
}

// Start begins stepping the scene.
func (g *Game) Start() error {
	_, err := g.session.Apply(CmdStart)
	return err
}

// Update handles input and runs the scheduled frame.
func (g *Game) Update() error {
	for key, r := range keyBindings {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		cmd := CommandForKey(r, g.session.State())
		keep, err := g.session.Apply(cmd)
		if err != nil {
			log.Printf("%s: %v", cmd, err)
		}
		if !keep {
			return ebiten.Termination
		}
	}

	g.overlay.Update()
	w, _ := g.projection().ScreenSize()
	g.hud.Update(w)

	g.frames.Run()
	return nil
}

// Draw renders the visible bodies, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	proj := g.projection()
	g.bodies = g.scene.Snapshot(g.bodies[:0])
	g.painter.Draw(screen, g.bodies, proj)
	g.overlay.Draw(screen, g.bodies, proj)
	w, h := proj.ScreenSize()
	g.hud.Draw(screen, w, h)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.projection().ScreenSize()
	if g.hudWidth > 0 {
		w += g.hudWidth
	}
	return w, h
}

func (g *Game) projection() render.Projection {
	return render.Projection{View: g.scene.Viewport(), Scale: g.scale}
}
