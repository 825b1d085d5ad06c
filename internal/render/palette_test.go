package render

import (
	"testing"

	"mad-fusion/internal/core"
)

func TestProjection(t *testing.T) {
	p := Projection{View: core.Rect{X: 200, Y: 200, W: 600, H: 600}, Scale: 0.5}
	x, y := p.ToScreen(500, 260)
	if x != 150 || y != 30 {
		t.Fatalf("ToScreen = (%v,%v), want (150,30)", x, y)
	}
	if w, h := p.ScreenSize(); w != 300 || h != 300 {
		t.Fatalf("ScreenSize = %dx%d", w, h)
	}
	if p.Length(22) != 11 {
		t.Fatalf("Length = %v", p.Length(22))
	}
	if (Projection{View: p.View}).Length(3) != 3 {
		t.Fatal("zero scale should default to 1")
	}
}

func TestPaletteFill(t *testing.T) {
	p := DefaultPalette()
	if got := p.Fill(core.BodyView{Anchor: true, Fused: true}, 10); got != p.Anchor {
		t.Fatalf("anchor fill = %v", got)
	}
	if got := p.Fill(core.BodyView{Fused: true}, 10); got != p.Fused {
		t.Fatalf("fused fill = %v", got)
	}
	fast := p.Fill(core.BodyView{VX: 10}, 10)
	slow := p.Fill(core.BodyView{}, 10)
	if fast != p.Base {
		t.Fatalf("fast base fill = %v, want %v", fast, p.Base)
	}
	if slow.R >= fast.R || slow.B >= fast.B {
		t.Fatalf("slow fill %v should be dimmer than %v", slow, fast)
	}
	if _, ok := p.Outline(core.BodyView{}); ok {
		t.Fatal("plain body should not be outlined")
	}
	if c, ok := p.Outline(core.BodyView{Hit: true}); !ok || c != p.Hit {
		t.Fatalf("hit outline = %v %v", c, ok)
	}
}
