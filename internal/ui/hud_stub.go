//go:build !ebiten

package ui

import "mad-fusion/internal/core"

// HUD stands in for the parameter panel when the window is not compiled in.
// The terminal viewer shows the same debug lines on its status row instead.
type HUD struct{}

// NewHUD returns nil; every method accepts a nil receiver.
func NewHUD(core.Sim, int) *HUD { return nil }

func (h *HUD) Update(int) {}

func (h *HUD) Draw(any, int, int) {}
