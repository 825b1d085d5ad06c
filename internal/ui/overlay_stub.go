//go:build !ebiten

package ui

// Overlay stands in for the merge-radius, velocity and capture-zone layers
// when the window is not compiled in.
type Overlay struct{}

func NewOverlay() *Overlay { return &Overlay{} }

func (o *Overlay) Update() {}

func (o *Overlay) Draw(any, any, any) {}
