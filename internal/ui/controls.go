package ui

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"mad-fusion/internal/core"
)

// ControlPanel holds the HUD's parameter controls independent of any drawing
// backend: values parsed from the latest snapshot, button geometry and the
// setters that apply adjustments.
type ControlPanel struct {
	controls    []controlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	debug       []string
	width       int
}

type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewControlPanel inspects sim for parameter controls and setters.
func NewControlPanel(sim core.Sim, width int) *ControlPanel {
	p := &ControlPanel{width: width}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		p.controls = make([]controlState, len(controls))
		for i, ctrl := range controls {
			p.controls[i] = controlState{control: ctrl, value: "--"}
		}
		p.layout()
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		p.intSetter = setter
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		p.floatSetter = setter
	}
	return p
}

// Len returns the number of controls.
func (p *ControlPanel) Len() int { return len(p.controls) }

// Refresh parses control values and debug lines out of snap.
func (p *ControlPanel) Refresh(snap core.ParameterSnapshot) {
	p.debug = DebugLines(snap)
	for i := range p.controls {
		state := &p.controls[i]
		state.hasValue = false
		state.value = "--"
		param, ok := snap.Lookup(state.control.Key)
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
			state.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
			state.hasValue = true
		}
	}
}

// Click applies the button under panel-local point (x, y), if any.
func (p *ControlPanel) Click(x, y int) bool {
	pt := image.Pt(x, y)
	for i := range p.controls {
		state := &p.controls[i]
		if !state.hasValue {
			continue
		}
		if pt.In(state.minusRect) {
			return p.Adjust(i, -1)
		}
		if pt.In(state.plusRect) {
			return p.Adjust(i, 1)
		}
	}
	return false
}

// Adjust steps control i in direction and reports whether the setter accepted
// the new value.
func (p *ControlPanel) Adjust(i, direction int) bool {
	if i < 0 || i >= len(p.controls) || direction == 0 {
		return false
	}
	state := &p.controls[i]
	target, ok := p.target(state, direction)
	if !ok {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		v := int(math.Round(target))
		if p.intSetter.SetIntParameter(state.control.Key, v) {
			state.intValue = v
			state.floatValue = float64(v)
			state.value = strconv.Itoa(v)
			return true
		}
	case core.ParamTypeFloat:
		if p.floatSetter.SetFloatParameter(state.control.Key, target) {
			state.floatValue = target
			state.value = formatFloat(state.control, target)
			return true
		}
	}
	return false
}

// CanAdjust reports whether stepping control i in direction would change it.
func (p *ControlPanel) CanAdjust(i, direction int) bool {
	if i < 0 || i >= len(p.controls) {
		return false
	}
	_, ok := p.target(&p.controls[i], direction)
	return ok
}

func (p *ControlPanel) target(state *controlState, direction int) (float64, bool) {
	if !state.hasValue || direction == 0 {
		return 0, false
	}
	ctrl := state.control
	step := ctrl.Step
	switch ctrl.Type {
	case core.ParamTypeInt:
		if p.intSetter == nil {
			return 0, false
		}
		step = math.Round(step)
		if step <= 0 {
			step = 1
		}
	case core.ParamTypeFloat:
		if p.floatSetter == nil {
			return 0, false
		}
		if step <= 0 {
			step = 0.05
		}
	default:
		return 0, false
	}
	target := ctrl.Clamp(state.floatValue + float64(direction)*step)
	if math.Abs(target-state.floatValue) < 1e-9 {
		return 0, false
	}
	return target, true
}

func (p *ControlPanel) layout() {
	if p.width <= 0 {
		return
	}
	for i := range p.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(p.width-panelPadding-buttonSize, buttonY, p.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		p.controls[i].top = top
		p.controls[i].minusRect = minusRect
		p.controls[i].plusRect = plusRect
	}
}

// DebugTop is the first baseline below the controls.
func (p *ControlPanel) DebugTop() int {
	return controlsTop + len(p.controls)*lineHeight + infoSpacing
}

// Debug returns the lines rendered under the controls.
func (p *ControlPanel) Debug() []string { return p.debug }

// DebugLines formats the "Debug" group of snap as "Label: value" lines.
func DebugLines(snap core.ParameterSnapshot) []string {
	var lines []string
	for _, g := range snap.Groups {
		if g.Name != "Debug" {
			continue
		}
		for _, param := range g.Params {
			lines = append(lines, fmt.Sprintf("%s: %s", param.Label, param.Value))
		}
	}
	return lines
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	words := strings.Split(sim.Name(), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ") + " Controls"
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 18
	controlsTop    = panelPadding + headerBaseline + 14
)
