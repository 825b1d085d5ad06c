package fusion

import (
	"strconv"

	"mad-fusion/internal/core"
)

// Parameters reports the staged configuration together with live counters.
// Staged edits take effect on the next Reset.
func (w *World) Parameters() core.ParameterSnapshot {
	c := w.next
	st := w.last
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", c.Width),
				core.IntParam("h", "Height", c.Height),
				core.Int64Param("seed", "Seed", w.seed),
				core.IntParam("max_bodies", "Max bodies", c.MaxBodies),
				core.BoolParam("anchor", "Anchor", c.Anchor),
			},
		},
		{
			Name:    "Spawn",
			Summary: "applies on reset",
			Params: []core.Parameter{
				core.FloatParam("base_radius", "Base radius", c.BaseRadius),
				core.FloatParam("min_speed", "Min speed", c.MinSpeed),
				core.FloatParam("max_speed", "Max speed", c.MaxSpeed),
			},
		},
		{
			Name:    "Merge",
			Summary: "applies on reset",
			Params: []core.Parameter{
				core.StringParam("gate", "Gate", string(c.Gate)),
				core.FloatParam("merge_threshold", "Merge threshold", c.MergeThreshold),
				core.IntParam("max_fused", "Max fused", c.MaxFused),
				core.FloatParam("max_radius", "Max radius", c.MaxRadius),
			},
		},
		{
			Name: "Debug",
			Params: []core.Parameter{
				{Key: "ticks", Label: "Ticks", Type: core.ParamTypeInt, Value: strconv.FormatUint(w.tick, 10)},
				core.IntParam("bodies", "Bodies", len(w.bodies)),
				core.IntParam("fused", "Fused", w.fused),
				core.IntParam("visible", "Visible", st.Visible),
				core.IntParam("merges", "Merges", st.Merges),
				core.IntParam("bounces", "Bounces", st.Bounces),
				core.StringParam("state", "State", w.state.String()),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable values.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "max_bodies", Label: "Max bodies", Type: core.ParamTypeInt, Step: 100, Min: 0, HasMin: true},
		{Key: "max_speed", Label: "Max speed", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, HasMin: true},
		{Key: "merge_threshold", Label: "Merge threshold", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "max_fused", Label: "Max fused", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
	}
}

// SetFloatParameter stages a floating point edit.
func (w *World) SetFloatParameter(key string, value float64) bool {
	ctl, ok := w.control(key, core.ParamTypeFloat)
	if !ok {
		return false
	}
	value = ctl.Clamp(value)
	switch key {
	case "max_speed":
		w.next.MaxSpeed = value
	case "merge_threshold":
		w.next.MergeThreshold = value
	default:
		return false
	}
	return true
}

// SetIntParameter stages an integer edit.
func (w *World) SetIntParameter(key string, value int) bool {
	ctl, ok := w.control(key, core.ParamTypeInt)
	if !ok {
		return false
	}
	value = int(ctl.Clamp(float64(value)))
	switch key {
	case "max_bodies":
		w.next.MaxBodies = value
	case "max_fused":
		w.next.MaxFused = value
	default:
		return false
	}
	return true
}

func (w *World) control(key string, typ core.ParamType) (core.ParameterControl, bool) {
	for _, c := range w.ParameterControls() {
		if c.Key == key && c.Type == typ {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}
