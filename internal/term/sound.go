//go:build sound

package term

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/speaker"
)

// Sound plays cues for simulation events. A nil *Sound is silent.
type Sound struct {
	volume float64
}

// OpenSound initializes the speaker.
func OpenSound(volume float64) (*Sound, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("speaker init: %w", err)
	}
	return &Sound{volume: volume}, nil
}

// Merge plays the fusion chime.
func (s *Sound) Merge(merges int) {
	if s == nil || merges <= 0 {
		return
	}
	speaker.Play(MergeCue(merges, s.volume))
}

// Capture plays the capture blip.
func (s *Sound) Capture() {
	if s == nil {
		return
	}
	if cue, err := CaptureCue(s.volume); err == nil {
		speaker.Play(cue)
	}
}

// Close releases the audio device.
func (s *Sound) Close() {
	if s != nil {
		speaker.Close()
	}
}
