//go:build !sound

package term

import "errors"

// Sound is a silent placeholder used when the sound build tag is absent.
type Sound struct{}

// OpenSound reports that audio was not compiled in.
func OpenSound(float64) (*Sound, error) {
	return nil, errors.New("audio requires building with the 'sound' tag")
}

// Merge is a no-op placeholder.
func (s *Sound) Merge(int) {}

// Capture is a no-op placeholder.
func (s *Sound) Capture() {}

// Close is a no-op placeholder.
func (s *Sound) Close() {}
