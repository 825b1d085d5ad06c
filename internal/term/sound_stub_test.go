//go:build !sound

package term

import "testing"

func TestOpenSoundWithoutAudioBuild(t *testing.T) {
	s, err := OpenSound(0.5)
	if err == nil || s != nil {
		t.Fatalf("OpenSound = %v, %v; want nil sound and an error", s, err)
	}
	s.Merge(2)
	s.Capture()
	s.Close()
}
