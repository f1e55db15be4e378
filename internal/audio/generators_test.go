package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/skyflight/internal/core"
)

// drain streams s to completion and returns the sample count and peak level.
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for total < limit {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Max(math.Abs(smp[0]), math.Abs(smp[1])))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	return total, peak
}

func TestCueStreamersAreFiniteAndBounded(t *testing.T) {
	for _, cue := range []core.Cue{core.CueImpulse, core.CueCollision, core.CueShield} {
		t.Run(cue.String(), func(t *testing.T) {
			s := cueStreamer(cue)
			if s == nil {
				t.Fatal("no streamer")
			}
			n, peak := drain(t, s, sampleRate.N(2*time.Second))
			if n == 0 || n >= sampleRate.N(2*time.Second) {
				t.Errorf("streamed %d samples, want a short finite cue", n)
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak = %v, want (0, 1]", peak)
			}
		})
	}
}

func TestCueStreamerUnknown(t *testing.T) {
	if cueStreamer(core.Cue(99)) != nil {
		t.Error("unknown cue produced a streamer")
	}
}

func TestThemeGeneratorIsEndless(t *testing.T) {
	limit := sampleRate.N(3 * time.Second)
	n, peak := drain(t, NewThemeGenerator(sampleRate), limit)
	if n < limit {
		t.Errorf("theme stopped after %d samples", n)
	}
	if peak > 1 {
		t.Errorf("theme clips: peak = %v", peak)
	}
}
