package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WhooshGenerator is a falling band of noise with a short rise and long tail,
// played on every impulse.
type WhooshGenerator struct {
	sr    beep.SampleRate
	pos   int
	total int
	seed  uint32
	prev  float64
}

// NewWhooshGenerator creates a whoosh lasting length.
func NewWhooshGenerator(sr beep.SampleRate, length time.Duration) *WhooshGenerator {
	return &WhooshGenerator{sr: sr, total: max(sr.N(length), 1), seed: 0x2545f491}
}

// Stream implements beep.Streamer.
func (g *WhooshGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		p := float64(g.pos) / float64(g.total)
		if p > 1 {
			p = 1
		}

		// One-pole low-pass; the cutoff falls as the whoosh fades
		g.seed = g.seed*1664525 + 1013904223
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1
		alpha := 0.35 * (1 - 0.8*p)
		g.prev += alpha * (noise - g.prev)

		envelope := math.Min(p/0.1, 1) * (1 - p)
		sample := 0.5 * envelope * g.prev

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (g *WhooshGenerator) Err() error {
	return nil
}

// HitGenerator is a decaying low thud with a buzz on top.
type HitGenerator struct {
	sr  beep.SampleRate
	pos int
}

// NewHitGenerator creates a hit sound generator.
func NewHitGenerator(sr beep.SampleRate) *HitGenerator {
	return &HitGenerator{sr: sr}
}

// Stream implements beep.Streamer.
func (g *HitGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 9)
		freq := 140 * (1 - 0.5*math.Min(t/0.3, 1))
		thud := math.Sin(2 * math.Pi * freq * t)
		buzz := 0.3 * math.Sin(2*math.Pi*freq*3*t)

		sample := 0.45 * envelope * (thud + buzz) / 1.3

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (g *HitGenerator) Err() error {
	return nil
}

// themeNotes is the arpeggio of the background loop, in Hz.
var themeNotes = []float64{220, 277.18, 329.63, 440, 329.63, 277.18}

// ThemeGenerator plays an endless arpeggio over a bass drone.
type ThemeGenerator struct {
	sr      beep.SampleRate
	pos     int
	perNote int
}

// NewThemeGenerator creates the background loop.
func NewThemeGenerator(sr beep.SampleRate) *ThemeGenerator {
	return &ThemeGenerator{
		sr:      sr,
		perNote: sr.N(250 * time.Millisecond),
	}
}

// Stream implements beep.Streamer.
func (g *ThemeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		step := g.pos / g.perNote
		inNote := float64(g.pos%g.perNote) / float64(g.perNote)

		note := themeNotes[step%len(themeNotes)]
		lead := math.Exp(-inNote*4) * math.Sin(2*math.Pi*note*t)
		bass := math.Sin(2 * math.Pi * 55 * t)

		sample := 0.2*lead + 0.1*bass

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (g *ThemeGenerator) Err() error {
	return nil
}
