package pattern

import (
	"github.com/capogreco/euclidean-seq/src/euclid"
	"github.com/capogreco/euclidean-seq/src/tones"
)

// Package pattern turns the sequence pool into the playable step sequence
// and the independent phoneme lane.

// ----- Sequence ----- //

// A rest is encoded as 0 Hz, matching the zero-filled degradation used
// throughout the tone pipeline.
const Rest = 0.0

// Config holds the pattern-shaping parameters.
type Config struct {
	NotePerStep        bool // one pool tone per step, no rests
	Steps              int  // pattern length in rest-allowing mode
	RhythmPulses       int
	RhythmRotation     int
	PortamentoSteps    int
	PortamentoRotation int
	Order              string
	Seed               int64
	Salt               int64
}

// Sequence is the playable note lane.
type Sequence struct {
	Steps       []float64 // frequency per step, Rest where silent
	Rhythm      []bool
	Portamento  []bool
	CurrentStep int
}

// Len returns the pattern length in steps.
func (s *Sequence) Len() int {
	return len(s.Steps)
}

// Generate assembles the step sequence from the pool's selected tones.
// In note-per-step mode every step is active and the length is the tone
// count; otherwise the rhythm pattern decides which of cfg.Steps slots
// sound. Ordered tones are consumed cyclically on active steps only.
func Generate(pool tones.Pool, cfg Config) *Sequence {
	ordered := tones.Order(pool.Freqs(), cfg.Order, cfg.Seed, cfg.Salt)
	var length int
	var rhythm []bool
	if cfg.NotePerStep {
		length = len(ordered)
		rhythm = make([]bool, length)
		for i := range rhythm {
			rhythm[i] = true
		}
	} else {
		length = cfg.Steps
		if length < 0 {
			length = 0
		}
		pulses := cfg.RhythmPulses
		if pulses > length {
			pulses = length
		}
		if pulses < 0 {
			pulses = 0
		}
		rhythm = euclid.RotateByInterval(euclid.Rhythm(pulses, length), cfg.RhythmRotation)
	}
	steps := make([]float64, length)
	counter := 0
	for i := 0; i < length; i++ {
		if rhythm[i] && len(ordered) > 0 {
			steps[i] = ordered[counter%len(ordered)]
			counter++
		} else {
			steps[i] = Rest
		}
	}
	s := &Sequence{Steps: steps, Rhythm: rhythm}
	s.Portamento = portamentoPattern(length, cfg.PortamentoSteps, cfg.PortamentoRotation)
	return s
}

// UpdatePortamento replaces only the portamento pattern, in place. Note
// order and the rhythm are untouched so seeded shuffles and note identity
// survive a portamento tweak.
func (s *Sequence) UpdatePortamento(steps int, rotation int) {
	s.Portamento = portamentoPattern(len(s.Steps), steps, rotation)
}

// Portamento uses slice rotation, not interval rotation.
func portamentoPattern(length int, steps int, rotation int) []bool {
	if steps > length {
		steps = length
	}
	if steps < 0 {
		steps = 0
	}
	return euclid.RotateSlice(euclid.Rhythm(steps, length), rotation)
}
