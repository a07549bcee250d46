package tones

import (
	"math"
	"math/rand"
	"sort"

	"github.com/capogreco/euclidean-seq/src/euclid"
)

// Package tones derives layered frequency sets from an equal division of the
// octave: chromatic base tones, a Euclidean scale, a chord picked in scale-
// degree space, and a sequence pool spread over an octave range. Every stage
// is total: degenerate musical input (zero counts, empty parents) yields
// empty or zero-filled results, never an error.

// ----- Selection Method ----- //

const (
	SelectEuclidean = "euclidean"
	SelectRandom    = "random"
)

// ----- Base Tones ----- //

// BaseTones returns edo+1 frequencies, root * 2^(i/edo) for i in 0..edo.
// The last entry is the octave duplicate of the root.
func BaseTones(edo int, root float64) []float64 {
	if edo < 1 {
		return []float64{}
	}
	freqs := make([]float64, edo+1)
	for i := 0; i <= edo; i++ {
		freqs[i] = root * math.Pow(2, float64(i)/float64(edo))
	}
	return freqs
}

// ----- Scale ----- //

// Scale is a rotated Euclidean selection of chromatic steps, closed by an
// explicit octave step at edo.
type Scale struct {
	Steps []int     // chromatic step numbers, last one == edo
	Freqs []float64 // same length as Steps
}

// NewScale distributes noteCount degrees over the chromatic universe with
// Björklund's algorithm, rotates in interval space, and appends the closing
// octave.
func NewScale(base []float64, noteCount int, rotation int) Scale {
	edo := len(base) - 1
	if edo < 1 || noteCount <= 0 || noteCount > edo {
		return Scale{Steps: []int{}, Freqs: []float64{}}
	}
	pattern := euclid.Rhythm(noteCount, edo)
	var steps []int
	intervals := euclid.PatternToIntervals(pattern)
	if len(intervals) == 0 {
		// Fewer than 2 degrees: rotation has nothing to act on.
		steps = euclid.ActiveIndices(pattern)
	} else {
		intervals = euclid.RotateIntervals(intervals, rotation)
		steps = make([]int, 0, len(intervals)+1)
		pos := 0
		steps = append(steps, 0)
		for i := 0; i < len(intervals)-1; i++ {
			pos += intervals[i]
			steps = append(steps, pos)
		}
	}
	steps = append(steps, edo)
	freqs := make([]float64, len(steps))
	for i, step := range steps {
		freqs[i] = base[step]
	}
	return Scale{Steps: steps, Freqs: freqs}
}

// Degrees returns the active chromatic steps excluding the closing octave.
func (s Scale) Degrees() []int {
	if len(s.Steps) == 0 {
		return []int{}
	}
	return s.Steps[:len(s.Steps)-1]
}

// ----- Chord ----- //

// Chord is a Euclidean pick in scale-degree space, mapped back to chromatic
// steps through the scale's degree list.
type Chord struct {
	Steps     []int
	Freqs     []float64
	HasOctave bool
}

// NewChord selects chordNotes of the scale's degrees (octave excluded) with
// Björklund's algorithm, rotates in interval space, then re-appends the
// octave degree carried by the scale.
func NewChord(base []float64, scale Scale, chordNotes int, rotation int) Chord {
	degrees := scale.Degrees()
	if len(degrees) == 0 || chordNotes <= 0 || chordNotes > len(degrees) {
		return Chord{Steps: []int{}, Freqs: []float64{}}
	}
	pattern := euclid.RotateByInterval(euclid.Rhythm(chordNotes, len(degrees)), rotation)
	positions := euclid.ActiveIndices(pattern)
	steps := make([]int, 0, len(positions)+1)
	for _, pos := range positions {
		steps = append(steps, degrees[pos])
	}
	hasOctave := len(scale.Steps) > len(degrees)
	if hasOctave {
		steps = append(steps, scale.Steps[len(scale.Steps)-1])
	}
	freqs := make([]float64, len(steps))
	for i, step := range steps {
		freqs[i] = base[step]
	}
	return Chord{Steps: steps, Freqs: freqs, HasOctave: hasOctave}
}

// Tones returns the chord frequencies excluding the octave duplicate.
func (c Chord) Tones() []float64 {
	if c.HasOctave && len(c.Freqs) > 0 {
		return c.Freqs[:len(c.Freqs)-1]
	}
	return c.Freqs
}

// ----- Sequence Pool ----- //

// Pool replicates chord tones across an octave range and selects a subset.
// Tones is sparse (zero where unselected); Indices is the compact selection
// in selection order.
type Pool struct {
	Tones   []float64
	Indices []int
}

// Freqs returns the selected frequencies in selection order.
func (p Pool) Freqs() []float64 {
	freqs := make([]float64, len(p.Indices))
	for i, index := range p.Indices {
		freqs[i] = p.Tones[index]
	}
	return freqs
}

// NewPool expands chord tones over octaves [base, base+octaves-1] and keeps
// min(notes, poolSize) of them. Euclidean selection is slice-rotated (not
// interval-rotated); random selection is a seeded without-replacement sample
// re-sorted ascending, so pool order survives, not sampling order.
func NewPool(chord Chord, notes int, method string, octaveBase int, octaves int, rotation int, seed int64) Pool {
	chordTones := chord.Tones()
	if len(chordTones) == 0 || octaves <= 0 || notes <= 0 {
		return Pool{Tones: []float64{}, Indices: []int{}}
	}
	all := make([]float64, 0, len(chordTones)*octaves)
	for oct := 0; oct < octaves; oct++ {
		mult := math.Pow(2, float64(octaveBase+oct))
		for _, freq := range chordTones {
			all = append(all, freq*mult)
		}
	}
	if notes > len(all) {
		notes = len(all)
	}
	var indices []int
	switch method {
	case SelectRandom:
		rng := rand.New(rand.NewSource(seed))
		indices = rng.Perm(len(all))[:notes]
		sort.Ints(indices)
	default: // euclidean
		pattern := euclid.RotateSlice(euclid.Rhythm(notes, len(all)), rotation)
		indices = euclid.ActiveIndices(pattern)
	}
	tones := make([]float64, len(all))
	for _, index := range indices {
		tones[index] = all[index]
	}
	return Pool{Tones: tones, Indices: indices}
}
