package pattern

import (
	"testing"

	"github.com/capogreco/euclidean-seq/src/tones"
)

func makePool(t *testing.T) tones.Pool {
	t.Helper()
	base := tones.BaseTones(12, 440)
	scale := tones.NewScale(base, 7, 0)
	chord := tones.NewChord(base, scale, 3, 0)
	return tones.NewPool(chord, 4, tones.SelectEuclidean, 0, 2, 0, 7)
}

func TestGenerateNotePerStep(t *testing.T) {
	pool := makePool(t)
	seq := Generate(pool, Config{NotePerStep: true, Order: tones.OrderForward})
	if seq.Len() != len(pool.Indices) {
		t.Fatalf("note-per-step length %d, want %d", seq.Len(), len(pool.Indices))
	}
	for i, freq := range seq.Steps {
		if freq == Rest {
			t.Errorf("step %d is a rest in note-per-step mode", i)
		}
		if !seq.Rhythm[i] {
			t.Errorf("step %d inactive in note-per-step mode", i)
		}
	}
	for i := 1; i < seq.Len(); i++ {
		if seq.Steps[i] < seq.Steps[i-1] {
			t.Errorf("forward order violated at step %d: %v", i, seq.Steps)
		}
	}
}

func TestGenerateWithRests(t *testing.T) {
	pool := makePool(t)
	seq := Generate(pool, Config{
		Steps:        8,
		RhythmPulses: 3,
		Order:        tones.OrderForward,
	})
	if seq.Len() != 8 {
		t.Fatalf("length %d, want 8", seq.Len())
	}
	active := 0
	for i, freq := range seq.Steps {
		if seq.Rhythm[i] != (freq != Rest) {
			t.Errorf("step %d: rhythm %v but freq %f", i, seq.Rhythm[i], freq)
		}
		if freq != Rest {
			active++
		}
	}
	if active != 3 {
		t.Errorf("expected 3 sounding steps, got %d", active)
	}
}

func TestGenerateEmptyPool(t *testing.T) {
	seq := Generate(tones.Pool{Tones: []float64{}, Indices: []int{}}, Config{
		Steps:        4,
		RhythmPulses: 2,
	})
	if seq.Len() != 4 {
		t.Fatalf("length %d, want 4", seq.Len())
	}
	for i, freq := range seq.Steps {
		if freq != Rest {
			t.Errorf("step %d should be a rest with an empty pool", i)
		}
	}
}

func TestUpdatePortamentoKeepsNotes(t *testing.T) {
	pool := makePool(t)
	seq := Generate(pool, Config{
		Steps:           8,
		RhythmPulses:    5,
		PortamentoSteps: 2,
		Order:           tones.OrderShuffle,
		Seed:            3,
	})
	before := make([]float64, len(seq.Steps))
	copy(before, seq.Steps)
	seq.UpdatePortamento(5, 3)
	for i := range before {
		if seq.Steps[i] != before[i] {
			t.Fatalf("portamento update disturbed note order at step %d", i)
		}
	}
	on := 0
	for _, p := range seq.Portamento {
		if p {
			on++
		}
	}
	if on != 5 {
		t.Errorf("expected 5 portamento steps, got %d", on)
	}
	if len(seq.Portamento) != seq.Len() {
		t.Errorf("portamento length %d, want %d", len(seq.Portamento), seq.Len())
	}
}

func TestPortamentoClamped(t *testing.T) {
	pool := makePool(t)
	seq := Generate(pool, Config{NotePerStep: true, PortamentoSteps: 100})
	on := 0
	for _, p := range seq.Portamento {
		if p {
			on++
		}
	}
	if on != seq.Len() {
		t.Errorf("portamento should clamp to pattern length, got %d of %d", on, seq.Len())
	}
}

func TestPhonemeNoAdjacentRepeat(t *testing.T) {
	for seed := uint32(0); seed < 25; seed++ {
		phoneme := GeneratePhonemes(32, seed)
		if phoneme.Len() != 32 {
			t.Fatalf("length %d, want 32", phoneme.Len())
		}
		for i := 1; i < phoneme.Len(); i++ {
			if phoneme.Vowels[i] == phoneme.Vowels[i-1] {
				t.Errorf("seed %d: adjacent repeat %q at step %d", seed, phoneme.Vowels[i], i)
			}
		}
	}
}

func TestPhonemeDeterministic(t *testing.T) {
	a := GeneratePhonemes(16, 123)
	b := GeneratePhonemes(16, 123)
	for i := range a.Vowels {
		if a.Vowels[i] != b.Vowels[i] {
			t.Fatalf("same seed should generate identical vowels: %s vs %s", a.Vowels, b.Vowels)
		}
	}
}

// Pins the generator constants: seed 1 walks 1015568748, 1586005467,
// 2165703038, 3027450565, 217083232, which the no-repeat draw maps to
// o,u,i,e,a. Any change to the recurrence breaks this sequence.
func TestPhonemeKnownSequence(t *testing.T) {
	got := GeneratePhonemes(5, 1)
	want := "ouiea"
	if string(got.Vowels) != want {
		t.Errorf("seed 1 vowels = %s, want %s", got.Vowels, want)
	}
}

func TestPhonemePositionsOnPlane(t *testing.T) {
	phoneme := GeneratePhonemes(10, 5)
	for i, pos := range phoneme.Positions {
		if pos != VowelPositions[phoneme.Vowels[i]] {
			t.Errorf("step %d: position does not match vowel %q", i, phoneme.Vowels[i])
		}
		if pos.X < 0 || pos.X > 1 || pos.Y < 0 || pos.Y > 1 {
			t.Errorf("step %d: position %v outside unit square", i, pos)
		}
	}
}
