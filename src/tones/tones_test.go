package tones

import (
	"math"
	"testing"
)

func TestBaseTones(t *testing.T) {
	base := BaseTones(12, 440)
	if len(base) != 13 {
		t.Fatalf("expected 13 tones for 12-EDO, got %d", len(base))
	}
	if base[0] != 440 {
		t.Errorf("first tone should be the root, got %f", base[0])
	}
	if math.Abs(base[12]-880) > 1e-9 {
		t.Errorf("last tone should be the octave, got %f", base[12])
	}
	// 12-EDO fifth
	if math.Abs(base[7]-440*math.Pow(2, 7.0/12.0)) > 1e-9 {
		t.Errorf("unexpected 7th step: %f", base[7])
	}
}

func TestBaseTonesDegenerate(t *testing.T) {
	if got := BaseTones(0, 440); len(got) != 0 {
		t.Errorf("EDO 0 should yield no tones, got %v", got)
	}
}

func TestScaleShape(t *testing.T) {
	for edo := 2; edo <= 31; edo++ {
		base := BaseTones(edo, 220)
		for notes := 1; notes <= edo; notes++ {
			for rotation := 0; rotation < 3; rotation++ {
				scale := NewScale(base, notes, rotation)
				if len(scale.Freqs) != notes+1 {
					t.Fatalf("edo=%d notes=%d rot=%d: %d freqs, want %d",
						edo, notes, rotation, len(scale.Freqs), notes+1)
				}
				first := scale.Freqs[0]
				last := scale.Freqs[len(scale.Freqs)-1]
				if math.Abs(last-first*2) > 1e-9 {
					t.Errorf("edo=%d notes=%d: octave not closed: first %f last %f",
						edo, notes, first, last)
				}
			}
		}
	}
}

func TestScaleDegenerate(t *testing.T) {
	base := BaseTones(12, 440)
	if got := NewScale(base, 0, 0); len(got.Freqs) != 0 {
		t.Errorf("zero notes should yield empty scale, got %v", got.Freqs)
	}
	if got := NewScale(base, 13, 0); len(got.Freqs) != 0 {
		t.Errorf("notes > EDO should yield empty scale, got %v", got.Freqs)
	}
}

func TestChordStaysInScale(t *testing.T) {
	base := BaseTones(19, 330)
	for notes := 2; notes <= 9; notes++ {
		scale := NewScale(base, notes, 1)
		active := make(map[int]bool)
		for _, step := range scale.Steps {
			active[step] = true
		}
		for chordNotes := 1; chordNotes <= notes; chordNotes++ {
			chord := NewChord(base, scale, chordNotes, 2)
			for _, step := range chord.Steps {
				if !active[step] {
					t.Errorf("notes=%d chordNotes=%d: chord step %d outside scale %v",
						notes, chordNotes, step, scale.Steps)
				}
			}
			if !chord.HasOctave {
				t.Errorf("notes=%d chordNotes=%d: octave degree dropped", notes, chordNotes)
			}
		}
	}
}

func TestChordDegenerate(t *testing.T) {
	base := BaseTones(12, 440)
	scale := NewScale(base, 7, 0)
	if got := NewChord(base, scale, 0, 0); len(got.Freqs) != 0 {
		t.Errorf("zero chord notes should yield empty chord, got %v", got.Freqs)
	}
	if got := NewChord(base, Scale{}, 3, 0); len(got.Freqs) != 0 {
		t.Errorf("empty scale should yield empty chord, got %v", got.Freqs)
	}
}

func TestPoolEuclideanSelection(t *testing.T) {
	base := BaseTones(12, 440)
	scale := NewScale(base, 7, 0)
	chord := NewChord(base, scale, 3, 0)
	pool := NewPool(chord, 4, SelectEuclidean, 0, 2, 0, 1)
	if len(pool.Tones) != 6 {
		t.Fatalf("expected pool size 6 (3 tones x 2 octaves), got %d", len(pool.Tones))
	}
	if len(pool.Indices) != 4 {
		t.Fatalf("expected 4 selected, got %d", len(pool.Indices))
	}
	for _, index := range pool.Indices {
		if pool.Tones[index] == 0 {
			t.Errorf("selected index %d has zero tone", index)
		}
	}
	zeros := 0
	for _, tone := range pool.Tones {
		if tone == 0 {
			zeros++
		}
	}
	if zeros != 2 {
		t.Errorf("expected 2 unselected zero slots, got %d", zeros)
	}
}

func TestPoolRandomSelectionDeterministic(t *testing.T) {
	base := BaseTones(12, 440)
	scale := NewScale(base, 7, 0)
	chord := NewChord(base, scale, 4, 1)
	a := NewPool(chord, 5, SelectRandom, -1, 3, 0, 42)
	b := NewPool(chord, 5, SelectRandom, -1, 3, 0, 42)
	if len(a.Indices) != 5 || len(b.Indices) != 5 {
		t.Fatalf("expected 5 selections, got %d and %d", len(a.Indices), len(b.Indices))
	}
	for i := range a.Indices {
		if a.Indices[i] != b.Indices[i] {
			t.Fatalf("same seed should select same indices: %v vs %v", a.Indices, b.Indices)
		}
	}
	// Re-sorted ascending: pool order, not sampling order.
	for i := 1; i < len(a.Indices); i++ {
		if a.Indices[i] < a.Indices[i-1] {
			t.Errorf("random selection indices not sorted: %v", a.Indices)
		}
	}
}

func TestPoolDegenerate(t *testing.T) {
	if got := NewPool(Chord{}, 4, SelectEuclidean, 0, 2, 0, 1); len(got.Indices) != 0 {
		t.Errorf("empty chord should yield empty pool, got %v", got.Indices)
	}
	base := BaseTones(12, 440)
	scale := NewScale(base, 5, 0)
	chord := NewChord(base, scale, 2, 0)
	// More notes requested than the pool holds: clamp, don't fail.
	pool := NewPool(chord, 100, SelectEuclidean, 0, 1, 0, 1)
	if len(pool.Indices) != 2 {
		t.Errorf("expected clamp to pool size 2, got %d", len(pool.Indices))
	}
}

func TestOrderMethods(t *testing.T) {
	in := []float64{3, 1, 2}
	if got := Order(in, OrderForward, 0, 0); got[0] != 1 || got[2] != 3 {
		t.Errorf("forward order wrong: %v", got)
	}
	if got := Order(in, OrderReverse, 0, 0); got[0] != 3 || got[2] != 1 {
		t.Errorf("reverse order wrong: %v", got)
	}
	if got := Order(in, OrderRandom, 0, 0); got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Errorf("random order should be identity: %v", got)
	}
	if in[0] != 3 {
		t.Errorf("Order must not mutate its input: %v", in)
	}
}

func TestOrderShuffleDeterministic(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	a := Order(in, OrderShuffle, 99, 1)
	b := Order(in, OrderShuffle, 99, 1)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed should shuffle identically: %v vs %v", a, b)
		}
	}
	c := Order(in, OrderShuffle, 99, 2)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Errorf("different salt should give a different permutation")
	}
}
