package pattern

// ----- Phoneme Lane ----- //

// Position is a coordinate on the vowel (formant) plane, both axes in [0,1].
type Position struct {
	X float64
	Y float64
}

// Vowels is the fixed 5-symbol alphabet of the phoneme lane.
var Vowels = []byte{'a', 'e', 'i', 'o', 'u'}

// VowelPositions places each vowel on the formant plane. The coordinates
// are normalized from the measured first two formants:
// x = (F2-800)/1500, y = (F1-300)/500.
var VowelPositions = map[byte]Position{
	'a': {X: 0.2667, Y: 1.0},
	'e': {X: 0.7333, Y: 0.4},
	'i': {X: 1.0, Y: 0.0},
	'o': {X: 0.0, Y: 0.4},
	'u': {X: 0.2667, Y: 0.0},
}

// Phoneme is the vowel lane, sized independently from the note lane so the
// combined cycle is the lcm of the two periods.
type Phoneme struct {
	Vowels      []byte
	Positions   []Position
	CurrentStep int
}

// Len returns the phoneme pattern length.
func (p *Phoneme) Len() int {
	return len(p.Vowels)
}

// lcg is the 32-bit linear congruential generator driving the vowel walk.
type lcg struct {
	seed uint32
}

func (g *lcg) next() uint32 {
	g.seed = g.seed*1664525 + 1013904223
	return g.seed
}

// GeneratePhonemes draws steps vowels with no two consecutive symbols equal.
// After the first draw, each step picks uniformly among the other four.
func GeneratePhonemes(steps int, seed uint32) *Phoneme {
	if steps < 0 {
		steps = 0
	}
	vowels := make([]byte, steps)
	positions := make([]Position, steps)
	rng := lcg{seed: seed}
	prev := -1
	for i := 0; i < steps; i++ {
		var index int
		if prev < 0 {
			index = int(rng.next() % uint32(len(Vowels)))
		} else {
			index = int(rng.next() % uint32(len(Vowels)-1))
			if index >= prev {
				index++
			}
		}
		vowels[i] = Vowels[index]
		positions[i] = VowelPositions[vowels[i]]
		prev = index
	}
	return &Phoneme{Vowels: vowels, Positions: positions}
}
