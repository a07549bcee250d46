package audio

// ----- Formant Voice ----- //

// Formant center frequencies per vowel, F1..F4. The upper two formants are
// effectively constant across the five vowels; the vowel plane therefore
// only has to encode F1 and F2:
//
//	F1 = 300 + 500*y, F2 = 800 + 1500*x
var formantFreqs = map[byte][]float64{
	'a': {800, 1200, 2500, 3500},
	'e': {500, 1900, 2500, 3500},
	'i': {300, 2300, 2900, 3500},
	'o': {500, 800, 2500, 3500},
	'u': {300, 1200, 2500, 3500},
}

const (
	formantF3 = 2500.0
	formantF4 = 3500.0
	formantQ  = 6.0
)

// Coefficients are rebuilt every coeffInterval samples while the vowel
// position is gliding, not per sample.
const coeffInterval = 64

// formantVoice runs a saw through a bank of four band-pass filters whose
// lower two center frequencies track the vowel plane.
type formantVoice struct {
	osc     *osc
	gate    *transitiveValue
	x       *transitiveValue
	y       *transitiveValue
	filters [4]*biquad
	age     int
	gliding bool
}

func newFormantVoice() *formantVoice {
	v := &formantVoice{
		osc:  newOsc(waveSaw, 0),
		gate: newTransitiveValue(0),
		x:    newTransitiveValue(0.5),
		y:    newTransitiveValue(0.5),
	}
	for i := range v.filters {
		v.filters[i] = &biquad{}
	}
	v.applyFreqs()
	return v
}

// F1/F2 from the vowel plane, F3/F4 fixed.
func (v *formantVoice) applyFreqs() {
	f1 := 300 + 500*v.y.value
	f2 := 800 + 1500*v.x.value
	v.filters[0].setBandpass(f1, formantQ)
	v.filters[1].setBandpass(f2, formantQ)
	v.filters[2].setBandpass(formantF3, formantQ)
	v.filters[3].setBandpass(formantF4, formantQ)
}

func (v *formantVoice) Start() {
	v.gate.linear(gateAttack, 1)
}

func (v *formantVoice) Stop() {
	v.gate.linear(gateRelease, 0)
}

func (v *formantVoice) SetFrequency(freq float64, glide float64) {
	v.osc.setFreq(freq, glide)
}

func (v *formantVoice) SetVowel(pos VowelPos, glide float64) {
	if glide <= 0 {
		v.x.init(pos.X)
		v.y.init(pos.Y)
		v.applyFreqs()
		v.gliding = false
		return
	}
	v.x.linear(glide, pos.X)
	v.y.linear(glide, pos.Y)
	v.gliding = true
	v.age = 0
}

func (v *formantVoice) SetParams(params map[string]float64) {}

func (v *formantVoice) Step() float64 {
	v.gate.step()
	if v.gliding {
		xDone := v.x.step()
		yDone := v.y.step()
		v.age++
		if v.age%coeffInterval == 0 || (xDone && yDone) {
			v.applyFreqs()
		}
		if xDone && yDone {
			v.gliding = false
		}
	}
	if v.gate.value == 0 {
		return 0
	}
	in := v.osc.step()
	out := 0.0
	for _, filter := range v.filters {
		out += filter.step(in)
	}
	return out * v.gate.value
}
