package audio

import "log"

// ----- Vowel Plane ----- //

// VowelPos is a coordinate on the vowel plane, both axes in [0,1]. Voices
// map it onto their own timbre space; the formant voice inverts it to the
// first two formant frequencies.
type VowelPos struct {
	X float64
	Y float64
}

// ----- Voice ----- //

// Voice renders one sample per Step call. Frequency and vowel changes carry
// a glide duration in seconds: > 0 interpolates to the target over that
// duration, 0 applies immediately.
type Voice interface {
	Start()
	Stop()
	SetFrequency(freq float64, glide float64)
	SetVowel(pos VowelPos, glide float64)
	SetParams(params map[string]float64)
	Step() float64
}

// Voice kinds understood by NewVoice.
const (
	VoiceFormant = "formant"
	VoiceZing    = "zing"
	VoiceSine    = "sine"
)

// Gate ramp times. Kept short; these are click guards, not envelopes.
const (
	gateAttack  = 0.005
	gateRelease = 0.03
)

// NewVoice builds a voice of the requested kind, falling back to the sine
// voice for anything it does not recognize.
func NewVoice(kind string) Voice {
	switch kind {
	case VoiceFormant:
		return newFormantVoice()
	case VoiceZing:
		return newZingVoice()
	case VoiceSine:
		return newSineVoice()
	default:
		log.Printf("unknown voice kind %q, falling back to sine\n", kind)
		return newSineVoice()
	}
}

// ----- Sine Voice ----- //

// sineVoice is the simplest Voice variant and the fallback. The vowel
// position is ignored.
type sineVoice struct {
	osc  *osc
	gate *transitiveValue
}

func newSineVoice() *sineVoice {
	return &sineVoice{
		osc:  newOsc(waveSine, 0),
		gate: newTransitiveValue(0),
	}
}

func (v *sineVoice) Start() {
	v.gate.linear(gateAttack, 1)
}

func (v *sineVoice) Stop() {
	v.gate.linear(gateRelease, 0)
}

func (v *sineVoice) SetFrequency(freq float64, glide float64) {
	v.osc.setFreq(freq, glide)
}

func (v *sineVoice) SetVowel(pos VowelPos, glide float64) {}

func (v *sineVoice) SetParams(params map[string]float64) {}

func (v *sineVoice) Step() float64 {
	v.gate.step()
	if v.gate.value == 0 {
		return 0
	}
	return v.osc.step() * v.gate.value
}
