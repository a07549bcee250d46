package audio

// ----- Zing Voice ----- //

// zingVoice ring-modulates a sine carrier with a sine modulator locked to a
// harmonic of the carrier. The vowel plane reinterprets: x picks the
// modulator harmonic (1..4), y sets the dry/ring mix.
type zingVoice struct {
	carrier   *osc
	modulator *osc
	gate      *transitiveValue
	mix       *transitiveValue
	ratio     *transitiveValue
	freq      float64
}

func newZingVoice() *zingVoice {
	return &zingVoice{
		carrier:   newOsc(waveSine, 0),
		modulator: newOsc(waveSine, 0),
		gate:      newTransitiveValue(0),
		mix:       newTransitiveValue(0.5),
		ratio:     newTransitiveValue(1),
	}
}

func (v *zingVoice) Start() {
	v.gate.linear(gateAttack, 1)
}

func (v *zingVoice) Stop() {
	v.gate.linear(gateRelease, 0)
}

func (v *zingVoice) SetFrequency(freq float64, glide float64) {
	v.freq = freq
	v.carrier.setFreq(freq, glide)
	v.modulator.setFreq(freq*v.ratio.value, glide)
}

func (v *zingVoice) SetVowel(pos VowelPos, glide float64) {
	ratio := 1 + 3*pos.X
	if glide <= 0 {
		v.ratio.init(ratio)
		v.mix.init(pos.Y)
	} else {
		v.ratio.linear(glide, ratio)
		v.mix.linear(glide, pos.Y)
	}
	v.modulator.setFreq(v.freq*ratio, glide)
}

func (v *zingVoice) SetParams(params map[string]float64) {
	if ratio, ok := params["ratio"]; ok && ratio > 0 {
		v.ratio.init(ratio)
		v.modulator.setFreq(v.freq*ratio, 0)
	}
	if mix, ok := params["mix"]; ok {
		v.mix.init(mix)
	}
}

func (v *zingVoice) Step() float64 {
	v.gate.step()
	v.mix.step()
	v.ratio.step()
	if v.gate.value == 0 {
		return 0
	}
	carrier := v.carrier.step()
	ring := carrier * v.modulator.step()
	mix := v.mix.value
	return (carrier*(1-mix) + ring*mix) * v.gate.value
}
