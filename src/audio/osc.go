package audio

import (
	"math"
)

// ----- Wave Kind ----- //

const (
	waveSine = iota
	waveTriangle
	waveSquare
	waveSaw
)

// ----- OSC ----- //

// osc is a phase-accumulating oscillator whose frequency is a transitive
// value, so a glide is just a ramp on freq.
type osc struct {
	kind  int
	freq  *transitiveValue
	phase float64
}

func newOsc(kind int, freq float64) *osc {
	return &osc{
		kind: kind,
		freq: newTransitiveValue(freq),
	}
}

// setFreq jumps to target when glide <= 0, otherwise ramps over glide
// seconds.
func (o *osc) setFreq(target float64, glide float64) {
	if glide <= 0 {
		o.freq.init(target)
		return
	}
	o.freq.linear(glide, target)
}

func (o *osc) step() float64 {
	o.freq.step()
	p := positiveMod(o.phase/(2.0*math.Pi), 1)
	value := 0.0
	switch o.kind {
	case waveSine:
		value = math.Sin(o.phase)
	case waveTriangle:
		if p < 0.5 {
			value = p*4 - 1
		} else {
			value = p*(-4) + 3
		}
	case waveSquare:
		if p < 0.5 {
			value = 1
		} else {
			value = -1
		}
	case waveSaw:
		value = p*2 - 1
	}
	o.phase += 2.0 * math.Pi * o.freq.value * secPerSample
	if o.phase > 2.0*math.Pi {
		o.phase -= 2.0 * math.Pi * math.Floor(o.phase/(2.0*math.Pi))
	}
	return value
}
