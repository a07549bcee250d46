package audio

import (
	"log"
	"math"
)

// ----- Commands ----- //

// Commands are posted to Audio.CommandCh by the coordination layer and
// applied inside the render context. Scheduler commands never reset the
// timing reference: a tempo change applies prospectively to the unchanged
// start time, so it can cause a one-time jump in the global step counter.
// That is accepted behavior.

type Play struct {
	NotePatternLength    int
	PhonemePatternLength int
	Bpm                  float64
	Subdivision          int
}

type Stop struct{}

type SetBpm struct {
	Bpm float64
}

type SetSubdivision struct {
	Subdivision int
}

type SetPatterns struct {
	NotePatternLength    int // 0 = keep
	PhonemePatternLength int // 0 = keep
}

// ----- Step Events ----- //

const (
	GlobalStepChange = iota
	NoteStepChange
	PhonemeStepChange
)

// StepEvent is emitted exactly once per distinct step index, edge-triggered
// on change. The scheduler never touches frequencies; the coordination layer
// maps indices to pattern values.
type StepEvent struct {
	Kind        int
	GlobalStep  int64
	NoteStep    int
	PhonemeStep int
	Elapsed     float64
}

// ----- Step Clock ----- //

// stepClock is the playback state machine (Stopped/Playing). It lives
// exclusively inside the render context; the coordination layer's copies of
// tempo and pattern lengths are pushed in via commands and are eventually
// consistent, never authoritative here.
//
// Correctness precondition: a render quantum must not be longer than one
// step duration, or intermediate steps are skipped. With the fixed quantum
// this means bpm*subdivision must stay below 60/quantumSec; violations are
// logged once, not repaired.
type stepClock struct {
	playing       bool
	startTime     float64
	bpm           float64
	subdivision   int
	noteLength    int
	phonemeLength int
	lastGlobal    int64
	lastNote      int64
	lastPhoneme   int64
	warnedShort   bool
}

func newStepClock() *stepClock {
	return &stepClock{
		bpm:           120,
		subdivision:   2,
		noteLength:    1,
		phonemeLength: 1,
		lastGlobal:    -1,
		lastNote:      -1,
		lastPhoneme:   -1,
	}
}

func (c *stepClock) play(cmd Play, now float64) {
	c.playing = true
	c.startTime = now
	c.lastGlobal = -1
	c.lastNote = -1
	c.lastPhoneme = -1
	c.warnedShort = false
	c.setBpm(cmd.Bpm)
	c.setSubdivision(cmd.Subdivision)
	c.setPatterns(cmd.NotePatternLength, cmd.PhonemePatternLength)
}

// stop is idempotent; the timing reference is irrelevant once stopped and
// is left alone.
func (c *stepClock) stop() {
	c.playing = false
}

func (c *stepClock) setBpm(bpm float64) {
	if bpm > 0 {
		c.bpm = bpm
	}
}

func (c *stepClock) setSubdivision(subdivision int) {
	if subdivision > 0 {
		c.subdivision = subdivision
	}
}

func (c *stepClock) setPatterns(noteLength int, phonemeLength int) {
	if noteLength > 0 {
		c.noteLength = noteLength
	}
	if phonemeLength > 0 {
		c.phonemeLength = phonemeLength
	}
}

func (c *stepClock) stepDuration() float64 {
	return 60.0 / (c.bpm * float64(c.subdivision))
}

// advance derives the current step indices from elapsed audio-clock time
// and emits one event per changed index. Called once per render quantum.
func (c *stepClock) advance(now float64, emit func(StepEvent)) {
	if !c.playing {
		return
	}
	elapsed := now - c.startTime
	if elapsed < 0 {
		elapsed = 0
	}
	stepDuration := c.stepDuration()
	global := int64(math.Floor(elapsed / stepDuration))
	if global == c.lastGlobal {
		return
	}
	if c.lastGlobal >= 0 && global > c.lastGlobal+1 && !c.warnedShort {
		log.Printf("step duration %.4fs shorter than render quantum %.4fs, steps are being skipped\n",
			stepDuration, quantumSec)
		c.warnedShort = true
	}
	note := global % int64(c.noteLength)
	phoneme := global % int64(c.phonemeLength)
	emit(StepEvent{
		Kind:        GlobalStepChange,
		GlobalStep:  global,
		NoteStep:    int(note),
		PhonemeStep: int(phoneme),
		Elapsed:     elapsed,
	})
	if note != c.lastNote {
		emit(StepEvent{
			Kind:        NoteStepChange,
			GlobalStep:  global,
			NoteStep:    int(note),
			PhonemeStep: int(phoneme),
			Elapsed:     elapsed,
		})
	}
	if phoneme != c.lastPhoneme {
		emit(StepEvent{
			Kind:        PhonemeStepChange,
			GlobalStep:  global,
			NoteStep:    int(note),
			PhonemeStep: int(phoneme),
			Elapsed:     elapsed,
		})
	}
	c.lastGlobal = global
	c.lastNote = note
	c.lastPhoneme = phoneme
}
