package audio

import (
	"testing"
)

func collect(events *[]StepEvent) func(StepEvent) {
	return func(e StepEvent) {
		*events = append(*events, e)
	}
}

func playCmd() Play {
	return Play{NotePatternLength: 4, PhonemePatternLength: 5, Bpm: 60, Subdivision: 1}
}

func TestClockEmitsFirstStepAtPlay(t *testing.T) {
	c := newStepClock()
	var events []StepEvent
	c.play(playCmd(), 10.0)
	c.advance(10.0, collect(&events))
	if len(events) != 3 {
		t.Fatalf("expected global+note+phoneme events at step 0, got %d", len(events))
	}
	if events[0].Kind != GlobalStepChange || events[0].GlobalStep != 0 {
		t.Errorf("unexpected first event %+v", events[0])
	}
}

func TestClockEdgeTriggered(t *testing.T) {
	c := newStepClock()
	var events []StepEvent
	c.play(playCmd(), 0)
	// Many quanta inside the same step: only one emission.
	c.advance(0, collect(&events))
	c.advance(0.3, collect(&events))
	c.advance(0.6, collect(&events))
	c.advance(0.99, collect(&events))
	if len(events) != 3 {
		t.Fatalf("expected a single step emission, got %d events", len(events))
	}
	events = events[:0]
	c.advance(1.0, collect(&events))
	if len(events) != 3 {
		t.Fatalf("expected emission at step 1, got %d events", len(events))
	}
	if events[0].GlobalStep != 1 || events[0].NoteStep != 1 {
		t.Errorf("unexpected step values %+v", events[0])
	}
}

func TestClockWrapsAfterFourSteps(t *testing.T) {
	// bpm=60, subdivision=1, notePatternLength=4: after exactly 4 step
	// durations the global step is 4 and the note step has wrapped to 0.
	c := newStepClock()
	var events []StepEvent
	c.play(playCmd(), 0)
	for _, now := range []float64{0, 1, 2, 3, 4} {
		c.advance(now, collect(&events))
	}
	last := events[len(events)-1]
	if last.GlobalStep != 4 {
		t.Errorf("global step %d, want 4", last.GlobalStep)
	}
	if last.NoteStep != 0 {
		t.Errorf("note step %d, want 0 (wrapped)", last.NoteStep)
	}
	if last.PhonemeStep != 4 {
		t.Errorf("phoneme step %d, want 4 (period 5)", last.PhonemeStep)
	}
}

func TestClockIndependentPeriods(t *testing.T) {
	c := newStepClock()
	c.play(Play{NotePatternLength: 2, PhonemePatternLength: 3, Bpm: 60, Subdivision: 1}, 0)
	var events []StepEvent
	// Step 5: global changes, note 5%2=1, phoneme 5%3=2.
	c.advance(0, collect(&events))
	events = events[:0]
	c.advance(5.0, collect(&events))
	var kinds []int
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events (all changed), got %d: %v", len(events), kinds)
	}
	events = events[:0]
	// Step 6: note 6%2=0 (changed), phoneme 6%3=0 (changed).
	c.advance(6.0, collect(&events))
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
}

func TestClockStopIdempotent(t *testing.T) {
	c := newStepClock()
	var events []StepEvent
	c.play(playCmd(), 0)
	c.advance(0, collect(&events))
	c.stop()
	c.stop()
	events = events[:0]
	c.advance(5, collect(&events))
	if len(events) != 0 {
		t.Errorf("stopped clock should not emit, got %d events", len(events))
	}
}

func TestClockTempoChangeKeepsPhase(t *testing.T) {
	c := newStepClock()
	var events []StepEvent
	c.play(playCmd(), 0)
	c.advance(2.0, collect(&events))
	if c.lastGlobal != 2 {
		t.Fatalf("global step %d, want 2", c.lastGlobal)
	}
	// Doubling the tempo with the start time unchanged re-derives the
	// step from the whole elapsed span: a one-time forward jump.
	c.setBpm(120)
	events = events[:0]
	c.advance(2.5, collect(&events))
	if c.lastGlobal != 5 {
		t.Errorf("global step %d after tempo change, want 5", c.lastGlobal)
	}
	if c.startTime != 0 {
		t.Errorf("tempo change must not reset the timing reference")
	}
}

func TestClockSetPatternsKeepsCounters(t *testing.T) {
	c := newStepClock()
	var events []StepEvent
	c.play(playCmd(), 0)
	c.advance(3.0, collect(&events))
	c.setPatterns(7, 0)
	if c.noteLength != 7 {
		t.Errorf("note length %d, want 7", c.noteLength)
	}
	if c.phonemeLength != 5 {
		t.Errorf("phoneme length should be kept when 0 passed, got %d", c.phonemeLength)
	}
	if c.lastGlobal != 3 {
		t.Errorf("pattern change must not reset step trackers")
	}
}

func TestClockInvalidParamsIgnored(t *testing.T) {
	c := newStepClock()
	c.play(playCmd(), 0)
	c.setBpm(0)
	c.setBpm(-10)
	c.setSubdivision(0)
	if c.bpm != 60 || c.subdivision != 1 {
		t.Errorf("invalid tempo values should be ignored, got bpm=%f subdivision=%d", c.bpm, c.subdivision)
	}
}
