package seq

import (
	"context"
	"log"
	"sync"

	"github.com/capogreco/euclidean-seq/src/audio"
	"github.com/capogreco/euclidean-seq/src/pattern"
	"github.com/capogreco/euclidean-seq/src/tones"
)

// Salts keep the mono and poly shuffles distinct while sharing the global
// seed.
const (
	saltNotePerStep = 1
	saltRests       = 2
)

// ----- Coordinator ----- //

// Coordinator owns the derived pattern state and mediates between the
// parameter store and the engine. Parameter changes come in synchronously on
// the control goroutine; step events come back asynchronously from the
// render context. Only the minimum data crosses over (commands out, step
// indices in), and the engine's copies of tempo and lengths are eventually
// consistent.
type Coordinator struct {
	store  *Store
	engine *audio.Audio

	mu      sync.Mutex
	seq     *pattern.Sequence
	phoneme *pattern.Phoneme
	playing bool

	// OnStep, when set, is called for every consumed step event after the
	// current-step trackers have been updated. Used for display refresh.
	OnStep func(audio.StepEvent)
}

// NewCoordinator wires the store to the engine and computes the initial
// pipeline.
func NewCoordinator(store *Store, engine *audio.Audio) *Coordinator {
	c := &Coordinator{store: store, engine: engine}
	c.rebuild()
	store.Subscribe(c.onChange)
	return c
}

// Store returns the parameter store the coordinator listens to.
func (c *Coordinator) Store() *Store {
	return c.store
}

// ----- Change Routing ----- //

func (c *Coordinator) onChange(name string, value interface{}) {
	switch Classify(name) {
	case ClassStructural:
		c.rebuild()
		c.mu.Lock()
		noteLength := c.seq.Len()
		phonemeLength := c.phoneme.Len()
		c.mu.Unlock()
		c.post(audio.SetPatterns{
			NotePatternLength:    noteLength,
			PhonemePatternLength: phonemeLength,
		})
	case ClassTempo:
		switch name {
		case ParamBpm:
			c.post(audio.SetBpm{Bpm: c.store.Float(ParamBpm)})
		case ParamSubdivision:
			c.post(audio.SetSubdivision{Subdivision: c.store.Int(ParamSubdivision)})
		}
	case ClassPortamento:
		c.mu.Lock()
		c.seq.UpdatePortamento(c.store.Int(ParamPortamentoSteps), c.store.Int(ParamPortamentoRotation))
		c.mu.Unlock()
	case ClassPassThrough:
		switch name {
		case ParamVoice:
			c.post(audio.SetVoice{Kind: c.store.String(ParamVoice)})
		case ParamGain:
			c.post(audio.SetGain{Gain: c.store.Float(ParamGain)})
		}
		// portamentoTime and vowelGlide are read at event time.
	}
}

// rebuild runs the full tone pipeline and regenerates both lanes. This is
// the expensive path; the classification table makes sure only structural
// changes reach it.
func (c *Coordinator) rebuild() {
	s := c.store
	base := tones.BaseTones(s.Int(ParamEdo), s.Float(ParamRootFreq))
	scale := tones.NewScale(base, s.Int(ParamScaleNotes), s.Int(ParamScaleRotation))
	chord := tones.NewChord(base, scale, s.Int(ParamChordNotes), s.Int(ParamChordRotation))
	pool := tones.NewPool(chord,
		s.Int(ParamSeqNotes),
		s.String(ParamSeqMethod),
		s.Int(ParamSeqBase),
		s.Int(ParamSeqOctaves),
		s.Int(ParamSeqRotation),
		int64(s.Int(ParamRandomSeed)))
	notePerStep := s.Bool(ParamNotePerStep)
	salt := int64(saltRests)
	if notePerStep {
		salt = saltNotePerStep
	}
	seq := pattern.Generate(pool, pattern.Config{
		NotePerStep:        notePerStep,
		Steps:              s.Int(ParamPatternSteps),
		RhythmPulses:       s.Int(ParamRhythmPulses),
		RhythmRotation:     s.Int(ParamRhythmRotation),
		PortamentoSteps:    s.Int(ParamPortamentoSteps),
		PortamentoRotation: s.Int(ParamPortamentoRotation),
		Order:              s.String(ParamOrder),
		Seed:               int64(s.Int(ParamRandomSeed)),
		Salt:               salt,
	})
	phoneme := pattern.GeneratePhonemes(s.Int(ParamPhonemeSteps), uint32(s.Int(ParamPhonemeSeed)))
	c.mu.Lock()
	c.seq = seq
	c.phoneme = phoneme
	c.mu.Unlock()
}

// ----- Transport ----- //

// Play starts playback from step 0 with the current patterns and tempo.
func (c *Coordinator) Play() {
	c.mu.Lock()
	c.playing = true
	noteLength := c.seq.Len()
	phonemeLength := c.phoneme.Len()
	c.mu.Unlock()
	c.post(audio.Play{
		NotePatternLength:    noteLength,
		PhonemePatternLength: phonemeLength,
		Bpm:                  c.store.Float(ParamBpm),
		Subdivision:          c.store.Int(ParamSubdivision),
	})
}

// Stop halts playback. Idempotent; step events already in flight are
// discarded by the playing check in Run.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	c.playing = false
	c.mu.Unlock()
	c.post(audio.Stop{})
}

// Playing reports the transport state.
func (c *Coordinator) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// post never blocks the control goroutine; a full command channel means the
// engine is gone or wedged, and dropped commands are safe to drop.
func (c *Coordinator) post(command interface{}) {
	select {
	case c.engine.CommandCh <- command:
	default:
		log.Printf("command channel full, dropping %T\n", command)
	}
}

// ----- Step Event Consumption ----- //

// Run consumes step events until ctx is done. Events arriving after a stop
// are tolerated and discarded.
func (c *Coordinator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-c.engine.EventCh:
			c.handle(event)
		}
	}
}

func (c *Coordinator) handle(event audio.StepEvent) {
	c.mu.Lock()
	if !c.playing {
		c.mu.Unlock()
		return
	}
	switch event.Kind {
	case audio.NoteStepChange:
		if c.seq.Len() > 0 {
			step := event.NoteStep % c.seq.Len()
			c.seq.CurrentStep = step
			freq := c.seq.Steps[step]
			glide := 0.0
			if freq != pattern.Rest && c.seq.Portamento[step] {
				glide = c.glide(c.store.Float(ParamPortamentoTime))
			}
			c.mu.Unlock()
			c.post(audio.NoteChange{Freq: freq, Glide: glide})
			c.notify(event)
			return
		}
	case audio.PhonemeStepChange:
		if c.phoneme.Len() > 0 {
			step := event.PhonemeStep % c.phoneme.Len()
			c.phoneme.CurrentStep = step
			pos := c.phoneme.Positions[step]
			glide := c.glide(c.store.Float(ParamVowelGlide))
			c.mu.Unlock()
			c.post(audio.VowelChange{Pos: audio.VowelPos{X: pos.X, Y: pos.Y}, Glide: glide})
			c.notify(event)
			return
		}
	}
	c.mu.Unlock()
	c.notify(event)
}

// glide converts a percent-of-step duration to seconds, clamped below one
// step duration by a quantum so a glide never bleeds into the next step.
func (c *Coordinator) glide(percent float64) float64 {
	stepDuration := 60.0 / (c.store.Float(ParamBpm) * float64(c.store.Int(ParamSubdivision)))
	glide := stepDuration * percent / 100
	limit := stepDuration - audio.QuantumSeconds
	if limit < 0 {
		limit = 0
	}
	if glide > limit {
		glide = limit
	}
	return glide
}

func (c *Coordinator) notify(event audio.StepEvent) {
	if c.OnStep != nil {
		c.OnStep(event)
	}
}

// ----- Display Snapshot ----- //

// View is a copy of the derived pattern state for display surfaces.
type View struct {
	Steps       []float64
	Rhythm      []bool
	Portamento  []bool
	NoteStep    int
	Vowels      []byte
	PhonemeStep int
	Playing     bool
}

// Snapshot copies the current pattern state.
func (c *Coordinator) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := View{
		Steps:       append([]float64(nil), c.seq.Steps...),
		Rhythm:      append([]bool(nil), c.seq.Rhythm...),
		Portamento:  append([]bool(nil), c.seq.Portamento...),
		NoteStep:    c.seq.CurrentStep,
		Vowels:      append([]byte(nil), c.phoneme.Vowels...),
		PhonemeStep: c.phoneme.CurrentStep,
		Playing:     c.playing,
	}
	return view
}
