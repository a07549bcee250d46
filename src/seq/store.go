package seq

import (
	"log"
	"sort"
	"sync"
)

// ----- Parameter Names ----- //

const (
	ParamEdo                = "edo"
	ParamRootFreq           = "rootFreq"
	ParamScaleNotes         = "scaleNotes"
	ParamScaleRotation      = "scaleRotation"
	ParamChordNotes         = "chordNotes"
	ParamChordRotation      = "chordRotation"
	ParamSeqNotes           = "seqNotes"
	ParamSeqMethod          = "seqMethod"
	ParamSeqBase            = "seqBase"
	ParamSeqOctaves         = "seqOctaves"
	ParamSeqRotation        = "seqRotation"
	ParamRandomSeed         = "randomSeed"
	ParamNotePerStep        = "notePerStep"
	ParamPatternSteps       = "patternSteps"
	ParamRhythmPulses       = "rhythmPulses"
	ParamRhythmRotation     = "rhythmRotation"
	ParamOrder              = "order"
	ParamPhonemeSteps       = "phonemeSteps"
	ParamPhonemeSeed        = "phonemeSeed"
	ParamPortamentoSteps    = "portamentoSteps"
	ParamPortamentoRotation = "portamentoRotation"
	ParamPortamentoTime     = "portamentoTime"
	ParamVowelGlide         = "vowelGlide"
	ParamBpm                = "bpm"
	ParamSubdivision        = "subdivision"
	ParamVoice              = "voice"
	ParamGain               = "gain"
)

// ----- Change Classification ----- //

// A parameter change falls in exactly one class, which decides how much work
// the coordinator does in response. Getting this table wrong is a
// correctness bug, not a performance bug: regenerating on a tempo change
// would reshuffle seeded orderings and reset portamento-relative note
// identity.
const (
	ClassStructural = iota // full pipeline + pattern regeneration
	ClassTempo             // scheduler message only
	ClassPortamento        // in-place portamento mutation, notes untouched
	ClassPassThrough       // forwarded to the voice/engine, no recompute
)

// The table is explicit, never inferred from parameter names.
var paramClass = map[string]int{
	ParamEdo:                ClassStructural,
	ParamRootFreq:           ClassStructural,
	ParamScaleNotes:         ClassStructural,
	ParamScaleRotation:      ClassStructural,
	ParamChordNotes:         ClassStructural,
	ParamChordRotation:      ClassStructural,
	ParamSeqNotes:           ClassStructural,
	ParamSeqMethod:          ClassStructural,
	ParamSeqBase:            ClassStructural,
	ParamSeqOctaves:         ClassStructural,
	ParamSeqRotation:        ClassStructural,
	ParamRandomSeed:         ClassStructural,
	ParamNotePerStep:        ClassStructural,
	ParamPatternSteps:       ClassStructural,
	ParamRhythmPulses:       ClassStructural,
	ParamRhythmRotation:     ClassStructural,
	ParamOrder:              ClassStructural,
	ParamPhonemeSteps:       ClassStructural,
	ParamPhonemeSeed:        ClassStructural,
	ParamPortamentoSteps:    ClassPortamento,
	ParamPortamentoRotation: ClassPortamento,
	ParamPortamentoTime:     ClassPassThrough,
	ParamVowelGlide:         ClassPassThrough,
	ParamBpm:                ClassTempo,
	ParamSubdivision:        ClassTempo,
	ParamVoice:              ClassPassThrough,
	ParamGain:               ClassPassThrough,
}

// Classify returns the change class for a parameter name.
func Classify(name string) int {
	class, ok := paramClass[name]
	if !ok {
		return ClassPassThrough
	}
	return class
}

// ----- Parameter Specs ----- //

// ParamSpec describes one numeric parameter for editing surfaces.
type ParamSpec struct {
	Name    string
	Default float64
	Min     float64
	Max     float64
	Step    float64
}

// NumericSpecs lists every numeric parameter in display order.
var NumericSpecs = []ParamSpec{
	{ParamEdo, 12, 1, 96, 1},
	{ParamRootFreq, 220, 20, 2000, 1},
	{ParamScaleNotes, 7, 0, 96, 1},
	{ParamScaleRotation, 0, -96, 96, 1},
	{ParamChordNotes, 4, 0, 96, 1},
	{ParamChordRotation, 0, -96, 96, 1},
	{ParamSeqNotes, 8, 0, 64, 1},
	{ParamSeqBase, -1, -4, 4, 1},
	{ParamSeqOctaves, 2, 1, 8, 1},
	{ParamSeqRotation, 0, -64, 64, 1},
	{ParamRandomSeed, 1, 0, 1 << 30, 1},
	{ParamNotePerStep, 1, 0, 1, 1},
	{ParamPatternSteps, 16, 0, 64, 1},
	{ParamRhythmPulses, 9, 0, 64, 1},
	{ParamRhythmRotation, 0, -64, 64, 1},
	{ParamPhonemeSteps, 5, 0, 64, 1},
	{ParamPhonemeSeed, 1, 0, 1 << 30, 1},
	{ParamPortamentoSteps, 0, 0, 64, 1},
	{ParamPortamentoRotation, 0, -64, 64, 1},
	{ParamPortamentoTime, 50, 0, 100, 5},
	{ParamVowelGlide, 30, 0, 100, 5},
	{ParamBpm, 120, 20, 300, 1},
	{ParamSubdivision, 2, 1, 8, 1},
	{ParamGain, 1, 0, 1, 0.05},
}

// StringSpec describes one enumerated string parameter.
type StringSpec struct {
	Name    string
	Default string
	Choices []string
}

// StringSpecs lists every string parameter in display order.
var StringSpecs = []StringSpec{
	{ParamSeqMethod, "euclidean", []string{"euclidean", "random"}},
	{ParamOrder, "forward", []string{"forward", "reverse", "shuffle", "random"}},
	{ParamVoice, "formant", []string{"formant", "zing", "sine"}},
}

// ----- Store ----- //

// Listener is called synchronously on the setter's goroutine after a value
// actually changed. The store's lock is not held during the call, so
// listeners may read the store freely.
type Listener func(name string, value interface{})

// Store is the single mutable parameter store. Sets arrive from the UI and
// MIDI goroutines while the coordinator reads on step events, so the value
// map is guarded.
type Store struct {
	mu        sync.RWMutex
	values    map[string]interface{}
	listeners []Listener
}

// NewStore builds a store holding every known parameter at its default.
func NewStore() *Store {
	s := &Store{values: make(map[string]interface{}, len(NumericSpecs)+len(StringSpecs))}
	for _, spec := range NumericSpecs {
		s.values[spec.Name] = spec.Default
	}
	for _, spec := range StringSpecs {
		s.values[spec.Name] = spec.Default
	}
	return s
}

// Subscribe registers a change listener.
func (s *Store) Subscribe(listener Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, listener)
	s.mu.Unlock()
}

// Set updates one parameter. Setting the current value is a no-op and fires
// nothing. Unknown names are logged and ignored.
func (s *Store) Set(name string, value interface{}) {
	s.mu.Lock()
	current, ok := s.values[name]
	if !ok {
		s.mu.Unlock()
		log.Printf("ignoring unknown parameter %q\n", name)
		return
	}
	if current == value {
		s.mu.Unlock()
		return
	}
	s.values[name] = value
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, listener := range listeners {
		listener(name, value)
	}
}

// Float returns a numeric parameter, 0 for unknown names.
func (s *Store) Float(name string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[name].(float64); ok {
		return v
	}
	return 0
}

// Int returns a numeric parameter truncated to int.
func (s *Store) Int(name string) int {
	return int(s.Float(name))
}

// Bool reads a 0/1 numeric parameter.
func (s *Store) Bool(name string) bool {
	return s.Float(name) != 0
}

// String returns a string parameter, "" for unknown names.
func (s *Store) String(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[name].(string); ok {
		return v
	}
	return ""
}

// Snapshot returns a copy of all values, for persistence.
func (s *Store) Snapshot() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]interface{}, len(s.values))
	for name, value := range s.values {
		out[name] = value
	}
	return out
}

// Names returns all parameter names sorted, for persistence and diagnostics.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
