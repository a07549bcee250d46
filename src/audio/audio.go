package audio

import (
	"context"
	"io"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/oto"
)

const (
	sampleRate      = 48000
	channelNum      = 2
	bitDepthInBytes = 2
	samplesPerCycle = 1024
)
const bytesPerSample = bitDepthInBytes * channelNum
const bufferSizeInBytes = samplesPerCycle * bytesPerSample // should be >= 4096
const secPerSample = 1.0 / sampleRate
const quantumSec = secPerSample * samplesPerCycle
const masterGain = 0.3

// QuantumSeconds is the render quantum length. Glides scheduled from outside
// must stay at least this far below one step duration so they never bleed
// into the following step.
const QuantumSeconds = quantumSec

// ----- Utility ----- //

func positiveMod(a float64, b float64) float64 {
	if b < 0 {
		panic("b should not be negative")
	}
	for a < 0 {
		a += b
	}
	return math.Mod(a, b)
}

// NoteToFreq converts a MIDI note number to Hz (A4 = 440).
func NoteToFreq(note int) float64 {
	return 440.0 * math.Pow(2, float64(note-69)/12)
}

// ----- Voice Commands ----- //

// NoteChange drives the voice at a note step. Freq 0 is a rest and gates
// the voice off. Glide is in seconds; 0 jumps.
type NoteChange struct {
	Freq  float64
	Glide float64
}

// VowelChange moves the voice on the vowel plane.
type VowelChange struct {
	Pos   VowelPos
	Glide float64
}

// SetVoice swaps the synthesis variant.
type SetVoice struct {
	Kind string
}

// SetGain scales the master output, 0..1.
type SetGain struct {
	Gain float64
}

// ----- State ----- //

// state is owned exclusively by the render context. No lock: commands come
// in over CommandCh and are drained at the top of each quantum.
type state struct {
	clock   *stepClock
	voice   Voice
	gain    float64
	pos     int64 // frames rendered since start
	playing bool
}

func newState() *state {
	return &state{
		clock: newStepClock(),
		voice: NewVoice(VoiceFormant),
		gain:  1.0,
	}
}

// ----- Audio ----- //

// Audio is the real-time engine. The render context pulls samples through
// Read (driven by the oto player), drains CommandCh, advances the step
// clock, and pushes StepEvents out on EventCh. When no audio device is
// available it degrades to a wall-clock ticker with the same step semantics
// but OS-timer jitter.
type Audio struct {
	ctx        context.Context
	otoContext *oto.Context
	CommandCh  chan interface{}
	EventCh    chan StepEvent
	state      *state
	dropped    int64
}

var _ io.Reader = (*Audio)(nil)

// NewAudio opens the audio device. Device failure is not fatal: it is
// logged once and the engine falls back to wall-clock timing, with reduced
// precision.
func NewAudio() (*Audio, error) {
	a := &Audio{
		ctx:       context.Background(),
		CommandCh: make(chan interface{}, 256),
		EventCh:   make(chan StepEvent, 256),
		state:     newState(),
	}
	otoContext, err := oto.NewContext(sampleRate, channelNum, bitDepthInBytes, bufferSizeInBytes)
	if err != nil {
		log.Printf("audio device unavailable, falling back to wall-clock timing: %v\n", err)
		return a, nil
	}
	a.otoContext = otoContext
	return a, nil
}

// Realtime reports whether the audio-clock render path is active.
func (a *Audio) Realtime() bool {
	return a.otoContext != nil
}

// Close ...
func (a *Audio) Close() error {
	log.Println("Closing Audio...")
	if a.otoContext != nil {
		return a.otoContext.Close()
	}
	return nil
}

// Start blocks until ctx is cancelled.
func (a *Audio) Start(ctx context.Context) error {
	a.ctx = ctx
	if a.otoContext == nil {
		return a.fallbackLoop(ctx)
	}
	p := a.otoContext.NewPlayer()
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("error: %v", err)
		}
	}()

	// block until cancel() called
	if _, err := io.CopyBuffer(p, a, make([]byte, bufferSizeInBytes)); err != nil {
		return err
	}
	log.Println("Start() ended.")
	return nil
}

// fallbackLoop keeps the scheduler alive without a device: one tick per
// quantum on an OS timer, no rendering.
func (a *Audio) fallbackLoop(ctx context.Context) error {
	t := time.NewTicker(time.Duration(float64(time.Second) * quantumSec))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("fallbackLoop() interrupted")
			return nil
		case <-t.C:
			a.drainCommands()
			a.state.clock.advance(a.now(), a.emit)
			a.state.pos += samplesPerCycle
		}
	}
}

// now is the audio-clock time in seconds: frames rendered, not wall clock.
func (a *Audio) now() float64 {
	return float64(a.state.pos) * secPerSample
}

func (a *Audio) Read(buf []byte) (int, error) {
	select {
	case <-a.ctx.Done():
		log.Println("Read() interrupted.")
		return 0, io.EOF
	default:
		a.drainCommands()
		a.state.clock.advance(a.now(), a.emit)
		frames := len(buf) / bytesPerSample
		for i := 0; i < frames; i++ {
			value := a.state.voice.Step() * masterGain * a.state.gain
			writeSample(buf, i, value)
		}
		a.state.pos += int64(frames)
		return len(buf), nil
	}
}

func writeSample(buf []byte, i int, value float64) {
	const max = 32767
	b := int16(value * max)
	for ch := 0; ch < channelNum; ch++ {
		buf[bytesPerSample*i+2*ch] = byte(b)
		buf[bytesPerSample*i+2*ch+1] = byte(b >> 8)
	}
}

// drainCommands applies everything queued without blocking the render path.
func (a *Audio) drainCommands() {
	for {
		select {
		case command := <-a.CommandCh:
			a.apply(command)
		default:
			return
		}
	}
}

func (a *Audio) apply(command interface{}) {
	s := a.state
	switch cmd := command.(type) {
	case Play:
		s.clock.play(cmd, a.now())
		s.playing = true
	case Stop:
		s.clock.stop()
		s.voice.Stop()
		s.playing = false
	case SetBpm:
		s.clock.setBpm(cmd.Bpm)
	case SetSubdivision:
		s.clock.setSubdivision(cmd.Subdivision)
	case SetPatterns:
		s.clock.setPatterns(cmd.NotePatternLength, cmd.PhonemePatternLength)
	case NoteChange:
		if cmd.Freq == 0 {
			s.voice.Stop()
			return
		}
		s.voice.SetFrequency(cmd.Freq, cmd.Glide)
		if s.playing {
			s.voice.Start()
		}
	case VowelChange:
		s.voice.SetVowel(cmd.Pos, cmd.Glide)
	case SetVoice:
		s.voice = NewVoice(cmd.Kind)
	case SetGain:
		if cmd.Gain >= 0 && cmd.Gain <= 1 {
			s.gain = cmd.Gain
		}
	default:
		log.Printf("ignoring unknown command %T\n", command)
	}
}

// emit never blocks: if the consumer is behind, events are dropped and
// counted.
func (a *Audio) emit(event StepEvent) {
	select {
	case a.EventCh <- event:
	default:
		a.dropped++
		if a.dropped%100 == 1 {
			log.Printf("event channel full, dropped %d events\n", a.dropped)
		}
	}
}
