package audio

import (
	"context"
	"log"

	"gitlab.com/gomidi/rtmididrv"
)

// ----- MIDI In ----- //

// NoteEvent is a parsed note-on/off from the first available MIDI input.
type NoteEvent struct {
	Note     int
	Velocity int
	On       bool
}

// ListenToMidiIn opens the first MIDI input and streams parsed note events
// until ctx is done. A missing driver or port is logged and leaves the
// channel silent; MIDI is optional.
func ListenToMidiIn(ctx context.Context) <-chan NoteEvent {
	ch := make(chan NoteEvent, 256)
	go func() {
		drv, err := rtmididrv.New()
		if err != nil {
			log.Printf("failed to initialize MIDI driver: %v\n", err)
			return
		}
		defer func() {
			if err := drv.Close(); err != nil {
				log.Printf("failed to close MIDI driver: %v\n", err)
			}
		}()
		ins, err := drv.Ins()
		if err != nil {
			log.Printf("failed to get MIDI IN: %v\n", err)
			return
		}
		if len(ins) == 0 {
			log.Println("no MIDI IN found")
			return
		}
		in := ins[0]
		if err := in.Open(); err != nil {
			log.Printf("failed to open MIDI IN: %v\n", err)
			return
		}
		log.Println("listening on " + in.String())
		if err := in.SetListener(func(data []byte, deltaMicroseconds int64) {
			if event, ok := parseNoteEvent(data); ok {
				select {
				case ch <- event:
				default:
				}
			}
		}); err != nil {
			log.Println("failed to set MIDI listener: " + err.Error())
		}
		defer func() {
			if err := in.StopListening(); err != nil {
				log.Printf("failed to stop listening: %v\n", err)
			}
			if err := in.Close(); err != nil {
				log.Printf("failed to close MIDI IN: %v\n", err)
			}
		}()
		defer close(ch)
		<-ctx.Done()
	}()
	return ch
}

// Note-on with velocity 0 counts as note-off.
func parseNoteEvent(data []byte) (NoteEvent, bool) {
	if len(data) < 3 {
		return NoteEvent{}, false
	}
	status := data[0] >> 4
	switch {
	case status == 9 && data[2] > 0:
		return NoteEvent{Note: int(data[1]), Velocity: int(data[2]), On: true}, true
	case status == 8 || (status == 9 && data[2] == 0):
		return NoteEvent{Note: int(data[1]), On: false}, true
	}
	return NoteEvent{}, false
}
