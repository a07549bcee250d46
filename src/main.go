package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/capogreco/euclidean-seq/src/audio"
	"github.com/capogreco/euclidean-seq/src/config"
	"github.com/capogreco/euclidean-seq/src/seq"
	"github.com/capogreco/euclidean-seq/src/tui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

func main() {
	headless := flag.Bool("headless", false, "run without the terminal UI")
	autoplay := flag.Bool("play", false, "start playing immediately")
	preset := flag.String("preset", "", "preset to load at startup")
	flag.Parse()
	log.SetFlags(log.Lshortfile)
	log.Printf("NumCPU: %v\n", runtime.NumCPU())

	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}

	engine, err := audio.NewAudio()
	if err != nil {
		log.Fatalf("error: %v\n", err)
	}
	defer engine.Close()

	store := seq.NewStore()
	coord := seq.NewCoordinator(store, engine)
	store.Set(seq.ParamVoice, cfg.Voice)
	store.Set(seq.ParamBpm, cfg.UI.LastTempo)
	presets := seq.NewPresetManager(cfg.PresetDir)
	if *preset != "" {
		if err := presets.Load(*preset, store); err != nil {
			log.Printf("failed to load preset %q: %v\n", *preset, err)
		}
	}

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalCh)
		cancel()
	}()
	go func() {
		sig := <-signalCh
		log.Printf("Caught signal %s: shutting down...\n", sig)
		cancel()
	}()

	// Wired before any goroutine starts so the event consumer never races
	// the assignment.
	updates := make(chan struct{}, 1)
	coord.OnStep = func(audio.StepEvent) {
		select {
		case updates <- struct{}{}:
		default:
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Start(ctx)
	})
	g.Go(func() error {
		return coord.Run(ctx)
	})
	if cfg.MidiIn {
		g.Go(func() error {
			return retuneFromMidi(ctx, coord)
		})
	}
	if *autoplay || *headless {
		coord.Play()
	}
	if *headless {
		g.Go(func() error {
			<-ctx.Done()
			return nil
		})
	} else {
		g.Go(func() error {
			return runUI(ctx, cancel, coord, presets, updates)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("error: %v\n", err)
	}

	cfg.UI.LastTempo = store.Float(seq.ParamBpm)
	if err := cfg.Save(); err != nil {
		log.Printf("failed to save config: %v\n", err)
	}
	log.Println("main() ended.")
}

// retuneFromMidi retunes the root frequency to the last note-on. A retune is
// a structural change, so the whole pipeline follows the played note.
func retuneFromMidi(ctx context.Context, coord *seq.Coordinator) error {
	notes := audio.ListenToMidiIn(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Println("retuneFromMidi() ended.")
			return nil
		case event, ok := <-notes:
			if !ok {
				<-ctx.Done()
				return nil
			}
			if event.On {
				coord.Store().Set(seq.ParamRootFreq, audio.NoteToFreq(event.Note))
			}
		}
	}
}

func runUI(ctx context.Context, cancel context.CancelFunc, coord *seq.Coordinator, presets *seq.PresetManager, updates <-chan struct{}) error {
	p := tea.NewProgram(tui.NewModel(coord, presets, updates))
	go func() {
		<-ctx.Done()
		// Give the final frame a moment, then force the UI down.
		time.Sleep(50 * time.Millisecond)
		p.Quit()
	}()
	_, err := p.Run()
	cancel()
	log.Println("runUI() ended.")
	return err
}
