package main

import (
	"flag"
	"io/fs"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/horde/internal/application/game"
	"github.com/younwookim/horde/internal/application/replay"
	"github.com/younwookim/horde/internal/application/scene/playing"
	"github.com/younwookim/horde/internal/application/session"
	"github.com/younwookim/horde/internal/application/system"
	"github.com/younwookim/horde/internal/infrastructure/config"
)

func main() {
	// Parse command line flags
	seedFlag := flag.Int64("seed", 0, "RNG seed (0 = current time)")
	stageFlag := flag.String("stage", "arena", "Stage to load from configs/stages")
	configFlag := flag.String("config", "", "Load configs from this directory instead of the embedded ones")
	debugFlag := flag.Bool("debug", false, "Start with the diagnostics overlay and spawn tracing on")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	headlessFlag := flag.Int("headless", 0, "Simulate this many frames without a window and exit")
	runsFlag := flag.Int("runs", 1, "Headless only: number of consecutive seeds to simulate in parallel")
	snapshotFlag := flag.String("snapshot", "", "Headless only: write a PNG of the final frame")
	flag.Parse()

	loader, err := newLoader(*configFlag)
	if err != nil {
		log.Fatalf("Failed to open configs: %v", err)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var rep *replay.ReplayData
	if *replayFlag != "" {
		if rep, err = replay.LoadReplay(*replayFlag); err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
	}

	stageName := *stageFlag
	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if rep != nil {
		seed = rep.Seed
		if rep.Stage != "" {
			stageName = rep.Stage
		}
	}

	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	if *headlessFlag > 0 || (rep != nil && *snapshotFlag != "") {
		opts := HeadlessOptions{
			Frames:       *headlessFlag,
			Runs:         *runsFlag,
			Seed:         seed,
			Debug:        *debugFlag,
			Replay:       rep,
			SnapshotPath: *snapshotFlag,
		}
		if _, err := RunHeadless(cfg.Sim, stageCfg, opts, log.Default()); err != nil {
			log.Fatalf("Headless run failed: %v", err)
		}
		return
	}

	sess, err := session.New(cfg.Sim, system.LoadStage(stageCfg), seed)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	opts := playing.Options{
		Debug:      *debugFlag,
		RecordPath: *recordFlag,
		StageName:  stageName,
	}
	if rep != nil {
		opts.Replay = replay.NewReplayer(*rep)
	}
	play := playing.New(sess, opts)

	display := cfg.Sim.Display
	// One second of panicking frames in a row ends the run
	g := game.New(play, game.Config{
		ScreenW:             display.ScreenWidth,
		ScreenH:             display.ScreenHeight,
		DT:                  1.0 / float64(max(display.Framerate, 1)),
		MaxConsecutiveDrops: max(display.Framerate, 1),
	})

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Horde")
	ebiten.SetTPS(display.Framerate)

	// Run game
	err = ebiten.RunGame(g)
	g.Close()
	if err != nil {
		log.Fatal(err)
	}
}

// newLoader returns a loader for dir, or for the embedded configs when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}
