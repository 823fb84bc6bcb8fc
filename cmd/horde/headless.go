package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/younwookim/horde/internal/application/replay"
	"github.com/younwookim/horde/internal/application/session"
	"github.com/younwookim/horde/internal/application/system"
	"github.com/younwookim/horde/internal/infrastructure/config"
	"github.com/younwookim/horde/internal/infrastructure/snapshot"
)

// HeadlessOptions configures a windowless run
type HeadlessOptions struct {
	Frames       int // frames per run; ignored when replaying
	Runs         int // seeds Seed, Seed+1, ... simulated in parallel
	Seed         int64
	Debug        bool
	Replay       *replay.ReplayData // drive a single run from a recording
	SnapshotPath string             // PNG of the first run's final frame
}

// RunResult summarizes one headless run
type RunResult struct {
	Seed        int64
	Frames      int
	Faults      int
	GameOver    bool
	Stats       system.Stats
	Diagnostics system.Diagnostics
}

// diagnosticsLine is the per-second log record
type diagnosticsLine struct {
	Frame   int     `json:"frame"`
	Time    float64 `json:"time"`
	Enemies int     `json:"enemies"`
	system.Diagnostics
}

// RunHeadless simulates opts.Runs sessions without a window
func RunHeadless(cfg *config.SimConfig, stage *config.StageConfig, opts HeadlessOptions, logger *log.Logger) ([]RunResult, error) {
	runs := max(opts.Runs, 1)
	if opts.Replay != nil {
		runs = 1
	}

	results := make([]RunResult, runs)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range runs {
		g.Go(func() error {
			seed := opts.Seed + int64(i)
			if opts.Replay != nil {
				seed = opts.Replay.Seed
			}
			runLogger := log.New(logger.Writer(), fmt.Sprintf("[seed %d] ", seed), logger.Flags())

			snapshotPath := ""
			if i == 0 {
				snapshotPath = opts.SnapshotPath
			}

			res, err := runOne(ctx, cfg, stage, seed, opts, snapshotPath, runLogger)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(ctx context.Context, cfg *config.SimConfig, stage *config.StageConfig, seed int64, opts HeadlessOptions, snapshotPath string, logger *log.Logger) (RunResult, error) {
	sess, err := session.New(cfg, system.LoadStage(stage), seed)
	if err != nil {
		return RunResult{}, err
	}
	sess.SetLogger(logger)

	framerate := max(cfg.Display.Framerate, 1)
	dt := 1.0 / float64(framerate)
	frames := opts.Frames

	var rep *replay.Replayer
	if opts.Replay != nil {
		rep = replay.NewReplayer(*opts.Replay)
		frames = rep.Len()
		if rep.DT() > 0 {
			dt = rep.DT()
		}
	}

	res := RunResult{Seed: seed}
	for f := 0; f < frames; f++ {
		if err := ctx.Err(); err != nil {
			return RunResult{}, err
		}

		var in system.InputState
		if rep != nil {
			in, _ = rep.Next()
		}

		if err := sess.Step(in, system.Frame{DT: dt, Debug: opts.Debug}); err != nil {
			res.Faults++
			logger.Printf("frame %d: %v", sess.Frame(), err)
		}
		res.Frames++

		if res.Frames%framerate == 0 {
			logDiagnostics(logger, sess)
		}
		if sess.GameOver() {
			res.GameOver = true
			break
		}
	}

	res.Stats = sess.Enemies.Stats()
	res.Diagnostics = sess.Diagnostics()
	logger.Printf("done: %d frames, %d spawned, %d killed, %d faults", res.Frames, res.Stats.Spawned, res.Stats.Killed, res.Faults)

	if snapshotPath != "" {
		if err := snapshot.SavePNG(snapshotPath, snapshotScene(sess, res), 1); err != nil {
			return RunResult{}, err
		}
		logger.Printf("Snapshot saved: %s", snapshotPath)
	}
	return res, nil
}

func logDiagnostics(logger *log.Logger, sess *session.Session) {
	st := sess.Enemies.Stats()
	line, err := json.Marshal(diagnosticsLine{
		Frame:       st.Frame,
		Time:        st.TimeElapsed,
		Enemies:     st.Enemies,
		Diagnostics: sess.Diagnostics(),
	})
	if err != nil {
		logger.Printf("failed to encode diagnostics: %v", err)
		return
	}
	logger.Printf("diagnostics %s", line)
}

func snapshotScene(sess *session.Session, res RunResult) snapshot.Scene {
	d := res.Diagnostics
	return snapshot.Scene{
		Map:         sess.Map,
		Player:      sess.Player,
		Enemies:     sess.Enemies.Enemies(),
		Items:       sess.Enemies.Items(),
		Projectiles: sess.Enemies.Projectiles(),
		Lines: []string{
			fmt.Sprintf("seed %d  frame %d  t=%.1fs", res.Seed, res.Stats.Frame, res.Stats.TimeElapsed),
			fmt.Sprintf("difficulty %.2f  spawn %.2f/s", d.Difficulty, d.SpawnRate),
			fmt.Sprintf("enemies %d  spawned %d  killed %d", res.Stats.Enemies, res.Stats.Spawned, res.Stats.Killed),
		},
	}
}
