// Command procmotion plays a configured scene headlessly and records every
// object's pose per frame.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ProcMotion/internal/behaviour"
	"ProcMotion/internal/clock"
	"ProcMotion/internal/config"
	"ProcMotion/internal/logger"
	"ProcMotion/internal/noise"
	"ProcMotion/internal/oscillator"
	"ProcMotion/internal/scene"
	"ProcMotion/internal/trace"
	"ProcMotion/scripts"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type options struct {
	ConfigPath  string
	WriteConfig string
	OutPath     string
	Debug       bool
	Watch       bool

	// set only for flags given on the command line
	Overrides config.Overrides
}

func main() {
	configPath := flag.String("config", "", "Path to scene YAML (empty = built-in demo scene)")
	frames := flag.Int("frames", 0, "Frames to play (default from config)")
	dt := flag.Float64("dt", 0, "Real seconds per frame (default from config)")
	seed := flag.Int64("seed", 0, "Phase randomization seed (0 = time-based)")
	workers := flag.Int("workers", 0, "Worker goroutines for hierarchy updates (<= 1 = serial)")
	out := flag.String("out", "trace.csv", "Trace CSV output path (empty = no trace)")
	writeConfig := flag.String("write-config", "", "Write the effective config to this path")
	debug := flag.Bool("debug", false, "Enable debug logging")
	watch := flag.Bool("watch", false, "Play again whenever the config file changes")

	flag.Parse()

	opts := options{
		ConfigPath:  *configPath,
		WriteConfig: *writeConfig,
		OutPath:     *out,
		Debug:       *debug,
		Watch:       *watch,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frames":
			opts.Overrides.Frames = frames
		case "dt":
			opts.Overrides.Delta = dt
		case "seed":
			opts.Overrides.Seed = seed
		case "workers":
			opts.Overrides.Workers = workers
		}
	})

	logger.Init()
	logger.SetDebug(opts.Debug)
	defer logger.Sync()

	if err := run(opts); err != nil {
		logger.Log.Error("procmotion failed", zap.Error(err))
		if !opts.Watch {
			logger.Sync()
			os.Exit(1)
		}
	}
	if opts.Watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := watchAndRun(ctx, opts); err != nil {
			logger.Log.Error("Watch failed", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
	}
}

// watchAndRun plays the scene again after every change to the config file
// until ctx is done. Failed runs are logged and do not stop watching.
func watchAndRun(ctx context.Context, opts options) error {
	if opts.ConfigPath == "" {
		return fmt.Errorf("-watch needs -config")
	}
	w, err := config.NewWatcher(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("watching %s: %w", opts.ConfigPath, err)
	}
	defer w.Close()

	logger.Log.Info("Watching config", zap.String("path", opts.ConfigPath))
	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-w.Events:
			logger.Log.Info("Config changed", zap.String("path", path))
			if err := run(opts); err != nil {
				logger.Log.Error("Run failed", zap.Error(err))
			}
		case err := <-w.Errors:
			logger.Log.Warn("Watcher error", zap.Error(err))
		}
	}
}

func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(opts.Overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log := logger.Log.With(zap.String("run", uuid.New().String()))
	if opts.WriteConfig != "" {
		if err := cfg.WriteYAML(opts.WriteConfig); err != nil {
			return err
		}
	}

	src, err := noise.New(cfg.Run.Noise, cfg.Run.NoiseSeed)
	if err != nil {
		return err
	}
	seed := cfg.Run.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rec := trace.NewRecorder()
	reg := behaviour.NewScriptRegistry()
	scripts.Register(reg, scripts.Dependencies{
		Noise:    src,
		Rand:     oscillator.NewLockedRand(seed),
		OnSample: rec.Observe,
	})

	cm := behaviour.NewComponentManager(behaviour.WithWorkers(cfg.Run.Workers))
	defer cm.Close()

	sc, err := scene.Build(cfg, reg, cm)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}
	for _, obj := range sc.Objects {
		rec.Attach(obj)
	}

	bm := behaviour.NewBehaviourManager(cm)
	bm.Clock.TimeScale = cfg.Run.TimeScale

	log.Info("Starting playback",
		zap.Int("frames", cfg.Run.Frames),
		zap.Float64("delta", cfg.Run.Delta),
		zap.Float64("duration", cfg.Derived.Duration),
		zap.Int64("seed", seed),
		zap.String("noise", cfg.Run.Noise),
		zap.Bool("parallel", cm.Parallel()))

	start := time.Now()
	bm.Run(cfg.Run.Frames, cfg.Run.Delta, func(frame clock.Frame) {
		sc.Update(frame)
		rec.Capture(frame)
		if cfg.Run.LogEvery > 0 && frame.Count%uint64(cfg.Run.LogEvery) == 0 {
			log.Info("Progress",
				zap.Uint64("frame", frame.Count),
				zap.Float64("time", frame.Time),
				zap.Float64("unscaledTime", frame.UnscaledTime))
		}
	})
	log.Info("Playback finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("pendingEvents", sc.Pending()),
		zap.Int("playingTransitions", sc.UI.Playing()))

	if opts.OutPath != "" {
		if err := rec.WriteFile(opts.OutPath); err != nil {
			return err
		}
		log.Info("Trace written", zap.String("path", opts.OutPath))
	}

	for _, s := range rec.Summarize() {
		log.Info("Object summary",
			zap.String("object", s.Object),
			zap.Int("samples", s.Samples),
			zap.Float64("rangeX", s.X.Range()),
			zap.Float64("rangeY", s.Y.Range()),
			zap.Float64("rangeZ", s.Z.Range()),
			zap.Float64("stdY", s.Y.Std),
			zap.Float64("peakAmplitude", s.PeakAmplitude))
	}
	return nil
}
