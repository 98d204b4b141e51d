// zztstep is a headless CLI host for the engine: it loads a world file,
// drives it with a fixed number of tick events (-steps), and logs the kind
// of each board-message the engine returns. No screen model is produced.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zztstep/engine/internal/config"
	"github.com/zztstep/engine/internal/engine"
	"github.com/zztstep/engine/internal/sim"
	"github.com/zztstep/engine/internal/worldfile"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	boardFlag := flag.Int("b", -1, "open on board N, clearing the title screen")
	cfgPath := flag.String("config", "config/zztstep.toml", "path to config file")
	steps := flag.Int("steps", 1, "number of tick events to drive before exiting")
	highscorePath := flag.String("highscores", "", "path to the binary highscore table (defaults to <world-file>.hsc)")
	flag.Parse()

	if flag.NArg() < 1 {
		return fmt.Errorf("usage: zztstep [-b N] [-steps N] [-config path] <world-file>")
	}
	worldPath := flag.Arg(0)
	if *highscorePath == "" {
		*highscorePath = worldPath + ".hsc"
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		cfg = nil // a missing config is not fatal for a CLI smoke run
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	data, err := os.ReadFile(worldPath)
	if err != nil {
		return fmt.Errorf("read world file: %w", err)
	}

	seed := int64(0)
	if cfg != nil {
		seed = cfg.Engine.RNGSeed
	}
	eng, err := engine.Load(data, log, seed)
	if err != nil {
		return fmt.Errorf("load world: %w", err)
	}

	if *boardFlag >= 0 {
		if err := eng.OpenBoard(*boardFlag, true); err != nil {
			return fmt.Errorf("open board: %w", err)
		}
	}

	engine.Subscribe(eng.Bus(), func(e engine.HighscoreSubmitted) {
		log.Info("highscore submitted", zap.String("player", e.PlayerName), zap.Int("score", e.Score))
		if err := recordHighscore(eng, *highscorePath, e); err != nil {
			log.Warn("failed to update highscore table", zap.Error(err))
		}
	})
	engine.Subscribe(eng.Bus(), func(e engine.SaveRequested) {
		log.Info("save requested", zap.String("slot", e.SlotName), zap.Int("bytes", len(e.Data)))
	})

	for i := 0; i < *steps; i++ {
		res, err := eng.Step(sim.Event{Kind: sim.EvTick})
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		for _, m := range res.Messages {
			log.Info("board message", zap.Int("kind", int(m.Kind)))
		}
		if res.StepComplete {
			log.Debug("step complete", zap.Int("tick", i))
		}
	}

	return nil
}

// recordHighscore inserts a submitted score into the binary highscore
// table alongside the world file, keeping it sorted descending and capped
// at 30 entries (SPEC_FULL.md §5 Highscore table).
func recordHighscore(eng *engine.Engine, path string, e engine.HighscoreSubmitted) error {
	var scores []worldfile.Highscore
	if data, err := os.ReadFile(path); err == nil {
		scores, err = eng.LoadHighscores(data)
		if err != nil {
			return fmt.Errorf("parse existing highscore table: %w", err)
		}
	}

	scores = append(scores, worldfile.Highscore{Name: e.PlayerName, Score: int16(e.Score)})
	sort.Slice(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	if len(scores) > 30 {
		scores = scores[:30]
	}

	data, err := eng.SaveHighscores(scores)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	format := "console"
	if cfg != nil {
		if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
			level = zapcore.InfoLevel
		}
		format = cfg.Logging.Format
	}

	var zapCfg zap.Config
	if format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
