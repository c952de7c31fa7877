package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/tennissim/internal/config"
	"github.com/lox/tennissim/internal/match"
	"github.com/lox/tennissim/internal/pointlog"
	"github.com/lox/tennissim/internal/sim"
)

// RunCmd simulates a batch of matches and prints aggregate statistics
type RunCmd struct {
	Config      string `kong:"help='Path to an HCL config file (flags are ignored when set)',type='existingfile'"`
	Simulations int    `kong:"default='10000',help='Number of matches to simulate'"`
	BestOf      int    `kong:"default='5',help='Sets needed to decide a match (odd number)'"`
	GrandSlam   bool   `kong:"default='true',negatable,help='Play a 10-point tiebreak in the deciding set'"`
	BatchSize   int    `kong:"default='10',help='Matches per worker batch (must divide simulations)'"`
	LogInterval int    `kong:"default='10000',help='Flush point records to CSV every N matches'"`
	Workers     int    `kong:"default='0',help='Concurrent batch workers (0 = GOMAXPROCS)'"`
	Seed        *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	LogFile     string `kong:"default='match_log.csv',help='CSV point log path'"`
	NoLog       bool   `kong:"help='Disable the CSV point log'"`
	Structured  bool   `kong:"help='Emit JSON logs instead of console output'"`
	Debug       bool   `kong:"help='Enable debug logging'"`
}

func (c *RunCmd) Run() error {
	logger := setupLogger(c.Debug)
	if c.Structured {
		logger = setupStructuredLogger(c.Debug)
	}

	var (
		player1, player2 match.Player
		run              config.RunBlock
	)
	if c.Config != "" {
		file, err := config.Load(c.Config)
		if err != nil {
			return err
		}
		if err := file.Validate(); err != nil {
			return err
		}
		player1, player2 = file.Players2()
		run = file.Run
		logger.Info().Str("path", c.Config).Msg("Loaded configuration file")
	} else {
		defaults := config.Default()
		player1, player2 = defaults.Players2()
		grandSlam := c.GrandSlam
		run = config.RunBlock{
			Simulations: c.Simulations,
			BestOf:      c.BestOf,
			GrandSlam:   &grandSlam,
			BatchSize:   c.BatchSize,
			LogInterval: c.LogInterval,
			Workers:     c.Workers,
			LogFile:     c.LogFile,
		}
		if c.Seed != nil {
			run.Seed = *c.Seed
		}
	}

	var seed int64
	if run.Seed != 0 {
		seed = run.Seed
		logger.Info().Int64("seed", seed).Msg("Using deterministic seed")
	} else {
		seed = time.Now().UnixNano()
		logger.Info().Int64("seed", seed).Msg("Using random seed")
	}

	var sink sim.PointSink
	if !c.NoLog && run.LogFile != "" {
		writer, err := pointlog.New(pointlog.Config{
			Path:    run.LogFile,
			Player1: player1.Name,
			Player2: player2.Name,
			Logger:  logger,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error().Err(err).Msg("Failed to close point log")
			}
		}()
		sink = writer
	}

	cfg := sim.Config{
		Player1:     player1,
		Player2:     player2,
		BestOf:      run.BestOf,
		GrandSlam:   run.GrandSlam != nil && *run.GrandSlam,
		Simulations: run.Simulations,
		BatchSize:   run.BatchSize,
		LogInterval: run.LogInterval,
		Workers:     run.Workers,
		Seed:        seed,
		Sink:        sink,
		Logger:      logger,
	}

	ctx := setupSignalHandler(logger)
	totals, err := sim.Run(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Println()
	sim.WriteSummary(os.Stdout, player1, player2, totals)
	return nil
}
