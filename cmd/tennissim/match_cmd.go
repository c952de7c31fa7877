package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/tennissim/internal/config"
	"github.com/lox/tennissim/internal/match"
	"github.com/lox/tennissim/internal/pointlog"
	"github.com/lox/tennissim/internal/randutil"
	"github.com/rs/zerolog"
)

// MatchCmd plays one match and prints every point as it happens
type MatchCmd struct {
	Config    string `kong:"help='Path to an HCL config file for the player roster',type='existingfile'"`
	BestOf    int    `kong:"default='5',help='Sets needed to decide the match (odd number)'"`
	GrandSlam bool   `kong:"default='true',negatable,help='Play a 10-point tiebreak in the deciding set'"`
	Seed      *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	LogFile   string `kong:"help='Optional CSV point log path'"`
	Debug     bool   `kong:"help='Enable debug logging'"`
}

func (c *MatchCmd) Run() error {
	var logger *log.Logger
	if c.Debug {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	} else {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}

	file := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		file = loaded
	}
	player1, player2 := file.Players2()

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	logger.Debug("Seeding match", "seed", seed)

	m, err := match.New(player1, player2, c.BestOf, c.GrandSlam, randutil.New(seed))
	if err != nil {
		return err
	}

	fmt.Printf("%s vs %s (best of %d)\n\n", player1.Name, player2.Name, c.BestOf)
	winner := m.Play()

	for _, rec := range m.PointLog() {
		fmt.Printf("%-10s serving  point %-6s  games %-5s  sets %s\n",
			rec.Server, rec.PointScore, rec.GameScore, rec.SetScore)
	}

	fmt.Printf("\n%s wins the match in %d total shots\n", winner.Name, m.TotalShots())
	fmt.Printf("Aces: %s %d, %s %d\n",
		player1.Name, m.Aces(player1.Name), player2.Name, m.Aces(player2.Name))
	fmt.Printf("Double faults: %s %d, %s %d\n",
		player1.Name, m.DoubleFaults(player1.Name), player2.Name, m.DoubleFaults(player2.Name))

	if c.LogFile != "" {
		writer, err := pointlog.New(pointlog.Config{
			Path:    c.LogFile,
			Player1: player1.Name,
			Player2: player2.Name,
			Logger:  zerolog.Nop(),
		})
		if err != nil {
			return err
		}
		writer.StartFlusher(context.Background())
		for _, rec := range m.PointLog() {
			if err := writer.Record(rec); err != nil {
				_ = writer.Close()
				return err
			}
		}
		if err := writer.Close(); err != nil {
			return err
		}
		logger.Info("Wrote point log", "path", c.LogFile, "points", len(m.PointLog()))
	}

	return nil
}
