// Package sim runs many independent tennis matches in concurrent batches and
// reduces their outcomes into run totals.
package sim

import (
	"fmt"

	"github.com/lox/tennissim/internal/match"
	"github.com/lox/tennissim/internal/randutil"
	"github.com/rs/zerolog"
)

// PointSink accepts one batch of point records durably and in order. The sink
// must serialize concurrent Append calls internally; batches completing in
// parallel all write to the same target.
type PointSink interface {
	Append(records []match.PointRecord) error
}

// Config holds everything a simulation run needs.
type Config struct {
	Player1   match.Player
	Player2   match.Player
	BestOf    int
	GrandSlam bool

	Simulations int
	BatchSize   int
	LogInterval int
	Workers     int // 0 means GOMAXPROCS
	Seed        int64

	Sink   PointSink // nil disables point logging
	Logger zerolog.Logger
}

// Validate rejects configurations that cannot run. These are fatal before any
// work starts; nothing here is retried or degraded.
func (c Config) Validate() error {
	if err := c.Player1.Validate(); err != nil {
		return err
	}
	if err := c.Player2.Validate(); err != nil {
		return err
	}
	if c.Player1.Name == c.Player2.Name {
		return fmt.Errorf("players must have distinct names, both are %q", c.Player1.Name)
	}
	if c.BestOf <= 0 || c.BestOf%2 == 0 {
		return fmt.Errorf("best_of must be a positive odd number, got %d", c.BestOf)
	}
	if c.Simulations <= 0 {
		return fmt.Errorf("simulations must be positive, got %d", c.Simulations)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.Simulations%c.BatchSize != 0 {
		return fmt.Errorf("batch_size %d must divide simulations %d", c.BatchSize, c.Simulations)
	}
	if c.LogInterval <= 0 {
		return fmt.Errorf("log_interval must be positive, got %d", c.LogInterval)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// BatchResult is the immutable outcome of one batch of independently
// simulated matches. Results are reduced into Totals by a single reducer;
// nothing in a BatchResult is shared with the batch that produced it.
type BatchResult struct {
	Matches      int
	Wins         map[string]int
	TotalShots   int
	Aces         map[string]int
	DoubleFaults map[string]int
}

// runBatch plays size sequential matches, each with a fresh Match seeded from
// baseSeed plus its offset within the batch. When flush is set the batch's
// concatenated point log is appended to the sink before the result is
// returned; a sink failure is fatal for the run, never silently dropped.
func runBatch(cfg Config, baseSeed int64, size int, flush bool) (BatchResult, error) {
	res := BatchResult{
		Matches:      size,
		Wins:         map[string]int{cfg.Player1.Name: 0, cfg.Player2.Name: 0},
		Aces:         map[string]int{cfg.Player1.Name: 0, cfg.Player2.Name: 0},
		DoubleFaults: map[string]int{cfg.Player1.Name: 0, cfg.Player2.Name: 0},
	}

	var points []match.PointRecord
	for i := 0; i < size; i++ {
		m, err := match.New(cfg.Player1, cfg.Player2, cfg.BestOf, cfg.GrandSlam, randutil.New(baseSeed+int64(i)))
		if err != nil {
			return BatchResult{}, err
		}

		winner := m.Play()
		res.Wins[winner.Name]++
		res.TotalShots += m.TotalShots()
		for _, name := range []string{cfg.Player1.Name, cfg.Player2.Name} {
			res.Aces[name] += m.Aces(name)
			res.DoubleFaults[name] += m.DoubleFaults(name)
		}
		if flush && cfg.Sink != nil {
			points = append(points, m.PointLog()...)
		}
	}

	if flush && cfg.Sink != nil {
		if err := cfg.Sink.Append(points); err != nil {
			return BatchResult{}, fmt.Errorf("flush point log: %w", err)
		}
	}

	return res, nil
}
