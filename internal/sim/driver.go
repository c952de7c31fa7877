package sim

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// progressEvery controls how often the reducer logs run progress, in batches.
const progressEvery = 100

// Totals are the global accumulators for a run. They are owned exclusively by
// the reducer goroutine while the run is in flight and returned to the caller
// once every batch has been folded in.
type Totals struct {
	Simulations  int
	Wins         map[string]int
	TotalShots   int
	Aces         map[string]int
	DoubleFaults map[string]int
	Elapsed      time.Duration
}

func newTotals(cfg Config) *Totals {
	return &Totals{
		Wins:         map[string]int{cfg.Player1.Name: 0, cfg.Player2.Name: 0},
		Aces:         map[string]int{cfg.Player1.Name: 0, cfg.Player2.Name: 0},
		DoubleFaults: map[string]int{cfg.Player1.Name: 0, cfg.Player2.Name: 0},
	}
}

// reduce folds one batch into the totals. Sums are commutative, so batch
// completion order does not matter.
func (t *Totals) reduce(r BatchResult) {
	t.Simulations += r.Matches
	t.TotalShots += r.TotalShots
	for name, wins := range r.Wins {
		t.Wins[name] += wins
	}
	for name, aces := range r.Aces {
		t.Aces[name] += aces
	}
	for name, dfs := range r.DoubleFaults {
		t.DoubleFaults[name] += dfs
	}
}

// WinPercentage returns the named player's share of match wins over the whole
// run, in percent.
func (t *Totals) WinPercentage(name string) float64 {
	if t.Simulations == 0 {
		return 0
	}
	return float64(t.Wins[name]) / float64(t.Simulations) * 100
}

// AvgAces returns the named player's average aces per match.
func (t *Totals) AvgAces(name string) float64 {
	if t.Simulations == 0 {
		return 0
	}
	return float64(t.Aces[name]) / float64(t.Simulations)
}

// AvgDoubleFaults returns the named player's average double faults per match.
func (t *Totals) AvgDoubleFaults(name string) float64 {
	if t.Simulations == 0 {
		return 0
	}
	return float64(t.DoubleFaults[name]) / float64(t.Simulations)
}

// Run partitions the configured simulation count into batches, executes them
// across a fixed worker pool and reduces the results. Workers never touch the
// accumulators: each batch returns an immutable BatchResult over a channel
// and a single reducer goroutine owns the totals, so no locking happens at
// the reduction sites. The point sink, when configured, serializes its own
// writes.
func Run(ctx context.Context, cfg Config) (*Totals, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	numBatches := cfg.Simulations / cfg.BatchSize
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > numBatches {
		workers = numBatches
	}

	cfg.Logger.Info().
		Int("simulations", cfg.Simulations).
		Int("batches", numBatches).
		Int("batch_size", cfg.BatchSize).
		Int("workers", workers).
		Int("best_of", cfg.BestOf).
		Bool("grand_slam", cfg.GrandSlam).
		Msg("Starting simulation run")

	start := time.Now()

	jobs := make(chan int)
	results := make(chan BatchResult)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numBatches; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for idx := range jobs {
				// Flush when the cumulative match count at the end of this
				// batch is a multiple of the log interval.
				flush := cfg.Sink != nil && ((idx+1)*cfg.BatchSize)%cfg.LogInterval == 0
				res, err := runBatch(cfg, seed+int64(idx*cfg.BatchSize), cfg.BatchSize, flush)
				if err != nil {
					return err
				}
				select {
				case results <- res:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	totals := newTotals(cfg)
	reduced := make(chan struct{})
	go func() {
		defer close(reduced)
		batches := 0
		for res := range results {
			totals.reduce(res)
			batches++
			if batches%progressEvery == 0 {
				cfg.Logger.Info().
					Int("batches_completed", batches).
					Int("matches_completed", totals.Simulations).
					Msg("Run progress")
			}
		}
	}()

	err := g.Wait()
	close(results)
	<-reduced
	if err != nil {
		return nil, err
	}

	totals.Elapsed = time.Since(start)
	cfg.Logger.Info().
		Int("matches", totals.Simulations).
		Dur("elapsed", totals.Elapsed).
		Msg("Simulation run completed")
	return totals, nil
}
