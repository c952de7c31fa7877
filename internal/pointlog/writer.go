// Package pointlog appends per-point simulation records to a CSV log file.
//
// The file format is one header line followed by one row per point. The
// header carries the two player names and is written only when the target
// file is empty, so repeated runs append rows without repeating it. All
// writes are serialized inside the Writer; batches completing concurrently
// may call Append without external locking.
package pointlog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/tennissim/internal/match"
	"github.com/rs/zerolog"
)

const (
	defaultFlushEvery    = 100
	defaultFlushInterval = 10 * time.Second
)

// Config configures a Writer.
type Config struct {
	Path    string
	Player1 string
	Player2 string

	// FlushEvery and FlushInterval only affect the buffered Record path used
	// for live (point-at-a-time) logging; Append always writes through.
	FlushEvery    int
	FlushInterval time.Duration
	Clock         quartz.Clock
	Logger        zerolog.Logger
}

// Writer is a serialized append-only CSV sink for point records.
type Writer struct {
	cfg    Config
	logger zerolog.Logger
	clock  quartz.Clock

	mu     sync.Mutex
	f      *os.File
	buffer []match.PointRecord
	closed bool

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New opens (creating if needed) the log file in append mode and writes the
// header when the file is empty.
func New(cfg Config) (*Writer, error) {
	if cfg.Path == "" {
		return nil, errors.New("pointlog: Path is required")
	}
	if cfg.Player1 == "" || cfg.Player2 == "" {
		return nil, errors.New("pointlog: both player names are required")
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = defaultFlushEvery
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}

	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("pointlog: open %s: %w", cfg.Path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pointlog: stat %s: %w", cfg.Path, err)
	}

	w := &Writer{
		cfg:    cfg,
		logger: cfg.Logger,
		clock:  cfg.Clock,
		f:      f,
		stop:   make(chan struct{}),
	}

	if info.Size() == 0 {
		if _, err := f.WriteString(header(cfg.Player1, cfg.Player2)); err != nil {
			f.Close()
			return nil, fmt.Errorf("pointlog: write header: %w", err)
		}
	}

	return w, nil
}

func header(player1, player2 string) string {
	cols := []string{"server", "receiver", "point_score", "game_score", "set_score"}
	for _, suffix := range []string{"match_win_prob", "set_win_prob", "game_win_prob", "next_point_win_prob"} {
		cols = append(cols, player1+"_"+suffix, player2+"_"+suffix)
	}
	cols = append(cols, "next_serve_ace_prob", "tiebreak_prob")
	return strings.Join(cols, ",") + "\n"
}

// Append writes a batch of records durably and in order. Safe for concurrent
// use; the whole batch is written under one lock so rows from concurrent
// batches never interleave.
func (w *Writer) Append(records []match.PointRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeLocked(records)
}

// Record buffers a single record for the live logging path, flushing once the
// buffer reaches FlushEvery records. The background flusher (StartFlusher)
// drains stragglers on an interval.
func (w *Writer) Record(rec match.PointRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buffer = append(w.buffer, rec)
	if len(w.buffer) >= w.cfg.FlushEvery {
		return w.flushLocked()
	}
	return nil
}

// StartFlusher runs an interval flush loop until the context is cancelled or
// the writer is closed.
func (w *Writer) StartFlusher(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := w.clock.NewTicker(w.cfg.FlushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			case <-ticker.C:
				if err := w.Flush(); err != nil {
					w.logger.Error().Err(err).Msg("point log interval flush failed")
				}
			}
		}
	}()
}

// Flush writes any buffered records.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

func (w *Writer) flushLocked() error {
	if len(w.buffer) == 0 {
		return nil
	}
	records := w.buffer
	w.buffer = nil
	return w.writeLocked(records)
}

func (w *Writer) writeLocked(records []match.PointRecord) error {
	if w.closed {
		return errors.New("pointlog: writer is closed")
	}
	if len(records) == 0 {
		return nil
	}

	bw := bufio.NewWriter(w.f)
	for i := range records {
		if _, err := bw.WriteString(row(&records[i])); err != nil {
			return fmt.Errorf("pointlog: write row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("pointlog: flush rows: %w", err)
	}
	return nil
}

func row(r *match.PointRecord) string {
	var b strings.Builder
	b.WriteString(r.Server)
	b.WriteByte(',')
	b.WriteString(r.Receiver)
	b.WriteByte(',')
	b.WriteString(r.PointScore)
	b.WriteByte(',')
	b.WriteString(r.GameScore)
	b.WriteByte(',')
	b.WriteString(r.SetScore)
	for _, v := range []float64{
		r.MatchWinProb1, r.MatchWinProb2,
		r.SetWinProb1, r.SetWinProb2,
		r.GameWinProb1, r.GameWinProb2,
		r.NextPointWinProb1, r.NextPointWinProb2,
		r.NextServeAceProb, r.TiebreakProb,
	} {
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte('\n')
	return b.String()
}

// Close stops the flusher, flushes buffered records and closes the file.
func (w *Writer) Close() error {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	flushErr := w.flushLocked()
	w.closed = true
	closeErr := w.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
