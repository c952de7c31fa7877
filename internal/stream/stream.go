// Package stream serves live match playback over WebSocket. Each connection
// gets its own freshly simulated match whose points are replayed as JSON
// frames at a configurable pace, followed by a single summary frame.
package stream

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lox/tennissim/internal/match"
	"github.com/lox/tennissim/internal/randutil"
	"github.com/rs/zerolog"
)

const writeWait = 10 * time.Second

// Config configures a streaming Server.
type Config struct {
	Player1   match.Player
	Player2   match.Player
	BestOf    int
	GrandSlam bool

	// Delay is the pause between point frames. Zero replays the match as
	// fast as the connection allows.
	Delay time.Duration

	// Seed is the base seed; each connection simulates with Seed plus a
	// per-connection counter so viewers see different matches.
	Seed int64

	Logger zerolog.Logger
}

// Frame is one WebSocket message. Exactly one of Point and Summary is set.
type Frame struct {
	Type    string             `json:"type"`
	Point   *match.PointRecord `json:"point,omitempty"`
	Summary *Summary           `json:"summary,omitempty"`
}

// Summary closes a replay with the match result.
type Summary struct {
	Winner     string `json:"winner"`
	TotalShots int    `json:"total_shots"`
	Aces       int    `json:"winner_aces"`
}

// Server streams simulated matches to WebSocket clients.
type Server struct {
	cfg      Config
	logger   zerolog.Logger
	upgrader websocket.Upgrader
	conns    atomic.Int64
}

// NewServer validates the config and builds a streaming server.
func NewServer(cfg Config) (*Server, error) {
	if err := cfg.Player1.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Player2.Validate(); err != nil {
		return nil, err
	}
	if cfg.Player1.Name == cfg.Player2.Name {
		return nil, errors.New("stream: players must have distinct names")
	}
	if cfg.BestOf <= 0 || cfg.BestOf%2 == 0 {
		return nil, errors.New("stream: best-of must be a positive odd number")
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}, nil
}

// Handler returns the HTTP handler that upgrades and replays.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Error().Err(err).Msg("websocket upgrade failed")
			return
		}
		s.replay(r.Context(), conn)
	})
}

// ListenAndServe serves match replays on addr until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/watch", s.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info().Str("addr", addr).Msg("streaming server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) replay(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	seed := s.cfg.Seed + s.conns.Add(1) - 1
	logger := s.logger.With().Int64("seed", seed).Logger()

	m, err := match.New(s.cfg.Player1, s.cfg.Player2, s.cfg.BestOf, s.cfg.GrandSlam, randutil.New(seed))
	if err != nil {
		logger.Error().Err(err).Msg("failed to build match")
		return
	}
	winner := m.Play()

	logger.Info().
		Str("winner", winner.Name).
		Int("points", len(m.PointLog())).
		Msg("replaying match")

	for i := range m.PointLog() {
		if err := s.writeFrame(conn, Frame{Type: "point", Point: &m.PointLog()[i]}); err != nil {
			logger.Debug().Err(err).Msg("client disconnected during replay")
			return
		}
		if s.cfg.Delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.cfg.Delay):
			}
		}
	}

	summary := Summary{
		Winner:     winner.Name,
		TotalShots: m.TotalShots(),
		Aces:       m.Aces(winner.Name),
	}
	if err := s.writeFrame(conn, Frame{Type: "summary", Summary: &summary}); err != nil {
		logger.Debug().Err(err).Msg("client disconnected before summary")
		return
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

func (s *Server) writeFrame(conn *websocket.Conn, f Frame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(f)
}
