package main

import (
	"time"

	"github.com/lox/tennissim/internal/config"
	"github.com/lox/tennissim/internal/stream"
)

// WatchCmd serves live match replays over WebSocket
type WatchCmd struct {
	Addr      string        `kong:"default=':8089',help='Listen address'"`
	Config    string        `kong:"help='Path to an HCL config file for the player roster',type='existingfile'"`
	BestOf    int           `kong:"default='5',help='Sets needed to decide a match (odd number)'"`
	GrandSlam bool          `kong:"default='true',negatable,help='Play a 10-point tiebreak in the deciding set'"`
	Delay     time.Duration `kong:"default='500ms',help='Pause between streamed points'"`
	Seed      *int64        `kong:"help='Deterministic base RNG seed (optional)'"`
	Debug     bool          `kong:"help='Enable debug logging'"`
}

func (c *WatchCmd) Run() error {
	logger := setupLogger(c.Debug)

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
	}

	srv, err := stream.NewServer(stream.Config{
		Player1:   player1,
		Player2:   player2,
		BestOf:    c.BestOf,
		GrandSlam: c.GrandSlam,
		Delay:     c.Delay,
		Seed:      seed,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	ctx := setupSignalHandler(logger)
	return srv.ListenAndServe(ctx, c.Addr)
}
