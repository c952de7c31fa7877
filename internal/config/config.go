// Package config loads tennissim run configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/tennissim/internal/match"
)

// File represents a complete run configuration.
type File struct {
	Players []PlayerBlock `hcl:"player,block"`
	Run     RunBlock      `hcl:"run,block"`
}

// PlayerBlock defines one player's serve profile.
type PlayerBlock struct {
	Name            string  `hcl:"name,label"`
	ServeWinProb    float64 `hcl:"serve_win_prob"`
	AceProb         float64 `hcl:"ace_prob"`
	DoubleFaultProb float64 `hcl:"double_fault_prob"`
}

// RunBlock contains run-level settings. All fields are optional; zero values
// fall back to the defaults applied by Load.
type RunBlock struct {
	Simulations int    `hcl:"simulations,optional"`
	BestOf      int    `hcl:"best_of,optional"`
	GrandSlam   *bool  `hcl:"grand_slam,optional"`
	BatchSize   int    `hcl:"batch_size,optional"`
	LogInterval int    `hcl:"log_interval,optional"`
	Workers     int    `hcl:"workers,optional"`
	LogFile     string `hcl:"log_file,optional"`
	Seed        int64  `hcl:"seed,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	grandSlam := true
	return &File{
		Players: []PlayerBlock{
			{Name: "Federer", ServeWinProb: 0.65, AceProb: 0.10, DoubleFaultProb: 0.05},
			{Name: "Nadal", ServeWinProb: 0.62, AceProb: 0.08, DoubleFaultProb: 0.04},
		},
		Run: RunBlock{
			Simulations: 10000,
			BestOf:      5,
			GrandSlam:   &grandSlam,
			BatchSize:   10,
			LogInterval: 10000,
			LogFile:     "match_log.csv",
		},
	}
}

// Load parses an HCL configuration file and applies defaults for unset run
// settings. A missing file is an error; callers wanting defaults should use
// Default directly.
func Load(filename string) (*File, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("config file %s: %w", filename, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg File
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := Default().Run
	if cfg.Run.Simulations == 0 {
		cfg.Run.Simulations = defaults.Simulations
	}
	if cfg.Run.BestOf == 0 {
		cfg.Run.BestOf = defaults.BestOf
	}
	if cfg.Run.GrandSlam == nil {
		cfg.Run.GrandSlam = defaults.GrandSlam
	}
	if cfg.Run.BatchSize == 0 {
		cfg.Run.BatchSize = defaults.BatchSize
	}
	if cfg.Run.LogInterval == 0 {
		cfg.Run.LogInterval = defaults.LogInterval
	}
	if cfg.Run.LogFile == "" {
		cfg.Run.LogFile = defaults.LogFile
	}

	return &cfg, nil
}

// Validate checks the player roster and run settings.
func (f *File) Validate() error {
	if len(f.Players) != 2 {
		return fmt.Errorf("exactly two players must be configured, got %d", len(f.Players))
	}
	if f.Players[0].Name == f.Players[1].Name {
		return fmt.Errorf("players must have distinct names, both are %q", f.Players[0].Name)
	}

	for _, p := range f.Players {
		if err := p.toPlayer().Validate(); err != nil {
			return err
		}
	}

	r := f.Run
	if r.Simulations <= 0 {
		return fmt.Errorf("simulations must be positive, got %d", r.Simulations)
	}
	if r.BestOf <= 0 || r.BestOf%2 == 0 {
		return fmt.Errorf("best_of must be a positive odd number, got %d", r.BestOf)
	}
	if r.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", r.BatchSize)
	}
	if r.Simulations%r.BatchSize != 0 {
		return fmt.Errorf("batch_size %d must divide simulations %d", r.BatchSize, r.Simulations)
	}
	if r.LogInterval <= 0 {
		return fmt.Errorf("log_interval must be positive, got %d", r.LogInterval)
	}
	if r.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", r.Workers)
	}

	return nil
}

// Players2 returns the two configured players in file order.
func (f *File) Players2() (match.Player, match.Player) {
	return f.Players[0].toPlayer(), f.Players[1].toPlayer()
}

func (p PlayerBlock) toPlayer() match.Player {
	return match.Player{
		Name:            p.Name,
		ServeWinProb:    p.ServeWinProb,
		AceProb:         p.AceProb,
		DoubleFaultProb: p.DoubleFaultProb,
	}
}
