package config

import (
	"errors"
	"fmt"
	"io/ioutil"

	"github.com/garlicgarrison/san-census/oracle"
	"github.com/garlicgarrison/san-census/placement"
	"gopkg.in/yaml.v2"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

type KingsConfig struct {
	Black string `yaml:"black"`
	White string `yaml:"white"`
}

/*
	Config describes one census run. The zero-flag run uses Default, which
	is the fixed set of pieces, king placements and output file; a yaml
	file only overrides what it names.
*/
type Config struct {
	Pieces         string        `yaml:"pieces"`
	PieceCount     int           `yaml:"piece_count"`
	KingPlacements []KingsConfig `yaml:"king_placements"`
	Squares        []string      `yaml:"squares"`

	Output        string `yaml:"output"`
	JSONOutput    string `yaml:"json_output"`
	HeatmapOutput string `yaml:"heatmap_output"`

	Oracle        string `yaml:"oracle"`
	Workers       int    `yaml:"workers"`
	ProgressEvery int    `yaml:"progress_every"`
	DrawBoard     bool   `yaml:"draw_board"`
}

func Default() Config {
	kings := make([]KingsConfig, 0, len(placement.DefaultKingPlacements))
	for _, k := range placement.DefaultKingPlacements {
		kings = append(kings, KingsConfig{Black: k.Black.String(), White: k.White.String()})
	}

	return Config{
		Pieces:         placement.Pieces,
		PieceCount:     3,
		KingPlacements: kings,
		Output:         "possibilities.txt",
		Oracle:         oracle.GoChessName,
		Workers:        1,
		ProgressEvery:  500,
		DrawBoard:      true,
	}
}

// Load reads a yaml file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	yamlConfig, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	err = yaml.Unmarshal(yamlConfig, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Pieces == "" {
		return fmt.Errorf("%w: no pieces", ErrInvalidConfig)
	}
	for _, p := range c.Pieces {
		if !placement.ValidPiece(p) {
			return fmt.Errorf("%w: piece %q", ErrInvalidConfig, p)
		}
	}

	if len(c.KingPlacements) == 0 {
		return fmt.Errorf("%w: no king placements", ErrInvalidConfig)
	}
	if _, err := c.Kings(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}

	universe, err := c.Universe()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	if c.PieceCount < 1 || c.PieceCount > len(universe) {
		return fmt.Errorf("%w: piece_count %d with %d squares", ErrInvalidConfig, c.PieceCount, len(universe))
	}

	if c.Output == "" {
		return fmt.Errorf("%w: no output file", ErrInvalidConfig)
	}
	if _, err := oracle.New(c.Oracle); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	}
	if c.ProgressEvery < 0 {
		return fmt.Errorf("%w: progress_every must not be negative", ErrInvalidConfig)
	}

	return nil
}

func (c Config) Kings() ([]placement.KingPlacement, error) {
	kings := make([]placement.KingPlacement, 0, len(c.KingPlacements))
	for _, k := range c.KingPlacements {
		kp, err := placement.ParseKingPlacement(k.Black, k.White)
		if err != nil {
			return nil, err
		}
		kings = append(kings, kp)
	}
	return kings, nil
}

// Universe returns the squares pieces may stand on; all 64 when unset.
func (c Config) Universe() ([]placement.Square, error) {
	if len(c.Squares) == 0 {
		return placement.AllSquares(), nil
	}

	seen := make(map[placement.Square]bool)
	squares := make([]placement.Square, 0, len(c.Squares))
	for _, name := range c.Squares {
		sq, err := placement.ParseSquare(name)
		if err != nil {
			return nil, err
		}
		if seen[sq] {
			return nil, fmt.Errorf("square %s listed twice", name)
		}
		seen[sq] = true
		squares = append(squares, sq)
	}
	return squares, nil
}
