package game

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"roguecore/internal/config"
	"roguecore/internal/generate"
	"roguecore/internal/sim"
)

// DefaultLayout is the map used when no -map file is given: two rooms
// joined by a door and a corridor, a few monsters and some loot.
const DefaultLayout = `
##############################
#@.......#...................#
#........#......r............#
#...!....+...........z.......#
#........#...................#
####.#####.........[.........#
#........#...................#
#........######.##############
#...g....#...................#
#........#.......^....!......#
#........+...................#
##############################
`

// LoadLayout returns the layout text in path, or DefaultLayout when path is
// empty.
func LoadLayout(path string) (string, error) {
	if path == "" {
		return DefaultLayout, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read map: %w", err)
	}
	return string(data), nil
}

// Source says where a new simulation's map comes from.
type Source struct {
	MapPath   string // text layout file; DefaultLayout when empty
	Generated bool   // build a BSP level instead of reading a layout
}

// Build creates a simulation from src.
func Build(cfg config.Config, src Source, logger logrus.FieldLogger) (*sim.Sim, error) {
	if !src.Generated {
		text, err := LoadLayout(src.MapPath)
		if err != nil {
			return nil, err
		}
		return sim.FromText(cfg, text, logger)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := generate.DefaultConfig(rand.New(rand.NewSource(seed)))
	gen.MoveCost = cfg.MoveCost
	layout, _, err := generate.Generate(gen)
	if err != nil {
		return nil, fmt.Errorf("generate level: %w", err)
	}
	return sim.New(cfg, layout, logger)
}
