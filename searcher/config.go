package searcher

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"baghchal/game"
)

const (
	DefaultDepth    = 4
	DefaultMaxDepth = 10
)

var ErrUnknownPreset = errors.New("unknown preset")

// Config selects how a move is searched. It is either FixedDepth or
// TimeBudget.
type Config interface {
	fmt.Stringer
	isConfig()
}

// FixedDepth searches every root move to a fixed depth per side. With
// probability Noise the search is skipped and a random legal move is played.
type FixedDepth struct {
	DepthGoat  int
	DepthTiger int
	Noise      float64
}

// TimeBudget deepens iteratively until Budget elapses or MaxDepth is done.
type TimeBudget struct {
	Budget   time.Duration
	MaxDepth int
}

func (FixedDepth) isConfig() {}
func (TimeBudget) isConfig() {}

func (c FixedDepth) String() string {
	return fmt.Sprintf("fixed(goat=%d,tiger=%d,noise=%.2f)", c.DepthGoat, c.DepthTiger, c.Noise)
}

func (c TimeBudget) String() string {
	return fmt.Sprintf("timed(%s,max=%d)", c.Budget, c.MaxDepth)
}

func (c FixedDepth) depthFor(side game.Side) int {
	if side == game.Goats {
		return c.DepthGoat
	}
	return c.DepthTiger
}

var Presets = map[string]Config{
	"easy":       FixedDepth{DepthGoat: 1, DepthTiger: 1, Noise: 0.35},
	"medium":     FixedDepth{DepthGoat: 2, DepthTiger: 2, Noise: 0.12},
	"hard":       FixedDepth{DepthGoat: 4, DepthTiger: 4, Noise: 0},
	"unbeatable": TimeBudget{Budget: 3 * time.Second, MaxDepth: 12},
}

// DefaultConfig is used for a nil or unrecognised configuration.
var DefaultConfig Config = Presets["hard"]

func Preset(name string) (Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return cfg, nil
}

func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

// PresetSpec is a named difficulty as it arrives from a file or the wire.
// Every field is optional; Recognize decides which shape it describes.
type PresetSpec struct {
	Name       string   `yaml:"name" json:"name"`
	DepthGoat  *int     `yaml:"depth_goat,omitempty" json:"depthGoat,omitempty"`
	DepthTiger *int     `yaml:"depth_tiger,omitempty" json:"depthTiger,omitempty"`
	Noise      *float64 `yaml:"noise,omitempty" json:"noise,omitempty"`
	TimeMs     *int64   `yaml:"time_ms,omitempty" json:"timeMs,omitempty"`
	MaxDepth   *int     `yaml:"max_depth,omitempty" json:"maxDepth,omitempty"`
}

// Recognize returns a TimeBudget when a time is given and a FixedDepth
// otherwise, with absent fields defaulted.
func (p PresetSpec) Recognize() Config {
	if p.TimeMs != nil {
		return normalize(TimeBudget{
			Budget:   time.Duration(*p.TimeMs) * time.Millisecond,
			MaxDepth: valueOr(p.MaxDepth, DefaultMaxDepth),
		})
	}
	return normalize(FixedDepth{
		DepthGoat:  valueOr(p.DepthGoat, DefaultDepth),
		DepthTiger: valueOr(p.DepthTiger, DefaultDepth),
		Noise:      valueOr(p.Noise, 0),
	})
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

// normalize fills in defaults so the search never sees a zero depth or an
// out of range probability.
func normalize(cfg Config) Config {
	switch c := cfg.(type) {
	case FixedDepth:
		if c.DepthGoat <= 0 {
			c.DepthGoat = DefaultDepth
		}
		if c.DepthTiger <= 0 {
			c.DepthTiger = DefaultDepth
		}
		if !(c.Noise > 0) {
			c.Noise = 0
		} else if c.Noise > 1 {
			c.Noise = 1
		}
		return c
	case *FixedDepth:
		if c == nil {
			return DefaultConfig
		}
		return normalize(*c)
	case TimeBudget:
		if c.Budget < 0 {
			c.Budget = 0
		}
		if c.MaxDepth <= 0 {
			c.MaxDepth = DefaultMaxDepth
		}
		return c
	case *TimeBudget:
		if c == nil {
			return DefaultConfig
		}
		return normalize(*c)
	default:
		return DefaultConfig
	}
}
