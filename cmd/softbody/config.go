package main

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

// Config holds the various parameters required for running a simulation.
type Config struct {
	// Renderer is opengl for an interactive window, terminal for
	// a character display, or none for a headless run.
	Renderer string

	Steps     int     // number of time steps, 0 runs forever (none and terminal only)
	Dt        float64 // unit: s
	TimeScale float64 `toml:"time_scale"` // simulated time per real time (opengl and terminal only)
	FrameRate float64 `toml:"frame_rate"` // unit: 1/s
	Manual    bool    // step manually only (opengl only)
	Vectors   bool    // draw net force vectors

	// Terminal size in characters
	Columns int
	Rows    int

	// Domain parameters
	Width    float64 // unit: m
	Height   float64 // unit: m
	Bounce   float64 // unit: 1
	Friction float64 // unit: 1
	Gravity  float64 // unit: m/s², pointing down

	// Logging parameters
	LogLevel string `toml:"log_level"` // debug, info, warn or error
	LogEvery int    `toml:"log_every"` // steps between summaries (none only)

	Bodies []BodyConf `toml:"body"`
}

// BodyConf describes one soft body.
//
// A body is either a preset (square or grid) or an explicit list of nodes
// and edges. Zero values of Mass, Spacing and Spring take the defaults.
type BodyConf struct {
	Name   string
	Preset string // square, grid, or empty for explicit nodes and edges

	// Grid presets
	Columns int     // nodes per row
	Rows    int     // nodes per column
	Spacing float64 // unit: m

	Mass    float64 // unit: kg per node
	Spring  float64 // unit: N/m
	Damping float64 // unit: 1

	// Plasticity and tearing thresholds, 0 disables them
	DeformAt          float64 `toml:"deform_at"`          // unit: m
	DeformCoefficient float64 `toml:"deform_coefficient"` // unit: 1, 0 means 1
	TearAt            float64 `toml:"tear_at"`            // unit: m

	Position []float64 // top left corner, unit: m
	Velocity []float64 // unit: m/s

	Nodes []NodeConf `toml:"node"`
	Edges []EdgeConf `toml:"edge"`
}

// NodeConf describes a node of an explicit body.
type NodeConf struct {
	Position []float64 // unit: m
	Mass     float64   // unit: kg, 0 means the mass of the body
}

// EdgeConf describes an edge of an explicit body.
type EdgeConf struct {
	Nodes   [2]int  // indices of the endpoints
	Spring  float64 // unit: N/m, 0 means the spring of the body
	Damping float64 // unit: 1, 0 means the damping of the body
	Rest    float64 // unit: m, 0 means the initial distance
}

// DefaultBody is the body used when the config file has none.
var DefaultBody = BodyConf{
	Name:     "jelly",
	Preset:   "grid",
	Columns:  4,
	Rows:     2,
	Spacing:  0.6,
	Mass:     0.05,
	Spring:   40,
	Damping:  0.07,
	Position: []float64{1, 0.1},
}

// DefaultConf are the default parameters.
var DefaultConf = &Config{
	Renderer:  "opengl",
	Steps:     0,
	Dt:        0.001,
	TimeScale: 1,
	FrameRate: 60,
	Columns:   60,
	Rows:      60,
	Width:     5,
	Height:    5,
	Bounce:    0,
	Friction:  0.01,
	Gravity:   9.81,
	LogLevel:  "info",
	LogEvery:  1000,
	Bodies:    []BodyConf{DefaultBody},
}

// ParseConfig parses the TOML config file whose path is provided.
// A leading ~ in the path is expanded to the home directory.
func ParseConfig(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	// config file overwrites default parameters
	conf := *DefaultConf
	conf.Bodies = nil
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return nil, err
	}
	if len(conf.Bodies) == 0 {
		conf.Bodies = []BodyConf{DefaultBody}
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(names, ", "))
	}
	for i := range conf.Bodies {
		conf.Bodies[i].fill()
	}
	return &conf, nil
}

// fill replaces unset parameters by their default.
func (b *BodyConf) fill() {
	if b.Mass == 0 {
		b.Mass = DefaultBody.Mass
	}
	if b.Spring == 0 {
		b.Spring = DefaultBody.Spring
	}
	if b.Spacing == 0 {
		b.Spacing = DefaultBody.Spacing
	}
}

// Level returns the log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// Validate reports the first invalid parameter.
func (c *Config) Validate() error {
	switch c.Renderer {
	case "opengl", "terminal", "none":
	default:
		return fmt.Errorf("bad renderer %q", c.Renderer)
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"dt", c.Dt},
		{"time_scale", c.TimeScale},
		{"frame_rate", c.FrameRate},
		{"width", c.Width},
		{"height", c.Height},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%s must be positive, got %v", p.name, p.v)
		}
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", c.Steps)
	}
	if c.Renderer == "none" && c.Steps == 0 {
		return fmt.Errorf("a headless run needs a number of steps")
	}
	if c.Renderer == "terminal" && (c.Columns <= 0 || c.Rows <= 0) {
		return fmt.Errorf("bad terminal size %dx%d", c.Columns, c.Rows)
	}
	if c.LogEvery <= 0 {
		return fmt.Errorf("log_every must be positive, got %d", c.LogEvery)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("bad log level %q", c.LogLevel)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("no body to simulate")
	}
	for i, b := range c.Bodies {
		if err := b.validate(); err != nil {
			return fmt.Errorf("body %d (%s): %w", i, b.Name, err)
		}
	}
	return nil
}

func (b *BodyConf) validate() error {
	switch b.Preset {
	case "square":
	case "grid":
		if b.Columns < 1 || b.Rows < 1 || b.Columns*b.Rows < 2 {
			return fmt.Errorf("bad grid size %dx%d", b.Columns, b.Rows)
		}
	case "":
		if len(b.Nodes) == 0 {
			return fmt.Errorf("no nodes")
		}
		for i, n := range b.Nodes {
			if len(n.Position) != 2 {
				return fmt.Errorf("node %d: position must have 2 coordinates", i)
			}
		}
	default:
		return fmt.Errorf("bad preset %q", b.Preset)
	}
	if b.Position != nil && len(b.Position) != 2 {
		return fmt.Errorf("position must have 2 coordinates")
	}
	if b.Velocity != nil && len(b.Velocity) != 2 {
		return fmt.Errorf("velocity must have 2 coordinates")
	}
	return nil
}
