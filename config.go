package main

import (
	"os"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"gopkg.in/yaml.v3"

	"rrt-planner/planner"
)

// Config holds everything needed to run a search or serve routes. It can be
// loaded from a YAML file; missing keys keep their default values.
type Config struct {
	Grid      GridConfig   `yaml:"grid"`
	Search    SearchConfig `yaml:"search"`
	Server    ServerConfig `yaml:"server"`
	LogLevel  string       `yaml:"log_level"`
	LogIndent bool         `yaml:"log_indent"`
}

// GridConfig describes the map and its obstacles.
type GridConfig struct {
	Height    int              `yaml:"height"`
	Width     int              `yaml:"width"`
	Obstacles []ObstacleConfig `yaml:"obstacles"`
}

// ObstacleConfig is a circular obstacle as written in config files and
// route requests.
type ObstacleConfig struct {
	X      int `json:"x"      yaml:"x"`
	Y      int `json:"y"      yaml:"y"`
	Radius int `json:"radius" yaml:"radius"`
}

// SearchConfig holds the planner parameters.
type SearchConfig struct {
	Start         planner.Point `yaml:"start"`
	Goal          planner.Point `yaml:"goal"`
	StepSize      int           `yaml:"step_size"`
	GoalRadius    int           `yaml:"goal_radius"`
	MaxIterations int           `yaml:"max_iterations"`
	Nearest       string        `yaml:"nearest"`

	// Seed makes searches reproducible. Sampling is seeded from entropy when
	// it is not set.
	Seed *uint64 `yaml:"seed,omitempty"`
}

// ServerConfig configures the route server.
type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	AdminAddr     string        `yaml:"admin_addr"`
	SearchTimeout time.Duration `yaml:"search_timeout"`
}

// DefaultConfig returns the configuration of the 15x15 demo map.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{
			Height: 15,
			Width:  15,
			Obstacles: []ObstacleConfig{
				{X: 15, Y: 15, Radius: 3},
			},
		},
		Search: SearchConfig{
			Start:         planner.Point{X: 0, Y: 0},
			Goal:          planner.Point{X: 12, Y: 12},
			StepSize:      5,
			GoalRadius:    5,
			MaxIterations: planner.DefaultMaxIterations,
			Nearest:       planner.NearestLinear,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			AdminAddr:     ":18190",
			SearchTimeout: 10 * time.Second,
		},
		LogLevel: logs.InfoLevel.String(),
	}
}

// LoadConfig reads a YAML file over the defaults. An empty filename returns
// the defaults. The result is not validated.
func LoadConfig(filename string) (Config, error) {
	conf := DefaultConfig()
	if filename == "" {
		return conf, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, errors.New("reading config failed").
			WithTag("file", filename).
			Wrap(err)
	}

	if err := yaml.Unmarshal(data, &conf); err != nil {
		return Config{}, errors.New("parsing config failed").
			WithTag("file", filename).
			Wrap(err)
	}
	return conf, nil
}

// Validate checks that the configured grid and search can build a planner.
func (c Config) Validate() error {
	grid, err := c.Grid.BuildGrid()
	if err != nil {
		return err
	}
	err = planner.Validate(grid,
		c.Search.Start,
		c.Search.Goal,
		c.Search.StepSize,
		c.Search.GoalRadius,
		c.Search.Options()...,
	)
	if err != nil {
		return err
	}

	switch {
	case c.Server.Addr == "":
		return errors.New("server address is empty").
			WithType(planner.ErrTypeInvalidConfiguration)
	case c.Server.SearchTimeout <= 0:
		return errors.New("search timeout must be positive").
			WithType(planner.ErrTypeInvalidConfiguration).
			WithTag("search_timeout", c.Server.SearchTimeout)
	}
	return nil
}

// BuildGrid creates the grid described by the config.
func (c GridConfig) BuildGrid() (*planner.Grid, error) {
	obstacles := make([]planner.Obstacle, 0, len(c.Obstacles))
	for _, o := range c.Obstacles {
		obstacle, err := planner.NewObstacle(o.X, o.Y, o.Radius)
		if err != nil {
			return nil, err
		}
		obstacles = append(obstacles, obstacle)
	}
	return planner.NewGrid(c.Height, c.Width, obstacles...)
}

// Options converts the search parameters into planner options.
func (c SearchConfig) Options() []planner.Option {
	opts := []planner.Option{
		planner.WithMaxIterations(c.MaxIterations),
		planner.WithNearest(c.Nearest),
	}
	if c.Seed != nil {
		opts = append(opts, planner.WithSeed(*c.Seed))
	}
	return opts
}

// NewPlanner builds the grid and a planner for the configured search. Extra
// obstacles are added to the grid first.
func (c Config) NewPlanner(extra ...planner.Obstacle) (*planner.Planner, error) {
	grid, err := c.Grid.BuildGrid()
	if err != nil {
		return nil, err
	}
	for _, o := range extra {
		grid.AddObstacle(o)
	}

	return planner.New(grid,
		c.Search.Start,
		c.Search.Goal,
		c.Search.StepSize,
		c.Search.GoalRadius,
		c.Search.Options()...,
	)
}

// obstacleConfigs converts grid obstacles back to their config form.
func obstacleConfigs(obstacles []planner.Obstacle) []ObstacleConfig {
	configs := make([]ObstacleConfig, 0, len(obstacles))
	for _, o := range obstacles {
		configs = append(configs, ObstacleConfig{
			X:      o.Location().X,
			Y:      o.Location().Y,
			Radius: o.Radius(),
		})
	}
	return configs
}
