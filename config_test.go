package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"

	"rrt-planner/planner"
)

func writeFile(t *testing.T, name, content string) string {
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}

func mustObstacle(x, y, radius int) planner.Obstacle {
	o, err := planner.NewObstacle(x, y, radius)
	if err != nil {
		panic(err)
	}
	return o
}

func TestDefaultConfig(t *testing.T) {
	conf := DefaultConfig()
	require.NoError(t, conf.Validate())

	grid, err := conf.Grid.BuildGrid()
	require.NoError(t, err)

	height, width := grid.Bounds()
	require.Equal(t, 15, height)
	require.Equal(t, 15, width)
	require.Equal(t, []planner.Obstacle{mustObstacle(15, 15, 3)}, grid.Obstacles())
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty filename", func(t *testing.T) {
		conf, err := LoadConfig("")
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), conf)
	})

	t.Run("overlay", func(t *testing.T) {
		filename := writeFile(t, "config.yaml", `
grid:
  height: 30
  width: 40
  obstacles:
    - {x: 10, y: 10, radius: 4}
    - {x: 20, y: 5, radius: 2}
search:
  goal: {x: 35, y: 25}
  step_size: 3
  seed: 9
  nearest: rtree
server:
  search_timeout: 2s
log_level: debug
`)

		conf, err := LoadConfig(filename)
		require.NoError(t, err)

		require.Equal(t, 30, conf.Grid.Height)
		require.Equal(t, 40, conf.Grid.Width)
		require.Len(t, conf.Grid.Obstacles, 2)
		require.Equal(t, planner.Point{X: 0, Y: 0}, conf.Search.Start)
		require.Equal(t, planner.Point{X: 35, Y: 25}, conf.Search.Goal)
		require.Equal(t, 3, conf.Search.StepSize)
		require.Equal(t, 5, conf.Search.GoalRadius)
		require.Equal(t, planner.NearestRTree, conf.Search.Nearest)
		require.NotNil(t, conf.Search.Seed)
		require.Equal(t, uint64(9), *conf.Search.Seed)
		require.Equal(t, 2*time.Second, conf.Server.SearchTimeout)
		require.Equal(t, ":8080", conf.Server.Addr)
		require.Equal(t, "debug", conf.LogLevel)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "config.yaml", "grid: [1, 2"))
		require.Error(t, err)
	})

	t.Run("invalid search", func(t *testing.T) {
		conf, err := LoadConfig(writeFile(t, "config.yaml", "search:\n  step_size: 0\n"))
		require.NoError(t, err)
		require.True(t, errors.IsType(conf.Validate(), planner.ErrTypeInvalidConfiguration))
	})

	t.Run("negative obstacle radius", func(t *testing.T) {
		filename := writeFile(t, "config.yaml", "grid:\n  obstacles:\n    - {x: 3, y: 3, radius: -2}\n")
		conf, err := LoadConfig(filename)
		require.NoError(t, err)
		require.True(t, errors.IsType(conf.Validate(), planner.ErrTypeDegenerateObstacle))
	})
}

func TestConfigValidateStartInsideObstacle(t *testing.T) {
	conf := DefaultConfig()
	conf.Grid.Obstacles = []ObstacleConfig{{X: 1, Y: 1, Radius: 3}}
	require.NoError(t, conf.Validate())
}

func TestConfigValidateServer(t *testing.T) {
	conf := DefaultConfig()
	conf.Server.Addr = ""
	require.True(t, errors.IsType(conf.Validate(), planner.ErrTypeInvalidConfiguration))

	conf = DefaultConfig()
	conf.Server.SearchTimeout = 0
	require.True(t, errors.IsType(conf.Validate(), planner.ErrTypeInvalidConfiguration))
}

func TestConfigNewPlannerWithExtraObstacles(t *testing.T) {
	conf := DefaultConfig()

	p, err := conf.NewPlanner(mustObstacle(5, 5, 1), mustObstacle(15, 15, 3))
	require.NoError(t, err)
	require.Len(t, p.Grid().Obstacles(), 2)
	require.False(t, p.IsSafe(planner.Point{X: 4, Y: 4}, planner.Point{X: 6, Y: 6}))
}

func TestObstacleConfigs(t *testing.T) {
	configs := obstacleConfigs([]planner.Obstacle{mustObstacle(1, 2, 3)})
	require.Equal(t, []ObstacleConfig{{X: 1, Y: 2, Radius: 3}}, configs)
}
