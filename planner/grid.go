package planner

import (
	"slices"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

const (
	defaultGridHeight = 10
	defaultGridWidth  = 10

	// MaxGridSize bounds the height and width of a grid.
	MaxGridSize = 1 << 30
)

// Grid is a rectangular map with bounds [0, width] x [0, height], inclusive,
// holding a de-duplicated collection of obstacles.
type Grid struct {
	height    int
	width     int
	obstacles []Obstacle
}

// NewGrid creates a grid with the given bounds and initial obstacles.
// Duplicate obstacles are dropped.
func NewGrid(height, width int, obstacles ...Obstacle) (*Grid, error) {
	if height < 0 || width < 0 {
		return nil, errors.New("grid bounds are negative").
			WithType(ErrTypeInvalidConfiguration).
			WithTag("height", height).
			WithTag("width", width)
	}
	if height > MaxGridSize || width > MaxGridSize {
		return nil, errors.New("grid bounds are too large").
			WithType(ErrTypeInvalidConfiguration).
			WithTag("height", height).
			WithTag("width", width).
			WithTag("max", MaxGridSize)
	}

	g := &Grid{
		height:    height,
		width:     width,
		obstacles: make([]Obstacle, 0, len(obstacles)),
	}
	for _, o := range obstacles {
		g.AddObstacle(o)
	}
	return g, nil
}

// DefaultGrid returns an empty 10x10 grid.
func DefaultGrid() *Grid {
	return &Grid{height: defaultGridHeight, width: defaultGridWidth}
}

// AddObstacle inserts an obstacle and removes value-equal duplicates. The
// order of the collection is not preserved.
func (g *Grid) AddObstacle(o Obstacle) {
	g.obstacles = append(g.obstacles, o)
	slices.SortStableFunc(g.obstacles, compareObstacles)
	g.obstacles = slices.CompactFunc(g.obstacles, Obstacle.Equal)
}

// RemoveObstacle removes every obstacle equal to o. Nothing happens when o is
// not on the grid.
func (g *Grid) RemoveObstacle(o Obstacle) {
	g.obstacles = slices.DeleteFunc(g.obstacles, o.Equal)
}

// Bounds returns the height and width of the grid.
func (g *Grid) Bounds() (height, width int) {
	return g.height, g.width
}

// Obstacles returns a copy of the obstacle collection.
func (g *Grid) Obstacles() []Obstacle {
	return slices.Clone(g.obstacles)
}

// Contains reports whether p lies inside the grid bounds.
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X <= g.width && p.Y >= 0 && p.Y <= g.height
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		height:    g.height,
		width:     g.width,
		obstacles: slices.Clone(g.obstacles),
	}
}
