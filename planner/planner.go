// Package planner finds collision-free routes on a bounded 2D grid with
// circular obstacles using a Rapidly-exploring Random Tree. The search stops
// at the first path that reaches the goal, which is not necessarily the
// shortest one.
package planner

import (
	"context"
	"math"
	"slices"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

// safetySubsteps is the number of equal sub-steps a segment is split into
// when checking it against obstacles.
const safetySubsteps = 10

// Planner grows a search tree from start until a node lands within
// goalRadius of goal. A Planner is not safe for concurrent use.
type Planner struct {
	grid          *Grid
	start         Point
	goal          Point
	stepSize      int
	goalRadius    int
	maxIterations int
	nearestKind   string

	sampler   Sampler
	obstacles *ObstacleIndex
	nearest   NearestIndex
	tree      *tree

	path       []Point
	iterations int
}

// Stats describes the work done by a search.
type Stats struct {
	Iterations int `json:"iterations"`
	TreeNodes  int `json:"treeNodes"`
}

// New creates a planner over a copy of grid, so later changes to grid do not
// affect the search.
func New(grid *Grid, start, goal Point, stepSize, goalRadius int, opts ...Option) (*Planner, error) {
	p, err := configure(grid, start, goal, stepSize, goalRadius, opts)
	if err != nil {
		return nil, err
	}

	if p.sampler == nil {
		p.sampler = NewEntropySampler()
	}
	p.obstacles = NewObstacleIndex(p.grid.obstacles)
	p.nearest = newNearestIndex(p.nearestKind)
	p.tree = newTree(start)
	p.nearest.Insert(0, start)

	return p, nil
}

// Validate reports the error New would return for the same arguments,
// without building the sampler or the spatial indexes.
func Validate(grid *Grid, start, goal Point, stepSize, goalRadius int, opts ...Option) error {
	_, err := configure(grid, start, goal, stepSize, goalRadius, opts)
	return err
}

func configure(grid *Grid, start, goal Point, stepSize, goalRadius int, opts []Option) (*Planner, error) {
	if grid == nil {
		grid = DefaultGrid()
	}

	p := &Planner{
		grid:          grid.Clone(),
		start:         start,
		goal:          goal,
		stepSize:      stepSize,
		goalRadius:    goalRadius,
		maxIterations: DefaultMaxIterations,
		nearestKind:   NearestLinear,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Planner) validate() error {
	invalid := func(msg string) error {
		height, width := p.grid.Bounds()
		return errors.New(msg).
			WithType(ErrTypeInvalidConfiguration).
			WithTag("height", height).
			WithTag("width", width).
			WithTag("start", p.start).
			WithTag("goal", p.goal).
			WithTag("step_size", p.stepSize).
			WithTag("goal_radius", p.goalRadius)
	}

	switch {
	case p.stepSize <= 0:
		return invalid("step size must be positive")
	case p.goalRadius < 0:
		return invalid("goal radius is negative")
	case !p.grid.Contains(p.start):
		return invalid("start is outside the grid")
	case !p.grid.Contains(p.goal):
		return invalid("goal is outside the grid")
	case p.maxIterations <= 0:
		return invalid("max iterations must be positive")
	case p.nearestKind != NearestLinear && p.nearestKind != NearestRTree:
		return invalid("unknown nearest-neighbor strategy " + p.nearestKind)
	}
	return nil
}

// Search grows the tree until a node reaches the goal and returns the path
// from start to that node, both inclusive. It fails with ErrTypeNoPathFound
// when the iteration budget runs out or ctx is done first. Once a path is
// found, later calls return it again without searching.
func (p *Planner) Search(ctx context.Context) ([]Point, error) {
	if len(p.path) != 0 {
		return slices.Clone(p.path), nil
	}

	height, width := p.grid.Bounds()

	for p.iterations < p.maxIterations {
		if err := ctx.Err(); err != nil {
			return nil, p.noPathFound("search interrupted", err)
		}
		p.iterations++

		sample := p.sampler.Sample(height, width)
		id, ok := p.expand(p.nearest.Nearest(sample), sample)
		if !ok {
			continue
		}

		if p.reachedGoal(p.tree.at(id).Position) {
			p.path = p.tree.pathTo(id)

			logs.WithTag("iterations", p.iterations).
				WithTag("tree_nodes", p.tree.len()).
				WithTag("waypoints", len(p.path)).
				Debug("rrt search reached the goal")

			return slices.Clone(p.path), nil
		}
	}

	return nil, p.noPathFound("iteration budget exhausted", nil)
}

func (p *Planner) noPathFound(reason string, cause error) error {
	logs.WithTag("iterations", p.iterations).
		WithTag("tree_nodes", p.tree.len()).
		WithTag("reason", reason).
		Debug("rrt search gave up")

	err := errors.New(reason).
		WithType(ErrTypeNoPathFound).
		WithTag("iterations", p.iterations).
		WithTag("tree_nodes", p.tree.len())
	if cause != nil {
		return err.Wrap(cause)
	}
	return err
}

// expand steps from node towards target and adds the new point to the tree
// when the move is safe. It returns the id of the new node.
func (p *Planner) expand(node int, target Point) (int, bool) {
	if node < 0 {
		return -1, false
	}

	from := p.tree.at(node).Position
	next := Steer(from, target, p.stepSize)
	if !p.IsSafe(from, next) {
		return -1, false
	}

	id := p.tree.add(next, node)
	p.nearest.Insert(id, next)
	return id, true
}

func (p *Planner) reachedGoal(pos Point) bool {
	return pos.Distance(p.goal) <= float64(p.goalRadius)
}

// IsSafe reports whether moving in a straight line from one point to another
// stays within the grid and out of every obstacle. The end point and nine
// evenly spaced intermediate points are tested.
func (p *Planner) IsSafe(from, to Point) bool {
	if !p.grid.Contains(to) {
		return false
	}

	candidates := p.obstacles.QuerySegment(from, to)
	if len(candidates) == 0 {
		return true
	}

	for _, o := range candidates {
		if o.Contains(float64(to.X), float64(to.Y)) {
			return false
		}
	}

	theta := heading(from, to)
	sub := from.Distance(to) / safetySubsteps
	cos, sin := math.Cos(theta), math.Sin(theta)

	for i := 1; i < safetySubsteps; i++ {
		x := float64(from.X) + float64(i)*sub*cos
		y := float64(from.Y) + float64(i)*sub*sin
		for _, o := range candidates {
			if o.Contains(x, y) {
				return false
			}
		}
	}
	return true
}

// Path returns the path found by the last successful search, or nil.
func (p *Planner) Path() []Point {
	return slices.Clone(p.path)
}

// Tree returns a copy of the search tree. Index 0 is the root.
func (p *Planner) Tree() []Node {
	return slices.Clone(p.tree.nodes)
}

// Stats returns counters for the search so far.
func (p *Planner) Stats() Stats {
	return Stats{
		Iterations: p.iterations,
		TreeNodes:  p.tree.len(),
	}
}

// Grid returns a copy of the grid being searched.
func (p *Planner) Grid() *Grid {
	return p.grid.Clone()
}

// Start returns the root location of the tree.
func (p *Planner) Start() Point {
	return p.start
}

// Goal returns the goal location.
func (p *Planner) Goal() Point {
	return p.goal
}
