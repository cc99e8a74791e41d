package planner

import (
	"cmp"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Obstacle is a circular exclusion zone on the grid. It is immutable once
// constructed.
type Obstacle struct {
	center Point
	radius int
}

// NewObstacle creates an obstacle centered on (x, y). The radius is the
// exclusion distance from the center, not a diameter.
func NewObstacle(x, y, radius int) (Obstacle, error) {
	if radius < 0 {
		return Obstacle{}, errors.New("obstacle radius is negative").
			WithType(ErrTypeDegenerateObstacle).
			WithTag("x", x).
			WithTag("y", y).
			WithTag("radius", radius)
	}
	return Obstacle{center: Point{X: x, Y: y}, radius: radius}, nil
}

// Location returns the center of the obstacle.
func (o Obstacle) Location() Point {
	return o.center
}

// Radius returns the exclusion radius.
func (o Obstacle) Radius() int {
	return o.radius
}

// Equal reports whether both obstacles share center and radius.
func (o Obstacle) Equal(other Obstacle) bool {
	return o == other
}

// Less orders obstacles by radius only.
func (o Obstacle) Less(other Obstacle) bool {
	return o.radius < other.radius
}

// Contains reports whether (x, y) lies strictly inside the obstacle. A point
// exactly on the boundary is outside.
func (o Obstacle) Contains(x, y float64) bool {
	return distanceF(x, y, float64(o.center.X), float64(o.center.Y)) < float64(o.radius)
}

// compareObstacles is a total order used to make value-equal obstacles
// adjacent: radius first, then center.
func compareObstacles(a, b Obstacle) int {
	if c := cmp.Compare(a.radius, b.radius); c != 0 {
		return c
	}
	if c := cmp.Compare(a.center.X, b.center.X); c != 0 {
		return c
	}
	return cmp.Compare(a.center.Y, b.center.Y)
}
