package planner

import "math"

// Point is an integer grid location.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return Distance(p, other)
}

// Distance calculates Euclidean distance between two grid points.
func Distance(a, b Point) float64 {
	return distanceF(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
}

func distanceF(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// heading returns the angle from one point towards another.
func heading(from, to Point) float64 {
	return math.Atan2(float64(to.Y-from.Y), float64(to.X-from.X))
}

// Steer moves step units from a point along the heading towards target. The
// result is truncated, not rounded, to integer coordinates.
func Steer(from, target Point, step int) Point {
	theta := heading(from, target)
	return Point{
		X: int(float64(from.X) + float64(step)*math.Cos(theta)),
		Y: int(float64(from.Y) + float64(step)*math.Sin(theta)),
	}
}

// PathLength sums the segment lengths of a path.
func PathLength(path []Point) float64 {
	var total float64
	for i := 0; i+1 < len(path); i++ {
		total += path[i].Distance(path[i+1])
	}
	return total
}
