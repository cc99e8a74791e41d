package planner

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50

	// pointExtent is the side of the box used to store a point in the R-tree,
	// which does not accept zero-length rects.
	pointExtent = 1e-9
)

// obstacleEntry wraps an obstacle for R-tree storage
type obstacleEntry struct {
	obstacle Obstacle
	bbox     rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *obstacleEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// ObstacleIndex answers which obstacles may collide with a segment.
type ObstacleIndex struct {
	tree *rtreego.Rtree
}

// NewObstacleIndex indexes the bounding squares of the obstacles. Obstacles
// with a zero radius contain no point and are left out.
func NewObstacleIndex(obstacles []Obstacle) *ObstacleIndex {
	tree := rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)

	for _, o := range obstacles {
		if o.radius <= 0 {
			continue
		}
		r := float64(o.radius)
		bbox, err := rtreego.NewRect(
			rtreego.Point{float64(o.center.X) - r, float64(o.center.Y) - r},
			[]float64{2 * r, 2 * r},
		)
		if err != nil {
			continue
		}
		tree.Insert(&obstacleEntry{obstacle: o, bbox: bbox})
	}

	return &ObstacleIndex{tree: tree}
}

// Len returns the number of indexed obstacles.
func (si *ObstacleIndex) Len() int {
	return si.tree.Size()
}

// QuerySegment returns the obstacles whose bounding square intersects the
// bounding box of the segment from -> to.
func (si *ObstacleIndex) QuerySegment(from, to Point) []Obstacle {
	if si.Len() == 0 {
		return nil
	}

	minX := math.Min(float64(from.X), float64(to.X)) - 0.5
	minY := math.Min(float64(from.Y), float64(to.Y)) - 0.5
	maxX := math.Max(float64(from.X), float64(to.X)) + 0.5
	maxY := math.Max(float64(from.Y), float64(to.Y)) + 0.5

	bbox, err := rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{maxX - minX, maxY - minY},
	)
	if err != nil {
		return nil
	}

	results := si.tree.SearchIntersect(bbox)
	obstacles := make([]Obstacle, 0, len(results))
	for _, item := range results {
		obstacles = append(obstacles, item.(*obstacleEntry).obstacle)
	}
	return obstacles
}

// NearestIndex finds the tree node closest to a point.
type NearestIndex interface {
	// Insert registers node id at position p.
	Insert(id int, p Point)
	// Nearest returns the id of the node closest to p, or -1 when empty.
	Nearest(p Point) int
}

// Nearest-neighbor strategies accepted by WithNearest.
const (
	NearestLinear = "linear"
	NearestRTree  = "rtree"
)

func newNearestIndex(kind string) NearestIndex {
	if kind == NearestRTree {
		return NewRTreeNearest()
	}
	return &LinearNearest{}
}

// LinearNearest scans every node. On equal distances the most recently
// inserted node wins.
type LinearNearest struct {
	positions []Point
}

// Insert implements NearestIndex. Ids must be inserted in increasing order.
func (l *LinearNearest) Insert(id int, p Point) {
	l.positions = append(l.positions, p)
}

// Nearest implements NearestIndex.
func (l *LinearNearest) Nearest(p Point) int {
	nearest := -1
	minDist := math.Inf(1)

	for i := len(l.positions) - 1; i >= 0; i-- {
		if d := p.Distance(l.positions[i]); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

type nodeEntry struct {
	id   int
	bbox rtreego.Rect
}

func (e *nodeEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// RTreeNearest keeps tree nodes in an R-tree so lookups stay logarithmic
// as the tree grows.
type RTreeNearest struct {
	tree *rtreego.Rtree
}

// NewRTreeNearest creates an empty R-tree backed nearest-neighbor index.
func NewRTreeNearest() *RTreeNearest {
	return &RTreeNearest{tree: rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)}
}

// Insert implements NearestIndex.
func (r *RTreeNearest) Insert(id int, p Point) {
	bbox, err := rtreego.NewRect(
		rtreego.Point{float64(p.X), float64(p.Y)},
		[]float64{pointExtent, pointExtent},
	)
	if err != nil {
		return
	}
	r.tree.Insert(&nodeEntry{id: id, bbox: bbox})
}

// Nearest implements NearestIndex.
func (r *RTreeNearest) Nearest(p Point) int {
	if r.tree.Size() == 0 {
		return -1
	}
	item := r.tree.NearestNeighbor(rtreego.Point{float64(p.X), float64(p.Y)})
	if item == nil {
		return -1
	}
	return item.(*nodeEntry).id
}
