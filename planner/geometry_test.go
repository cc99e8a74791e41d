package planner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	origin := Point{0, 0}

	require.InDelta(t, 1.41421, Distance(origin, Point{1, 1}), 1e-4)
	require.InDelta(t, 7.07107, Distance(origin, Point{5, 5}), 1e-4)
	require.InDelta(t, 15.6205, Distance(origin, Point{10, 12}), 1e-4)
	require.Equal(t, Distance(origin, Point{10, 12}), Point{10, 12}.Distance(origin))
}

func TestSteer(t *testing.T) {
	tests := []struct {
		name   string
		from   Point
		target Point
		step   int
		want   Point
	}{
		{"diagonal", Point{0, 0}, Point{10, 10}, 5, Point{3, 3}},
		{"diagonal from 3,3", Point{3, 3}, Point{10, 10}, 5, Point{6, 6}},
		{"diagonal from 6,6", Point{6, 6}, Point{10, 10}, 5, Point{9, 9}},
		{"axis", Point{0, 0}, Point{10, 0}, 5, Point{5, 0}},
		{"overshoot", Point{0, 0}, Point{0, 2}, 5, Point{0, 5}},
		{"same point", Point{4, 4}, Point{4, 4}, 2, Point{6, 4}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, Steer(test.from, test.target, test.step))
		})
	}
}

func TestPathLength(t *testing.T) {
	require.Zero(t, PathLength(nil))
	require.Zero(t, PathLength([]Point{{1, 1}}))
	require.InDelta(t, 10.0, PathLength([]Point{{0, 0}, {3, 4}, {6, 8}}), 1e-9)
}
