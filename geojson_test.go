package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"

	"rrt-planner/planner"
)

const obstaclesGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [5, 6]}, "properties": {"radius": 2}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [9.6, 3.2]}, "properties": {"radius": 1.5}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 1]}, "properties": {}},
    {"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}, "properties": {"radius": 1}}
  ]
}`

func TestParseObstaclesGeoJSON(t *testing.T) {
	obstacles, err := ParseObstaclesGeoJSON([]byte(obstaclesGeoJSON))
	require.NoError(t, err)
	require.Equal(t, []planner.Obstacle{
		mustObstacle(5, 6, 2),
		mustObstacle(10, 3, 2),
	}, obstacles)
}

func TestParseObstaclesGeoJSONErrors(t *testing.T) {
	_, err := ParseObstaclesGeoJSON([]byte("not json"))
	require.Error(t, err)

	_, err = ParseObstaclesGeoJSON([]byte(`{"type": "FeatureCollection", "features": [
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [5, 6]}, "properties": {"radius": -2}}
	]}`))
	require.Error(t, err)
	require.True(t, errors.IsType(err, planner.ErrTypeDegenerateObstacle))
}

func TestLoadObstaclesGeoJSON(t *testing.T) {
	obstacles, err := LoadObstaclesGeoJSON(writeFile(t, "obstacles.geojson", obstaclesGeoJSON))
	require.NoError(t, err)
	require.Len(t, obstacles, 2)

	_, err = LoadObstaclesGeoJSON(filepath.Join(t.TempDir(), "missing.geojson"))
	require.Error(t, err)
}

func TestPathFeatureCollection(t *testing.T) {
	path := []planner.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}
	obstacles := []planner.Obstacle{mustObstacle(15, 15, 3)}

	fc := PathFeatureCollection(path, obstacles)
	require.Len(t, fc.Features, 2)

	line, ok := fc.Features[0].Geometry.(orb.LineString)
	require.True(t, ok)
	require.Equal(t, orb.LineString{{0, 0}, {3, 4}}, line)
	require.Equal(t, kindPath, fc.Features[0].Properties[kindProperty])
	require.Equal(t, 2, fc.Features[0].Properties["waypoints"])
	require.Equal(t, orb.Point{15, 15}, fc.Features[1].Geometry)
}

func TestWritePathGeoJSONRoundTrip(t *testing.T) {
	obstacles := []planner.Obstacle{
		mustObstacle(15, 15, 3),
		mustObstacle(4, 9, 1),
	}

	var buf bytes.Buffer
	require.NoError(t, WritePathGeoJSON(&buf, []planner.Point{{X: 0, Y: 0}, {X: 3, Y: 3}}, obstacles))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)

	// The path feature has no radius and is skipped when loading obstacles.
	loaded, err := ParseObstaclesGeoJSON(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, obstacles, loaded)
}
