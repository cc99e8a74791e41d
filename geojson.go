package main

import (
	"io"
	"math"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"rrt-planner/planner"
)

const (
	radiusProperty = "radius"
	kindProperty   = "kind"

	kindPath     = "path"
	kindObstacle = "obstacle"
)

// LoadObstaclesGeoJSON reads circular obstacles from a GeoJSON
// FeatureCollection. Each obstacle is a Point feature with a numeric "radius"
// property; other geometries are skipped.
func LoadObstaclesGeoJSON(filename string) ([]planner.Obstacle, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.New("reading obstacles failed").
			WithTag("file", filename).
			Wrap(err)
	}

	obstacles, err := ParseObstaclesGeoJSON(data)
	if err != nil {
		return nil, errors.New("parsing obstacles failed").
			WithTag("file", filename).
			Wrap(err)
	}

	logs.WithTag("file", filename).
		WithTag("obstacles", len(obstacles)).
		Info("obstacles loaded")
	return obstacles, nil
}

// ParseObstaclesGeoJSON converts the Point features of a FeatureCollection
// into obstacles. Centers are rounded to the grid and radii rounded up.
func ParseObstaclesGeoJSON(data []byte) ([]planner.Obstacle, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	var obstacles []planner.Obstacle
	for i, f := range fc.Features {
		point, ok := f.Geometry.(orb.Point)
		if !ok {
			geometry := "null"
			if f.Geometry != nil {
				geometry = f.Geometry.GeoJSONType()
			}
			logs.WithTag("feature", i).
				WithTag("geometry", geometry).
				Warn("skipping non-point obstacle feature")
			continue
		}

		radius, ok := f.Properties[radiusProperty].(float64)
		if !ok {
			logs.WithTag("feature", i).Warn("skipping obstacle feature without radius")
			continue
		}

		o, err := planner.NewObstacle(
			int(math.Round(point.X())),
			int(math.Round(point.Y())),
			int(math.Ceil(radius)),
		)
		if err != nil {
			return nil, errors.New("invalid obstacle feature").
				WithTag("feature", i).
				Wrap(err)
		}
		obstacles = append(obstacles, o)
	}
	return obstacles, nil
}

// PathFeatureCollection encodes a path as a LineString feature followed by
// one Point feature per obstacle.
func PathFeatureCollection(path []planner.Point, obstacles []planner.Obstacle) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	line := make(orb.LineString, 0, len(path))
	for _, p := range path {
		line = append(line, orb.Point{float64(p.X), float64(p.Y)})
	}
	pathFeature := geojson.NewFeature(line)
	pathFeature.Properties[kindProperty] = kindPath
	pathFeature.Properties["waypoints"] = len(path)
	pathFeature.Properties["length"] = planner.PathLength(path)
	fc.Append(pathFeature)

	for _, o := range obstacles {
		c := o.Location()
		f := geojson.NewFeature(orb.Point{float64(c.X), float64(c.Y)})
		f.Properties[kindProperty] = kindObstacle
		f.Properties[radiusProperty] = o.Radius()
		fc.Append(f)
	}
	return fc
}

// WritePathGeoJSON writes the FeatureCollection built by PathFeatureCollection.
func WritePathGeoJSON(w io.Writer, path []planner.Point, obstacles []planner.Obstacle) error {
	data, err := PathFeatureCollection(path, obstacles).MarshalJSON()
	if err != nil {
		return errors.New("encoding path failed").Wrap(err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.New("writing path failed").Wrap(err)
	}
	return nil
}
