package loader

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"aforo/pkg/geo"
	"aforo/pkg/snap"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ZoneBindings maps zone and checkpoint ids to their representative graph
// node: the node closest by planar distance to the polygon centroid. One id
// binds to exactly one node.
type ZoneBindings struct {
	Zones       map[string]int32
	Checkpoints map[string]int32
}

func LoadZonesGeoJSON(path string, utmZone int, idx *snap.NodeIndex) (*ZoneBindings, error) {
	bb, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open zones file: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(bb)
	if err != nil {
		return nil, fmt.Errorf("parse zones geojson: %w", err)
	}
	return BindZones(fc, utmZone, idx)
}

func BindZones(fc *geojson.FeatureCollection, utmZone int, idx *snap.NodeIndex) (*ZoneBindings, error) {
	zb := &ZoneBindings{
		Zones:       make(map[string]int32),
		Checkpoints: make(map[string]int32),
	}

	for _, f := range fc.Features {
		id := featureID(f.Properties)
		if id == "" {
			log.Printf("zone feature without id skipped")
			continue
		}

		projected := projectGeometry(f.Geometry, utmZone)
		centroid, _ := planar.CentroidArea(projected)

		nodeID, ok := idx.NearestNode(centroid[0], centroid[1])
		if !ok {
			return nil, fmt.Errorf("no graph node near zone %s", id)
		}

		if polyType(f.Properties) == "checkpoint" {
			zb.Checkpoints[id] = nodeID
		} else {
			zb.Zones[id] = nodeID
		}
	}

	if len(zb.Zones) == 0 {
		return nil, fmt.Errorf("zones file has no zone polygons")
	}
	return zb, nil
}

func featureID(props geojson.Properties) string {
	for _, key := range []string{"zone_id", "id"} {
		switch v := props[key].(type) {
		case string:
			return strings.TrimSpace(v)
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func polyType(props geojson.Properties) string {
	if v, ok := props["poly_type"].(string); ok {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return "zone"
}

func projectGeometry(g orb.Geometry, utmZone int) orb.Geometry {
	switch geom := g.(type) {
	case orb.Polygon:
		out := make(orb.Polygon, len(geom))
		for i, ring := range geom {
			out[i] = projectRing(ring, utmZone)
		}
		return out
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(geom))
		for i, poly := range geom {
			proj := make(orb.Polygon, len(poly))
			for j, ring := range poly {
				proj[j] = projectRing(ring, utmZone)
			}
			out[i] = proj
		}
		return out
	case orb.Point:
		x, y := geo.ProjectUTM(geom[1], geom[0], utmZone)
		return orb.Point{x, y}
	default:
		return geom
	}
}

func projectRing(ring orb.Ring, utmZone int) orb.Ring {
	out := make(orb.Ring, len(ring))
	for i, p := range ring {
		x, y := geo.ProjectUTM(p[1], p[0], utmZone)
		out[i] = orb.Point{x, y}
	}
	return out
}
