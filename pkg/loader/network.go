package loader

import (
	"fmt"
	"log"
	"math"
	"os"

	"aforo/pkg/datastructure"
	"aforo/pkg/geo"
	"aforo/pkg/util"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	// projected edge lengths deviating more than this from the spherical
	// distance point at a wrong UTM zone
	projectionSanityRatio = 0.05
)

// LoadNetworkGeoJSON builds the projected graph from a GeoJSON
// FeatureCollection of LineString road links. utmZone 0 picks the zone of
// the first coordinate; every coordinate is projected into that single zone.
// The zone actually used is returned so zone polygons project consistently.
func LoadNetworkGeoJSON(path string, utmZone int) (*datastructure.Graph, int, error) {
	bb, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open network file: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(bb)
	if err != nil {
		return nil, 0, fmt.Errorf("parse network geojson: %w", err)
	}
	return BuildNetworkFromGeoJSON(fc, utmZone)
}

func BuildNetworkFromGeoJSON(fc *geojson.FeatureCollection, utmZone int) (*datastructure.Graph, int, error) {
	b := newNetworkBuilder(utmZone)

	for _, f := range fc.Features {
		oneway := isOneway(f.Properties)
		switch geom := f.Geometry.(type) {
		case orb.LineString:
			b.addLine(geom, oneway)
		case orb.MultiLineString:
			for _, line := range geom {
				b.addLine(line, oneway)
			}
		default:
			// points/polygons in a network file carry no road links
		}
	}

	g, err := b.build()
	return g, b.utmZone, err
}

func isOneway(props geojson.Properties) bool {
	switch v := props["oneway"].(type) {
	case bool:
		return v
	case string:
		return v == "yes" || v == "true" || v == "1"
	default:
		return false
	}
}

type networkBuilder struct {
	utmZone  int
	nodeKeys util.IDMap
	nodes    []datastructure.Node
	edges    []datastructure.Edge
	warned   int
}

func newNetworkBuilder(utmZone int) *networkBuilder {
	return &networkBuilder{utmZone: utmZone, nodeKeys: util.NewIDMap()}
}

func (b *networkBuilder) nodeFor(lonLat orb.Point) int32 {
	if b.utmZone == 0 {
		b.utmZone = geo.UTMZone(lonLat[0])
	}
	x, y := geo.ProjectUTM(lonLat[1], lonLat[0], b.utmZone)

	// dedupe vertices to millimetre resolution
	key := fmt.Sprintf("%.3f:%.3f", x, y)
	if b.nodeKeys.Has(key) {
		return b.nodeKeys.GetID(key)
	}
	id := b.nodeKeys.GetID(key)
	b.nodes = append(b.nodes, datastructure.NewNodeLatLon(id, x, y, lonLat[1], lonLat[0]))
	return id
}

func (b *networkBuilder) addLine(line orb.LineString, oneway bool) {
	for i := 0; i < len(line)-1; i++ {
		from := b.nodeFor(line[i])
		to := b.nodeFor(line[i+1])
		if from == to {
			continue
		}

		length := geo.EuclideanDistance(
			b.nodes[from].X, b.nodes[from].Y,
			b.nodes[to].X, b.nodes[to].Y)

		sphere := geo.SphericalDistanceM(line[i][1], line[i][0], line[i+1][1], line[i+1][0])
		if sphere > 0 && math.Abs(length-sphere)/sphere > projectionSanityRatio && b.warned < 10 {
			log.Printf("projected length %.1fm deviates from spherical %.1fm; check the UTM zone", length, sphere)
			b.warned++
		}

		b.edges = append(b.edges, datastructure.NewEdge(int32(len(b.edges)), from, to, length))
		if !oneway {
			b.edges = append(b.edges, datastructure.NewEdge(int32(len(b.edges)), to, from, length))
		}
	}
}

func (b *networkBuilder) build() (*datastructure.Graph, error) {
	if len(b.nodes) == 0 {
		return nil, fmt.Errorf("network has no road links")
	}
	log.Printf("network: %d nodes, %d directed edges (utm zone %d)", len(b.nodes), len(b.edges), b.utmZone)
	return datastructure.NewGraph(b.nodes, b.edges)
}
