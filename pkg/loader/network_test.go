package loader

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineFeature(coords [][2]float64, oneway bool) *geojson.Feature {
	line := make(orb.LineString, len(coords))
	for i, c := range coords {
		line[i] = orb.Point{c[0], c[1]}
	}
	f := geojson.NewFeature(line)
	if oneway {
		f.Properties["oneway"] = "yes"
	}
	return f
}

func TestBuildNetworkFromGeoJSON(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	// two links sharing a vertex near Mexico City
	fc.Append(lineFeature([][2]float64{{-99.1332, 19.4326}, {-99.1300, 19.4326}}, false))
	fc.Append(lineFeature([][2]float64{{-99.1300, 19.4326}, {-99.1300, 19.4360}}, true))

	g, utmZone, err := BuildNetworkFromGeoJSON(fc, 0)
	require.NoError(t, err)

	// zone auto-detected from the first coordinate
	assert.Equal(t, 14, utmZone)

	// shared vertex deduped: 3 nodes; 2 directed + 1 oneway = 3 edges
	assert.Equal(t, 3, g.NumNodes())
	assert.Equal(t, 3, g.NumEdges())

	// the first link is ~340m of longitude at this latitude
	e := g.GetOutEdge(0)
	assert.InDelta(t, 336, e.Length, 15)
}

func TestBuildNetworkEmpty(t *testing.T) {
	_, _, err := BuildNetworkFromGeoJSON(geojson.NewFeatureCollection(), 0)
	assert.Error(t, err)
}
