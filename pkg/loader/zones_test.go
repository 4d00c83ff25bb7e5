package loader

import (
	"testing"

	"aforo/pkg/geo"
	"aforo/pkg/snap"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func polygonFeature(id string, polyType string, center [2]float64, half float64) *geojson.Feature {
	ring := orb.Ring{
		{center[0] - half, center[1] - half},
		{center[0] + half, center[1] - half},
		{center[0] + half, center[1] + half},
		{center[0] - half, center[1] + half},
		{center[0] - half, center[1] - half},
	}
	f := geojson.NewFeature(orb.Polygon{ring})
	f.Properties["zone_id"] = id
	if polyType != "" {
		f.Properties["poly_type"] = polyType
	}
	return f
}

func TestBindZones(t *testing.T) {
	// network with two far-apart endpoints
	fc := geojson.NewFeatureCollection()
	fc.Append(lineFeature([][2]float64{{-99.1332, 19.4326}, {-99.1000, 19.4326}}, false))

	utmZone := geo.UTMZone(-99.1332)
	g, _, err := BuildNetworkFromGeoJSON(fc, utmZone)
	require.NoError(t, err)
	idx := snap.NewNodeIndex(g)

	zonesFC := geojson.NewFeatureCollection()
	zonesFC.Append(polygonFeature("1002", "", [2]float64{-99.1332, 19.4326}, 0.001))
	zonesFC.Append(polygonFeature("1001", "", [2]float64{-99.1000, 19.4326}, 0.001))
	zonesFC.Append(polygonFeature("2003", "checkpoint", [2]float64{-99.1000, 19.4326}, 0.0005))

	zb, err := BindZones(zonesFC, utmZone, idx)
	require.NoError(t, err)

	require.Len(t, zb.Zones, 2)
	require.Len(t, zb.Checkpoints, 1)

	// each polygon binds to the node its centroid is nearest to
	assert.NotEqual(t, zb.Zones["1002"], zb.Zones["1001"])
	assert.Equal(t, zb.Zones["1001"], zb.Checkpoints["2003"])
}

func TestBindZonesNumericID(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(lineFeature([][2]float64{{-99.1332, 19.4326}, {-99.1000, 19.4326}}, false))

	utmZone := geo.UTMZone(-99.1332)
	g, _, err := BuildNetworkFromGeoJSON(fc, utmZone)
	require.NoError(t, err)
	idx := snap.NewNodeIndex(g)

	zonesFC := geojson.NewFeatureCollection()
	f := polygonFeature("", "", [2]float64{-99.1332, 19.4326}, 0.001)
	f.Properties["zone_id"] = 1001.0 // numeric ids stringify
	zonesFC.Append(f)

	zb, err := BindZones(zonesFC, utmZone, idx)
	require.NoError(t, err)
	_, ok := zb.Zones["1001"]
	assert.True(t, ok)
}
