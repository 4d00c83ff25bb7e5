package service

import (
	"context"
	"testing"

	"aforo/pkg/capacity"
	"aforo/pkg/datastructure"
	"aforo/pkg/pipeline"
	"aforo/pkg/routing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildServiceFixture(t *testing.T) *RoutingService {
	nodes := []datastructure.Node{
		datastructure.NewNodeLatLon(0, 0, 200, 19.4344, -99.1332), // O
		datastructure.NewNodeLatLon(1, 0, 100, 19.4335, -99.1332), // A
		datastructure.NewNodeLatLon(2, 0, 0, 19.4326, -99.1332),   // cp
		datastructure.NewNodeLatLon(3, 100, 0, 19.4326, -99.1322), // B
		datastructure.NewNodeLatLon(4, 200, 0, 19.4326, -99.1313), // D
	}
	edges := []datastructure.Edge{
		datastructure.NewEdge(0, 0, 1, 100),
		datastructure.NewEdge(1, 1, 2, 100),
		datastructure.NewEdge(2, 2, 3, 100),
		datastructure.NewEdge(3, 3, 4, 100),
	}
	g, err := datastructure.NewGraph(nodes, edges)
	require.NoError(t, err)

	capRow := capacity.RawRow{Checkpoint: "2003", Sense: "4-2", FA: datastructure.SomeFloat(1.1)}
	caps := []float64{100, 50, 30, 20, 10, 5}
	focups := []float64{1.2, 1.4, 1.3, 1.0, 1.0, 1.0}
	for c := 0; c < capacity.NumCategories; c++ {
		capRow.Cap[c] = datastructure.SomeFloat(caps[c])
		capRow.Focup[c] = datastructure.SomeFloat(focups[c])
	}
	capIdx := capacity.BuildIndex([]capacity.RawRow{capRow}, false)

	zones := map[string]int32{"1002": 0, "1001": 4}
	driver := pipeline.NewDriver(g, capIdx, zones, "2003", 2, routing.Catalogue{"2003": {"4-2": {}}}, pipeline.Config{})

	return NewRoutingService(driver, g)
}

func TestRouteOD(t *testing.T) {
	svc := buildServiceFixture(t)

	res, err := svc.RouteOD(context.Background(), "1002", "1001", 250)
	require.NoError(t, err)

	assert.Equal(t, "4-2", res.SenseCode)
	assert.True(t, res.PassesCheckpoint)
	require.NotNil(t, res.MCDistanceM)
	require.NotNil(t, res.MC2DistanceM)
	assert.Equal(t, 400.0, *res.MCDistanceM)
	assert.Equal(t, 400.0, *res.MC2DistanceM)
	assert.NotEqual(t, 4, res.CongruenceID)
	assert.NotEmpty(t, res.CongruenceLabel)
	assert.InDelta(t, 226.555415, res.VehTotal, 1e-5)
	assert.NotEmpty(t, res.PathPolyline)
}

func TestRouteODUnboundZone(t *testing.T) {
	svc := buildServiceFixture(t)

	res, err := svc.RouteOD(context.Background(), "9999", "1001", 250)
	require.NoError(t, err)

	assert.Nil(t, res.MCDistanceM)
	assert.Nil(t, res.MC2DistanceM)
	assert.Equal(t, 4, res.CongruenceID)
	assert.Equal(t, "Impossible", res.CongruenceLabel)
	assert.Equal(t, 0.0, res.VehTotal)
	assert.Empty(t, res.PathPolyline)
}
