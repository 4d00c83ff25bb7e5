package loader

import (
	"path/filepath"
	"testing"

	"aforo/pkg/datastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphSnapshotRoundTrip(t *testing.T) {
	nodes := []datastructure.Node{
		datastructure.NewNode(0, 100, 200),
		datastructure.NewNode(1, 300, 400),
	}
	edges := []datastructure.Edge{
		datastructure.NewEdge(0, 0, 1, 282.842712),
	}
	g, err := datastructure.NewGraph(nodes, edges)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "network.snap")
	require.NoError(t, SaveGraphSnapshot(path, g, 14))

	loaded, utmZone, err := LoadGraphSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, 14, utmZone)
	assert.Equal(t, g.NumNodes(), loaded.NumNodes())
	assert.Equal(t, g.NumEdges(), loaded.NumEdges())
	assert.Equal(t, g.GetOutEdge(0), loaded.GetOutEdge(0))
	assert.Equal(t, g.GetNode(1), loaded.GetNode(1))
}

func TestLoadGraphSnapshotMissingFile(t *testing.T) {
	_, _, err := LoadGraphSnapshot(filepath.Join(t.TempDir(), "nope.snap"))
	assert.Error(t, err)
}
