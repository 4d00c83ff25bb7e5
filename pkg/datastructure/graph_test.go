package datastructure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGraphSkipsSelfLoops(t *testing.T) {
	nodes := []Node{
		NewNode(0, 0, 0),
		NewNode(1, 100, 0),
	}
	edges := []Edge{
		NewEdge(0, 0, 1, 100),
		NewEdge(1, 1, 1, 5),
	}
	g, err := NewGraph(nodes, edges)
	assert.NoError(t, err)
	assert.Equal(t, 1, g.NumEdges())
	assert.Equal(t, 2, g.NumNodes())
}

func TestNewGraphRejectsInvalidLength(t *testing.T) {
	nodes := []Node{NewNode(0, 0, 0), NewNode(1, 1, 1)}

	_, err := NewGraph(nodes, []Edge{NewEdge(0, 0, 1, math.NaN())})
	assert.Error(t, err)

	_, err = NewGraph(nodes, []Edge{NewEdge(0, 0, 1, -1)})
	assert.Error(t, err)

	_, err = NewGraph(nodes, []Edge{NewEdge(0, 0, 2, 1)})
	assert.Error(t, err)
}

func TestNeighbourNodesOnPath(t *testing.T) {
	path := []int32{3, 7, 11, 7, 5}

	prev, next, ok := NeighbourNodesOnPath(path, 11)
	assert.True(t, ok)
	assert.Equal(t, int32(7), prev)
	assert.Equal(t, int32(7), next)

	// first occurrence wins
	prev, next, ok = NeighbourNodesOnPath(path, 7)
	assert.True(t, ok)
	assert.Equal(t, int32(3), prev)
	assert.Equal(t, int32(11), next)

	// boundary pivot has no neighbours
	_, _, ok = NeighbourNodesOnPath(path, 3)
	assert.False(t, ok)
	_, _, ok = NeighbourNodesOnPath(path, 5)
	assert.False(t, ok)

	_, _, ok = NeighbourNodesOnPath(path, 99)
	assert.False(t, ok)
}
