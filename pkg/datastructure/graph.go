package datastructure

import (
	"fmt"
	"math"
)

// Node is a road-network vertex with projected planar coordinates in metres.
// Lat/Lon keep the source WGS84 coordinate for rendering; all routing math
// happens on X/Y.
type Node struct {
	ID  int32
	X   float64
	Y   float64
	Lat float64
	Lon float64
}

func NewNode(id int32, x, y float64) Node {
	return Node{ID: id, X: x, Y: y}
}

func NewNodeLatLon(id int32, x, y, lat, lon float64) Node {
	return Node{ID: id, X: x, Y: y, Lat: lat, Lon: lon}
}

// Edge is a directed road segment. Length is metres in the projection plane.
type Edge struct {
	EdgeID int32
	From   int32
	To     int32
	Length float64
}

func NewEdge(edgeID, from, to int32, length float64) Edge {
	return Edge{EdgeID: edgeID, From: from, To: to, Length: length}
}

// Graph is the immutable projected road network. Adjacency is stored
// CSR-style: firstOutEdges[nodeID] holds indexes into outEdges. The graph is
// built once at startup and shared read-only by all row computations.
type Graph struct {
	nodes         []Node
	firstOutEdges [][]int32
	outEdges      []Edge
}

func NewGraph(nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{
		nodes:         nodes,
		firstOutEdges: make([][]int32, len(nodes)),
		outEdges:      make([]Edge, 0, len(edges)),
	}

	for _, edge := range edges {
		if int(edge.From) >= len(nodes) || int(edge.To) >= len(nodes) || edge.From < 0 || edge.To < 0 {
			return nil, fmt.Errorf("edge %d references unknown node (%d -> %d)", edge.EdgeID, edge.From, edge.To)
		}
		if math.IsNaN(edge.Length) || math.IsInf(edge.Length, 0) || edge.Length < 0 {
			return nil, fmt.Errorf("edge %d has invalid length %f", edge.EdgeID, edge.Length)
		}
		if edge.From == edge.To {
			// self loops contribute nothing to any shortest path
			continue
		}
		edgeID := int32(len(g.outEdges))
		g.outEdges = append(g.outEdges, NewEdge(edgeID, edge.From, edge.To, edge.Length))
		g.firstOutEdges[edge.From] = append(g.firstOutEdges[edge.From], edgeID)
	}
	return g, nil
}

func (g *Graph) GetNode(nodeID int32) Node {
	return g.nodes[nodeID]
}

func (g *Graph) GetNodeFirstOutEdges(nodeID int32) []int32 {
	return g.firstOutEdges[nodeID]
}

func (g *Graph) GetOutEdge(edgeID int32) Edge {
	return g.outEdges[edgeID]
}

func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumEdges() int {
	return len(g.outEdges)
}

func (g *Graph) Nodes() []Node {
	return g.nodes
}

func (g *Graph) Edges() []Edge {
	return g.outEdges
}

// NeighbourNodesOnPath returns the node immediately before and after pivot on
// path. Only the first occurrence of pivot is considered. ok is false when
// pivot is absent or sits on a path boundary.
func NeighbourNodesOnPath(path []int32, pivot int32) (prev, next int32, ok bool) {
	for i, n := range path {
		if n != pivot {
			continue
		}
		if i == 0 || i == len(path)-1 {
			return -1, -1, false
		}
		return path[i-1], path[i+1], true
	}
	return -1, -1, false
}
