package snap

import (
	"aforo/pkg/datastructure"

	"github.com/dhconnelly/rtreego"
)

const (
	nodeRectSize = 0.1 // metres, point-ish leaf rectangles
)

type nodeItem struct {
	nodeID int32
	rect   rtreego.Rect
}

func (n *nodeItem) Bounds() rtreego.Rect {
	return n.rect
}

// NodeIndex answers nearest-graph-node queries over the projected plane.
// Zone and checkpoint polygon centroids bind to their closest node through
// this index once, at construction time.
type NodeIndex struct {
	tree *rtreego.Rtree
}

func NewNodeIndex(g *datastructure.Graph) *NodeIndex {
	tree := rtreego.NewTree(2, 25, 50)
	for _, node := range g.Nodes() {
		p := rtreego.Point{node.X, node.Y}
		rect := p.ToRect(nodeRectSize)
		tree.Insert(&nodeItem{nodeID: node.ID, rect: rect})
	}
	return &NodeIndex{tree: tree}
}

// NearestNode returns the graph node closest to (x, y) by planar distance,
// or false when the index is empty.
func (idx *NodeIndex) NearestNode(x, y float64) (int32, bool) {
	item := idx.tree.NearestNeighbor(rtreego.Point{x, y})
	if item == nil {
		return -1, false
	}
	return item.(*nodeItem).nodeID, true
}
