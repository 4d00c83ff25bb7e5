package routing

import (
	"aforo/pkg/datastructure"
	"aforo/pkg/util"
)

type cameFromPair struct {
	Edge   datastructure.Edge
	NodeID int32
}

type RouteAlgorithm struct {
	g *datastructure.Graph
}

func NewRouteAlgorithm(g *datastructure.Graph) *RouteAlgorithm {
	return &RouteAlgorithm{g: g}
}

// ShortestPath runs Dijkstra from `from` to `to` under edge lengths. Returns
// the length in metres and the node sequence. found is false when no path
// exists. Ties on equal-length paths resolve by heap order, which is
// deterministic for a fixed graph build order.
func (rt *RouteAlgorithm) ShortestPath(from, to int32) (float64, []int32, bool) {
	if from == to {
		return 0, []int32{from}, true
	}

	pq := datastructure.NewMinHeap[int32]()

	distSoFar := make(map[int32]float64)
	distSoFar[from] = 0.0

	pq.Insert(datastructure.PriorityQueueNode[int32]{Rank: 0, Item: from})

	cameFrom := make(map[int32]cameFromPair)
	cameFrom[from] = cameFromPair{datastructure.Edge{}, -1}

	visited := make(map[int32]struct{})

	for {
		if pq.Size() == 0 {
			return 0, nil, false
		}

		current, _ := pq.ExtractMin()
		if current.Item == to {
			return distSoFar[to], rt.buildPath(from, to, cameFrom), true
		}
		if _, ok := visited[current.Item]; ok {
			continue
		}
		visited[current.Item] = struct{}{}

		for _, edgeID := range rt.g.GetNodeFirstOutEdges(current.Item) {
			edge := rt.g.GetOutEdge(edgeID)
			if _, ok := visited[edge.To]; ok {
				continue
			}

			newDist := distSoFar[current.Item] + edge.Length

			prev, ok := distSoFar[edge.To]
			if !ok {
				distSoFar[edge.To] = newDist
				pq.Insert(datastructure.PriorityQueueNode[int32]{Rank: newDist, Item: edge.To})
				cameFrom[edge.To] = cameFromPair{edge, current.Item}
			} else if newDist < prev {
				distSoFar[edge.To] = newDist
				pq.DecreaseKey(datastructure.PriorityQueueNode[int32]{Rank: newDist, Item: edge.To})
				cameFrom[edge.To] = cameFromPair{edge, current.Item}
			}
		}
	}
}

func (rt *RouteAlgorithm) buildPath(from, to int32, cameFrom map[int32]cameFromPair) []int32 {
	path := []int32{}
	curr := to
	for cameFrom[curr].NodeID != -1 {
		path = append(path, curr)
		curr = cameFrom[curr].NodeID
	}
	path = append(path, from)
	return util.ReverseG(path)
}
