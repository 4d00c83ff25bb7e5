package loader

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"aforo/pkg/datastructure"
	"aforo/pkg/geo"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

var skipHighway = map[string]struct{}{
	"footway":      {},
	"construction": {},
	"cycleway":     {},
	"path":         {},
	"pedestrian":   {},
	"steps":        {},
	"bridleway":    {},
	"corridor":     {},
	"platform":     {},
	"proposed":     {},
}

type osmWay struct {
	nodeIDs []int64
	oneway  bool
}

// LoadNetworkOSM builds the projected graph from an .osm.pbf extract.
// Two passes over the file: ways first to learn which nodes roads use, then
// nodes for their coordinates.
func LoadNetworkOSM(path string, utmZone int) (*datastructure.Graph, int, error) {
	ways, usedNodes, err := scanWays(path)
	if err != nil {
		return nil, 0, err
	}
	coords, err := scanNodeCoords(path, usedNodes)
	if err != nil {
		return nil, 0, err
	}

	b := newNetworkBuilder(utmZone)
	for _, way := range ways {
		for i := 0; i < len(way.nodeIDs)-1; i++ {
			c1, ok1 := coords[way.nodeIDs[i]]
			c2, ok2 := coords[way.nodeIDs[i+1]]
			if !ok1 || !ok2 {
				continue
			}
			from := b.nodeFor(orb.Point(c1))
			to := b.nodeFor(orb.Point(c2))
			if from == to {
				continue
			}
			length := geo.EuclideanDistance(
				b.nodes[from].X, b.nodes[from].Y,
				b.nodes[to].X, b.nodes[to].Y)
			b.edges = append(b.edges, datastructure.NewEdge(int32(len(b.edges)), from, to, length))
			if !way.oneway {
				b.edges = append(b.edges, datastructure.NewEdge(int32(len(b.edges)), to, from, length))
			}
		}
	}
	g, err := b.build()
	return g, b.utmZone, err
}

func scanWays(path string) ([]osmWay, map[int64]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open osm file: %w", err)
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, runtime.GOMAXPROCS(-1))
	defer scanner.Close()

	ways := make([]osmWay, 0)
	used := make(map[int64]struct{})

	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		highway := way.Tags.Find("highway")
		if highway == "" {
			continue
		}
		if _, skip := skipHighway[highway]; skip {
			continue
		}

		nodeIDs := make([]int64, 0, len(way.Nodes))
		for _, wn := range way.Nodes {
			nodeIDs = append(nodeIDs, int64(wn.ID))
			used[int64(wn.ID)] = struct{}{}
		}
		ways = append(ways, osmWay{
			nodeIDs: nodeIDs,
			oneway:  way.Tags.Find("oneway") == "yes",
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan osm ways: %w", err)
	}
	return ways, used, nil
}

func scanNodeCoords(path string, used map[int64]struct{}) (map[int64][2]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open osm file: %w", err)
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, runtime.GOMAXPROCS(-1))
	defer scanner.Close()

	coords := make(map[int64][2]float64, len(used))
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, want := used[int64(node.ID)]; !want {
			continue
		}
		coords[int64(node.ID)] = [2]float64{node.Lon, node.Lat}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan osm nodes: %w", err)
	}
	return coords, nil
}
