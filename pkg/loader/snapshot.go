package loader

import (
	"fmt"
	"os"

	"aforo/pkg/datastructure"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

type graphSnapshot struct {
	UTMZone int
	Nodes   []datastructure.Node
	Edges   []datastructure.Edge
}

// SaveGraphSnapshot persists the projected graph as a zstd-compressed binary
// blob so engine runs skip re-parsing the network file.
func SaveGraphSnapshot(path string, g *datastructure.Graph, utmZone int) error {
	snap := graphSnapshot{
		UTMZone: utmZone,
		Nodes:   g.Nodes(),
		Edges:   g.Edges(),
	}
	encoded, err := binary.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode graph snapshot: %w", err)
	}

	var compressed []byte
	compressed, err = zstd.Compress(compressed, encoded)
	if err != nil {
		return fmt.Errorf("compress graph snapshot: %w", err)
	}
	if err := os.WriteFile(path, compressed, 0644); err != nil {
		return fmt.Errorf("write graph snapshot: %w", err)
	}
	return nil
}

func LoadGraphSnapshot(path string) (*datastructure.Graph, int, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read graph snapshot: %w", err)
	}

	var encoded []byte
	encoded, err = zstd.Decompress(encoded, compressed)
	if err != nil {
		return nil, 0, fmt.Errorf("decompress graph snapshot: %w", err)
	}

	var snap graphSnapshot
	if err := binary.Unmarshal(encoded, &snap); err != nil {
		return nil, 0, fmt.Errorf("decode graph snapshot: %w", err)
	}

	g, err := datastructure.NewGraph(snap.Nodes, snap.Edges)
	if err != nil {
		return nil, 0, fmt.Errorf("rebuild graph from snapshot: %w", err)
	}
	return g, snap.UTMZone, nil
}
