package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"aforo/pkg/routing"
)

// LoadCatalogueCSV reads the optional catalogue of permitted sense codes per
// checkpoint: columns Checkpoint, Sentido, one permitted code per row.
func LoadCatalogueCSV(path string) (routing.Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sense catalogue: %w", err)
	}
	defer f.Close()

	cat, err := ReadCatalogue(f)
	if err != nil {
		return nil, fmt.Errorf("read sense catalogue %s: %w", path, err)
	}
	return cat, nil
}

func ReadCatalogue(r io.Reader) (routing.Catalogue, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cpCol, senseCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "checkpoint":
			cpCol = i
		case "sentido", "sense", "sense_code":
			senseCol = i
		}
	}
	if cpCol == -1 || senseCol == -1 {
		return nil, fmt.Errorf("catalogue needs Checkpoint and Sentido columns, got %v", header)
	}

	cat := routing.Catalogue{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		cp := strings.TrimSpace(record[cpCol])
		code := strings.TrimSpace(record[senseCol])
		if cp == "" || code == "" {
			continue
		}
		if cat[cp] == nil {
			cat[cp] = make(map[string]struct{})
		}
		cat[cp][code] = struct{}{}
	}
	return cat, nil
}
