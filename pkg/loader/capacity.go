package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"aforo/pkg/capacity"
	"aforo/pkg/datastructure"
)

var capacityColumns = []string{
	"Checkpoint", "Sentido", "FA",
	"M", "A", "B", "CU", "CAI", "CAII", "TOTAL",
	"Focup_M", "Focup_A", "Focup_B", "Focup_CU", "Focup_CAI", "Focup_CAII",
}

var capColNames = [capacity.NumCategories]string{"M", "A", "B", "CU", "CAI", "CAII"}
var focupColNames = [capacity.NumCategories]string{"Focup_M", "Focup_A", "Focup_B", "Focup_CU", "Focup_CAI", "Focup_CAII"}

// LoadCapacityCSV reads the station-level capacity table and aggregates it
// into the (checkpoint, sense) index. The TOTAL column is parsed but never
// used; cap_total is always recomputed from the six categories.
func LoadCapacityCSV(path string, lenient bool) (*capacity.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capacity file: %w", err)
	}
	defer f.Close()

	rows, err := ReadCapacityRows(f)
	if err != nil {
		return nil, fmt.Errorf("read capacity file %s: %w", path, err)
	}
	return capacity.BuildIndex(rows, lenient), nil
}

func ReadCapacityRows(r io.Reader) ([]capacity.RawRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, col := range header {
		cols[strings.TrimSpace(col)] = i
	}
	for _, required := range capacityColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q in capacity table", required)
		}
	}

	rows := make([]capacity.RawRow, 0)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		row := capacity.RawRow{
			Checkpoint: strings.TrimSpace(record[cols["Checkpoint"]]),
			Sense:      strings.TrimSpace(record[cols["Sentido"]]),
			FA:         parseOptFloat(record[cols["FA"]]),
		}
		for c := 0; c < capacity.NumCategories; c++ {
			row.Cap[c] = parseOptFloat(record[cols[capColNames[c]]])
			row.Focup[c] = parseOptFloat(record[cols[focupColNames[c]]])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseOptFloat keeps empty and unparseable cells missing. Missing is never
// coerced to zero.
func parseOptFloat(cell string) datastructure.OptFloat {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return datastructure.NoneFloat()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return datastructure.NoneFloat()
	}
	return datastructure.SomeFloat(v)
}
