package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"aforo/pkg/pipeline"
)

// direction columns are dropped at ingest: the core never reads a sense from
// the input, it derives it from the constrained path geometry.
var droppedColumns = map[string]struct{}{
	"sense":      {},
	"sentido":    {},
	"sense_code": {},
	"direction":  {},
	"direccion":  {},
}

var originAliases = map[string]struct{}{"origin_id": {}, "origin": {}, "origen": {}}
var destAliases = map[string]struct{}{"destination_id": {}, "destination": {}, "destino": {}}
var tripsAliases = map[string]struct{}{"total_trips": {}, "trips": {}, "viajes": {}}

// ODTable is one ingested OD file. CheckpointID comes from the filename
// stem; a file with no checkpoint digits is a general query whose rows get
// all-zero vehicle output with no routing work.
type ODTable struct {
	CheckpointID string
	General      bool
	SourceFile   string
	Rows         []*pipeline.Row
}

var checkpointStemRe = regexp.MustCompile(`(?i)checkpoint[^0-9]*([0-9]+)`)
var trailingDigitsRe = regexp.MustCompile(`([0-9]+)$`)

// CheckpointIDFromFilename lifts the checkpoint id from the filename stem:
// the digits after the "checkpoint" prefix, or a trailing digit run. ok is
// false for general-type files.
func CheckpointIDFromFilename(path string) (string, bool) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if m := checkpointStemRe.FindStringSubmatch(stem); m != nil {
		return m[1], true
	}
	if m := trailingDigitsRe.FindStringSubmatch(stem); m != nil {
		return m[1], true
	}
	return "", false
}

// CoerceTripCount turns a raw total_trips cell into trips_person: the
// censored literal "<10", a missing value, and anything numerically under 10
// all coerce to 1; everything else rounds to an integer.
func CoerceTripCount(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	if strings.HasPrefix(raw, "<") {
		return 1
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return 1
	}
	if v < 10 {
		return 1
	}
	return int(math.Round(v))
}

func ReadODFile(path string) (*ODTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open od file: %w", err)
	}
	defer f.Close()

	checkpointID, ok := CheckpointIDFromFilename(path)
	table, err := ReadOD(f, checkpointID, !ok)
	if err != nil {
		return nil, fmt.Errorf("read od file %s: %w", path, err)
	}
	table.SourceFile = filepath.Base(path)
	return table, nil
}

// ReadOD parses an OD CSV. Required columns after normalisation:
// origin_id, destination_id, total_trips.
func ReadOD(r io.Reader, checkpointID string, general bool) (*ODTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	originCol, destCol, tripsCol := -1, -1, -1
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		if _, drop := droppedColumns[name]; drop {
			continue
		}
		if _, ok := originAliases[name]; ok && originCol == -1 {
			originCol = i
		}
		if _, ok := destAliases[name]; ok && destCol == -1 {
			destCol = i
		}
		if _, ok := tripsAliases[name]; ok && tripsCol == -1 {
			tripsCol = i
		}
	}
	if originCol == -1 || destCol == -1 || tripsCol == -1 {
		return nil, fmt.Errorf("missing required columns (origin_id, destination_id, total_trips) in header %v", header)
	}

	table := &ODTable{CheckpointID: checkpointID, General: general}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		origin := strings.TrimSpace(record[originCol])
		dest := strings.TrimSpace(record[destCol])
		trips := CoerceTripCount(record[tripsCol])

		table.Rows = append(table.Rows, pipeline.NewRow(len(table.Rows), origin, dest, trips))
	}
	return table, nil
}
