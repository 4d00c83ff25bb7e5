package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"aforo/pkg/capacity"
	"aforo/pkg/pipeline"
)

// outputHeader is the exact output schema. No other columns are permitted.
var outputHeader = []string{
	"Origen", "Destino",
	"veh_M", "veh_A", "veh_B", "veh_CU", "veh_CAI", "veh_CAII", "veh_total",
}

func WriteResultsFile(path string, rows []*pipeline.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	return WriteResults(f, rows)
}

// WriteResults writes the vehicle-trip table in input row order.
func WriteResults(w io.Writer, rows []*pipeline.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(outputHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(outputHeader))
	for _, row := range rows {
		record[0] = row.OriginZone
		record[1] = row.DestZone
		for c := 0; c < capacity.NumCategories; c++ {
			record[2+c] = formatVeh(row.Veh.Veh[c])
		}
		record[8] = formatVeh(row.Veh.Total)

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", row.Index, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatVeh writes NaN as an empty cell, matching the tabular convention of
// the survey deliverables.
func formatVeh(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
