package loader

import (
	"database/sql"
	"fmt"

	"aforo/pkg/capacity"
	"aforo/pkg/pipeline"

	_ "modernc.org/sqlite"
)

const createResultsTable = `
CREATE TABLE IF NOT EXISTS vehicle_trips (
	checkpoint   TEXT NOT NULL,
	row_index    INTEGER NOT NULL,
	origen       TEXT NOT NULL,
	destino      TEXT NOT NULL,
	trips_person INTEGER NOT NULL,
	sense_code   TEXT,
	congruence   INTEGER,
	veh_m        REAL,
	veh_a        REAL,
	veh_b        REAL,
	veh_cu       REAL,
	veh_cai      REAL,
	veh_caii     REAL,
	veh_total    REAL,
	PRIMARY KEY (checkpoint, row_index)
);`

// WriteResultsSQLite mirrors the output table into a sqlite database for
// downstream analysis. The CSV stays the canonical deliverable.
func WriteResultsSQLite(dbPath, checkpointID string, rows []*pipeline.Row) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite sink: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(createResultsTable); err != nil {
		return fmt.Errorf("create results table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO vehicle_trips
		(checkpoint, row_index, origen, destino, trips_person, sense_code, congruence,
		 veh_m, veh_a, veh_b, veh_cu, veh_cai, veh_caii, veh_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		args := []any{
			checkpointID, row.Index, row.OriginZone, row.DestZone,
			row.TripsPerson, row.Sense.Code(), row.CongruenceID,
		}
		for c := 0; c < capacity.NumCategories; c++ {
			args = append(args, nullableFloat(row.Veh.Veh[c]))
		}
		args = append(args, nullableFloat(row.Veh.Total))

		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert row %d: %w", row.Index, err)
		}
	}
	return tx.Commit()
}

func nullableFloat(v float64) any {
	if v != v { // NaN -> NULL
		return nil
	}
	return v
}
