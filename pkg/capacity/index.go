package capacity

import (
	"aforo/pkg/datastructure"
)

// RawRow is one station-level line of the capacity table before aggregation.
type RawRow struct {
	Checkpoint string
	Sense      string

	Cap   [NumCategories]datastructure.OptFloat
	FA    datastructure.OptFloat
	Focup [NumCategories]datastructure.OptFloat
}

type key struct {
	checkpoint string
	sense      string
}

// Index is the immutable (checkpoint, sense) -> Record map. Lookup is an
// exact key match: no fallback to "0", no averaging, no symmetric-direction
// substitution.
type Index struct {
	records     map[key]*Record
	directional map[string]bool
}

// BuildIndex groups raw station rows by (checkpoint, sense) and aggregates
// each group: category capacities are summed, FA is the arithmetic mean, and
// each Focup is the mean weighted by the corresponding category capacity
// (entries with zero or missing capacity carry no weight). A group whose
// Focup weights sum to zero keeps that Focup missing unless lenient is set,
// in which case it falls back to 1.0.
func BuildIndex(rows []RawRow, lenient bool) *Index {
	type accum struct {
		cap      [NumCategories]datastructure.OptFloat
		faSum    float64
		faCount  int
		focupW   [NumCategories]float64
		weight   [NumCategories]float64
	}

	order := make([]key, 0)
	groups := make(map[key]*accum)

	for _, row := range rows {
		k := key{row.Checkpoint, row.Sense}
		acc, ok := groups[k]
		if !ok {
			acc = &accum{}
			groups[k] = acc
			order = append(order, k)
		}

		for c := 0; c < NumCategories; c++ {
			if !row.Cap[c].Valid {
				continue
			}
			if acc.cap[c].Valid {
				acc.cap[c].Value += row.Cap[c].Value
			} else {
				acc.cap[c] = datastructure.SomeFloat(row.Cap[c].Value)
			}
			if row.Focup[c].Valid && row.Cap[c].Value > 0 {
				acc.focupW[c] += row.Focup[c].Value * row.Cap[c].Value
				acc.weight[c] += row.Cap[c].Value
			}
		}
		if row.FA.Valid {
			acc.faSum += row.FA.Value
			acc.faCount++
		}
	}

	idx := &Index{
		records:     make(map[key]*Record, len(groups)),
		directional: make(map[string]bool),
	}

	for _, k := range order {
		acc := groups[k]
		rec := &Record{Checkpoint: k.checkpoint, Sense: k.sense}

		rec.Cap = acc.cap
		if acc.faCount > 0 {
			rec.FA = datastructure.SomeFloat(acc.faSum / float64(acc.faCount))
		}
		for c := 0; c < NumCategories; c++ {
			if acc.weight[c] > 0 {
				rec.Focup[c] = datastructure.SomeFloat(acc.focupW[c] / acc.weight[c])
			} else if lenient {
				rec.Focup[c] = datastructure.SomeFloat(1.0)
			}
		}

		idx.records[k] = rec
		if k.sense != "0" {
			idx.directional[k.checkpoint] = true
		}
	}
	return idx
}

// Lookup returns the record for an exact (checkpoint, sense) key, or nil.
func (idx *Index) Lookup(checkpointID, senseCode string) *Record {
	return idx.records[key{checkpointID, senseCode}]
}

// IsDirectional reports whether the checkpoint carries at least one row with
// a sense other than "0". Fixed for the run once the table is loaded.
func (idx *Index) IsDirectional(checkpointID string) bool {
	return idx.directional[checkpointID]
}

// Rows returns every aggregated record. Used by the idempotence check and
// the sqlite sink.
func (idx *Index) Rows() []*Record {
	out := make([]*Record, 0, len(idx.records))
	for _, rec := range idx.records {
		out = append(out, rec)
	}
	return out
}

func (idx *Index) Size() int {
	return len(idx.records)
}
