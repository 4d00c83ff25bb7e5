package pipeline

import (
	"aforo/pkg/capacity"
	"aforo/pkg/datastructure"
	"aforo/pkg/routing"
	"aforo/pkg/vehicles"
)

// Row is one OD observation plus every field derived while it moves through
// the pipeline. A row is owned by exactly one worker during the routing
// phase; the graph and capacity index it reads are immutable.
type Row struct {
	Index      int
	OriginZone string
	DestZone   string

	// ingest-derived
	TripsPerson int
	Intrazonal  bool

	// routing phase
	MCLength         datastructure.OptFloat
	MCTimeH          datastructure.OptFloat
	MC2Length        datastructure.OptFloat
	MC2Path          []int32
	PassesCheckpoint bool
	Sense            routing.Sense
	Capacity         *capacity.Record

	// classification phase
	E1           float64
	E2           float64
	Potential    bool
	CongruenceID int

	Veh vehicles.Trips
}

func NewRow(index int, originZone, destZone string, tripsPerson int) *Row {
	return &Row{
		Index:       index,
		OriginZone:  originZone,
		DestZone:    destZone,
		TripsPerson: tripsPerson,
		Intrazonal:  originZone == destZone,
	}
}
