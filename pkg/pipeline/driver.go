package pipeline

import (
	"context"
	"errors"
	"log"
	"math"
	"runtime"

	"aforo/pkg/cache"
	"aforo/pkg/capacity"
	"aforo/pkg/concurrent"
	"aforo/pkg/congruence"
	"aforo/pkg/datastructure"
	"aforo/pkg/routing"
	"aforo/pkg/vehicles"
)

const (
	freeFlowSpeedKMH = 40.0
)

// Config carries the optional driver knobs. Zero value is fine: worker count
// defaults to NumCPU, no cache, no metrics.
type Config struct {
	Workers int
	Cache   *cache.RouteCache
	Metrics *Metrics
}

// Driver orders the row pipeline: MC, MC2 + sense, capacity lookup,
// congruence, vehicle disaggregation. The checkpoint classification
// (directional vs aggregate) is fixed once at construction, not rechecked
// per row.
type Driver struct {
	g              *datastructure.Graph
	router         *routing.RouteAlgorithm
	capIdx         *capacity.Index
	zones          map[string]int32
	checkpointID   string
	checkpointNode int32
	directional    bool
	cat            routing.Catalogue

	cfg Config
}

func NewDriver(g *datastructure.Graph, capIdx *capacity.Index, zones map[string]int32,
	checkpointID string, checkpointNode int32, cat routing.Catalogue, cfg Config) *Driver {
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Driver{
		g:              g,
		router:         routing.NewRouteAlgorithm(g),
		capIdx:         capIdx,
		zones:          zones,
		checkpointID:   checkpointID,
		checkpointNode: checkpointNode,
		directional:    capIdx.IsDirectional(checkpointID),
		cat:            cat,
		cfg:            cfg,
	}
}

// Run executes the pipeline over the row table. Rows are partitioned
// disjointly among workers for the routing phase; classification and
// disaggregation run after all routes are in, since the capacity score
// aggregates demand across rows. Cancellation is cooperative (checked
// between rows) and discards the whole run.
func (d *Driver) Run(ctx context.Context, rows []*Row) error {
	jobs := concurrent.PartitionRowRanges(len(rows), d.cfg.Workers)

	err := concurrent.DistributeJobs(ctx, d.cfg.Workers, jobs,
		func(ctx context.Context, job concurrent.Job[concurrent.RowRangeParam]) error {
			for i := job.JobItem.Start; i < job.JobItem.End; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				d.computeRoute(rows[i])
			}
			return nil
		})
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d.classifyAndDisaggregate(rows)

	if d.cfg.Metrics != nil {
		d.cfg.Metrics.ObserveRows(rows)
	}
	return nil
}

// RunGeneral handles OD tables with no checkpoint: every vehicle count is
// deterministically zero and no routing or capacity work happens.
func (d *Driver) RunGeneral(rows []*Row) {
	for _, row := range rows {
		row.Veh = vehicles.Trips{}
	}
}

// RouteOne runs the whole pipeline for a single ad-hoc OD pair. The
// capacity score sees only this row's demand.
func (d *Driver) RouteOne(ctx context.Context, originZone, destZone string, tripsPerson int) (*Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := NewRow(0, originZone, destZone, tripsPerson)
	d.computeRoute(row)
	d.classifyAndDisaggregate([]*Row{row})
	return row, nil
}

func (d *Driver) computeRoute(row *Row) {
	originNode, originOK := d.zones[row.OriginZone]
	destNode, destOK := d.zones[row.DestZone]

	if !originOK || !destOK {
		// unbound zone: both paths are NO_PATH sentinels
		if d.directional {
			row.Sense = routing.InvalidSense()
		} else {
			row.Sense = routing.AggregateSense()
			row.Capacity = d.capIdx.Lookup(d.checkpointID, row.Sense.Code())
		}
		return
	}

	entry, cached := d.cachedRoute(originNode, destNode)
	if !cached {
		if dist, _, found := d.router.ShortestPath(originNode, destNode); found {
			entry.MCDist = dist
			entry.MCFound = true
		}
		if dist, path, found := d.router.ConstrainedShortestPath(originNode, d.checkpointNode, destNode); found {
			entry.MC2Dist = dist
			entry.MC2Found = true
			entry.MC2Path = path
		}
		d.storeRoute(originNode, destNode, entry)
	}

	if entry.MCFound {
		row.MCLength = datastructure.SomeFloat(entry.MCDist)
		row.MCTimeH = datastructure.SomeFloat(entry.MCDist / 1000.0 / freeFlowSpeedKMH)
	}

	if entry.MC2Found {
		row.MC2Length = datastructure.SomeFloat(entry.MC2Dist)
		row.MC2Path = entry.MC2Path
		row.PassesCheckpoint = routing.PassesInterior(entry.MC2Path, d.checkpointNode)
		row.Sense = routing.DeriveSense(d.g, entry.MC2Path, d.checkpointNode, d.checkpointID, d.directional, d.cat)
	} else if d.directional {
		row.Sense = routing.InvalidSense()
	} else {
		row.Sense = routing.AggregateSense()
	}

	if row.Sense.IsValid() {
		row.Capacity = d.capIdx.Lookup(d.checkpointID, row.Sense.Code())
	}
}

func (d *Driver) cachedRoute(originNode, destNode int32) (cache.RouteEntry, bool) {
	if d.cfg.Cache == nil {
		return cache.RouteEntry{}, false
	}
	entry, err := d.cfg.Cache.Get(originNode, destNode, d.checkpointNode)
	if err != nil {
		if !errors.Is(err, cache.ErrRouteNotFound) {
			log.Printf("route cache read failed: %v", err)
		}
		return cache.RouteEntry{}, false
	}
	return entry, true
}

func (d *Driver) storeRoute(originNode, destNode int32, entry cache.RouteEntry) {
	if d.cfg.Cache == nil {
		return
	}
	if err := d.cfg.Cache.Put(originNode, destNode, d.checkpointNode, entry); err != nil {
		log.Printf("route cache write failed: %v", err)
	}
}

// classifyAndDisaggregate runs the serial tail of the pipeline: the potential
// gate, demand aggregation for the capacity score, congruence classification
// and the vehicle formula.
func (d *Driver) classifyAndDisaggregate(rows []*Row) {
	// potential gate per row
	for _, row := range rows {
		capTotal := datastructure.NoneFloat()
		if row.Capacity != nil {
			capTotal = row.Capacity.CapTotal()
		}
		row.Potential = row.MCLength.Valid &&
			row.MC2Length.Valid &&
			row.Sense.IsValid() &&
			row.Capacity != nil &&
			capTotal.Valid && capTotal.Value > 0
	}

	// aggregate person demand per sense group (one checkpoint per run)
	demand := make(map[string]float64)
	for _, row := range rows {
		if row.Potential {
			demand[row.Sense.Code()] += float64(row.TripsPerson)
		}
	}

	for _, row := range rows {
		if row.Potential {
			row.E1 = congruence.E1(row.MC2Length.Value, row.MCLength.Value)
			row.E2 = congruence.E2(demand[row.Sense.Code()], row.Capacity.CapTotal().Value)
		} else {
			row.E1 = math.NaN()
			row.E2 = 0
		}

		row.CongruenceID = congruence.Classify(row.E1, row.E2, row.Potential)
		row.Veh = vehicles.Disaggregate(float64(row.TripsPerson), row.Intrazonal, row.CongruenceID, row.Capacity)
	}
}
