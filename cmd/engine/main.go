package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"aforo/pkg/cache"
	"aforo/pkg/datastructure"
	"aforo/pkg/loader"
	"aforo/pkg/pipeline"
	"aforo/pkg/routing"
	"aforo/pkg/snap"
	"aforo/pkg/util"

	"github.com/dgraph-io/badger/v4"
)

var (
	networkFile   = flag.String("network", "", "road network geojson file")
	osmFile       = flag.String("osm", "", "road network .osm.pbf file (alternative to -network)")
	snapshotFile  = flag.String("graph", "", "preprocessed graph snapshot (see cmd/preprocess)")
	zonesFile     = flag.String("zones", "", "zone and checkpoint polygons geojson")
	capacityFile  = flag.String("capacity", "", "summary capacity csv")
	catalogueFile = flag.String("catalogue", "", "optional valid sense code catalogue csv")
	odFile        = flag.String("od", "", "origin-destination csv (checkpoint id taken from the filename)")
	outFile       = flag.String("out", "vehicle_trips.csv", "output csv")
	sqliteFile    = flag.String("sqlite", "", "optional sqlite sink for the result table")
	cacheDir      = flag.String("cachedir", "", "optional badger route cache directory")
	utmZone       = flag.Int("utmzone", 0, "utm zone; 0 picks the zone of the first coordinate")
	workers       = flag.Int("workers", 0, "routing workers; 0 uses all cpus")
	lenient       = flag.Bool("lenient", false, "fall back to occupancy factor 1.0 when a capacity group has no weight")
)

func main() {
	flag.Parse()

	if *odFile == "" || *capacityFile == "" || *zonesFile == "" {
		log.Fatal("need -od, -capacity and -zones")
	}

	g, zone := loadGraph()

	nodeIdx := snap.NewNodeIndex(g)
	bindings, err := loader.LoadZonesGeoJSON(*zonesFile, zone, nodeIdx)
	if err != nil {
		log.Fatal(err)
	}

	capIdx, err := loader.LoadCapacityCSV(*capacityFile, *lenient)
	if err != nil {
		log.Fatal(err)
	}

	var cat routing.Catalogue
	if *catalogueFile != "" {
		cat, err = loader.LoadCatalogueCSV(*catalogueFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	table, err := loader.ReadODFile(*odFile)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("od table %s: %d rows, checkpoint %q", table.SourceFile, len(table.Rows), table.CheckpointID)

	cfg := pipeline.Config{Workers: *workers}
	if *cacheDir != "" {
		db, err := badger.Open(badger.DefaultOptions(*cacheDir).WithLogger(nil))
		if err != nil {
			log.Fatal(err)
		}
		routeCache := cache.NewRouteCache(db, table.CheckpointID)
		defer routeCache.Close()
		cfg.Cache = routeCache
	}

	if table.General {
		// general queries do no routing or capacity work
		driver := pipeline.NewDriver(g, capIdx, bindings.Zones, "", -1, nil, cfg)
		driver.RunGeneral(table.Rows)
		writeOutputs(table, "")
		return
	}

	checkpointNode, ok := bindings.Checkpoints[table.CheckpointID]
	if !ok {
		log.Fatalf("checkpoint %s has no polygon in %s", table.CheckpointID, *zonesFile)
	}

	driver := pipeline.NewDriver(g, capIdx, bindings.Zones, table.CheckpointID, checkpointNode, cat, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := driver.Run(ctx, table.Rows); err != nil {
		// a cancelled run produces no output csv
		log.Fatalf("pipeline aborted: %v", err)
	}

	writeOutputs(table, table.CheckpointID)
}

func loadGraph() (*datastructure.Graph, int) {
	switch {
	case *snapshotFile != "":
		g, zone, err := loader.LoadGraphSnapshot(*snapshotFile)
		if err != nil {
			log.Fatal(err)
		}
		return g, zone
	case *osmFile != "":
		g, zone, err := loader.LoadNetworkOSM(*osmFile, *utmZone)
		if err != nil {
			log.Fatal(err)
		}
		return g, zone
	case *networkFile != "":
		g, zone, err := loader.LoadNetworkGeoJSON(*networkFile, *utmZone)
		if err != nil {
			log.Fatal(err)
		}
		return g, zone
	default:
		log.Fatal("need one of -graph, -osm or -network")
		return nil, 0
	}
}

func writeOutputs(table *loader.ODTable, checkpointID string) {
	if err := loader.WriteResultsFile(*outFile, table.Rows); err != nil {
		log.Fatal(err)
	}

	totals := make([]float64, 0, len(table.Rows))
	for _, row := range table.Rows {
		if row.Veh.Total == row.Veh.Total {
			totals = append(totals, row.Veh.Total)
		}
	}
	log.Printf("wrote %d rows to %s (%.1f vehicles)", len(table.Rows), *outFile, util.SumG(totals))

	if *sqliteFile != "" {
		if err := loader.WriteResultsSQLite(*sqliteFile, checkpointID, table.Rows); err != nil {
			log.Fatal(err)
		}
	}
}
