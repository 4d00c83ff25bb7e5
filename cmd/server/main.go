package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"aforo/pkg/datastructure"
	"aforo/pkg/loader"
	"aforo/pkg/pipeline"
	"aforo/pkg/routing"
	"aforo/pkg/server"
	"aforo/pkg/server/rest"
	"aforo/pkg/server/rest/service"
	"aforo/pkg/snap"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "net/http/pprof"
)

var (
	listenAddr    = flag.String("listenaddr", ":5000", "server listen address")
	networkFile   = flag.String("network", "", "road network geojson file")
	snapshotFile  = flag.String("graph", "", "preprocessed graph snapshot")
	zonesFile     = flag.String("zones", "", "zone and checkpoint polygons geojson")
	capacityFile  = flag.String("capacity", "", "summary capacity csv")
	catalogueFile = flag.String("catalogue", "", "optional valid sense code catalogue csv")
	checkpointID  = flag.String("checkpoint", "", "checkpoint id served by this instance")
	utmZone       = flag.Int("utmzone", 0, "utm zone; 0 picks the zone of the first coordinate")
	lenient       = flag.Bool("lenient", false, "fall back to occupancy factor 1.0 when a capacity group has no weight")
)

func main() {
	flag.Parse()

	if *zonesFile == "" || *capacityFile == "" || *checkpointID == "" {
		log.Fatal("need -zones, -capacity and -checkpoint")
	}

	var (
		g    *datastructure.Graph
		zone int
		err  error
	)
	switch {
	case *snapshotFile != "":
		g, zone, err = loader.LoadGraphSnapshot(*snapshotFile)
	case *networkFile != "":
		g, zone, err = loader.LoadNetworkGeoJSON(*networkFile, *utmZone)
	default:
		log.Fatal("need -graph or -network")
	}
	if err != nil {
		log.Fatal(err)
	}

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

	checkpointNode, ok := bindings.Checkpoints[*checkpointID]
	if !ok {
		log.Fatalf("checkpoint %s has no polygon in %s", *checkpointID, *zonesFile)
	}

	reg := prometheus.NewRegistry()
	m := server.NewMetrics(reg)
	rowMetrics := pipeline.NewMetrics(reg)

	driver := pipeline.NewDriver(g, capIdx, bindings.Zones, *checkpointID, checkpointNode,
		cat, pipeline.Config{Metrics: rowMetrics})
	svc := service.NewRoutingService(driver, g)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(server.PromHTTPMiddleware(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/debug", middleware.Profiler())
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	rest.RouterOD(r, svc)

	fmt.Printf("\ncheckpoint %s ready (%d nodes, %d edges)", *checkpointID, g.NumNodes(), g.NumEdges())
	fmt.Printf("\nserver started at %s\n", *listenAddr)

	log.Fatal(http.ListenAndServe(*listenAddr, r))
}
