package main

import (
	"flag"
	"log"

	"aforo/pkg/datastructure"
	"aforo/pkg/loader"
)

var (
	networkFile = flag.String("network", "", "road network geojson file")
	osmFile     = flag.String("osm", "", "road network .osm.pbf file (alternative to -network)")
	outFile     = flag.String("out", "network.snap", "output graph snapshot")
	utmZone     = flag.Int("utmzone", 0, "utm zone; 0 picks the zone of the first coordinate")
)

func main() {
	flag.Parse()

	var (
		g    *datastructure.Graph
		zone int
		err  error
	)
	switch {
	case *osmFile != "":
		g, zone, err = loader.LoadNetworkOSM(*osmFile, *utmZone)
	case *networkFile != "":
		g, zone, err = loader.LoadNetworkGeoJSON(*networkFile, *utmZone)
	default:
		log.Fatal("need -osm or -network")
	}
	if err != nil {
		log.Fatal(err)
	}

	if err := loader.SaveGraphSnapshot(*outFile, g, zone); err != nil {
		log.Fatal(err)
	}
	log.Printf("snapshot %s: %d nodes, %d edges, utm zone %d", *outFile, g.NumNodes(), g.NumEdges(), zone)
}
