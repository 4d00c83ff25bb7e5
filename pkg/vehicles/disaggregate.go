package vehicles

import (
	"math"

	"aforo/pkg/capacity"
	"aforo/pkg/congruence"
)

// Trips holds the disaggregated vehicle counts per category plus the total.
type Trips struct {
	Veh   [capacity.NumCategories]float64
	Total float64
}

func zeroTrips() Trips {
	return Trips{}
}

// Disaggregate splits a person-trip count into vehicle trips per category:
//
//	veh_k = trips_person * fa * (cap_k / cap_total) / focup_k
//
// Gates, in order: congruence class 4 zeroes the row; an intrazonal trip
// zeroes the row; a missing cap_total, cap_k, focup_k or fa turns the
// affected categories into NaN and NaN propagates into the total. The shares
// cap_k/cap_total are used as-is, never renormalised. Pure function.
func Disaggregate(tripsPerson float64, intrazonal bool, congruenceID int, rec *capacity.Record) Trips {
	if congruenceID == congruence.Impossible {
		return zeroTrips()
	}
	if intrazonal {
		return zeroTrips()
	}

	var (
		fa       = math.NaN()
		capTotal = math.NaN()
	)
	if rec != nil {
		fa = rec.FA.OrNaN()
		capTotal = rec.CapTotal().OrNaN()
	}

	var out Trips
	total := 0.0
	anyNaN := false
	for c := 0; c < capacity.NumCategories; c++ {
		capK := math.NaN()
		focupK := math.NaN()
		if rec != nil {
			capK = rec.Cap[c].OrNaN()
			focupK = rec.Focup[c].OrNaN()
		}

		veh := tripsPerson * fa * (capK / capTotal) / focupK
		out.Veh[c] = veh
		if math.IsNaN(veh) {
			anyNaN = true
		} else {
			total += veh
		}
	}

	if anyNaN {
		out.Total = math.NaN()
	} else {
		out.Total = total
	}
	return out
}
