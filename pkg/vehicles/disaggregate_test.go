package vehicles

import (
	"math"
	"testing"

	"aforo/pkg/capacity"
	"aforo/pkg/congruence"
	"aforo/pkg/datastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceRecord() *capacity.Record {
	rec := &capacity.Record{Checkpoint: "2003", Sense: "4-2"}
	caps := []float64{100, 50, 30, 20, 10, 5}
	focups := []float64{1.2, 1.4, 1.3, 1.0, 1.0, 1.0}
	for c := 0; c < capacity.NumCategories; c++ {
		rec.Cap[c] = datastructure.SomeFloat(caps[c])
		rec.Focup[c] = datastructure.SomeFloat(focups[c])
	}
	rec.FA = datastructure.SomeFloat(1.1)
	return rec
}

func TestDisaggregateReference(t *testing.T) {
	rec := referenceRecord()
	require.Equal(t, 215.0, rec.CapTotal().Value)

	trips := Disaggregate(250, false, congruence.ExtremelyPossible, rec)

	assert.InDelta(t, 106.589147, trips.Veh[capacity.Moto], 1e-5)
	assert.InDelta(t, 45.681063, trips.Veh[capacity.Auto], 1e-5)
	assert.InDelta(t, 29.517764, trips.Veh[capacity.Bus], 1e-5)
	assert.InDelta(t, 25.581395, trips.Veh[capacity.CU], 1e-5)
	assert.InDelta(t, 12.790698, trips.Veh[capacity.CAI], 1e-5)
	assert.InDelta(t, 6.395349, trips.Veh[capacity.CAII], 1e-5)
	assert.InDelta(t, 226.555416, trips.Total, 1e-5)
}

func TestDisaggregateCensoredCount(t *testing.T) {
	rec := referenceRecord()

	full := Disaggregate(250, false, congruence.ExtremelyPossible, rec)
	censored := Disaggregate(1, false, congruence.ExtremelyPossible, rec)

	for c := 0; c < capacity.NumCategories; c++ {
		assert.InDelta(t, full.Veh[c]/250, censored.Veh[c], 1e-12)
	}
}

func TestDisaggregateImpossibleZeroes(t *testing.T) {
	trips := Disaggregate(250, false, congruence.Impossible, referenceRecord())
	assert.Equal(t, Trips{}, trips)

	// class 4 wins even with no capacity record at all
	trips = Disaggregate(250, false, congruence.Impossible, nil)
	assert.Equal(t, Trips{}, trips)
}

func TestDisaggregateIntrazonalZeroes(t *testing.T) {
	trips := Disaggregate(250, true, congruence.ExtremelyPossible, referenceRecord())
	assert.Equal(t, Trips{}, trips)
	assert.Equal(t, 0.0, trips.Total)
}

func TestDisaggregateNaNPropagation(t *testing.T) {
	rec := referenceRecord()
	rec.Focup[capacity.Bus] = datastructure.NoneFloat()

	trips := Disaggregate(250, false, congruence.Possible, rec)

	assert.True(t, math.IsNaN(trips.Veh[capacity.Bus]))
	assert.False(t, math.IsNaN(trips.Veh[capacity.Moto]))
	assert.True(t, math.IsNaN(trips.Total))
}

func TestDisaggregateConservation(t *testing.T) {
	rec := referenceRecord()
	trips := Disaggregate(250, false, congruence.Possible, rec)

	// sum of veh_k * focup_k / fa recovers trips_person
	recovered := 0.0
	for c := 0; c < capacity.NumCategories; c++ {
		recovered += trips.Veh[c] * rec.Focup[c].Value / rec.FA.Value
	}
	assert.InDelta(t, 250.0, recovered, 1e-9)
}

func TestDisaggregatePure(t *testing.T) {
	rec := referenceRecord()
	a := Disaggregate(250, false, congruence.ExtremelyPossible, rec)
	b := Disaggregate(250, false, congruence.ExtremelyPossible, rec)
	assert.Equal(t, a, b)
}
