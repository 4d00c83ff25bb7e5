package congruence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestE1(t *testing.T) {
	assert.InDelta(t, 1.2, E1(120, 100), 1e-12)
	assert.True(t, math.IsNaN(E1(120, 0)))
}

func TestE2Steps(t *testing.T) {
	assert.Equal(t, 1.0, E2(100, 215))
	assert.Equal(t, 1.0, E2(172, 215)) // ratio exactly 0.8
	assert.Equal(t, 0.5, E2(215, 215))
	assert.Equal(t, 0.5, E2(258, 215)) // ratio exactly 1.2
	assert.Equal(t, 0.0, E2(300, 215))
	assert.Equal(t, 0.0, E2(100, 0))
	assert.Equal(t, 0.0, E2(100, math.NaN()))
}

func TestClassifyTable(t *testing.T) {
	cases := []struct {
		name      string
		e1, e2    float64
		potential bool
		want      int
	}{
		{"no potential", 1.0, 1.0, false, Impossible},
		{"extremely possible", 1.0, 1.0, true, ExtremelyPossible},
		{"lower e1 bound class 1", 0.9, 0.8, true, ExtremelyPossible},
		{"upper e1 bound class 1", 1.2, 1.0, true, ExtremelyPossible},
		{"possible by e2", 1.0, 0.5, true, Possible},
		{"possible by e1", 1.4, 0.9, true, Possible},
		{"unlikely", 1.8, 0.0, true, Unlikely},
		{"unlikely just under 2", 1.999, 1.0, true, Unlikely},
		{"impossible detour", 2.5, 1.0, true, Impossible},
		{"impossible at exactly 2", 2.0, 0.0, true, Impossible},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.e1, c.e2, c.potential), c.name)
	}
}

func TestClassifyThresholdSlack(t *testing.T) {
	// one ULP under 0.9 still lands in class 1
	e1 := math.Nextafter(0.9, 0)
	assert.Equal(t, ExtremelyPossible, Classify(e1, 1.0, true))
}

func TestLabelsAndReasons(t *testing.T) {
	assert.Equal(t, "Extremely possible", Label(ExtremelyPossible))
	assert.Equal(t, "Impossible", Label(Impossible))

	assert.Equal(t, ReasonNoPotential, ClassReason(Impossible, false))
	assert.Equal(t, ReasonScoreOutlier, ClassReason(Impossible, true))
	assert.Equal(t, ReasonValid, ClassReason(Possible, true))
}
