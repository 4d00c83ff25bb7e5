package loader

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"aforo/pkg/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResults(t *testing.T) {
	r1 := pipeline.NewRow(0, "1002", "1001", 250)
	r1.Veh.Veh = [6]float64{106.5, 45.6, 29.5, 25.5, 12.7, 6.3}
	r1.Veh.Total = 226.1

	r2 := pipeline.NewRow(1, "1001", "1001", 250)
	// class 4 / intrazonal rows are all zeros but keep their shape and order

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, []*pipeline.Row{r1, r2}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Origen,Destino,veh_M,veh_A,veh_B,veh_CU,veh_CAI,veh_CAII,veh_total", lines[0])
	assert.Equal(t, "1002,1001,106.5,45.6,29.5,25.5,12.7,6.3,226.1", lines[1])
	assert.Equal(t, "1001,1001,0,0,0,0,0,0,0", lines[2])
}

func TestWriteResultsNaNAsEmpty(t *testing.T) {
	r := pipeline.NewRow(0, "1002", "1001", 250)
	r.Veh.Veh = [6]float64{1, 2, math.NaN(), 4, 5, 6}
	r.Veh.Total = math.NaN()

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, []*pipeline.Row{r}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "1002,1001,1,2,,4,5,6,", lines[1])
}
