package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCatalogue(t *testing.T) {
	csvData := `Checkpoint,Sentido
2003,4-2
2003,2-4
2030,1-3
`
	cat, err := ReadCatalogue(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.True(t, cat.Permits("2003", "4-2"))
	assert.True(t, cat.Permits("2003", "2-4"))
	assert.False(t, cat.Permits("2003", "1-3"))

	// checkpoints absent from the catalogue are unconstrained
	assert.True(t, cat.Permits("2099", "1-1"))
}

func TestReadCatalogueBadHeader(t *testing.T) {
	_, err := ReadCatalogue(strings.NewReader("a,b\n1,2\n"))
	assert.Error(t, err)
}
