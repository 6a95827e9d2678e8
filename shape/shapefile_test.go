package shape

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapefileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.shp")
	rings := []Ring{
		{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}},
		{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}},
	}

	require.NoError(t, WriteShapefile(path, rings))

	got, box, err := LoadShapefile(path)
	require.NoError(t, err)
	assert.Equal(t, rings, got)
	assert.Equal(t, Box{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, box)
}

func TestLoadShapefileMissing(t *testing.T) {
	_, _, err := LoadShapefile(filepath.Join(t.TempDir(), "missing.shp"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
