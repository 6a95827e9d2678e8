package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLonLatToMercator(t *testing.T) {
	const maxMeters = 20037508.34

	tests := []struct {
		name     string
		lon, lat float64
		wantX    float64
		wantY    float64
	}{
		{
			name:  "Origin",
			lon:   0,
			lat:   0,
			wantX: 0,
			wantY: 0,
		},
		{
			name:  "Antimeridian east",
			lon:   180,
			lat:   0,
			wantX: maxMeters,
			wantY: 0,
		},
		{
			name:  "Top-left corner",
			lon:   -180,
			lat:   maxLat,
			wantX: -maxMeters,
			wantY: maxMeters,
		},
		{
			name:  "Latitude clamps past the pole",
			lon:   0,
			lat:   -90,
			wantX: 0,
			wantY: -maxMeters,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := LonLatToMercator(tt.lon, tt.lat)
			if math.Abs(gotX-tt.wantX) > 1 || math.Abs(gotY-tt.wantY) > 50 {
				t.Errorf("got (%f, %f); want (%f, %f)",
					gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestFit(t *testing.T) {
	rings := []Ring{{{0, 0}, {10, 0}, {10, 5}, {0, 5}}}

	got := Fit(rings, 100, 100, false)

	b := Bounds(got...)
	assert.InDelta(t, 0, b.MinX, 1e-9)
	assert.InDelta(t, 100, b.MaxX, 1e-9)
	assert.InDelta(t, 25, b.MinY, 1e-9)
	assert.InDelta(t, 75, b.MaxY, 1e-9)

	// y-up input is flipped: the first point (0,0) lands at the bottom.
	assert.InDelta(t, 75, got[0][0].Y, 1e-9)
}

func TestFitDegenerate(t *testing.T) {
	assert.Nil(t, Fit(nil, 10, 10, false))

	line := Fit([]Ring{{{0, 0}, {4, 0}}}, 8, 8, false)
	assert.InDelta(t, 8, line[0][1].X, 1e-9)
	assert.InDelta(t, 4, line[0][1].Y, 1e-9)
}

func TestFitProjected(t *testing.T) {
	rings := []Ring{{{-10, -10}, {10, -10}, {10, 10}, {-10, 10}}}
	got := Fit(rings, 200, 200, true)

	b := Bounds(got...)
	assert.InDelta(t, 200, b.Width(), 1e-6)
	assert.InDelta(t, 200, b.Height(), 1)
}
