package shape

import (
	"math"
	"testing"
)

func BenchmarkTriangulateCircle(b *testing.B) {
	ring := make(Ring, 256)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / float64(len(ring))
		ring[i] = Point{X: math.Cos(a) * 100, Y: math.Sin(a) * 100}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Triangulate(ring); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLonLatToMercator(b *testing.B) {
	coords := [][2]float64{
		{0, 0},
		{180, maxLat},
		{-180, minLat},
		{-122.67890, 45.12345},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, c := range coords {
			LonLatToMercator(c[0], c[1])
		}
	}
}
