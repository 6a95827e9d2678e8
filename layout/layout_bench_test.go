package layout

import "testing"

func BenchmarkNormalizeGrid(b *testing.B) {
	grid := &Grid{Rows: 8, Columns: 8, Width: 1920, Height: 1080}
	size := Size{Width: 1920, Height: 1080}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		props := map[string]any{"grid_cell": i % 64, "width": "80%", "height": "auto"}
		if err := Normalize(props, size, grid); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResolve(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Resolve("37.5%", 1920)
	}
}
