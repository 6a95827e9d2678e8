package shape

import (
	"errors"
	"fmt"
	"math"

	earcut "github.com/flywave/go-earcut"
)

var (
	ErrDegenerate   = errors.New("ring needs at least three points")
	ErrTooManyVerts = errors.New("too many vertices for a 16-bit index buffer")
)

// Mesh is a triangle list ready for ebiten.DrawTriangles.
type Mesh struct {
	// Vertices holds x, y pairs.
	Vertices []float32
	Indices  []uint16
}

// Triangulate fills outer, minus holes, with triangles.
func Triangulate(outer Ring, holes ...Ring) (Mesh, error) {
	outer = outer.Open()
	if len(outer) < 3 {
		return Mesh{}, ErrDegenerate
	}

	total := len(outer)
	for _, h := range holes {
		total += len(h.Open())
	}
	if total > math.MaxUint16 {
		return Mesh{}, fmt.Errorf("%w: %d", ErrTooManyVerts, total)
	}

	data := make([]float64, 0, total*2)
	var holeIndices []int
	data = appendRing(data, outer)
	for _, h := range holes {
		h = h.Open()
		if len(h) < 3 {
			continue
		}
		holeIndices = append(holeIndices, len(data)/2)
		data = appendRing(data, h)
	}

	indices, err := earcut.Earcut(data, holeIndices, 2)
	if err != nil {
		return Mesh{}, err
	}

	m := Mesh{
		Vertices: make([]float32, len(data)),
		Indices:  make([]uint16, len(indices)),
	}
	for i, v := range data {
		m.Vertices[i] = float32(v)
	}
	for i, idx := range indices {
		m.Indices[i] = uint16(idx)
	}
	return m, nil
}

func appendRing(data []float64, r Ring) []float64 {
	for _, p := range r {
		data = append(data, p.X, p.Y)
	}
	return data
}
