package shape

import (
	"fmt"

	"github.com/jonas-p/go-shp"
)

// LoadShapefile reads every polygon and polyline part of the .shp file at
// path as a ring. Point and multipoint records are ignored.
func LoadShapefile(path string) ([]Ring, Box, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, Box{}, err
	}
	defer r.Close()

	var rings []Ring
	for r.Next() {
		_, s := r.Shape()
		parts, points, ok := partsOf(s)
		if !ok {
			continue
		}
		rings = append(rings, splitParts(parts, points)...)
	}
	if err := r.Err(); err != nil {
		return nil, Box{}, fmt.Errorf("%s: %w", path, err)
	}
	return rings, Bounds(rings...), nil
}

// WriteShapefile stores rings as a single polygon record at path.
func WriteShapefile(path string, rings []Ring) error {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return err
	}
	defer w.Close()

	parts := make([][]shp.Point, len(rings))
	for i, ring := range rings {
		pts := make([]shp.Point, len(ring))
		for j, p := range ring {
			pts[j] = shp.Point{X: p.X, Y: p.Y}
		}
		parts[i] = pts
	}
	poly := shp.Polygon(*shp.NewPolyLine(parts))
	w.Write(&poly)
	return nil
}

func partsOf(s shp.Shape) ([]int32, []shp.Point, bool) {
	switch v := s.(type) {
	case *shp.Polygon:
		return v.Parts, v.Points, true
	case *shp.PolyLine:
		return v.Parts, v.Points, true
	case *shp.PolygonZ:
		return v.Parts, v.Points, true
	case *shp.PolyLineZ:
		return v.Parts, v.Points, true
	case *shp.PolygonM:
		return v.Parts, v.Points, true
	case *shp.PolyLineM:
		return v.Parts, v.Points, true
	}
	return nil, nil, false
}

func splitParts(parts []int32, points []shp.Point) []Ring {
	rings := make([]Ring, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || end > int32(len(points)) || start >= end {
			continue
		}
		ring := make(Ring, 0, end-start)
		for _, p := range points[start:end] {
			ring = append(ring, Point{X: p.X, Y: p.Y})
		}
		rings = append(rings, ring)
	}
	return rings
}
