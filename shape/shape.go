// Package shape holds the polygon geometry behind outline components:
// triangulation, shapefile loading and projection into a pixel box.
package shape

import "math"

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Ring is a closed outline. The closing point may be omitted.
type Ring []Point

// Box is an axis-aligned bounding box.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Box) Width() float64  { return b.MaxX - b.MinX }
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Empty reports whether the box encloses no points.
func (b Box) Empty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY }

func emptyBox() Box {
	return Box{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// Bounds returns the bounding box of all rings.
func Bounds(rings ...Ring) Box {
	b := emptyBox()
	for _, r := range rings {
		for _, p := range r {
			b.MinX = math.Min(b.MinX, p.X)
			b.MinY = math.Min(b.MinY, p.Y)
			b.MaxX = math.Max(b.MaxX, p.X)
			b.MaxY = math.Max(b.MaxY, p.Y)
		}
	}
	return b
}

// Open returns r without a duplicated closing point.
func (r Ring) Open() Ring {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}

// RingFromList converts a decoded list of [x, y] pairs into a ring.
// Malformed entries are skipped.
func RingFromList(v any) Ring {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	ring := make(Ring, 0, len(list))
	for _, item := range list {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			continue
		}
		x, okx := number(pair[0])
		y, oky := number(pair[1])
		if okx && oky {
			ring = append(ring, Point{X: x, Y: y})
		}
	}
	return ring
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
