package shape

import "math"

// Constants for Web Mercator projection
const (
	maxLat      = 85.0511 // Maximum latitude in Web Mercator (arctan(sinh(π)))
	minLat      = -85.0511
	degToRad    = math.Pi / 180.0
	earthRadius = 6378137.0
)

// LonLatToMercator converts WGS84 coordinates to Web Mercator (EPSG:3857)
// meters.
//
// Parameters:
//   - lon: Longitude in degrees (-180 to 180)
//   - lat: Latitude in degrees (clamped to -85.0511 to 85.0511)
//
// Returns:
//   - x: X coordinate in meters
//   - y: Y coordinate in meters, growing northwards
func LonLatToMercator(lon, lat float64) (x, y float64) {
	if lat > maxLat {
		lat = maxLat
	} else if lat < minLat {
		lat = minLat
	}

	x = earthRadius * lon * degToRad

	sinLat := math.Sin(lat * degToRad)
	y = earthRadius * 0.5 * math.Log((1.0+sinLat)/(1.0-sinLat))

	return x, y
}

// Project converts every lon/lat point of rings to Web Mercator meters.
func Project(rings []Ring) []Ring {
	out := make([]Ring, len(rings))
	for i, r := range rings {
		pr := make(Ring, len(r))
		for j, p := range r {
			pr[j].X, pr[j].Y = LonLatToMercator(p.X, p.Y)
		}
		out[i] = pr
	}
	return out
}

// Fit scales rings into a width x height pixel box, preserving aspect
// ratio and centering the result. Source coordinates are treated as
// y-up (map space) and flipped to y-down screen space. When project is set
// the input is lon/lat and is projected to Web Mercator first.
func Fit(rings []Ring, width, height float64, project bool) []Ring {
	if project {
		rings = Project(rings)
	}
	b := Bounds(rings...)
	if b.Empty() {
		return nil
	}

	bw, bh := b.Width(), b.Height()
	scale := 1.0
	switch {
	case bw > 0 && bh > 0:
		scale = math.Min(width/bw, height/bh)
	case bw > 0:
		scale = width / bw
	case bh > 0:
		scale = height / bh
	}
	offX := (width - bw*scale) / 2
	offY := (height - bh*scale) / 2

	out := make([]Ring, len(rings))
	for i, r := range rings {
		fr := make(Ring, len(r))
		for j, p := range r {
			fr[j] = Point{
				X: offX + (p.X-b.MinX)*scale,
				Y: offY + (b.MaxY-p.Y)*scale,
			}
		}
		out[i] = fr
	}
	return out
}
