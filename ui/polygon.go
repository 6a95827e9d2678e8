package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/OpticalFlyer/interfacer/shape"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Polygon draws filled outlines. The outline comes either from "points", a
// list of [x, y] pairs in local pixel coordinates, or from "source", a
// shapefile whose parts are fitted into width x height. With "project" set
// the shapefile is read as lon/lat and drawn in Web Mercator.
type Polygon struct {
	Base
	source      string
	project     bool
	rings       []shape.Ring
	fill        *color.RGBA
	stroke      *color.RGBA
	strokeWidth float64

	fitted []shape.Ring
	meshes []shape.Mesh
	fitW   float64
	fitH   float64
	stale  bool
	verts  []ebiten.Vertex
}

func NewPolygon(p Params) (Component, error) {
	pg := &Polygon{stale: true}
	pg.Init(p)
	pg.fill = parseOptionalColor(p.Props["fill_color"])
	pg.stroke = parseOptionalColor(p.Props["stroke_color"])
	if pg.fill == nil && pg.stroke == nil {
		pg.fill = &color.RGBA{255, 255, 255, 255}
	}
	pg.strokeWidth = p.Props.Float("stroke_width", 1)
	pg.project = p.Props.Bool("project", false)

	if src := p.Props.String("source", ""); src != "" {
		pg.source = src
		rings, _, err := shape.LoadShapefile(src)
		if err != nil {
			pg.Logger().Warn("shapefile unavailable, rendering placeholder",
				zapComponent(pg), zapPath(src), zapError(err))
		}
		pg.rings = rings
	} else {
		pg.rings = []shape.Ring{shape.RingFromList(p.Props["points"])}
	}

	pg.Bool("project", &pg.project)
	pg.Float("stroke_width", &pg.strokeWidth)
	optionalColorAttr(&pg.Accessors, "fill_color", &pg.fill)
	optionalColorAttr(&pg.Accessors, "stroke_color", &pg.stroke)
	pg.Define("points", func() any { return pg.points() }, func(v any) error {
		pg.source = ""
		pg.rings = []shape.Ring{shape.RingFromList(v)}
		pg.stale = true
		return nil
	})
	return pg, nil
}

func (pg *Polygon) points() []any {
	if len(pg.rings) == 0 {
		return nil
	}
	out := make([]any, len(pg.rings[0]))
	for i, pt := range pg.rings[0] {
		out[i] = []any{pt.X, pt.Y}
	}
	return out
}

func (pg *Polygon) natural() (float64, float64) {
	if pg.source != "" {
		return 100, 100
	}
	b := shape.Bounds(pg.rings...)
	if b.Empty() {
		return 0, 0
	}
	return b.MaxX, b.MaxY
}

func (pg *Polygon) rebuild(w, h float64) {
	if pg.source != "" {
		pg.fitted = shape.Fit(pg.rings, w, h, pg.project)
	} else {
		pg.fitted = pg.rings
	}
	pg.meshes = pg.meshes[:0]
	for _, r := range pg.fitted {
		m, err := shape.Triangulate(r)
		if err != nil {
			continue
		}
		pg.meshes = append(pg.meshes, m)
	}
	pg.fitW, pg.fitH, pg.stale = w, h, false
}

func (pg *Polygon) Update() error {
	nw, nh := pg.natural()
	w, h := pg.Size(nw, nh)
	if pg.stale || w != pg.fitW || h != pg.fitH {
		pg.rebuild(w, h)
	}
	canvas := pg.Canvas(w, h)

	if len(pg.fitted) == 0 || len(pg.fitted[0]) == 0 {
		canvas.Fill(color.Black)
		return nil
	}

	if pg.fill != nil {
		r, g, b, a := pg.fill.RGBA()
		for _, m := range pg.meshes {
			pg.verts = pg.verts[:0]
			for i := 0; i+1 < len(m.Vertices); i += 2 {
				pg.verts = append(pg.verts, ebiten.Vertex{
					DstX: m.Vertices[i], DstY: m.Vertices[i+1],
					SrcX: 1, SrcY: 1,
					ColorR: float32(r) / 0xffff, ColorG: float32(g) / 0xffff,
					ColorB: float32(b) / 0xffff, ColorA: float32(a) / 0xffff,
				})
			}
			op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
			canvas.DrawTriangles(pg.verts, m.Indices, whiteSubImage, op)
		}
	}

	if pg.stroke != nil && pg.strokeWidth > 0 {
		for _, ring := range pg.fitted {
			for i := range ring {
				a, b := ring[i], ring[(i+1)%len(ring)]
				vector.StrokeLine(canvas, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
					float32(pg.strokeWidth), *pg.stroke, true)
			}
		}
	}
	return nil
}

// Rings returns the outlines in local pixel coordinates as last drawn.
func (pg *Polygon) Rings() []shape.Ring { return pg.fitted }
