package ui

import (
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/interfacer/binding"
	"github.com/OpticalFlyer/interfacer/descriptor"
)

var _ Component = (*Base)(nil)

// Params is what a component constructor receives: the normalized
// descriptor and the name of the interface being built.
type Params struct {
	Props     descriptor.Props
	Interface string
	Logger    *zap.Logger
}

// Base carries identity, geometry and the attribute table shared by every
// component. Custom components embed it and call Init from their
// constructor. Used on its own it is the "component" type, a black box.
type Base struct {
	binding.Accessors

	id        string
	key       string
	typ       string
	subtype   string
	iface     string
	x, y      float64
	width     float64
	height    float64
	hasWidth  bool
	hasHeight bool
	alignment string

	rect     Rectangle
	surface  *ebiten.Image
	owned    bool
	released bool
	logger   *zap.Logger
}

// NewComponent builds the plain "component" type.
func NewComponent(p Params) (Component, error) {
	b := &Base{}
	b.Init(p)
	return b, nil
}

// Init reads the common fields from p and registers the x, y, width,
// height and alignment attributes.
func (b *Base) Init(p Params) {
	props := p.Props
	b.id = props.ID()
	b.key = b.id
	if b.id == descriptor.Anonymous {
		b.key = ulid.Make().String()
	}
	b.typ = strings.ToLower(props.Type())
	b.subtype = strings.ToLower(props.Subtype())
	b.iface = p.Interface
	b.x = props.Float("x", 0)
	b.y = props.Float("y", 0)
	b.hasWidth = props.Has("width")
	b.hasHeight = props.Has("height")
	b.width = props.Float("width", 0)
	b.height = props.Float("height", 0)
	b.alignment = string(ParseAlignment(props.String("alignment", "")))
	b.logger = p.Logger
	if b.logger == nil {
		b.logger = zap.NewNop()
	}

	b.Float("x", &b.x)
	b.Float("y", &b.y)
	b.Define("width", func() any { return b.width }, func(v any) error {
		c, err := binding.Coerce(v, b.width)
		if err != nil {
			return err
		}
		b.width, b.hasWidth = c.(float64), true
		return nil
	})
	b.Define("height", func() any { return b.height }, func(v any) error {
		c, err := binding.Coerce(v, b.height)
		if err != nil {
			return err
		}
		b.height, b.hasHeight = c.(float64), true
		return nil
	})
	b.Define("alignment", func() any { return b.alignment }, func(v any) error {
		s, _ := binding.Coerce(v, "")
		b.alignment = string(ParseAlignment(s.(string)))
		return nil
	})
	b.Define("id", func() any { return b.id }, nil)
	b.Define("type", func() any { return b.typ }, nil)
	b.Define("interface", func() any { return b.iface }, nil)
}

func (b *Base) ID() string            { return b.id }
func (b *Base) Key() string           { return b.key }
func (b *Base) Type() string          { return b.typ }
func (b *Base) Subtype() string       { return b.subtype }
func (b *Base) InterfaceName() string { return b.iface }
func (b *Base) Bounds() Rectangle     { return b.rect }
func (b *Base) Image() *ebiten.Image  { return b.surface }
func (b *Base) Logger() *zap.Logger   { return b.logger }

// SetSubtype sets the fallback group key used when no group is registered
// for the component's own type.
func (b *Base) SetSubtype(s string) { b.subtype = strings.ToLower(s) }

func (b *Base) AfterLoad(*Interface) {}

func (b *Base) Position() (x, y float64) { return b.x, b.y }

func (b *Base) SetPosition(x, y float64) { b.x, b.y = x, y }

func (b *Base) Alignment() Alignment { return Alignment(b.alignment) }

// Size returns the declared size, substituting the natural size for any
// dimension that was not declared.
func (b *Base) Size(naturalW, naturalH float64) (w, h float64) {
	w, h = naturalW, naturalH
	if b.hasWidth {
		w = b.width
	}
	if b.hasHeight {
		h = b.height
	}
	return w, h
}

// SetSize declares both dimensions.
func (b *Base) SetSize(w, h float64) {
	b.width, b.height = w, h
	b.hasWidth, b.hasHeight = true, true
}

// Place recomputes the bounding box for a w x h image.
func (b *Base) Place(w, h float64) Rectangle {
	b.rect = AlignedRect(b.Alignment(), b.x, b.y, w, h)
	return b.rect
}

// Canvas returns a cleared render surface of at least 1x1 pixels, reusing
// the previous one when the size is unchanged, and places the bounding box.
func (b *Base) Canvas(w, h float64) *ebiten.Image {
	iw, ih := pixels(w), pixels(h)
	if b.surface != nil && b.owned {
		if sz := b.surface.Bounds().Size(); sz.X == iw && sz.Y == ih {
			b.surface.Clear()
			b.Place(w, h)
			return b.surface
		}
		b.surface.Deallocate()
	}
	b.surface = ebiten.NewImage(iw, ih)
	b.owned = true
	b.Place(w, h)
	return b.surface
}

// SetImage replaces the render surface with img, which the component does
// not own.
func (b *Base) SetImage(img *ebiten.Image) {
	if b.surface != nil && b.owned {
		b.surface.Deallocate()
	}
	b.surface, b.owned = img, false
}

func (b *Base) Update() error {
	w, h := b.Size(0, 0)
	b.Canvas(w, h).Fill(color.Black)
	return nil
}

// Detached reports whether the component was released.
func (b *Base) Detached() bool { return b.released }

func (b *Base) Release() {
	if b.released {
		return
	}
	b.released = true
	if b.surface != nil && b.owned {
		b.surface.Deallocate()
	}
	b.surface = nil
}

func pixels(v float64) int {
	n := int(math.Ceil(v))
	if n < 1 {
		return 1
	}
	return n
}
