package ui

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/interfacer/binding"
)

// Component represents the basic building block of the UI system.
// All UI elements must implement this interface.
type Component interface {
	binding.Target

	ID() string
	// Key is unique across the session: the id for addressable components
	// and a generated key for anonymous ones.
	Key() string
	Type() string
	Subtype() string
	InterfaceName() string

	// Update recomputes the render surface and bounding box from the
	// current attributes. It is called every tick and must be idempotent.
	Update() error
	Image() *ebiten.Image
	Bounds() Rectangle

	// AfterLoad runs once, after every sibling in the owning interface has
	// been created.
	AfterLoad(i *Interface)
}

// Clickable components run an action when a click lands inside them.
type Clickable interface {
	Component
	Enabled() bool
	SetEnabled(enabled bool)
	SetAction(action func())
	HandleClick(x, y float64) bool
}

// Hoverable components track whether the pointer is over them.
type Hoverable interface {
	Component
	Hovered() bool
	HandleHover(x, y float64)
}

// TextInput components receive keyboard text while focused. At most one is
// focused at a time, see InputFocus.
type TextInput interface {
	Component
	Focused() bool
	Focus()
	Blur()
	HandleText(ev TextEvent)
}

// Animator components advance with the frame clock. dt is in seconds.
type Animator interface {
	Advance(dt float64)
}

// Releaser components free resources when their interface is unloaded.
type Releaser interface {
	Release()
}

// TextEvent is either typed text or a special key press routed to the
// focused text input.
type TextEvent struct {
	Text  string
	Key   ebiten.Key
	IsKey bool
}

// Rectangle represents the bounds of a Component
type Rectangle struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether (x, y) lies inside r. The right and bottom edges
// are exclusive.
func (r Rectangle) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Alignment names the anchor of a bounding box that is pinned to a
// component's (x, y).
type Alignment string

const (
	AlignCenter      Alignment = "center"
	AlignTopLeft     Alignment = "topleft"
	AlignTopRight    Alignment = "topright"
	AlignMidLeft     Alignment = "midleft"
	AlignMidRight    Alignment = "midright"
	AlignBottomLeft  Alignment = "bottomleft"
	AlignBottomRight Alignment = "bottomright"
)

// ParseAlignment returns the alignment named by s, falling back to
// AlignCenter for unknown names.
func ParseAlignment(s string) Alignment {
	switch a := Alignment(strings.ToLower(strings.TrimSpace(s))); a {
	case AlignCenter, AlignTopLeft, AlignTopRight, AlignMidLeft,
		AlignMidRight, AlignBottomLeft, AlignBottomRight:
		return a
	}
	return AlignCenter
}

// AlignedRect places a width x height box so that its anchor a sits at
// (x, y).
func AlignedRect(a Alignment, x, y, width, height float64) Rectangle {
	r := Rectangle{Width: width, Height: height}
	switch a {
	case AlignTopLeft:
		r.X, r.Y = x, y
	case AlignTopRight:
		r.X, r.Y = x-width, y
	case AlignMidLeft:
		r.X, r.Y = x, y-height/2
	case AlignMidRight:
		r.X, r.Y = x-width, y-height/2
	case AlignBottomLeft:
		r.X, r.Y = x, y-height
	case AlignBottomRight:
		r.X, r.Y = x-width, y-height
	default:
		r.X, r.Y = x-width/2, y-height/2
	}
	return r
}
