package ui

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// Group is a non-owning, ordered collection of components used for batched
// update, draw and event dispatch. The optional only arguments restrict a
// call to members owned by the named interfaces.
type Group interface {
	Add(c Component)
	Remove(c Component) bool
	Has(c Component) bool
	Len() int
	Components() []Component
	Update(only ...string) error
	Draw(target *ebiten.Image, only ...string)
}

// ClickDispatcher groups route pointer presses to clickable members.
type ClickDispatcher interface {
	DispatchClick(x, y float64, only ...string)
}

// HoverDispatcher groups route pointer motion to hoverable members.
type HoverDispatcher interface {
	DispatchHover(x, y float64, only ...string)
}

// TextDispatcher groups route text and key events to the focused input.
type TextDispatcher interface {
	DispatchText(ev TextEvent, only ...string)
}

func inScope(c Component, only []string) bool {
	return len(only) == 0 || slices.Contains(only, c.InterfaceName())
}

var _ Group = (*ComponentGroup)(nil)

// ComponentGroup updates and draws its members in insertion order.
type ComponentGroup struct {
	members []Component
	index   map[Component]int
	op      ebiten.DrawImageOptions
}

func NewComponentGroup() *ComponentGroup {
	return &ComponentGroup{index: make(map[Component]int)}
}

func (g *ComponentGroup) Add(c Component) {
	if _, ok := g.index[c]; ok {
		return
	}
	g.index[c] = len(g.members)
	g.members = append(g.members, c)
}

func (g *ComponentGroup) Remove(c Component) bool {
	i, ok := g.index[c]
	if !ok {
		return false
	}
	g.members = slices.Delete(g.members, i, i+1)
	delete(g.index, c)
	for j := i; j < len(g.members); j++ {
		g.index[g.members[j]] = j
	}
	return true
}

func (g *ComponentGroup) Has(c Component) bool {
	_, ok := g.index[c]
	return ok
}

func (g *ComponentGroup) Len() int { return len(g.members) }

// Components returns a copy of the members, safe to iterate while the
// group changes.
func (g *ComponentGroup) Components() []Component {
	return slices.Clone(g.members)
}

// Update updates every member. A failing member does not stop the others;
// the errors are joined.
func (g *ComponentGroup) Update(only ...string) error {
	var errs []error
	for _, c := range g.Components() {
		if !inScope(c, only) {
			continue
		}
		if err := c.Update(); err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", c.Type(), c.Key(), err))
		}
	}
	return errors.Join(errs...)
}

// Draw composites each member's image at its bounding box.
func (g *ComponentGroup) Draw(target *ebiten.Image, only ...string) {
	for _, c := range g.members {
		if !inScope(c, only) {
			continue
		}
		img := c.Image()
		if img == nil {
			continue
		}
		r := c.Bounds()
		g.op.GeoM.Reset()
		g.op.GeoM.Translate(r.X, r.Y)
		target.DrawImage(img, &g.op)
	}
}

func dispatchClick(g Group, x, y float64, only []string) {
	for _, c := range g.Components() {
		if cl, ok := c.(Clickable); ok && inScope(c, only) && cl.Enabled() {
			cl.HandleClick(x, y)
		}
	}
}

func dispatchHover(g Group, x, y float64, only []string) {
	for _, c := range g.Components() {
		if h, ok := c.(Hoverable); ok && inScope(c, only) {
			h.HandleHover(x, y)
		}
	}
}

// ClickableGroup dispatches clicks to enabled members under the pointer.
type ClickableGroup struct {
	*ComponentGroup
}

func NewClickableGroup() *ClickableGroup {
	return &ClickableGroup{NewComponentGroup()}
}

func (g *ClickableGroup) DispatchClick(x, y float64, only ...string) {
	dispatchClick(g, x, y, only)
}

// HoverableGroup tracks which members the pointer is over.
type HoverableGroup struct {
	*ComponentGroup
}

func NewHoverableGroup() *HoverableGroup {
	return &HoverableGroup{NewComponentGroup()}
}

func (g *HoverableGroup) DispatchHover(x, y float64, only ...string) {
	dispatchHover(g, x, y, only)
}

// ButtonGroup is both clickable and hoverable.
type ButtonGroup struct {
	*ComponentGroup
}

func NewButtonGroup() *ButtonGroup {
	return &ButtonGroup{NewComponentGroup()}
}

func (g *ButtonGroup) DispatchClick(x, y float64, only ...string) {
	dispatchClick(g, x, y, only)
}

func (g *ButtonGroup) DispatchHover(x, y float64, only ...string) {
	dispatchHover(g, x, y, only)
}

// InputGroup holds text inputs. A click focuses the input under the pointer
// and blurs the others; text goes to the focused input only.
type InputGroup struct {
	*ComponentGroup
	focus *InputFocus
}

func NewInputGroup(focus *InputFocus) *InputGroup {
	if focus == nil {
		focus = &InputFocus{}
	}
	return &InputGroup{ComponentGroup: NewComponentGroup(), focus: focus}
}

func (g *InputGroup) DispatchClick(x, y float64, only ...string) {
	var hit TextInput
	for _, c := range g.Components() {
		t, ok := c.(TextInput)
		if !ok || !inScope(c, only) {
			continue
		}
		if t.Bounds().Contains(x, y) {
			hit = t
			continue
		}
		g.focus.Release(t)
	}
	if hit != nil {
		g.focus.Request(hit)
	}
}

func (g *InputGroup) DispatchHover(x, y float64, only ...string) {
	dispatchHover(g, x, y, only)
}

func (g *InputGroup) DispatchText(ev TextEvent, only ...string) {
	cur := g.focus.Current()
	if cur == nil || !g.Has(cur) || !inScope(cur, only) {
		return
	}
	cur.HandleText(ev)
}
