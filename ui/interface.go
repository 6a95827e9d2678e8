package ui

import (
	"errors"
	"fmt"
	"image/color"
	"slices"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/interfacer/binding"
	"github.com/OpticalFlyer/interfacer/descriptor"
	"github.com/OpticalFlyer/interfacer/layout"
	"github.com/OpticalFlyer/interfacer/style"
)

// State is the lifecycle stage of an interface.
type State int

const (
	Loading State = iota
	Ready
	Active
	Inactive
	Unloaded
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	case Unloaded:
		return "unloaded"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Layer paints onto an interface surface below or above its components.
type Layer func(target *ebiten.Image)

type interfaceConfig struct {
	width, height int
	registry      *Registry
	focus         *InputFocus
	logger        *zap.Logger
}

// Interface is one named screen built from a descriptor document. It owns
// its components, the type groups used for event dispatch and the bindings
// evaluated after every update.
type Interface struct {
	name    string
	source  *descriptor.Document
	width   int
	height  int
	grid    *layout.Grid
	sheet   style.Sheet
	overlay bool

	background *color.RGBA
	bgImage    *ebiten.Image

	components *ComponentGroup
	byID       map[string]Component
	groups     map[string]Group
	groupOrder []string
	subgroups  []Group
	underlays  []Layer
	overlays   []Layer
	bindings   *binding.Table

	surface *ebiten.Image
	state   State
	issues  []error

	registry *Registry
	focus    *InputFocus
	logger   *zap.Logger
}

// newInterface builds an interface from doc. Structural errors abort the
// build; components that cannot be created are skipped and recorded in
// Issues.
func newInterface(doc *descriptor.Document, cfg interfaceConfig) (*Interface, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if cfg.registry == nil {
		cfg.registry = NewRegistry()
	}
	if cfg.focus == nil {
		cfg.focus = &InputFocus{}
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	logger := cfg.logger.With(zap.String("interface", doc.Interface))

	i := &Interface{
		name:       doc.Interface,
		source:     doc.Clone(),
		width:      cfg.width,
		height:     cfg.height,
		overlay:    doc.Overlay,
		components: NewComponentGroup(),
		byID:       make(map[string]Component),
		groups:     make(map[string]Group),
		bindings:   binding.NewTable(logger),
		state:      Loading,
		registry:   cfg.registry,
		focus:      cfg.focus,
		logger:     logger,
	}

	if doc.Display == descriptor.DisplayGrid {
		i.grid = &layout.Grid{Rows: doc.Rows, Columns: doc.Columns, Width: i.width, Height: i.height}
		if err := i.grid.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", i.name, err)
		}
	}

	sheet, err := style.NewSheet(doc.Styles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i.name, err)
	}
	i.sheet = sheet

	if doc.Background != nil {
		if err := i.SetBackground(doc.Background); err != nil {
			i.issue(err)
		}
	}

	var created []Component
	for n, raw := range doc.Components {
		c, err := i.build(descriptor.CloneMap(raw))
		if errors.Is(err, layout.ErrCellOutOfRange) || errors.Is(err, layout.ErrInvalidPercent) || errors.Is(err, layout.ErrInvalidGrid) {
			i.releaseAll(created)
			return nil, fmt.Errorf("%s: component %d: %w", i.name, n, err)
		}
		if err != nil {
			i.logger.Warn("component skipped", zap.Int("index", n), zap.Error(err))
			i.issue(fmt.Errorf("component %d: %w", n, err))
			continue
		}
		i.add(c)
		created = append(created, c)
	}
	for _, c := range created {
		c.AfterLoad(i)
	}
	i.state = Ready
	return i, nil
}

// build cascades styles and resolves geometry before creating the
// component, so class values may carry percentages too.
func (i *Interface) build(props map[string]any) (Component, error) {
	if missing := style.Cascade(props, i.sheet); len(missing) > 0 {
		i.logger.Warn("unknown style class", zap.Strings("classes", missing),
			zap.String("id", descriptor.Props(props).ID()))
	}
	if err := layout.Normalize(props, layout.Size{Width: i.width, Height: i.height}, i.grid); err != nil {
		return nil, err
	}
	return i.registry.Create(Params{
		Props:     descriptor.Props(props),
		Interface: i.name,
		Logger:    i.logger,
	})
}

func (i *Interface) add(c Component) {
	i.components.Add(c)
	if id := c.ID(); id != descriptor.Anonymous {
		if _, dup := i.byID[id]; dup {
			i.logger.Warn("duplicate component id in interface, last one wins", zap.String("id", id))
		}
		i.byID[id] = c
	}
	g, ok := i.groups[c.Type()]
	if !ok {
		g = i.registry.NewGroupFor(c.Type(), c.Subtype(), i.focus)
		i.groups[c.Type()] = g
		i.groupOrder = append(i.groupOrder, c.Type())
	}
	g.Add(c)
}

func (i *Interface) issue(err error) {
	i.issues = append(i.issues, err)
}

func (i *Interface) Name() string  { return i.name }
func (i *Interface) State() State  { return i.state }
func (i *Interface) Overlay() bool { return i.overlay }

func (i *Interface) Size() (width, height int) { return i.width, i.height }

// Issues returns the non-fatal problems found while loading, such as
// components of unknown type.
func (i *Interface) Issues() []error { return slices.Clone(i.issues) }

// Source returns a copy of the document the interface was built from,
// including components injected later.
func (i *Interface) Source() *descriptor.Document { return i.source.Clone() }

// Component returns the component with the given id, or nil.
func (i *Interface) Component(id string) Component { return i.byID[id] }

// Components returns the owned components in load order.
func (i *Interface) Components() []Component { return i.components.Components() }

// Group returns the dispatch group holding components of type typ, or nil.
func (i *Interface) Group(typ string) Group { return i.groups[typ] }

// Inject builds a component from props and adds it to the interface as if
// it had been part of the document.
func (i *Interface) Inject(props map[string]any) (Component, error) {
	c, err := i.build(descriptor.CloneMap(props))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i.name, err)
	}
	i.add(c)
	i.source.Components = append(i.source.Components, descriptor.CloneMap(props))
	c.AfterLoad(i)
	return c, nil
}

// SetBackground sets a solid color or, for strings that are not colors, an
// image path. An image that fails to load leaves the previous background.
func (i *Interface) SetBackground(v any) error {
	if c, err := style.ParseColor(v); err == nil {
		i.background = &c
		i.setBackgroundImage(nil)
		return nil
	}
	path, ok := v.(string)
	if !ok {
		return fmt.Errorf("background %v: %w", v, style.ErrInvalidColor)
	}
	img, err := loadImage(path)
	if err != nil {
		i.logger.Warn("background unavailable", zapPath(path), zapError(err))
		return fmt.Errorf("background: %w", err)
	}
	i.setBackgroundImage(img)
	return nil
}

func (i *Interface) setBackgroundImage(img *ebiten.Image) {
	if i.bgImage != nil {
		i.bgImage.Deallocate()
	}
	i.bgImage = img
}

// AddSubgroup updates and draws g alongside the interface. The interface
// does not own g. Adding the same group twice has no effect.
func (i *Interface) AddSubgroup(g Group) {
	if slices.Contains(i.subgroups, g) {
		return
	}
	i.subgroups = append(i.subgroups, g)
}

func (i *Interface) RemoveSubgroup(g Group) bool {
	n := slices.Index(i.subgroups, g)
	if n < 0 {
		return false
	}
	i.subgroups = slices.Delete(i.subgroups, n, n+1)
	return true
}

func (i *Interface) AddUnderlay(l Layer) { i.underlays = append(i.underlays, l) }
func (i *Interface) AddOverlay(l Layer)  { i.overlays = append(i.overlays, l) }

// CreateBinding keeps dst's dstAttr equal to src's srcAttr, converted to the
// destination's current type.
func (i *Interface) CreateBinding(src Component, srcAttr string, dst Component, dstAttr string) uuid.UUID {
	return i.bindings.Add(binding.Component(src, srcAttr, dst, dstAttr))
}

// BindCallback sets dst's attr to fn(current value) on every update.
func (i *Interface) BindCallback(dst Component, attr string, fn func(any) any) uuid.UUID {
	return i.bindings.Add(binding.Callback(dst, attr, fn))
}

// When runs fn on every update where pred holds. Unless keep is set the
// binding removes itself after firing once.
func (i *Interface) When(pred func() bool, fn func(), keep bool) uuid.UUID {
	return i.bindings.Add(binding.Condition(pred, fn, keep))
}

func (i *Interface) Unbind(id uuid.UUID) bool { return i.bindings.Remove(id) }

func (i *Interface) HasBinding(id uuid.UUID) bool { return i.bindings.Has(id) }

func (i *Interface) Bindings() int { return i.bindings.Len() }

// EmitClick forwards a pointer press to the interface's own groups.
func (i *Interface) EmitClick(x, y float64) {
	for _, g := range i.dispatchGroups() {
		if d, ok := g.(ClickDispatcher); ok {
			d.DispatchClick(x, y, i.name)
		}
	}
}

// EmitHover forwards pointer motion to the interface's own groups.
func (i *Interface) EmitHover(x, y float64) {
	for _, g := range i.dispatchGroups() {
		if d, ok := g.(HoverDispatcher); ok {
			d.DispatchHover(x, y, i.name)
		}
	}
}

// EmitInput forwards a text or key event to the interface's own groups.
func (i *Interface) EmitInput(ev TextEvent) {
	for _, g := range i.dispatchGroups() {
		if d, ok := g.(TextDispatcher); ok {
			d.DispatchText(ev, i.name)
		}
	}
}

func (i *Interface) dispatchGroups() []Group {
	groups := make([]Group, 0, len(i.groupOrder))
	for _, typ := range i.groupOrder {
		groups = append(groups, i.groups[typ])
	}
	return groups
}

// Update advances animations by dt seconds, updates the owned components
// and the subgroups, then evaluates the bindings against the fresh state.
// Failures are collected and returned after the whole pass ran.
func (i *Interface) Update(dt float64) error {
	subgroups := slices.Clone(i.subgroups)
	for _, c := range i.components.Components() {
		if a, ok := c.(Animator); ok {
			a.Advance(dt)
		}
	}
	for _, g := range subgroups {
		for _, c := range g.Components() {
			if a, ok := c.(Animator); ok {
				a.Advance(dt)
			}
		}
	}

	var errs []error
	if err := i.components.Update(); err != nil {
		errs = append(errs, err)
	}
	for _, g := range subgroups {
		if err := g.Update(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := i.bindings.Evaluate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Draw paints the background, underlays, components, subgroups and
// overlays onto the interface surface, in that order, and composites the
// surface onto target.
func (i *Interface) Draw(target *ebiten.Image) {
	s := i.canvas()
	switch {
	case i.bgImage != nil:
		sz := i.bgImage.Bounds().Size()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(i.width)/float64(sz.X), float64(i.height)/float64(sz.Y))
		s.DrawImage(i.bgImage, op)
	case i.background != nil:
		s.Fill(*i.background)
	case !i.overlay:
		s.Fill(color.Black)
	}
	for _, l := range i.underlays {
		l(s)
	}
	i.components.Draw(s)
	for _, g := range i.subgroups {
		g.Draw(s)
	}
	for _, l := range i.overlays {
		l(s)
	}
	i.Present(target)
}

// Present composites the last drawn surface onto target without repainting.
func (i *Interface) Present(target *ebiten.Image) {
	if i.surface != nil {
		target.DrawImage(i.surface, nil)
	}
}

func (i *Interface) canvas() *ebiten.Image {
	w, h := max(i.width, 1), max(i.height, 1)
	if i.surface != nil {
		if sz := i.surface.Bounds().Size(); sz.X == w && sz.Y == h {
			i.surface.Clear()
			return i.surface
		}
		i.surface.Deallocate()
	}
	i.surface = ebiten.NewImage(w, h)
	return i.surface
}

func (i *Interface) setState(s State) {
	if i.state == Unloaded {
		return
	}
	i.state = s
}

// Release tears the interface down. Text focus held by one of its inputs is
// dropped, every component is released and the bindings are cleared.
func (i *Interface) Release() {
	if i.state == Unloaded {
		return
	}
	if cur := i.focus.Current(); cur != nil && cur.InterfaceName() == i.name && i.components.Has(cur) {
		i.focus.Release(cur)
	}
	i.releaseAll(i.components.Components())
	i.bindings.Clear()
	i.groups = make(map[string]Group)
	i.groupOrder = nil
	i.subgroups = nil
	i.byID = make(map[string]Component)
	i.components = NewComponentGroup()
	i.setBackgroundImage(nil)
	if i.surface != nil {
		i.surface.Deallocate()
		i.surface = nil
	}
	i.state = Unloaded
}

func (i *Interface) releaseAll(cs []Component) {
	for _, c := range cs {
		if r, ok := c.(Releaser); ok {
			r.Release()
		}
	}
}
