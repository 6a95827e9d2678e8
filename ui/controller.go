package ui

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/interfacer/descriptor"
)

const (
	defaultWidth          = 800
	defaultHeight         = 600
	defaultOverlayOpacity = 0.5
)

// KeyBinding holds the callbacks run when a key goes down or up while no
// text input is focused.
type KeyBinding struct {
	OnPress   func()
	OnRelease func()
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithSize sets the pixel size interfaces are laid out against.
func WithSize(width, height int) Option {
	return func(c *Controller) { c.width, c.height = width, height }
}

func WithRegistry(r *Registry) Option {
	return func(c *Controller) { c.registry = r }
}

// WithStrictIDs turns duplicate component ids into load errors instead of
// warnings.
func WithStrictIDs(strict bool) Option {
	return func(c *Controller) { c.strictIDs = strict }
}

// Backup is a captured session: the live interfaces, the component index,
// the focus and the action mapping.
type Backup struct {
	focus      string
	interfaces map[string]*Interface
	order      []string
	components map[string]Component
	actions    map[string]func()
}

// Focus returns the name of the interface focused when the backup was taken.
func (b *Backup) Focus() string { return b.focus }

// Interfaces returns the backed up interface names in load order.
func (b *Backup) Interfaces() []string { return slices.Clone(b.order) }

// Controller manages all UI elements
type Controller struct {
	logger    *zap.Logger
	registry  *Registry
	textFocus InputFocus
	width     int
	height    int
	strictIDs bool

	interfaces map[string]*Interface
	order      []string
	components map[string]Component
	focused    *Interface
	actions    map[string]func()
	keys       map[ebiten.Key]KeyBinding

	paused         bool
	overlayOpacity float64
	onOverlay      func(*Interface)
	backup         *Backup
}

// NewController creates a new UI controller
func NewController(opts ...Option) *Controller {
	c := &Controller{
		width:          defaultWidth,
		height:         defaultHeight,
		interfaces:     make(map[string]*Interface),
		components:     make(map[string]Component),
		actions:        make(map[string]func()),
		keys:           make(map[ebiten.Key]KeyBinding),
		overlayOpacity: defaultOverlayOpacity,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger = c.logger.Named("ui")
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	return c
}

// Registry returns the component and group type tables.
func (c *Controller) Registry() *Registry { return c.registry }

func (c *Controller) RegisterComponentType(tag string, ctor Constructor) {
	c.registry.RegisterComponentType(tag, ctor)
}

func (c *Controller) RegisterComponentTypes(types map[string]Constructor) {
	c.registry.RegisterComponentTypes(types)
}

func (c *Controller) RegisterGroupType(tag string, g GroupConstructor) {
	c.registry.RegisterGroupType(tag, g)
}

func (c *Controller) RegisterGroupTypes(types map[string]GroupConstructor) {
	c.registry.RegisterGroupTypes(types)
}

// Load reads one descriptor file and registers its interface.
func (c *Controller) Load(path string) error {
	doc, err := descriptor.LoadFile(path)
	if err != nil {
		return err
	}
	return c.loadDocuments([]*descriptor.Document{doc})
}

// LoadAll registers the interfaces of every descriptor file in dir. Nothing
// is registered unless all of them load.
func (c *Controller) LoadAll(ctx context.Context, dir string) error {
	docs, err := descriptor.LoadDir(ctx, dir)
	if err != nil {
		return err
	}
	return c.loadDocuments(docs)
}

// Inject registers an interface built from an in-memory document.
func (c *Controller) Inject(doc *descriptor.Document) (*Interface, error) {
	if err := c.loadDocuments([]*descriptor.Document{doc}); err != nil {
		return nil, err
	}
	return c.interfaces[doc.Interface], nil
}

// InjectComponent adds a component to a loaded interface and indexes it.
func (c *Controller) InjectComponent(props map[string]any, iface string) (Component, error) {
	i, ok := c.interfaces[iface]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInterfaceNotFound, iface)
	}
	if c.strictIDs {
		if id := descriptor.Props(props).ID(); id != descriptor.Anonymous && c.components[id] != nil {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateComponentID, id)
		}
	}
	comp, err := i.Inject(props)
	if err != nil {
		return nil, err
	}
	c.index(comp)
	c.applyActions()
	return comp, nil
}

// loadDocuments builds every interface first and registers them only when
// all builds succeed.
func (c *Controller) loadDocuments(docs []*descriptor.Document) error {
	built := make([]*Interface, 0, len(docs))
	fail := func(err error) error {
		for _, i := range built {
			i.Release()
		}
		return err
	}

	names := make(map[string]bool, len(docs))
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return fail(err)
		}
		if _, ok := c.interfaces[doc.Interface]; ok || names[doc.Interface] {
			return fail(fmt.Errorf("%w: %q", ErrDuplicateInterface, doc.Interface))
		}
		names[doc.Interface] = true

		i, err := newInterface(doc, interfaceConfig{
			width:    c.width,
			height:   c.height,
			registry: c.registry,
			focus:    &c.textFocus,
			logger:   c.logger,
		})
		if err != nil {
			return fail(err)
		}
		built = append(built, i)
	}

	if c.strictIDs {
		if err := c.checkIDs(built); err != nil {
			return fail(err)
		}
	}

	for _, i := range built {
		c.interfaces[i.name] = i
		c.order = append(c.order, i.name)
		for _, comp := range i.Components() {
			c.index(comp)
		}
		i.setState(Inactive)
		c.logger.Debug("interface loaded",
			zap.String("interface", i.name),
			zap.Int("components", i.components.Len()),
			zap.Int("issues", len(i.issues)))
	}
	c.applyActions()

	for _, i := range built {
		if i.overlay && c.onOverlay != nil {
			c.onOverlay(i)
		}
	}
	return nil
}

func (c *Controller) checkIDs(built []*Interface) error {
	seen := make(map[string]string)
	for id, comp := range c.components {
		seen[id] = comp.InterfaceName()
	}
	for _, i := range built {
		local := make(map[string]bool)
		for _, comp := range i.Components() {
			id := comp.ID()
			if id == descriptor.Anonymous {
				continue
			}
			if owner, ok := seen[id]; ok || local[id] {
				if owner == "" {
					owner = i.name
				}
				return fmt.Errorf("%w: %q in %s, already in %s", ErrDuplicateComponentID, id, i.name, owner)
			}
			local[id] = true
		}
		for id := range local {
			seen[id] = i.name
		}
	}
	return nil
}

func (c *Controller) index(comp Component) {
	id := comp.ID()
	if id == descriptor.Anonymous {
		return
	}
	if prev, ok := c.components[id]; ok && prev != comp {
		c.logger.Warn("component id shadowed, last registration wins",
			zap.String("id", id),
			zap.String("previous", prev.InterfaceName()),
			zap.String("current", comp.InterfaceName()))
	}
	c.components[id] = comp
}

// MapActions attaches click actions to components by id. The mapping is
// kept and re-applied whenever interfaces are loaded, so ids that do not
// exist yet are picked up later.
func (c *Controller) MapActions(actions map[string]func()) {
	maps.Copy(c.actions, actions)
	c.applyActions()
}

func (c *Controller) applyActions() {
	for id, fn := range c.actions {
		comp, ok := c.components[id]
		if !ok {
			continue
		}
		cl, ok := comp.(Clickable)
		if !ok {
			c.logger.Warn("action mapped to a component that is not clickable", zapComponent(comp))
			continue
		}
		cl.SetAction(fn)
	}
}

// Focus makes the named interface the one receiving updates, draws and
// input. An empty name clears the focus; an unknown name is ignored.
func (c *Controller) Focus(name string) {
	if name == "" {
		c.setFocus(nil)
		return
	}
	i, ok := c.interfaces[name]
	if !ok {
		c.logger.Warn("focus on unknown interface ignored", zap.String("interface", name))
		return
	}
	c.setFocus(i)
}

func (c *Controller) setFocus(i *Interface) {
	if c.focused == i {
		return
	}
	if c.focused != nil {
		c.focused.setState(Inactive)
	}
	c.textFocus.Clear()
	c.focused = i
	if i != nil {
		i.setState(Active)
	}
}

// Focused returns the focused interface, or nil.
func (c *Controller) Focused() *Interface { return c.focused }

// Interface returns the named interface, or nil.
func (c *Controller) Interface(name string) *Interface { return c.interfaces[name] }

// Interfaces returns the loaded interface names in load order.
func (c *Controller) Interfaces() []string { return slices.Clone(c.order) }

// Component returns the last registered component with the given id, or
// nil.
func (c *Controller) Component(id string) Component { return c.components[id] }

// Bind keeps dstID's dstAttr in sync with srcID's srcAttr. The binding
// lives in the source component's interface.
func (c *Controller) Bind(srcID, srcAttr, dstID, dstAttr string) (uuid.UUID, error) {
	src, err := c.lookup(srcID)
	if err != nil {
		return uuid.Nil, err
	}
	dst, err := c.lookup(dstID)
	if err != nil {
		return uuid.Nil, err
	}
	return c.interfaces[src.InterfaceName()].CreateBinding(src, srcAttr, dst, dstAttr), nil
}

// BindCallback sets dstID's attr to fn(current value) on every update of
// the component's interface.
func (c *Controller) BindCallback(dstID, attr string, fn func(any) any) (uuid.UUID, error) {
	dst, err := c.lookup(dstID)
	if err != nil {
		return uuid.Nil, err
	}
	return c.interfaces[dst.InterfaceName()].BindCallback(dst, attr, fn), nil
}

// When registers a condition binding on the named interface.
func (c *Controller) When(iface string, pred func() bool, fn func(), keep bool) (uuid.UUID, error) {
	i, ok := c.interfaces[iface]
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInterfaceNotFound, iface)
	}
	return i.When(pred, fn, keep), nil
}

// Unbind removes a binding from whichever interface holds it.
func (c *Controller) Unbind(id uuid.UUID) bool {
	for _, name := range c.order {
		if c.interfaces[name].Unbind(id) {
			return true
		}
	}
	return false
}

func (c *Controller) lookup(id string) (Component, error) {
	comp, ok := c.components[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, id)
	}
	if _, ok := c.interfaces[comp.InterfaceName()]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInterfaceNotFound, comp.InterfaceName())
	}
	return comp, nil
}

// BindKeys registers press and release callbacks per key. A later binding
// for the same key replaces the earlier one.
func (c *Controller) BindKeys(keys map[ebiten.Key]KeyBinding) {
	maps.Copy(c.keys, keys)
}

// OnPointerDown dispatches a click to the focused interface.
func (c *Controller) OnPointerDown(x, y float64) {
	if c.focused != nil {
		c.focused.EmitClick(x, y)
	}
}

// OnPointerMove dispatches hover state to the focused interface.
func (c *Controller) OnPointerMove(x, y float64) {
	if c.focused != nil {
		c.focused.EmitHover(x, y)
	}
}

// OnTextInput routes typed text to the focused text input.
func (c *Controller) OnTextInput(text string) {
	if c.focused == nil || text == "" || !c.textFocus.Active() {
		return
	}
	c.focused.EmitInput(TextEvent{Text: text})
}

// OnKeyDown goes to the focused text input when there is one, and to the
// key bindings otherwise.
func (c *Controller) OnKeyDown(key ebiten.Key) {
	if c.focused != nil && c.textFocus.Active() {
		c.focused.EmitInput(TextEvent{Key: key, IsKey: true})
		return
	}
	if kb, ok := c.keys[key]; ok && kb.OnPress != nil {
		kb.OnPress()
	}
}

func (c *Controller) OnKeyUp(key ebiten.Key) {
	if c.textFocus.Active() {
		return
	}
	if kb, ok := c.keys[key]; ok && kb.OnRelease != nil {
		kb.OnRelease()
	}
}

// Update advances the focused interface and the overlay interfaces by dt
// seconds. Errors are logged; the frame goes on.
func (c *Controller) Update(dt float64) {
	if c.focused != nil && !c.paused {
		if err := c.focused.Update(dt); err != nil {
			c.logger.Warn("interface update failed", zap.String("interface", c.focused.name), zap.Error(err))
		}
	}
	for _, i := range c.overlayInterfaces() {
		if err := i.Update(dt); err != nil {
			c.logger.Warn("overlay update failed", zap.String("interface", i.name), zap.Error(err))
		}
	}
}

// Draw draws all UI elements
func (c *Controller) Draw(screen *ebiten.Image) {
	if c.focused != nil {
		if c.paused {
			c.focused.Present(screen)
		} else {
			c.focused.Draw(screen)
		}
	}
	overlays := c.overlayInterfaces()
	if len(overlays) == 0 {
		return
	}
	if c.overlayOpacity > 0 {
		sz := screen.Bounds().Size()
		dim := color.RGBA{A: uint8(c.overlayOpacity * 255)}
		vector.DrawFilledRect(screen, 0, 0, float32(sz.X), float32(sz.Y), dim, false)
	}
	for _, i := range overlays {
		i.Draw(screen)
	}
}

// Tick runs one update and draw cycle.
func (c *Controller) Tick(screen *ebiten.Image, dt float64) {
	c.Update(dt)
	c.Draw(screen)
}

func (c *Controller) overlayInterfaces() []*Interface {
	var out []*Interface
	for _, name := range c.order {
		if i := c.interfaces[name]; i.overlay && i != c.focused {
			out = append(out, i)
		}
	}
	return out
}

// Pause stops updating and redrawing the focused interface. Its last frame
// stays on screen and input is still dispatched. Overlay interfaces keep
// updating and drawing while paused.
func (c *Controller) Pause()       { c.paused = true }
func (c *Controller) Unpause()     { c.paused = false }
func (c *Controller) Paused() bool { return c.paused }

// SetOverlayOpacity sets how strongly the screen is dimmed below overlay
// interfaces, from 0 (not at all) to 1 (black).
func (c *Controller) SetOverlayOpacity(opacity float64) {
	c.overlayOpacity = min(max(opacity, 0), 1)
}

// OnOverlay registers fn to run for every overlay interface that loads.
func (c *Controller) OnOverlay(fn func(*Interface)) { c.onOverlay = fn }

// Resize sets the size future loads are laid out against. Interfaces that
// are already loaded keep their geometry.
func (c *Controller) Resize(width, height int) {
	c.width, c.height = width, height
}

// Size returns the layout size.
func (c *Controller) Size() (width, height int) { return c.width, c.height }

// SnapshotState captures the live session.
func (c *Controller) SnapshotState() *Backup {
	b := &Backup{
		interfaces: maps.Clone(c.interfaces),
		order:      slices.Clone(c.order),
		components: maps.Clone(c.components),
		actions:    maps.Clone(c.actions),
	}
	if c.focused != nil {
		b.focus = c.focused.name
	}
	return b
}

// RestoreState replaces the session with b. Interfaces that are loaded but
// not part of b are released.
func (c *Controller) RestoreState(b *Backup) {
	for name, i := range c.interfaces {
		if b.interfaces[name] != i {
			i.Release()
		}
	}
	c.setFocus(nil)
	c.interfaces = maps.Clone(b.interfaces)
	c.order = slices.Clone(b.order)
	c.components = maps.Clone(b.components)
	c.actions = maps.Clone(b.actions)
	for _, i := range c.interfaces {
		i.setState(Inactive)
	}
	c.applyActions()
	c.Focus(b.focus)
}

// Unload removes every interface. With keepBackup the session is captured
// first and can be brought back with Reload, replacing any earlier backup;
// otherwise the interfaces are released and the backup is dropped.
func (c *Controller) Unload(keepBackup bool) {
	c.dropBackup()
	if keepBackup {
		c.backup = c.SnapshotState()
	} else {
		for _, i := range c.interfaces {
			i.Release()
		}
	}
	c.setFocus(nil)
	c.interfaces = make(map[string]*Interface)
	c.order = nil
	c.components = make(map[string]Component)
	c.paused = false
}

// dropBackup forgets the backup, releasing its interfaces that are not part
// of the live session.
func (c *Controller) dropBackup() {
	if c.backup == nil {
		return
	}
	for name, i := range c.backup.interfaces {
		if c.interfaces[name] != i {
			i.Release()
		}
	}
	c.backup = nil
}

// Reload brings back the session saved by Unload(true). A raw reload
// rebuilds every interface from its source document, discarding runtime
// state such as changed attributes and bindings; otherwise the saved
// interfaces are restored as they were. The action mapping survives both.
// If a raw rebuild fails the saved session is restored and the backup is
// consumed either way.
func (c *Controller) Reload(raw bool) error {
	b := c.backup
	if b == nil {
		return ErrNoBackup
	}
	if !raw {
		c.backup = nil
		c.RestoreState(b)
		return nil
	}

	docs := make([]*descriptor.Document, 0, len(b.order))
	for _, name := range b.order {
		docs = append(docs, b.interfaces[name].Source())
	}
	return c.reloadFrom(docs, b.focus, b)
}

// ReloadDocuments replaces the session with interfaces built from docs,
// keeping the focused interface and the action mapping. On failure the
// current session stays untouched and no backup is left behind.
func (c *Controller) ReloadDocuments(docs []*descriptor.Document) error {
	focus := ""
	if c.focused != nil {
		focus = c.focused.name
	}
	c.Unload(true)
	return c.reloadFrom(docs, focus, c.backup)
}

func (c *Controller) reloadFrom(docs []*descriptor.Document, focus string, b *Backup) error {
	for _, i := range c.interfaces {
		i.Release()
	}
	c.interfaces = make(map[string]*Interface)
	c.order = nil
	c.components = make(map[string]Component)
	c.actions = maps.Clone(b.actions)

	if err := c.loadDocuments(docs); err != nil {
		c.logger.Warn("reload failed, restoring previous session", zap.Error(err))
		c.RestoreState(b)
		c.backup = nil
		return err
	}
	for _, i := range b.interfaces {
		i.Release()
	}
	c.backup = nil
	c.Focus(focus)
	return nil
}

// SaveSnapshot writes the focused interface name and the source document of
// every loaded interface to w.
func (c *Controller) SaveSnapshot(w io.Writer) error {
	s := &descriptor.Snapshot{}
	if c.focused != nil {
		s.Focus = c.focused.name
	}
	for _, name := range c.order {
		s.Interfaces = append(s.Interfaces, c.interfaces[name].Source())
	}
	return descriptor.WriteSnapshot(w, s)
}

// LoadSnapshot replaces the session with the one read from r.
func (c *Controller) LoadSnapshot(r io.Reader) error {
	s, err := descriptor.ReadSnapshot(r)
	if err != nil {
		return err
	}
	c.Unload(true)
	return c.reloadFrom(s.Interfaces, s.Focus, c.backup)
}

// ShowDebugInfo draws debug information
func (c *Controller) ShowDebugInfo(screen *ebiten.Image) {
	fps := ebiten.ActualFPS()
	tps := ebiten.ActualTPS()
	focus := "-"
	if c.focused != nil {
		focus = c.focused.name
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f TPS: %.2f\nInterface: %s Components: %d Paused: %t",
		fps, tps, focus, len(c.components), c.paused))
}

// IsInteractingWithUI returns true while a text input holds keyboard focus
func (c *Controller) IsInteractingWithUI() bool {
	return c.textFocus.Active()
}
