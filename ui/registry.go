package ui

import (
	"fmt"
	"strings"
)

// Constructor builds a component from its normalized descriptor.
type Constructor func(p Params) (Component, error)

// GroupConstructor builds an empty group. Groups that route text input share
// focus so only one input is active across the session.
type GroupConstructor func(focus *InputFocus) Group

// Registry maps type tags to component constructors and group kinds.
// Registering a tag again replaces the previous entry.
type Registry struct {
	components map[string]Constructor
	groups     map[string]GroupConstructor
}

// NewRegistry returns a registry holding the built-in component and group
// types.
func NewRegistry() *Registry {
	r := &Registry{
		components: make(map[string]Constructor),
		groups:     make(map[string]GroupConstructor),
	}
	r.RegisterComponentTypes(map[string]Constructor{
		"component":             NewComponent,
		"text":                  NewText,
		"paragraph":             NewParagraph,
		"button":                NewButton,
		"text-button":           NewTextButton,
		"image":                 NewImage,
		"input":                 NewInput,
		"animation":             NewAnimation,
		"spritesheet-animation": NewSpritesheetAnimation,
		"panel":                 NewPanel,
		"polygon":               NewPolygon,
	})
	r.RegisterGroupTypes(map[string]GroupConstructor{
		"clickable":   func(*InputFocus) Group { return NewClickableGroup() },
		"hoverable":   func(*InputFocus) Group { return NewHoverableGroup() },
		"panel":       func(*InputFocus) Group { return NewHoverableGroup() },
		"button":      func(*InputFocus) Group { return NewButtonGroup() },
		"text-button": func(*InputFocus) Group { return NewButtonGroup() },
		"input":       func(f *InputFocus) Group { return NewInputGroup(f) },
	})
	return r
}

func (r *Registry) RegisterComponentType(tag string, c Constructor) {
	r.components[strings.ToLower(tag)] = c
}

func (r *Registry) RegisterComponentTypes(types map[string]Constructor) {
	for tag, c := range types {
		r.RegisterComponentType(tag, c)
	}
}

func (r *Registry) RegisterGroupType(tag string, g GroupConstructor) {
	r.groups[strings.ToLower(tag)] = g
}

func (r *Registry) RegisterGroupTypes(types map[string]GroupConstructor) {
	for tag, g := range types {
		r.RegisterGroupType(tag, g)
	}
}

// HasComponentType reports whether tag has a constructor.
func (r *Registry) HasComponentType(tag string) bool {
	_, ok := r.components[strings.ToLower(tag)]
	return ok
}

// Create builds the component named by p's type field.
func (r *Registry) Create(p Params) (Component, error) {
	typ := strings.ToLower(p.Props.Type())
	ctor, ok := r.components[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponentType, typ)
	}
	c, err := ctor(p)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", typ, err)
	}
	return c, nil
}

// NewGroupFor returns a group for components of the given type. The group
// kind registered for the type is used first, then the one registered for
// the subtype, and a plain ComponentGroup otherwise.
func (r *Registry) NewGroupFor(typ, subtype string, focus *InputFocus) Group {
	if g, ok := r.groups[strings.ToLower(typ)]; ok {
		return g(focus)
	}
	if subtype != "" {
		if g, ok := r.groups[strings.ToLower(subtype)]; ok {
			return g(focus)
		}
	}
	return NewComponentGroup()
}
