// Package binding keeps component attributes synchronized every update
// cycle through component, callback and condition bindings.
package binding

import (
	"fmt"
	"sort"
)

// Target exposes named attributes for reading and writing.
type Target interface {
	Attr(name string) (any, bool)
	SetAttr(name string, value any) error
}

// Detacher is implemented by targets that can be torn down while bindings
// still reference them.
type Detacher interface {
	Detached() bool
}

func detached(t Target) bool {
	if t == nil {
		return true
	}
	d, ok := t.(Detacher)
	return ok && d.Detached()
}

type accessor struct {
	get func() any
	set func(any) error
}

// Accessors is a per-component attribute table mapping names to get and set
// closures. The zero value is ready to use.
type Accessors struct {
	fields map[string]accessor
}

// Define registers an attribute. A nil set makes it read-only.
// Redefining a name replaces the previous accessor.
func (a *Accessors) Define(name string, get func() any, set func(any) error) {
	if a.fields == nil {
		a.fields = make(map[string]accessor)
	}
	a.fields[name] = accessor{get: get, set: set}
}

func (a *Accessors) Attr(name string) (any, bool) {
	f, ok := a.fields[name]
	if !ok || f.get == nil {
		return nil, false
	}
	return f.get(), true
}

func (a *Accessors) SetAttr(name string, value any) error {
	f, ok := a.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAttribute, name)
	}
	if f.set == nil {
		return fmt.Errorf("%w: %s", ErrReadOnly, name)
	}
	return f.set(value)
}

// Names returns the defined attribute names in sorted order.
func (a *Accessors) Names() []string {
	names := make([]string, 0, len(a.fields))
	for name := range a.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String defines a string attribute backed by p. Written values are
// coerced to string.
func (a *Accessors) String(name string, p *string) {
	a.Define(name, func() any { return *p }, func(v any) error {
		c, err := Coerce(v, *p)
		if err != nil {
			return err
		}
		*p = c.(string)
		return nil
	})
}

// Int defines an int attribute backed by p.
func (a *Accessors) Int(name string, p *int) {
	a.Define(name, func() any { return *p }, func(v any) error {
		c, err := Coerce(v, *p)
		if err != nil {
			return err
		}
		*p = c.(int)
		return nil
	})
}

// Float defines a float64 attribute backed by p.
func (a *Accessors) Float(name string, p *float64) {
	a.Define(name, func() any { return *p }, func(v any) error {
		c, err := Coerce(v, *p)
		if err != nil {
			return err
		}
		*p = c.(float64)
		return nil
	})
}

// Bool defines a bool attribute backed by p.
func (a *Accessors) Bool(name string, p *bool) {
	a.Define(name, func() any { return *p }, func(v any) error {
		c, err := Coerce(v, *p)
		if err != nil {
			return err
		}
		*p = c.(bool)
		return nil
	})
}

// Any defines an untyped attribute backed by p.
func (a *Accessors) Any(name string, p *any) {
	a.Define(name, func() any { return *p }, func(v any) error {
		*p = v
		return nil
	})
}
