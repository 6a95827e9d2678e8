package binding

import (
	"fmt"

	"github.com/google/uuid"
)

// Binding is one synchronization rule evaluated by a Table.
type Binding interface {
	ID() uuid.UUID
	// Apply runs the rule once. done reports that the binding has fulfilled
	// its purpose and must be removed from its table.
	Apply() (done bool, err error)
}

type componentBinding struct {
	id      uuid.UUID
	src     Target
	srcAttr string
	dst     Target
	dstAttr string
}

// Component copies src.srcAttr into dst.dstAttr on every evaluation,
// coercing the value to the current type of the destination attribute.
func Component(src Target, srcAttr string, dst Target, dstAttr string) Binding {
	return &componentBinding{
		id:      uuid.New(),
		src:     src,
		srcAttr: srcAttr,
		dst:     dst,
		dstAttr: dstAttr,
	}
}

func (b *componentBinding) ID() uuid.UUID { return b.id }

func (b *componentBinding) Apply() (bool, error) {
	if detached(b.src) || detached(b.dst) {
		return false, ErrDangling
	}
	v, ok := b.src.Attr(b.srcAttr)
	if !ok {
		return false, fmt.Errorf("%w: source %w: %s", ErrDangling, ErrUnknownAttribute, b.srcAttr)
	}
	cur, ok := b.dst.Attr(b.dstAttr)
	if !ok {
		return false, fmt.Errorf("%w: destination %w: %s", ErrDangling, ErrUnknownAttribute, b.dstAttr)
	}
	cv, err := Coerce(v, cur)
	if err != nil {
		return false, fmt.Errorf("%s -> %s: %w", b.srcAttr, b.dstAttr, err)
	}
	return false, b.dst.SetAttr(b.dstAttr, cv)
}

type callbackBinding struct {
	id   uuid.UUID
	dst  Target
	attr string
	fn   func(any) any
}

// Callback replaces dst.attr with fn(current value) on every evaluation.
func Callback(dst Target, attr string, fn func(any) any) Binding {
	return &callbackBinding{id: uuid.New(), dst: dst, attr: attr, fn: fn}
}

func (b *callbackBinding) ID() uuid.UUID { return b.id }

func (b *callbackBinding) Apply() (bool, error) {
	if detached(b.dst) {
		return false, ErrDangling
	}
	cur, ok := b.dst.Attr(b.attr)
	if !ok {
		return false, fmt.Errorf("%w: %w: %s", ErrDangling, ErrUnknownAttribute, b.attr)
	}
	return false, b.dst.SetAttr(b.attr, b.fn(cur))
}

type conditionBinding struct {
	id   uuid.UUID
	pred func() bool
	fn   func()
	keep bool
}

// Condition runs fn whenever pred holds. Unless keep is set the binding is
// removed after the first time it fires.
func Condition(pred func() bool, fn func(), keep bool) Binding {
	return &conditionBinding{id: uuid.New(), pred: pred, fn: fn, keep: keep}
}

func (b *conditionBinding) ID() uuid.UUID { return b.id }

func (b *conditionBinding) Apply() (bool, error) {
	if !b.pred() {
		return false, nil
	}
	b.fn()
	return !b.keep, nil
}
