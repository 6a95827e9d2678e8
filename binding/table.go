package binding

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Table holds bindings in registration order and evaluates them once per
// update cycle.
type Table struct {
	order    []uuid.UUID
	bindings map[uuid.UUID]Binding
	warned   map[uuid.UUID]struct{}
	logger   *zap.Logger
}

// NewTable creates an empty table. A nil logger discards warnings.
func NewTable(logger *zap.Logger) *Table {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Table{
		bindings: make(map[uuid.UUID]Binding),
		warned:   make(map[uuid.UUID]struct{}),
		logger:   logger,
	}
}

// Add registers b and returns its id.
func (t *Table) Add(b Binding) uuid.UUID {
	id := b.ID()
	if _, ok := t.bindings[id]; !ok {
		t.order = append(t.order, id)
	}
	t.bindings[id] = b
	return id
}

// Remove unregisters the binding with the given id. It reports whether the
// binding was present.
func (t *Table) Remove(id uuid.UUID) bool {
	if _, ok := t.bindings[id]; !ok {
		return false
	}
	delete(t.bindings, id)
	delete(t.warned, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *Table) Has(id uuid.UUID) bool {
	_, ok := t.bindings[id]
	return ok
}

func (t *Table) Len() int { return len(t.bindings) }

// IDs returns the registered ids in registration order.
func (t *Table) IDs() []uuid.UUID {
	return append([]uuid.UUID(nil), t.order...)
}

func (t *Table) Clear() {
	t.order = nil
	t.bindings = make(map[uuid.UUID]Binding)
	t.warned = make(map[uuid.UUID]struct{})
}

// Evaluate applies every binding once in registration order.
//
// The id list is snapshotted before the pass, so bindings added by a
// callback run on the next pass and bindings removed by a callback are
// skipped. Bindings that report completion are deleted after the pass.
// Dangling bindings are no-ops and are logged once each. Other errors are
// joined and returned; they never stop the pass.
func (t *Table) Evaluate() error {
	ids := t.IDs()
	var done []uuid.UUID
	var errs []error

	for _, id := range ids {
		b, ok := t.bindings[id]
		if !ok {
			continue
		}
		finished, err := b.Apply()
		switch {
		case err == nil:
			delete(t.warned, id)
		case errors.Is(err, ErrDangling):
			if _, seen := t.warned[id]; !seen {
				t.warned[id] = struct{}{}
				t.logger.Warn("dangling binding", zap.Stringer("binding", id), zap.Error(err))
			}
		default:
			errs = append(errs, err)
		}
		if finished {
			done = append(done, id)
		}
	}

	for _, id := range done {
		t.Remove(id)
	}
	return errors.Join(errs...)
}
