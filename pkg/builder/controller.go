package builder

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

var (
	// ErrFieldNotFound is returned for ids that are not in the list.
	ErrFieldNotFound = errors.New("builder: field not found")
	// ErrIDImmutable is returned when a JSON patch rewrites the field id.
	ErrIDImmutable = errors.New("builder: field id cannot change")
)

// Listener receives a snapshot of the list after every successful mutation.
type Listener func(fields []model.Field)

// Controller owns the canonical field list. Every mutation is validated
// against the whole resulting list and either applies completely or leaves
// the list untouched. Reads return deep copies.
type Controller struct {
	mu        sync.RWMutex
	fields    []model.Field
	newID     IDGenerator
	logger    *slog.Logger
	importer  Importer
	listeners []subscription
	nextSub   int
}

type subscription struct {
	id int
	fn Listener
}

// New builds a controller. Seeded fields must satisfy model.ValidateFields.
func New(opts ...Option) (*Controller, error) {
	c := &Controller{}
	defaults(c)
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.fields == nil {
		c.fields = []model.Field{}
	}
	if err := model.ValidateFields(c.fields); err != nil {
		return nil, fmt.Errorf("builder: seed fields: %w", err)
	}
	return c, nil
}

// Fields returns a snapshot of the list.
func (c *Controller) Fields() []model.Field {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.CloneFields(c.fields)
}

// Field returns a copy of the field with the given id.
func (c *Controller) Field(id string) (model.Field, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := c.indexOf(id)
	if idx < 0 {
		return model.Field{}, fmt.Errorf("%w: %q", ErrFieldNotFound, id)
	}
	return c.fields[idx].Clone(), nil
}

// Len reports the number of fields.
func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.fields)
}

// Add appends a default text field and returns it.
func (c *Controller) Add() (model.Field, error) {
	field := model.NewField(c.newID())
	err := c.mutate("add", func(fields []model.Field) ([]model.Field, error) {
		return append(fields, field), nil
	})
	if err != nil {
		return model.Field{}, err
	}
	return field.Clone(), nil
}

// Update merges patch into the field with the given id.
func (c *Controller) Update(id string, patch model.FieldPatch) (model.Field, error) {
	var updated model.Field
	err := c.mutate("update", func(fields []model.Field) ([]model.Field, error) {
		idx := indexOf(fields, id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, id)
		}
		next, err := patch.Apply(fields[idx])
		if err != nil {
			return nil, err
		}
		fields[idx] = next
		updated = next
		return fields, nil
	})
	if err != nil {
		return model.Field{}, err
	}
	return updated.Clone(), nil
}

// Delete removes the field with the given id. Rules of other fields that
// referenced it are kept and evaluate as hidden.
func (c *Controller) Delete(id string) error {
	return c.mutate("delete", func(fields []model.Field) ([]model.Field, error) {
		idx := indexOf(fields, id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, id)
		}
		return append(fields[:idx], fields[idx+1:]...), nil
	})
}

// Import appends descriptors with freshly generated ids. ShowWhen references
// between fields of the batch follow the new ids.
func (c *Controller) Import(batch []model.Field) ([]model.Field, error) {
	added := model.CloneFields(batch)
	remap := make(map[string]string, len(added))
	for i := range added {
		fresh := c.newID()
		if added[i].ID != "" {
			remap[added[i].ID] = fresh
		}
		added[i].ID = fresh
	}
	for i := range added {
		if rule := added[i].ShowWhen; rule != nil {
			if fresh, ok := remap[rule.Field]; ok {
				rule.Field = fresh
			}
		}
	}

	err := c.mutate("import", func(fields []model.Field) ([]model.Field, error) {
		return append(fields, added...), nil
	})
	if err != nil {
		return nil, err
	}
	return model.CloneFields(added), nil
}

// ImportHTML parses raw markup with the configured importer and appends the
// result. Nothing is committed when parsing fails.
func (c *Controller) ImportHTML(raw string) ([]model.Field, error) {
	parsed, err := c.importer(raw)
	if err != nil {
		c.logger.Warn("html import failed", "error", err)
		return nil, fmt.Errorf("builder: import html: %w", err)
	}
	return c.Import(parsed)
}

// Replace swaps the whole list, for example after loading a definition.
func (c *Controller) Replace(fields []model.Field) error {
	next := model.CloneFields(fields)
	return c.mutate("replace", func([]model.Field) ([]model.Field, error) {
		return next, nil
	})
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. Listeners are notified in subscription order.
func (c *Controller) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	key := c.nextSub
	c.nextSub++
	c.listeners = append(c.listeners, subscription{id: key, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, sub := range c.listeners {
			if sub.id == key {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// mutate runs fn against a copy of the list, validates the result and only
// then commits it. Listeners run after the lock is released.
func (c *Controller) mutate(op string, fn func([]model.Field) ([]model.Field, error)) error {
	c.mu.Lock()
	next, err := fn(model.CloneFields(c.fields))
	if err == nil {
		err = model.ValidateFields(next)
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Debug("field list mutation rejected", "op", op, "error", err)
		return err
	}
	c.fields = next
	snapshot := model.CloneFields(next)
	listeners := make([]Listener, 0, len(c.listeners))
	for _, sub := range c.listeners {
		listeners = append(listeners, sub.fn)
	}
	c.mu.Unlock()

	c.logger.Debug("field list updated", "op", op, "fields", len(snapshot))
	if _, collisions := model.ExportNames(snapshot); len(collisions) > 0 {
		for _, col := range collisions {
			c.logger.Warn("fields share an export name", "token", col.Token, "fields", col.FieldIDs)
		}
	}
	for _, l := range listeners {
		l(model.CloneFields(snapshot))
	}
	return nil
}

func (c *Controller) indexOf(id string) int {
	return indexOf(c.fields, id)
}

func indexOf(fields []model.Field, id string) int {
	for i, field := range fields {
		if field.ID == id {
			return i
		}
	}
	return -1
}
