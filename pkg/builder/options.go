package builder

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/htmlimport"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// IDGenerator returns a fresh field id.
type IDGenerator func() string

// Importer converts raw markup into descriptors without ids.
type Importer func(raw string) ([]model.Field, error)

// Option customises a Controller.
type Option func(*Controller)

// WithFields seeds the controller. The list is validated by New.
func WithFields(fields []model.Field) Option {
	return func(c *Controller) {
		c.fields = model.CloneFields(fields)
	}
}

// WithIDGenerator overrides uuid based ids.
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *Controller) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// WithLogger sets the logger used for mutation events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithImporter replaces the HTML import collaborator.
func WithImporter(importer Importer) Option {
	return func(c *Controller) {
		if importer != nil {
			c.importer = importer
		}
	}
}

func defaults(c *Controller) {
	c.newID = uuid.NewString
	c.logger = slog.Default()
	c.importer = htmlimport.Parse
}
