package view

import (
	"log/slog"
	"time"

	"gallery.shikanime.studio/internal/gallery"
)

// Controller owns the gallery state for one page: the store, the surface
// it draws into and the filter controls.
type Controller struct {
	store   *gallery.Store
	surface *Surface
	bar     *FilterBar
	now     func() time.Time
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	bar *FilterBar
	now func() time.Time
}

// ControllerOption applies a configuration to ControllerOptions.
type ControllerOption func(*ControllerOptions)

// WithFilterBar attaches filter controls whose pressed state follows the
// rendered filter.
func WithFilterBar(b *FilterBar) ControllerOption {
	return func(o *ControllerOptions) { o.bar = b }
}

// WithClock sets the time source used for relative timestamps.
func WithClock(now func() time.Time) ControllerOption {
	return func(o *ControllerOptions) { o.now = now }
}

// NewController wires a store to a surface. surface may be nil, in which
// case every operation is a no-op.
func NewController(store *gallery.Store, surface *Surface, opts ...ControllerOption) *Controller {
	o := ControllerOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller{store: store, surface: surface, bar: o.bar, now: o.now}
}

// Load initializes the store with records and draws the active filter.
func (c *Controller) Load(records []gallery.Record) error {
	if c.surface == nil {
		return nil
	}
	if err := c.store.Initialize(records); err != nil {
		return err
	}
	c.apply(c.store.ActiveFilter())
	c.surface.RemoveSkeletons()
	c.surface.SetControlsVisible(c.store.Len() > 0)
	return nil
}

// Select activates f and redraws. It reports false when f is empty or
// already active.
func (c *Controller) Select(f gallery.Filter) bool {
	if c.surface == nil || f == "" {
		return false
	}
	if !c.store.SetActiveFilter(f) {
		return false
	}
	c.apply(f)
	return true
}

// Fail shows the error indicator in place of the gallery.
func (c *Controller) Fail() {
	c.surface.ShowError()
}

func (c *Controller) Store() *gallery.Store { return c.store }

func (c *Controller) Surface() *Surface { return c.surface }

func (c *Controller) FilterBar() *FilterBar { return c.bar }

func (c *Controller) apply(f gallery.Filter) {
	all := c.store.Records()
	if len(all) == 0 {
		c.bar.Mark(f)
		v := Render(nil, nil, c.now())
		v.Filter = f
		c.surface.Apply(v)
		return
	}
	visible, rendered := c.store.Resolve(f)
	if rendered != f {
		slog.Debug("No featured projects; showing recent instead", "requested", f, "rendered", rendered)
	}
	c.bar.Mark(rendered)
	v := Render(all, visible, c.now())
	v.Filter = rendered
	c.surface.Apply(v)
}
