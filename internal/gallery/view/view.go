package view

import (
	"slices"
	"time"

	"gallery.shikanime.studio/internal/gallery"
)

// View is the rendered state of the gallery section.
type View struct {
	Cards []Card
	// Filter is the key that produced Cards, after any fallback.
	Filter gallery.Filter

	EmptyVisible    bool
	ErrorVisible    bool
	HelperVisible   bool
	ControlsVisible bool
}

// Render maps the visible records to card descriptors. The helper banner
// is shown only when no visible record is published, and the controls only
// when the full collection is non-empty.
func Render(all, visible []gallery.Record, now time.Time) View {
	v := View{
		Cards:           make([]Card, 0, len(visible)),
		EmptyVisible:    len(visible) == 0,
		HelperVisible:   !slices.ContainsFunc(visible, func(r gallery.Record) bool { return !r.IsPlaceholder }),
		ControlsVisible: len(all) > 0,
	}
	for _, r := range visible {
		v.Cards = append(v.Cards, NewCard(r, now))
	}
	return v
}

// Surface is the container the gallery is drawn into. A nil *Surface stands
// for a page without the container and ignores every call.
type Surface struct {
	skeletons int
	cards     []Card
	filter    gallery.Filter
	applied   int

	emptyVisible    bool
	errorVisible    bool
	helperVisible   bool
	controlsVisible bool
}

// NewSurface returns a Surface holding the given number of loading
// skeletons. Controls stay hidden until the first Apply.
func NewSurface(skeletons int) *Surface {
	return &Surface{skeletons: skeletons, helperVisible: true}
}

// Apply replaces whatever the surface shows with v.
func (s *Surface) Apply(v View) {
	if s == nil {
		return
	}
	s.skeletons = 0
	s.cards = slices.Clone(v.Cards)
	s.filter = v.Filter
	s.emptyVisible = v.EmptyVisible
	s.errorVisible = false
	s.helperVisible = v.HelperVisible
	s.controlsVisible = v.ControlsVisible
	s.applied++
}

// ShowError replaces the surface content with the error indicator.
func (s *Surface) ShowError() {
	if s == nil {
		return
	}
	s.skeletons = 0
	s.cards = nil
	s.emptyVisible = false
	s.errorVisible = true
	s.controlsVisible = false
}

func (s *Surface) RemoveSkeletons() {
	if s == nil {
		return
	}
	s.skeletons = 0
}

func (s *Surface) SetControlsVisible(visible bool) {
	if s == nil {
		return
	}
	s.controlsVisible = visible
}

// Skeletons reports how many loading placeholders are still shown.
func (s *Surface) Skeletons() int {
	if s == nil {
		return 0
	}
	return s.skeletons
}

// Applied reports how many views have been applied.
func (s *Surface) Applied() int {
	if s == nil {
		return 0
	}
	return s.applied
}

// State returns what the surface currently shows.
func (s *Surface) State() View {
	if s == nil {
		return View{}
	}
	return View{
		Cards:           slices.Clone(s.cards),
		Filter:          s.filter,
		EmptyVisible:    s.emptyVisible,
		ErrorVisible:    s.errorVisible,
		HelperVisible:   s.helperVisible,
		ControlsVisible: s.controlsVisible,
	}
}

// FilterButton is one filter control.
type FilterButton struct {
	Filter gallery.Filter
	Label  string
	Active bool
}

// FilterBar holds the filter controls and which one is pressed.
type FilterBar struct {
	buttons []FilterButton
}

var filterLabels = map[gallery.Filter]string{
	gallery.FilterFeatured: "Featured",
	gallery.FilterRecent:   "Recently updated",
	gallery.FilterAll:      "All projects",
}

// NewFilterBar returns a bar with one button per filter, none pressed.
func NewFilterBar(filters ...gallery.Filter) *FilterBar {
	b := &FilterBar{}
	for _, f := range filters {
		label, ok := filterLabels[f]
		if !ok {
			label = string(f)
		}
		b.buttons = append(b.buttons, FilterButton{Filter: f, Label: label})
	}
	return b
}

// Mark presses the button for f and releases the others.
func (b *FilterBar) Mark(f gallery.Filter) {
	if b == nil {
		return
	}
	for i := range b.buttons {
		b.buttons[i].Active = b.buttons[i].Filter == f
	}
}

func (b *FilterBar) Buttons() []FilterButton {
	if b == nil {
		return nil
	}
	return slices.Clone(b.buttons)
}
