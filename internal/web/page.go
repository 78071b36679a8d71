package web

import (
	"log/slog"
	"net/url"
	"time"

	"gallery.shikanime.studio/internal/gallery"
	"gallery.shikanime.studio/internal/gallery/view"
	"gallery.shikanime.studio/internal/nav"
	"gallery.shikanime.studio/internal/preference"
)

// SkeletonCards is the number of loading placeholders a fresh surface holds.
const SkeletonCards = 3

// FilterLink is a filter control rendered as a link.
type FilterLink struct {
	view.FilterButton
	Href string
}

// Page is the data the page template renders.
type Page struct {
	Title string
	// Theme is empty when the visitor has no known preference, leaving the
	// stylesheet to follow prefers-color-scheme.
	Theme preference.Theme
	// ScrollBehavior overrides the stylesheet only when the client hints at
	// reduced motion.
	ScrollBehavior string
	Nav            []nav.Link
	Menu           nav.Menu
	MenuHref       string
	Filters        []FilterLink
	Gallery        view.View
	Skeletons      int
	Year           int
	// ThemeAction is empty on static pages, which have no toggle endpoint.
	ThemeAction string
	ReturnTo    string
}

// PageRequest describes what a visitor asked for.
type PageRequest struct {
	Path string
	// Query is the request query string; the menu toggle and the theme
	// form carry it back so the selected filter survives.
	Query    url.Values
	Filter   gallery.Filter
	Theme    preference.Theme
	Hints    preference.Hints
	MenuOpen bool
}

// PageOptions holds page settings shared by every request.
type PageOptions struct {
	title       string
	featured    []string
	initial     gallery.Filter
	links       []nav.Link
	now         func() time.Time
	filterHref  func(gallery.Filter) string
	themeAction string
	loadErr     error
}

// PageOption applies a configuration to PageOptions.
type PageOption func(*PageOptions)

// WithTitle sets the document title.
func WithTitle(title string) PageOption {
	return func(o *PageOptions) { o.title = title }
}

// WithFeaturedNames overrides the featured allow-list.
func WithFeaturedNames(names ...string) PageOption {
	return func(o *PageOptions) { o.featured = names }
}

// WithInitialFilter sets the filter shown when the request selects none.
func WithInitialFilter(f gallery.Filter) PageOption {
	return func(o *PageOptions) { o.initial = f }
}

// WithNavLinks sets the primary navigation.
func WithNavLinks(links []nav.Link) PageOption {
	return func(o *PageOptions) { o.links = links }
}

// WithClock sets the time source for relative timestamps and the footer.
func WithClock(now func() time.Time) PageOption {
	return func(o *PageOptions) { o.now = now }
}

// WithFilterHref sets how filter controls link to each filter.
func WithFilterHref(fn func(gallery.Filter) string) PageOption {
	return func(o *PageOptions) { o.filterHref = fn }
}

// WithThemeAction sets the endpoint the theme toggle posts to.
func WithThemeAction(action string) PageOption {
	return func(o *PageOptions) { o.themeAction = action }
}

// WithLoadError marks the records as unavailable; the page shows the error
// indicator instead of the gallery.
func WithLoadError(err error) PageOption {
	return func(o *PageOptions) { o.loadErr = err }
}

// NewPageOptions applies opts over the defaults.
func NewPageOptions(opts ...PageOption) PageOptions {
	o := PageOptions{
		title:      "Projects",
		links:      nav.DefaultLinks,
		now:        time.Now,
		filterHref: func(f gallery.Filter) string { return "?filter=" + string(f) },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// BuildPage runs the gallery controller for one request and returns the
// resulting page.
func BuildPage(records []gallery.Record, req PageRequest, opts PageOptions) Page {
	var storeOpts []gallery.StoreOption
	if len(opts.featured) > 0 {
		storeOpts = append(storeOpts, gallery.WithFeaturedNames(opts.featured...))
	}
	if opts.initial != "" {
		storeOpts = append(storeOpts, gallery.WithInitialFilter(opts.initial))
	}
	bar := view.NewFilterBar(gallery.Filters...)
	ctrl := view.NewController(
		gallery.NewStore(storeOpts...),
		view.NewSurface(SkeletonCards),
		view.WithFilterBar(bar),
		view.WithClock(opts.now),
	)
	if opts.loadErr != nil {
		ctrl.Fail()
	} else {
		if err := ctrl.Load(records); err != nil {
			slog.Debug("failed to load gallery", "error", err)
		}
		ctrl.Select(req.Filter)
	}

	menu := nav.NewMenu(nav.CompactWidth)
	if req.MenuOpen {
		menu.Toggle(nav.CompactWidth)
	}

	p := Page{
		Title:       opts.title,
		Theme:       req.Theme,
		Nav:         nav.MarkActive(opts.links, req.Path),
		Menu:        menu,
		MenuHref:    menuHref(req.Query, !menu.Open),
		Gallery:     ctrl.Surface().State(),
		Skeletons:   ctrl.Surface().Skeletons(),
		Year:        opts.now().Year(),
		ThemeAction: opts.themeAction,
		ReturnTo:    returnPath(req),
	}
	if req.Hints.PrefersReducedMotion {
		p.ScrollBehavior = req.Hints.ScrollBehavior()
	}
	slog.Debug("page built",
		"requested", req.Filter,
		"rendered", p.Gallery.Filter,
		"renders", ctrl.Surface().Applied(),
	)
	for _, b := range bar.Buttons() {
		p.Filters = append(p.Filters, FilterLink{FilterButton: b, Href: opts.filterHref(b.Filter)})
	}
	return p
}

// menuHref links to the current page with the menu opened or closed.
func menuHref(query url.Values, open bool) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	if open {
		q.Set("menu", "open")
	} else {
		q.Set("menu", "closed")
	}
	return "?" + q.Encode()
}

func returnPath(req PageRequest) string {
	if len(req.Query) == 0 {
		return req.Path
	}
	return req.Path + "?" + req.Query.Encode()
}
