// Package nav holds the site navigation state.
package nav

import (
	"path"
	"strings"
)

// CompactWidth is the widest viewport, in CSS pixels, that collapses the
// navigation behind the menu toggle.
const CompactWidth = 720

// Link is one navigation entry.
type Link struct {
	Href   string
	Label  string
	Active bool
}

// DefaultLinks is the primary navigation of the site.
var DefaultLinks = []Link{
	{Href: "about.html", Label: "About"},
	{Href: "index.html#projects", Label: "Projects"},
	{Href: "contact.html", Label: "Contact"},
	{Href: "https://github.com/GaveAnOreo", Label: "GitHub"},
}

// Internal reports whether the link points at another page of the site.
func (l Link) Internal() bool {
	h := l.Href
	return h != "" && !strings.HasPrefix(h, "#") && !strings.HasPrefix(h, "http") && !strings.HasPrefix(h, "mailto:")
}

// MarkActive returns a copy of links with the internal link for the page at
// requestPath marked active. The about page is active on the site root.
func MarkActive(links []Link, requestPath string) []Link {
	current := lastSegment(requestPath)
	if current == "" {
		current = "index.html"
	}
	out := make([]Link, len(links))
	found := false
	for i, l := range links {
		l.Active = false
		if !found && l.Internal() && matches(l.Href, current) {
			l.Active = true
			found = true
		}
		out[i] = l
	}
	return out
}

func matches(href, current string) bool {
	target := lastSegment(strings.SplitN(href, "#", 2)[0])
	if target == "" {
		return false
	}
	if target == current {
		return true
	}
	return target == "about.html" && current == "index.html"
}

func lastSegment(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if strings.HasSuffix(p, "/") {
		return ""
	}
	if base := path.Base(p); base != "." && base != "/" {
		return base
	}
	return ""
}

// Menu is the responsive navigation menu.
type Menu struct {
	Open   bool
	Hidden bool
}

// NewMenu returns a closed menu, hidden on compact viewports.
func NewMenu(width int) Menu {
	return Menu{Hidden: width <= CompactWidth}
}

// Toggle opens a closed menu and closes an open one.
func (m *Menu) Toggle(width int) {
	if m.Open {
		m.Close(width)
		return
	}
	m.Open = true
	m.Hidden = false
}

// Close closes the menu; it stays visible only on wide viewports.
func (m *Menu) Close(width int) {
	m.Open = false
	m.Hidden = width <= CompactWidth
}
