package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func activeHref(links []Link) string {
	for _, l := range links {
		if l.Active {
			return l.Href
		}
	}
	return ""
}

func TestMarkActive(t *testing.T) {
	links := []Link{
		{Href: "#main", Label: "Skip"},
		{Href: "about.html", Label: "About"},
		{Href: "/projects.html", Label: "Projects"},
		{Href: "https://github.com/me", Label: "GitHub"},
		{Href: "mailto:me@example.com", Label: "Mail"},
	}
	tests := map[string]string{
		"/":                     "about.html",
		"/index.html":           "about.html",
		"/about.html":           "about.html",
		"/site/projects.html":   "/projects.html",
		"/contact.html":         "",
		`C:\site\projects.html`: "/projects.html",
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, want, activeHref(MarkActive(links, path)))
		})
	}

	marked := MarkActive(links, "/about.html")
	assert.False(t, links[1].Active, "input must not be modified")
	assert.True(t, marked[1].Active)
}

func TestMarkActiveFragment(t *testing.T) {
	got := MarkActive(DefaultLinks, "/")
	assert.Equal(t, "about.html", activeHref(got))
	assert.Equal(t, "index.html#projects", activeHref(MarkActive([]Link{{Href: "index.html#projects"}}, "/index.html")))
}

func TestMenu(t *testing.T) {
	m := NewMenu(600)
	assert.True(t, m.Hidden)
	assert.False(t, m.Open)

	m.Toggle(600)
	assert.True(t, m.Open)
	assert.False(t, m.Hidden)

	m.Toggle(600)
	assert.False(t, m.Open)
	assert.True(t, m.Hidden)

	m.Toggle(600)
	m.Close(1024)
	assert.False(t, m.Open)
	assert.False(t, m.Hidden, "wide viewports keep the links visible")

	wide := NewMenu(1280)
	assert.False(t, wide.Hidden)
}
