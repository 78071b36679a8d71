package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"gallery.shikanime.studio/internal/gallery"
)

func TestNewCardPlaceholderLinks(t *testing.T) {
	r := gallery.Record{
		Name:          "Curated",
		IsPlaceholder: true,
		PushedAt:      fixedNow.AddDate(0, 0, -3),
		Links:         []gallery.Link{{Href: "https://x", Label: "Repo"}},
	}
	c := NewCard(r, fixedNow)

	require.Len(t, c.Links, 1)
	assert.Equal(t, Anchor{Href: "https://x", Label: "Repo", External: true}, c.Links[0])
	assert.Equal(t, Anchor{Href: SectionAnchor, Label: "Curated"}, c.Title)
	assert.Nil(t, c.Stats)
	assert.True(t, c.Placeholder)
	assert.Equal(t, "Updated 3 days ago", c.Meta)
}

func TestNewCardPlaceholderInternalLink(t *testing.T) {
	r := gallery.Record{
		Name:          "Curated",
		IsPlaceholder: true,
		PushedAt:      fixedNow,
		Links: []gallery.Link{
			{Href: "/case-study.html", Label: "Case study"},
			{Href: "HTTP://example.com", Label: "Live"},
			{Href: "mailto:me@example.com", Label: "Ask"},
		},
	}
	c := NewCard(r, fixedNow)

	require.Len(t, c.Links, 3)
	assert.False(t, c.Links[0].External)
	assert.True(t, c.Links[1].External)
	assert.False(t, c.Links[2].External)
}

func TestNewCardPublished(t *testing.T) {
	r := gallery.Record{
		Name:     "api",
		HTMLURL:  "https://github.com/me/api",
		PushedAt: fixedNow.AddDate(0, 0, -1),
		Stars:    ptr.To(1500),
		Forks:    ptr.To(3),
	}
	c := NewCard(r, fixedNow)

	require.Len(t, c.Links, 1)
	assert.Equal(t, Anchor{Href: "https://github.com/me/api", Label: "Repository", External: true}, c.Links[0])
	assert.Equal(t, Anchor{Href: "https://github.com/me/api", Label: "api", External: true}, c.Title)
	require.NotNil(t, c.Stats)
	assert.Equal(t, Stats{Stars: "1.5K", Forks: "3"}, *c.Stats)
	assert.Equal(t, "Updated yesterday", c.Meta)

	t.Run("homepage adds live preview", func(t *testing.T) {
		r.Homepage = "https://me.dev/api"
		c := NewCard(r, fixedNow)
		require.Len(t, c.Links, 2)
		assert.Equal(t, "Live preview", c.Links[1].Label)
		assert.Equal(t, "https://me.dev/api", c.Links[1].Href)
	})

	t.Run("missing stats render zero", func(t *testing.T) {
		c := NewCard(gallery.Record{Name: "bare", HTMLURL: "https://github.com/me/bare"}, fixedNow)
		assert.Equal(t, Stats{Stars: "0", Forks: "0"}, *c.Stats)
	})
}

func TestNewCardFallbacks(t *testing.T) {
	c := NewCard(gallery.Record{Name: "bare", IsPlaceholder: true}, fixedNow)

	assert.Equal(t, MetaFallback, c.Meta)
	assert.Equal(t, DescriptionFallback, c.Description)
	assert.Equal(t, []string{TagFallback}, c.Tags)
	assert.Empty(t, c.Status)
	assert.Empty(t, c.Focus)
	require.Len(t, c.Links, 1)
	assert.Equal(t, Anchor{Href: SectionAnchor, Label: "Repository"}, c.Links[0])
}

func TestNewCardTags(t *testing.T) {
	r := gallery.Record{
		Name:     "tags",
		Language: "Go",
		Topics:   []string{"cli", "http", "otel", "ignored"},
		PushedAt: fixedNow,
	}
	assert.Equal(t, []string{"Go", "cli", "http", "otel"}, NewCard(r, fixedNow).Tags)

	r.Language = ""
	assert.Equal(t, []string{"cli", "http", "otel"}, NewCard(r, fixedNow).Tags)
}

func TestNewCardDefaults(t *testing.T) {
	c := NewCard(gallery.DefaultRecords[0], fixedNow)

	assert.Equal(t, "Live on GitHub Pages", c.Status)
	assert.NotEmpty(t, c.Focus)
	assert.Equal(t, []string{"HTML · CSS · JS", "Responsive design", "Storytelling", "Accessibility"}, c.Tags)
	require.Len(t, c.Links, 2)
	for _, l := range c.Links {
		assert.True(t, l.External)
	}
}
