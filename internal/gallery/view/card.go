package view

import (
	"regexp"
	"time"

	"gallery.shikanime.studio/internal/gallery"
)

const (
	// SectionAnchor is the in-page target used when a card has no URL.
	SectionAnchor = "#projects"

	DescriptionFallback = "Description coming soon. I’ll break down the problem, my approach, and the final result here."
	MetaFallback        = "Recently updated"
	TagFallback         = "New project"

	// MaxTopics is the number of topics shown after the language tag.
	MaxTopics = 3
)

var externalHref = regexp.MustCompile(`(?i)^https?:`)

// Anchor is a rendered hyperlink. External anchors open in a new browsing
// context with rel="noopener".
type Anchor struct {
	Href     string
	Label    string
	External bool
}

// Stats holds compact-formatted repository counters.
type Stats struct {
	Stars string
	Forks string
}

// Card describes the markup for one record, independent of any UI toolkit.
type Card struct {
	Name        string
	Placeholder bool
	Title       Anchor
	Meta        string
	Description string
	Status      string
	Focus       string
	// Nil for placeholder records.
	Stats *Stats
	Tags  []string
	Links []Anchor
}

// NewCard builds the card for r. Missing optional fields degrade to their
// fallbacks rather than failing.
func NewCard(r gallery.Record, now time.Time) Card {
	c := Card{
		Name:        r.Name,
		Placeholder: r.IsPlaceholder,
		Title: Anchor{
			Href:     r.HTMLURL,
			Label:    r.Name,
			External: !r.IsPlaceholder,
		},
		Meta:        MetaFallback,
		Description: r.Description,
		Status:      r.Status,
		Focus:       r.Focus,
	}
	if c.Title.Href == "" {
		c.Title.Href = SectionAnchor
	}
	if rel := RelativeTime(r.PushedAt, now); rel != "" {
		c.Meta = "Updated " + rel
	}
	if c.Description == "" {
		c.Description = DescriptionFallback
	}
	if !r.IsPlaceholder {
		c.Stats = &Stats{Stars: CompactNumber(r.Stars), Forks: CompactNumber(r.Forks)}
	}
	c.Tags = cardTags(r)
	c.Links = cardLinks(r)
	return c
}

func cardTags(r gallery.Record) []string {
	var tags []string
	if r.Language != "" {
		tags = append(tags, r.Language)
	}
	topics := r.Topics
	if len(topics) > MaxTopics {
		topics = topics[:MaxTopics]
	}
	tags = append(tags, topics...)
	if len(tags) == 0 {
		tags = []string{TagFallback}
	}
	return tags
}

func cardLinks(r gallery.Record) []Anchor {
	if r.IsPlaceholder && len(r.Links) > 0 {
		links := make([]Anchor, 0, len(r.Links))
		for _, l := range r.Links {
			links = append(links, Anchor{
				Href:     l.Href,
				Label:    l.Label,
				External: externalHref.MatchString(l.Href),
			})
		}
		return links
	}
	repo := Anchor{Href: r.HTMLURL, Label: "Repository", External: true}
	if repo.Href == "" {
		repo = Anchor{Href: SectionAnchor, Label: "Repository"}
	}
	links := []Anchor{repo}
	if r.Homepage != "" {
		links = append(links, Anchor{Href: r.Homepage, Label: "Live preview", External: true})
	}
	return links
}
