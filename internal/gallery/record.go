package gallery

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Link is a labeled hyperlink attached to a curated record.
type Link struct {
	Href  string
	Label string
}

// Record is one project shown in the gallery.
type Record struct {
	Name          string
	Description   string
	Status        string
	Focus         string
	Language      string
	Topics        []string
	Links         []Link
	PushedAt      time.Time
	IsPlaceholder bool
	IsFeatured    bool

	// Set only on records backed by a live repository.
	HTMLURL  string
	Homepage string
	Stars    *int
	Forks    *int
}

var (
	ErrMissingName     = errors.New("record name is required")
	ErrMissingPushedAt = errors.New("record pushed_at is required")
)

// Validate reports the first invariant the record violates.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if r.PushedAt.IsZero() {
		return fmt.Errorf("%s: %w", r.Name, ErrMissingPushedAt)
	}
	if !r.IsPlaceholder && len(r.Links) > 0 {
		return fmt.Errorf("%s: links are only allowed on placeholder records", r.Name)
	}
	if r.IsPlaceholder && (r.Stars != nil || r.Forks != nil) {
		return fmt.Errorf("%s: placeholder records cannot carry repository stats", r.Name)
	}
	return nil
}

// Normalize returns a copy of r with fields that contradict its kind removed.
func (r Record) Normalize() Record {
	r.Name = strings.TrimSpace(r.Name)
	if r.IsPlaceholder {
		r.Stars = nil
		r.Forks = nil
	} else {
		r.Links = nil
	}
	r.Topics = append([]string(nil), r.Topics...)
	r.Links = append([]Link(nil), r.Links...)
	return r
}
