// Package markdown reads curated project records from a markdown catalog.
//
// Each level-2 heading starts a project named after the heading. Paragraphs
// under it form the description. A bullet list holds "Key: value" fields
// (Status, Focus, Language, Topics, Updated, Featured) and bare links,
// which become the project's links:
//
//	## Kyoto Travel Guide
//
//	A multi-page travel experience.
//
//	- Status: Live on GitHub Pages
//	- Topics: Responsive design, Storytelling
//	- Updated: 2025-04-15
//	- Featured: yes
//	- [GitHub repository](https://github.com/GaveAnOreo/Kyoto)
package markdown

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"gallery.shikanime.studio/internal/gallery"
)

// options represents configuration options for parsing
type options struct {
	pushedAt     time.Time
	startSection string
}

// Option is a function that configures options
type Option func(*options)

// WithDefaultPushedAt sets the timestamp used by projects without an
// Updated field.
func WithDefaultPushedAt(t time.Time) Option {
	return func(o *options) { o.pushedAt = t }
}

// WithStartSection skips every project before the level-1 heading that
// contains section.
func WithStartSection(section string) Option {
	return func(o *options) { o.startSection = section }
}

// UnmarshalCatalog parses placeholder records from a markdown catalog.
func UnmarshalCatalog(in []byte, opts ...Option) ([]gallery.Record, error) {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}

	root := goldmark.New().Parser().Parse(text.NewReader(in))

	var records []gallery.Record
	var current *gallery.Record
	var description []string
	foundStartSection := options.startSection == ""

	flush := func() {
		if current == nil {
			return
		}
		current.Description = strings.Join(description, " ")
		if current.PushedAt.IsZero() {
			current.PushedAt = options.pushedAt
		}
		records = append(records, *current)
		current, description = nil, nil
	}

	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			headingText := DecodeTextFromNode(n, in)
			switch n.Level {
			case 1:
				if options.startSection != "" && strings.Contains(headingText, options.startSection) {
					foundStartSection = true
				}
			case 2:
				if !foundStartSection {
					return ast.WalkSkipChildren, nil
				}
				flush()
				current = &gallery.Record{
					Name:          strings.TrimSpace(headingText),
					IsPlaceholder: true,
				}
			}
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			if current != nil && n.Parent().Kind() == ast.KindDocument {
				if s := strings.TrimSpace(DecodeTextFromNode(n, in)); s != "" {
					description = append(description, s)
				}
			}
			return ast.WalkSkipChildren, nil

		case *ast.List:
			if current == nil || n.Parent().Kind() != ast.KindDocument {
				return ast.WalkSkipChildren, nil
			}
			for child := n.FirstChild(); child != nil; child = child.NextSibling() {
				listItem, ok := child.(*ast.ListItem)
				if !ok {
					continue
				}
				if err := decodeListItem(current, listItem, in); err != nil {
					return ast.WalkStop, err
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	flush()

	if !foundStartSection {
		return nil, fmt.Errorf("%s section not found in the document", options.startSection)
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog entry: %w", err)
		}
	}
	return records, nil
}

// LoadFile parses the catalog at path. Projects without an Updated field
// take the file's modification time.
func LoadFile(path string, opts ...Option) ([]gallery.Record, error) {
	in, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	var defaults []Option
	if fi, err := os.Stat(path); err == nil {
		defaults = append(defaults, WithDefaultPushedAt(fi.ModTime().UTC()))
	}
	records, err := UnmarshalCatalog(in, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return records, nil
}

// decodeListItem applies one bullet to r: either a link or a field.
func decodeListItem(r *gallery.Record, listItem *ast.ListItem, src []byte) error {
	if link := findLink(listItem); link != nil {
		r.Links = append(r.Links, gallery.Link{
			Href:  string(link.Destination),
			Label: strings.TrimSpace(DecodeTextFromNode(link, src)),
		})
		return nil
	}

	key, value, ok := strings.Cut(DecodeTextFromNode(listItem, src), ":")
	if !ok {
		slog.Debug("Ignoring catalog bullet without a field name", "project", r.Name)
		return nil
	}
	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "status":
		r.Status = value
	case "focus":
		r.Focus = value
	case "language":
		r.Language = value
	case "topics":
		for _, topic := range strings.Split(value, ",") {
			if topic = strings.TrimSpace(topic); topic != "" {
				r.Topics = append(r.Topics, topic)
			}
		}
	case "updated", "pushed", "pushed at":
		t, err := parseTime(value)
		if err != nil {
			return fmt.Errorf("failed to parse updated date for %s: %w", r.Name, err)
		}
		r.PushedAt = t
	case "featured":
		featured, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("failed to parse featured flag for %s: %w", r.Name, err)
		}
		r.IsFeatured = featured
	default:
		slog.Debug("Ignoring unknown catalog field", "project", r.Name, "field", key)
	}
	return nil
}

// findLink returns the link when it is the only inline content of the item.
func findLink(listItem *ast.ListItem) *ast.Link {
	block := listItem.FirstChild()
	if block == nil || block.ChildCount() != 1 {
		return nil
	}
	link, _ := block.FirstChild().(*ast.Link)
	return link
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// DecodeTextFromNode extracts text content from an AST node. Soft line
// breaks become spaces.
func DecodeTextFromNode(node ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
