// Package site renders the gallery as a set of static pages.
package site

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"gallery.shikanime.studio/internal/config"
	"gallery.shikanime.studio/internal/gallery"
	"gallery.shikanime.studio/internal/source"
	"gallery.shikanime.studio/internal/web"
)

// Page is one generated file and the filter it was requested with.
type Page struct {
	File   string
	Filter gallery.Filter
}

// Pages lists the generated documents. The index carries no filter so it
// shows the default view.
var Pages = []Page{
	{File: "index.html"},
	{File: "featured.html", Filter: gallery.FilterFeatured},
	{File: "recent.html", Filter: gallery.FilterRecent},
	{File: "all.html", Filter: gallery.FilterAll},
}

// FilterHref links each filter control to its static page.
func FilterHref(f gallery.Filter) string {
	for _, p := range Pages {
		if p.Filter == f {
			return p.File
		}
	}
	return "index.html"
}

// Build writes every page and the static assets into dir and returns the
// written paths relative to dir.
func Build(ctx context.Context, dir string, records []gallery.Record, opts ...web.PageOption) ([]string, error) {
	ctx, span := otel.Tracer("gallery/site").Start(ctx, "Build", trace.WithAttributes(
		attribute.String("site.dir", dir),
		attribute.Int("site.records", len(records)),
	))
	defer span.End()

	written, err := build(ctx, dir, records, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	slog.InfoContext(ctx, "site built", "dir", dir, "files", len(written))
	return written, nil
}

func build(ctx context.Context, dir string, records []gallery.Record, opts []web.PageOption) ([]string, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	o := web.NewPageOptions(append([]web.PageOption{web.WithFilterHref(FilterHref)}, opts...)...)

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range Pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			page := web.BuildPage(records, web.PageRequest{Path: "/" + p.File, Filter: p.Filter}, o)
			var buf bytes.Buffer
			if err := web.Render(&buf, tmpl, page); err != nil {
				return fmt.Errorf("failed to render %s: %w", p.File, err)
			}
			if err := os.WriteFile(filepath.Join(dir, p.File), buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", p.File, err)
			}
			slog.DebugContext(ctx, "page written", "file", p.File, "cards", len(page.Gallery.Cards))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(Pages))
	for _, p := range Pages {
		written = append(written, p.File)
	}
	assets, err := copyStatic(filepath.Join(dir, "static"))
	if err != nil {
		return nil, err
	}
	for _, a := range assets {
		written = append(written, filepath.ToSlash(filepath.Join("static", a)))
	}
	return written, nil
}

func copyStatic(dir string) ([]string, error) {
	var copied []string
	static := web.Static()
	err := fs.WalkDir(static, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(name))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fs.ReadFile(static, name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		copied = append(copied, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to copy static assets: %w", err)
	}
	return copied, nil
}

// BuildForConfig loads the records described by cfg and builds the site
// into dir. Unlike the server, a load failure aborts the build.
func BuildForConfig(ctx context.Context, cfg *config.Config, dir string) ([]string, error) {
	records, err := source.LoadForConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Build(ctx, dir, records, web.OptionsForConfig(cfg)...)
}
