// Package source loads the gallery's record collection at start-up.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"gallery.shikanime.studio/internal/config"
	"gallery.shikanime.studio/internal/gallery"
	"gallery.shikanime.studio/internal/source/github"
	"gallery.shikanime.studio/internal/source/markdown"
)

// Source yields records.
type Source interface {
	Name() string
	Records(ctx context.Context) ([]gallery.Record, error)
}

// Static serves a fixed list of records.
type Static []gallery.Record

func (Static) Name() string { return "static" }

func (s Static) Records(context.Context) ([]gallery.Record, error) {
	return slices.Clone(s), nil
}

// Catalog reads curated records from a markdown file.
type Catalog struct {
	Path    string
	Options []markdown.Option
}

func (c Catalog) Name() string { return "catalog:" + c.Path }

func (c Catalog) Records(context.Context) ([]gallery.Record, error) {
	return markdown.LoadFile(c.Path, c.Options...)
}

// GitHub lists the public repositories of Users.
type GitHub struct {
	Client *github.Client
	Users  []string
}

func (g GitHub) Name() string { return "github:" + strings.Join(g.Users, ",") }

func (g GitHub) Records(ctx context.Context) ([]gallery.Record, error) {
	return g.Client.ListRecords(ctx, g.Users)
}

type optional struct{ Source }

// Optional wraps src so that its failure is logged and treated as no
// records instead of failing the load.
func Optional(src Source) Source { return optional{src} }

func (o optional) Records(ctx context.Context) ([]gallery.Record, error) {
	records, err := o.Source.Records(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Skipping record source", "source", o.Name(), "error", err)
		return nil, nil
	}
	return records, nil
}

// Load fetches every source concurrently and concatenates their records in
// source order. Records are normalized, and a name seen twice
// (case-insensitively) keeps its first occurrence.
func Load(ctx context.Context, sources ...Source) ([]gallery.Record, error) {
	tracer := otel.Tracer("gallery/source")
	ctx, span := tracer.Start(ctx, "source.Load")
	span.SetAttributes(attribute.Int("sources_len", len(sources)))
	defer span.End()

	results := make([][]gallery.Record, len(sources))
	wg, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		wg.Go(func() error {
			records, err := src.Records(gctx)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", src.Name(), err)
			}
			results[i] = records
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	seen := make(map[string]bool)
	var out []gallery.Record
	for i, records := range results {
		for _, r := range records {
			r = r.Normalize()
			key := strings.ToLower(r.Name)
			if seen[key] {
				slog.DebugContext(ctx, "Dropping duplicate record", "name", r.Name, "source", sources[i].Name())
				continue
			}
			if err := r.Validate(); err != nil {
				slog.WarnContext(ctx, "Dropping invalid record", "source", sources[i].Name(), "error", err)
				continue
			}
			seen[key] = true
			out = append(out, r)
		}
	}
	span.SetAttributes(attribute.Int("records_len", len(out)))
	slog.InfoContext(ctx, "Loaded project records", "sources", len(sources), "records", len(out))
	return out, nil
}

// SourcesForConfig returns the curated source (the catalog file when
// configured, the built-in records otherwise) followed by an optional
// GitHub source when users are configured.
func SourcesForConfig(cfg *config.Config) ([]Source, error) {
	var sources []Source
	if path := cfg.GetCatalogPath(); path != "" {
		catalog := Catalog{Path: path}
		if section := cfg.GetCatalogStartSection(); section != "" {
			catalog.Options = append(catalog.Options, markdown.WithStartSection(section))
		}
		sources = append(sources, catalog)
	} else {
		sources = append(sources, Static(gallery.DefaultRecords))
	}
	if users := cfg.GetGitHubUsers(); len(users) > 0 {
		var opts []github.GitHubClientOption
		if token := cfg.GetGitHubToken(); token != "" {
			opts = append(opts,
				github.WithToken(token),
				github.WithLimiter(github.NewGitHubLimiter(true)),
			)
		}
		if u := cfg.GetGitHubAPIURL(); u != "" {
			opts = append(opts, github.WithBaseURL(u))
		}
		if cfg.GetGitHubIncludeForks() {
			opts = append(opts, github.WithForks())
		}
		if n := cfg.GetGitHubPerPage(); n > 0 {
			opts = append(opts, github.WithPerPage(n))
		}
		client, err := github.NewClient(opts...)
		if err != nil {
			return nil, err
		}
		sources = append(sources, Optional(GitHub{Client: client, Users: users}))
	}
	return sources, nil
}

// LoadForConfig loads the records for cfg within its source timeout.
func LoadForConfig(ctx context.Context, cfg *config.Config) ([]gallery.Record, error) {
	sources, err := SourcesForConfig(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.GetSourceTimeout())
	defer cancel()
	return Load(ctx, sources...)
}
