package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery.shikanime.studio/internal/config"
	"gallery.shikanime.studio/internal/gallery"
)

type failing struct{ err error }

func (failing) Name() string { return "failing" }

func (f failing) Records(context.Context) ([]gallery.Record, error) { return nil, f.err }

var when = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestLoadOrderAndDedup(t *testing.T) {
	first := Static{
		{Name: "Kyoto", PushedAt: when, IsPlaceholder: true},
		{Name: "api", PushedAt: when, IsPlaceholder: true},
	}
	second := Static{
		{Name: "API", PushedAt: when, HTMLURL: "https://github.com/me/api"},
		{Name: "cli", PushedAt: when, HTMLURL: "https://github.com/me/cli"},
		{Name: "", PushedAt: when},
	}

	records, err := Load(context.Background(), first, second)
	require.NoError(t, err)

	var got []string
	for _, r := range records {
		got = append(got, r.Name)
	}
	assert.Equal(t, []string{"Kyoto", "api", "cli"}, got)
	assert.True(t, records[1].IsPlaceholder)
}

func TestLoadRequiredFailure(t *testing.T) {
	boom := errors.New("boom")
	_, err := Load(context.Background(), Static(gallery.DefaultRecords), failing{boom})
	assert.ErrorIs(t, err, boom)
}

func TestLoadOptionalFailure(t *testing.T) {
	records, err := Load(context.Background(), Static(gallery.DefaultRecords), Optional(failing{errors.New("offline")}))
	require.NoError(t, err)
	assert.Len(t, records, len(gallery.DefaultRecords))
}

func TestLoadNoSources(t *testing.T) {
	records, err := Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSourcesForConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		sources, err := SourcesForConfig(config.New())
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, "static", sources[0].Name())
	})

	t.Run("catalog and github", func(t *testing.T) {
		cfg := config.New()
		cfg.Set("CATALOG_PATH", "projects.md")
		cfg.Set("GITHUB_USERS", "alice,bob")
		sources, err := SourcesForConfig(cfg)
		require.NoError(t, err)
		require.Len(t, sources, 2)
		assert.Equal(t, "catalog:projects.md", sources[0].Name())
		assert.Equal(t, "github:alice,bob", sources[1].Name())
	})
}

func TestLoadForConfigCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.md")
	require.NoError(t, os.WriteFile(path, []byte("## Alien Invasion Case Study\n\n- Updated: 2025-02-02\n"), 0o644))
	cfg := config.New()
	cfg.Set("CATALOG_PATH", path)

	records, err := LoadForConfig(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Alien Invasion Case Study", records[0].Name)
	assert.True(t, records[0].IsPlaceholder)

	cfg.Set("CATALOG_PATH", filepath.Join(t.TempDir(), "missing.md"))
	_, err = LoadForConfig(context.Background(), cfg)
	assert.Error(t, err)
}

func TestLoadForConfigCatalogSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.md")
	require.NoError(t, os.WriteFile(path, []byte(`# Drafts

## Draft Idea

- Updated: 2025-01-01

# Published

## Kyoto Travel Guide

- Updated: 2025-04-15
`), 0o644))
	cfg := config.New()
	cfg.Set("CATALOG_PATH", path)
	cfg.Set("CATALOG_START_SECTION", "Published")

	records, err := LoadForConfig(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Kyoto Travel Guide", records[0].Name)
}

func TestLoadForConfigGitHub(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	mux.HandleFunc("/users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[
  {"name": "api", "html_url": "https://github.com/alice/api", "pushed_at": "2025-06-01T10:00:00Z"},
  {"name": "forked", "fork": true, "html_url": "https://github.com/alice/forked", "pushed_at": "2025-06-02T10:00:00Z"}
]`)
	})

	tests := []struct {
		forks bool
		want  []string
	}{
		{false, []string{"Kyoto Travel Guide", "Xiaomi 15T Pro Launch Page", "api"}},
		{true, []string{"Kyoto Travel Guide", "Xiaomi 15T Pro Launch Page", "api", "forked"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("forks=%v", tt.forks), func(t *testing.T) {
			cfg := config.New()
			cfg.Set("GITHUB_USERS", "alice")
			cfg.Set("GITHUB_API_URL", srv.URL)
			cfg.Set("GITHUB_PER_PAGE", 25)
			cfg.Set("GITHUB_INCLUDE_FORKS", tt.forks)

			records, err := LoadForConfig(context.Background(), cfg)
			require.NoError(t, err)
			var got []string
			for _, r := range records {
				got = append(got, r.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
