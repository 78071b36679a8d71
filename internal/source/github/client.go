package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"k8s.io/utils/ptr"

	"gallery.shikanime.studio/internal/gallery"
)

// NewGitHubLimiter returns a rate limiter tuned for authenticated or unauthenticated GitHub API usage.
func NewGitHubLimiter(authenticated bool) *rate.Limiter {
	var limiter *rate.Limiter
	if authenticated {
		limiter = rate.NewLimiter(rate.Every(time.Hour/5000), 10)
		slog.Info(
			"Created authenticated GitHub rate limiter",
			"rate",
			"5000 requests/hour",
			"burst",
			10,
		)
	} else {
		limiter = rate.NewLimiter(rate.Every(time.Hour/60), 1)
		slog.Info("Created unauthenticated GitHub rate limiter", "rate", "60 requests/hour", "burst", 1)
	}
	return limiter
}

// Client lists public repositories as gallery records.
type Client struct {
	c            *github.Client
	l            *rate.Limiter
	includeForks bool
	perPage      int
}

// GitHubClientOptions configures the GitHub client.
type GitHubClientOptions struct {
	token        string
	limiter      *rate.Limiter
	baseURL      string
	includeForks bool
	perPage      int
}

// GitHubClientOption applies a configuration to GitHubClientOptions.
type GitHubClientOption func(*GitHubClientOptions)

// WithToken sets the personal access token for authenticated requests.
func WithToken(token string) GitHubClientOption {
	return func(o *GitHubClientOptions) { o.token = token }
}

// WithLimiter sets the rate limiter used for API calls.
func WithLimiter(l *rate.Limiter) GitHubClientOption {
	return func(o *GitHubClientOptions) { o.limiter = l }
}

// WithBaseURL points the client at another API root, such as GitHub
// Enterprise or a test server.
func WithBaseURL(u string) GitHubClientOption {
	return func(o *GitHubClientOptions) { o.baseURL = u }
}

// WithForks keeps forked repositories, which are skipped by default.
func WithForks() GitHubClientOption {
	return func(o *GitHubClientOptions) { o.includeForks = true }
}

// WithPerPage sets how many repositories are requested per user; the
// maximum GitHub serves is 100.
func WithPerPage(n int) GitHubClientOption {
	return func(o *GitHubClientOptions) { o.perPage = n }
}

// NewClient constructs a GitHub Client with the given options.
func NewClient(opts ...GitHubClientOption) (*Client, error) {
	o := GitHubClientOptions{perPage: 100}
	for _, opt := range opts {
		opt(&o)
	}
	gh := github.NewClient(nil)
	if o.token != "" {
		slog.Info("Using authenticated GitHub client")
		gh = gh.WithAuthToken(o.token)
	} else {
		slog.Warn("Using unauthenticated GitHub client (rate limited)")
	}
	if o.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(o.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub base URL %q: %w", o.baseURL, err)
		}
		gh.BaseURL = u
	}
	if o.limiter == nil {
		o.limiter = NewGitHubLimiter(o.token != "")
	}
	return &Client{c: gh, l: o.limiter, includeForks: o.includeForks, perPage: o.perPage}, nil
}

// ListRecords returns the public repositories of every user, most recently
// pushed first per user, in the order users are given.
func (c *Client) ListRecords(ctx context.Context, users []string) ([]gallery.Record, error) {
	tracer := otel.Tracer("gallery/github")
	ctx, span := tracer.Start(ctx, "Client.ListRecords")
	span.SetAttributes(attribute.Int("users_len", len(users)))
	defer span.End()

	results := make([][]gallery.Record, len(users))
	wg, gctx := errgroup.WithContext(ctx)
	for i, user := range users {
		wg.Go(func() error {
			records, err := c.ListUserRecords(gctx, user)
			if err != nil {
				return err
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
	var out []gallery.Record
	for _, records := range results {
		out = append(out, records...)
	}
	return out, nil
}

// ListUserRecords returns one page of the user's owned repositories.
func (c *Client) ListUserRecords(ctx context.Context, user string) ([]gallery.Record, error) {
	if err := c.l.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}
	slog.InfoContext(ctx, "Fetching repositories from GitHub API", "user", user)
	repos, _, err := c.c.Repositories.ListByUser(ctx, user, &github.RepositoryListByUserOptions{
		Type:        "owner",
		Sort:        "pushed",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: c.perPage},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories for %s: %w", user, err)
	}
	records := make([]gallery.Record, 0, len(repos))
	for _, repo := range repos {
		if repo.GetFork() && !c.includeForks {
			continue
		}
		if repo.GetArchived() || repo.GetPrivate() {
			continue
		}
		records = append(records, RecordFromRepository(repo))
	}
	slog.InfoContext(ctx, "Retrieved repositories from GitHub API", "user", user, "repos", len(repos), "records", len(records))
	return records, nil
}

// RecordFromRepository converts a GitHub repository into a published record.
func RecordFromRepository(repo *github.Repository) gallery.Record {
	r := gallery.Record{
		Name:        repo.GetName(),
		Description: repo.GetDescription(),
		Language:    repo.GetLanguage(),
		Topics:      append([]string(nil), repo.Topics...),
		HTMLURL:     repo.GetHTMLURL(),
		Homepage:    repo.GetHomepage(),
		Stars:       ptr.To(ptr.Deref(repo.StargazersCount, 0)),
		Forks:       ptr.To(ptr.Deref(repo.ForksCount, 0)),
	}
	if repo.PushedAt != nil {
		r.PushedAt = repo.PushedAt.UTC()
	}
	return r
}
