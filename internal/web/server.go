// Package web serves the project gallery over HTTP.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"connectrpc.com/connect"
	grpchealth "connectrpc.com/grpchealth"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"gallery.shikanime.studio/internal/config"
	"gallery.shikanime.studio/internal/gallery"
	"gallery.shikanime.studio/internal/preference"
	"gallery.shikanime.studio/internal/source"
)

// GalleryServiceName is the service name reported by the health endpoint.
const GalleryServiceName = "gallery.v1.GalleryService"

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded static assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"seq": func(n int) []int {
		return make([]int, n)
	},
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("page").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}

// Render writes p as a complete HTML document.
func Render(w io.Writer, tmpl *template.Template, p Page) error {
	return tmpl.ExecuteTemplate(w, "page.html.tmpl", p)
}

// Server holds handlers and dependencies for the gallery HTTP server.
type Server struct {
	records []gallery.Record
	opts    PageOptions
	tmpl    *template.Template
	mux     *http.ServeMux
	srv     *http.Server
}

// NewServer mounts the gallery page, the theme toggle, the static assets and
// the gRPC health handler.
func NewServer(records []gallery.Record, opts ...PageOption) (*Server, error) {
	tmpl, err := Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s := &Server{
		records: records,
		opts:    NewPageOptions(append([]PageOption{WithThemeAction("/theme")}, opts...)...),
		tmpl:    tmpl,
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("GET /index.html", s.handlePage)
	s.mux.HandleFunc("POST /theme", s.handleTheme)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(Static())))
	hpath, hhandler := grpchealth.NewHandler(HealthChecker{server: s})
	s.mux.Handle(hpath, hhandler)
	return s, nil
}

// NewServerForConfig loads the records described by cfg and returns a
// configured Server. A load failure does not prevent startup; the page shows
// the error indicator and the health check reports not serving.
func NewServerForConfig(ctx context.Context, cfg *config.Config) (*Server, error) {
	opts := OptionsForConfig(cfg)
	records, err := source.LoadForConfig(ctx, cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load projects", "error", err)
		opts = append(opts, WithLoadError(err))
	}
	return NewServer(records, opts...)
}

// OptionsForConfig returns the page options cfg describes. An unknown
// initial filter is ignored with a warning.
func OptionsForConfig(cfg *config.Config) []PageOption {
	opts := []PageOption{WithFeaturedNames(cfg.GetFeaturedNames()...)}
	if raw := cfg.GetInitialFilter(); raw != "" {
		if f := gallery.ParseFilter(raw); f.Known() {
			opts = append(opts, WithInitialFilter(f))
		} else {
			slog.Warn("Ignoring unknown initial filter", "filter", raw)
		}
	}
	return opts
}

// Handler returns the server routes.
func (s *Server) Handler() http.Handler { return s.mux }

// Records returns the number of loaded records.
func (s *Server) Records() int { return len(s.records) }

// Ready reports whether the records loaded.
func (s *Server) Ready() bool { return s.opts.loadErr == nil }

// ListenAndServe starts the HTTP server on addr using the internal mux.
func (s *Server) ListenAndServe(addr string) error {
	slog.Info("server starting", "addr", addr, "projects", len(s.records))
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(s.mux, "http.server"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close gracefully shuts down the server.
func (s *Server) Close(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("gallery/web").Start(r.Context(), "Server.handlePage")
	defer span.End()

	hints := preference.HintsFromRequest(r)
	q := r.URL.Query()
	filter := gallery.ParseFilter(q.Get("filter"))
	if filter != "" && !filter.Known() {
		slog.DebugContext(ctx, "Unknown filter; showing all projects", "filter", filter)
	}
	// The menu state is per view and is not carried back.
	q.Del("menu")
	req := PageRequest{
		Path:     r.URL.Path,
		Query:    q,
		Filter:   filter,
		Theme:    preference.PreferredTheme(preference.NewCookieStore(w, r), hints),
		Hints:    hints,
		MenuOpen: r.URL.Query().Get("menu") == "open",
	}
	span.SetAttributes(
		attribute.String("gallery.filter", string(req.Filter)),
		attribute.Bool("gallery.filter_known", filter.Known()),
	)

	p := BuildPage(s.records, req, s.opts)
	span.SetAttributes(
		attribute.String("gallery.rendered", string(p.Gallery.Filter)),
		attribute.Int("gallery.cards", len(p.Gallery.Cards)),
	)

	var buf bytes.Buffer
	if err := Render(&buf, s.tmpl, p); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "failed to render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Accept-CH", "Sec-CH-Prefers-Color-Scheme, Sec-CH-Prefers-Reduced-Motion")
	w.Header().Set("Vary", "Cookie, Sec-CH-Prefers-Color-Scheme, Sec-CH-Prefers-Reduced-Motion")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.DebugContext(ctx, "failed to write page", "error", err)
	}
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	theme := preference.ToggleTheme(preference.NewCookieStore(w, r), preference.HintsFromRequest(r))
	slog.DebugContext(r.Context(), "theme toggled", "theme", theme)
	http.Redirect(w, r, returnTo(r), http.StatusSeeOther)
}

// returnTo picks the local page to go back to after a form post.
func returnTo(r *http.Request) string {
	candidates := []string{r.FormValue("return")}
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Host == r.Host {
		target := ref.Path
		if ref.RawQuery != "" {
			target += "?" + ref.RawQuery
		}
		candidates = append(candidates, target)
	}
	for _, c := range candidates {
		if strings.HasPrefix(c, "/") && !strings.HasPrefix(c, "//") && !strings.HasPrefix(c, `/\`) {
			return c
		}
	}
	return "/"
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]any{"status": "ok", "projects": len(s.records)}
	if !s.Ready() {
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.DebugContext(r.Context(), "failed to write health", "error", err)
	}
}

// HealthChecker reports health based on whether the records loaded.
type HealthChecker struct{ server *Server }

// Check implements grpchealth.Checker.
func (c HealthChecker) Check(
	ctx context.Context,
	req *grpchealth.CheckRequest,
) (*grpchealth.CheckResponse, error) {
	_, span := otel.Tracer("gallery/web").Start(ctx, "HealthChecker.Check")
	defer span.End()
	switch req.Service {
	case "", GalleryServiceName:
		if !c.server.Ready() {
			return &grpchealth.CheckResponse{Status: grpchealth.StatusNotServing}, nil
		}
		return &grpchealth.CheckResponse{Status: grpchealth.StatusServing}, nil
	default:
		return nil, connect.NewError(
			connect.CodeNotFound,
			fmt.Errorf("unknown service: %s", req.Service),
		)
	}
}
