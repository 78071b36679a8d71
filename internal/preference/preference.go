// Package preference stores visitor display preferences such as the theme.
package preference

import (
	"net/http"
	"strings"
	"time"
)

// ThemeKey is the key the theme preference is stored under.
const ThemeKey = "preferred-theme"

// Store is a key-value store for preferences.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// CookieStore reads preferences from the request cookies and writes them
// back as long-lived cookies on the response.
type CookieStore struct {
	r      *http.Request
	w      http.ResponseWriter
	maxAge time.Duration
	set    map[string]string
}

// NewCookieStore binds a store to one request/response pair.
func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{r: r, w: w, maxAge: 365 * 24 * time.Hour, set: map[string]string{}}
}

func (s *CookieStore) Get(key string) (string, bool) {
	if v, ok := s.set[key]; ok {
		return v, true
	}
	c, err := s.r.Cookie(key)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

func (s *CookieStore) Set(key, value string) {
	s.set[key] = value
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Theme is the page color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Label is the text shown on the toggle button.
func (t Theme) Label() string {
	if t == ThemeDark {
		return "Dark"
	}
	return "Light"
}

// Hints carries the media preferences a client advertises.
type Hints struct {
	PrefersDark          bool
	PrefersReducedMotion bool
}

// HintsFromRequest reads the Sec-CH-Prefers-* client hints.
func HintsFromRequest(r *http.Request) Hints {
	return Hints{
		PrefersDark:          strings.EqualFold(r.Header.Get("Sec-CH-Prefers-Color-Scheme"), "dark"),
		PrefersReducedMotion: strings.EqualFold(r.Header.Get("Sec-CH-Prefers-Reduced-Motion"), "reduce"),
	}
}

// PreferredTheme returns the stored theme when it is valid, otherwise dark
// when the client hints at it. It returns "" when nothing is known, leaving
// the choice to the prefers-color-scheme media query.
func PreferredTheme(s Store, h Hints) Theme {
	if v, ok := s.Get(ThemeKey); ok {
		switch Theme(v) {
		case ThemeLight, ThemeDark:
			return Theme(v)
		}
	}
	if h.PrefersDark {
		return ThemeDark
	}
	return ""
}

// ResolveTheme is PreferredTheme defaulting to light.
func ResolveTheme(s Store, h Hints) Theme {
	if t := PreferredTheme(s, h); t != "" {
		return t
	}
	return ThemeLight
}

// ToggleTheme flips the current theme and stores the result.
func ToggleTheme(s Store, h Hints) Theme {
	next := ResolveTheme(s, h).Toggle()
	s.Set(ThemeKey, string(next))
	return next
}

// ScrollBehavior is the scroll behavior anchors should use.
func (h Hints) ScrollBehavior() string {
	if h.PrefersReducedMotion {
		return "auto"
	}
	return "smooth"
}
