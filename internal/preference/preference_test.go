package preference

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore map[string]string

func (m mapStore) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapStore) Set(key, value string) { m[key] = value }

func TestResolveTheme(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		hints  Hints
		want   Theme
	}{
		{"default", "", Hints{}, ThemeLight},
		{"prefers dark", "", Hints{PrefersDark: true}, ThemeDark},
		{"stored wins", "light", Hints{PrefersDark: true}, ThemeLight},
		{"stored dark", "dark", Hints{}, ThemeDark},
		{"invalid stored ignored", "sepia", Hints{PrefersDark: true}, ThemeDark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mapStore{}
			if tt.stored != "" {
				s.Set(ThemeKey, tt.stored)
			}
			assert.Equal(t, tt.want, ResolveTheme(s, tt.hints))
		})
	}
}

func TestPreferredTheme(t *testing.T) {
	assert.Equal(t, Theme(""), PreferredTheme(mapStore{}, Hints{}))
	assert.Equal(t, Theme(""), PreferredTheme(mapStore{ThemeKey: "sepia"}, Hints{}))
	assert.Equal(t, ThemeDark, PreferredTheme(mapStore{}, Hints{PrefersDark: true}))
	assert.Equal(t, ThemeLight, PreferredTheme(mapStore{ThemeKey: "light"}, Hints{PrefersDark: true}))
}

func TestToggleTheme(t *testing.T) {
	s := mapStore{}
	assert.Equal(t, ThemeDark, ToggleTheme(s, Hints{}))
	v, ok := s.Get(ThemeKey)
	require.True(t, ok)
	assert.Equal(t, "dark", v)
	assert.Equal(t, ThemeLight, ToggleTheme(s, Hints{}))
	assert.Equal(t, "Light", ThemeLight.Label())
	assert.Equal(t, "Dark", ThemeDark.Label())
}

func TestCookieStore(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: ThemeKey, Value: "dark"})
	w := httptest.NewRecorder()
	s := NewCookieStore(w, r)

	v, ok := s.Get(ThemeKey)
	require.True(t, ok)
	assert.Equal(t, "dark", v)

	_, ok = s.Get("missing")
	assert.False(t, ok)

	s.Set(ThemeKey, "light")
	v, _ = s.Get(ThemeKey)
	assert.Equal(t, "light", v)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ThemeKey, cookies[0].Name)
	assert.Equal(t, "light", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Positive(t, cookies[0].MaxAge)
}

func TestHintsFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, Hints{}, HintsFromRequest(r))
	assert.Equal(t, "smooth", HintsFromRequest(r).ScrollBehavior())

	r.Header.Set("Sec-CH-Prefers-Color-Scheme", "dark")
	r.Header.Set("Sec-CH-Prefers-Reduced-Motion", "reduce")
	h := HintsFromRequest(r)
	assert.True(t, h.PrefersDark)
	assert.True(t, h.PrefersReducedMotion)
	assert.Equal(t, "auto", h.ScrollBehavior())
}
