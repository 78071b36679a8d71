package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestStoreInitialize(t *testing.T) {
	s := NewStore()
	assert.Zero(t, s.Len())
	assert.Equal(t, FilterFeatured, s.ActiveFilter())

	src := []Record{{Name: "a", PushedAt: day("2025-01-01")}}
	require.NoError(t, s.Initialize(src))

	src[0].Name = "mutated"
	assert.Equal(t, "a", s.Records()[0].Name)

	err := s.Initialize([]Record{{Name: "b", PushedAt: day("2025-01-01")}})
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "a", s.Records()[0].Name)
}

func TestStoreSetActiveFilter(t *testing.T) {
	s := NewStore()
	assert.False(t, s.SetActiveFilter(FilterFeatured))
	assert.True(t, s.SetActiveFilter(FilterRecent))
	assert.Equal(t, FilterRecent, s.ActiveFilter())
	assert.False(t, s.SetActiveFilter(FilterRecent))

	s = NewStore(WithInitialFilter(FilterAll))
	assert.Equal(t, FilterAll, s.ActiveFilter())
}

func TestStoreFeaturedNames(t *testing.T) {
	records := []Record{
		{Name: "Kyoto", PushedAt: day("2025-01-01")},
		{Name: "Alien Invasion Case Study", PushedAt: day("2025-01-02")},
	}
	s := NewStore(WithFeaturedNames(" KYOTO ", ""))
	require.NoError(t, s.Initialize(records))

	assert.Equal(t, []string{"Kyoto"}, names(s.ComputeView(FilterFeatured)))

	view, rendered := s.Resolve(FilterFeatured)
	assert.Equal(t, FilterFeatured, rendered)
	assert.Len(t, view, 1)
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr bool
	}{
		{"valid placeholder", DefaultRecords[0], false},
		{"missing name", Record{PushedAt: day("2025-01-01")}, true},
		{"missing pushed_at", Record{Name: "x"}, true},
		{"links on published", Record{Name: "x", PushedAt: day("2025-01-01"), Links: []Link{{Href: "#", Label: "x"}}}, true},
		{"stats on placeholder", Record{Name: "x", PushedAt: day("2025-01-01"), IsPlaceholder: true, Stars: ptr.To(1)}, true},
		{"published with stats", Record{Name: "x", PushedAt: day("2025-01-01"), Stars: ptr.To(0), Forks: ptr.To(2)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecordNormalize(t *testing.T) {
	r := Record{
		Name:          "  x ",
		PushedAt:      day("2025-01-01"),
		IsPlaceholder: true,
		Stars:         ptr.To(3),
		Links:         []Link{{Href: "https://x", Label: "Repo"}},
	}
	n := r.Normalize()
	assert.Equal(t, "x", n.Name)
	assert.Nil(t, n.Stars)
	assert.Len(t, n.Links, 1)
	require.NoError(t, n.Validate())

	r.IsPlaceholder = false
	n = r.Normalize()
	assert.Empty(t, n.Links)
	assert.Equal(t, 3, *n.Stars)
}

func TestDefaultRecordsValid(t *testing.T) {
	for _, r := range DefaultRecords {
		assert.NoError(t, r.Validate(), r.Name)
	}
}
