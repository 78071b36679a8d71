package gallery

import (
	"slices"
	"strings"
)

// Filter selects which subset of the collection is shown.
type Filter string

const (
	FilterFeatured Filter = "featured"
	FilterRecent   Filter = "recent"
	FilterAll      Filter = "all"
)

// Filters lists the known filter keys in display order.
var Filters = []Filter{FilterFeatured, FilterRecent, FilterAll}

// RecentLimit caps the number of records in the recent view.
const RecentLimit = 6

// FeaturedNames is the allow-list of lower-cased project names that always
// appear in the featured view.
var FeaturedNames = []string{
	"alien invasion case study",
	"study companion prototype",
}

// ParseFilter maps a raw key to a Filter. Unknown keys are kept as-is and
// behave like FilterAll.
func ParseFilter(s string) Filter {
	return Filter(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether f is one of the declared filter keys.
func (f Filter) Known() bool {
	return slices.Contains(Filters, f)
}

func (f Filter) String() string { return string(f) }

// Featured reports whether r belongs in the featured view for the given
// allow-list of lower-cased names.
func Featured(r Record, names []string) bool {
	return r.IsFeatured || slices.Contains(names, strings.ToLower(r.Name))
}

// ComputeView returns the records selected by f, using FeaturedNames as the
// allow-list.
func ComputeView(records []Record, f Filter) []Record {
	return computeView(records, f, FeaturedNames)
}

func computeView(records []Record, f Filter, names []string) []Record {
	if len(records) == 0 {
		return []Record{}
	}
	switch f {
	case FilterFeatured:
		out := make([]Record, 0, len(records))
		for _, r := range records {
			if Featured(r, names) {
				out = append(out, r)
			}
		}
		return out
	case FilterRecent:
		out := slices.Clone(records)
		slices.SortStableFunc(out, func(a, b Record) int {
			return b.PushedAt.Compare(a.PushedAt)
		})
		if len(out) > RecentLimit {
			out = out[:RecentLimit]
		}
		return out
	default:
		return slices.Clone(records)
	}
}

// Resolve computes the view for f and falls back to the recent view once
// when a non-empty collection has no featured records. It returns the view
// and the filter that produced it.
func Resolve(records []Record, f Filter) ([]Record, Filter) {
	return resolve(records, f, FeaturedNames)
}

func resolve(records []Record, f Filter, names []string) ([]Record, Filter) {
	primary := computeView(records, f, names)
	if f == FilterFeatured && len(primary) == 0 && len(records) > 0 {
		return computeView(records, FilterRecent, names), FilterRecent
	}
	return primary, f
}
