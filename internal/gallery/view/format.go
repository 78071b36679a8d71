package view

import (
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"k8s.io/utils/ptr"
)

type timeUnit string

const (
	unitSecond timeUnit = "second"
	unitMinute timeUnit = "minute"
	unitHour   timeUnit = "hour"
	unitDay    timeUnit = "day"
	unitWeek   timeUnit = "week"
	unitMonth  timeUnit = "month"
	unitYear   timeUnit = "year"
)

// divisions walks a duration in seconds up to years. Each amount is the
// number of the current unit in the next one.
var divisions = []struct {
	amount float64
	unit   timeUnit
}{
	{60, unitSecond},
	{60, unitMinute},
	{24, unitHour},
	{7, unitDay},
	{4.34524, unitWeek},
	{12, unitMonth},
	{math.Inf(1), unitYear},
}

// Phrases that replace the numeric form for 0 and ±1, matching English
// "numeric: auto" relative time formatting.
var namedOffsets = map[timeUnit]map[int]string{
	unitSecond: {0: "now"},
	unitMinute: {0: "this minute"},
	unitHour:   {0: "this hour"},
	unitDay:    {-1: "yesterday", 0: "today", 1: "tomorrow"},
	unitWeek:   {-1: "last week", 0: "this week", 1: "next week"},
	unitMonth:  {-1: "last month", 0: "this month", 1: "next month"},
	unitYear:   {-1: "last year", 0: "this year", 1: "next year"},
}

var printer = newPrinter()

func newPrinter() *message.Printer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, d := range divisions {
		u := string(d.unit)
		_ = b.Set(language.English, "relative.future."+u, plural.Selectf(1, "%d",
			plural.One, "in %d "+u,
			plural.Other, "in %d "+u+"s",
		))
		_ = b.Set(language.English, "relative.past."+u, plural.Selectf(1, "%d",
			plural.One, "%d "+u+" ago",
			plural.Other, "%d "+u+"s ago",
		))
	}
	return message.NewPrinter(language.English, message.Catalog(b))
}

// RelativeTime describes t relative to now in the coarsest unit whose
// magnitude is at least one, e.g. "3 days ago" or "in 2 weeks". A zero t
// yields the empty string.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	duration := t.Sub(now).Seconds()
	for _, d := range divisions {
		if math.Abs(duration) < d.amount {
			return formatRelative(roundHalfUp(duration), d.unit)
		}
		duration /= d.amount
	}
	return formatRelative(roundHalfUp(duration), unitYear)
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf,
// so -2.5 becomes -2.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func formatRelative(value int, unit timeUnit) string {
	if phrase, ok := namedOffsets[unit][value]; ok {
		return phrase
	}
	if value < 0 {
		return printer.Sprintf("relative.past."+string(unit), -value)
	}
	return printer.Sprintf("relative.future."+string(unit), value)
}

var compactSuffixes = []struct {
	scale  float64
	suffix string
}{
	{1e3, "K"},
	{1e6, "M"},
	{1e9, "B"},
	{1e12, "T"},
}

// CompactNumber abbreviates a count with at most one fraction digit, e.g.
// 1500 becomes "1.5K". A nil count renders as "0".
func CompactNumber(v *int) string {
	n := ptr.Deref(v, 0)
	if n < 0 {
		return "-" + compact(-float64(n))
	}
	return compact(float64(n))
}

func compact(n float64) string {
	if n < compactSuffixes[0].scale {
		return strconv.FormatFloat(math.Round(n), 'f', -1, 64)
	}
	i := 0
	for i+1 < len(compactSuffixes) && n >= compactSuffixes[i+1].scale {
		i++
	}
	scaled := math.Round(n/compactSuffixes[i].scale*10) / 10
	// 999_950 rounds to 1000K; promote it to the next suffix.
	if scaled >= 1000 && i+1 < len(compactSuffixes) {
		i++
		scaled = math.Round(n/compactSuffixes[i].scale*10) / 10
	}
	return humanize.FtoaWithDigits(scaled, 1) + compactSuffixes[i].suffix
}
