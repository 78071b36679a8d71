package gallery

import "time"

// DefaultRecords are the curated entries shown before any repository is
// published.
var DefaultRecords = []Record{
	{
		Name:        "Kyoto Travel Guide",
		Description: "A multi-page travel experience that blends curated itineraries, cultural highlights, and responsive layouts optimized for GitHub Pages.",
		Status:      "Live on GitHub Pages",
		Focus:       "Showcases my front-end storytelling, accessibility habits, and attention to detail learned in BSIT coursework.",
		Language:    "HTML · CSS · JS",
		Topics:      []string{"Responsive design", "Storytelling", "Accessibility"},
		Links: []Link{
			{Href: "https://github.com/GaveAnOreo/Kyoto", Label: "GitHub repository"},
			{Href: "https://gaveanoreo.github.io/Kyoto/", Label: "Live site"},
		},
		PushedAt:      time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC),
		IsPlaceholder: true,
		IsFeatured:    true,
	},
	{
		Name:        "Xiaomi 15T Pro Launch Page",
		Description: "Product microsite inspired by Xiaomi’s flagship phone, featuring specification breakdowns, hero interactions, and purchase CTAs.",
		Status:      "Live on GitHub Pages",
		Focus:       "Demonstrates my ability to translate tech specs into engaging layouts with clear hierarchy and motion cues.",
		Language:    "HTML · CSS · JS",
		Topics:      []string{"Product design", "Landing page", "Interaction design"},
		Links: []Link{
			{Href: "https://github.com/GaveAnOreo/Xiaomi-15T-Pro", Label: "GitHub repository"},
			{Href: "https://gaveanoreo.github.io/Xiaomi-15T-Pro/", Label: "Live site"},
		},
		PushedAt:      time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC),
		IsPlaceholder: true,
		IsFeatured:    true,
	},
}
