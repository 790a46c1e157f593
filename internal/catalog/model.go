package catalog

import (
	"net/url"
	"path"
	"time"
)

// Category is a node in the remote content taxonomy. Subcategories are tree
// edges: the same key may appear as a child in several places, but the
// category behind it is fetched and expanded only once per crawl.
type Category struct {
	Key  string
	Name string
	// Home marks a crawl entry point, as opposed to a category that was
	// discovered during traversal.
	Home bool
	// Synthesized placeholder created to regroup flat feed items under
	// their true parent key (update mode). Has no name.
	Homeless bool

	Subcategories []*Category
	Items         []*Media
}

// Media is one downloadable content item with its selected rendition.
// Content fields are fixed at crawl time; File is resolved later by the
// download phase.
type Media struct {
	// Language-agnostic key used to match the same video across language
	// indexes when merging subtitle data.
	Key  string
	Name string
	URL  string
	// Expected byte length and MD5, zero values when unknown.
	Size int64
	MD5  string
	// Publish time, zero when unknown. Unknown disables the min-date
	// filter and the eviction safety check for this item.
	Date time.Time
	// Duration in seconds, informational (playlist writers).
	Duration int
	// Primary category key as reported by the API.
	PrimaryCategory string
	// Subtitle URLs by language code.
	Subtitles map[string]string

	// Resolved local path, empty until a download/check succeeds.
	File string
}

// Filename derives the on-disk identity of the media item from its URL.
// Two items with the same filename refer to the same download target.
func (m *Media) Filename() string {
	return URLBasename(m.URL)
}

// URLBasename returns the last path element of a URL, ignoring query parts.
func URLBasename(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return path.Base(rawurl)
	}
	return path.Base(u.Path)
}

// FindKey returns the category with the given key, or nil.
func FindKey(categories []*Category, key string) *Category {
	for _, c := range categories {
		if c.Key == key {
			return c
		}
	}
	return nil
}
