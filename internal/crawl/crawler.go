package crawl

import (
	"fmt"
	"regexp"
	"time"

	"github.com/vodtools/vodindex/internal/catalog"
	"github.com/vodtools/vodindex/internal/mediator"
)

// Tag used by the API to mark items that should not be indexed.
const hiddenTag = "WebExclude"

// trailing fractional seconds and zone marker on firstPublished stamps
var dateSuffix = regexp.MustCompile(`\.[0-9]+Z$`)

const dateLayout = "2006-01-02T15:04:05"

// Crawler walks the remote category tree and accumulates Category/Media
// records. Zero value is not usable; set Client and Prefs.
type Crawler struct {
	Client *mediator.Client
	Prefs  Preferences

	// Exclude lists category keys that are never enqueued for expansion.
	Exclude []string
	// Filter, when non-empty, drops media whose primary category is not
	// in it (used by latest/update modes).
	Filter []string
	// MinDate drops media published before it. Zero disables the filter;
	// items with unknown dates always pass.
	MinDate time.Time
	// Update appends flat-feed items to the category matching their
	// primary key, synthesizing a placeholder when none was crawled.
	Update bool

	// Progress is called once per fetched category. Warn is called for
	// item-local problems that do not abort the crawl. Both may be nil.
	Progress func(key, name string)
	Warn     func(format string, a ...interface{})
}

// Crawl fetches entryKeys and every reachable subcategory, each key at most
// once, and returns the accumulated categories in fetch order. A missing
// category or language aborts the whole crawl.
func (c *Crawler) Crawl(lang string, entryKeys []string) ([]*catalog.Category, error) {
	var result []*catalog.Category

	// The queue doubles as the seen-set: a key already present is never
	// appended again, so each category is fetched at most once.
	queue := make([]string, 0, len(entryKeys))
	queue = append(queue, entryKeys...)

	for i := 0; i < len(queue); i++ {
		key := queue[i]

		response, err := c.Client.GetCategory(lang, key)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", key, err)
		}

		cat := &catalog.Category{
			Key:  response.Key,
			Name: response.Name,
			Home: contains(entryKeys, response.Key),
		}
		result = append(result, cat)
		c.progress(cat.Key, cat.Name)

		for _, sub := range response.Subcategories {
			// Always record the tree edge so output writers can link to
			// the category, even when it is excluded from expansion.
			cat.Subcategories = append(cat.Subcategories, &catalog.Category{
				Key:  sub.Key,
				Name: sub.Name,
			})
			if contains(c.Exclude, sub.Key) || containsTag(sub.Tags, hiddenTag) {
				continue
			}
			if !contains(queue, sub.Key) {
				queue = append(queue, sub.Key)
			}
		}

		for j := range response.Media {
			item := &response.Media[j]
			media, ok := c.buildMedia(lang, item)
			if !ok {
				continue
			}
			c.attach(&result, cat, media)
		}
	}
	return result, nil
}

// buildMedia turns a wire item into a Media record, applying the
// item-local filters. ok is false when the item should be skipped.
func (c *Crawler) buildMedia(lang string, item *mediator.Item) (*catalog.Media, bool) {
	if item.HasTag(hiddenTag) {
		return nil, false
	}
	if len(c.Filter) > 0 && !contains(c.Filter, item.PrimaryCategory) {
		return nil, false
	}

	file, err := SelectBest(item.Files, c.Prefs)
	if err != nil {
		c.warn("no usable rendition, skipping: %s", item.Title)
		return nil, false
	}

	media := &catalog.Media{
		Key:             item.Key,
		Name:            item.Title,
		URL:             file.URL,
		Size:            file.Filesize,
		MD5:             file.Checksum,
		Duration:        int(item.Duration),
		PrimaryCategory: item.PrimaryCategory,
	}
	if file.Subtitles != nil && file.Subtitles.URL != "" {
		media.Subtitles = map[string]string{lang: file.Subtitles.URL}
	}

	if item.FirstPublished != "" {
		stamp := dateSuffix.ReplaceAllString(item.FirstPublished, "")
		date, err := time.ParseInLocation(dateLayout, stamp, time.Local)
		if err != nil {
			c.warn("unparsable publish date %q: %s", item.FirstPublished, item.Title)
		} else {
			media.Date = date
			if !c.MinDate.IsZero() && date.Before(c.MinDate) {
				return nil, false
			}
		}
	}
	return media, true
}

// attach places the media record under the right category. In update mode
// that is the category matching the item's primary key, created as a
// homeless placeholder when the crawl never visited it.
func (c *Crawler) attach(result *[]*catalog.Category, current *catalog.Category, media *catalog.Media) {
	if !c.Update || media.PrimaryCategory == "" {
		current.Items = append(current.Items, media)
		return
	}
	parent := catalog.FindKey(*result, media.PrimaryCategory)
	if parent == nil {
		parent = &catalog.Category{Key: media.PrimaryCategory, Homeless: true}
		*result = append(*result, parent)
	}
	parent.Items = append(parent.Items, media)
}

// SubtreeKeys returns key and every category key reachable below it.
// Used to turn an include-list into a primary-category filter.
func (c *Crawler) SubtreeKeys(lang, key string) ([]string, error) {
	queue := []string{key}
	for i := 0; i < len(queue); i++ {
		response, err := c.Client.GetCategory(lang, queue[i])
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", queue[i], err)
		}
		for _, sub := range response.Subcategories {
			if !contains(queue, sub.Key) {
				queue = append(queue, sub.Key)
			}
		}
	}
	return queue, nil
}

func (c *Crawler) progress(key, name string) {
	if c.Progress != nil {
		c.Progress(key, name)
	}
}

func (c *Crawler) warn(format string, a ...interface{}) {
	if c.Warn != nil {
		c.Warn(format, a...)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsTag(tags []string, tag string) bool {
	return contains(tags, tag)
}
