package catalog

import (
	"math/rand"
	"sort"
)

// Sort orders understood by SortMedia.
const (
	SortNone   = ""
	SortName   = "name"
	SortNewest = "newest"
	SortOldest = "oldest"
	SortRandom = "random"
)

// SortMedia sorts a media list in place. Newest and oldest both sort
// ascending by date; writers reverse for newest on output.
func SortMedia(items []*Media, order string) {
	switch order {
	case SortNone, "none":
	case SortName:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	case SortNewest, SortOldest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	case SortRandom:
		rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	}
}

// DownloadQueue flattens all media across categories into one slice,
// de-duplicated by derived filename and sorted newest first (unknown date
// sorts as oldest). The newest-first order is what makes date-ordered disk
// eviction safe: by the time an older item needs space, only files older
// than it remain as eviction candidates.
func DownloadQueue(categories []*Category, exclude []string) []*Media {
	excluded := make(map[string]bool, len(exclude))
	for _, key := range exclude {
		excluded[key] = true
	}

	var queue []*Media
	seen := make(map[string]bool)
	for _, cat := range categories {
		if excluded[cat.Key] && !cat.Home {
			continue
		}
		for _, m := range cat.Items {
			name := m.Filename()
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			queue = append(queue, m)
		}
	}
	sort.SliceStable(queue, func(i, j int) bool { return queue[i].Date.After(queue[j].Date) })
	return queue
}
