package crawl

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vodtools/vodindex/internal/mediator"
)

// ErrNoRenditions is returned when an item has no files to choose from.
// The caller skips the item and keeps crawling.
var ErrNoRenditions = errors.New("no renditions to select from")

// Rank bonuses. Any resolution contributes at most resolution/10, so a
// rendition inside the quality ceiling always beats one outside it, and a
// matching subtitle flag beats both.
const (
	qualityBonus  = 200
	subtitleBonus = 400
)

// Preferences steer rendition selection.
type Preferences struct {
	// MaxQuality is the highest acceptable frame height (e.g. 720).
	MaxQuality int
	// Subtitled prefers renditions with burned-in subtitles when true,
	// without when false.
	Subtitled bool
}

// SelectBest picks the highest ranking rendition. Ties go to the last
// candidate with the winning rank, which keeps the choice deterministic
// for a fixed input list.
func SelectBest(files []mediator.File, p Preferences) (*mediator.File, error) {
	if len(files) == 0 {
		return nil, ErrNoRenditions
	}
	best := -1
	var pick *mediator.File
	for i := range files {
		f := &files[i]
		rank := rankRendition(f, p)
		if rank >= best {
			best = rank
			pick = f
		}
	}
	return pick, nil
}

func rankRendition(f *mediator.File, p Preferences) int {
	res := resolution(f)
	rank := res / 10
	if res > 0 && res <= p.MaxQuality {
		rank += qualityBonus
	}
	if f.Subtitled == p.Subtitled {
		rank += subtitleBonus
	}
	return rank
}

// resolution extracts the frame height of a rendition. The label ("720p")
// is authoritative; a missing or malformed label falls back to the raw
// frame height field.
func resolution(f *mediator.File) int {
	label := strings.TrimRight(f.Label, "pP")
	if n, err := strconv.Atoi(label); err == nil {
		return n
	}
	return f.FrameHeight
}
