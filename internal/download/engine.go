package download

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vodtools/vodindex/internal/catalog"
	"github.com/vodtools/vodindex/internal/util"
)

// Suffix of in-progress downloads; makes a partial file externally
// distinguishable from a complete one.
const partSuffix = ".part"

// Suffix of marker files recording evicted downloads that must not be
// fetched again.
const deletedSuffix = ".deleted"

// ErrDownloadFailed means both the resume and the full-download budget were
// spent without producing a valid file. The caller logs and moves on.
var ErrDownloadFailed = errors.New("download failed")

// Engine resolves one media item at a time to an on-disk file. Fields are
// read-only after construction; the engine never runs concurrently.
type Engine struct {
	Fetcher *Fetcher
	Dir     string
	// Checksums enables MD5 validation when the item carries a sum.
	Checksums bool
	Log       func(format string, a ...interface{})
	Warn      func(format string, a ...interface{})
}

// DownloadMedia downloads and checks one media file, returning the local
// path. With checkOnly set it never touches the network and returns "" for
// anything not already valid on disk.
//
// Per invocation there is at most one resume attempt and at most one full
// download attempt. A complete file with a bad size or checksum is deleted
// and re-fetched; after the fresh download has been renamed into place,
// remaining mismatches are logged but the file is kept.
func (e *Engine) DownloadMedia(m *catalog.Media, checkOnly bool) (string, error) {
	if err := util.EnsureDir(e.Dir); err != nil {
		return "", err
	}

	base := m.Filename()
	final := filepath.Join(e.Dir, base)
	part := final + partSuffix

	resumed := false
	downloaded := false

	for {
		if _, err := os.Stat(final); err == nil {
			// Stamp with the publish date so the eviction loop can order
			// files by age.
			if !m.Date.IsZero() {
				_ = util.SetFileTime(final, m.Date)
			}

			status, err := CheckFile(final, m.Size, m.MD5, e.Checksums)
			if err != nil {
				return "", err
			}
			if status == StatusOK {
				return final, nil
			}
			e.warn("%s, deleting: %s", status, base)
			if err := os.Remove(final); err != nil {
				return "", err
			}
			continue
		}

		if checkOnly {
			return "", nil
		}

		if fi, err := os.Stat(part); err == nil {
			// Resume once when the partial file is short.
			if m.Size > 0 && fi.Size() < m.Size && !resumed {
				resumed = true
				e.log("resuming: %s (%s)", base+partSuffix, m.Name)
				if err := e.Fetcher.Fetch(m.URL, part, true); err != nil {
					e.warn("resume failed: %v", err)
				}
				continue
			}

			status, err := CheckFile(part, m.Size, m.MD5, e.Checksums)
			if err != nil {
				return "", err
			}
			if status == StatusOK {
				if !m.Date.IsZero() {
					_ = util.SetFileTime(part, m.Date)
				}
				if err := os.Rename(part, final); err != nil {
					return "", err
				}
				return final, nil
			}
			e.warn("%s, deleting: %s", status, base+partSuffix)
			if err := os.Remove(part); err != nil {
				return "", err
			}
			continue
		}

		if downloaded {
			// Resume and full download both spent; nothing left to try.
			e.warn("failed to download: %s (%s)", base, m.Name)
			return "", ErrDownloadFailed
		}
		downloaded = true
		e.log("downloading: %s (%s)", base, m.Name)
		if err := e.Fetcher.Fetch(m.URL, part, false); err != nil {
			e.warn("download failed: %v", err)
		}

		fi, err := os.Stat(part)
		if err != nil || fi.Size() == 0 {
			_ = os.Remove(part)
			e.warn("failed to download: %s (%s)", base, m.Name)
			return "", ErrDownloadFailed
		}
		if !m.Date.IsZero() {
			_ = util.SetFileTime(part, m.Date)
		}
		if err := os.Rename(part, final); err != nil {
			return "", err
		}

		// Terminal state: the fresh download is kept even when its size or
		// checksum disagrees, to avoid chasing a perfect file forever.
		if m.Size > 0 && fi.Size() != m.Size {
			e.warn("size mismatch on %s (%d, expected %d), keeping", base, fi.Size(), m.Size)
		} else if e.Checksums && m.MD5 != "" {
			if sum, err := util.MD5File(final); err == nil && sum != m.MD5 {
				e.warn("checksum mismatch on %s, keeping", base)
			}
		}
		return final, nil
	}
}

// SkipMarkerExists reports whether the media item was evicted in a previous
// run and must not be fetched again.
func (e *Engine) SkipMarkerExists(m *catalog.Media) bool {
	_, err := os.Stat(filepath.Join(e.Dir, m.Filename()+deletedSuffix))
	return err == nil
}

// DownloadSubtitles fetches every subtitle file attached to the item.
// Subtitle files are small: no resume, no rate limiting.
func (e *Engine) DownloadSubtitles(m *catalog.Media, name func(m *catalog.Media, url string) string) error {
	if err := util.EnsureDir(e.Dir); err != nil {
		return err
	}
	for _, url := range sortedValues(m.Subtitles) {
		base := catalog.URLBasename(url)
		if name != nil {
			base = name(m, url)
		}
		e.log("downloading: %s", base)
		if err := e.Fetcher.Fetch(url, filepath.Join(e.Dir, base), false); err != nil {
			return fmt.Errorf("subtitles for %s: %w", m.Name, err)
		}
	}
	return nil
}

func sortedValues(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Deterministic order keeps logs and tests stable.
	sort.Strings(keys)
	vals := make([]string, 0, len(keys))
	for _, k := range keys {
		vals = append(vals, m[k])
	}
	return vals
}

func (e *Engine) log(format string, a ...interface{}) {
	if e.Log != nil {
		e.Log(format, a...)
	}
}

func (e *Engine) warn(format string, a ...interface{}) {
	if e.Warn != nil {
		e.Warn(format, a...)
	}
}
