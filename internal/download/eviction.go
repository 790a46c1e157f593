package download

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vodtools/vodindex/internal/catalog"
)

// Eviction outcomes.
var (
	// ErrDiskLimitReached means the reference item is not newer than the
	// oldest file on disk: evicting further would delete something at
	// least as recent as what we are fetching. The caller stops the whole
	// download phase cleanly.
	ErrDiskLimitReached = errors.New("disk limit reached, all videos up to date")
	// ErrMissingTimestamp means the reference item has no publish date,
	// so age comparison is impossible and the item must be skipped.
	ErrMissingTimestamp = errors.New("missing publish timestamp")
)

// Evictor frees disk space by deleting the oldest downloaded videos until
// the free-space watermark clears.
type Evictor struct {
	Dir      string
	KeepFree int64
	// FreeSpace reports available bytes on the volume holding dir.
	// Defaults to a statfs call; tests inject their own.
	FreeSpace func(dir string) (int64, error)
	Log       func(format string, a ...interface{})
}

// EnsureSpace deletes the oldest .mp4 files in the directory until free
// space exceeds reference.Size + KeepFree. Deleted files leave a .deleted
// marker behind so they are never re-fetched. Free space is measured fresh
// on every iteration; a deletion takes effect immediately on the same
// filesystem view.
func (e *Evictor) EnsureSpace(reference *catalog.Media) error {
	// Without a timestamp we dare not compare ages against anything.
	if reference.Date.IsZero() {
		return ErrMissingTimestamp
	}

	freeSpace := e.FreeSpace
	if freeSpace == nil {
		freeSpace = diskFree
	}

	for {
		free, err := freeSpace(e.Dir)
		if err != nil {
			return fmt.Errorf("checking free space: %w", err)
		}
		needed := reference.Size + e.KeepFree
		if free > needed {
			return nil
		}
		e.log("free space: %d MiB, needed: %d MiB", free/(1024*1024), needed/(1024*1024))

		oldest, oldestTime, err := oldestVideo(e.Dir)
		if err != nil {
			return err
		}

		// The file we are making room for is not newer than the oldest
		// file already present; deleting more would only lose data.
		if !reference.Date.After(oldestTime) {
			return ErrDiskLimitReached
		}

		e.log("removing old video: %s", oldest)
		if err := os.Remove(oldest); err != nil {
			return err
		}
		if err := writeDeletedMarker(oldest); err != nil {
			return err
		}
	}
}

// oldestVideo finds the .mp4 file with the oldest modification time.
// Modification times stand in for publish dates; the download engine sets
// them accordingly.
func oldestVideo(dir string) (string, time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", time.Time{}, err
	}

	var oldest string
	var oldestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".mp4") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if oldest == "" || info.ModTime().Before(oldestTime) {
			oldest = filepath.Join(dir, entry.Name())
			oldestTime = info.ModTime()
		}
	}
	if oldest == "" {
		return "", time.Time{}, fmt.Errorf("disk limit reached, but no videos in %s", dir)
	}
	return oldest, oldestTime, nil
}

func writeDeletedMarker(path string) error {
	return os.WriteFile(path+deletedSuffix, nil, 0644)
}

func (e *Evictor) log(format string, a ...interface{}) {
	if e.Log != nil {
		e.Log(format, a...)
	}
}
