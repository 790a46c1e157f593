// Package offline copies media files from a local directory into the media
// dir, honoring the same free-space watermark as network downloads.
package offline

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vodtools/vodindex/internal/catalog"
	"github.com/vodtools/vodindex/internal/download"
	"github.com/vodtools/vodindex/internal/util"
)

// Importer copies videos from SourceDir into DestDir.
type Importer struct {
	SourceDir string
	DestDir   string
	// Evictor is nil when no free-space watermark is configured.
	Evictor *download.Evictor
	Log     func(format string, a ...interface{})
}

type candidate struct {
	name  string
	size  int64
	mtime time.Time
}

// Run copies every .mp4 from the source directory, newest first. Files
// already present in the destination with the same size are skipped; a
// disk-limit halt stops the remaining queue without error.
func (imp *Importer) Run() error {
	entries, err := os.ReadDir(imp.SourceDir)
	if err != nil {
		return err
	}

	var pending []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".mp4") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		// Size comparison only; checksums are not known for local files.
		if dest, err := os.Stat(filepath.Join(imp.DestDir, entry.Name())); err == nil && dest.Size() == info.Size() {
			continue
		}
		pending = append(pending, candidate{entry.Name(), info.Size(), info.ModTime()})
	}

	sort.Slice(pending, func(i, j int) bool { return pending[i].mtime.After(pending[j].mtime) })

	if err := util.EnsureDir(imp.DestDir); err != nil {
		return err
	}

	for i, c := range pending {
		if imp.Evictor != nil {
			err := imp.Evictor.EnsureSpace(&catalog.Media{Name: c.name, Size: c.size, Date: c.mtime})
			if errors.Is(err, download.ErrDiskLimitReached) {
				imp.log("disk limit reached, stopping import")
				return nil
			}
			if err != nil {
				return err
			}
		}
		imp.log("copying [%d/%d]: %s", i+1, len(pending), c.name)
		src := filepath.Join(imp.SourceDir, c.name)
		if err := util.CopyFile(src, filepath.Join(imp.DestDir, c.name)); err != nil {
			return err
		}
	}
	return nil
}

func (imp *Importer) log(format string, a ...interface{}) {
	if imp.Log != nil {
		imp.Log(format, a...)
	}
}
