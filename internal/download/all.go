package download

import (
	"errors"

	"github.com/vodtools/vodindex/internal/catalog"
)

// Downloader runs the download phase over a prepared queue.
type Downloader struct {
	Engine *Engine
	// Evictor is nil when no free-space watermark is configured.
	Evictor *Evictor
	Log     func(format string, a ...interface{})
	Warn    func(format string, a ...interface{})
}

// All checks and downloads every item in the queue, which must already be
// de-duplicated by filename and sorted newest first — the eviction loop's
// safety check depends on that order. Each item's File field is set on
// success. A disk-limit halt stops the remaining queue without error.
func (d *Downloader) All(queue []*catalog.Media) error {
	// Check local files before any network activity, so the progress
	// counter below reflects what actually needs downloading.
	d.log("scanning local files")
	var pending []*catalog.Media
	for _, m := range queue {
		if d.Engine.SkipMarkerExists(m) {
			d.log("skipping previously deleted file: %s", m.Filename())
			continue
		}
		file, err := d.Engine.DownloadMedia(m, true)
		if err != nil {
			return err
		}
		if file != "" {
			m.File = file
			continue
		}
		pending = append(pending, m)
	}

	for i, m := range pending {
		if d.Evictor != nil {
			err := d.Evictor.EnsureSpace(m)
			switch {
			case errors.Is(err, ErrMissingTimestamp):
				d.warn("low disk space and missing metadata, skipping: %s", m.Name)
				continue
			case errors.Is(err, ErrDiskLimitReached):
				d.log("disk limit reached, all videos up to date")
				return nil
			case err != nil:
				return err
			}
		}

		d.log("[%d/%d]", i+1, len(pending))
		file, err := d.Engine.DownloadMedia(m, false)
		if errors.Is(err, ErrDownloadFailed) {
			continue
		}
		if err != nil {
			return err
		}
		m.File = file
	}
	return nil
}

// AllSubtitles downloads the subtitle files of every queued item.
func (d *Downloader) AllSubtitles(queue []*catalog.Media, name func(m *catalog.Media, url string) string) error {
	var withSubs []*catalog.Media
	for _, m := range queue {
		if len(m.Subtitles) > 0 {
			withSubs = append(withSubs, m)
		}
	}
	for i, m := range withSubs {
		d.log("[%d/%d]", i+1, len(withSubs))
		if err := d.Engine.DownloadSubtitles(m, name); err != nil {
			d.warn("%v", err)
		}
	}
	return nil
}

func (d *Downloader) log(format string, a ...interface{}) {
	if d.Log != nil {
		d.Log(format, a...)
	}
}

func (d *Downloader) warn(format string, a ...interface{}) {
	if d.Warn != nil {
		d.Warn(format, a...)
	}
}
