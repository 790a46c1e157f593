package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vodtools/vodindex/internal/catalog"
	"github.com/vodtools/vodindex/internal/config"
	"github.com/vodtools/vodindex/internal/crawl"
	"github.com/vodtools/vodindex/internal/download"
	"github.com/vodtools/vodindex/internal/mediator"
	"github.com/vodtools/vodindex/internal/offline"
	"github.com/vodtools/vodindex/internal/output"
	"github.com/vodtools/vodindex/internal/util"
)

// runIndex is the whole indexing pipeline: settings checks, crawl,
// downloads, output. Everything runs sequentially on one goroutine.
func runIndex(args []string) error {
	s := settings

	if s.Mode == "" && !s.Download && !s.DownloadSubtitles && s.ImportDir == "" {
		return errors.New("nothing to do: use --mode or --download")
	}
	if !config.ValidMode(s.Mode) {
		return fmt.Errorf("unknown mode %q", s.Mode)
	}
	if !config.ValidQuality(s.Quality) {
		return fmt.Errorf("unsupported quality %d (try 240, 360, 480 or 720)", s.Quality)
	}

	client := mediator.New(s.APIBase, s.UTCOffset)
	if err := config.ValidateLanguage(client, s.Lang); err != nil {
		return err
	}

	if err := resolveArgs(s, args); err != nil {
		return err
	}

	crawler := &crawl.Crawler{
		Client: client,
		Prefs: crawl.Preferences{
			MaxQuality: s.Quality,
			Subtitled:  s.Subtitles,
		},
		Exclude: s.ExcludeCategories,
		MinDate: s.MinDate,
		Warn:    warn,
	}
	if s.Quiet < 1 {
		crawler.Progress = func(key, name string) { log("indexing: %s (%s)", name, key) }
	}

	// Update mode narrows everything down to the flat latest-videos feed
	// and regroups its items afterwards.
	if s.Update {
		s.Append = true
		s.Latest = true
		if s.Sort == "" {
			s.Sort = catalog.SortNewest
		}
		crawler.Update = true
	}
	if s.Latest {
		for _, key := range s.IncludeCategories {
			if key == config.CategoryDefault {
				continue
			}
			log("preparing filter: %s", key)
			keys, err := crawler.SubtreeKeys(s.Lang, key)
			if err != nil {
				return err
			}
			s.FilterCategories = append(s.FilterCategories, keys...)
		}
		s.IncludeCategories = []string{config.CategoryLatest}
		crawler.Filter = s.FilterCategories
	}

	if (s.Download || s.ImportDir != "") && s.KeepFree > 0 {
		if err := diskUsageInfo(s); err != nil {
			return err
		}
	}

	// Offline import is a mode of its own: copy files, then stop.
	if s.ImportDir != "" {
		imp := &offline.Importer{
			SourceDir: s.ImportDir,
			DestDir:   s.MediaDir(),
			Evictor:   newEvictor(s),
			Log:       log,
		}
		return imp.Run()
	}

	if !s.SafeFilenames && output.DetectUnsafeFilesystem(s.WorkDir) {
		s.SafeFilenames = true
	}
	if s.Download && s.RateLimit > 0 {
		log("note: download rate limit is active")
	}
	if s.SafeFilenames {
		log("note: using NTFS/FAT compatible file names")
	}

	data, err := crawler.Crawl(s.Lang, s.IncludeCategories)
	if err != nil {
		return err
	}
	if len(s.SubtitleLanguages) > 0 {
		if err := crawler.CrossIndexSubtitles(data, s.IncludeCategories, s.SubtitleLanguages); err != nil {
			return err
		}
	}

	if s.Download || s.DownloadSubtitles {
		if err := runDownloads(s, data); err != nil {
			return err
		}
	}

	if s.Mode != "" {
		return output.Create(output.Options{
			Mode:             s.Mode,
			WorkDir:          s.WorkDir,
			SubDir:           s.SubDir,
			OutputFilename:   s.OutputFilename,
			Sort:             s.Sort,
			Append:           s.Append,
			SafeFilenames:    s.SafeFilenames,
			CleanAllSymlinks: s.CleanAllSymlinks,
			Command:          s.Command,
			Log:              log,
			Warn:             warn,
		}, data)
	}
	return nil
}

// resolveArgs interprets the positional arguments, whose meaning depends on
// the mode: a command for run mode, an output file for single-file modes, a
// work directory otherwise.
func resolveArgs(s *config.Settings, args []string) error {
	switch {
	case s.Mode == config.ModeRun:
		if len(args) == 0 {
			return errors.New("--mode=run requires a command")
		}
		s.Command = args
	case len(args) == 1:
		path := args[0]
		if singleFileMode(s.Mode) && !isDir(path) {
			s.OutputFilename = filepath.Base(path)
			s.WorkDir = filepath.Dir(path)
		} else {
			s.WorkDir = path
		}
	case len(args) > 1:
		return fmt.Errorf("unexpected argument: %s", args[1])
	}
	if !isDir(s.WorkDir) {
		return fmt.Errorf("not a directory: %s", s.WorkDir)
	}
	return nil
}

func runDownloads(s *config.Settings, data []*catalog.Category) error {
	if err := util.EnsureDir(s.MediaDir()); err != nil {
		return err
	}

	fetcher := download.NewFetcher(s.RateLimit)
	if s.Quiet < 1 && util.IsTTY(os.Stderr) {
		fetcher.Progress = os.Stderr
	}
	engine := &download.Engine{
		Fetcher:   fetcher,
		Dir:       s.MediaDir(),
		Checksums: s.Checksums,
		Log:       log,
		Warn:      warn,
	}
	d := &download.Downloader{
		Engine:  engine,
		Evictor: newEvictor(s),
		Log:     log,
		Warn:    warn,
	}

	queue := catalog.DownloadQueue(data, s.ExcludeCategories)
	if s.Download {
		if err := d.All(queue); err != nil {
			return err
		}
	}
	if s.DownloadSubtitles {
		var name func(m *catalog.Media, url string) string
		if s.FriendlyFilenames {
			name = func(m *catalog.Media, url string) string {
				return output.FriendlySubtitleFilename(m, url, s.SafeFilenames)
			}
		}
		if err := d.AllSubtitles(queue, name); err != nil {
			return err
		}
	}
	return nil
}

func newEvictor(s *config.Settings) *download.Evictor {
	if s.KeepFree <= 0 {
		return nil
	}
	return &download.Evictor{
		Dir:      s.MediaDir(),
		KeepFree: s.KeepFree,
		Log:      log,
	}
}

// diskUsageInfo reports the free-space situation and asks for confirmation
// when the watermark already exceeds what is free, since a mistyped --free
// can wipe the whole media directory.
func diskUsageInfo(s *config.Settings) error {
	if err := util.EnsureDir(s.MediaDir()); err != nil {
		return err
	}
	free, err := download.DiskFree(s.MediaDir())
	if err != nil {
		return err
	}

	log("note: old MP4 files in target directory will be deleted if space runs low")
	log("free space: %d MiB, minimum limit: %d MiB", free/(1024*1024), s.KeepFree/(1024*1024))

	if s.Warning && free < s.KeepFree {
		warn("the disk usage currently exceeds the limit by %d MiB", (s.KeepFree-free)/(1024*1024))
		warn("if the limit was set too high by mistake, many or ALL downloaded videos may get deleted")
		fmt.Fprint(os.Stderr, "Do you want to proceed anyway? [y/N]: ")
		reply, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil || !strings.HasPrefix(strings.TrimSpace(strings.ToLower(reply)), "y") {
			return errors.New("aborted")
		}
	}
	return nil
}

func singleFileMode(mode string) bool {
	switch mode {
	case config.ModeTxt, config.ModeM3U, config.ModeHTML:
		return true
	}
	return false
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
