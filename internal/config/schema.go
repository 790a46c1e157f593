package config

import (
	"path/filepath"
	"time"
)

// Output modes. A "multi" suffix writes one flat file per category, a
// "tree" suffix writes a linked hierarchy.
const (
	ModeNone       = ""
	ModeStdout     = "stdout"
	ModeTxt        = "txt"
	ModeM3U        = "m3u"
	ModeM3UMulti   = "m3umulti"
	ModeM3UTree    = "m3utree"
	ModeHTML       = "html"
	ModeHTMLMulti  = "htmlmulti"
	ModeHTMLTree   = "htmltree"
	ModeRun        = "run"
	ModeFilesystem = "filesystem"
)

// Modes lists every accepted --mode value.
var Modes = []string{
	ModeStdout, ModeTxt, ModeM3U, ModeM3UMulti, ModeM3UTree,
	ModeHTML, ModeHTMLMulti, ModeHTMLTree, ModeRun, ModeFilesystem,
}

// Qualities are the accepted resolution ceilings.
var Qualities = []int{240, 360, 480, 720}

// Default category keys.
const (
	CategoryDefault = "VideoOnDemand"
	CategoryLatest  = "LatestVideos"
)

// Settings holds every value the pipeline consumes. It is built from the
// config file, environment and flags before any network or filesystem work
// starts; nothing here is mutated during a run.
type Settings struct {
	Quiet int `mapstructure:"quiet"`

	// Where output and media land.
	WorkDir        string `mapstructure:"work_dir"`
	SubDir         string `mapstructure:"sub_dir"`
	OutputFilename string `mapstructure:"-"`
	Command        []string

	// API parsing.
	APIBase           string   `mapstructure:"api_base"`
	UTCOffset         int      `mapstructure:"utc_offset"`
	Lang              string   `mapstructure:"lang"`
	SubtitleLanguages []string `mapstructure:"subtitle_languages"`
	Quality           int      `mapstructure:"quality"`
	Subtitles         bool     `mapstructure:"subtitles"`
	MinDate           time.Time
	IncludeCategories []string `mapstructure:"include_categories"`
	ExcludeCategories []string `mapstructure:"exclude_categories"`
	FilterCategories  []string
	Latest            bool
	Update            bool

	// Disk space.
	KeepFree int64 `mapstructure:"keep_free"` // bytes
	Warning  bool  `mapstructure:"warning"`

	ImportDir string

	// Downloading.
	Download          bool
	DownloadSubtitles bool
	FriendlyFilenames bool    `mapstructure:"friendly_filenames"`
	RateLimit         float64 `mapstructure:"rate_limit"` // MB/s, 0 = unlimited
	Checksums         bool    `mapstructure:"checksums"`

	// Output.
	Append           bool
	CleanAllSymlinks bool
	Mode             string `mapstructure:"mode"`
	SafeFilenames    bool   `mapstructure:"safe_filenames"`
	Sort             string `mapstructure:"sort"`
}

// MediaDir is the directory media files are saved in.
func (s *Settings) MediaDir() string {
	if s.SubDir == "" {
		return s.WorkDir
	}
	return filepath.Join(s.WorkDir, s.SubDir)
}

// ValidMode reports whether mode is empty or one of Modes.
func ValidMode(mode string) bool {
	if mode == ModeNone {
		return true
	}
	for _, m := range Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// ValidQuality reports whether q is one of the accepted ceilings.
func ValidQuality(q int) bool {
	for _, n := range Qualities {
		if n == q {
			return true
		}
	}
	return false
}
