// Package app wires the command line surface to the crawl, download and
// output stages.
package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vodtools/vodindex/internal/config"
	"github.com/vodtools/vodindex/internal/util"
)

var (
	settings *config.Settings
	version  = "dev"

	flagConfig  string
	flagNoColor bool

	flagLang        string
	flagQuality     int
	flagMode        string
	flagSort        string
	flagSince       string
	flagCategory    []string
	flagExclude     []string
	flagSubLangs    []string
	flagFreeMiB     int64
	flagLimitRate   float64
	flagImport      string
	flagNoWarning   bool
	flagHardSubs    bool
	flagQuietCount  int
	flagDownload    bool
	flagDownSubs    bool
	flagChecksum    bool
	flagLatest      bool
	flagUpdate      bool
	flagAppend      bool
	flagFriendly    bool
	flagSafeNames   bool
	flagCleanLinks  bool
)

var rootCmd = &cobra.Command{
	Use: "vodindex",
	Example: `  vodindex --download --free 5000 /media/videos
  vodindex --mode m3u --lang S playlist.m3u
  vodindex --mode run -- mpv --fullscreen`,
	Short:         "Index or download media from a video-on-demand API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIndex(args)
	},
}

// SetVersion records the build version injected by the linker.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file path (default: ~/.config/vodindex/config.yml)")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	pf.CountVarP(&flagQuietCount, "quiet", "q", "less info, can be used multiple times")
	pf.StringVarP(&flagLang, "lang", "l", "", "language code")

	f := rootCmd.Flags()
	f.BoolVar(&flagAppend, "append", false, "append to index files instead of overwriting them")
	f.StringSliceVarP(&flagCategory, "category", "c", nil, "categories to include")
	f.BoolVar(&flagChecksum, "checksum", false, "validate MD5 checksums")
	f.BoolVar(&flagCleanLinks, "clean-symlinks", false, "remove all old symlinks (mode=filesystem)")
	f.BoolVarP(&flagDownload, "download", "d", false, "download media files")
	f.BoolVar(&flagDownSubs, "download-subtitles", false, "download VTT subtitle files")
	f.StringSliceVar(&flagExclude, "exclude", nil, "categories to skip, sub-categories included")
	f.Int64Var(&flagFreeMiB, "free", 0, "disk space in MiB to keep free (deletes old MP4 files, use a separate folder!)")
	f.BoolVarP(&flagFriendly, "friendly", "H", false, "save subtitles and symlinks with human readable names")
	f.BoolVar(&flagHardSubs, "hard-subtitles", false, "prefer videos with hard-coded subtitles")
	f.StringVar(&flagImport, "import", "", "import media files from this directory (offline)")
	f.BoolVar(&flagLatest, "latest", false, "index the latest-videos category only")
	f.Float64VarP(&flagLimitRate, "limit-rate", "R", 0, "maximum download rate in megabytes/s (0 = no limit)")
	f.StringVarP(&flagMode, "mode", "m", "", "output mode: stdout|txt|m3u|m3umulti|m3utree|html|htmlmulti|htmltree|run|filesystem")
	f.BoolVar(&flagNoWarning, "no-warning", false, "do not warn when the space limit seems wrong")
	f.IntVarP(&flagQuality, "quality", "Q", 0, "maximum video quality: 240|360|480|720")
	f.BoolVar(&flagSafeNames, "safe-filenames", false, "use NTFS/FAT compatible file names")
	f.StringVar(&flagSince, "since", "", "only include media newer than this date (YYYY-MM-DD)")
	f.StringVar(&flagSort, "sort", "", "sort output: name|newest|oldest|random")
	f.StringSliceVar(&flagSubLangs, "subtitle-languages", nil, "also look up subtitles in these languages")
	f.BoolVar(&flagUpdate, "update", false, "update an existing index with the latest videos (implies --append --latest --sort=newest)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		settings, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return applyFlags(cmd)
	}

	rootCmd.AddCommand(
		newLanguagesCmd(),
		newCategoriesCmd(),
		newConfigCmd(),
	)
}

// applyFlags copies explicitly set flags over the loaded config, so the
// precedence is flags > environment > file > defaults.
func applyFlags(cmd *cobra.Command) error {
	s := settings
	s.Quiet += flagQuietCount

	set := func(name string) bool {
		return cmd.Flags().Changed(name) ||
			(cmd.Parent() != nil && cmd.Parent().PersistentFlags().Changed(name))
	}

	if set("lang") {
		s.Lang = flagLang
	}
	if set("quality") {
		s.Quality = flagQuality
	}
	if set("limit-rate") {
		s.RateLimit = flagLimitRate
	}
	if set("category") {
		s.IncludeCategories = flagCategory
	}
	if set("exclude") {
		s.ExcludeCategories = flagExclude
	}
	if set("subtitle-languages") {
		s.SubtitleLanguages = flagSubLangs
	}
	if set("mode") {
		s.Mode = flagMode
	}
	if set("sort") {
		s.Sort = flagSort
	}
	if set("friendly") {
		s.FriendlyFilenames = flagFriendly
	}
	if set("safe-filenames") {
		s.SafeFilenames = flagSafeNames
	}
	if set("checksum") {
		s.Checksums = flagChecksum
	}
	if flagFreeMiB > 0 {
		s.KeepFree = config.MiB(flagFreeMiB)
	}
	if flagNoWarning {
		s.Warning = false
	}
	if flagSince != "" {
		date, err := config.ParseDate(flagSince)
		if err != nil {
			return err
		}
		s.MinDate = date
	}

	s.Download = s.Download || flagDownload
	s.DownloadSubtitles = s.DownloadSubtitles || flagDownSubs
	s.Subtitles = s.Subtitles || flagHardSubs
	s.Latest = s.Latest || flagLatest
	s.Update = s.Update || flagUpdate
	s.Append = s.Append || flagAppend
	s.CleanAllSymlinks = flagCleanLinks
	s.ImportDir = flagImport
	return nil
}

// log prints progress info, silenced by a single -q.
func log(format string, a ...interface{}) {
	if settings != nil && settings.Quiet >= 1 {
		return
	}
	fmt.Fprintln(os.Stderr, fmt.Sprintf(format, a...))
}

// warn prints a yellow warning, silenced by -qq.
func warn(format string, a ...interface{}) {
	if settings != nil && settings.Quiet >= 2 {
		return
	}
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	if settings != nil && settings.Quiet >= 1 {
		return
	}
	fmt.Fprintln(os.Stderr, color.GreenString("✓"), fmt.Sprintf(format, a...))
}
