package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vodtools/vodindex/internal/catalog"
)

// Options configure output generation for one run.
type Options struct {
	// Mode is one of: stdout, txt, m3u, m3umulti, m3utree, html, htmlmulti,
	// htmltree, run, filesystem.
	Mode    string
	WorkDir string
	// SubDir is the media directory name below WorkDir.
	SubDir string
	// OutputFilename overrides the derived name in single-file modes.
	OutputFilename string
	Sort           string
	Append         bool
	SafeFilenames  bool
	// CleanAllSymlinks removes every symlink in filesystem mode, not just
	// broken ones.
	CleanAllSymlinks bool
	// Command to run in run mode, sources appended as arguments.
	Command []string
	// Stdout defaults to os.Stdout.
	Stdout io.Writer

	Log  func(format string, a ...interface{})
	Warn func(format string, a ...interface{})
}

// Create renders the categories according to Options.Mode.
func Create(opts Options, categories []*catalog.Category) error {
	if len(categories) == 0 {
		return nil
	}

	if opts.Mode == "filesystem" {
		if err := CleanSymlinks(filepath.Join(opts.WorkDir, opts.SubDir), opts.CleanAllSymlinks, opts.Log); err != nil {
			return err
		}
		return writeFilesystem(opts, categories)
	}

	var format Format
	switch {
	case opts.Mode == "run", strings.HasPrefix(opts.Mode, "stdout"):
		format = TxtFormat{}
	case strings.HasPrefix(opts.Mode, "html"):
		format = HTMLFormat{}
	case strings.HasPrefix(opts.Mode, "m3u"):
		format = M3UFormat{}
	case strings.HasPrefix(opts.Mode, "txt"):
		format = TxtFormat{}
	default:
		return fmt.Errorf("unknown output mode %q", opts.Mode)
	}

	switch {
	case strings.HasSuffix(opts.Mode, "multi"):
		return writeMulti(opts, format, categories, false)
	case strings.HasSuffix(opts.Mode, "tree"):
		return writeMulti(opts, format, categories, true)
	default:
		return writeSingle(opts, format, categories)
	}
}

// writeSingle concatenates all media into one output.
func writeSingle(opts Options, format Format, categories []*catalog.Category) error {
	var all []*catalog.Media
	for _, cat := range categories {
		all = append(all, cat.Items...)
	}
	catalog.SortMedia(all, opts.Sort)
	reverse := opts.Sort == catalog.SortNewest

	var w Writer
	switch {
	case opts.Mode == "run":
		cw := NewCommandWriter(opts.Command, reverse)
		cw.Log = opts.Log
		w = cw
	case strings.HasPrefix(opts.Mode, "stdout"):
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		w = NewStreamWriter(format, out, reverse)
	default:
		name := opts.OutputFilename
		if name == "" {
			// Fall back to the name of the first category.
			n, err := CategoryFilename(categories[0], opts.SafeFilenames)
			if err != nil {
				return fmt.Errorf("cannot derive output filename: %w", err)
			}
			name = n + format.Ext()
		}
		fw, err := NewFileWriter(format, filepath.Join(opts.WorkDir, name), reverse, opts.Append)
		if err != nil {
			return err
		}
		fw.Log = opts.Log
		w = fw
	}

	for _, m := range all {
		w.Add(Entry{Name: m.Name, Source: opts.mediaSource(m, ""), Duration: m.Duration})
	}
	return w.Dump()
}

// writeMulti creates one output file per category. With tree set, home
// categories land in the work dir under their display name and the rest in
// the media dir under their key, linked together through category entries.
func writeMulti(opts Options, format Format, categories []*catalog.Category, tree bool) error {
	dataDir := filepath.Join(opts.WorkDir, opts.SubDir)

	for _, cat := range categories {
		var file string
		switch {
		case tree && cat.Home:
			// Home categories always carry a name.
			name, err := CategoryFilename(cat, opts.SafeFilenames)
			if err != nil {
				return err
			}
			file = filepath.Join(opts.WorkDir, name+format.Ext())
		case tree:
			file = filepath.Join(dataDir, cat.Key+format.Ext())
		default:
			name, err := CategoryFilename(cat, opts.SafeFilenames)
			if err != nil {
				// Key-only placeholder: find the file a previous run named.
				pattern := filepath.Join(opts.WorkDir, cat.Key+" - *"+format.Ext())
				matches, _ := filepath.Glob(pattern)
				if len(matches) != 1 {
					opts.warn("failed to find: %s", pattern)
					continue
				}
				file = matches[0]
			} else {
				file = filepath.Join(opts.WorkDir, cat.Key+" - "+name+format.Ext())
			}
		}

		w, err := NewFileWriter(format, file, opts.Sort == catalog.SortNewest, opts.Append)
		if errors.Is(err, ErrBadFormat) {
			opts.warn("badly formatted file: %s", file)
			continue
		}
		if err != nil {
			return err
		}
		w.Log = opts.Log

		// Category links go on top, before any media.
		if tree {
			for _, sub := range cat.Subcategories {
				target := filepath.Join(dataDir, sub.Key+format.Ext())
				rel, err := filepath.Rel(filepath.Dir(file), target)
				if err != nil {
					continue
				}
				w.Add(Entry{Name: strings.ToUpper(sub.Name), Source: rel})
			}
		}

		items := append([]*catalog.Media(nil), cat.Items...)
		catalog.SortMedia(items, opts.Sort)
		for _, m := range items {
			w.Add(Entry{Name: m.Name, Source: opts.mediaSource(m, filepath.Dir(file)), Duration: m.Duration})
		}
		if err := w.Dump(); err != nil {
			return err
		}
	}
	return nil
}

// mediaSource points an entry at the local copy when one exists, at the
// remote URL otherwise. fromDir is the directory the playlist lives in;
// empty means single-file mode, where the path is relative to the work dir.
func (o Options) mediaSource(m *catalog.Media, fromDir string) string {
	local := filepath.Join(o.WorkDir, o.SubDir, m.Filename())
	if _, err := os.Stat(local); err != nil {
		return m.URL
	}
	if fromDir == "" {
		return filepath.Join(o.SubDir, m.Filename())
	}
	rel, err := filepath.Rel(fromDir, local)
	if err != nil {
		return local
	}
	return rel
}

func (o Options) log(format string, a ...interface{}) {
	if o.Log != nil {
		o.Log(format, a...)
	}
}

func (o Options) warn(format string, a ...interface{}) {
	if o.Warn != nil {
		o.Warn(format, a...)
	}
}
