// Package output renders a crawled catalog as playlists, index files, a
// symlink tree, stdout lines or arguments to an external command.
package output

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/vodtools/vodindex/internal/util"
)

// Entry is one playlist line before formatting.
type Entry struct {
	Name     string
	Source   string
	Duration int
}

// ErrBadFormat means an existing output file could not be parsed for
// appending.
var ErrBadFormat = errors.New("badly formatted file")

// Format renders entries as lines of one playlist dialect and recognizes
// them again when an existing file is re-read in append mode.
type Format interface {
	Ext() string
	Header() string
	Footer() string
	Line(e Entry) string
	// Source extracts the media source from a line; ok is false for
	// non-entry lines such as comments or markup.
	Source(line string) (source string, ok bool)
}

// Writer accumulates entries and eventually emits them somewhere.
type Writer interface {
	Add(e Entry)
	Dump() error
}

// FileWriter writes formatted entries to a single file. In append mode the
// existing file is parsed up front so re-runs never duplicate an entry.
type FileWriter struct {
	format  Format
	path    string
	reverse bool
	append  bool

	queue   []string
	history map[string]bool
	loaded  string

	Log func(format string, a ...interface{})
}

// NewFileWriter opens a writer for path. With append set, an existing file
// is loaded into the history; an unparsable one yields ErrBadFormat.
func NewFileWriter(format Format, path string, reverse, append bool) (*FileWriter, error) {
	w := &FileWriter{
		format:  format,
		path:    path,
		reverse: reverse,
		append:  append,
		history: make(map[string]bool),
	}
	if append {
		if err := w.loadExisting(); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *FileWriter) loadExisting() error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		// Nothing to append to yet.
		return nil
	}
	s := string(data)
	if h := w.format.Header(); h != "" {
		if !strings.HasPrefix(s, h) {
			return ErrBadFormat
		}
		s = strings.TrimPrefix(s, h)
	}
	if f := w.format.Footer(); f != "" {
		if !strings.HasSuffix(s, f) {
			return ErrBadFormat
		}
		s = strings.TrimSuffix(s, f)
	}
	w.loaded = s
	for _, line := range strings.Split(s, "\n") {
		if src, ok := w.format.Source(line); ok && src != "" {
			w.history[src] = true
		}
	}
	return nil
}

// Add formats and queues the entry unless its source was seen before,
// either in this run or in the loaded file.
func (w *FileWriter) Add(e Entry) {
	if w.history[e.Source] {
		return
	}
	w.history[e.Source] = true
	w.queue = append(w.queue, w.format.Line(e))
}

// Dump writes header, queue and footer to the file. Old content is kept
// when appending: before the new lines in newest-first order, after them
// otherwise. The file is always rewritten from scratch so the footer ends
// up in the right place.
func (w *FileWriter) Dump() error {
	if len(w.queue) == 0 {
		return nil
	}
	if w.reverse {
		reverseLines(w.queue)
	}
	if err := util.EnsureDir(filepath.Dir(w.path)); err != nil {
		return err
	}

	if w.Log != nil {
		if w.loaded != "" {
			w.Log("updating: %s", w.path)
		} else {
			w.Log("creating: %s", w.path)
		}
	}

	var b strings.Builder
	b.WriteString(w.format.Header())
	if !w.reverse && w.append {
		b.WriteString(w.loaded)
	}
	for _, line := range w.queue {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if w.reverse && w.append {
		b.WriteString(w.loaded)
	}
	b.WriteString(w.format.Footer())

	return os.WriteFile(w.path, []byte(b.String()), 0644)
}

func reverseLines(lines []string) {
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
}
