package output

import (
	"fmt"
	"io"
)

// StreamWriter prints formatted entries to a stream, one per line. Used for
// stdout mode, where the stream is the process's actual stdout and must
// carry nothing but entry lines.
type StreamWriter struct {
	format  Format
	out     io.Writer
	reverse bool

	queue   []string
	history map[string]bool
}

func NewStreamWriter(format Format, out io.Writer, reverse bool) *StreamWriter {
	return &StreamWriter{
		format:  format,
		out:     out,
		reverse: reverse,
		history: make(map[string]bool),
	}
}

func (w *StreamWriter) Add(e Entry) {
	if w.history[e.Source] {
		return
	}
	w.history[e.Source] = true
	w.queue = append(w.queue, w.format.Line(e))
}

func (w *StreamWriter) Dump() error {
	if w.reverse {
		reverseLines(w.queue)
	}
	for _, line := range w.queue {
		if _, err := fmt.Fprintln(w.out, line); err != nil {
			return err
		}
	}
	return nil
}
