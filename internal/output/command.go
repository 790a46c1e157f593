package output

import (
	"fmt"
	"os"
	"os/exec"
)

// Arguments per invocation; command lines max out around 32 kB on some
// platforms.
const argBatch = 300

// CommandWriter runs an external command with the queued sources as extra
// arguments, in batches.
type CommandWriter struct {
	command []string
	reverse bool

	queue   []string
	history map[string]bool

	Log func(format string, a ...interface{})
}

func NewCommandWriter(command []string, reverse bool) *CommandWriter {
	return &CommandWriter{
		command: command,
		reverse: reverse,
		history: make(map[string]bool),
	}
}

func (w *CommandWriter) Add(e Entry) {
	if w.history[e.Source] {
		return
	}
	w.history[e.Source] = true
	w.queue = append(w.queue, e.Source)
}

func (w *CommandWriter) Dump() error {
	if len(w.command) == 0 {
		return fmt.Errorf("no command to run")
	}
	if len(w.queue) == 0 {
		if w.Log != nil {
			w.Log("no media")
		}
		return nil
	}
	if w.reverse {
		reverseLines(w.queue)
	}

	for len(w.queue) > 0 {
		n := argBatch
		if len(w.queue) < n {
			n = len(w.queue)
		}
		args := append(append([]string(nil), w.command[1:]...), w.queue[:n]...)
		cmd := exec.Command(w.command[0], args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("running %s: %w", w.command[0], err)
		}
		w.queue = w.queue[n:]
	}
	return nil
}
