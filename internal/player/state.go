// Package player shuffles and plays downloaded videos with an external
// player command, remembering playback position and history between runs.
package player

import (
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const historyFile = "history.json"

// A playback shorter than this counts as a failed start.
const minPlayback = 10 * time.Second

// Consecutive failed starts tolerated before giving up.
const maxFailures = 10

var (
	// ErrNoResume means there is no interrupted playback to pick up.
	ErrNoResume = errors.New("nothing to resume")
	// ErrTooManyFailures means the player command keeps exiting instantly.
	ErrTooManyFailures = errors.New("video player restarting too quickly")
)

// State tracks what was played and where the last video stopped. It is
// persisted as history.json in the video directory.
type State struct {
	// History holds played video names, most recent last.
	History []string `json:"history"`
	// Resume is the position in seconds where the last playback stopped.
	Resume int `json:"resume"`

	startedAt time.Time
	failures  int

	// test hook
	now func() time.Time
}

// LoadState reads history.json from dir. A missing or corrupt file yields
// a fresh state.
func LoadState(dir string) *State {
	s := &State{}
	data, err := os.ReadFile(filepath.Join(dir, historyFile))
	if err == nil {
		_ = json.Unmarshal(data, s)
	}
	return s
}

// Save writes the state to history.json. When a playback is in progress the
// elapsed time is recorded as the resume position, so an interrupted run
// picks up where it stopped.
func (s *State) Save(dir string) error {
	resume := 0
	if !s.startedAt.IsZero() {
		resume = int(s.clock().Sub(s.startedAt) / time.Second)
	}
	data, err := json.Marshal(map[string]interface{}{
		"history": s.History,
		"resume":  resume,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, historyFile), data, 0644)
}

// RegisterStart records that name started playing now, moving it to the
// most-recent end of the history.
func (s *State) RegisterStart(name string) {
	for i, h := range s.History {
		if h == name {
			s.History = append(s.History[:i], s.History[i+1:]...)
			break
		}
	}
	s.History = append(s.History, name)
	s.startedAt = s.clock()
	s.Resume = 0
}

// RegisterStop records that the player exited. Instant exits count as
// failures; too many in a row abort the whole loop.
func (s *State) RegisterStop() error {
	if s.failures > maxFailures {
		return ErrTooManyFailures
	}
	if s.clock().Sub(s.startedAt) < minPlayback {
		s.failures++
	} else {
		s.failures = 0
	}
	s.startedAt = time.Time{}
	return nil
}

// PickResume returns the interrupted video and its start position, rewound
// a little so the viewer regains context. ErrNoResume when there is nothing
// to pick up or the file is gone.
func (s *State) PickResume(dir string, rewindSec int) (string, int, error) {
	if s.Resume == 0 || len(s.History) == 0 {
		return "", 0, ErrNoResume
	}
	name := s.History[len(s.History)-1]
	path := filepath.Join(dir, name)
	if !isVideo(path) {
		return "", 0, ErrNoResume
	}
	pos := s.Resume - rewindSec
	if pos < 0 {
		pos = 0
	}
	return path, pos, nil
}

// PickShuffle returns a random video not in the recent history. When every
// candidate was played recently, the oldest history entries are forgotten
// until something qualifies.
func (s *State) PickShuffle(videos []string) string {
	for {
		var fresh []string
		for _, v := range videos {
			if !containsString(s.History, filepath.Base(v)) {
				fresh = append(fresh, v)
			}
		}
		if len(fresh) > 0 {
			return fresh[rand.Intn(len(fresh))]
		}
		if len(s.History) == 0 {
			// Unreachable while videos is non-empty.
			return videos[rand.Intn(len(videos))]
		}
		// Forget the oldest entries and retry.
		if len(s.History) > 20 {
			s.History = s.History[20:]
		} else {
			s.History = nil
		}
	}
}

func (s *State) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func isVideo(path string) bool {
	if !strings.HasSuffix(strings.ToLower(path), ".mp4") {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
