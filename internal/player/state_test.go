package player

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestState_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := &State{History: []string{"a.mp4", "b.mp4"}}
	start := time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = fixedClock(start)
	s.RegisterStart("c.mp4")
	// 90 seconds into playback the process dies and state is saved.
	s.now = fixedClock(start.Add(90 * time.Second))
	if err := s.Save(dir); err != nil {
		t.Fatal(err)
	}

	loaded := LoadState(dir)
	if loaded.Resume != 90 {
		t.Errorf("resume = %d, want 90", loaded.Resume)
	}
	want := []string{"a.mp4", "b.mp4", "c.mp4"}
	if len(loaded.History) != len(want) {
		t.Fatalf("history = %v", loaded.History)
	}
	for i := range want {
		if loaded.History[i] != want[i] {
			t.Errorf("history[%d] = %s, want %s", i, loaded.History[i], want[i])
		}
	}
}

func TestLoadState_MissingOrCorrupt(t *testing.T) {
	if s := LoadState(t.TempDir()); len(s.History) != 0 || s.Resume != 0 {
		t.Error("missing file should give a fresh state")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "history.json"), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if s := LoadState(dir); len(s.History) != 0 {
		t.Error("corrupt file should give a fresh state")
	}
}

func TestRegisterStart_MovesToMostRecent(t *testing.T) {
	s := &State{History: []string{"a.mp4", "b.mp4", "c.mp4"}, Resume: 42}
	s.now = fixedClock(time.Now())
	s.RegisterStart("a.mp4")

	if s.History[len(s.History)-1] != "a.mp4" {
		t.Errorf("history = %v", s.History)
	}
	if len(s.History) != 3 {
		t.Errorf("duplicate left in history: %v", s.History)
	}
	if s.Resume != 0 {
		t.Error("resume not reset on start")
	}
}

func TestRegisterStop_FailureBackoff(t *testing.T) {
	start := time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)

	s := &State{}
	// Instant exits: the player dies right after starting.
	for i := 0; i <= 11; i++ {
		s.now = fixedClock(start)
		s.RegisterStart("a.mp4")
		s.now = fixedClock(start.Add(time.Second))
		if err := s.RegisterStop(); err != nil {
			if i <= 10 {
				t.Fatalf("gave up after %d failures: %v", i+1, err)
			}
			if !errors.Is(err, ErrTooManyFailures) {
				t.Fatalf("err = %v", err)
			}
			return
		}
	}
	t.Fatal("instant exits never aborted")
}

func TestRegisterStop_HealthyPlaybackResetsFailures(t *testing.T) {
	start := time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)
	s := &State{}

	s.now = fixedClock(start)
	s.RegisterStart("a.mp4")
	s.now = fixedClock(start.Add(time.Second))
	if err := s.RegisterStop(); err != nil {
		t.Fatal(err)
	}
	if s.failures != 1 {
		t.Fatalf("failures = %d", s.failures)
	}

	s.now = fixedClock(start)
	s.RegisterStart("a.mp4")
	s.now = fixedClock(start.Add(time.Hour))
	if err := s.RegisterStop(); err != nil {
		t.Fatal(err)
	}
	if s.failures != 0 {
		t.Error("healthy playback did not reset the failure count")
	}
}

func TestPickResume(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.mp4"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	s := &State{History: []string{"a.mp4"}, Resume: 100}
	path, pos, err := s.PickResume(dir, 30)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "a.mp4" || pos != 70 {
		t.Errorf("got %s at %d", path, pos)
	}

	// Rewind never goes past the start.
	s.Resume = 10
	_, pos, err = s.PickResume(dir, 30)
	if err != nil || pos != 0 {
		t.Errorf("pos = %d, err = %v", pos, err)
	}

	// Nothing to resume.
	s.Resume = 0
	if _, _, err := s.PickResume(dir, 30); !errors.Is(err, ErrNoResume) {
		t.Errorf("err = %v, want ErrNoResume", err)
	}

	// Video gone from disk.
	s = &State{History: []string{"gone.mp4"}, Resume: 50}
	if _, _, err := s.PickResume(dir, 30); !errors.Is(err, ErrNoResume) {
		t.Errorf("err = %v, want ErrNoResume", err)
	}
}

func TestPickShuffle_AvoidsHistory(t *testing.T) {
	videos := []string{"/v/a.mp4", "/v/b.mp4", "/v/c.mp4"}
	s := &State{History: []string{"a.mp4", "c.mp4"}}
	for i := 0; i < 20; i++ {
		if got := s.PickShuffle(videos); got != "/v/b.mp4" {
			t.Fatalf("picked recently played video %s", got)
		}
	}
}

func TestPickShuffle_ForgetsHistoryWhenExhausted(t *testing.T) {
	videos := []string{"/v/a.mp4", "/v/b.mp4"}
	s := &State{History: []string{"a.mp4", "b.mp4"}}
	got := s.PickShuffle(videos)
	if got != "/v/a.mp4" && got != "/v/b.mp4" {
		t.Fatalf("picked %s", got)
	}
}
