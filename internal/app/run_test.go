package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vodtools/vodindex/internal/config"
)

func TestResolveArgs_RunModeTakesCommand(t *testing.T) {
	s := &config.Settings{Mode: config.ModeRun, WorkDir: t.TempDir()}
	if err := resolveArgs(s, []string{"mpv", "--fullscreen"}); err != nil {
		t.Fatal(err)
	}
	if len(s.Command) != 2 || s.Command[0] != "mpv" {
		t.Errorf("command = %v", s.Command)
	}

	s = &config.Settings{Mode: config.ModeRun, WorkDir: t.TempDir()}
	if err := resolveArgs(s, nil); err == nil {
		t.Error("run mode without a command accepted")
	}
}

func TestResolveArgs_SingleFileMode(t *testing.T) {
	dir := t.TempDir()
	s := &config.Settings{Mode: config.ModeM3U}
	if err := resolveArgs(s, []string{filepath.Join(dir, "list.m3u")}); err != nil {
		t.Fatal(err)
	}
	if s.OutputFilename != "list.m3u" {
		t.Errorf("output filename = %q", s.OutputFilename)
	}
	if s.WorkDir != dir {
		t.Errorf("work dir = %q", s.WorkDir)
	}
}

func TestResolveArgs_DirectoryArgument(t *testing.T) {
	dir := t.TempDir()
	s := &config.Settings{Mode: config.ModeFilesystem}
	if err := resolveArgs(s, []string{dir}); err != nil {
		t.Fatal(err)
	}
	if s.WorkDir != dir {
		t.Errorf("work dir = %q", s.WorkDir)
	}

	// A directory argument beats single-file interpretation.
	s = &config.Settings{Mode: config.ModeM3U}
	if err := resolveArgs(s, []string{dir}); err != nil {
		t.Fatal(err)
	}
	if s.WorkDir != dir || s.OutputFilename != "" {
		t.Errorf("work dir = %q, output = %q", s.WorkDir, s.OutputFilename)
	}
}

func TestResolveArgs_RejectsExtraAndMissingDir(t *testing.T) {
	s := &config.Settings{Mode: config.ModeStdout, WorkDir: "."}
	if err := resolveArgs(s, []string{"a", "b"}); err == nil {
		t.Error("extra argument accepted")
	}

	s = &config.Settings{Mode: config.ModeStdout}
	if err := resolveArgs(s, []string{filepath.Join(os.TempDir(), "definitely-missing-dir-xyz")}); err == nil {
		t.Error("missing work dir accepted")
	}
}
