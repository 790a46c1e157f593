package download_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vodtools/vodindex/internal/download"
)

// md5("hello world")
const helloMD5 = "5eb63bbbe01eeed093cb22bb8f5acdc3"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckFile_OK(t *testing.T) {
	path := writeTemp(t, "v.mp4", "hello world")
	status, err := download.CheckFile(path, 11, helloMD5, true)
	if err != nil {
		t.Fatal(err)
	}
	if status != download.StatusOK {
		t.Errorf("status = %v, want OK", status)
	}
}

func TestCheckFile_SizeMismatch(t *testing.T) {
	path := writeTemp(t, "v.mp4", "hello world")
	status, err := download.CheckFile(path, 99, helloMD5, true)
	if err != nil {
		t.Fatal(err)
	}
	if status != download.StatusSizeMismatch {
		t.Errorf("status = %v, want size mismatch", status)
	}
}

func TestCheckFile_ChecksumMismatch(t *testing.T) {
	path := writeTemp(t, "v.mp4", "hello world")
	status, err := download.CheckFile(path, 11, "feedfacefeedfacefeedfacefeedface", true)
	if err != nil {
		t.Fatal(err)
	}
	if status != download.StatusChecksumMismatch {
		t.Errorf("status = %v, want checksum mismatch", status)
	}
}

func TestCheckFile_ChecksumSkippedWhenDisabled(t *testing.T) {
	path := writeTemp(t, "v.mp4", "hello world")
	status, err := download.CheckFile(path, 11, "feedfacefeedfacefeedfacefeedface", false)
	if err != nil {
		t.Fatal(err)
	}
	if status != download.StatusOK {
		t.Errorf("status = %v, want OK when verification disabled", status)
	}
}

func TestCheckFile_NothingKnown(t *testing.T) {
	path := writeTemp(t, "v.mp4", "some bytes")
	status, err := download.CheckFile(path, 0, "", true)
	if err != nil {
		t.Fatal(err)
	}
	if status != download.StatusOK {
		t.Errorf("non-empty file with nothing known should be OK, got %v", status)
	}

	empty := writeTemp(t, "empty.mp4", "")
	status, err = download.CheckFile(empty, 0, "", true)
	if err != nil {
		t.Fatal(err)
	}
	if status == download.StatusOK {
		t.Error("empty file with nothing known should not be OK")
	}
}
