package output_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vodtools/vodindex/internal/output"
)

func TestFileWriter_TxtCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	w, err := output.NewFileWriter(output.TxtFormat{}, path, false, false)
	if err != nil {
		t.Fatal(err)
	}
	w.Add(output.Entry{Name: "A", Source: "http://x/a.mp4"})
	w.Add(output.Entry{Name: "B", Source: "http://x/b.mp4"})
	w.Add(output.Entry{Name: "A again", Source: "http://x/a.mp4"})
	if err := w.Dump(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "http://x/a.mp4\nhttp://x/b.mp4\n"
	if string(data) != want {
		t.Errorf("got %q, want %q", data, want)
	}
}

func TestFileWriter_AppendNoDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	if err := os.WriteFile(path, []byte("http://x/a.mp4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := output.NewFileWriter(output.TxtFormat{}, path, false, true)
	if err != nil {
		t.Fatal(err)
	}
	w.Add(output.Entry{Name: "A", Source: "http://x/a.mp4"}) // already in file
	w.Add(output.Entry{Name: "B", Source: "http://x/b.mp4"})
	if err := w.Dump(); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if got := string(data); got != "http://x/a.mp4\nhttp://x/b.mp4\n" {
		t.Errorf("append result = %q", got)
	}
}

func TestFileWriter_NewestReversesAndPrepends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Entries arrive oldest first; newest-first output reverses them and
	// keeps old content below.
	w, err := output.NewFileWriter(output.TxtFormat{}, path, true, true)
	if err != nil {
		t.Fatal(err)
	}
	w.Add(output.Entry{Source: "older"})
	w.Add(output.Entry{Source: "newer"})
	if err := w.Dump(); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if got := string(data); got != "newer\nolder\nold\n" {
		t.Errorf("got %q", got)
	}
}

func TestM3UFormat(t *testing.T) {
	f := output.M3UFormat{}
	line := f.Line(output.Entry{Name: "Clip", Source: "a.mp4", Duration: 90})
	if line != "#EXTINF:90, Clip\na.mp4" {
		t.Errorf("line = %q", line)
	}
	if _, ok := f.Source("#EXTINF:90, Clip"); ok {
		t.Error("comment line parsed as source")
	}
	if src, ok := f.Source("a.mp4"); !ok || src != "a.mp4" {
		t.Errorf("source = %q, %v", src, ok)
	}
}

func TestM3UWriter_FileHasHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.m3u")
	w, err := output.NewFileWriter(output.M3UFormat{}, path, false, false)
	if err != nil {
		t.Fatal(err)
	}
	w.Add(output.Entry{Name: "Clip", Source: "a.mp4", Duration: 5})
	if err := w.Dump(); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "#EXTM3U\n") {
		t.Errorf("missing header: %q", data)
	}
}

func TestHTMLFormat_EscapeRoundTrip(t *testing.T) {
	f := output.HTMLFormat{}
	entry := output.Entry{Name: `Tom & "Jerry"`, Source: `video "1" & 2.mp4`}
	line := f.Line(entry)
	if strings.Contains(line, `href="video "`) {
		t.Fatalf("unescaped quote in href: %q", line)
	}
	src, ok := f.Source(line)
	if !ok || src != entry.Source {
		t.Errorf("round trip = %q, %v", src, ok)
	}
}

func TestHTMLWriter_AppendRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.html")
	if err := os.WriteFile(path, []byte("not html at all"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := output.NewFileWriter(output.HTMLFormat{}, path, false, true)
	if err != output.ErrBadFormat {
		t.Errorf("err = %v, want ErrBadFormat", err)
	}
}

func TestHTMLWriter_AppendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.html")

	first, err := output.NewFileWriter(output.HTMLFormat{}, path, false, false)
	if err != nil {
		t.Fatal(err)
	}
	first.Add(output.Entry{Name: "One", Source: "a.mp4"})
	if err := first.Dump(); err != nil {
		t.Fatal(err)
	}

	second, err := output.NewFileWriter(output.HTMLFormat{}, path, false, true)
	if err != nil {
		t.Fatal(err)
	}
	second.Add(output.Entry{Name: "One", Source: "a.mp4"}) // duplicate
	second.Add(output.Entry{Name: "Two", Source: "b.mp4"})
	if err := second.Dump(); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if n := strings.Count(string(data), `"a.mp4"`); n != 1 {
		t.Errorf("a.mp4 appears %d times", n)
	}
	if !strings.Contains(string(data), `"b.mp4"`) {
		t.Error("b.mp4 missing")
	}
	if !strings.HasSuffix(string(data), "</body></html>\n") {
		t.Error("footer missing or misplaced")
	}
}
