package catalog_test

import (
	"testing"
	"time"

	"github.com/vodtools/vodindex/internal/catalog"
)

func TestURLBasename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"https://cdn.example.org/media/pub_video_720P.mp4", "pub_video_720P.mp4"},
		{"https://cdn.example.org/media/clip.mp4?token=abc", "clip.mp4"},
		{"clip.mp4", "clip.mp4"},
	}
	for _, c := range cases {
		if got := catalog.URLBasename(c.in); got != c.want {
			t.Errorf("URLBasename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestDownloadQueue_DedupByFilename(t *testing.T) {
	// Same file reachable from two categories under different URLs hosts.
	a := &catalog.Media{Name: "a", URL: "https://h1.example.org/v/same.mp4", Date: date(2020, 1, 1)}
	b := &catalog.Media{Name: "b", URL: "https://h2.example.org/v/same.mp4", Date: date(2020, 1, 2)}
	cats := []*catalog.Category{
		{Key: "A", Items: []*catalog.Media{a}},
		{Key: "B", Items: []*catalog.Media{b}},
	}

	queue := catalog.DownloadQueue(cats, nil)
	if len(queue) != 1 {
		t.Fatalf("queue length = %d, want 1", len(queue))
	}
	if queue[0] != a {
		t.Error("dedup should keep the first occurrence")
	}
}

func TestDownloadQueue_NewestFirstUnknownLast(t *testing.T) {
	old := &catalog.Media{URL: "u/old.mp4", Date: date(2019, 1, 1)}
	mid := &catalog.Media{URL: "u/mid.mp4", Date: date(2020, 6, 1)}
	fresh := &catalog.Media{URL: "u/new.mp4", Date: date(2021, 1, 1)}
	unknown := &catalog.Media{URL: "u/unknown.mp4"}
	cats := []*catalog.Category{{Key: "A", Items: []*catalog.Media{old, unknown, fresh, mid}}}

	queue := catalog.DownloadQueue(cats, nil)
	want := []*catalog.Media{fresh, mid, old, unknown}
	for i := range want {
		if queue[i] != want[i] {
			t.Fatalf("queue[%d] = %s, want %s", i, queue[i].URL, want[i].URL)
		}
	}
}

func TestDownloadQueue_ExcludeSkipsNonHome(t *testing.T) {
	m1 := &catalog.Media{URL: "u/1.mp4"}
	m2 := &catalog.Media{URL: "u/2.mp4"}
	m3 := &catalog.Media{URL: "u/3.mp4"}
	cats := []*catalog.Category{
		{Key: "Keep", Items: []*catalog.Media{m1}},
		{Key: "Skip", Items: []*catalog.Media{m2}},
		{Key: "SkipButHome", Home: true, Items: []*catalog.Media{m3}},
	}

	queue := catalog.DownloadQueue(cats, []string{"Skip", "SkipButHome"})
	if len(queue) != 2 {
		t.Fatalf("queue length = %d, want 2", len(queue))
	}
	for _, m := range queue {
		if m == m2 {
			t.Error("excluded category item should not be queued")
		}
	}
}

func TestSortMedia_Name(t *testing.T) {
	items := []*catalog.Media{{Name: "b"}, {Name: "a"}, {Name: "c"}}
	catalog.SortMedia(items, catalog.SortName)
	if items[0].Name != "a" || items[2].Name != "c" {
		t.Errorf("unexpected order: %v %v %v", items[0].Name, items[1].Name, items[2].Name)
	}
}
