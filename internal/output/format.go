package output

import (
	"fmt"
	"html"
	"strings"
)

// TxtFormat is one source per line, nothing else.
type TxtFormat struct{}

func (TxtFormat) Ext() string    { return ".txt" }
func (TxtFormat) Header() string { return "" }
func (TxtFormat) Footer() string { return "" }

func (TxtFormat) Line(e Entry) string { return e.Source }

func (TxtFormat) Source(line string) (string, bool) {
	return line, line != ""
}

// M3UFormat writes extended M3U playlists.
type M3UFormat struct{}

func (M3UFormat) Ext() string    { return ".m3u" }
func (M3UFormat) Header() string { return "#EXTM3U\n" }
func (M3UFormat) Footer() string { return "" }

func (M3UFormat) Line(e Entry) string {
	return fmt.Sprintf("#EXTINF:%d, %s\n%s", e.Duration, e.Name, e.Source)
}

func (M3UFormat) Source(line string) (string, bool) {
	if line == "" || strings.HasPrefix(line, "#") {
		return "", false
	}
	return line, true
}

// HTMLFormat writes a minimal page of links.
type HTMLFormat struct{}

func (HTMLFormat) Ext() string { return ".html" }

func (HTMLFormat) Header() string {
	return "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"/></head><body>\n"
}

func (HTMLFormat) Footer() string { return "</body></html>\n" }

func (HTMLFormat) Line(e Entry) string {
	// The source needs escaping too: friendly filenames can carry quotes
	// and ampersands.
	return fmt.Sprintf("<a href=\"%s\">%s</a><br>",
		html.EscapeString(e.Source), html.EscapeString(e.Name))
}

func (HTMLFormat) Source(line string) (string, bool) {
	if !strings.HasPrefix(line, "<a href=\"") {
		return "", false
	}
	parts := strings.SplitN(line, "\"", 3)
	if len(parts) < 3 {
		return "", false
	}
	return html.UnescapeString(parts[1]), true
}
