package output

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/vodtools/vodindex/internal/catalog"
)

// Characters NTFS and FAT file systems cannot represent.
const unsafeChars = `"*/:<>?\|`

// ErrNoCategoryName means a category carries only a key, so no
// human-readable file name can be derived from it. Placeholder categories
// synthesized during update runs are like that.
var ErrNoCategoryName = errors.New("category has no name")

// FormatFilename makes a display name usable as a file name. Path
// separators always go; in safe mode every character Windows file systems
// reject goes too.
func FormatFilename(name string, safe bool) string {
	if safe {
		return strings.Map(func(r rune) rune {
			if strings.ContainsRune(unsafeChars, r) {
				return -1
			}
			return r
		}, name)
	}
	return strings.ReplaceAll(name, "/", "")
}

// CategoryFilename derives a file name from the category's display name.
func CategoryFilename(c *catalog.Category, safe bool) (string, error) {
	if c.Name == "" {
		return "", ErrNoCategoryName
	}
	return FormatFilename(c.Name, safe), nil
}

// FriendlyFilename names a media file after its title, keeping the
// extension of the URL-derived name.
func FriendlyFilename(m *catalog.Media, safe bool) string {
	return FormatFilename(m.Name, safe) + path.Ext(m.Filename())
}

// FriendlySubtitleFilename names a subtitle file after the video's title,
// keeping the extension of the subtitle URL.
func FriendlySubtitleFilename(m *catalog.Media, url string, safe bool) string {
	return FormatFilename(m.Name, safe) + path.Ext(catalog.URLBasename(url))
}

// DetectUnsafeFilesystem probes dir with a file name only POSIX-style file
// systems accept. True means safe filenames are required.
func DetectUnsafeFilesystem(dir string) bool {
	probe := filepath.Join(dir, "?")
	f, err := os.OpenFile(probe, os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		// Leftover probe from an earlier run still proves the name works.
		return !os.IsExist(err)
	}
	_ = f.Close()
	_ = os.Remove(probe)
	return false
}
