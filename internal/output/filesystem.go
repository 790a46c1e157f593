package output

import (
	"os"
	"path/filepath"

	"github.com/vodtools/vodindex/internal/catalog"
	"github.com/vodtools/vodindex/internal/util"
)

// writeFilesystem builds a browsable directory tree: one directory per
// category key under the media dir, friendly-named symlinks to downloaded
// videos and to subcategory directories, and a named entry link in the work
// dir for each home category.
func writeFilesystem(opts Options, categories []*catalog.Category) error {
	dataDir := filepath.Join(opts.WorkDir, opts.SubDir)
	opts.log("creating directory structure")

	for _, cat := range categories {
		catDir := filepath.Join(dataDir, cat.Key)
		if err := util.EnsureDir(catDir); err != nil {
			return err
		}

		if cat.Home {
			name, err := CategoryFilename(cat, opts.SafeFilenames)
			if err == nil {
				link := filepath.Join(opts.WorkDir, name)
				// Relative links survive moving the whole work dir;
				// absolute ones are what Windows needs.
				target := filepath.Join(opts.SubDir, cat.Key)
				if opts.SafeFilenames {
					if abs, err := filepath.Abs(catDir); err == nil {
						target = abs
					}
				}
				if err := symlink(target, link); err != nil {
					opts.warn("could not create symlink %s: %v", link, err)
				}
			}
		}

		for _, sub := range cat.Subcategories {
			dest := filepath.Join(dataDir, sub.Key)
			if err := util.EnsureDir(dest); err != nil {
				return err
			}
			name, err := CategoryFilename(sub, opts.SafeFilenames)
			if err != nil {
				continue
			}
			if err := opts.linkInto(catDir, name, dest); err != nil {
				opts.warn("could not create symlink %s: %v", name, err)
			}
		}

		for _, m := range cat.Items {
			dest := filepath.Join(dataDir, m.Filename())
			if _, err := os.Stat(dest); err != nil {
				continue
			}
			name := FriendlyFilename(m, opts.SafeFilenames)
			if err := opts.linkInto(catDir, name, dest); err != nil {
				opts.warn("could not create symlink %s: %v", name, err)
			}
		}
	}
	return nil
}

// linkInto creates dir/name pointing at dest, relative unless safe
// filenames (Windows) are in effect.
func (o Options) linkInto(dir, name, dest string) error {
	target := dest
	if o.SafeFilenames {
		abs, err := filepath.Abs(dest)
		if err != nil {
			return err
		}
		target = abs
	} else {
		rel, err := filepath.Rel(dir, dest)
		if err != nil {
			return err
		}
		target = rel
	}
	return symlink(target, filepath.Join(dir, name))
}

func symlink(target, link string) error {
	err := os.Symlink(target, link)
	if err != nil && os.IsExist(err) {
		return nil
	}
	return err
}

// CleanSymlinks removes broken symlinks one level below the category
// directories, or every symlink there when all is set.
func CleanSymlinks(dataDir string, all bool, log func(format string, a ...interface{})) error {
	links, err := filepath.Glob(filepath.Join(dataDir, "*", "*"))
	if err != nil {
		return err
	}
	for _, link := range links {
		fi, err := os.Lstat(link)
		if err != nil || fi.Mode()&os.ModeSymlink == 0 {
			continue
		}
		if !all {
			// A link whose target stats fine is not broken.
			if _, err := os.Stat(link); err == nil {
				continue
			}
		}
		if log != nil {
			log("removing link: %s", filepath.Base(link))
		}
		if err := os.Remove(link); err != nil {
			return err
		}
	}
	return nil
}
