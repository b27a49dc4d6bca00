// Package cleanup removes build and cache artifacts from a working tree.
package cleanup

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/xerrors"
)

// Remove deletes each of dirs, relative to root. Directories that don't
// exist are skipped. It returns the directories it removed.
func Remove(root string, dirs []string) ([]string, error) {
	var removed []string
	for _, dir := range dirs {
		path, err := within(root, dir)
		if err != nil {
			return removed, err
		}

		_, err = os.Lstat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return removed, xerrors.Errorf("failed to stat %v: %w", path, err)
		}

		err = os.RemoveAll(path)
		if err != nil {
			return removed, xerrors.Errorf("failed to remove %v: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

// RemoveCaches deletes every directory under root whose name matches
// pattern. It doesn't descend into the directories it removes.
func RemoveCaches(root, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, xerrors.Errorf("bad pattern %q: %w", pattern, err)
	}

	var removed []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}

		ok, _ := filepath.Match(pattern, d.Name())
		if !ok {
			return nil
		}

		err = os.RemoveAll(path)
		if err != nil {
			return xerrors.Errorf("failed to remove %v: %w", path, err)
		}
		removed = append(removed, path)
		return filepath.SkipDir
	})
	return removed, err
}

// within joins dir onto root, refusing paths that leave root.
func within(root, dir string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(dir))
	if filepath.IsAbs(clean) || clean == "." ||
		clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", xerrors.Errorf("refusing to remove %q: not inside the working tree", dir)
	}
	return filepath.Join(root, clean), nil
}
