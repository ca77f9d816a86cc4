package notes

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	defaultFileMode = 0o644
	maxSymlinkHops  = 40
)

// WriteFileAtomic writes data to path using a temp file + rename in the
// same directory, so readers see either the old or the new content.
// An existing file keeps its permissions, and a symlink at path is followed
// so the link itself survives. The parent directory must already exist.
func WriteFileAtomic(fsys afero.Fs, path string, data []byte) error {
	target, err := resolveSymlinks(fsys, path)
	if err != nil {
		return err
	}

	mode := os.FileMode(defaultFileMode)
	if info, err := fsys.Stat(target); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("inspecting %s: %w", target, err)
	}

	dir := filepath.Dir(target)
	tmpFile, err := afero.TempFile(fsys, dir, ".relnotes-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmpFile.Name()

	// no-op once the rename succeeded
	defer fsys.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := fsys.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("setting permissions on temp file: %w", err)
	}

	if err := fsys.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", target, err)
	}

	return nil
}

// resolveSymlinks follows path through any chain of symlinks and returns the
// file that should receive the content. Filesystems without link support,
// and paths that do not exist yet, resolve to themselves.
func resolveSymlinks(fsys afero.Fs, path string) (string, error) {
	lstater, ok := fsys.(afero.Lstater)
	if !ok {
		return path, nil
	}
	reader, ok := fsys.(afero.LinkReader)
	if !ok {
		return path, nil
	}

	for hop := 0; hop < maxSymlinkHops; hop++ {
		info, _, err := lstater.LstatIfPossible(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("inspecting %s: %w", path, err)
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			return path, nil
		}

		link, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", fmt.Errorf("reading symlink %s: %w", path, err)
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(path), link)
		}
		path = link
	}
	return "", fmt.Errorf("too many levels of symbolic links at %s", path)
}
