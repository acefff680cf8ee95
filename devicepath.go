package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// defaultAliasDir holds udev's stable by-path symlinks.
const defaultAliasDir = "/dev/disk/by-path/"

// readDevicePaths maps each device a link in dir points at to the link's path.
// When several links share a target the last one in directory order wins.
func readDevicePaths(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FilesystemError{Op: "read directory", Path: dir, Err: err}
	}

	base := filepath.ToSlash(filepath.Clean(dir))
	paths := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink == 0 {
			continue
		}

		link := filepath.Join(dir, entry.Name())
		if !utf8.ValidString(link) {
			return nil, &PathEncodingError{Path: link}
		}

		target, err := os.Readlink(link)
		if err != nil {
			return nil, &FilesystemError{Op: "read link", Path: link, Err: err}
		}
		if !utf8.ValidString(target) {
			return nil, &PathEncodingError{Path: target}
		}

		paths[resolveRelative(base, filepath.ToSlash(target))] = link
	}

	return paths, nil
}

// addDevicePaths sets DevicePath on every drive that has a stable alias link.
// Failing to list dir, including dir not existing, fails the call.
func addDevicePaths(drives []Device, dir string, logger *log.Logger) error {
	if dir == "" {
		dir = defaultAliasDir
	}

	paths, err := readDevicePaths(dir)
	if err != nil {
		return err
	}
	logger.Debug("stable alias links read", "dir", dir, "links", len(paths))

	for i := range drives {
		if alias, ok := paths[drives[i].Device]; ok {
			drives[i].DevicePath = alias
		}
	}

	return nil
}
