//go:build linux || darwin

package main

import "golang.org/x/sys/unix"

func statfsCapacity(path string) (total, available uint64, err error) {
	var fs unix.Statfs_t
	if err := unix.Statfs(path, &fs); err != nil {
		return 0, 0, err
	}

	bsize := uint64(fs.Bsize)
	return fs.Blocks * bsize, fs.Bavail * bsize, nil
}
