package main

import "github.com/charmbracelet/log"

// statfsFunc reports total and available bytes of the filesystem mounted at path.
type statfsFunc func(path string) (total, available uint64, err error)

// fillCapacity completes mountpoints lsblk reported without capacities.
// Capacities lsblk did report are kept.
func fillCapacity(drives []Device, statfs statfsFunc, logger *log.Logger) {
	for i := range drives {
		for j := range drives[i].Mountpoints {
			mp := &drives[i].Mountpoints[j]
			if mp.TotalBytes != nil && mp.AvailableBytes != nil {
				continue
			}

			total, avail, err := statfs(mp.Path)
			if err != nil {
				logger.Debug("statfs failed", "mountpoint", mp.Path, "err", err)
				continue
			}
			if mp.TotalBytes == nil {
				mp.TotalBytes = &total
			}
			if mp.AvailableBytes == nil {
				mp.AvailableBytes = &avail
			}
		}
	}
}
