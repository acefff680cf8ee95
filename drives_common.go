package main

import (
	"context"

	"github.com/charmbracelet/log"
	utilexec "k8s.io/utils/exec"
)

// listOptions carries the knobs of one enumeration call.
type listOptions struct {
	// LsblkPath overrides the lsblk binary looked up in PATH.
	LsblkPath string
	// AliasDir overrides the stable alias link directory.
	AliasDir string
	// FillCapacity queries statfs for mountpoints lsblk reported without capacity.
	FillCapacity bool
}

// listDrives returns the devices of this host in the order the platform tool
// reported them.
// Platform-specific implementations in drives_linux.go, drives_darwin.go, drives_other.go
func listDrives(ctx context.Context, exec utilexec.Interface, logger *log.Logger, opts listOptions) ([]Device, error) {
	drives, err := listDrivesPlatform(ctx, exec, logger, opts)
	if err != nil {
		return nil, err
	}

	if opts.FillCapacity {
		fillCapacity(drives, statfsCapacity, logger)
	}

	return drives, nil
}

// findDrive looks a device up by path, raw kernel path or stable alias.
func findDrive(drives []Device, name string) (Device, error) {
	resolved := resolveDeviceName(name)
	for _, d := range drives {
		if d.Device == resolved || d.Raw == resolved || (d.DevicePath != "" && d.DevicePath == name) {
			return d, nil
		}
	}
	return Device{}, ErrDeviceNotFound
}
