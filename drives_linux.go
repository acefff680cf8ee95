//go:build linux

package main

import (
	"context"

	"github.com/charmbracelet/log"
	utilexec "k8s.io/utils/exec"
)

func listDrivesPlatform(ctx context.Context, exec utilexec.Interface, logger *log.Logger, opts listOptions) ([]Device, error) {
	return lsblkDrives(ctx, exec, logger, opts)
}
