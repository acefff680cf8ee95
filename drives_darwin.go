//go:build darwin

package main

import (
	"context"

	"github.com/charmbracelet/log"
	utilexec "k8s.io/utils/exec"
)

func listDrivesPlatform(ctx context.Context, exec utilexec.Interface, logger *log.Logger, _ listOptions) ([]Device, error) {
	return diskutilDrives(ctx, exec, logger)
}
