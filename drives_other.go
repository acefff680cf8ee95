//go:build !linux && !darwin

package main

import (
	"context"

	"github.com/charmbracelet/log"
	utilexec "k8s.io/utils/exec"
)

func listDrivesPlatform(_ context.Context, _ utilexec.Interface, _ *log.Logger, _ listOptions) ([]Device, error) {
	return nil, ErrUnsupportedPlatform
}
