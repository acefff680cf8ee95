package main

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	utilexec "k8s.io/utils/exec"
)

const (
	diskutilCommand = "diskutil"
	plutilCommand   = "plutil"
)

// diskutilOutput is `diskutil list -plist` after conversion to JSON.
type diskutilOutput struct {
	AllDisksAndPartitions []diskutilDisk `json:"AllDisksAndPartitions"`
}

type diskutilDisk struct {
	DeviceIdentifier optString      `json:"DeviceIdentifier"`
	Content          optString      `json:"Content"`
	Size             optInt64       `json:"Size"`
	Partitions       []diskutilDisk `json:"Partitions"`
	APFSVolumes      []diskutilDisk `json:"APFSVolumes"`
	MountPoint       optString      `json:"MountPoint"`
	VolumeName       optString      `json:"VolumeName"`
}

// parseDiskutil decodes the JSON form of diskutil's property list and
// resolves each DeviceIdentifier to a /dev path.
func parseDiskutil(output []byte) (*diskutilOutput, error) {
	var out diskutilOutput
	if err := json.Unmarshal(output, &out); err != nil {
		return nil, &ParseError{Tool: plutilCommand, Err: err}
	}
	for i := range out.AllDisksAndPartitions {
		disk := &out.AllDisksAndPartitions[i]
		disk.DeviceIdentifier.Value = resolveDeviceName(disk.DeviceIdentifier.Value)
	}
	return &out, nil
}

// diskutilDrives runs diskutil and plutil and parses the result. Mapping the
// disks to Device records is not implemented, so the list is always empty.
func diskutilDrives(ctx context.Context, exec utilexec.Interface, logger *log.Logger) ([]Device, error) {
	plist, err := runTool(ctx, exec, diskutilCommand, "list", "-plist")
	if err != nil {
		return nil, err
	}

	converted, err := runToolInput(ctx, exec, bytes.NewReader(plist), plutilCommand, "-convert", "json", "-o", "-", "-")
	if err != nil {
		return nil, err
	}

	parsed, err := parseDiskutil(converted)
	if err != nil {
		return nil, err
	}

	logger.Warn("diskutil backend does not report devices yet", "disks", len(parsed.AllDisksAndPartitions))
	return []Device{}, nil
}
