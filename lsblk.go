package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"
	utilexec "k8s.io/utils/exec"
)

const (
	lsblkCommand    = "lsblk"
	lsblkEnumerator = "lsblk:json"

	defaultBlockSize = 512
	unknownBusType   = "UNKNOWN"
)

// lsblkArgs asks for byte sizes, every device, JSON, absolute paths and all columns.
var lsblkArgs = []string{"--bytes", "--all", "--json", "--paths", "--output-all"}

// lsblkOutput is the top level document printed by lsblk --json.
type lsblkOutput struct {
	BlockDevices []lsblkDevice `json:"blockdevices"`
}

// lsblkDevice holds the lsblk columns the normalizer reads. Children is nil
// when the record has no children key.
type lsblkDevice struct {
	Name       optString     `json:"name"`
	KName      optString     `json:"kname"`
	Tran       optString     `json:"tran"`
	Subsystems optString     `json:"subsystems"`
	Label      optString     `json:"label"`
	Vendor     optString     `json:"vendor"`
	Model      optString     `json:"model"`
	Mountpoint optString     `json:"mountpoint"`
	PTType     optString     `json:"pttype"`
	ReadOnly   optBool       `json:"ro"`
	Removable  optBool       `json:"rm"`
	Hotplug    optBool       `json:"hotplug"`
	Size       optInt64      `json:"size"`
	PhySec     optInt64      `json:"phy-sec"`
	LogSec     optInt64      `json:"log-sec"`
	FSSize     optUint64     `json:"fssize"`
	FSAvail    optUint64     `json:"fsavail"`
	Children   []lsblkDevice `json:"children"`
}

// parseLsblk decodes lsblk JSON output.
func parseLsblk(output []byte) (*lsblkOutput, error) {
	var out lsblkOutput
	if err := json.Unmarshal(output, &out); err != nil {
		return nil, &ParseError{Tool: lsblkCommand, Err: err}
	}
	return &out, nil
}

// scsiTransports are the transports reported as SCSI attached.
var scsiTransports = map[string]struct{}{
	"sata": {},
	"scsi": {},
	"ata":  {},
	"ide":  {},
	"pci":  {},
}

// normalizeDevice maps one lsblk record, with name and kname already
// resolved to absolute paths, to a Device.
func normalizeDevice(rec lsblkDevice) Device {
	tran := strings.ToLower(rec.Tran.Or(""))
	_, isSCSI := scsiTransports[tran]

	device := Device{
		Enumerator:       lsblkEnumerator,
		BusType:          strings.ToUpper(rec.Tran.Or(unknownBusType)),
		Device:           rec.Name.Value,
		Raw:              rec.KName.Or(rec.Name.Value),
		Description:      buildDescription(rec.Label.Value, rec.Vendor.Value, rec.Model.Value),
		Size:             uint64(rec.Size.Or(0)),
		BlockSize:        uint32(rec.PhySec.Or(defaultBlockSize)),
		LogicalBlockSize: uint32(rec.LogSec.Or(defaultBlockSize)),
		IsVirtual:        strings.EqualFold(rec.Subsystems.Value, "block"),
		IsSCSI:           isSCSI,
		IsUSB:            tran == "usb",
		IsReadOnly:       rec.ReadOnly.Or(false),
	}
	device.IsRemovable = rec.Removable.Or(false) || rec.Hotplug.Or(false) || device.IsVirtual
	device.IsSystem = !device.IsRemovable && !device.IsVirtual

	switch rec.PTType.Value {
	case "gpt":
		device.PartitionTableType = PartitionTableGPT
	case "dos":
		device.PartitionTableType = PartitionTableMBR
	}

	if rec.Children != nil {
		device.Mountpoints = mountpointsFrom(rec.Children)
	} else {
		device.Mountpoints = mountpointsFrom([]lsblkDevice{rec})
	}

	return device
}

// normalizeLsblk resolves names, drops excluded devices and normalizes the
// rest, keeping lsblk's order.
func normalizeLsblk(out *lsblkOutput) []Device {
	drives := make([]Device, 0, len(out.BlockDevices))
	for _, rec := range out.BlockDevices {
		rec.Name.Value = resolveDeviceName(rec.Name.Value)
		rec.KName.Value = resolveDeviceName(rec.KName.Value)

		if excludedDevice(rec.Name.Value) {
			continue
		}
		drives = append(drives, normalizeDevice(rec))
	}
	return drives
}

// lsblkDrives enumerates block devices through lsblk and attaches the stable
// alias paths found in aliasDir.
func lsblkDrives(ctx context.Context, exec utilexec.Interface, logger *log.Logger, opts listOptions) ([]Device, error) {
	tool := opts.LsblkPath
	if tool == "" {
		tool = lsblkCommand
	}

	output, err := runTool(ctx, exec, tool, lsblkArgs...)
	if err != nil {
		return nil, err
	}

	parsed, err := parseLsblk(output)
	if err != nil {
		return nil, err
	}

	drives := normalizeLsblk(parsed)
	logger.Debug("lsblk devices normalized", "reported", len(parsed.BlockDevices), "kept", len(drives))

	if err := addDevicePaths(drives, opts.AliasDir, logger); err != nil {
		return nil, err
	}

	return drives, nil
}
