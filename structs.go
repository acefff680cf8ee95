package main

var appversion = "0.1.4"

const (
	kb = 1 << 10
	mb = 1 << 20
	gb = 1 << 30
	tb = 1 << 40
	pb = 1 << 50
)

// dataSizeNumber is a type constraint that allows any signed or unsigned integer type.
type dataSizeNumber interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~uintptr
}

// Unit represents a data size unit with its name and threshold.
type Unit struct {
	Name      string
	Threshold uint64
}

// Predefined units in descending order.
var units = []Unit{
	{"PB", pb},
	{"TB", tb},
	{"GB", gb},
	{"MB", mb},
	{"KB", kb},
	{"bytes", 1},
}

// PartitionTableType is the on-disk partitioning scheme of a device.
type PartitionTableType string

const (
	PartitionTableGPT PartitionTableType = "gpt"
	PartitionTableMBR PartitionTableType = "mbr"
)

// Mountpoint is a filesystem attached from a device or one of its partitions.
type Mountpoint struct {
	Path           string  `json:"path"`
	Label          string  `json:"label,omitempty"`
	TotalBytes     *uint64 `json:"totalBytes,omitempty"`
	AvailableBytes *uint64 `json:"availableBytes,omitempty"`
}

// Device is the normalized view of one block device.
type Device struct {
	Enumerator         string             `json:"enumerator"`
	BusType            string             `json:"busType"`
	Device             string             `json:"device"`
	DevicePath         string             `json:"devicePath,omitempty"`
	Raw                string             `json:"raw"`
	Description        string             `json:"description"`
	Size               uint64             `json:"size"`
	BlockSize          uint32             `json:"blockSize"`
	LogicalBlockSize   uint32             `json:"logicalBlockSize"`
	Mountpoints        []Mountpoint       `json:"mountpoints"`
	IsReadOnly         bool               `json:"isReadOnly"`
	IsSystem           bool               `json:"isSystem"`
	IsVirtual          bool               `json:"isVirtual"`
	IsRemovable        bool               `json:"isRemovable"`
	IsSCSI             bool               `json:"isSCSI"`
	IsUSB              bool               `json:"isUSB"`
	PartitionTableType PartitionTableType `json:"partitionTableType,omitempty"`
}
