package main

import (
	"errors"
	"reflect"
	"testing"
)

func u64ptr(v uint64) *uint64 { return &v }

func TestParseLsblkOutput(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		check   func(t *testing.T, got *lsblkOutput)
		wantErr bool
	}{
		{
			name: "typed columns",
			output: `{"blockdevices": [{
				"name": "/dev/sda", "kname": "/dev/sda", "tran": "sata",
				"rm": false, "hotplug": false, "ro": true,
				"size": 500107862016, "phy-sec": 4096, "log-sec": 512,
				"pttype": "gpt", "mountpoint": null
			}]}`,
			check: func(t *testing.T, got *lsblkOutput) {
				d := got.BlockDevices[0]
				if d.Name.Value != "/dev/sda" || d.Tran.Value != "sata" {
					t.Errorf("name/tran = %q/%q", d.Name.Value, d.Tran.Value)
				}
				if !d.ReadOnly.Or(false) || d.Removable.Or(true) {
					t.Errorf("ro/rm = %v/%v", d.ReadOnly, d.Removable)
				}
				if d.Size.Or(0) != 500107862016 || d.PhySec.Or(0) != 4096 {
					t.Errorf("size/phy-sec = %v/%v", d.Size, d.PhySec)
				}
				if d.Mountpoint.Valid {
					t.Errorf("mountpoint should be absent, got %q", d.Mountpoint.Value)
				}
				if d.Children != nil {
					t.Errorf("children should be nil, got %v", d.Children)
				}
			},
		},
		{
			name: "older util-linux quoting",
			output: `{"blockdevices": [{
				"name": "sdb", "rm": "1", "ro": "0", "size": "1024", "phy-sec": "512",
				"children": []
			}]}`,
			check: func(t *testing.T, got *lsblkOutput) {
				d := got.BlockDevices[0]
				if !d.Removable.Or(false) || d.ReadOnly.Or(true) {
					t.Errorf("rm/ro = %v/%v", d.Removable, d.ReadOnly)
				}
				if d.Size.Or(0) != 1024 || d.PhySec.Or(0) != 512 {
					t.Errorf("size/phy-sec = %v/%v", d.Size, d.PhySec)
				}
				if d.Children == nil || len(d.Children) != 0 {
					t.Errorf("children should be empty and non-nil, got %#v", d.Children)
				}
			},
		},
		{
			name:   "wrong typed columns fall back",
			output: `{"blockdevices": [{"name": 7, "size": true, "rm": "maybe", "tran": ["usb"], "phy-sec": 1.5}]}`,
			check: func(t *testing.T, got *lsblkOutput) {
				d := got.BlockDevices[0]
				if d.Name.Valid || d.Size.Valid || d.Removable.Valid || d.Tran.Valid || d.PhySec.Valid {
					t.Errorf("expected every column absent, got %+v", d)
				}
			},
		},
		{
			name:   "empty output",
			output: `{}`,
			check: func(t *testing.T, got *lsblkOutput) {
				if len(got.BlockDevices) != 0 {
					t.Errorf("expected no devices, got %d", len(got.BlockDevices))
				}
			},
		},
		{
			name:    "invalid JSON",
			output:  `{invalid json}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLsblk([]byte(tt.output))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLsblk() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("expected *ParseError, got %T", err)
				}
				return
			}
			tt.check(t, got)
		})
	}
}

func optStr(v string) optString { return optString{Value: v, Valid: true} }
func optFlag(v bool) optBool { return optBool{Value: v, Valid: true} }
func optNum(v int64) optInt64 { return optInt64{Value: v, Valid: true} }
func optUnum(v uint64) optUint64 { return optUint64{Value: v, Valid: true} }

func TestNormalizeDeviceClassification(t *testing.T) {
	tests := []struct {
		name          string
		rec           lsblkDevice
		wantBus       string
		wantUSB       bool
		wantSCSI      bool
		wantVirtual   bool
		wantRemovable bool
	}{
		{
			name:          "usb stick",
			rec:           lsblkDevice{Name: optStr("/dev/sdb"), Tran: optStr("usb"), Removable: optFlag(true)},
			wantBus:       "USB",
			wantUSB:       true,
			wantRemovable: true,
		},
		{
			name:     "sata disk",
			rec:      lsblkDevice{Name: optStr("/dev/sda"), Tran: optStr("sata")},
			wantBus:  "SATA",
			wantSCSI: true,
		},
		{
			name:     "upper case transport",
			rec:      lsblkDevice{Name: optStr("/dev/sdc"), Tran: optStr("SCSI")},
			wantBus:  "SCSI",
			wantSCSI: true,
		},
		{
			name:    "nvme is neither",
			rec:     lsblkDevice{Name: optStr("/dev/nvme0n1"), Tran: optStr("nvme")},
			wantBus: "NVME",
		},
		{
			name:          "virtual block device",
			rec:           lsblkDevice{Name: optStr("/dev/dm-0"), Subsystems: optStr("block"), Removable: optFlag(false), Hotplug: optFlag(false)},
			wantBus:       "UNKNOWN",
			wantVirtual:   true,
			wantRemovable: true,
		},
		{
			name:          "hotplug",
			rec:           lsblkDevice{Name: optStr("/dev/sdd"), Tran: optStr("sas"), Hotplug: optFlag(true)},
			wantBus:       "SAS",
			wantRemovable: true,
		},
		{
			name:    "missing transport",
			rec:     lsblkDevice{Name: optStr("/dev/vda"), Subsystems: optStr("block:virtio:pci")},
			wantBus: "UNKNOWN",
		},
		{
			name:    "empty transport",
			rec:     lsblkDevice{Name: optStr("/dev/vdb"), Tran: optStr("")},
			wantBus: "UNKNOWN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := normalizeDevice(tt.rec)
			if d.BusType != tt.wantBus {
				t.Errorf("BusType = %q, want %q", d.BusType, tt.wantBus)
			}
			if d.IsUSB != tt.wantUSB || d.IsSCSI != tt.wantSCSI {
				t.Errorf("IsUSB/IsSCSI = %v/%v, want %v/%v", d.IsUSB, d.IsSCSI, tt.wantUSB, tt.wantSCSI)
			}
			if d.IsVirtual != tt.wantVirtual {
				t.Errorf("IsVirtual = %v, want %v", d.IsVirtual, tt.wantVirtual)
			}
			if d.IsRemovable != tt.wantRemovable {
				t.Errorf("IsRemovable = %v, want %v", d.IsRemovable, tt.wantRemovable)
			}
			if d.IsSystem != !(d.IsRemovable || d.IsVirtual) {
				t.Errorf("IsSystem = %v with IsRemovable %v and IsVirtual %v", d.IsSystem, d.IsRemovable, d.IsVirtual)
			}
		})
	}
}

func TestNormalizeDeviceDefaults(t *testing.T) {
	d := normalizeDevice(lsblkDevice{Name: optStr("/dev/sda")})

	want := Device{
		Enumerator:       lsblkEnumerator,
		BusType:          "UNKNOWN",
		Device:           "/dev/sda",
		Raw:              "/dev/sda",
		BlockSize:        512,
		LogicalBlockSize: 512,
		Mountpoints:      []Mountpoint{},
		IsSystem:         true,
	}
	if !reflect.DeepEqual(d, want) {
		t.Errorf("normalizeDevice() = %+v, want %+v", d, want)
	}
}

func TestNormalizeDeviceFields(t *testing.T) {
	d := normalizeDevice(lsblkDevice{
		Name:     optStr("/dev/sda"),
		KName:    optStr("/dev/sda"),
		Label:    optStr("DATA"),
		Vendor:   optStr("ACME"),
		Model:    optStr("X1"),
		ReadOnly: optFlag(true),
		Size:     optNum(-1),
		PhySec:   optNum(4096),
		LogSec:   optNum(512),
		PTType:   optStr("dos"),
	})

	if d.Description != "DATA ACME X1 DATA" {
		t.Errorf("Description = %q", d.Description)
	}
	if !d.IsReadOnly {
		t.Error("expected IsReadOnly")
	}
	if d.Size != ^uint64(0) {
		t.Errorf("Size = %d, want the int64 bit pattern reinterpreted", d.Size)
	}
	if d.BlockSize != 4096 || d.LogicalBlockSize != 512 {
		t.Errorf("BlockSize/LogicalBlockSize = %d/%d", d.BlockSize, d.LogicalBlockSize)
	}
	if d.PartitionTableType != PartitionTableMBR {
		t.Errorf("PartitionTableType = %q, want mbr", d.PartitionTableType)
	}
}

func TestNormalizeDevicePartitionTable(t *testing.T) {
	tests := []struct {
		pttype string
		want   PartitionTableType
	}{
		{pttype: "gpt", want: PartitionTableGPT},
		{pttype: "dos", want: PartitionTableMBR},
		{pttype: "sun", want: ""},
		{pttype: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.pttype, func(t *testing.T) {
			d := normalizeDevice(lsblkDevice{Name: optStr("/dev/sda"), PTType: optStr(tt.pttype)})
			if d.PartitionTableType != tt.want {
				t.Errorf("PartitionTableType = %q, want %q", d.PartitionTableType, tt.want)
			}
		})
	}
}

func TestNormalizeDeviceMountpoints(t *testing.T) {
	tests := []struct {
		name string
		rec  lsblkDevice
		want []Mountpoint
	}{
		{
			name: "children with and without mountpoint",
			rec: lsblkDevice{
				Name: optStr("/dev/sda"),
				Children: []lsblkDevice{
					{Name: optStr("/dev/sda1")},
					{Name: optStr("/dev/sda2"), Mountpoint: optStr("/mnt"), FSSize: optUnum(1000)},
				},
			},
			want: []Mountpoint{{Path: "/mnt", TotalBytes: u64ptr(1000)}},
		},
		{
			name: "childless device mounted itself",
			rec:  lsblkDevice{Name: optStr("/dev/sdb"), Mountpoint: optStr("/media/usb"), Label: optStr("USB"), FSSize: optUnum(2048), FSAvail: optUnum(1024)},
			want: []Mountpoint{{Path: "/media/usb", Label: "USB", TotalBytes: u64ptr(2048), AvailableBytes: u64ptr(1024)}},
		},
		{
			name: "empty children ignore the device mountpoint",
			rec:  lsblkDevice{Name: optStr("/dev/sdc"), Mountpoint: optStr("/srv"), Children: []lsblkDevice{}},
			want: []Mountpoint{},
		},
		{
			name: "empty mountpoint string",
			rec:  lsblkDevice{Name: optStr("/dev/sdd"), Mountpoint: optStr("")},
			want: []Mountpoint{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := normalizeDevice(tt.rec)
			if !reflect.DeepEqual(d.Mountpoints, tt.want) {
				t.Errorf("Mountpoints = %+v, want %+v", d.Mountpoints, tt.want)
			}
		})
	}
}

func TestMountpointsFromUnparsableCapacity(t *testing.T) {
	out, err := parseLsblk([]byte(`{"blockdevices": [{"name": "sda", "children": [
		{"name": "sda1"},
		{"name": "sda2", "mountpoint": "/mnt", "fssize": "1000", "fsavail": "abc"}
	]}]}`))
	if err != nil {
		t.Fatalf("parseLsblk() error = %v", err)
	}

	got := mountpointsFrom(out.BlockDevices[0].Children)
	want := []Mountpoint{{Path: "/mnt", TotalBytes: u64ptr(1000)}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mountpointsFrom() = %+v, want %+v", got, want)
	}
}

func TestNormalizeLsblk(t *testing.T) {
	out := &lsblkOutput{BlockDevices: []lsblkDevice{
		{Name: optStr("loop0"), KName: optStr("loop0")},
		{Name: optStr("sdb"), KName: optStr("sdb"), Tran: optStr("usb")},
		{Name: optStr("/dev/sr0")},
		{Name: optStr("/dev/sda"), KName: optStr("/dev/sda")},
		{Name: optStr("ram0")},
		{Name: optStr("/dev/mapper/root"), KName: optStr("dm-0"), Subsystems: optStr("block")},
	}}

	drives := normalizeLsblk(out)

	var names []string
	for _, d := range drives {
		names = append(names, d.Device)
	}
	want := []string{"/dev/sdb", "/dev/sda", "/dev/mapper/root"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("devices = %v, want %v", names, want)
	}
	if drives[2].Raw != "/dev/dm-0" {
		t.Errorf("Raw = %q, want /dev/dm-0", drives[2].Raw)
	}
	for _, d := range drives {
		if d.IsSystem != !(d.IsRemovable || d.IsVirtual) {
			t.Errorf("%s: IsSystem invariant broken", d.Device)
		}
	}
}
