package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"
)

// formatBytes renders a byte count with the largest unit that fits.
func formatBytes[T dataSizeNumber](n T) string {
	if n < 0 {
		return fmt.Sprintf("%d bytes", n)
	}
	v := uint64(n)
	for _, u := range units {
		if v >= u.Threshold && u.Threshold > 1 {
			return fmt.Sprintf("%.2f %s", float64(v)/float64(u.Threshold), u.Name)
		}
	}
	return fmt.Sprintf("%d bytes", v)
}

// driveFlags lists the classification flags set on d.
func driveFlags(d Device) string {
	var flags []string
	if d.IsSystem {
		flags = append(flags, "system")
	}
	if d.IsRemovable {
		flags = append(flags, "removable")
	}
	if d.IsVirtual {
		flags = append(flags, "virtual")
	}
	if d.IsReadOnly {
		flags = append(flags, "ro")
	}
	if d.IsUSB {
		flags = append(flags, "usb")
	}
	if d.IsSCSI {
		flags = append(flags, "scsi")
	}
	return strings.Join(flags, ",")
}

func mountpointPaths(d Device) string {
	paths := make([]string, 0, len(d.Mountpoints))
	for _, mp := range d.Mountpoints {
		paths = append(paths, mp.Path)
	}
	return strings.Join(paths, ",")
}

func writeDriveTable(w io.Writer, drives []Device) error {
	if _, err := fmt.Fprintf(w, "%-16s %-8s %12s %-24s %-30s %s\n", "DEVICE", "BUS", "SIZE", "FLAGS", "DESCRIPTION", "MOUNTPOINTS"); err != nil {
		return err
	}
	for _, d := range drives {
		_, err := fmt.Fprintf(w, "%-16s %-8s %12s %-24s %-30s %s\n",
			d.Device, d.BusType, formatBytes(d.Size), driveFlags(d), d.Description, mountpointPaths(d))
		if err != nil {
			return err
		}
	}
	return nil
}

func writeDriveJSON(w io.Writer, drives []Device) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(drives)
}

const driveTmpl = `Device:        {{.Device}}
Raw:           {{.Raw}}
{{- if .DevicePath}}
Device path:   {{.DevicePath}}
{{- end}}
Enumerator:    {{.Enumerator}}
Bus type:      {{.BusType}}
Description:   {{.Description}}
Size:          {{bytes .Size}} ({{.Size}} bytes)
Block size:    {{.BlockSize}} physical, {{.LogicalBlockSize}} logical
Partitions:    {{if .PartitionTableType}}{{.PartitionTableType}}{{else}}none{{end}}
Flags:         {{flags .}}
{{- range .Mountpoints}}
Mountpoint:    {{.Path}}{{if .Label}} [{{.Label}}]{{end}}{{with .TotalBytes}} total {{bytes (deref .)}}{{end}}{{with .AvailableBytes}} available {{bytes (deref .)}}{{end}}
{{- end}}
`

var driveTemplate = template.Must(template.New("drive").Funcs(template.FuncMap{
	"bytes": formatBytes[uint64],
	"flags": driveFlags,
	"deref": func(p *uint64) uint64 { return *p },
}).Parse(driveTmpl))

func writeDrive(w io.Writer, d Device) error {
	return driveTemplate.Execute(w, d)
}
