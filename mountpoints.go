package main

// mountpointsFrom returns a Mountpoint for every record that is mounted.
// Capacities that are missing or not unsigned integers are left unset.
func mountpointsFrom(records []lsblkDevice) []Mountpoint {
	mountpoints := make([]Mountpoint, 0, len(records))
	for _, rec := range records {
		if rec.Mountpoint.Value == "" {
			continue
		}
		mountpoints = append(mountpoints, Mountpoint{
			Path:           rec.Mountpoint.Value,
			Label:          rec.Label.Value,
			TotalBytes:     rec.FSSize.Ptr(),
			AvailableBytes: rec.FSAvail.Ptr(),
		})
	}
	return mountpoints
}
