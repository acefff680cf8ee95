package main

import (
	"path"
	"strings"
)

const devRoot = "/dev/"

// resolveDeviceName turns a device name as printed by a listing tool into an
// absolute path under /dev. Absolute names are returned unchanged.
func resolveDeviceName(name string) string {
	if name == "" {
		return ""
	}
	if path.IsAbs(name) {
		return name
	}
	return devRoot + name
}

// resolveRelative resolves a relative link target against the directory that
// holds the link. Every ".." pops one level off base. Absolute targets are
// returned as they are.
func resolveRelative(base, target string) string {
	if path.IsAbs(target) {
		return target
	}
	return path.Join(base, target)
}

// excludedPrefixes are loopback, optical and ram-disk devices, which are never reported.
var excludedPrefixes = []string{"/dev/loop", "/dev/sr", "/dev/ram"}

func excludedDevice(devPath string) bool {
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(devPath, prefix) {
			return true
		}
	}
	return false
}
