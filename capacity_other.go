//go:build !linux && !darwin

package main

func statfsCapacity(string) (uint64, uint64, error) {
	return 0, 0, ErrUnsupportedPlatform
}
