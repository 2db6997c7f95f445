//go:build !linux

package main

import "os"

func inspectDevice(file *os.File) (deviceInfo, error) {
	info, err := statDevice(file)
	return info, err
}
