//go:build linux

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

func inspectDevice(file *os.File) (deviceInfo, error) {
	info, err := statDevice(file)
	if err != nil || info.Kind != "block device" {
		return info, err
	}

	info.SectorSize = getSectorSize(file)
	size, err := getBlockDeviceSize(file)
	if err != nil {
		return info, err
	}
	info.Size = size
	return info, nil
}

func getSectorSize(file *os.File) int {
	sectorSize, err := unix.IoctlGetInt(int(file.Fd()), unix.BLKSSZGET)
	if err == nil {
		return sectorSize
	}

	// If ioctl fails, fallback to reading from sysfs
	devName := filepath.Base(file.Name()) // e.g. /dev/nvme0n1 -> nvme0n1
	data, err := os.ReadFile("/sys/class/block/" + devName + "/queue/logical_block_size")
	if err == nil {
		sz, convErr := strconv.Atoi(strings.TrimSpace(string(data)))
		if convErr == nil && sz > 0 {
			return sz
		}
	}
	return 0
}

// getBlockDeviceSize retrieves the total size of the block device using an ioctl call
func getBlockDeviceSize(file *os.File) (uint64, error) {
	var size uint64
	_, _, e := unix.Syscall(unix.SYS_IOCTL, file.Fd(), unix.BLKGETSIZE64, uintptr(unsafe.Pointer(&size)))
	if e != 0 {
		return 0, fmt.Errorf("ioctl BLKGETSIZE64 failed: %v", e)
	}
	return size, nil
}
