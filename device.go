package main

import (
	"os"

	"github.com/apex/log"

	"gptdump/internal/gpt"
)

// deviceInfo describes what a source path points at
type deviceInfo struct {
	Kind       string // "image", "block device", "character device"
	Size       uint64 // bytes, 0 if unavailable
	SectorSize int    // logical sector size, 0 if unavailable
}

// reportDevice logs the geometry of the opened source
func reportDevice(file *os.File) {
	info, err := inspectDevice(file)
	if err != nil {
		log.WithError(err).Warn("could not inspect device")
		return
	}

	ctx := log.WithFields(log.Fields{
		"kind": info.Kind,
		"size": formatBytes(info.Size),
	})
	if info.SectorSize > 0 {
		ctx = ctx.WithField("sector_size", info.SectorSize)
	}
	ctx.Info("device")

	if info.Kind == "character device" {
		log.Warnf("%s is a character device (e.g., NVMe controller), not a block device", file.Name())
	}
	if info.SectorSize > 0 && info.SectorSize != gpt.SectorSize {
		log.Warnf("logical sector size is %d bytes, LBAs are still scaled by %d", info.SectorSize, gpt.SectorSize)
	}
}

// statDevice fills in what a plain stat can tell
func statDevice(file *os.File) (deviceInfo, error) {
	stat, err := file.Stat()
	if err != nil {
		return deviceInfo{}, err
	}
	mode := stat.Mode()
	switch {
	case mode&os.ModeDevice == 0:
		return deviceInfo{Kind: "image", Size: uint64(stat.Size())}, nil
	case mode&os.ModeCharDevice != 0:
		return deviceInfo{Kind: "character device"}, nil
	default:
		return deviceInfo{Kind: "block device"}, nil
	}
}
