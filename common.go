package main

import (
	"github.com/dustin/go-humanize"
)

func formatBytes(n uint64) string {
	return humanize.IBytes(n)
}

func formatSpeed(bytesPerSecond float64) string {
	if bytesPerSecond <= 0 {
		return "N/A"
	}
	return humanize.IBytes(uint64(bytesPerSecond)) + "/s"
}
