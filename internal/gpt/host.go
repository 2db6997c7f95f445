package gpt

import "golang.org/x/sys/cpu"

// isBigEndian is swapped out by tests.
var isBigEndian = cpu.IsBigEndian

// CheckHost refuses to run on big-endian architectures.
func CheckHost() error {
	if isBigEndian {
		return ErrUnsupportedHost
	}
	return nil
}
