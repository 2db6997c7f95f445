package main

import (
	"fmt"
	"os"

	"github.com/apex/log"
)

// source is the byte source a dump reads from. For compressed images it
// is a decompressed temporary copy that Close removes.
type source struct {
	*os.File
	path string
	temp string
}

func openSource(path string, progress bool) (*source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	algorithm := getCompressionAlgorithm(path)
	if algorithm == "" {
		return &source{File: file, path: path}, nil
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "gptdump-*.img")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary image: %w", err)
	}

	n, err := decompressToFile(file, algorithm, tmp, progressEnabled(progress))
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}

	log.WithFields(log.Fields{
		"algorithm": algorithm,
		"size":      formatBytes(uint64(n)),
		"temp":      tmp.Name(),
	}).Debug("decompressed image")

	return &source{File: tmp, path: path, temp: tmp.Name()}, nil
}

// Close closes the file and removes a decompressed copy.
func (s *source) Close() error {
	err := s.File.Close()
	if s.temp != "" {
		if rmErr := os.Remove(s.temp); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}
