package main

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dsnet/compress/bzip2"
	"github.com/gosuri/uilive"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/mattn/go-isatty"
)

type countingWriter struct {
	w     io.Writer
	count int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.count += int64(n)
	return n, err
}

// getCompressionAlgorithm returns the compression algorithm implied by the file extension, or "" for raw images
func getCompressionAlgorithm(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return "gzip"
	case ".zlib":
		return "zlib"
	case ".bz2":
		return "bzip2"
	case ".snappy":
		return "snappy"
	case ".s2":
		return "s2"
	case ".zst":
		return "zstd"
	case ".zip":
		return "zip"
	default:
		return ""
	}
}

// createDecompressionReader wraps input in a reader for the algorithm
func createDecompressionReader(algorithm string, input io.Reader) (io.ReadCloser, error) {
	switch algorithm {
	case "gzip":
		return gzip.NewReader(input)
	case "zlib":
		return zlib.NewReader(input)
	case "bzip2":
		return bzip2.NewReader(input, &bzip2.ReaderConfig{})
	case "snappy":
		return io.NopCloser(snappy.NewReader(input)), nil
	case "s2":
		return io.NopCloser(s2.NewReader(input)), nil
	case "zstd":
		decoder, err := zstd.NewReader(input)
		if err != nil {
			return nil, err
		}
		return decoder.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", algorithm)
	}
}

// openZipImage opens the first file stored in a zip archive
func openZipImage(file *os.File) (io.ReadCloser, int64, error) {
	stat, err := file.Stat()
	if err != nil {
		return nil, 0, err
	}
	zr, err := zip.NewReader(file, stat.Size())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read zip archive: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to open zip entry %s: %w", f.Name, err)
		}
		return rc, int64(f.UncompressedSize64), nil
	}
	return nil, 0, fmt.Errorf("zip archive %s is empty", file.Name())
}

// decompressToFile streams a compressed image into output, reporting progress when showProgress is set
func decompressToFile(input *os.File, algorithm string, output io.Writer, showProgress bool) (int64, error) {
	var (
		reader    io.ReadCloser
		totalSize int64
		err       error
	)
	if algorithm == "zip" {
		reader, totalSize, err = openZipImage(input)
	} else {
		reader, err = createDecompressionReader(algorithm, input)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create %s reader: %w", algorithm, err)
	}
	defer reader.Close()

	cw := &countingWriter{w: output}
	if !showProgress {
		_, err := io.Copy(cw, reader)
		return cw.count, err
	}

	writer := uilive.New()
	writer.Out = os.Stderr
	writer.Start()
	defer writer.Stop()

	var (
		start      = time.Now()
		buf        = make([]byte, 1<<20)
		lastUpdate = time.Now()
	)

	report := func() {
		elapsed := time.Since(start)
		speed := float64(cw.count) / elapsed.Seconds()
		_, _ = fmt.Fprintf(writer, "Decompressing %s: %s written, %s elapsed, %s\n",
			algorithm, formatBytes(uint64(cw.count)), elapsed.Truncate(time.Second), formatSpeed(speed))
		if totalSize > 0 {
			_, _ = fmt.Fprintf(writer, "Progress: %.1f%%\n", float64(cw.count)*100/float64(totalSize))
		}
		_ = writer.Flush()
	}

	for {
		n, rErr := reader.Read(buf)
		if n > 0 {
			if _, wErr := cw.Write(buf[:n]); wErr != nil {
				return cw.count, fmt.Errorf("failed to write decompressed image: %w", wErr)
			}
			// Update once every second
			if time.Since(lastUpdate) >= time.Second {
				report()
				lastUpdate = time.Now()
			}
		}
		if rErr == io.EOF {
			report()
			return cw.count, nil
		}
		if rErr != nil {
			return cw.count, fmt.Errorf("failed to decompress image: %w", rErr)
		}
	}
}

// progressEnabled shows progress only when stderr is a terminal
func progressEnabled(requested bool) bool {
	fd := os.Stderr.Fd()
	return requested && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}
