package main

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compress encodes data the way the disk imaging tools write it
func compress(t *testing.T, algorithm string, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	var w io.WriteCloser
	var err error
	switch algorithm {
	case "gzip":
		w = gzip.NewWriter(&buf)
	case "zlib":
		w = zlib.NewWriter(&buf)
	case "bzip2":
		w, err = bzip2.NewWriter(&buf, &bzip2.WriterConfig{})
	case "snappy":
		w = snappy.NewBufferedWriter(&buf)
	case "s2":
		w = s2.NewWriter(&buf)
	case "zstd":
		w, err = zstd.NewWriter(&buf)
	case "zip":
		zw := zip.NewWriter(&buf)
		entry, zerr := zw.Create("compressedData")
		require.NoError(t, zerr)
		_, zerr = entry.Write(data)
		require.NoError(t, zerr)
		require.NoError(t, zw.Close())
		return buf.Bytes()
	default:
		t.Fatalf("unknown algorithm %s", algorithm)
	}
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestGetCompressionAlgorithm(t *testing.T) {
	tests := map[string]string{
		"sda.gz":          "gzip",
		"sda.GZ":          "gzip",
		"disk.img.zlib":   "zlib",
		"disk.bz2":        "bzip2",
		"disk.snappy":     "snappy",
		"disk.s2":         "s2",
		"disk.zst":        "zstd",
		"disk.zip":        "zip",
		"disk.img":        "",
		"/dev/nvme0n1":    "",
		"/dev/disk/by-id": "",
	}
	for path, want := range tests {
		assert.Equal(t, want, getCompressionAlgorithm(path), path)
	}
}

func TestOpenSourceDecompresses(t *testing.T) {
	img := testImage(t)
	ext := map[string]string{
		"gzip":   ".gz",
		"zlib":   ".zlib",
		"bzip2":  ".bz2",
		"snappy": ".snappy",
		"s2":     ".s2",
		"zstd":   ".zst",
		"zip":    ".zip",
	}

	for algorithm, suffix := range ext {
		t.Run(algorithm, func(t *testing.T) {
			path := writeFile(t, "disk.img"+suffix, compress(t, algorithm, img))

			src, err := openSource(path, false)
			require.NoError(t, err)
			require.NotEmpty(t, src.temp)

			got := make([]byte, len(img))
			_, err = src.ReadAt(got, 0)
			require.NoError(t, err)
			assert.Equal(t, img, got)

			require.NoError(t, src.Close())
			_, err = os.Stat(src.temp)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestOpenSourcePlain(t *testing.T) {
	path := writeFile(t, "disk.img", []byte("raw"))

	src, err := openSource(path, false)
	require.NoError(t, err)
	defer src.Close()

	assert.Empty(t, src.temp)
	assert.Equal(t, path, src.Name())
}

func TestOpenSourceCorrupt(t *testing.T) {
	path := writeFile(t, "disk.img.gz", []byte("definitely not gzip"))

	_, err := openSource(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decompress")
}

func TestOpenSourceEmptyZip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, zip.NewWriter(&buf).Close())
	path := writeFile(t, "disk.zip", buf.Bytes())

	_, err := openSource(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestStatDeviceImage(t *testing.T) {
	path := writeFile(t, "disk.img", make([]byte, 4096))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	info, err := inspectDevice(f)
	require.NoError(t, err)
	assert.Equal(t, "image", info.Kind)
	assert.Equal(t, uint64(4096), info.Size)
	assert.Zero(t, info.SectorSize)
}

func TestFormatSpeed(t *testing.T) {
	assert.Equal(t, "N/A", formatSpeed(0))
	assert.Equal(t, "1.0 MiB/s", formatSpeed(1<<20))
	assert.Equal(t, "4.0 KiB", formatBytes(4096))
}
