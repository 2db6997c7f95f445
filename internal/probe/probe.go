// Package probe guesses the filesystem at the start of a partition from its
// on-disk magic bytes.
package probe

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Unknown is reported when no signature matches.
const Unknown = "Unknown"

type signature struct {
	Name   string
	Magic  []byte
	Offset int64
}

// signatures is checked in order. The bare 0x55AA boot sector marker goes
// last since many filesystems carry it.
var signatures = []signature{
	{Name: "APFS", Magic: []byte("NXSB"), Offset: 0x20},
	{Name: "Btrfs", Magic: []byte("_BHRfS_M"), Offset: 0x10040},
	{Name: "XFS", Magic: []byte("XFSB"), Offset: 0},
	{Name: "NTFS", Magic: []byte("NTFS    "), Offset: 3},
	{Name: "exFAT", Magic: []byte("EXFAT   "), Offset: 3},
	{Name: "FAT32", Magic: []byte("FAT32   "), Offset: 0x52},
	{Name: "FAT12/16", Magic: []byte("FAT1"), Offset: 0x36},
	{Name: "HFS+", Magic: []byte{'H', '+', 0x00, 0x04}, Offset: 0x400},
	{Name: "HFSX", Magic: []byte{'H', 'X', 0x00, 0x05}, Offset: 0x400},
	{Name: "HFS", Magic: []byte{'B', 'D'}, Offset: 0x400},
	{Name: "Swap (Linux)", Magic: []byte("SWAPSPACE2"), Offset: 0xFF6},
	{Name: "LVM", Magic: []byte("LABELONE"), Offset: 0x200},
	{Name: "LUKS", Magic: []byte{'L', 'U', 'K', 'S', 0xBA, 0xBE}, Offset: 0},
	{Name: "F2FS", Magic: []byte{0x10, 0x20, 0xF5, 0xF2}, Offset: 0x400},
	{Name: "EROFS", Magic: []byte{0xE2, 0xE1, 0xF5, 0xE0}, Offset: 0x400},
	{Name: "SquashFS", Magic: []byte("hsqs"), Offset: 0},
	{Name: "ISO9660", Magic: []byte("CD001"), Offset: 0x8001},
	{Name: "UFS2", Magic: []byte{0x19, 0x01, 0x54, 0x19}, Offset: 0x1055C},
	{Name: "ZFS", Magic: []byte{0x0c, 0xb1, 0xba, 0x00}, Offset: 0x20000},
	{Name: "RomFS", Magic: []byte("-rom1fs-"), Offset: 0},
	{Name: "JFS", Magic: []byte("JFS1"), Offset: 0x8000},
	{Name: "NILFS2", Magic: []byte{0x34, 0x34}, Offset: 0x406},
	{Name: "Boot sector", Magic: []byte{0x55, 0xAA}, Offset: 0x1FE},
}

// Detect reports the filesystem found at offset in r.
func Detect(r io.ReaderAt, offset int64) string {
	if name := detectExt(r, offset); name != Unknown {
		return name
	}
	for _, fs := range signatures {
		buf := make([]byte, len(fs.Magic))
		if _, err := r.ReadAt(buf, offset+fs.Offset); err != nil {
			continue
		}
		if bytes.Equal(buf, fs.Magic) {
			return fs.Name
		}
	}
	return Unknown
}

// detectExt detects ext2/ext3/ext4 filesystems by reading superblock
func detectExt(r io.ReaderAt, offset int64) string {
	const superblockOffset = 0x400
	buf := make([]byte, 0x68)

	if _, err := r.ReadAt(buf, offset+superblockOffset); err != nil {
		return Unknown
	}

	magic := binary.LittleEndian.Uint16(buf[0x38:0x3a])
	compat := binary.LittleEndian.Uint32(buf[0x5c:0x60])
	incompat := binary.LittleEndian.Uint32(buf[0x60:0x64])

	if magic != 0xEF53 {
		return Unknown
	}

	// extents or 64bit mark ext4; a journal without them is ext3
	if incompat&0x40 != 0 || incompat&0x80 != 0 {
		return "ext4"
	}
	if compat&0x4 != 0 {
		return "ext3"
	}
	return "ext2"
}
