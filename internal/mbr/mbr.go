// Package mbr decodes the master boot record in LBA 0 that precedes a GPT.
package mbr

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Size is the size of the boot record.
	Size = 512
	// BootSignature marks a valid boot record.
	BootSignature = 0xAA55
	// ProtectiveType is the partition type of a GPT protective record.
	ProtectiveType = 0xEE

	tableOffset     = 446
	recordSize      = 16
	signatureOffset = 510
)

// Partition is one of the four primary partition records.
type Partition struct {
	Status      uint8
	Type        uint8
	FirstSector uint32
	Sectors     uint32
}

// IsEmpty reports whether the record describes no partition.
func (p Partition) IsEmpty() bool {
	return p.Type == 0x00 || p.Sectors == 0
}

// MBR is a decoded boot record.
type MBR struct {
	Partitions [4]Partition
	Signature  uint16
}

// isExtendedType checks if a partition type is an extended partition type
func isExtendedType(t byte) bool {
	switch t {
	case 0x05, 0x0F, 0x85:
		return true
	default:
		return false
	}
}

// IsExtended reports whether the record is an extended partition container.
func (p Partition) IsExtended() bool {
	return isExtendedType(p.Type)
}

// parsePartition parses an MBR entry from raw bytes
func parsePartition(b []byte) Partition {
	return Partition{
		Status:      b[0],
		Type:        b[4],
		FirstSector: binary.LittleEndian.Uint32(b[8:12]),
		Sectors:     binary.LittleEndian.Uint32(b[12:16]),
	}
}

// Parse decodes a 512 byte boot record.
func Parse(b []byte) (*MBR, error) {
	if len(b) < Size {
		return nil, fmt.Errorf("boot record needs %d bytes, have %d", Size, len(b))
	}
	m := &MBR{Signature: binary.LittleEndian.Uint16(b[signatureOffset:])}
	for i := range m.Partitions {
		off := tableOffset + i*recordSize
		m.Partitions[i] = parsePartition(b[off : off+recordSize])
	}
	return m, nil
}

// Read reads the boot record from LBA 0 of r.
func Read(r io.ReaderAt) (*MBR, error) {
	buf := make([]byte, Size)
	if _, err := r.ReadAt(buf, 0); err != nil {
		return nil, fmt.Errorf("read boot record: %w", err)
	}
	return Parse(buf)
}

// Valid reports whether the boot signature is present.
func (m *MBR) Valid() bool {
	return m.Signature == BootSignature
}

// IsProtective reports whether a record of type 0xEE guards the GPT.
func (m *MBR) IsProtective() bool {
	for _, p := range m.Partitions {
		if p.Type == ProtectiveType {
			return true
		}
	}
	return false
}
