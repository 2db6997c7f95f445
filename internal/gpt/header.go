package gpt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/apex/log"
)

const (
	// SectorSize is the fixed unit all LBAs are scaled by.
	SectorSize = 512
	// Signature identifies a GPT header.
	Signature = "EFI PART"
	// PrimaryHeaderLBA is where the primary header lives.
	PrimaryHeaderLBA = 1
	// MaxEntries is the largest entry count a header may declare.
	MaxEntries = 512
	// HeaderSize is the number of meaningful header bytes.
	HeaderSize = 92
	// headerWindow is HeaderSize plus the trailing padding word.
	headerWindow = HeaderSize + 4
)

// on-disk header offsets
const (
	hdrSignatureOffset   = 0
	hdrRevisionOffset    = 8
	hdrSizeOffset        = 12
	hdrCRCOffset         = 16
	hdrReservedOffset    = 20
	hdrMyLBAOffset       = 24
	hdrAltLBAOffset      = 32
	hdrFirstUsableOffset = 40
	hdrLastUsableOffset  = 48
	hdrDiskUUIDOffset    = 56
	hdrEntryLBAOffset    = 72
	hdrEntryCountOffset  = 80
	hdrEntrySizeOffset   = 84
	hdrEntryCRCOffset    = 88
	hdrPaddingOffset     = 92
)

// Header is a decoded GPT header.
type Header struct {
	Signature      [8]byte
	Revision       uint32
	HeaderSize     uint32
	HeaderCRC32    uint32
	Reserved       uint32
	MyLBA          uint64
	AlternateLBA   uint64
	FirstUsableLBA uint64
	LastUsableLBA  uint64
	DiskUUID       UUID
	EntryLBA       uint64
	EntryCount     uint32
	EntrySize      uint32
	EntryArrayCRC  uint32
	Padding        uint32
}

// DecodeHeader decodes a header from the first 96 bytes of b and validates
// its entry count. CRC fields are decoded but not verified.
func DecodeHeader(b []byte) (*Header, error) {
	if len(b) < headerWindow {
		return nil, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, headerWindow, len(b))
	}

	le := binary.LittleEndian
	h := &Header{
		Revision:       le.Uint32(b[hdrRevisionOffset:]),
		HeaderSize:     le.Uint32(b[hdrSizeOffset:]),
		HeaderCRC32:    le.Uint32(b[hdrCRCOffset:]),
		Reserved:       le.Uint32(b[hdrReservedOffset:]),
		MyLBA:          le.Uint64(b[hdrMyLBAOffset:]),
		AlternateLBA:   le.Uint64(b[hdrAltLBAOffset:]),
		FirstUsableLBA: le.Uint64(b[hdrFirstUsableOffset:]),
		LastUsableLBA:  le.Uint64(b[hdrLastUsableOffset:]),
		DiskUUID:       DecodeUUID(b[hdrDiskUUIDOffset:]),
		EntryLBA:       le.Uint64(b[hdrEntryLBAOffset:]),
		EntryCount:     le.Uint32(b[hdrEntryCountOffset:]),
		EntrySize:      le.Uint32(b[hdrEntrySizeOffset:]),
		EntryArrayCRC:  le.Uint32(b[hdrEntryCRCOffset:]),
		Padding:        le.Uint32(b[hdrPaddingOffset:]),
	}
	copy(h.Signature[:], b[hdrSignatureOffset:hdrSignatureOffset+len(h.Signature)])

	if h.EntryCount > MaxEntries {
		return nil, fmt.Errorf("%w: %d entries exceeds limit of %d", ErrMalformedHeader, h.EntryCount, MaxEntries)
	}
	return h, nil
}

// ReadHeader reads and decodes the header stored at lba.
func ReadHeader(r io.ReadSeeker, lba uint64) (*Header, error) {
	buf := make([]byte, headerWindow)
	if err := readAtLBA(r, lba, buf); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	return DecodeHeader(buf)
}

// HasSignature reports whether the header carries "EFI PART".
func (h *Header) HasSignature() bool {
	return string(h.Signature[:]) == Signature
}

// Format renders the header one field per line.
func (h *Header) Format(symbol bool) string {
	sig := make([]rune, len(h.Signature))
	for i, c := range h.Signature {
		sig[i] = rune(c)
	}
	rev := h.Revision

	var sb strings.Builder
	fmt.Fprintf(&sb, "sig      = \"%s\"\n", string(sig))
	fmt.Fprintf(&sb, "revision = %02x %02x %02x %02x\n", byte(rev), byte(rev>>8), byte(rev>>16), byte(rev>>24))
	fmt.Fprintf(&sb, "size     = %d\n", h.HeaderSize)
	fmt.Fprintf(&sb, "crc_self = 0x%x\n", h.HeaderCRC32)
	fmt.Fprintf(&sb, "lba_self = 0x%016x\n", h.MyLBA)
	fmt.Fprintf(&sb, "lba_alt  = 0x%016x\n", h.AlternateLBA)
	fmt.Fprintf(&sb, "lba_start= 0x%016x\n", h.FirstUsableLBA)
	fmt.Fprintf(&sb, "lba_end  = 0x%016x\n", h.LastUsableLBA)
	fmt.Fprintf(&sb, "uuid     = %s\n", ResolveDisplayUUID(h.DiskUUID, symbol))
	fmt.Fprintf(&sb, "lba_table= 0x%016x\n", h.EntryLBA)
	fmt.Fprintf(&sb, "entries  = %d\n", h.EntryCount)
	fmt.Fprintf(&sb, "entsz    = %d\n", h.EntrySize)
	fmt.Fprintf(&sb, "crc_table= 0x%x\n", h.EntryArrayCRC)
	return sb.String()
}

// readAtLBA seeks to lba*SectorSize and fills buf.
func readAtLBA(r io.ReadSeeker, lba uint64, buf []byte) error {
	if lba > math.MaxInt64/SectorSize {
		return fmt.Errorf("LBA %#x: offset out of range", lba)
	}
	off := int64(lba) * SectorSize

	log.WithFields(log.Fields{
		"lba":    lba,
		"offset": off,
		"bytes":  len(buf),
	}).Debug("reading")

	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("seek to LBA %#x: %w", lba, err)
	}
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: LBA %#x: got %d of %d bytes", ErrTruncated, lba, n, len(buf))
		}
		return fmt.Errorf("read LBA %#x: %w", lba, err)
	}
	return nil
}
