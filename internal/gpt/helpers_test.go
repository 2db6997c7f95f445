package gpt

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unicode/utf16"
)

// partSpec describes one partition entry written by buildDisk.
type partSpec struct {
	typ, inst   string
	first, last uint64
	attr        uint64
	name        string
}

type diskOpts struct {
	sectors  uint64 // image size in sectors, default 128
	entries  uint32 // default 128
	entsz    uint32 // default 128
	diskUUID string
	parts    map[int]partSpec
	// mutate raw image before returning (for negative tests)
	mutate func(b []byte)
}

func encodeUUID(u UUID) []byte {
	b := make([]byte, UUIDSize)
	binary.LittleEndian.PutUint32(b[0:], u.TimeLow)
	binary.LittleEndian.PutUint16(b[4:], u.TimeMid)
	binary.LittleEndian.PutUint16(b[6:], u.TimeHiAndVersion)
	b[8] = u.ClockSeqHi
	b[9] = u.ClockSeqLow
	copy(b[10:], u.Node[:])
	return b
}

func putHeader(b []byte, self, alt, table uint64, entries, entsz uint32, disk UUID) {
	le := binary.LittleEndian
	copy(b[hdrSignatureOffset:], Signature)
	le.PutUint32(b[hdrRevisionOffset:], 0x00010000)
	le.PutUint32(b[hdrSizeOffset:], HeaderSize)
	le.PutUint32(b[hdrCRCOffset:], 0xdeadbeef)
	le.PutUint64(b[hdrMyLBAOffset:], self)
	le.PutUint64(b[hdrAltLBAOffset:], alt)
	le.PutUint64(b[hdrFirstUsableOffset:], 34)
	le.PutUint64(b[hdrLastUsableOffset:], 94)
	copy(b[hdrDiskUUIDOffset:], encodeUUID(disk))
	le.PutUint64(b[hdrEntryLBAOffset:], table)
	le.PutUint32(b[hdrEntryCountOffset:], entries)
	le.PutUint32(b[hdrEntrySizeOffset:], entsz)
	le.PutUint32(b[hdrEntryCRCOffset:], 0xcafef00d)
}

func putEntry(t *testing.T, b []byte, p partSpec) {
	t.Helper()
	le := binary.LittleEndian
	copy(b[entTypeOffset:], encodeUUID(mustParseUUID(p.typ)))
	copy(b[entInstanceOffset:], encodeUUID(mustParseUUID(p.inst)))
	le.PutUint64(b[entFirstLBAOffset:], p.first)
	le.PutUint64(b[entLastLBAOffset:], p.last)
	le.PutUint64(b[entAttrOffset:], p.attr)
	for i, c := range utf16.Encode([]rune(p.name)) {
		if i == NameUnits {
			t.Fatalf("name %q too long", p.name)
		}
		le.PutUint16(b[entNameOffset+2*i:], c)
	}
}

// buildDisk lays out a primary header at LBA 1 with its table at LBA 2 and
// the backup table and header at the end of the image.
func buildDisk(t *testing.T, o diskOpts) []byte {
	t.Helper()

	if o.sectors == 0 {
		o.sectors = 128
	}
	if o.entries == 0 {
		o.entries = 128
	}
	if o.entsz == 0 {
		o.entsz = 128
	}
	if o.diskUUID == "" {
		o.diskUUID = "8f1a9e55-3c2b-4d7e-9a61-0b2c3d4e5f60"
	}

	b := make([]byte, o.sectors*SectorSize)
	tableSectors := (uint64(o.entries)*uint64(o.entsz) + SectorSize - 1) / SectorSize
	last := o.sectors - 1
	altTable := last - tableSectors
	disk := mustParseUUID(o.diskUUID)

	putHeader(b[1*SectorSize:], 1, last, 2, o.entries, o.entsz, disk)
	putHeader(b[last*SectorSize:], last, 1, altTable, o.entries, o.entsz, disk)

	for idx, p := range o.parts {
		off := uint64(idx) * uint64(o.entsz)
		putEntry(t, b[2*SectorSize+off:], p)
		putEntry(t, b[altTable*SectorSize+off:], p)
	}

	if o.mutate != nil {
		o.mutate(b)
	}
	return b
}

// countingSource counts Read calls so tests can tell how many sectors were fetched.
type countingSource struct {
	*bytes.Reader
	reads int
}

func (c *countingSource) Read(p []byte) (int, error) {
	c.reads++
	return c.Reader.Read(p)
}

const (
	efiType      = "c12a7328-f81f-11d2-ba4b-00a0c93ec93b"
	freebsdType  = "516e7cb4-6ecf-11d6-8ff8-00022d09712b"
	linuxType    = "0fc63daf-8483-4772-8e79-3d69d8477de4"
	unknownType  = "416e7cb4-6ecf-11d6-8ff8-00022d09712b"
	partInstance = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"
)
