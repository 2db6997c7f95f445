package gpt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/apex/log"
)

const (
	// EntrySize is the size of the fields decoded from each slot.
	EntrySize = 128
	// NameUnits is the number of UTF-16 code units in a partition name.
	NameUnits = 36
)

// on-disk entry offsets
const (
	entTypeOffset     = 0
	entInstanceOffset = 16
	entFirstLBAOffset = 32
	entLastLBAOffset  = 40
	entAttrOffset     = 48
	entNameOffset     = 56
)

// Entry is one slot of the partition entry array.
type Entry struct {
	Type       UUID
	Instance   UUID
	FirstLBA   uint64
	LastLBA    uint64
	Attributes uint64
	Name       [NameUnits]uint16
}

// DecodeEntry decodes the first 128 bytes of b.
func DecodeEntry(b []byte) Entry {
	_ = b[EntrySize-1]
	le := binary.LittleEndian
	e := Entry{
		Type:       DecodeUUID(b[entTypeOffset:]),
		Instance:   DecodeUUID(b[entInstanceOffset:]),
		FirstLBA:   le.Uint64(b[entFirstLBAOffset:]),
		LastLBA:    le.Uint64(b[entLastLBAOffset:]),
		Attributes: le.Uint64(b[entAttrOffset:]),
	}
	for i := range e.Name {
		e.Name[i] = le.Uint16(b[entNameOffset+2*i:])
	}
	return e
}

// IsUnused reports whether every field of the slot is zero.
func (e Entry) IsUnused() bool {
	return e == Entry{}
}

// DisplayName keeps the low byte of each name code unit up to the first NUL.
// Characters outside Latin-1 are not mapped.
func (e Entry) DisplayName() (string, error) {
	var name [NameUnits]byte
	n := len(name)
	for i, c := range e.Name {
		name[i] = byte(c)
		if name[i] == 0 {
			n = i
			break
		}
	}
	if !utf8.Valid(name[:n]) {
		return "", fmt.Errorf("%w: % x", ErrInvalidName, name[:n])
	}
	return string(name[:n]), nil
}

// TableStats summarizes a walk over the entry array.
type TableStats struct {
	Sectors int
	Used    int
	Unused  int
}

// Total is the number of slots observed.
func (s TableStats) Total() int {
	return s.Used + s.Unused
}

// SlotsPerSector validates the header's entry size and returns how many
// slots one sector holds.
func SlotsPerSector(h *Header) (int, error) {
	sz := h.EntrySize
	if sz < EntrySize || sz > SectorSize || SectorSize%sz != 0 {
		return 0, fmt.Errorf("%w: entry size %d must be at least %d and divide the %d byte sector",
			ErrMalformedHeader, sz, EntrySize, SectorSize)
	}
	return int(SectorSize / sz), nil
}

// WalkEntries reads the entry array described by h one sector at a time and
// calls fn for every slot, used or not, with its zero-based table index. The
// number of slots seen must match h.EntryCount. A table of zero entries reads
// nothing and skips the entry size check.
func WalkEntries(r io.ReadSeeker, h *Header, fn func(index int, e Entry) error) (TableStats, error) {
	var stats TableStats

	// an empty table is valid whatever its entry size, as in a zeroed backup header
	var perSector int
	var sectors uint64
	if h.EntryCount > 0 {
		n, err := SlotsPerSector(h)
		if err != nil {
			return stats, err
		}
		perSector = n
		sectors = uint64(h.EntrySize) * uint64(h.EntryCount) / SectorSize
	}
	if h.EntryLBA > math.MaxUint64-sectors {
		return stats, fmt.Errorf("entry table at LBA %#x: offset out of range", h.EntryLBA)
	}

	log.WithFields(log.Fields{
		"lba":     h.EntryLBA,
		"entries": h.EntryCount,
		"sectors": sectors,
	}).Debug("walking entry table")

	buf := make([]byte, SectorSize)
	for i := uint64(0); i < sectors; i++ {
		if err := readAtLBA(r, h.EntryLBA+i, buf); err != nil {
			return stats, fmt.Errorf("failed to read entry sector %d: %w", i, err)
		}
		stats.Sectors++

		for j := 0; j < perSector; j++ {
			off := j * int(h.EntrySize)
			e := DecodeEntry(buf[off : off+EntrySize])
			if e.IsUnused() {
				stats.Unused++
			} else {
				stats.Used++
			}
			if fn != nil {
				if err := fn(int(i)*perSector+j, e); err != nil {
					return stats, err
				}
			}
		}
	}

	if stats.Total() != int(h.EntryCount) {
		return stats, fmt.Errorf("%w: saw %d slots in %d sectors, header declares %d",
			ErrInconsistent, stats.Total(), stats.Sectors, h.EntryCount)
	}
	return stats, nil
}
