package gpt

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// UUIDSize is the on-disk size of a GUID.
const UUIDSize = 16

// UUID is a GUID as stored on disk: the first three fields little-endian,
// clock sequence and node as raw bytes.
type UUID struct {
	TimeLow          uint32
	TimeMid          uint16
	TimeHiAndVersion uint16
	ClockSeqHi       uint8
	ClockSeqLow      uint8
	Node             [6]byte
}

// DecodeUUID decodes the 16 bytes at the start of b.
func DecodeUUID(b []byte) UUID {
	_ = b[UUIDSize-1]
	u := UUID{
		TimeLow:          binary.LittleEndian.Uint32(b[0:4]),
		TimeMid:          binary.LittleEndian.Uint16(b[4:6]),
		TimeHiAndVersion: binary.LittleEndian.Uint16(b[6:8]),
		ClockSeqHi:       b[8],
		ClockSeqLow:      b[9],
	}
	copy(u.Node[:], b[10:16])
	return u
}

// Canonical returns u in RFC 4122 byte order.
func (u UUID) Canonical() uuid.UUID {
	var c uuid.UUID
	binary.BigEndian.PutUint32(c[0:4], u.TimeLow)
	binary.BigEndian.PutUint16(c[4:6], u.TimeMid)
	binary.BigEndian.PutUint16(c[6:8], u.TimeHiAndVersion)
	c[8] = u.ClockSeqHi
	c[9] = u.ClockSeqLow
	copy(c[10:], u.Node[:])
	return c
}

// String returns the canonical lowercase xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form.
func (u UUID) String() string {
	return u.Canonical().String()
}

// IsZero reports whether every field of u is zero.
func (u UUID) IsZero() bool {
	return u == UUID{}
}

// fromCanonical is the inverse of Canonical.
func fromCanonical(c uuid.UUID) UUID {
	u := UUID{
		TimeLow:          binary.BigEndian.Uint32(c[0:4]),
		TimeMid:          binary.BigEndian.Uint16(c[4:6]),
		TimeHiAndVersion: binary.BigEndian.Uint16(c[6:8]),
		ClockSeqHi:       c[8],
		ClockSeqLow:      c[9],
	}
	copy(u.Node[:], c[10:])
	return u
}

// ParseUUID parses a canonical UUID string (case-insensitive).
func ParseUUID(s string) (UUID, error) {
	c, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, err
	}
	return fromCanonical(c), nil
}

func mustParseUUID(s string) UUID {
	return fromCanonical(uuid.MustParse(s))
}
