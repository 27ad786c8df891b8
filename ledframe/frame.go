package ledframe

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// Marker is the fixed sentinel byte opening every frame.
	Marker byte = 0xAA
	// Version is the protocol version emitted by this codec.
	Version byte = 0x01
	// EntrySize is the encoded size of one Entry.
	EntrySize = 7
	// HeaderSize covers marker, version and the entry count.
	HeaderSize = 4
	// CRCSize is the size of the trailing integrity field.
	CRCSize = 2

	crcPoly uint16 = 0x1021
	crcInit uint16 = 0xFFFF
)

// Decode failure classes.
var (
	ErrTruncated  = errors.New("ledframe: truncated frame")
	ErrBadMarker  = errors.New("ledframe: bad frame marker")
	ErrBadVersion = errors.New("ledframe: unsupported protocol version")
	ErrBadCRC     = errors.New("ledframe: CRC mismatch")
)

// Mode is the per-LED display state. Values are ordered by severity: when
// several vehicles map to one station the highest mode wins.
type Mode uint8

const (
	ModeOff Mode = iota
	ModeSolid
	ModeBlink
	ModePulse
)

func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeSolid:
		return "solid"
	case ModeBlink:
		return "blink"
	case ModePulse:
		return "pulse"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Max returns the stricter of two modes.
func (m Mode) Max(o Mode) Mode {
	if o > m {
		return o
	}
	return m
}

// Entry is one LED record: strip position, display mode and color.
type Entry struct {
	Index uint16
	Mode  Mode
	R     uint8
	G     uint8
	B     uint8
}

// CRC16 computes the CRC-16/CCITT checksum (poly 0x1021, init 0xFFFF) used
// as the frame integrity field.
func CRC16(data []byte) uint16 {
	crc := crcInit
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crcPoly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Encode builds a complete frame from the given entries, preserving their
// order. It never fails: mode bytes outside the enum are masked into the
// field width rather than rejected.
func Encode(entries []Entry) []byte {
	frame := make([]byte, HeaderSize+len(entries)*EntrySize+CRCSize)
	frame[0] = Marker
	frame[1] = Version
	binary.LittleEndian.PutUint16(frame[2:4], uint16(len(entries)))

	off := HeaderSize
	for _, e := range entries {
		binary.LittleEndian.PutUint16(frame[off:off+2], e.Index)
		frame[off+2] = byte(e.Mode)
		frame[off+3] = e.R
		frame[off+4] = e.G
		frame[off+5] = e.B
		off += EntrySize
	}

	crc := CRC16(frame[:off])
	binary.LittleEndian.PutUint16(frame[off:off+2], crc)
	return frame
}

// Decode parses and validates a frame produced by Encode. The marker,
// version, declared length and CRC are all checked before the body is
// trusted; each failure class maps to a distinct sentinel error.
func Decode(frame []byte) ([]Entry, error) {
	if len(frame) < 1 {
		return nil, ErrTruncated
	}
	if frame[0] != Marker {
		return nil, ErrBadMarker
	}
	if len(frame) < HeaderSize+CRCSize {
		return nil, ErrTruncated
	}
	if frame[1] != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, frame[1])
	}

	count := int(binary.LittleEndian.Uint16(frame[2:4]))
	want := HeaderSize + count*EntrySize + CRCSize
	if len(frame) < want {
		return nil, ErrTruncated
	}
	if len(frame) > want {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrTruncated, len(frame)-want)
	}

	body := frame[:want-CRCSize]
	got := binary.LittleEndian.Uint16(frame[want-CRCSize:])
	if CRC16(body) != got {
		return nil, ErrBadCRC
	}

	entries := make([]Entry, 0, count)
	off := HeaderSize
	for i := 0; i < count; i++ {
		entries = append(entries, Entry{
			Index: binary.LittleEndian.Uint16(body[off : off+2]),
			Mode:  Mode(body[off+2]),
			R:     body[off+3],
			G:     body[off+4],
			B:     body[off+5],
		})
		off += EntrySize
	}
	return entries, nil
}
