package ledframe

import (
	"bytes"
	"errors"
	"testing"
)

func sampleEntries() []Entry {
	return []Entry{
		{Index: 0, Mode: ModeSolid, R: 255, G: 99, B: 25},
		{Index: 7, Mode: ModeBlink, R: 0, G: 57, B: 166},
		{Index: 120, Mode: ModePulse, R: 252, G: 204, B: 10},
		{Index: 65535, Mode: ModeOff, R: 80, G: 80, B: 80},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{name: "empty", entries: nil},
		{name: "single", entries: sampleEntries()[:1]},
		{name: "several", entries: sampleEntries()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := Encode(tt.entries)
			got, err := Decode(frame)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if len(got) != len(tt.entries) {
				t.Fatalf("expected %d entries, got %d", len(tt.entries), len(got))
			}
			for i := range got {
				if got[i] != tt.entries[i] {
					t.Errorf("entry %d: expected %+v, got %+v", i, tt.entries[i], got[i])
				}
			}
		})
	}
}

func TestEncodeEmptyFrameLayout(t *testing.T) {
	frame := Encode(nil)
	if len(frame) != HeaderSize+CRCSize {
		t.Fatalf("expected %d bytes, got %d", HeaderSize+CRCSize, len(frame))
	}
	want := []byte{Marker, Version, 0x00, 0x00}
	if !bytes.Equal(frame[:4], want) {
		t.Errorf("expected header %x, got %x", want, frame[:4])
	}
}

func TestDecodeDetectsEveryBitFlip(t *testing.T) {
	frame := Encode(sampleEntries())
	for i := 0; i < len(frame); i++ {
		for bit := 0; bit < 8; bit++ {
			mutated := make([]byte, len(frame))
			copy(mutated, frame)
			mutated[i] ^= 1 << bit
			if _, err := Decode(mutated); err == nil {
				t.Fatalf("bit flip at byte %d bit %d was not detected", i, bit)
			}
		}
	}
}

func TestDecodeFailureClasses(t *testing.T) {
	good := Encode(sampleEntries()[:2])

	badMarker := append([]byte{}, good...)
	badMarker[0] = 0x55

	badVersion := append([]byte{}, good...)
	badVersion[1] = 0x02

	badCRC := append([]byte{}, good...)
	badCRC[len(badCRC)-1] ^= 0xFF

	tests := []struct {
		name  string
		frame []byte
		want  error
	}{
		{name: "empty input", frame: nil, want: ErrTruncated},
		{name: "marker only", frame: []byte{Marker}, want: ErrTruncated},
		{name: "wrong marker", frame: badMarker, want: ErrBadMarker},
		{name: "wrong version", frame: badVersion, want: ErrBadVersion},
		{name: "cut body", frame: good[:len(good)-5], want: ErrTruncated},
		{name: "trailing garbage", frame: append(append([]byte{}, good...), 0x00), want: ErrTruncated},
		{name: "corrupt crc", frame: badCRC, want: ErrBadCRC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.frame)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCRC16KnownVector(t *testing.T) {
	// CRC-16/CCITT-FALSE of "123456789" is 0x29B1.
	if got := CRC16([]byte("123456789")); got != 0x29B1 {
		t.Errorf("expected 0x29B1, got 0x%04X", got)
	}
}

func TestModeString(t *testing.T) {
	cases := []struct {
		mode Mode
		want string
	}{
		{ModeOff, "off"},
		{ModeSolid, "solid"},
		{ModeBlink, "blink"},
		{ModePulse, "pulse"},
		{Mode(9), "mode(9)"},
	}
	for _, c := range cases {
		if got := c.mode.String(); got != c.want {
			t.Errorf("Mode(%d).String(): expected %q, got %q", uint8(c.mode), c.want, got)
		}
	}
}

func TestModeMax(t *testing.T) {
	modes := []Mode{ModeOff, ModeSolid, ModeBlink, ModePulse}
	for _, a := range modes {
		for _, b := range modes {
			got := a.Max(b)
			want := a
			if b > a {
				want = b
			}
			if got != want {
				t.Errorf("Max(%v, %v): expected %v, got %v", a, b, want, got)
			}
			if got != b.Max(a) {
				t.Errorf("Max(%v, %v) is not commutative", a, b)
			}
		}
	}
}
