package bitio

import (
	"bytes"
	"testing"
)

func TestReadWriteBitsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		n    int
		src  []byte
	}{
		{"byte aligned", 8, []byte{0xAB}},
		{"two bytes", 16, []byte{0xDE, 0xAD}},
		{"sub byte", 3, []byte{0xE0}}, // top 3 bits = 111
		{"straddling", 12, []byte{0xAB, 0xC0}},
		{"zero bits", 0, []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter()
			if err := w.WriteBits(tt.n, tt.src); err != nil {
				t.Fatalf("WriteBits: %v", err)
			}
			// pad to byte boundary to finish
			pad := (8 - w.BitsWritten()%8) % 8
			if pad > 0 {
				if err := w.WriteBits(pad, make([]byte, 1)); err != nil {
					t.Fatalf("pad: %v", err)
				}
			}
			buf, err := w.Finish()
			if err != nil {
				t.Fatalf("Finish: %v", err)
			}
			r := NewReader(buf)
			got, err := r.ReadBits(tt.n)
			if err != nil {
				t.Fatalf("ReadBits: %v", err)
			}
			want := make([]byte, (tt.n+7)/8)
			copy(want, tt.src)
			// mask off padding bits below n in the last byte of want
			if tt.n%8 != 0 {
				mask := byte(0xFF) << uint(8-tt.n%8)
				want[len(want)-1] &= mask
			}
			if !bytes.Equal(got, want) {
				t.Errorf("got %x want %x", got, want)
			}
		})
	}
}

func TestStraddlingReadAcrossMultipleWrites(t *testing.T) {
	w := NewWriter()
	_ = w.WriteBits(4, []byte{0xF0}) // 1111
	_ = w.WriteBits(4, []byte{0xA0}) // 1010 -> byte 0xFA
	_ = w.WriteBits(8, []byte{0x55})
	buf, err := w.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !bytes.Equal(buf, []byte{0xFA, 0x55}) {
		t.Fatalf("got %x", buf)
	}

	r := NewReader(buf)
	first, _ := r.ReadBits(4)
	second, _ := r.ReadBits(12)
	if first[0] != 0xF0 {
		t.Errorf("first nibble = %x", first)
	}
	if !bytes.Equal(second, []byte{0xA5, 0x50}) {
		t.Errorf("second = %x", second)
	}
}

func TestReadBytesRequiresAlignment(t *testing.T) {
	r := NewReader([]byte{0xFF, 0x00})
	if _, err := r.ReadBits(3); err != nil {
		t.Fatalf("ReadBits: %v", err)
	}
	if _, err := r.ReadBytes(1); err != ErrNotByteAligned {
		t.Errorf("expected ErrNotByteAligned, got %v", err)
	}
}

func TestWriteBytesRequiresAlignment(t *testing.T) {
	w := NewWriter()
	_ = w.WriteBits(3, []byte{0xE0})
	if err := w.WriteBytes([]byte{0x01}); err != ErrNotByteAligned {
		t.Errorf("expected ErrNotByteAligned, got %v", err)
	}
}

func TestFinishFailsUnlessByteAligned(t *testing.T) {
	w := NewWriter()
	_ = w.WriteBits(5, []byte{0xF8})
	if _, err := w.Finish(); err != ErrNotByteAligned {
		t.Errorf("expected ErrNotByteAligned, got %v", err)
	}
}

func TestShortBuffer(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.ReadBits(9); err != ErrShortBuffer {
		t.Errorf("expected ErrShortBuffer, got %v", err)
	}
}
