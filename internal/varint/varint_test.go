package varint

import (
	"bytes"
	"testing"

	"github.com/yobol/go-moqt/internal/bitio"
	"pgregory.net/rapid"
)

func encodeNumber(t *testing.T, n Number) []byte {
	t.Helper()
	w := bitio.NewWriter()
	if _, err := n.Encode(w); err != nil {
		t.Fatalf("Encode(%d): %v", uint64(n), err)
	}
	buf, err := w.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return buf
}

func TestNumberConcreteScenarios(t *testing.T) {
	tests := []struct {
		name string
		v    Number
		want []byte
	}{
		{"0x08", 0x08, []byte{0x08}},
		{"2048", 2048, []byte{0x48, 0x00}},
		{"524288", 524288, []byte{0x80, 0x08, 0x00, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeNumber(t, tt.v)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("encode(%d) = % x, want % x", uint64(tt.v), got, tt.want)
			}
			r := bitio.NewReader(got)
			dec, _, err := DecodeNumber(r)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if dec != tt.v {
				t.Errorf("decode(% x) = %d, want %d", got, uint64(dec), uint64(tt.v))
			}
		})
	}
}

func TestNumberSizeTagCoverage(t *testing.T) {
	tests := []struct {
		v        Number
		wantLen  int
		failsEnc bool
	}{
		{0, 1, false},
		{63, 1, false},
		{64, 2, false},
		{16383, 2, false},
		{16384, 4, false},
		{1<<30 - 1, 4, false},
		{1 << 30, 8, false},
		{MaxNumber, 8, false},
	}
	for _, tt := range tests {
		buf := encodeNumber(t, tt.v)
		if len(buf) != tt.wantLen {
			t.Errorf("len(encode(%d)) = %d, want %d", uint64(tt.v), len(buf), tt.wantLen)
		}
	}

	w := bitio.NewWriter()
	if _, err := Number(MaxNumber + 1).Encode(w); err != ErrTooLarge {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestNumberRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := Number(rapid.Uint64Range(0, MaxNumber).Draw(t, "v"))
		w := bitio.NewWriter()
		bits, err := v.Encode(w)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if bits != v.LenBits() {
			t.Fatalf("bits written %d != LenBits %d", bits, v.LenBits())
		}
		buf, err := w.Finish()
		if err != nil {
			t.Fatalf("finish: %v", err)
		}
		r := bitio.NewReader(buf)
		got, gotBits, err := DecodeNumber(r)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != v {
			t.Fatalf("decode = %d, want %d", uint64(got), uint64(v))
		}
		if gotBits != bits {
			t.Fatalf("bits consumed %d != bits written %d", gotBits, bits)
		}
	})
}

func TestBitNumberRangeValidation(t *testing.T) {
	b := NewBitNumber(8, 0, 3)
	w := bitio.NewWriter()
	if err := b.Encode(4, w); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if err := b.Encode(2, w); err != nil {
		t.Fatalf("Encode(2): %v", err)
	}
	buf, _ := w.Finish()
	r := bitio.NewReader(buf)
	got, err := b.Decode(r)
	if err != nil || got != 2 {
		t.Fatalf("Decode = %d, %v", got, err)
	}
}

func TestBinaryDataRoundTrip(t *testing.T) {
	v := BinaryData("moq")
	w := bitio.NewWriter()
	bits, err := v.Encode(w)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	buf, _ := w.Finish()
	want := []byte{3, 'm', 'o', 'q'}
	if !bytes.Equal(buf, want) {
		t.Fatalf("encode = % x, want % x", buf, want)
	}
	r := bitio.NewReader(buf)
	got, gotBits, err := DecodeBinaryData(r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != "moq" || gotBits != bits {
		t.Fatalf("decode = %q/%d, want moq/%d", got, gotBits, bits)
	}
}

func TestNamespaceTupleScenario(t *testing.T) {
	tup := Tuple{BinaryData("moq"), BinaryData("vod"), BinaryData("banana")}
	w := bitio.NewWriter()
	if _, err := tup.Encode(w); err != nil {
		t.Fatalf("encode: %v", err)
	}
	buf, _ := w.Finish()
	want := []byte{0x03, 0x03, 0x6D, 0x6F, 0x71, 0x03, 0x76, 0x6F, 0x64, 0x06, 0x62, 0x61, 0x6E, 0x61, 0x6E, 0x61}
	if !bytes.Equal(buf, want) {
		t.Fatalf("encode = % X, want % X", buf, want)
	}
	r := bitio.NewReader(buf)
	got, _, err := DecodeTuple(r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 || string(got[0]) != "moq" || string(got[1]) != "vod" || string(got[2]) != "banana" {
		t.Fatalf("decode = %v", got)
	}
}
