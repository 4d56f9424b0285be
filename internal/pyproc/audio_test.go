package pyproc

import (
	"encoding/base64"
	"testing"
)

func TestSamplesRoundTrip(t *testing.T) {
	in := []float32{0, 1, -1, 0.5, -0.25, 3.14159}
	out, err := DecodeSamples(EncodeSamples(in))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len=%d want %d", len(out), len(in))
	}
	for i := range in {
		if in[i] != out[i] {
			t.Fatalf("sample %d: %v != %v", i, in[i], out[i])
		}
	}
}

func TestEncodeSamplesLittleEndian(t *testing.T) {
	// 1.0 as little-endian IEEE 754 is 00 00 80 3f
	got := EncodeSamples([]float32{1})
	want := base64.StdEncoding.EncodeToString([]byte{0x00, 0x00, 0x80, 0x3f})
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDecodeSamplesErrors(t *testing.T) {
	if _, err := DecodeSamples("!!!not base64!!!"); err == nil {
		t.Fatalf("expected base64 error")
	}
	// 3 bytes is not float32 aligned
	if _, err := DecodeSamples(base64.StdEncoding.EncodeToString([]byte{1, 2, 3})); err == nil {
		t.Fatalf("expected alignment error")
	}
}

func TestEncodeSamplesEmpty(t *testing.T) {
	out, err := DecodeSamples(EncodeSamples(nil))
	if err != nil || len(out) != 0 {
		t.Fatalf("out=%v err=%v", out, err)
	}
}
