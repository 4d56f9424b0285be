package wavio

import (
	"bytes"
	"math"
	"testing"
)

func sine(n int, freq float64, rate int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(0.8 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	const rate = 24000
	in := sine(2400, 440, rate)
	// include the extremes and zero
	in[0], in[1], in[2] = 1, -1, 0

	data, err := Encode(in, rate)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, gotRate, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if gotRate != rate {
		t.Fatalf("rate=%d want %d", gotRate, rate)
	}
	if len(out) != len(in) {
		t.Fatalf("len=%d want %d", len(out), len(in))
	}
	const eps = 1.0 / 32767
	for i := range in {
		if d := math.Abs(float64(in[i]) - float64(out[i])); d > eps {
			t.Fatalf("sample %d: in=%v out=%v diff=%v", i, in[i], out[i], d)
		}
	}
}

func TestEncodeClampsOutOfRange(t *testing.T) {
	data, err := Encode([]float32{2.5, -3.0, 0.5}, 16000)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, _, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out[0] != 1 || out[1] != -1 {
		t.Fatalf("clamp: %v", out[:2])
	}
}

func TestEncodeHeader(t *testing.T) {
	data, err := Encode([]float32{0, 0.1, -0.1}, 24000)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		t.Fatalf("not a RIFF/WAVE file: %q", data[:12])
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Encode(nil, 16000); err == nil {
		t.Fatalf("expected error for empty samples")
	}
	if _, err := Encode([]float32{0}, 0); err == nil {
		t.Fatalf("expected error for zero sample rate")
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, _, err := Decode([]byte("definitely not wav")); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}
