package pyproc

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
)

// Audio crosses the worker boundary as base64 of little-endian float32,
// which numpy reads back with frombuffer(dtype="<f4").

// EncodeSamples packs samples for a worker request body.
func EncodeSamples(samples []float32) string {
	buf := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// DecodeSamples unpacks samples from a worker response body.
func DecodeSamples(s string) ([]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("audio payload not float32 aligned: %d bytes", len(raw))
	}
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}
