// Package wavio converts between float32 PCM samples and WAV files.
// Audio crosses the process boundary as raw samples in [-1, 1]; this
// package produces the 16-bit PCM mono WAV the HTTP layer serves.
package wavio

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	pcmFormat = 1
	bitDepth  = 16
)

// Encode renders samples as a 16-bit PCM mono WAV file.
func Encode(samples []float32, sampleRate int) ([]byte, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("wav: no samples")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("wav: invalid sample rate %d", sampleRate)
	}

	ints := make([]int, len(samples))
	for i, s := range samples {
		ints[i] = sampleToInt16(s)
	}

	w := &memWriter{}
	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           ints,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("wav: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("wav: finalize: %w", err)
	}
	return w.Bytes(), nil
}

// Decode parses a mono 16-bit PCM WAV file back into float32 samples.
// Returns the samples and the file's sample rate.
func Decode(data []byte) ([]float32, int, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("wav: invalid file")
	}
	if dec.NumChans != 1 {
		return nil, 0, fmt.Errorf("wav: expected mono, got %d channels", dec.NumChans)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wav: decode: %w", err)
	}
	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16ToSample(v)
	}
	return samples, int(dec.SampleRate), nil
}

// sampleToInt16 clamps to [-1, 1] and scales symmetrically by 32767 so
// a round trip stays within one quantization step.
func sampleToInt16(s float32) int {
	if s > 1 {
		s = 1
	}
	if s < -1 {
		s = -1
	}
	return int(math.Round(float64(s) * 32767))
}

func int16ToSample(v int) float32 {
	s := float32(v) / 32767
	if s > 1 {
		s = 1
	}
	if s < -1 {
		s = -1
	}
	return s
}

// memWriter is an in-memory io.WriteSeeker for the wav encoder, which
// seeks back to patch the RIFF header on Close.
type memWriter struct {
	buf []byte
	pos int
}

func (m *memWriter) Write(p []byte) (int, error) {
	if need := m.pos + len(p); need > len(m.buf) {
		if need > cap(m.buf) {
			grown := make([]byte, need, need*2)
			copy(grown, m.buf)
			m.buf = grown
		} else {
			m.buf = m.buf[:need]
		}
	}
	copy(m.buf[m.pos:], p)
	m.pos += len(p)
	return len(p), nil
}

func (m *memWriter) Seek(offset int64, whence int) (int64, error) {
	var next int
	switch whence {
	case io.SeekStart:
		next = int(offset)
	case io.SeekCurrent:
		next = m.pos + int(offset)
	case io.SeekEnd:
		next = len(m.buf) + int(offset)
	default:
		return 0, fmt.Errorf("wav: invalid whence %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("wav: negative seek position")
	}
	m.pos = next
	return int64(next), nil
}

func (m *memWriter) Bytes() []byte { return m.buf }
