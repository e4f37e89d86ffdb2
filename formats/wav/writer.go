// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audviz/audio"
	"github.com/ik5/audviz/utils"
)

// headerSize is the canonical 44 byte RIFF/fmt/data header.
const headerSize = 44

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	const (
		channels      = 1
		bitsPerSample = 16
		blockAlign    = channels * bitsPerSample / 8
	)
	dataSize := uint32(len(samples) * blockAlign)

	header := make([]byte, headerSize)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], channels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("wav: write header: %w", err)
	}

	// 8KB of samples per write
	const chunk = 4096
	buf := make([]byte, min(len(samples), chunk)*2)
	for start := 0; start < len(samples); start += chunk {
		part := samples[start:min(start+chunk, len(samples))]
		out := buf[:len(part)*2]
		for i, s := range part {
			binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("wav: write data: %w", err)
		}
	}

	return nil
}

// WriteSignal writes sig as mono 16-bit PCM, clamping out of range samples.
func WriteSignal(w io.Writer, sig *audio.Signal) error {
	if sig == nil || sig.SampleRate <= 0 {
		return audio.ErrInvalidRate
	}
	return WriteWAV16(w, sig.SampleRate, utils.Float32sToInt16(sig.Samples))
}
