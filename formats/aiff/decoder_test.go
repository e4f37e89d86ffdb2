// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "garbage", data: []byte("This is not AIFF data")},
		{name: "riff header", data: []byte("RIFF\x00\x00\x00\x00WAVEfmt ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
		})
	}
}

func TestDecoder_NonSeekableInput(t *testing.T) {
	t.Parallel()

	// bytes.Buffer cannot seek; the decoder must buffer it and still reject it cleanly
	_, err := Decoder{}.Decode(bytes.NewBufferString("FORM"))
	if err == nil {
		t.Error("Decode() error = nil, want error for truncated input")
	}
}
