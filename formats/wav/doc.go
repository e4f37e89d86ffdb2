// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF WAVE files.
//
// Decoding goes through github.com/go-audio/wav, so non-canonical chunk
// layouts (LIST, fact, odd fmt sizes) are handled. Integer PCM at 8, 16, 24
// and 32 bits is supported; IEEE float and compressed formats are rejected
// with ErrOnlyIntegerPCM.
//
// WriteWAV16 and WriteSignal produce canonical mono 16-bit PCM files, which
// is what the trimmed-audio export writes.
package wav
