// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams using github.com/mewkiz/flac.
//
// Blocks are decoded one at a time and interleaved into the caller's buffer,
// so memory use does not grow with the length of the file.
package flac
