// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio using
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces stereo 16-bit PCM, so the source reports two
// channels even for mono files; the analysis chain mixes them down.
package mp3
