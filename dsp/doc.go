// SPDX-License-Identifier: EPL-2.0

// Package dsp analyses mono signals: silence trimming, short-time Fourier
// transforms, decibel scaling and a couple of summary measures.
//
// Nothing here modifies its input. Every function that derives samples
// allocates new slices.
package dsp
