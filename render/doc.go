// SPDX-License-Identifier: EPL-2.0

// Package render draws signals to image files.
//
// Spectrogram writes a margin free PNG whose pixels are the decibel scaled
// STFT of the signal. Waveform uses gonum/plot to draw amplitude against
// sample index with a title. Both take the signal to draw and the path to
// write; neither decodes or trims anything itself.
//
// Colors come from an explicit Theme and, for spectrograms, a named
// Colormap. See Colormaps for the available names.
package render
