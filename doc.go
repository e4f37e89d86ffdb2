// SPDX-License-Identifier: EPL-2.0

// Package audviz turns audio files into pictures: waveform plots and
// spectrograms, optionally with leading and trailing silence trimmed.
//
// This package holds the loading entry points. Every file is decoded,
// resampled to DefaultSampleRate and mixed down to a mono audio.Signal:
//
//	sig, err := audviz.Load("tram.wav")
//	if err != nil {
//	    return err
//	}
//	trimmed := dsp.Trim(sig, 40)
//	err = render.Spectrogram("tram.png", trimmed.Signal, render.DefaultSpectrogramConfig())
//
// # Packages
//
//   - audio: sources, decoders registry, resampler, mono mixer
//   - formats/...: WAV, MP3, Ogg Vorbis, AIFF and FLAC decoders
//   - dsp: silence trimming, STFT, decibel scaling, simple analysis
//   - render: spectrogram images and waveform plots
//   - discover: directory scanning by extension
//
// The audviz command in cmd/audviz runs the whole batch over a directory.
package audviz
