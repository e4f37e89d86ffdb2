// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives every audviz stage is
// built on.
//
//   - Source is a pull based stream of interleaved float32 samples
//   - Decoder turns an io.Reader into a Source
//   - Registry maps file extensions to decoders
//   - Resampler changes the sample rate with cubic interpolation
//   - MonoMixer averages channels down to one
//   - Signal is a fully collected mono sample slice, see ReadAll
//
// # Analysis chain
//
// Every file is reduced to a mono Signal at a fixed analysis rate before any
// trimming or rendering happens:
//
//	src, _ := decoder.Decode(file)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 22050))
//	sig, err := audio.ReadAll(mono)
//
// # Sample format
//
// Samples are float32 in [-1.0, 1.0]; 0.0 is silence.
//
// # Error handling
//
// Sources return io.EOF when no more data is available. Any other error is a
// decoding or I/O failure and is wrapped with the stage that saw it:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // use buf[:n]
//	}
package audio
