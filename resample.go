// SPDX-License-Identifier: EPL-2.0

package audviz

import (
	"github.com/ik5/audviz/audio"
)

// ToMonoSignal collects src into a mono Signal at targetRate.
//
// The chain is resample -> mono mix -> collect. A targetRate of 0, or one
// equal to the source rate, skips the resampler so the samples are the
// decoder's own. The source is not closed.
//
//	src, _ := wav.Decoder{}.Decode(file)
//	sig, err := audviz.ToMonoSignal(src, 22050)
func ToMonoSignal(src audio.Source, targetRate int) (*audio.Signal, error) {
	if src == nil {
		return nil, audio.ErrNilSource
	}
	if src.SampleRate() <= 0 {
		return nil, audio.ErrInvalidRate
	}

	stage := src
	if targetRate > 0 && targetRate != src.SampleRate() {
		stage = audio.NewResampler(stage, targetRate)
	}
	if stage.Channels() != 1 {
		stage = audio.NewMonoMixer(stage)
	}

	return audio.ReadAll(stage)
}
