package player

import (
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is used when the speaker is opened before any file is decoded.
const DefaultSampleRate beep.SampleRate = 44100

// output is the audio sink the engine plays into.
type output interface {
	Init(rate beep.SampleRate) error
	SampleRate() beep.SampleRate
	Play(s beep.Streamer)
	Clear()
	Close()
}

// speakerOutput plays through the process-wide beep speaker.
// The speaker is initialized once; later files are resampled to its rate.
type speakerOutput struct {
	rate        beep.SampleRate
	initialized bool
}

func (o *speakerOutput) Init(rate beep.SampleRate) error {
	if o.initialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	o.rate = rate
	o.initialized = true
	return nil
}

func (o *speakerOutput) SampleRate() beep.SampleRate { return o.rate }

func (o *speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }

func (o *speakerOutput) Clear() {
	if o.initialized {
		speaker.Clear()
	}
}

func (o *speakerOutput) Close() {
	if o.initialized {
		speaker.Clear()
		speaker.Close()
		o.initialized = false
	}
}
