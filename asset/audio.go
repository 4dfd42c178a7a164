package asset

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// resampleQuality is the interpolation quality used when a clip's sample
// rate differs from the speaker's.
const resampleQuality = 4

// Audio is a clip decoded entirely into memory.
type Audio struct {
	Name   string
	Path   string
	Format beep.Format

	buffer *beep.Buffer
}

// Len returns the clip length in samples.
func (a *Audio) Len() int { return a.buffer.Len() }

// Duration returns the clip length.
func (a *Audio) Duration() time.Duration { return a.Format.SampleRate.D(a.buffer.Len()) }

// Streamer returns a fresh streamer over the clip. With loop set it repeats
// forever.
func (a *Audio) Streamer(loop bool) beep.Streamer {
	s := a.buffer.Streamer(0, a.buffer.Len())
	if loop {
		return beep.Loop(-1, s)
	}
	return s
}

var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

// Play starts the clip on the default output device.
func (a *Audio) Play(loop bool) error {
	return playOnSpeaker(a.Format.SampleRate, a.Streamer(loop))
}

// playOnSpeaker mixes s into the default output device. The speaker is
// initialised on first use with that stream's sample rate; later streams
// with a different rate are resampled.
func playOnSpeaker(rate beep.SampleRate, s beep.Streamer) error {
	speakerOnce.Do(func() {
		speakerRate = rate
		speakerErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	if speakerErr != nil {
		return fmt.Errorf("init speaker: %w", speakerErr)
	}

	if rate != speakerRate {
		s = beep.Resample(resampleQuality, rate, speakerRate, s)
	}
	speaker.Play(s)
	return nil
}

func decodeAudio(name, path string) (*Audio, error) {
	ext, err := sniffFile(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext {
	case "mp3":
		stream, format, err = mp3.Decode(f)
	case "wav":
		stream, format, err = wav.Decode(f)
	case "ogg":
		stream, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %q is not audio", ErrUnsupported, ext)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", ext, err)
	}
	defer stream.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(stream)
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ext, err)
	}

	return &Audio{Name: name, Path: path, Format: format, buffer: buffer}, nil
}
