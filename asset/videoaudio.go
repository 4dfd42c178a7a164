package asset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/cogentcore/reisen"
	"github.com/faiface/beep"
)

// sampleBufferSize is how many decoded stereo samples may wait for the
// speaker; about two seconds at 44.1 kHz.
const sampleBufferSize = 2 * 44100

// audioDecoder yields raw audio frames: interleaved little-endian float64
// stereo samples, as reisen produces them.
type audioDecoder interface {
	// readAudio returns the next frame's bytes, or io.EOF at the end.
	readAudio() ([]byte, error)
	rewind() error
	close() error
}

// VideoAudio plays the first audio stream of a video file. It decodes on
// its own goroutine from a second handle on the file, so the picture
// decoder in the render loop never waits for the speaker.
type VideoAudio struct {
	Name string
	Path string

	mu       sync.Mutex
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	// err is written by the decode goroutine before done is closed.
	err error
}

// Play starts the track on the default output device. With loop set it
// repeats until Close. Calls after the first do nothing.
func (a *VideoAudio) Play(loop bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stop != nil {
		return nil
	}

	media, err := reisen.NewMedia(a.Path)
	if err != nil {
		return fmt.Errorf("open media: %w", err)
	}
	streams := media.AudioStreams()
	if len(streams) == 0 {
		media.Close()
		return fmt.Errorf("%w: no audio stream", ErrUnsupported)
	}
	stream := streams[0]
	if err := media.OpenDecode(); err != nil {
		media.Close()
		return fmt.Errorf("open decode: %w", err)
	}
	if err := stream.Open(); err != nil {
		media.CloseDecode()
		media.Close()
		return fmt.Errorf("open audio stream: %w", err)
	}

	samples := a.start(&reisenAudio{media: media, stream: stream}, loop)
	rate := beep.SampleRate(stream.SampleRate())
	if err := playOnSpeaker(rate, channelStreamer(samples)); err != nil {
		a.stopOnce.Do(func() { close(a.stop) })
		return err
	}
	return nil
}

// Close stops decoding and returns the error that ended it, if any.
func (a *VideoAudio) Close() error {
	a.mu.Lock()
	stop, done := a.stop, a.done
	a.mu.Unlock()
	if stop == nil {
		return nil
	}
	a.stopOnce.Do(func() { close(stop) })
	<-done
	return a.err
}

// start launches the decode goroutine. The returned channel is closed when
// decoding ends.
func (a *VideoAudio) start(dec audioDecoder, loop bool) <-chan [2]float64 {
	out := make(chan [2]float64, sampleBufferSize)
	a.stop = make(chan struct{})
	a.done = make(chan struct{})
	go a.decode(dec, out, loop)
	return out
}

func (a *VideoAudio) decode(dec audioDecoder, out chan<- [2]float64, loop bool) {
	defer close(a.done)
	defer close(out)
	defer dec.close()

	// empty guards against spinning on a file with no audio frames.
	empty := true
	for {
		select {
		case <-a.stop:
			return
		default:
		}

		data, err := dec.readAudio()
		switch {
		case errors.Is(err, io.EOF):
			if !loop || empty {
				return
			}
			if err := dec.rewind(); err != nil {
				a.err = fmt.Errorf("audio %q: rewind: %w", a.Name, err)
				return
			}
			empty = true
			continue
		case err != nil:
			a.err = fmt.Errorf("audio %q: %w", a.Name, err)
			return
		}
		if len(data) > 0 {
			empty = false
		}
		if !sendSamples(data, out, a.stop) {
			return
		}
	}
}

// sendSamples decodes interleaved little-endian float64 stereo samples
// into out. It reports false if stop closed first.
func sendSamples(data []byte, out chan<- [2]float64, stop <-chan struct{}) bool {
	for len(data) >= 16 {
		s := [2]float64{
			math.Float64frombits(binary.LittleEndian.Uint64(data)),
			math.Float64frombits(binary.LittleEndian.Uint64(data[8:])),
		}
		select {
		case out <- s:
		case <-stop:
			return false
		}
		data = data[16:]
	}
	return true
}

// channelStreamer streams samples from ch until it is closed.
func channelStreamer(ch <-chan [2]float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			s, ok := <-ch
			if !ok {
				return i, i > 0
			}
			samples[i] = s
		}
		return len(samples), true
	})
}

// reisenAudio reads one audio stream of a reisen media file.
type reisenAudio struct {
	media  *reisen.Media
	stream *reisen.AudioStream
}

func (d *reisenAudio) readAudio() ([]byte, error) {
	for {
		packet, ok, err := d.media.ReadPacket()
		if err != nil {
			return nil, fmt.Errorf("read packet: %w", err)
		}
		if !ok {
			return nil, io.EOF
		}
		if packet == nil || packet.Type() != reisen.StreamAudio || packet.StreamIndex() != d.stream.Index() {
			continue
		}

		frame, ok, err := d.stream.ReadAudioFrame()
		if err != nil {
			return nil, fmt.Errorf("read audio frame: %w", err)
		}
		if !ok {
			return nil, io.EOF
		}
		if frame == nil {
			continue
		}
		return frame.Data(), nil
	}
}

func (d *reisenAudio) rewind() error {
	return d.stream.Rewind(0)
}

func (d *reisenAudio) close() error {
	err := errors.Join(d.stream.Close(), d.media.CloseDecode())
	d.media.Close()
	return err
}
