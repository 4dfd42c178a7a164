package asset

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/cogentcore/reisen"
)

// videoFormats are the containers handed to the decoder.
var videoFormats = map[string]bool{
	"mp4":  true,
	"m4v":  true,
	"mov":  true,
	"mkv":  true,
	"webm": true,
	"avi":  true,
	"mpg":  true,
	"flv":  true,
}

// defaultFrameDuration is used when a stream does not report a frame rate.
const defaultFrameDuration = time.Second / 30

// frameDecoder yields the frames of one video stream in presentation order.
type frameDecoder interface {
	// readFrame returns the next frame and its offset from the start of the
	// file, or io.EOF after the last frame.
	readFrame() (*image.RGBA, time.Duration, error)
	// rewind seeks back to the first frame.
	rewind() error
	close() error
}

// Video decodes the first video stream of a media file on demand.
//
// A Video is driven from a single goroutine: NextFrame decodes only as far
// as the requested playback position, so the render loop never waits on a
// background decoder.
type Video struct {
	Name string
	Path string

	dec      frameDecoder
	audio    *VideoAudio
	width    int
	height   int
	frameDur time.Duration

	loop    bool
	playing bool
	// base is added to decoded timestamps; it grows by one clip length each
	// time playback wraps.
	base time.Duration
	// lastPTS is the timestamp of the last frame read in the current pass.
	lastPTS time.Duration

	current *image.RGBA
	next    *image.RGBA
	nextAt  time.Duration
}

func openVideo(name, path string) (*Video, error) {
	ext, err := sniffFile(path)
	if err != nil {
		return nil, err
	}
	if !videoFormats[ext] {
		return nil, fmt.Errorf("%w: %q is not a video", ErrUnsupported, ext)
	}

	media, err := reisen.NewMedia(path)
	if err != nil {
		return nil, fmt.Errorf("open media: %w", err)
	}
	streams := media.VideoStreams()
	if len(streams) == 0 {
		media.Close()
		return nil, fmt.Errorf("%w: no video stream", ErrUnsupported)
	}
	stream := streams[0]

	frameDur := defaultFrameDuration
	if num, den := stream.FrameRate(); num > 0 && den > 0 {
		frameDur = time.Duration(float64(time.Second) * float64(den) / float64(num))
	}

	dec, err := newReisenDecoder(media, stream)
	if err != nil {
		media.Close()
		return nil, err
	}
	v, err := newVideo(name, path, dec, stream.Width(), stream.Height(), frameDur)
	if err != nil {
		return nil, err
	}
	if len(media.AudioStreams()) > 0 {
		v.audio = &VideoAudio{Name: name, Path: path}
	}
	return v, nil
}

// newVideo wraps dec and decodes the poster frame.
func newVideo(name, path string, dec frameDecoder, width, height int, frameDur time.Duration) (*Video, error) {
	v := &Video{
		Name:     name,
		Path:     path,
		dec:      dec,
		width:    width,
		height:   height,
		frameDur: frameDur,
	}
	poster, pts, err := dec.readFrame()
	if err != nil {
		dec.close()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: video has no frames", ErrUnsupported)
		}
		return nil, err
	}
	v.current, v.lastPTS = poster, pts
	return v, nil
}

// Width returns the frame width in pixels.
func (v *Video) Width() int { return v.width }

// Height returns the frame height in pixels.
func (v *Video) Height() int { return v.height }

// FrameDuration returns the nominal time between frames.
func (v *Video) FrameDuration() time.Duration { return v.frameDur }

// Playing reports whether Start has been called.
func (v *Video) Playing() bool { return v.playing }

// Soundtrack returns the file's own audio track, or nil when it has none.
func (v *Video) Soundtrack() *VideoAudio { return v.audio }

// Start begins playback from the frame already shown. With loop set the
// video wraps to the start when it runs out of frames.
func (v *Video) Start(loop bool) error {
	v.loop = loop
	v.playing = true
	return nil
}

// NextFrame returns the frame to show at elapsed playback time. Before
// Start it returns the first frame. After the end of a non-looping video it
// keeps returning the last frame.
func (v *Video) NextFrame(elapsed time.Duration) (*image.RGBA, error) {
	if !v.playing {
		return v.current, nil
	}

	rewound := false
	for {
		if v.next == nil {
			img, pts, err := v.dec.readFrame()
			switch {
			case errors.Is(err, io.EOF):
				if !v.loop {
					return v.current, nil
				}
				if rewound {
					return nil, fmt.Errorf("video %q: no frames after rewind", v.Name)
				}
				if err := v.rewind(); err != nil {
					return nil, err
				}
				rewound = true
				continue
			case err != nil:
				return nil, err
			}
			rewound = false
			v.lastPTS = pts
			v.next, v.nextAt = img, v.base+pts
		}
		if v.nextAt > elapsed {
			return v.current, nil
		}
		v.current, v.next = v.next, nil
	}
}

// Close releases the decoder and stops the audio track.
func (v *Video) Close() error {
	if v.dec == nil {
		return nil
	}
	var errs []error
	if v.audio != nil {
		errs = append(errs, v.audio.Close())
	}
	errs = append(errs, v.dec.close())
	v.dec = nil
	return errors.Join(errs...)
}

// rewind starts the next pass one frame after the last one shown.
func (v *Video) rewind() error {
	if err := v.dec.rewind(); err != nil {
		return fmt.Errorf("video %q: rewind: %w", v.Name, err)
	}
	v.base += v.lastPTS + v.frameDur
	v.lastPTS = 0
	return nil
}

// packetReader is the demuxer half of *reisen.Media.
type packetReader interface {
	ReadPacket() (*reisen.Packet, bool, error)
}

// reisenDecoder reads one video stream of a reisen media file.
type reisenDecoder struct {
	media   *reisen.Media
	packets packetReader
	stream  *reisen.VideoStream
}

func newReisenDecoder(media *reisen.Media, stream *reisen.VideoStream) (*reisenDecoder, error) {
	if err := media.OpenDecode(); err != nil {
		return nil, fmt.Errorf("open decode: %w", err)
	}
	if err := stream.Open(); err != nil {
		media.CloseDecode()
		return nil, fmt.Errorf("open video stream: %w", err)
	}
	return &reisenDecoder{media: media, packets: media, stream: stream}, nil
}

func (d *reisenDecoder) readFrame() (*image.RGBA, time.Duration, error) {
	for {
		packet, ok, err := d.packets.ReadPacket()
		if err != nil {
			return nil, 0, fmt.Errorf("read packet: %w", err)
		}
		if !ok {
			return nil, 0, io.EOF
		}
		// The demuxer asked to be called again.
		if packet == nil {
			continue
		}
		if packet.Type() != reisen.StreamVideo || packet.StreamIndex() != d.stream.Index() {
			continue
		}

		frame, ok, err := d.stream.ReadVideoFrame()
		if err != nil {
			return nil, 0, fmt.Errorf("read video frame: %w", err)
		}
		if !ok {
			return nil, 0, io.EOF
		}
		if frame == nil {
			continue
		}

		pts, err := frame.PresentationOffset()
		if err != nil {
			return nil, 0, fmt.Errorf("frame timestamp: %w", err)
		}
		return frame.Image(), pts, nil
	}
}

// rewind seeks the demuxer to the first frame. Closing and reopening the
// decoder does not move the read position.
func (d *reisenDecoder) rewind() error {
	return d.stream.Rewind(0)
}

func (d *reisenDecoder) close() error {
	err := errors.Join(d.stream.Close(), d.media.CloseDecode())
	d.media.Close()
	return err
}
