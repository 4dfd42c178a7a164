package asset

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stereo(samples ...[2]float64) []byte {
	b := make([]byte, 0, 16*len(samples))
	for _, s := range samples {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(s[0]))
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(s[1]))
	}
	return b
}

// fakeAudio serves fixed frames; err replaces io.EOF at the end when set.
type fakeAudio struct {
	chunks  [][]byte
	pos     int
	rewinds int
	err     error
	closed  bool
}

func (f *fakeAudio) readAudio() ([]byte, error) {
	if f.pos >= len(f.chunks) {
		if f.err != nil {
			return nil, f.err
		}
		return nil, io.EOF
	}
	c := f.chunks[f.pos]
	f.pos++
	return c, nil
}

func (f *fakeAudio) rewind() error {
	f.rewinds++
	f.pos = 0
	return nil
}

func (f *fakeAudio) close() error {
	f.closed = true
	return nil
}

func receive(t *testing.T, ch <-chan [2]float64, n int) [][2]float64 {
	t.Helper()
	var got [][2]float64
	timeout := time.After(5 * time.Second)
	for len(got) < n {
		select {
		case s, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, s)
		case <-timeout:
			t.Fatalf("received %d of %d samples", len(got), n)
		}
	}
	return got
}

func drain(t *testing.T, ch <-chan [2]float64) [][2]float64 {
	t.Helper()
	return receive(t, ch, math.MaxInt)
}

func TestSendSamples(t *testing.T) {
	out := make(chan [2]float64, 4)
	data := append(stereo([2]float64{0.5, -0.5}, [2]float64{1, 0}), 1, 2, 3)

	require.True(t, sendSamples(data, out, nil))
	close(out)
	assert.Equal(t, [][2]float64{{0.5, -0.5}, {1, 0}}, drain(t, out), "a partial trailing sample is dropped")

	stop := make(chan struct{})
	close(stop)
	assert.False(t, sendSamples(stereo([2]float64{1, 1}), make(chan [2]float64), stop))
}

func TestChannelStreamer(t *testing.T) {
	ch := make(chan [2]float64, 3)
	ch <- [2]float64{0.1, 0.1}
	ch <- [2]float64{0.2, 0.2}
	ch <- [2]float64{0.3, 0.3}
	close(ch)

	s := channelStreamer(ch)
	buf := make([][2]float64, 5)
	n, ok := s.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Equal(t, [2]float64{0.3, 0.3}, buf[2])

	n, ok = s.Stream(buf)
	assert.False(t, ok)
	assert.Zero(t, n)
}

func TestVideoAudioLoops(t *testing.T) {
	a, b := [2]float64{0.25, 0.25}, [2]float64{-0.25, 0.75}
	dec := &fakeAudio{chunks: [][]byte{stereo(a), stereo(b)}}
	track := &VideoAudio{Name: "op"}

	out := track.start(dec, true)
	assert.Equal(t, [][2]float64{a, b, a, b, a}, receive(t, out, 5))

	require.NoError(t, track.Close())
	assert.True(t, dec.closed)
	assert.GreaterOrEqual(t, dec.rewinds, 2)
	drain(t, out)
}

func TestVideoAudioPlaysOnce(t *testing.T) {
	a := [2]float64{0.5, 0.5}
	dec := &fakeAudio{chunks: [][]byte{stereo(a, a), stereo(a)}}
	track := &VideoAudio{Name: "op"}

	out := track.start(dec, false)
	assert.Len(t, drain(t, out), 3)
	require.NoError(t, track.Close())
	assert.Zero(t, dec.rewinds)
}

func TestVideoAudioSilentFileDoesNotSpin(t *testing.T) {
	dec := &fakeAudio{}
	track := &VideoAudio{Name: "op"}

	out := track.start(dec, true)
	assert.Empty(t, drain(t, out))
	require.NoError(t, track.Close())
	assert.Zero(t, dec.rewinds)
}

func TestVideoAudioReadError(t *testing.T) {
	dec := &fakeAudio{chunks: [][]byte{stereo([2]float64{1, 1})}, err: errors.New("corrupt frame")}
	track := &VideoAudio{Name: "op"}

	out := track.start(dec, true)
	assert.Len(t, drain(t, out), 1)
	assert.ErrorIs(t, track.Close(), dec.err)
}

func TestVideoAudioCloseBeforePlay(t *testing.T) {
	assert.NoError(t, (&VideoAudio{}).Close())
}
