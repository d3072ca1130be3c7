package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// ResampleQuality maps a codec quality in [0, 1] to a beep resampling quality.
func ResampleQuality(q float64) int {
	q = math.Max(0, math.Min(1, q))
	return 1 + int(math.Round(q*5))
}

// WAVSampleRate returns the sample rate declared by a WAV payload.
func WAVSampleRate(data []byte) (int, error) {
	stream, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("failed to decode wav: %w", err)
	}
	defer stream.Close()
	return int(format.SampleRate), nil
}

// ResampleWAV re-encodes a WAV payload at rate, keeping channels and precision.
func ResampleWAV(data []byte, rate int, quality int) ([]byte, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", rate)
	}

	stream, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode wav: %w", err)
	}
	defer stream.Close()

	target := beep.SampleRate(rate)
	var s beep.Streamer = stream
	if format.SampleRate != target {
		s = beep.Resample(quality, format.SampleRate, target, stream)
	}

	out := format
	out.SampleRate = target
	buf := &seekBuffer{}
	if err := wav.Encode(buf, s, out); err != nil {
		return nil, fmt.Errorf("failed to encode wav: %w", err)
	}
	return buf.Bytes(), nil
}

// seekBuffer is an in-memory io.WriteSeeker. The WAV encoder seeks back to
// patch chunk sizes once the stream is drained.
type seekBuffer struct {
	buf []byte
	pos int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if end := b.pos + len(p); end > len(b.buf) {
		b.buf = append(b.buf, make([]byte, end-len(b.buf))...)
	}
	copy(b.buf[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(b.pos) + offset
	case io.SeekEnd:
		abs = int64(len(b.buf)) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("negative position")
	}
	b.pos = int(abs)
	return abs, nil
}

func (b *seekBuffer) Bytes() []byte {
	return b.buf
}
