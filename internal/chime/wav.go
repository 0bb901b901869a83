package chime

import (
	"bytes"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
	resampling "github.com/tphakala/go-audio-resampling"
)

// writeSeeker is an in-memory io.WriteSeeker for WAV encoding.
type writeSeeker struct {
	buf []byte
	pos int
}

func (ws *writeSeeker) Write(p []byte) (int, error) {
	end := ws.pos + len(p)
	if end > len(ws.buf) {
		ws.buf = append(ws.buf, make([]byte, end-len(ws.buf))...)
	}
	copy(ws.buf[ws.pos:], p)
	ws.pos = end
	return len(p), nil
}

func (ws *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var newPos int
	switch whence {
	case io.SeekStart:
		newPos = int(offset)
	case io.SeekCurrent:
		newPos = ws.pos + int(offset)
	case io.SeekEnd:
		newPos = len(ws.buf) + int(offset)
	default:
		return 0, errors.Errorf("invalid whence: %d", whence)
	}
	if newPos < 0 || newPos > len(ws.buf) {
		return 0, errors.Errorf("seek position %d out of bounds [0, %d]", newPos, len(ws.buf))
	}
	ws.pos = newPos
	return int64(ws.pos), nil
}

// encodeWAV encodes mono 16-bit PCM samples as a WAV file in memory.
func encodeWAV(samples []int16, sampleRate int) ([]byte, error) {
	ws := &writeSeeker{}

	intBuf := &audio.IntBuffer{
		Data: make([]int, len(samples)),
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		intBuf.Data[i] = int(s)
	}

	enc := wav.NewEncoder(ws, sampleRate, 16, 1, 1)
	if err := enc.Write(intBuf); err != nil {
		return nil, errors.Wrap(err, "write wav")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "close wav encoder")
	}
	return ws.buf, nil
}

// decodeWAV reads a 16-bit WAV file and returns mono samples and the
// sample rate. Multi-channel audio is averaged down to mono.
func decodeWAV(data []byte) ([]int16, int, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, 0, errors.New("invalid WAV file")
	}
	if dec.BitDepth != 16 {
		return nil, 0, errors.Errorf("unsupported WAV bit depth %d (want 16)", dec.BitDepth)
	}

	pcmBuf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, errors.Wrap(err, "decode wav")
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		channels = 1
	}
	samples := make([]int16, len(pcmBuf.Data)/channels)
	for i := range samples {
		sum := 0
		for c := 0; c < channels; c++ {
			sum += pcmBuf.Data[i*channels+c]
		}
		samples[i] = int16(sum / channels)
	}
	return samples, int(dec.SampleRate), nil
}

// resample converts mono samples from inputRate to outputRate.
func resample(samples []int16, inputRate, outputRate float64) ([]int16, error) {
	if inputRate == outputRate || len(samples) == 0 {
		return samples, nil
	}

	floats := make([]float64, len(samples))
	for i, s := range samples {
		floats[i] = float64(s) / 32768.0
	}

	resampled, err := resampling.ResampleMono(floats, inputRate, outputRate, resampling.QualityLow)
	if err != nil {
		return nil, errors.Wrap(err, "resample mono")
	}

	out := make([]int16, len(resampled))
	for i, f := range resampled {
		v := f * 32768.0
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		out[i] = int16(math.Round(v))
	}
	return out, nil
}

// normalize re-encodes a user WAV file as mono at sampleRate so every cue
// shares the speaker's format.
func normalize(data []byte, sampleRate int) ([]byte, error) {
	samples, rate, err := decodeWAV(data)
	if err != nil {
		return nil, err
	}
	samples, err = resample(samples, float64(rate), float64(sampleRate))
	if err != nil {
		return nil, err
	}
	return encodeWAV(samples, sampleRate)
}
