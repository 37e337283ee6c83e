package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
)

// Track is decoded PCM, mono, 16-bit, at a known sample rate.
type Track struct {
	Samples    []int16
	SampleRate int
}

// Duration is the exact decoded length in seconds, derived from the real
// sample count rather than any declared metadata.
func (t Track) Duration() float64 {
	if t.SampleRate == 0 {
		return 0
	}
	return float64(len(t.Samples)) / float64(t.SampleRate)
}

// Silence returns a track of zero samples covering the given duration.
func Silence(seconds float64, rate int) Track {
	n := int(seconds*float64(rate) + 0.5)
	if n < 0 {
		n = 0
	}
	return Track{Samples: make([]int16, n), SampleRate: rate}
}

// Decode reads an audio file and returns mono PCM at targetRate. WAV and
// FLAC decode natively; every other container goes through an ffmpeg pipe,
// which also performs the resample/downmix in that path.
func Decode(ctx context.Context, path string, targetRate int, ffmpegPath string) (Track, error) {
	var (
		t   Track
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		t, err = decodeWAV(path)
	case ".flac":
		t, err = decodeFLAC(path)
	default:
		return decodeFFmpeg(ctx, path, targetRate, ffmpegPath)
	}
	if err != nil {
		return Track{}, err
	}
	return Resample(t, targetRate), nil
}

func decodeWAV(path string) (Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return Track{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Track{}, fmt.Errorf("decode wav %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.SampleRate == 0 || buf.Format.NumChannels == 0 {
		return Track{}, fmt.Errorf("wav %s: missing format", path)
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(dec.BitDepth)
	}
	return downmix(buf.Data, buf.Format.NumChannels, depth, buf.Format.SampleRate), nil
}

func decodeFLAC(path string) (Track, error) {
	stream, err := flac.Open(path)
	if err != nil {
		return Track{}, fmt.Errorf("open flac %s: %w", path, err)
	}
	defer stream.Close()

	rate := int(stream.Info.SampleRate)
	depth := int(stream.Info.BitsPerSample)
	channels := int(stream.Info.NChannels)

	var interleaved []int
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Track{}, fmt.Errorf("decode flac %s: %w", path, err)
		}
		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				interleaved = append(interleaved, int(frame.Subframes[ch].Samples[i]))
			}
		}
	}
	return downmix(interleaved, channels, depth, rate), nil
}

// decodeFFmpeg pipes s16le PCM out of ffmpeg, already mono at the target
// rate.
func decodeFFmpeg(ctx context.Context, path string, targetRate int, ffmpegPath string) (Track, error) {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-v", "error",
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(targetRate),
		"-ac", "1",
		"-",
	)
	out, err := cmd.Output()
	if err != nil {
		return Track{}, fmt.Errorf("ffmpeg decode %s: %w", path, err)
	}

	samples := make([]int16, len(out)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(out[i*2:]))
	}
	return Track{Samples: samples, SampleRate: targetRate}, nil
}

// downmix averages interleaved channels into mono int16 and normalizes the
// source bit depth to 16 bits. 8-bit WAV PCM is unsigned with silence at 128;
// it is recentered before the shift so silence maps to 0, not full scale.
func downmix(data []int, channels, depth, rate int) Track {
	if channels <= 0 {
		channels = 1
	}
	shift := depth - 16

	frames := len(data) / channels
	samples := make([]int16, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for ch := 0; ch < channels; ch++ {
			sum += data[i*channels+ch]
		}
		v := sum / channels
		if depth == 8 {
			v -= 128
		}
		if shift > 0 {
			v >>= shift
		} else if shift < 0 {
			v <<= -shift
		}
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		samples[i] = int16(v)
	}
	return Track{Samples: samples, SampleRate: rate}
}
