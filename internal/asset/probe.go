package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
	"github.com/sirupsen/logrus"
	"github.com/tcolgate/mp3"
	"golang.org/x/sync/errgroup"
)

const probeWorkers = 4

// ProbeAll resolves durations and display titles for every audio asset that
// has not been probed yet. Probing failures degrade to the default clip
// duration downstream, so they are logged and swallowed here.
func (l *Library) ProbeAll(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(probeWorkers)

	for _, m := range l.List() {
		if m.Kind != KindAudio || m.DurationSeconds > 0 {
			continue
		}
		m := m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dur, err := ProbeDuration(m.Path)
			if err != nil {
				l.log.WithFields(logrus.Fields{
					"path":  m.Path,
					"error": err.Error(),
				}).Warn("duration probe failed, clip falls back to default duration")
				return nil
			}
			title := probeTitle(m.Path)

			l.mu.Lock()
			m.DurationSeconds = dur
			if m.Title == "" {
				m.Title = title
			}
			l.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}

// ProbeDuration returns the duration of an audio file in seconds. WAV, FLAC
// and MP3 are parsed natively; anything else goes through ffprobe.
func ProbeDuration(path string) (float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return durationWAV(path)
	case ".flac":
		return durationFLAC(path)
	case ".mp3":
		return durationMP3(path)
	default:
		return durationFFprobe(path)
	}
}

func durationWAV(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dur, err := dec.Duration()
	if err != nil {
		return 0, fmt.Errorf("invalid wav %s: %w", path, err)
	}
	return dur.Seconds(), nil
}

// FLAC duration via STREAMINFO metadata block.
func durationFLAC(path string) (float64, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return 0, err
	}
	si := stream.Info
	if si.NSamples == 0 || si.SampleRate == 0 {
		return 0, fmt.Errorf("flac stream %s missing sample info", path)
	}
	return float64(si.NSamples) / float64(si.SampleRate), nil
}

// MP3 duration by walking frames; a partial decode keeps what it has.
func durationMP3(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec := mp3.NewDecoder(f)
	var total float64
	var skipped int
	frames := 0
	for {
		var fr mp3.Frame
		if err := dec.Decode(&fr, &skipped); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if frames == 0 {
				return 0, fmt.Errorf("no decodable mp3 frames in %s", path)
			}
			break
		}
		total += fr.Duration().Seconds()
		frames++
	}
	return total, nil
}

func durationFFprobe(path string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var duration float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration); err != nil {
		return 0, err
	}
	return duration, nil
}

// probeTitle reads embedded tags for asset bin display; the file name is the
// fallback.
func probeTitle(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	f, err := os.Open(path)
	if err != nil {
		return name
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil || meta.Title() == "" {
		return name
	}
	return meta.Title()
}
