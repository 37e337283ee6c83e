package audio

import (
	"math"
	"testing"
)

func TestResampleLengthRatio(t *testing.T) {
	in := Track{Samples: make([]int16, 44100), SampleRate: 44100}

	out := Resample(in, 22050)
	if out.SampleRate != 22050 {
		t.Errorf("Sample rate not updated: %d", out.SampleRate)
	}
	if math.Abs(float64(len(out.Samples))-22050) > 2 {
		t.Errorf("Expected ~22050 samples, got %d", len(out.Samples))
	}

	up := Resample(in, 48000)
	if math.Abs(float64(len(up.Samples))-48000) > 2 {
		t.Errorf("Expected ~48000 samples, got %d", len(up.Samples))
	}
}

func TestResampleConstantSignal(t *testing.T) {
	in := Track{Samples: make([]int16, 1000), SampleRate: 8000}
	for i := range in.Samples {
		in.Samples[i] = 1234
	}

	out := Resample(in, 16000)
	for i, s := range out.Samples {
		if s != 1234 {
			t.Fatalf("Constant signal distorted at %d: %d", i, s)
		}
	}
}

func TestResampleNoop(t *testing.T) {
	in := Track{Samples: []int16{1, 2, 3}, SampleRate: 44100}
	out := Resample(in, 44100)
	if len(out.Samples) != 3 || out.Samples[1] != 2 {
		t.Errorf("Same-rate resample must be a no-op, got %v", out.Samples)
	}
}

func TestTrackDuration(t *testing.T) {
	tr := Track{Samples: make([]int16, 88200), SampleRate: 44100}
	if math.Abs(tr.Duration()-2.0) > 1e-9 {
		t.Errorf("Expected 2.0s, got %f", tr.Duration())
	}
	if (Track{}).Duration() != 0 {
		t.Error("Empty track should have zero duration")
	}
}

func TestSilence(t *testing.T) {
	s := Silence(1.5, 44100)
	if len(s.Samples) != 66150 {
		t.Errorf("Expected 66150 samples, got %d", len(s.Samples))
	}
	for _, v := range s.Samples {
		if v != 0 {
			t.Fatal("Silence contains non-zero samples")
		}
	}
}

func TestDownmixStereoAverages(t *testing.T) {
	// Two channels: 100 and 300 average to 200.
	tr := downmix([]int{100, 300, -100, -300}, 2, 16, 44100)
	if len(tr.Samples) != 2 {
		t.Fatalf("Expected 2 frames, got %d", len(tr.Samples))
	}
	if tr.Samples[0] != 200 || tr.Samples[1] != -200 {
		t.Errorf("Downmix wrong: %v", tr.Samples)
	}
}

func TestDownmixBitDepthNormalization(t *testing.T) {
	// 24-bit full scale maps to 16-bit full scale.
	tr := downmix([]int{1 << 23}, 1, 24, 44100)
	if tr.Samples[0] != 32767 {
		t.Errorf("24-bit overflow should clamp to 32767, got %d", tr.Samples[0])
	}

	// 8-bit recenters around the unsigned midpoint before scaling.
	tr = downmix([]int{100}, 1, 8, 44100)
	if tr.Samples[0] != (100-128)<<8 {
		t.Errorf("8-bit sample should scale to %d, got %d", (100-128)<<8, tr.Samples[0])
	}
}

func TestDownmixUnsigned8BitSilence(t *testing.T) {
	// 8-bit WAV PCM is unsigned: 128 is silence, 0 and 255 are the extremes.
	tr := downmix([]int{128, 128, 128, 128}, 1, 8, 8000)
	for i, s := range tr.Samples {
		if s != 0 {
			t.Fatalf("8-bit silence mapped to %d at frame %d, expected 0", s, i)
		}
	}

	tr = downmix([]int{0, 255}, 1, 8, 8000)
	if tr.Samples[0] != -32768 {
		t.Errorf("8-bit minimum should map to -32768, got %d", tr.Samples[0])
	}
	if tr.Samples[1] != 127<<8 {
		t.Errorf("8-bit maximum should map to %d, got %d", 127<<8, tr.Samples[1])
	}
}
