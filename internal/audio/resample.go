package audio

// Resample converts a track to the target sample rate with linear
// interpolation. Good enough for speech-over-image shorts; the corpus
// carries no dedicated sample-rate-conversion library.
func Resample(t Track, targetRate int) Track {
	if t.SampleRate == targetRate || t.SampleRate == 0 || len(t.Samples) == 0 {
		t.SampleRate = targetRate
		return t
	}

	ratio := float64(t.SampleRate) / float64(targetRate)
	n := int(float64(len(t.Samples)) / ratio)
	out := make([]int16, n)

	for i := 0; i < n; i++ {
		pos := float64(i) * ratio
		j := int(pos)
		if j >= len(t.Samples)-1 {
			out[i] = t.Samples[len(t.Samples)-1]
			continue
		}
		frac := pos - float64(j)
		a := float64(t.Samples[j])
		b := float64(t.Samples[j+1])
		out[i] = int16(a + (b-a)*frac)
	}

	return Track{Samples: out, SampleRate: targetRate}
}
