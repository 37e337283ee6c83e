package video

import "testing"

func TestFramePTSTruncation(t *testing.T) {
	want := []int64{0, 33333, 66666, 99999, 133333}
	for i, w := range want {
		if got := FramePTS(i, 30); got != w {
			t.Errorf("FramePTS(%d, 30): expected %d, got %d", i, w, got)
		}
	}
}

func TestFramePTSStrictlyIncreasing(t *testing.T) {
	prev := int64(-1)
	for i := 0; i < 10000; i++ {
		pts := FramePTS(i, 60)
		if pts <= prev {
			t.Fatalf("pts not strictly increasing at frame %d: %d after %d", i, pts, prev)
		}
		prev = pts
	}
}

func TestEncodeFrameRejectsOutOfOrderPTS(t *testing.T) {
	e := &FFmpegEncoder{started: true, lastPTS: 100}
	if err := e.EncodeFrame(nil, 100); err == nil {
		t.Error("Equal pts must be rejected")
	}
	if err := e.EncodeFrame(nil, 50); err == nil {
		t.Error("Decreasing pts must be rejected")
	}
}

func TestEncodeFrameRequiresStart(t *testing.T) {
	e := &FFmpegEncoder{}
	if err := e.EncodeFrame(nil, 0); err == nil {
		t.Error("EncodeFrame before Start must fail")
	}
}

func TestQualityArgsPerEncoder(t *testing.T) {
	if args := qualityArgs("libx264", 23); args[0] != "-crf" || args[1] != "23" {
		t.Errorf("libx264 args wrong: %v", args)
	}
	if args := qualityArgs("h264_nvenc", 28); args[0] != "-cq" {
		t.Errorf("nvenc args wrong: %v", args)
	}
	if args := qualityArgs("h264_videotoolbox", 75); args[1] != "7500k" {
		t.Errorf("videotoolbox args wrong: %v", args)
	}
}
