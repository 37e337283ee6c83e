package timeline

import (
	"math"
	"testing"

	"github.com/ivlev/shorts2video/internal/asset"
	"github.com/ivlev/shorts2video/internal/config"
)

func testLibrary(durations map[string]float64) *asset.Library {
	lib := asset.NewLibrary(nil)
	for id, d := range durations {
		lib.Put(&asset.Media{ID: id, Kind: asset.KindAudio, DurationSeconds: d})
	}
	return lib
}

func TestEffectiveDurationDefaults(t *testing.T) {
	tl := New(testLibrary(nil))
	c := NewClip()
	tl.Append(c)

	if got := tl.EffectiveDuration(c); got != config.DefaultClipDuration {
		t.Errorf("Clip without audio: expected %f, got %f", config.DefaultClipDuration, got)
	}

	// Dangling audio reference behaves like no audio.
	c.AudioID = "missing"
	if got := tl.EffectiveDuration(c); got != config.DefaultClipDuration {
		t.Errorf("Dangling audio ref: expected %f, got %f", config.DefaultClipDuration, got)
	}
}

func TestTotalDurationSumsInOrder(t *testing.T) {
	lib := testLibrary(map[string]float64{"a": 2.0, "b": 3.0})
	tl := New(lib)

	c1 := NewClip()
	c1.AudioID = "a"
	c2 := NewClip()
	c2.AudioID = "b"
	c3 := NewClip() // no audio -> default

	tl.Append(c1)
	tl.Append(c2)
	tl.Append(c3)

	want := 2.0 + 3.0 + config.DefaultClipDuration
	if got := tl.TotalDuration(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected total %f, got %f", want, got)
	}

	// Reorder must preserve the sum (identity-preserving permutation).
	tl.Move(c3.ID, 0)
	if got := tl.TotalDuration(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Total changed after reorder: %f", got)
	}
	if tl.Clips()[0].ID != c3.ID {
		t.Errorf("Move did not place clip at index 0")
	}
}

func TestTotalDurationSeesLateProbe(t *testing.T) {
	lib := testLibrary(nil)
	lib.Put(&asset.Media{ID: "late", Kind: asset.KindAudio})
	tl := New(lib)
	c := NewClip()
	c.AudioID = "late"
	tl.Append(c)

	if got := tl.TotalDuration(); got != config.DefaultClipDuration {
		t.Fatalf("Unprobed audio should use default, got %f", got)
	}

	// Metadata resolves after insertion; the next recompute must see it.
	lib.Get("late").DurationSeconds = 7.5
	if got := tl.TotalDuration(); math.Abs(got-7.5) > 1e-9 {
		t.Errorf("Expected 7.5 after probe, got %f", got)
	}
}

func TestActiveClipAtClampsToLast(t *testing.T) {
	lib := testLibrary(map[string]float64{"a": 2.0, "b": 3.0})
	tl := New(lib)
	c1 := NewClip()
	c1.AudioID = "a"
	c2 := NewClip()
	c2.AudioID = "b"
	tl.Append(c1)
	tl.Append(c2)

	c, off := tl.ActiveClipAt(1.0)
	if c.ID != c1.ID || math.Abs(off-1.0) > 1e-9 {
		t.Errorf("t=1.0: expected clip 1 at 1.0, got %v %f", c, off)
	}

	c, off = tl.ActiveClipAt(2.5)
	if c.ID != c2.ID || math.Abs(off-0.5) > 1e-9 {
		t.Errorf("t=2.5: expected clip 2 at 0.5, got %v %f", c, off)
	}

	// Past the end: the last clip stays active (clamp, do not wrap).
	c, _ = tl.ActiveClipAt(tl.TotalDuration() + 0.001)
	if c.ID != c2.ID {
		t.Errorf("Past end: expected last clip, got %v", c)
	}

	c, off = tl.ActiveClipAt(-1.0)
	if c.ID != c1.ID || off != 0 {
		t.Errorf("Negative time: expected first clip at 0, got %v %f", c, off)
	}
}

func TestActiveClipAtEmpty(t *testing.T) {
	tl := New(testLibrary(nil))
	if c, _ := tl.ActiveClipAt(1.0); c != nil {
		t.Errorf("Empty timeline should resolve to nil, got %v", c)
	}
}

func TestInsertRemoveMove(t *testing.T) {
	tl := New(testLibrary(nil))
	a, b, c := NewClip(), NewClip(), NewClip()
	tl.Append(a)
	tl.Append(c)
	tl.Insert(1, b)

	ids := func() []string {
		var out []string
		for _, cl := range tl.Clips() {
			out = append(out, cl.ID)
		}
		return out
	}

	want := []string{a.ID, b.ID, c.ID}
	for i, id := range ids() {
		if id != want[i] {
			t.Fatalf("After insert: position %d expected %s, got %s", i, want[i], id)
		}
	}

	if !tl.RemoveByID(b.ID) {
		t.Fatal("RemoveByID failed for existing clip")
	}
	if tl.RemoveByID("nope") {
		t.Error("RemoveByID should be a no-op for unknown ID")
	}
	if tl.Len() != 2 {
		t.Fatalf("Expected 2 clips, got %d", tl.Len())
	}

	// Out-of-range move clamps.
	tl.Move(a.ID, 99)
	if tl.Clips()[1].ID != a.ID {
		t.Errorf("Move with large index should clamp to the end")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	tl := New(testLibrary(nil))
	c := NewClip()
	c.Subtitle = "original"
	tl.Append(c)

	snap := tl.Snapshot()

	// Mutating the live timeline must not leak into the snapshot.
	c.Subtitle = "edited"
	tl.Append(NewClip())

	if snap.Len() != 1 {
		t.Errorf("Snapshot length changed: %d", snap.Len())
	}
	if snap.Clips()[0].Subtitle != "original" {
		t.Errorf("Snapshot clip mutated: %q", snap.Clips()[0].Subtitle)
	}
}
