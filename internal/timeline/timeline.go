package timeline

import (
	"github.com/google/uuid"

	"github.com/ivlev/shorts2video/internal/asset"
	"github.com/ivlev/shorts2video/internal/config"
)

type BackgroundKind string

const (
	BackgroundImage BackgroundKind = "image"
	BackgroundColor BackgroundKind = "color"
)

// Clip is one timeline unit: a background (image asset or flat color), an
// optional audio asset and an optional styled subtitle. Asset fields hold
// library IDs and may dangle; rendering treats a dangling reference as "no
// background".
type Clip struct {
	ID         string
	Background BackgroundKind
	ImageID    string
	Color      string // RGB hex, used when Background == BackgroundColor
	AudioID    string
	Subtitle   string
}

func NewClip() *Clip {
	return &Clip{
		ID:         uuid.NewString(),
		Background: BackgroundColor,
		Color:      "#000000",
	}
}

// Timeline is the ordered, mutable clip sequence of an editing session. All
// operations are synchronous and immediately consistent; derived values such
// as the total duration are recomputed on demand because audio metadata can
// resolve after a clip was inserted.
type Timeline struct {
	clips []*Clip
	lib   *asset.Library
}

func New(lib *asset.Library) *Timeline {
	return &Timeline{lib: lib}
}

func (t *Timeline) Len() int { return len(t.clips) }

// Clips returns the backing slice; callers must not reorder it directly.
func (t *Timeline) Clips() []*Clip { return t.clips }

// Append adds a clip at the end of the sequence.
func (t *Timeline) Append(c *Clip) {
	t.clips = append(t.clips, c)
}

// Insert places a clip at the given index; out-of-range indexes clamp to the
// nearest valid position.
func (t *Timeline) Insert(index int, c *Clip) {
	if index < 0 {
		index = 0
	}
	if index >= len(t.clips) {
		t.clips = append(t.clips, c)
		return
	}
	t.clips = append(t.clips[:index], append([]*Clip{c}, t.clips[index:]...)...)
}

// RemoveByID deletes a clip; removing an unknown ID is a no-op.
func (t *Timeline) RemoveByID(id string) bool {
	for i, c := range t.clips {
		if c.ID == id {
			t.clips = append(t.clips[:i], t.clips[i+1:]...)
			return true
		}
	}
	return false
}

// Move relocates the clip with the given ID to a new index, preserving the
// identity and relative order of all other clips.
func (t *Timeline) Move(id string, to int) bool {
	from := t.indexOf(id)
	if from < 0 {
		return false
	}
	if to < 0 {
		to = 0
	}
	if to >= len(t.clips) {
		to = len(t.clips) - 1
	}
	if from == to {
		return true
	}

	c := t.clips[from]
	t.clips = append(t.clips[:from], t.clips[from+1:]...)
	t.clips = append(t.clips[:to], append([]*Clip{c}, t.clips[to:]...)...)
	return true
}

func (t *Timeline) Get(id string) *Clip {
	i := t.indexOf(id)
	if i < 0 {
		return nil
	}
	return t.clips[i]
}

func (t *Timeline) indexOf(id string) int {
	for i, c := range t.clips {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// EffectiveDuration is the clip's audio length when an audio asset is
// attached and probed, the default clip duration otherwise.
func (t *Timeline) EffectiveDuration(c *Clip) float64 {
	if c.AudioID != "" && t.lib != nil {
		if m := t.lib.Get(c.AudioID); m != nil && m.DurationSeconds > 0 {
			return m.DurationSeconds
		}
	}
	return config.DefaultClipDuration
}

// TotalDuration is the sum of effective clip durations, recomputed in O(n)
// on every call.
func (t *Timeline) TotalDuration() float64 {
	total := 0.0
	for _, c := range t.clips {
		total += t.EffectiveDuration(c)
	}
	return total
}

// ActiveClipAt resolves which clip covers the given time offset together
// with the offset inside that clip. Times past the end clamp to the last
// clip; an empty timeline yields nil.
func (t *Timeline) ActiveClipAt(offset float64) (*Clip, float64) {
	if len(t.clips) == 0 {
		return nil, 0
	}
	if offset < 0 {
		offset = 0
	}

	acc := 0.0
	for _, c := range t.clips {
		d := t.EffectiveDuration(c)
		if offset < acc+d {
			return c, offset - acc
		}
		acc += d
	}

	last := t.clips[len(t.clips)-1]
	return last, t.EffectiveDuration(last)
}

// Snapshot deep-copies the clip sequence so an in-flight export is isolated
// from later edits of the live timeline. The asset library is shared: media
// buffers are read-only.
func (t *Timeline) Snapshot() *Timeline {
	clips := make([]*Clip, len(t.clips))
	for i, c := range t.clips {
		cc := *c
		clips[i] = &cc
	}
	return &Timeline{clips: clips, lib: t.lib}
}

// Library exposes the asset library backing this timeline.
func (t *Timeline) Library() *asset.Library { return t.lib }
