package preview

import (
	"image"

	"github.com/ivlev/shorts2video/internal/asset"
	"github.com/ivlev/shorts2video/internal/compositor"
	"github.com/ivlev/shorts2video/internal/template"
	"github.com/ivlev/shorts2video/internal/timeline"
)

type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return "stopped"
}

// FrameSink receives every repainted preview frame. The raster is owned by
// the driver and valid until the next repaint.
type FrameSink func(frame *image.RGBA, t float64)

// Driver runs the interactive preview. It owns no scheduler: the host calls
// Tick with the wall-clock delta of its display loop, which makes playback
// testable with synthetic deltas. Frames go through the same compositor as
// the export pipeline; only the driving loop differs.
type Driver struct {
	tl       *timeline.Timeline
	settings *template.Settings
	frame    *image.RGBA
	sink     FrameSink

	state        State
	playbackTime float64
}

func NewDriver(tl *timeline.Timeline, s *template.Settings, width, height int, sink FrameSink) *Driver {
	if sink == nil {
		sink = func(*image.RGBA, float64) {}
	}
	return &Driver{
		tl:       tl,
		settings: s,
		frame:    image.NewRGBA(image.Rect(0, 0, width, height)),
		sink:     sink,
	}
}

func (d *Driver) State() State          { return d.state }
func (d *Driver) PlaybackTime() float64 { return d.playbackTime }

// Play starts or resumes playback. Starting from Stopped begins at the
// current position (Stop rewinds, Pause does not).
func (d *Driver) Play() {
	d.state = Playing
}

func (d *Driver) Pause() {
	if d.state == Playing {
		d.state = Paused
	}
}

// Stop halts playback and rewinds to the beginning.
func (d *Driver) Stop() {
	d.state = Stopped
	d.playbackTime = 0
	d.repaint()
}

// Seek jumps to a position and repaints immediately, independent of the
// tick loop. The position clamps to the timeline bounds.
func (d *Driver) Seek(t float64) {
	if t < 0 {
		t = 0
	}
	if total := d.tl.TotalDuration(); t > total {
		t = total
	}
	d.playbackTime = t
	d.repaint()
}

// Tick advances playback by the elapsed wall-clock delta and repaints.
// Reaching the end clamps to the total duration and stops. Ticks while not
// playing still repaint so live edits show up immediately.
func (d *Driver) Tick(deltaSeconds float64) {
	if d.state == Playing && deltaSeconds > 0 {
		d.playbackTime += deltaSeconds
		if total := d.tl.TotalDuration(); d.playbackTime >= total {
			d.playbackTime = total
			d.state = Stopped
		}
	}
	d.repaint()
}

// ActiveAudio reports which audio asset covers the current position and the
// offset inside it, for best-effort playback by the host. Preview audio is
// deliberately not sample-accurate; the export pipeline is.
func (d *Driver) ActiveAudio() (*asset.Media, float64) {
	clip, offset := d.tl.ActiveClipAt(d.playbackTime)
	if clip == nil || clip.AudioID == "" {
		return nil, 0
	}
	lib := d.tl.Library()
	if lib == nil {
		return nil, 0
	}
	return lib.Get(clip.AudioID), offset
}

// Frame exposes the last painted raster, e.g. for writing a still to disk.
func (d *Driver) Frame() *image.RGBA { return d.frame }

func (d *Driver) repaint() {
	compositor.RenderFrame(d.frame, d.tl, d.settings, d.playbackTime)
	d.sink(d.frame, d.playbackTime)
}
