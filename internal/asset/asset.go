package asset

import (
	"image"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Kind string

const (
	KindImage Kind = "image"
	KindAudio Kind = "audio"
)

// Media is one entry of the asset bin. Referenced by clips through its ID and
// never duplicated. DurationSeconds is meaningful for audio only and stays 0
// until probed.
type Media struct {
	ID              string
	Kind            Kind
	Path            string
	PreviewPath     string
	Title           string
	DurationSeconds float64
}

// Library owns all media of an editing session. Removing an entry that is
// still referenced by a clip leaves the reference dangling; consumers treat
// a lookup miss as "no media", not as an error.
type Library struct {
	mu     sync.RWMutex
	order  []string
	items  map[string]*Media
	images map[string]image.Image // decoded image cache, keyed by media ID
	log    *logrus.Logger
}

func NewLibrary(log *logrus.Logger) *Library {
	if log == nil {
		log = logrus.New()
	}
	return &Library{
		items:  make(map[string]*Media),
		images: make(map[string]image.Image),
		log:    log,
	}
}

// Add registers a media file and returns its generated ID.
func (l *Library) Add(kind Kind, path string) *Media {
	m := &Media{
		ID:   uuid.NewString(),
		Kind: kind,
		Path: path,
	}
	l.mu.Lock()
	l.items[m.ID] = m
	l.order = append(l.order, m.ID)
	l.mu.Unlock()
	return m
}

// Put registers a fully populated media record, keeping its ID. Used by the
// project loader so saved references stay valid.
func (l *Library) Put(m *Media) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	l.mu.Lock()
	if _, exists := l.items[m.ID]; !exists {
		l.order = append(l.order, m.ID)
	}
	l.items[m.ID] = m
	l.mu.Unlock()
}

// Get returns nil when the ID is unknown or empty (dangling reference).
func (l *Library) Get(id string) *Media {
	if id == "" {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.items[id]
}

func (l *Library) Remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.items[id]; !ok {
		return
	}
	delete(l.items, id)
	delete(l.images, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// List returns media in insertion order.
func (l *Library) List() []*Media {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Media, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.items[id])
	}
	return out
}

// Image returns the decoded image for a media ID, loading and caching it on
// first use. A dangling reference, a non-image asset or a decode failure all
// yield nil: the renderer skips the draw and the frame stays valid.
func (l *Library) Image(id string) image.Image {
	m := l.Get(id)
	if m == nil || m.Kind != KindImage {
		return nil
	}

	l.mu.RLock()
	img, ok := l.images[id]
	l.mu.RUnlock()
	if ok {
		return img
	}

	img, err := LoadImage(m.Path)
	if err != nil {
		l.log.WithFields(logrus.Fields{
			"id":    id,
			"path":  m.Path,
			"error": err.Error(),
		}).Warn("image decode failed, rendering without background")
		return nil
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		l.log.WithField("path", m.Path).Warn("image has zero dimensions, skipping")
		return nil
	}

	l.mu.Lock()
	l.images[id] = img
	l.mu.Unlock()
	return img
}
