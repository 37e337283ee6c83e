// Package session ties one editing session together: the asset library, the
// timeline, the template settings and the optional preview driver. There is
// no ambient state; every session is an explicit value, so two projects can
// be open side by side and tests construct sessions freely.
package session

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ivlev/shorts2video/internal/asset"
	"github.com/ivlev/shorts2video/internal/config"
	"github.com/ivlev/shorts2video/internal/export"
	"github.com/ivlev/shorts2video/internal/preview"
	"github.com/ivlev/shorts2video/internal/project"
	"github.com/ivlev/shorts2video/internal/template"
	"github.com/ivlev/shorts2video/internal/timeline"
)

// Session is one open project.
type Session struct {
	Timeline *timeline.Timeline
	Settings *template.Settings
	Config   *config.Config

	path string
	log  *logrus.Logger
}

// New creates an empty session on the default template.
func New(cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	lib := asset.NewLibrary(nil)
	return &Session{
		Timeline: timeline.New(lib),
		Settings: template.DefaultSettings(template.ClassicDark),
		Config:   cfg,
		log:      logrus.New(),
	}
}

// Open loads a session from a project file.
func Open(path string, cfg *config.Config) (*Session, error) {
	s := New(cfg)
	if err := s.loadFrom(path); err != nil {
		return nil, err
	}
	s.path = path
	return s, nil
}

// Path returns the project file backing this session, "" for unsaved ones.
func (s *Session) Path() string { return s.path }

// Save writes the session back to its project file.
func (s *Session) Save() error {
	if s.path == "" {
		return fmt.Errorf("сессия не привязана к файлу проекта, используйте SaveAs")
	}
	return project.Save(s.path, s.Timeline, s.Settings)
}

// SaveAs writes the session to a new project file and rebinds the session to
// it.
func (s *Session) SaveAs(path string) error {
	if err := project.Save(path, s.Timeline, s.Settings); err != nil {
		return err
	}
	s.path = path
	return nil
}

// Reload re-reads the project file, replacing the timeline and settings.
// Used by the watch mode when the file changes on disk.
func (s *Session) Reload() error {
	if s.path == "" {
		return fmt.Errorf("нечего перечитывать: сессия без файла проекта")
	}
	return s.loadFrom(s.path)
}

func (s *Session) loadFrom(path string) error {
	tl, settings, err := project.Load(path)
	if err != nil {
		return err
	}
	s.Timeline = tl
	s.Settings = settings
	return nil
}

// ImportScript replaces the session content with clips built from a text
// script and a set of image files.
func (s *Session) ImportScript(script string, imagePaths []string) {
	s.Timeline, s.Settings = project.FromScript(script, imagePaths)
}

// AddAsset registers a media file, inferring its kind from the extension.
func (s *Session) AddAsset(path string) (*asset.Media, error) {
	lib := s.Timeline.Library()
	switch {
	case asset.IsImagePath(path):
		return lib.Add(asset.KindImage, path), nil
	case asset.IsAudioPath(path):
		return lib.Add(asset.KindAudio, path), nil
	}
	return nil, fmt.Errorf("неизвестный тип файла: %s", path)
}

// ProbeAssets resolves durations and titles for unprobed audio assets.
func (s *Session) ProbeAssets(ctx context.Context) {
	if lib := s.Timeline.Library(); lib != nil {
		lib.ProbeAll(ctx)
	}
}

// ApplyTemplate switches the active template, resetting its style to the
// preset defaults.
func (s *Session) ApplyTemplate(id template.TemplateID) {
	s.Settings.ApplyTemplate(id)
}

// NewPreview creates a preview driver over this session's timeline.
func (s *Session) NewPreview(width, height int, sink preview.FrameSink) *preview.Driver {
	return preview.NewDriver(s.Timeline, s.Settings, width, height, sink)
}

// Export runs the two-phase export pipeline on a snapshot of the session and
// returns the final video path. The session stays editable while the export
// runs.
func (s *Session) Export(ctx context.Context, progress export.Progress) (string, error) {
	p := export.NewPipeline(s.Timeline, s.Settings, s.Config, nil, progress)
	return p.Run(ctx)
}
