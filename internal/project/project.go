// Package project persists an editing session as a YAML file and loads it
// back. The file carries the asset bin, the ordered clip list and the active
// template settings; probed audio durations are saved too so a reopened
// project has correct clip lengths before re-probing finishes.
package project

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/shorts2video/internal/asset"
	"github.com/ivlev/shorts2video/internal/template"
	"github.com/ivlev/shorts2video/internal/timeline"
)

// Document is the on-disk shape of a project file.
type Document struct {
	Version  string             `yaml:"version"`
	Settings *template.Settings `yaml:"settings"`
	Assets   []AssetEntry       `yaml:"assets"`
	Clips    []ClipEntry        `yaml:"clips"`
}

type AssetEntry struct {
	ID       string  `yaml:"id"`
	Kind     string  `yaml:"kind"`
	Path     string  `yaml:"path"`
	Title    string  `yaml:"title,omitempty"`
	Duration float64 `yaml:"duration,omitempty"`
}

type ClipEntry struct {
	ID         string `yaml:"id"`
	Background string `yaml:"background"`
	Image      string `yaml:"image,omitempty"`
	Color      string `yaml:"color,omitempty"`
	Audio      string `yaml:"audio,omitempty"`
	Subtitle   string `yaml:"subtitle,omitempty"`
}

const currentVersion = "1"

// Save writes the session to path. The write is not atomic; project files are
// small and rewritten often, and the preview watcher debounces partial writes.
func Save(path string, tl *timeline.Timeline, s *template.Settings) error {
	doc := Document{
		Version:  currentVersion,
		Settings: s,
	}

	if lib := tl.Library(); lib != nil {
		for _, m := range lib.List() {
			doc.Assets = append(doc.Assets, AssetEntry{
				ID:       m.ID,
				Kind:     string(m.Kind),
				Path:     m.Path,
				Title:    m.Title,
				Duration: m.DurationSeconds,
			})
		}
	}

	for _, c := range tl.Clips() {
		doc.Clips = append(doc.Clips, ClipEntry{
			ID:         c.ID,
			Background: string(c.Background),
			Image:      c.ImageID,
			Color:      c.Color,
			Audio:      c.AudioID,
			Subtitle:   c.Subtitle,
		})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project file and rebuilds the session. Asset IDs from the file
// are kept verbatim so clip references stay valid; clips referencing assets
// that were removed from the file simply dangle, which rendering tolerates.
func Load(path string) (*timeline.Timeline, *template.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("project %s: %w", path, err)
	}

	lib := asset.NewLibrary(nil)
	for _, a := range doc.Assets {
		lib.Put(&asset.Media{
			ID:              a.ID,
			Kind:            asset.Kind(a.Kind),
			Path:            a.Path,
			Title:           a.Title,
			DurationSeconds: a.Duration,
		})
	}

	tl := timeline.New(lib)
	for _, e := range doc.Clips {
		c := timeline.NewClip()
		if e.ID != "" {
			c.ID = e.ID
		}
		if e.Background == string(timeline.BackgroundImage) {
			c.Background = timeline.BackgroundImage
		}
		if e.Image != "" {
			c.ImageID = e.Image
		}
		if e.Color != "" {
			c.Color = e.Color
		}
		c.AudioID = e.Audio
		c.Subtitle = e.Subtitle
		tl.Append(c)
	}

	settings := normalizeSettings(doc.Settings)
	return tl, settings, nil
}

// normalizeSettings repairs a loaded settings block: hand-edited files may
// name a template without its style section or carry stale sections from a
// previous template. The invariant that exactly the active variant is set is
// restored here, defaulting missing values from the template presets.
func normalizeSettings(s *template.Settings) *template.Settings {
	if s == nil {
		return template.DefaultSettings(template.ClassicDark)
	}
	if s.AspectRatio == "" {
		s.AspectRatio = "9:16"
	}

	var loadedClassic *template.ClassicDarkStyle
	var loadedMobi *template.MobiLightStyle
	var loadedExam *template.ExamKoreanStyle
	loadedClassic, loadedMobi, loadedExam = s.ClassicDark, s.MobiLight, s.ExamKorean

	s.ApplyTemplate(s.Template)
	switch {
	case s.ClassicDark != nil && loadedClassic != nil:
		s.ClassicDark = loadedClassic
	case s.MobiLight != nil && loadedMobi != nil:
		s.MobiLight = loadedMobi
	case s.ExamKorean != nil && loadedExam != nil:
		s.ExamKorean = loadedExam
	}
	return s
}

// FromScript builds a fresh session from a plain text script and a list of
// image files: one clip per non-empty script line, images assigned round-robin
// as backgrounds. Lines keep their inline color and opacity tags as-is.
func FromScript(script string, imagePaths []string) (*timeline.Timeline, *template.Settings) {
	lib := asset.NewLibrary(nil)
	tl := timeline.New(lib)

	var images []*asset.Media
	for _, p := range imagePaths {
		if asset.IsImagePath(p) {
			images = append(images, lib.Add(asset.KindImage, p))
		}
	}

	i := 0
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c := timeline.NewClip()
		c.Subtitle = line
		if len(images) > 0 {
			c.Background = timeline.BackgroundImage
			c.ImageID = images[i%len(images)].ID
			i++
		}
		tl.Append(c)
	}

	return tl, template.DefaultSettings(template.ClassicDark)
}
