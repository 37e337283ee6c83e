package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/shorts2video/internal/asset"
	"github.com/ivlev/shorts2video/internal/template"
	"github.com/ivlev/shorts2video/internal/timeline"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	lib := asset.NewLibrary(nil)
	img := lib.Add(asset.KindImage, "input/images/cover.png")
	snd := lib.Add(asset.KindAudio, "input/audio/voice.mp3")
	snd.DurationSeconds = 7.5
	snd.Title = "Voice take 3"

	tl := timeline.New(lib)
	c := timeline.NewClip()
	c.Background = timeline.BackgroundImage
	c.ImageID = img.ID
	c.AudioID = snd.ID
	c.Subtitle = "Hello [red]world[/red]"
	tl.Append(c)
	tl.Append(timeline.NewClip())

	s := template.DefaultSettings(template.MobiLight)
	s.MobiLight.CTAText = "Custom CTA"

	path := filepath.Join(t.TempDir(), "p.yaml")
	if err := Save(path, tl, s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	tl2, s2, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if tl2.Len() != 2 {
		t.Fatalf("Expected 2 clips, got %d", tl2.Len())
	}
	got := tl2.Clips()[0]
	if got.ID != c.ID || got.ImageID != img.ID || got.AudioID != snd.ID {
		t.Errorf("Clip references changed across round trip: %+v", got)
	}
	if got.Subtitle != c.Subtitle {
		t.Errorf("Subtitle tags must survive verbatim, got %q", got.Subtitle)
	}

	m := tl2.Library().Get(snd.ID)
	if m == nil || m.DurationSeconds != 7.5 || m.Title != "Voice take 3" {
		t.Errorf("Audio metadata lost: %+v", m)
	}

	if s2.Template != template.MobiLight || s2.MobiLight == nil {
		t.Fatalf("Settings template lost: %+v", s2)
	}
	if s2.MobiLight.CTAText != "Custom CTA" {
		t.Errorf("Customized style field lost, got %q", s2.MobiLight.CTAText)
	}
	if s2.ClassicDark != nil || s2.ExamKorean != nil {
		t.Error("Inactive style variants must stay nil after load")
	}
}

func TestLoadRepairsSettings(t *testing.T) {
	// Hand-edited file: template named but no style section.
	raw := "version: \"1\"\nsettings:\n  template: exam-korean\nclips:\n  - background: color\n    color: \"#112233\"\n"
	path := filepath.Join(t.TempDir(), "edited.yaml")
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	tl, s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Template != template.ExamKorean || s.ExamKorean == nil {
		t.Fatalf("Missing style section must be filled from defaults: %+v", s)
	}
	if s.ExamKorean.SubjectText == "" {
		t.Error("Defaulted style should carry preset values")
	}
	if s.AspectRatio != "9:16" {
		t.Errorf("Missing aspect ratio should default to 9:16, got %q", s.AspectRatio)
	}
	if tl.Len() != 1 || tl.Clips()[0].Color != "#112233" {
		t.Errorf("Clip not loaded: %+v", tl.Clips())
	}
}

func TestLoadNilSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.yaml")
	if err := os.WriteFile(path, []byte("version: \"1\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tl, s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s == nil || s.Template != template.ClassicDark || s.ClassicDark == nil {
		t.Errorf("Empty project should get default settings, got %+v", s)
	}
	if tl.Len() != 0 {
		t.Errorf("Empty project should have no clips, got %d", tl.Len())
	}
}

func TestFromScript(t *testing.T) {
	script := "First line\n\n  Second [blue]line[/blue]  \nThird\n"
	tl, s := FromScript(script, []string{"a.png", "notes.txt", "b.jpg"})

	if tl.Len() != 3 {
		t.Fatalf("Expected 3 clips from 3 non-empty lines, got %d", tl.Len())
	}
	if s.Template != template.ClassicDark {
		t.Errorf("Script import should start on the default template")
	}

	clips := tl.Clips()
	if clips[1].Subtitle != "Second [blue]line[/blue]" {
		t.Errorf("Line not trimmed correctly: %q", clips[1].Subtitle)
	}

	// Two usable images over three clips: round-robin wraps.
	if clips[0].ImageID == "" || clips[1].ImageID == "" || clips[2].ImageID == "" {
		t.Fatal("All clips should get an image background")
	}
	if clips[0].ImageID != clips[2].ImageID {
		t.Errorf("Round-robin should reuse the first image for the third clip")
	}
	if clips[0].ImageID == clips[1].ImageID {
		t.Errorf("Adjacent clips should get different images when available")
	}

	for _, c := range clips {
		if c.Background != timeline.BackgroundImage {
			t.Errorf("Clip %s should have image background", c.ID)
		}
	}
}

func TestFromScriptNoImages(t *testing.T) {
	tl, _ := FromScript("solo line", nil)
	if tl.Len() != 1 {
		t.Fatalf("Expected 1 clip, got %d", tl.Len())
	}
	c := tl.Clips()[0]
	if c.Background != timeline.BackgroundColor || c.ImageID != "" {
		t.Errorf("Without images the clip should keep the color background: %+v", c)
	}
}
