package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Width != 720 || cfg.Height != 1280 {
		t.Errorf("Default должен быть вертикальным 720x1280, получено %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS != 30 || cfg.FFmpegPath != "ffmpeg" {
		t.Errorf("Неверные значения по умолчанию: %+v", cfg)
	}
}

func TestApplyPreset(t *testing.T) {
	cases := []struct {
		preset string
		w, h   int
	}{
		{"16:9", 1280, 720},
		{"9:16", 720, 1280},
		{"4:5", 1080, 1350},
	}
	for _, c := range cases {
		cfg := Default()
		cfg.ApplyPreset(c.preset)
		if cfg.Width != c.w || cfg.Height != c.h {
			t.Errorf("%s: ожидалось %dx%d, получено %dx%d", c.preset, c.w, c.h, cfg.Width, cfg.Height)
		}
	}

	// Неизвестный пресет не трогает размеры.
	cfg := Default()
	cfg.ApplyPreset("21:9")
	if cfg.Width != 720 || cfg.Height != 1280 {
		t.Errorf("Неизвестный пресет изменил размеры: %dx%d", cfg.Width, cfg.Height)
	}
}

func TestLoadClampsInvalidFPS(t *testing.T) {
	for _, fps := range []int{0, -5} {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(fmt.Sprintf("fps = %d\n", fps)), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.FPS != 30 {
			t.Errorf("fps=%d из файла должен откатываться к 30, получено %d", fps, cfg.FPS)
		}
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no_such.toml"))
	if err != nil {
		t.Fatalf("Отсутствующий файл не должен быть ошибкой: %v", err)
	}
	if cfg.FPS != 30 {
		t.Errorf("Ожидались значения по умолчанию, получено %+v", cfg)
	}
}
