package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultClipDuration — длительность клипа без аудиодорожки (секунды).
const DefaultClipDuration = 5.0

// AudioSampleRate — единая частота дискретизации экспортируемой дорожки.
const AudioSampleRate = 44100

type Config struct {
	ProjectPath  string `toml:"-"`
	OutputVideo  string `toml:"-"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	FPS          int    `toml:"fps"`
	Preset       string `toml:"preset"`
	VideoEncoder string `toml:"video_encoder"`
	Quality      int    `toml:"quality"`
	FFmpegPath   string `toml:"ffmpeg_path"`
	ShowStats    bool   `toml:"show_stats"`
	BuildVersion string `toml:"-"`
}

type ExportParams struct {
	Width, Height int
	FPS           int
	TotalDuration float64
	VideoEncoder  string
	Quality       int
	FFmpegPath    string
}

// Default возвращает конфигурацию с настройками для вертикальных роликов.
func Default() *Config {
	return &Config{
		Width:      720,
		Height:     1280,
		FPS:        30,
		Preset:     "9:16",
		FFmpegPath: "ffmpeg",
		Quality:    23,
	}
}

// Load читает config.toml (если есть) и переменные окружения поверх него.
// Отсутствие файла не является ошибкой: действуют значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	// .env подхватывается молча, как и config.toml
	_ = godotenv.Load()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, err
			}
		}
	}

	if v := os.Getenv("SHORTS2VIDEO_FFMPEG"); v != "" {
		cfg.FFmpegPath = v
	}
	if v := os.Getenv("SHORTS2VIDEO_FPS"); v != "" {
		if fps, err := strconv.Atoi(v); err == nil && fps > 0 {
			cfg.FPS = fps
		}
	}
	if v := os.Getenv("SHORTS2VIDEO_QUALITY"); v != "" {
		if q, err := strconv.Atoi(v); err == nil && q > 0 {
			cfg.Quality = q
		}
	}

	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	// fps из файла мог быть нулевым или отрицательным, а на нем строится
	// вся сетка кадров (pts = i*1e6/fps).
	if cfg.FPS <= 0 {
		cfg.FPS = Default().FPS
	}

	return cfg, nil
}

// ApplyPreset выставляет размеры кадра по формату ролика.
func (c *Config) ApplyPreset(preset string) {
	switch preset {
	case "16:9":
		c.Width, c.Height = 1280, 720
	case "9:16":
		c.Width, c.Height = 720, 1280
	case "4:5":
		c.Width, c.Height = 1080, 1350
	}
	c.Preset = preset
}
