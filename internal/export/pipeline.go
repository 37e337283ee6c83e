package export

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ivlev/shorts2video/internal/audio"
	"github.com/ivlev/shorts2video/internal/compositor"
	"github.com/ivlev/shorts2video/internal/config"
	"github.com/ivlev/shorts2video/internal/system"
	"github.com/ivlev/shorts2video/internal/template"
	"github.com/ivlev/shorts2video/internal/timeline"
	"github.com/ivlev/shorts2video/internal/video"
)

// Progress вызывается минимум раз на кадр и на каждой смене фазы.
type Progress func(fraction float64, message string)

// Pipeline — детерминированный двухфазный экспорт: сначала аудиодорожка,
// затем покадровый рендеринг, в конце мультиплексирование в один контейнер.
// Работает над снимком таймлайна и настроек: правки в редакторе после
// старта на результат не влияют.
type Pipeline struct {
	Timeline *timeline.Timeline
	Settings *template.Settings
	Config   *config.Config
	Encoder  video.FrameEncoder
	Progress Progress

	log     *logrus.Logger
	tempDir string
}

func NewPipeline(tl *timeline.Timeline, s *template.Settings, cfg *config.Config, enc video.FrameEncoder, progress Progress) *Pipeline {
	if progress == nil {
		progress = func(float64, string) {}
	}
	if enc == nil {
		enc = &video.FFmpegEncoder{}
	}
	return &Pipeline{
		Timeline: tl.Snapshot(),
		Settings: s.Clone(),
		Config:   cfg,
		Encoder:  enc,
		Progress: progress,
		log:      logrus.StandardLogger(),
	}
}

// Run выполняет экспорт и возвращает путь к готовому файлу. Любая ошибка
// на любой стадии отменяет весь экспорт: частичный результат не публикуется.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	startTime := time.Now()

	// Проверка окружения до начала работы
	if err := system.CheckFFmpeg(p.Config.FFmpegPath); err != nil {
		return "", err
	}
	if p.Timeline.Len() == 0 {
		return "", fmt.Errorf("таймлайн пуст: нечего экспортировать")
	}

	encoderName := p.Config.VideoEncoder
	if encoderName == "" {
		encoderName = system.GetBestH264Encoder(p.Config.FFmpegPath)
	}

	var err error
	p.tempDir, err = os.MkdirTemp("", "shorts2video_")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(p.tempDir)

	totalDuration := p.Timeline.TotalDuration()
	totalFrames := TotalFrames(totalDuration, p.Config.FPS)

	fmt.Println("--- [EXPORT] ---")
	fmt.Printf("[*] Клипов: %d | Длительность: %.2fs | Кадров: %d\n", p.Timeline.Len(), totalDuration, totalFrames)
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Кодек: %s\n", p.Config.Width, p.Config.Height, p.Config.FPS, encoderName)

	// Фаза 1: аудио
	p.Progress(0, "кодирование аудиодорожки")
	audioStart := time.Now()
	audioPath, err := p.assembleAudio(ctx)
	if err != nil {
		return "", fmt.Errorf("ошибка аудиофазы: %w", err)
	}
	audioTime := time.Since(audioStart)

	// Фаза 2: видео
	p.Progress(0, "рендеринг кадров")
	system.WarnIfLowMemory()
	videoStart := time.Now()
	videoPath := filepath.Join(p.tempDir, "video.mp4")

	params := config.ExportParams{
		Width:         p.Config.Width,
		Height:        p.Config.Height,
		FPS:           p.Config.FPS,
		TotalDuration: totalDuration,
		VideoEncoder:  encoderName,
		Quality:       p.Config.Quality,
		FFmpegPath:    p.Config.FFmpegPath,
	}
	if err := p.renderFrames(ctx, params, videoPath, totalFrames); err != nil {
		return "", fmt.Errorf("ошибка видеофазы: %w", err)
	}
	videoTime := time.Since(videoStart)

	// Финализация: мультиплексирование и атомарная публикация результата
	p.Progress(1, "мультиплексирование")
	partPath := p.Config.OutputVideo + ".part"
	if err := video.Mux(ctx, p.Config.FFmpegPath, videoPath, audioPath, partPath); err != nil {
		os.Remove(partPath)
		return "", fmt.Errorf("ошибка сборки финального видео: %w", err)
	}
	if err := os.Rename(partPath, p.Config.OutputVideo); err != nil {
		os.Remove(partPath)
		return "", err
	}
	p.Progress(1, "готово")

	if p.Config.ShowStats {
		totalTime := time.Since(startTime)
		fmt.Printf(
			"--- [PERFORMANCE REPORT] ---\n"+
				"Total Time: %.2fs\n"+
				"Audio Phase: %.2fs\n"+
				"Video Phase: %.2fs\n"+
				"Effective FPS: %.2f\n"+
				"----------------------------\n",
			totalTime.Seconds(), audioTime.Seconds(), videoTime.Seconds(),
			float64(totalFrames)/totalTime.Seconds(),
		)
	}

	return p.Config.OutputVideo, nil
}

// TotalFrames вычисляет число кадров сетки экспорта.
func TotalFrames(totalDuration float64, fps int) int {
	return int(math.Ceil(totalDuration * float64(fps)))
}

// assembleAudio декодирует аудио всех клипов в одну непрерывную дорожку.
// Начало аудио каждого клипа — кумулятивная сумма фактических
// декодированных длительностей предыдущих: заявленная длительность может
// расходиться с реальным числом сэмплов, и копить этот дрейф нельзя.
// Клипы без аудио получают синтезированную тишину на свою эффективную
// длительность, чтобы аудио и видео шли по одним часам.
func (p *Pipeline) assembleAudio(ctx context.Context) (string, error) {
	rate := config.AudioSampleRate
	lib := p.Timeline.Library()

	track := audio.Track{SampleRate: rate}
	hasAudio := false

	for i, clip := range p.Timeline.Clips() {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		var m = lib.Get(clip.AudioID)
		if clip.AudioID == "" || m == nil {
			// Висячая ссылка эквивалентна отсутствию аудио.
			track.Samples = append(track.Samples, audio.Silence(p.Timeline.EffectiveDuration(clip), rate).Samples...)
			continue
		}

		decoded, err := audio.Decode(ctx, m.Path, rate, p.Config.FFmpegPath)
		if err != nil {
			return "", fmt.Errorf("клип %d (%s): %w", i+1, m.Path, err)
		}
		track.Samples = append(track.Samples, decoded.Samples...)
		hasAudio = true

		p.log.WithFields(logrus.Fields{
			"clip":     i + 1,
			"declared": m.DurationSeconds,
			"decoded":  decoded.Duration(),
		}).Debug("audio segment appended")
	}

	if !hasAudio {
		// Ни одного аудиоклипа — контейнер собирается без звуковой дорожки.
		return "", nil
	}

	audioPath := filepath.Join(p.tempDir, "audio.wav")
	if err := audio.WriteWAV(audioPath, track); err != nil {
		return "", err
	}
	return audioPath, nil
}

// renderFrames рендерит кадры по фиксированной сетке: currentTime = i/fps,
// pts = i*1e6/fps. Кадр после кодирования сразу возвращается в пул.
func (p *Pipeline) renderFrames(ctx context.Context, params config.ExportParams, videoPath string, totalFrames int) error {
	if err := p.Encoder.Start(ctx, params, videoPath); err != nil {
		return err
	}

	rect := image.Rect(0, 0, params.Width, params.Height)
	for i := 0; i < totalFrames; i++ {
		// Точка кооперативной отмены — раз на кадр.
		if err := ctx.Err(); err != nil {
			p.Encoder.Close()
			return err
		}

		currentTime := float64(i) / float64(params.FPS)

		frame := system.GetImage(rect)
		compositor.RenderFrame(frame, p.Timeline, p.Settings, currentTime)
		err := p.Encoder.EncodeFrame(frame, video.FramePTS(i, params.FPS))
		system.PutImage(frame)
		if err != nil {
			p.Encoder.Close()
			return err
		}

		p.Progress(float64(i+1)/float64(totalFrames), fmt.Sprintf("кадр %d/%d", i+1, totalFrames))
	}

	return p.Encoder.Close()
}
