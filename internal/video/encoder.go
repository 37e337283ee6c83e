package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"

	"github.com/ivlev/shorts2video/internal/config"
)

// FramePTS возвращает презентационную метку кадра в микросекундах.
// Политика округления фиксирована: целочисленное деление с усечением,
// при 30 fps — 0, 33333, 66666, ...
func FramePTS(index, fps int) int64 {
	return int64(index) * 1_000_000 / int64(fps)
}

// FrameEncoder принимает кадры строго в порядке возрастания меток времени
// и отдает готовый видеопоток без звука.
type FrameEncoder interface {
	Start(ctx context.Context, params config.ExportParams, outPath string) error
	EncodeFrame(img *image.RGBA, ptsMicros int64) error
	Close() error
}

// FFmpegEncoder кормит ffmpeg сырыми RGBA-кадрами через stdin — без
// промежуточного I/O на диск.
type FFmpegEncoder struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	output  bytes.Buffer
	lastPTS int64
	started bool
}

func (e *FFmpegEncoder) Start(ctx context.Context, params config.ExportParams, outPath string) error {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
		"-an",
		"-pix_fmt", "yuv420p",
		"-c:v", params.VideoEncoder,
	}
	args = append(args, qualityArgs(params.VideoEncoder, params.Quality)...)
	args = append(args, outPath)

	ffmpeg := params.FFmpegPath
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}

	e.cmd = exec.CommandContext(ctx, ffmpeg, args...)
	e.cmd.Stdout = &e.output
	e.cmd.Stderr = &e.output

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}
	e.started = true
	e.lastPTS = -1
	return nil
}

// EncodeFrame пишет один кадр. Метки должны строго возрастать: нарушение
// порядка — ошибка программирования пайплайна, а не данных.
func (e *FFmpegEncoder) EncodeFrame(img *image.RGBA, ptsMicros int64) error {
	if !e.started {
		return fmt.Errorf("encoder not started")
	}
	if ptsMicros <= e.lastPTS {
		return fmt.Errorf("non-monotonic pts: %d after %d", ptsMicros, e.lastPTS)
	}
	e.lastPTS = ptsMicros

	if err := writeRawRGBA(e.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	return nil
}

func (e *FFmpegEncoder) Close() error {
	if !e.started {
		return nil
	}
	e.started = false
	e.stdin.Close()
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, e.output.String())
	}
	return nil
}

func qualityArgs(encoderName string, quality int) []string {
	switch encoderName {
	case "h264_videotoolbox":
		// VideoToolbox часто не поддерживает -q:v напрямую. Используем битрейт.
		bitrate := quality * 100 // кбит/с. 75 -> 7.5Мбит/с
		return []string{"-b:v", fmt.Sprintf("%dk", bitrate)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	// Проверяем, является ли изображение уже RGBA и имеет ли стандартный шаг (stride)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(bounds)
		draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}
