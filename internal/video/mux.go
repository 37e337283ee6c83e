package video

import (
	"context"
	"fmt"
	"os/exec"
)

// muxArgs формирует аргументы финальной сборки. Контейнер задается явно
// через -f: результат публикуется атомарно через временное имя с чужим
// расширением, и по нему ffmpeg формат не определит.
func muxArgs(videoPath, audioPath, finalPath string) []string {
	args := []string{"-y", "-i", videoPath}
	if audioPath != "" {
		args = append(args, "-i", audioPath, "-c:a", "aac", "-b:a", "192k")
	}
	return append(args, "-c:v", "copy", "-f", "mp4", finalPath)
}

// Mux собирает закодированное видео и аудиодорожку в один контейнер.
// Потоки чередуются по меткам времени только здесь: обе фазы экспорта к
// этому моменту полностью завершены.
func Mux(ctx context.Context, ffmpegPath, videoPath, audioPath, finalPath string) error {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, muxArgs(videoPath, audioPath, finalPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg mux error: %v, output: %s", err, string(out))
	}
	return nil
}
