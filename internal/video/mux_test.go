package video

import (
	"strings"
	"testing"
)

func TestMuxArgsWithAudio(t *testing.T) {
	args := muxArgs("tmp/video.mp4", "tmp/audio.wav", "out.mp4.part")

	want := []string{
		"-y", "-i", "tmp/video.mp4",
		"-i", "tmp/audio.wav", "-c:a", "aac", "-b:a", "192k",
		"-c:v", "copy", "-f", "mp4", "out.mp4.part",
	}
	if len(args) != len(want) {
		t.Fatalf("Ожидалось %d аргументов, получено %d: %v", len(want), len(args), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("Аргумент %d: ожидалось %q, получено %q", i, want[i], args[i])
		}
	}
}

func TestMuxArgsWithoutAudio(t *testing.T) {
	args := muxArgs("tmp/video.mp4", "", "out.mp4.part")

	joined := strings.Join(args, " ")
	if strings.Contains(joined, "aac") || strings.Contains(joined, "audio") {
		t.Errorf("Без аудио не должно быть аудиопотока: %v", args)
	}
	if args[len(args)-1] != "out.mp4.part" {
		t.Errorf("Выходной путь должен быть последним аргументом: %v", args)
	}
}

// Формат контейнера должен задаваться явно: выходное имя на момент сборки
// оканчивается на .part, и определение формата по расширению невозможно.
func TestMuxArgsForceContainerFormat(t *testing.T) {
	for _, audio := range []string{"tmp/audio.wav", ""} {
		args := muxArgs("tmp/video.mp4", audio, "result.mp4.part")
		found := false
		for i := 0; i < len(args)-1; i++ {
			if args[i] == "-f" && args[i+1] == "mp4" {
				found = true
			}
		}
		if !found {
			t.Errorf("Отсутствует явный -f mp4 (audio=%q): %v", audio, args)
		}
	}
}
