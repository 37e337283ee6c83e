package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ivlev/shorts2video/internal/config"
	"github.com/ivlev/shorts2video/internal/preview"
	"github.com/ivlev/shorts2video/internal/session"
	"github.com/ivlev/shorts2video/internal/system"
	"github.com/ivlev/shorts2video/internal/template"
)

var version = "dev"

func main() {
	projectPtr := flag.String("project", "", "Путь к файлу проекта (.yaml). По умолчанию берётся свежайший из projects/")
	outputPtr := flag.String("o", "", "Путь к итоговому видео (по умолчанию output/<имя_проекта>_<время>.mp4)")
	configPtr := flag.String("config", "config.toml", "Путь к файлу конфигурации")
	fpsPtr := flag.Int("fps", 0, "Частота кадров экспорта (0 = из конфигурации)")
	presetPtr := flag.String("preset", "", "Формат ролика: 16:9, 9:16 или 4:5")
	templatePtr := flag.String("template", "", "Шаблон оформления: classic-dark, mobi-light или exam-korean")
	scriptPtr := flag.String("script", "", "Импорт: текстовый файл сценария (по клипу на строку)")
	imagesPtr := flag.String("images", "input/images", "Импорт: каталог с фоновыми изображениями")
	framePtr := flag.Float64("frame", -1, "Сохранить один кадр предпросмотра в указанной секунде и выйти")
	watchPtr := flag.Bool("watch", false, "Следить за файлом проекта и перерисовывать кадр при изменениях")
	statsPtr := flag.Bool("stats", false, "Показать отчёт о производительности после экспорта")
	versionPtr := flag.Bool("version", false, "Показать версию и выйти")
	flag.Parse()

	if *versionPtr {
		fmt.Printf("shorts2video %s\n", version)
		return
	}

	system.InitResourceLimits()
	ensureDirs()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}
	cfg.BuildVersion = version
	if *fpsPtr > 0 {
		cfg.FPS = *fpsPtr
	}
	if *presetPtr != "" {
		cfg.ApplyPreset(*presetPtr)
	}
	if *statsPtr {
		cfg.ShowStats = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, projectPath := openSession(cfg, *projectPtr, *scriptPtr, *imagesPtr)
	cfg.ProjectPath = projectPath

	if *templatePtr != "" {
		sess.ApplyTemplate(template.TemplateID(*templatePtr))
	}

	fmt.Printf("[*] Проект: %s (%d клипов, шаблон %s)\n", displayPath(projectPath), sess.Timeline.Len(), sess.Settings.Template)

	fmt.Println("[*] Определяем длительности аудио...")
	sess.ProbeAssets(ctx)
	fmt.Printf("[*] Общая длительность: %.1f c\n", sess.Timeline.TotalDuration())

	if *framePtr >= 0 {
		if err := savePreviewFrame(sess, cfg, *framePtr); err != nil {
			log.Fatalf("[-] Ошибка предпросмотра: %v", err)
		}
		return
	}

	if *watchPtr {
		runWatch(ctx, sess, cfg)
		return
	}

	runExport(ctx, sess, cfg, *outputPtr, projectPath)
}

// ensureDirs создаёт рабочие каталоги, чтобы первый запуск не падал.
func ensureDirs() {
	for _, dir := range []string{"projects", "output", "input/audio", "input/images"} {
		_ = os.MkdirAll(dir, 0755)
	}
}

// openSession открывает проект: явный путь, импорт сценария или свежайший
// файл из projects/. Без проектов и сценария запускаться не с чем.
func openSession(cfg *config.Config, projectPath, scriptPath, imagesDir string) (*session.Session, string) {
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			log.Fatalf("[-] Не удалось прочитать сценарий: %v", err)
		}
		sess := session.New(cfg)
		sess.ImportScript(string(data), listImages(imagesDir))

		if projectPath == "" {
			base := strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))
			projectPath = filepath.Join("projects", base+".yaml")
		}
		if err := sess.SaveAs(projectPath); err != nil {
			log.Fatalf("[-] Не удалось сохранить проект: %v", err)
		}
		fmt.Printf("[+] Сценарий импортирован: %s\n", projectPath)
		return sess, projectPath
	}

	if projectPath == "" {
		latest, err := system.FindLatestProject("projects")
		if err != nil {
			log.Fatalf("[-] Проект не найден: %v\n    Укажите -project или импортируйте сценарий через -script", err)
		}
		projectPath = latest
	}

	sess, err := session.Open(projectPath, cfg)
	if err != nil {
		log.Fatalf("[-] Не удалось открыть проект: %v", err)
	}
	return sess, projectPath
}

func listImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths
}

// savePreviewFrame рендерит один кадр через тот же композитор, что и экспорт,
// и пишет его PNG рядом с выводом.
func savePreviewFrame(sess *session.Session, cfg *config.Config, t float64) error {
	d := sess.NewPreview(cfg.Width, cfg.Height, nil)
	d.Seek(t)

	out := filepath.Join("output", fmt.Sprintf("preview_%05.1fs.png", t))
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, d.Frame()); err != nil {
		return err
	}
	fmt.Printf("[+] Кадр %.1f c сохранён: %s\n", t, out)
	return nil
}

// runWatch перечитывает проект при каждом изменении файла и перерисовывает
// нулевой кадр — дешёвый режим «живого» предпросмотра без GUI.
func runWatch(ctx context.Context, sess *session.Session, cfg *config.Config) {
	repaint := func() {
		if err := sess.Reload(); err != nil {
			fmt.Printf("[-] Не удалось перечитать проект: %v\n", err)
			return
		}
		sess.ProbeAssets(ctx)
		if err := savePreviewFrame(sess, cfg, 0); err != nil {
			fmt.Printf("[-] Ошибка предпросмотра: %v\n", err)
		}
	}

	if err := preview.Watch(ctx, sess.Path(), repaint); err != nil {
		log.Fatalf("[-] Не удалось запустить наблюдение: %v", err)
	}

	fmt.Printf("[*] Наблюдаем за %s (Ctrl+C для выхода)\n", sess.Path())
	repaint()
	<-ctx.Done()
	fmt.Println("\n[*] Наблюдение остановлено")
}

func runExport(ctx context.Context, sess *session.Session, cfg *config.Config, output, projectPath string) {
	if output == "" {
		base := strings.TrimSuffix(filepath.Base(projectPath), filepath.Ext(projectPath))
		timestamp := time.Now().Format("150405")
		output = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", base, timestamp))
	}
	cfg.OutputVideo = output

	start := time.Now()
	lastPct := -1
	progress := func(fraction float64, message string) {
		pct := int(fraction * 100)
		if pct != lastPct {
			lastPct = pct
			fmt.Printf("\r[*] %s: %3d%%", message, pct)
		}
	}

	final, err := sess.Export(ctx, progress)
	fmt.Println()
	if err != nil {
		log.Fatalf("[-] Ошибка экспорта: %v", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s (за %.1f c)\n", final, time.Since(start).Seconds())
}

func displayPath(p string) string {
	if p == "" {
		return "<без файла>"
	}
	return p
}
