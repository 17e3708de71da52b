package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ivlev/nosgen/internal/analyzer"
	"github.com/ivlev/nosgen/internal/config"
	"github.com/ivlev/nosgen/internal/engine"
	"github.com/ivlev/nosgen/internal/frames"
	"github.com/ivlev/nosgen/internal/project"
	"github.com/ivlev/nosgen/internal/system"
)

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	cfg := config.Default()

	flag.StringVar(&cfg.InputPath, "input", "", "Путь к папке с кадрами, изображению или PDF (по умолчанию: input/)")
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Папка для атласа, JSON и превью")
	flag.StringVar(&cfg.Name, "name", "", "Имя атласа (по умолчанию: имя входной папки)")
	flag.IntVar(&cfg.Rows, "rows", cfg.Rows, "Количество строк сетки")
	flag.IntVar(&cfg.Padding, "padding", cfg.Padding, "Отступ вокруг ячеек в пикселях")
	flag.StringVar(&cfg.Pivot, "pivot", cfg.Pivot, "Система координат точек: top-left, bottom-left, center")
	flag.StringVar(&cfg.Shape, "shape", cfg.Shape, "Форма автозаполнения: ellipse, circle, square, tangent, linear")
	flag.StringVar(&cfg.Direction, "direction", cfg.Direction, "Направление движения: clockwise, counterclockwise")
	flag.Float64Var(&cfg.Rotation, "rotation", 0, "Наклон эллипса в радианах")
	flag.StringVar(&cfg.Mode, "mode", cfg.Mode, "Режим: character, animation, normal")
	flag.Float64Var(&cfg.FPS, "fps", cfg.FPS, "FPS анимации (режим animation)")
	flag.Float64Var(&cfg.Speed, "speed", cfg.Speed, "Скорость анимации")
	flag.BoolVar(&cfg.Loop, "loop", cfg.Loop, "Зациклить анимацию")
	flag.StringVar(&cfg.ProjectPath, "project", "", "YAML проекта для восстановления точек (latest: самый свежий в output/projects)")
	flag.StringVar(&cfg.SaveProject, "save-project", "", "Сохранить проект в YAML (auto: имя с датой)")
	flag.StringVar(&cfg.PointsPath, "points", "", "JSON с точками для импорта")
	flag.BoolVar(&cfg.Preview, "preview", false, "Сохранить превью с маркерами точек")
	flag.StringVar(&cfg.Detector, "detector", cfg.Detector, "Детектор спрайта для автоматического pivot: alpha, bounds")
	flag.IntVar(&cfg.Workers, "workers", system.DefaultWorkers(), "Потоки декодирования")
	flag.IntVar(&cfg.DPI, "dpi", cfg.DPI, "DPI для страниц PDF")
	flag.BoolVar(&cfg.ShowStats, "stats", false, "Показать отчет о производительности")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Подробный лог")

	flag.Parse()

	cfg.Explicit = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { cfg.Explicit[f.Name] = true })

	if cfg.Verbose {
		system.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if cfg.ProjectPath == "latest" {
		latest, err := project.FindLatest(filepath.Join(cfg.OutputDir, "projects"))
		if err != nil {
			log.Fatalf("[-] Ошибка: %v", err)
		}
		cfg.ProjectPath = latest
	}

	src, err := openSource(&cfg)
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации источника: %v", err)
	}
	defer src.Close()

	if cfg.Name == "" && cfg.InputPath != "" {
		base := filepath.Base(cfg.InputPath)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		cfg.Name = strings.ReplaceAll(base, " ", "_")
	}

	if src.Len() == 0 {
		log.Fatalf("[-] Ошибка: в источнике нет изображений или страниц")
	}

	det, err := analyzer.NewDetector(cfg.Detector)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := engine.NewAtlasProject(&cfg, src, det)
	if err := p.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Printf("[+++] Успех! Атлас: %s | Точки: %s\n", p.AtlasPath, p.PointsPath)
}

// openSource opens -input, or the frames recorded in -project when no input
// was given.
func openSource(cfg *config.Config) (frames.Source, error) {
	if cfg.InputPath == "" && cfg.ProjectPath != "" {
		saved, err := project.Read(cfg.ProjectPath)
		if err != nil {
			return nil, err
		}
		src, err := saved.OpenSource(cfg.DPI)
		if err != nil {
			return nil, err
		}
		cfg.InputPath = saved.Input
		fmt.Printf("[*] Кадры проекта: %d\n", src.Len())
		return src, nil
	}

	if cfg.InputPath == "" {
		cfg.InputPath = "input"
		fmt.Printf("[*] Выбрана папка: %s\n", cfg.InputPath)
	}
	return frames.Open(cfg.InputPath, cfg.DPI)
}
