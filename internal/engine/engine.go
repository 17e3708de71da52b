package engine

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/nosgen/internal/analyzer"
	"github.com/ivlev/nosgen/internal/atlas"
	"github.com/ivlev/nosgen/internal/autofill"
	"github.com/ivlev/nosgen/internal/config"
	"github.com/ivlev/nosgen/internal/export"
	"github.com/ivlev/nosgen/internal/fit"
	"github.com/ivlev/nosgen/internal/frames"
	"github.com/ivlev/nosgen/internal/geometry"
	"github.com/ivlev/nosgen/internal/project"
	"github.com/ivlev/nosgen/internal/system"
)

// AtlasProject builds one atlas from a frame source
type AtlasProject struct {
	Config   *config.Config
	Source   frames.Source
	Detector analyzer.Detector

	Session *frames.Session
	Layout  atlas.Layout

	// Written files, set by Run
	AtlasPath   string
	PointsPath  string
	PreviewPath string
	ProjectPath string
}

func NewAtlasProject(cfg *config.Config, src frames.Source, det analyzer.Detector) *AtlasProject {
	return &AtlasProject{
		Config:   cfg,
		Source:   src,
		Detector: det,
	}
}

func (p *AtlasProject) Run(ctx context.Context) error {
	startTime := time.Now()
	cfg := p.Config

	if p.Source.Len() == 0 {
		return fmt.Errorf("источник не содержит кадров")
	}

	fmt.Println("--- [PROJECT: ATLAS ENGINE] ---")
	fmt.Printf("[*] Источник: %s | Кадров: %d\n", cfg.InputPath, p.Source.Len())
	fmt.Println("-----------------------------")

	// 1. Загрузка кадров (пул воркеров)
	loadStart := time.Now()
	list, results := frames.LoadAll(ctx, p.Source, cfg.Workers)
	for _, r := range frames.Failed(results) {
		log.Printf("[!] Кадр %s пропущен: %v", r.Name, r.Err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("не удалось загрузить ни одного кадра")
	}
	loadTime := time.Since(loadStart)
	fmt.Printf("[>] Загружено кадров: %d/%d\n", len(list), p.Source.Len())

	p.Session = frames.NewSession(list, frames.NewPalette(1))

	// 2. Точки из проекта или из JSON
	if cfg.ProjectPath != "" {
		if err := p.restoreProject(); err != nil {
			return err
		}
	}
	if cfg.PointsPath != "" {
		if err := p.importPoints(); err != nil {
			return err
		}
	}
	if len(p.Session.PointIDs()) == 0 && p.Detector != nil {
		p.seedPivot()
	}

	// 3. Автозаполнение
	fillStart := time.Now()
	opts := autofill.FillOptions{
		Shape:     autofill.ParseShape(cfg.Shape),
		Direction: fit.ParseDirection(cfg.Direction),
		Options:   autofill.Options{Rotation: cfg.Rotation},
	}
	filled := autofill.FillAll(p.Session, opts)
	for _, r := range filled {
		if r.Model == nil {
			fmt.Printf("[!] Точка %q: ключевых кадров %d, автозаполнение пропущено\n", r.Name, r.Keyframes)
			continue
		}
		fmt.Printf("[*] Точка %q: %s по %d ключевым кадрам, обновлено кадров: %d\n",
			r.Name, r.Model.Shape(), r.Keyframes, r.Changed)
	}
	fillTime := time.Since(fillStart)

	// 4. Упаковка и растеризация
	renderStart := time.Now()
	sizes := make([]atlas.Size, len(list))
	images := make([]image.Image, len(list))
	for i, f := range list {
		sizes[i] = atlas.Size{W: f.Width, H: f.Height}
		images[i] = f.Image
	}
	p.Layout = atlas.Pack(sizes, cfg.Rows, cfg.Padding)
	fmt.Printf("[*] Атлас: %dx%d | Сетка: %dx%d | Ячейка: %dx%d\n",
		p.Layout.Width, p.Layout.Height, p.Layout.Columns, p.Layout.Rows, p.Layout.CellWidth, p.Layout.CellHeight)

	canvas := atlas.Rasterize(p.Layout, images)
	defer system.PutCanvas(canvas)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}

	p.AtlasPath = filepath.Join(cfg.OutputDir, export.ImageName(cfg.Name))
	if err := writePNG(p.AtlasPath, canvas); err != nil {
		return fmt.Errorf("ошибка записи атласа: %w", err)
	}

	if cfg.Preview {
		overlay, err := atlas.Preview(canvas, p.Layout, list, p.paths(filled, opts.Direction))
		if err != nil {
			return fmt.Errorf("ошибка построения превью: %w", err)
		}
		p.PreviewPath = filepath.Join(cfg.OutputDir, cfg.Name+"_preview.png")
		if err := writePNG(p.PreviewPath, overlay); err != nil {
			return fmt.Errorf("ошибка записи превью: %w", err)
		}
	}
	renderTime := time.Since(renderStart)

	// 5. Метаданные и проект
	if err := p.writePoints(); err != nil {
		return err
	}
	if cfg.SaveProject != "" {
		if err := p.saveProject(); err != nil {
			return err
		}
	}

	if cfg.ShowStats {
		p.report(len(list), time.Since(startTime), loadTime, fillTime, renderTime)
	}

	return nil
}

func (p *AtlasProject) restoreProject() error {
	cfg := p.Config
	saved, err := project.Read(cfg.ProjectPath)
	if err != nil {
		return fmt.Errorf("ошибка чтения проекта: %w", err)
	}

	// Настройки проекта заменяют значения по умолчанию, но не явные флаги
	if saved.Rows > 0 && !cfg.IsSet("rows") {
		cfg.Rows = saved.Rows
	}
	if saved.Padding != nil && !cfg.IsSet("padding") {
		cfg.Padding = *saved.Padding
	}
	if saved.Pivot != "" && !cfg.IsSet("pivot") {
		cfg.Pivot = string(saved.Pivot)
	}
	if saved.Shape != "" && !cfg.IsSet("shape") {
		cfg.Shape = string(saved.Shape)
	}
	if saved.Direction != "" && !cfg.IsSet("direction") {
		cfg.Direction = string(saved.Direction)
	}
	if saved.Rotation != 0 && !cfg.IsSet("rotation") {
		cfg.Rotation = saved.Rotation
	}
	if saved.Mode != "" && !cfg.IsSet("mode") {
		cfg.Mode = string(saved.Mode)
	}
	if saved.Name != "" && !cfg.IsSet("name") {
		cfg.Name = saved.Name
	}
	if a := saved.Animation; a != nil {
		p.restoreAnimation(a.Name, a.FPS, a.Speed, a.Loop)
	}

	matched := project.ToSession(saved, p.Session)
	fmt.Printf("[*] Используется проект: %s (кадров сопоставлено: %d)\n", cfg.ProjectPath, matched)
	return nil
}

func (p *AtlasProject) importPoints() error {
	data, err := os.ReadFile(p.Config.PointsPath)
	if err != nil {
		return fmt.Errorf("ошибка чтения точек: %w", err)
	}
	imported, err := export.Parse(data)
	if err != nil {
		return fmt.Errorf("ошибка разбора %s: %w", p.Config.PointsPath, err)
	}
	stats, err := export.Apply(p.Session, imported)
	if err != nil {
		return fmt.Errorf("ошибка импорта точек: %w", err)
	}

	// Метаданные файла действуют так же, как настройки проекта
	cfg := p.Config
	if imported.Direction != "" && !cfg.IsSet("direction") {
		cfg.Direction = string(imported.Direction)
	}
	if imported.Rows > 0 && !cfg.IsSet("rows") {
		cfg.Rows = imported.Rows
	}
	if imported.Padding >= 0 && !cfg.IsSet("padding") {
		cfg.Padding = imported.Padding
	}
	if imported.Mode != "" && !cfg.IsSet("mode") {
		cfg.Mode = string(imported.Mode)
	}
	if a := imported.Animation; a != nil {
		p.restoreAnimation(a.Name, a.FPS, a.Speed, a.Loop)
	}

	fmt.Printf("[*] Импортировано точек: %d на %d кадрах\n", stats.Points, stats.Frames)
	for _, name := range stats.Unmatched {
		log.Printf("[!] Кадр %q из файла точек не найден", name)
	}
	return nil
}

func (p *AtlasProject) restoreAnimation(name string, fps, speed float64, loop bool) {
	cfg := p.Config
	if name != "" {
		cfg.Animation = name
	}
	if fps > 0 && !cfg.IsSet("fps") {
		cfg.FPS = fps
	}
	if speed > 0 && !cfg.IsSet("speed") {
		cfg.Speed = speed
	}
	if !cfg.IsSet("loop") {
		cfg.Loop = loop
	}
}

// seedPivot places a "pivot" point at the feet of the sprite on every frame.
// Seeded positions are guesses, so none of them is a keyframe.
func (p *AtlasProject) seedPivot() {
	id := p.Session.AddPoint("pivot", 0, 0)
	seeded := 0
	for _, f := range p.Session.Frames {
		pos, ok, err := analyzer.SeedPivot(p.Detector, f.Image)
		if err != nil {
			log.Printf("[!] Ошибка анализа кадра %s: %v", f.Name, err)
			continue
		}
		if !ok {
			pos = geometry.Point{X: float64(f.Width) / 2, Y: float64(f.Height)}
		}
		pt, _ := f.Point(id)
		pt.X, pt.Y = pos.X, pos.Y
		seeded++
	}
	fmt.Printf("[*] Точка pivot расставлена автоматически на %d кадрах\n", seeded)
}

func (p *AtlasProject) paths(filled []autofill.Result, dir fit.Direction) map[string][]geometry.Point {
	out := make(map[string][]geometry.Point, len(filled))
	total := len(p.Session.Frames)
	for _, r := range filled {
		if r.Model == nil {
			continue
		}
		out[r.PointID] = autofill.Sample(r.Model, total, dir, p.Session.Keyframes(r.PointID))
	}
	return out
}

func (p *AtlasProject) exportOptions() export.Options {
	cfg := p.Config
	opts := export.Options{
		Name:      cfg.Name,
		Pivot:     export.ParsePivot(cfg.Pivot),
		Direction: fit.ParseDirection(cfg.Direction),
		Mode:      export.ParseMode(cfg.Mode),
	}
	if opts.Mode == export.ModeAnimation {
		opts.Animation = &export.Animation{Name: cfg.Animation, FPS: cfg.FPS, Speed: cfg.Speed, Loop: cfg.Loop}
	}
	return opts
}

func (p *AtlasProject) writePoints() error {
	p.PointsPath = filepath.Join(p.Config.OutputDir, p.Config.Name+".json")
	f, err := os.Create(p.PointsPath)
	if err != nil {
		return err
	}
	defer f.Close()

	doc := export.Build(p.Session, p.Layout, p.exportOptions())
	if err := export.Encode(f, doc); err != nil {
		return err
	}
	return f.Close()
}

func (p *AtlasProject) saveProject() error {
	cfg := p.Config
	path := cfg.SaveProject
	if path == "auto" {
		path = project.GeneratePath(filepath.Join(cfg.OutputDir, "projects"))
	}

	padding := cfg.Padding
	base := project.Project{
		Name:      cfg.Name,
		Input:     cfg.InputPath,
		Rows:      cfg.Rows,
		Padding:   &padding,
		Pivot:     export.ParsePivot(cfg.Pivot),
		Shape:     autofill.ParseShape(cfg.Shape),
		Direction: fit.ParseDirection(cfg.Direction),
		Rotation:  cfg.Rotation,
		Mode:      export.ParseMode(cfg.Mode),
		Animation: &project.Animation{Name: cfg.Animation, FPS: cfg.FPS, Speed: cfg.Speed, Loop: cfg.Loop},
	}
	if err := project.Write(project.FromSession(p.Session, base), path); err != nil {
		return fmt.Errorf("ошибка сохранения проекта: %w", err)
	}
	p.ProjectPath = path
	fmt.Printf("[*] Проект сохранен: %s\n", path)
	return nil
}

func (p *AtlasProject) report(frameCount int, total, load, fill, render time.Duration) {
	fmt.Printf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Total Time: %.2fs\n"+
			"Loading: %.2fs\n"+
			"Auto-fill: %.3fs\n"+
			"Rendering: %.2fs\n"+
			"Frames/s: %.2f\n"+
			"Memory: %s\n"+
			"----------------------------\n",
		total.Seconds(), load.Seconds(), fill.Seconds(), render.Seconds(),
		float64(frameCount)/total.Seconds(), system.MemoryReport(),
	)

	logEntry := fmt.Sprintf("[%s] Input: %s | Frames: %d | Total: %.2fs | Load: %.2fs | Render: %.2fs\n",
		time.Now().Format("2006-01-02 15:04:05"),
		filepath.Base(p.Config.InputPath),
		frameCount,
		total.Seconds(),
		load.Seconds(),
		render.Seconds(),
	)

	f, err := os.OpenFile(filepath.Join(p.Config.OutputDir, "benchmark.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return err
	}
	return f.Close()
}
