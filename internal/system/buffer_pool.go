package system

import (
	"image"
	"sync"
)

// CanvasPool переиспользует холсты *image.RGBA одинакового размера, чтобы
// повторные сборки атласа не нагружали GC.
type CanvasPool struct {
	pools map[image.Point]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = &CanvasPool{
	pools: make(map[image.Point]*sync.Pool),
}

// GetCanvas возвращает прозрачный холст w×h из общего пула.
func GetCanvas(w, h int) *image.RGBA {
	return globalPool.Get(w, h)
}

// PutCanvas возвращает холст в общий пул.
func PutCanvas(img *image.RGBA) {
	globalPool.Put(img)
}

func (p *CanvasPool) pool(size image.Point) *sync.Pool {
	p.mu.RLock()
	pool, exists := p.pools[size]
	p.mu.RUnlock()
	if exists {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// Double check
	if pool, exists = p.pools[size]; !exists {
		pool = &sync.Pool{
			New: func() interface{} {
				return image.NewRGBA(image.Rectangle{Max: size})
			},
		}
		p.pools[size] = pool
	}
	return pool
}

func (p *CanvasPool) Get(w, h int) *image.RGBA {
	img := p.pool(image.Point{X: w, Y: h}).Get().(*image.RGBA)
	clear(img.Pix)
	return img
}

func (p *CanvasPool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	p.pool(img.Rect.Size()).Put(img)
}
