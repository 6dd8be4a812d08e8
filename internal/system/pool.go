package system

import (
	"image"
	"sync"
)

// imagePool recycles RGBA frame buffers between the renderer and the
// encoder, keyed by geometry. At 30 frames per second of full-size RGBA a
// fresh allocation per frame would put real pressure on the GC.
type imagePool struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = &imagePool{
	pools: make(map[string]*sync.Pool),
}

// GetImage returns a buffer of the given geometry, reusing a recycled one
// when available. Contents are undefined.
func GetImage(rect image.Rectangle) *image.RGBA {
	return globalPool.get(rect)
}

// PutImage hands a buffer back for reuse.
func PutImage(img *image.RGBA) {
	globalPool.put(img)
}

func (p *imagePool) get(rect image.Rectangle) *image.RGBA {
	key := rect.String()

	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewRGBA(rect)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

func (p *imagePool) put(img *image.RGBA) {
	if img == nil {
		return
	}

	p.mu.RLock()
	pool, exists := p.pools[img.Rect.String()]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
