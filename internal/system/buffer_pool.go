package system

import (
	"image"
	"sync"
)

// Пул кадровых буферов. Цикл экспорта берет кадр, кодирует и сразу
// возвращает его, поэтому в полете держится O(1) кадров на каждый размер,
// а GC не видит по аллокации на кадр.
var (
	framePoolMu sync.Mutex
	framePools  = make(map[string]*sync.Pool)
)

func framePool(rect image.Rectangle) *sync.Pool {
	key := rect.String()

	framePoolMu.Lock()
	defer framePoolMu.Unlock()

	pool, ok := framePools[key]
	if !ok {
		pool = &sync.Pool{
			New: func() interface{} {
				return image.NewRGBA(rect)
			},
		}
		framePools[key] = pool
	}
	return pool
}

// GetImage выдает буфер кадра нужного размера, переиспользуя возвращенные.
// Содержимое буфера не обнуляется: композитор закрашивает кадр целиком.
func GetImage(rect image.Rectangle) *image.RGBA {
	return framePool(rect).Get().(*image.RGBA)
}

// PutImage возвращает буфер в пул. nil допустим и игнорируется.
func PutImage(img *image.RGBA) {
	if img == nil {
		return
	}
	framePool(img.Rect).Put(img)
}
