package eyedropper

import (
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

type cacheEntry struct {
	img     image.Image
	modTime time.Time
	size    int64
}

// Cache provides thread-safe caching of decoded images keyed by file path.
//
// Different paths to the same file (relative vs absolute) are separate
// entries. An entry is decoded again when the file's modification time or
// size no longer match what was cached.
type Cache struct {
	mu     sync.RWMutex
	images map[string]cacheEntry
}

// NewCache creates an empty image cache.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]cacheEntry),
	}
}

// Load returns the cached image for path, decoding it from disk on first use
// or after the file changed. PNG, JPEG, GIF, BMP and TIFF are supported;
// EXIF orientation is applied.
func (c *Cache) Load(path string) (image.Image, error) {
	fi, err := os.Stat(path)
	if err != nil {
		c.Evict(path)
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	c.mu.RLock()
	e, ok := c.images[path]
	c.mu.RUnlock()
	if ok && e.modTime.Equal(fi.ModTime()) && e.size == fi.Size() {
		return e.img, nil
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		c.Evict(path)
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = cacheEntry{img: img, modTime: fi.ModTime(), size: fi.Size()}
	c.mu.Unlock()

	return img, nil
}

// Len reports how many images are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Evict removes one image from the cache and reports whether it was cached.
func (c *Cache) Evict(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.images[path]
	delete(c.images, path)
	return ok
}

// Clear removes all images from the cache and returns how many were dropped.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.images)
	c.images = make(map[string]cacheEntry)
	return n
}
