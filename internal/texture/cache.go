package texture

import (
	"image/color"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Resolver resolves a texture name to a representative colour.
type Resolver interface {
	Resolve(texName string) (color.NRGBA, bool)
}

// Cache remembers the average colour of each texture file. Concurrent
// requests for the same file share a single decode.
type Cache struct {
	index  *Index
	colors sync.Map // path -> swatch
	group  singleflight.Group
}

type swatch struct {
	c  color.NRGBA
	ok bool // false if the file failed to decode
}

// NewCache creates a texture cache backed by index.
func NewCache(index *Index) *Cache {
	return &Cache{index: index}
}

// Resolve decodes a texture on first use and returns its average colour.
func (c *Cache) Resolve(texName string) (color.NRGBA, bool) {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return color.NRGBA{}, false
	}
	if v, hit := c.colors.Load(path); hit {
		s := v.(swatch)
		return s.c, s.ok
	}

	v, _, _ := c.group.Do(path, func() (any, error) {
		var s swatch
		if img, err := Load(path); err == nil {
			s = swatch{c: AverageColor(img), ok: true}
		}
		c.colors.Store(path, s)
		return s, nil
	})
	s := v.(swatch)
	return s.c, s.ok
}
