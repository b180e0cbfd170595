package basemap

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxSide bounds the working resolution of a decoded image.
const MaxSide = 1024

// Raster is a decoded image ready for sampling.
type Raster struct {
	img *image.RGBA
}

// Decode reads an image in any registered format and downscales it to MaxSide.
func Decode(r io.Reader) (*Raster, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("decode image: empty bounds")
	}
	w, h := b.Dx(), b.Dy()
	if w > MaxSide || h > MaxSide {
		if w >= h {
			h = max(1, h*MaxSide/w)
			w = MaxSide
		} else {
			w = max(1, w*MaxSide/h)
			h = MaxSide
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	}
	return &Raster{img: dst}, nil
}

// LoadFile decodes the image at path.
func LoadFile(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Size returns the working resolution.
func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// At samples the image at normalised coordinates, u to the right and v
// downward, both in [0, 1]. Values outside are clamped.
func (r *Raster) At(u, v float64) colorful.Color {
	w, h := r.Size()
	x := clamp(int(u*float64(w)), 0, w-1)
	y := clamp(int(v*float64(h)), 0, h-1)
	c, _ := colorful.MakeColor(r.img.RGBAAt(x, y))
	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Cache keeps decoded rasters by path. Safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	items map[string]*Raster
}

func NewCache() *Cache {
	return &Cache{items: make(map[string]*Raster)}
}

// Get returns a cached raster without touching the disk.
func (c *Cache) Get(path string) (*Raster, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.items[path]
	return r, ok
}

// Load returns the cached raster for path, decoding it on first use.
func (c *Cache) Load(path string) (*Raster, error) {
	if r, ok := c.Get(path); ok {
		return r, nil
	}
	r, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[path]; ok {
		return existing, nil
	}
	c.items[path] = r
	return r, nil
}
