// Package skin loads the vector artwork of device faceplates and prerenders
// it to raster images, once per asset.
package skin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/singleflight"
)

// Defaults for cache options.
const (
	DefaultOversample      = 4
	DefaultVariantCapacity = 8
)

// LoadState is the lifecycle state of an asset.
type LoadState int

const (
	Pending LoadState = iota
	Ready
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Result is the settled outcome of a request.
type Result struct {
	Asset *Asset
	Err   error
}

type settled struct {
	asset *Asset
	err   error
}

// Cache loads each asset at most once for its lifetime. Concurrent and later
// requests for a key share the one load and its outcome, failures included;
// there is no retry, a fresh Cache is needed to load a failed key again.
//
// A Source must not request its own key from the cache while loading it.
type Cache struct {
	src             Source
	oversample      float64
	variantCapacity int

	group singleflight.Group
	loads atomic.Int64

	mu      sync.Mutex
	done    map[Key]settled
	pending map[Key]bool
}

// Option configures a Cache.
type Option func(*Cache)

// WithOversample sets the resolution multiplier applied to an asset's
// viewBox when it is prerendered.
func WithOversample(n float64) Option {
	return func(c *Cache) {
		if n > 0 {
			c.oversample = n
		}
	}
}

// WithVariantCapacity bounds the number of scaled variants kept per asset.
func WithVariantCapacity(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.variantCapacity = n
		}
	}
}

// NewCache creates an empty cache reading from src.
func NewCache(src Source, opts ...Option) *Cache {
	c := &Cache{
		src:             src,
		oversample:      DefaultOversample,
		variantCapacity: DefaultVariantCapacity,
		done:            make(map[Key]settled),
		pending:         make(map[Key]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request returns the prerendered asset for key, starting its load on the
// first request. Cancelling ctx abandons the wait, not the load.
func (c *Cache) Request(ctx context.Context, key Key) (*Asset, error) {
	if s, ok := c.lookup(key); ok {
		return s.asset, s.err
	}

	c.mu.Lock()
	c.pending[key] = true
	c.mu.Unlock()

	ch := c.group.DoChan(key.String(), func() (interface{}, error) {
		// A load may have settled between lookup and joining the group
		if s, ok := c.lookup(key); ok {
			return s.asset, s.err
		}
		a, err := c.load(key)
		c.mu.Lock()
		c.done[key] = settled{asset: a, err: err}
		delete(c.pending, key)
		c.mu.Unlock()
		return a, err
	})

	select {
	case r := <-ch:
		a, _ := r.Val.(*Asset)
		return a, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// RequestAsync starts or joins the load of key and delivers the outcome on
// the returned channel.
func (c *Cache) RequestAsync(key Key) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		a, err := c.Request(context.Background(), key)
		ch <- Result{Asset: a, Err: err}
	}()
	return ch
}

// State reports the load state of key. The bool is false if key was never
// requested.
func (c *Cache) State(key Key) (LoadState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.done[key]; ok {
		if s.err != nil {
			return Failed, true
		}
		return Ready, true
	}
	if c.pending[key] {
		return Pending, true
	}
	return Pending, false
}

// Loads returns how many times the cache has read from its source.
func (c *Cache) Loads() int64 {
	return c.loads.Load()
}

func (c *Cache) lookup(key Key) (settled, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.done[key]
	return s, ok
}

func (c *Cache) load(key Key) (*Asset, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("skin: load %s: %w", key, ErrUnknownKey)
	}
	if c.src == nil {
		return nil, fmt.Errorf("skin: load %s: %w", key, ErrNoSource)
	}

	c.loads.Add(1)
	data, err := c.src.Open(key)
	if err != nil {
		return nil, fmt.Errorf("skin: load %s: %w", key, err)
	}

	img, err := prerender(data, c.oversample)
	if err != nil {
		return nil, fmt.Errorf("skin: load %s: %w", key, err)
	}

	variants, err := lru.New[image.Point, *image.RGBA](c.variantCapacity)
	if err != nil {
		return nil, fmt.Errorf("skin: load %s: %w", key, err)
	}

	return &Asset{
		Key:      key,
		Image:    img,
		variants: variants,
	}, nil
}

// prerender decodes an SVG document and rasterizes it at its viewBox size
// times oversample.
func prerender(data []byte, oversample float64) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}

	vb := icon.ViewBox
	if !(vb.W > 0) || !(vb.H > 0) {
		return nil, errors.New("decode svg: missing or empty viewBox")
	}

	w := int(math.Ceil(vb.W * oversample))
	h := int(math.Ceil(vb.H * oversample))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	return img, nil
}

// Asset is a prerendered skin image. It is immutable once returned by the
// cache and safe for concurrent use.
type Asset struct {
	Key   Key
	Image *image.RGBA

	mu       sync.Mutex
	variants *lru.Cache[image.Point, *image.RGBA]
}

// Scaled returns the asset resampled to w by h with smooth interpolation.
// Results are memoized per size.
func (a *Asset) Scaled(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return nil
	}
	size := image.Pt(w, h)
	if size == a.Image.Bounds().Size() {
		return a.Image
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if img, ok := a.variants.Get(size); ok {
		return img
	}

	img := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.CatmullRom.Scale(img, img.Bounds(), a.Image, a.Image.Bounds(), xdraw.Src, nil)
	a.variants.Add(size, img)
	return img
}
