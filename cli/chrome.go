package cli

import (
	"context"
	"image"

	"github.com/user-none/empalm/display"
	"github.com/user-none/empalm/skin"
)

// SilkscreenChrome returns a chrome loader that prerenders key through cache
// and resamples it to the silkscreen area at scale. KeyNone yields no image,
// leaving only the backing fill.
func SilkscreenChrome(cache *skin.Cache, key skin.Key, scale display.ScaleFactor) display.ChromeFunc {
	return func(ctx context.Context) (image.Image, error) {
		if key == skin.KeyNone {
			return nil, nil
		}
		asset, err := cache.Request(ctx, key)
		if err != nil {
			return nil, err
		}
		size := scale.SilkscreenRect().Size()
		return asset.Scaled(size.X, size.Y), nil
	}
}
