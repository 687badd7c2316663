package skin

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrUnknownKey is returned for keys outside the known asset set.
	ErrUnknownKey = errors.New("skin: unknown asset key")

	// ErrNoSource is returned when a source has no data for a key.
	ErrNoSource = errors.New("skin: no source for asset")
)

// Source provides the raw SVG document for an asset.
type Source interface {
	Open(key Key) ([]byte, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(key Key) ([]byte, error)

// Open implements Source.
func (f SourceFunc) Open(key Key) ([]byte, error) {
	return f(key)
}

//go:embed assets/*.svg
var assets embed.FS

// EmbeddedSource serves the skins bundled with the binary.
type EmbeddedSource struct{}

// Open implements Source.
func (EmbeddedSource) Open(key Key) ([]byte, error) {
	if !key.Valid() {
		return nil, ErrUnknownKey
	}
	data, err := assets.ReadFile("assets/" + key.fileName())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoSource, key)
	}
	return data, err
}
