// Package catalog enumerates the playable items (static images and
// animated GIFs) the panel can display. The catalog is built once at
// startup and read-only afterwards; there is no hot-reload.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind tells the animation driver how to treat an item.
type Kind int

const (
	// KindImage is a static bitmap: one blit and swap, no frame timing.
	KindImage Kind = iota
	// KindGIF is an animated GIF driven frame by frame.
	KindGIF
)

// Startup conditions the caller treats as fatal.
var (
	ErrNoDirectory = errors.New("no gifs directory")
	ErrEmpty       = errors.New("empty gifs directory")
)

// Item is one playable catalog entry.
type Item struct {
	Name string
	Kind Kind

	path string // set for filesystem items
	data []byte // set for builtin items
}

// Open returns the item's encoded bytes for decoding.
func (it Item) Open() (io.ReadCloser, error) {
	if it.data != nil {
		return io.NopCloser(bytes.NewReader(it.data)), nil
	}
	f, err := os.Open(it.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", it.Name, err)
	}
	return f, nil
}

// NewItem builds an in-memory item from encoded bytes.
func NewItem(name string, kind Kind, data []byte) Item {
	return Item{Name: name, Kind: kind, data: data}
}

// Catalog is the ordered, 0-indexed item list.
type Catalog struct {
	items []Item
}

// FromItems builds a catalog from in-memory items, in the given order.
func FromItems(items ...Item) *Catalog {
	return &Catalog{items: items}
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Item returns the entry at index i.
func (c *Catalog) Item(i int) (Item, error) {
	if i < 0 || i >= len(c.items) {
		return Item{}, fmt.Errorf("catalog index %d out of range [0,%d)", i, len(c.items))
	}
	return c.items[i], nil
}

// playableKind reports whether a filename is a displayable item, and of
// which kind. Names starting with '_', '~' or '.' are scratch/hidden
// files left by editors and OSes and are skipped.
func playableKind(name string) (Kind, bool) {
	if name == "" {
		return 0, false
	}
	switch name[0] {
	case '_', '~', '.':
		return 0, false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gif":
		return KindGIF, true
	case ".png", ".bmp":
		return KindImage, true
	}
	return 0, false
}

// Enumerate scans dir for playable items, sorted by name. A missing
// directory returns ErrNoDirectory and an empty one ErrEmpty; both are
// fatal startup conditions for the caller.
func Enumerate(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoDirectory, dir)
	}

	var items []Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		kind, ok := playableKind(e.Name())
		if !ok {
			continue
		}
		items = append(items, Item{
			Name: e.Name(),
			Kind: kind,
			path: filepath.Join(dir, e.Name()),
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, dir)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return &Catalog{items: items}, nil
}
