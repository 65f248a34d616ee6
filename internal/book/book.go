// Package book holds the page sequence and the reading position, and maps
// the three live pages onto the renderer's texture slots.
package book

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/foldline/pagecurl/internal/curl"
	"github.com/foldline/pagecurl/internal/engine/texture"
)

// Events fire when a turn is requested past either end of the book. The
// turn itself is refused; reaching the boundary is not an error.
type Events struct {
	OnReachStart func()
	OnReachEnd   func()
}

// Book is the page sequence with a current reading position.
type Book struct {
	log    *zap.Logger
	pages  []*image.RGBA
	index  int
	events Events
}

// New creates a book over already-decoded pages.
func New(log *zap.Logger, pages []*image.RGBA, events Events) (*Book, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("book has no pages")
	}
	return &Book{
		log:    log,
		pages:  pages,
		events: events,
	}, nil
}

// Load reads every png/jpeg in dir (in name order) as a page, converting
// to RGBA and downscaling pages larger than maxSize on either axis.
func Load(log *zap.Logger, dir string, maxSize int, events Events) (*Book, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading page directory: %w", err)
	}

	var pages []*image.RGBA
	for _, entry := range entries {
		if entry.IsDir() || !isPageFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		img, err := decodePage(path)
		if err != nil {
			log.Warn("skipping unreadable page", zap.String("path", path), zap.Error(err))
			continue
		}

		page := fitToCap(texture.ImageToRGBA(img), maxSize)
		pages = append(pages, page)
		log.Debug("page loaded",
			zap.String("path", path),
			zap.Int("width", page.Bounds().Dx()),
			zap.Int("height", page.Bounds().Dy()),
		)
	}

	log.Info("book loaded", zap.String("dir", dir), zap.Int("pages", len(pages)))
	return New(log, pages, events)
}

func isPageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func decodePage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// fitToCap downscales a page so neither axis exceeds maxSize, preserving
// aspect ratio. Pages already within the cap pass through untouched.
func fitToCap(img *image.RGBA, maxSize int) *image.RGBA {
	if maxSize <= 0 {
		return img
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= maxSize && h <= maxSize {
		return img
	}

	scale := float64(maxSize) / float64(w)
	if h > w {
		scale = float64(maxSize) / float64(h)
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return out
}

// Len returns the page count.
func (b *Book) Len() int { return len(b.pages) }

// Index returns the current page index.
func (b *Book) Index() int { return b.index }

// Slot returns the page image backing a texture slot, or nil when the slot
// falls off either end of the book.
func (b *Book) Slot(slot curl.PageSlot) *image.RGBA {
	i := b.index
	switch slot {
	case curl.SlotNext:
		i++
	case curl.SlotPrevious:
		i--
	}
	if i < 0 || i >= len(b.pages) {
		return nil
	}
	return b.pages[i]
}

// CanTurnForward reports whether a forward turn can start.
func (b *Book) CanTurnForward() bool { return b.index < len(b.pages)-1 }

// CanTurnBackward reports whether a backward turn can start.
func (b *Book) CanTurnBackward() bool { return b.index > 0 }

// TurnForward commits a completed forward turn. At the last page the turn
// is refused and OnReachEnd fires instead.
func (b *Book) TurnForward() bool {
	if !b.CanTurnForward() {
		if b.events.OnReachEnd != nil {
			b.events.OnReachEnd()
		}
		return false
	}
	b.index++
	b.log.Debug("turned forward", zap.Int("index", b.index))
	return true
}

// TurnBackward commits a completed backward turn. At the first page the
// turn is refused and OnReachStart fires instead.
func (b *Book) TurnBackward() bool {
	if !b.CanTurnBackward() {
		if b.events.OnReachStart != nil {
			b.events.OnReachStart()
		}
		return false
	}
	b.index--
	b.log.Debug("turned backward", zap.Int("index", b.index))
	return true
}
