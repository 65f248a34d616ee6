package book

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/foldline/pagecurl/internal/curl"
)

func makePages(n int) []*image.RGBA {
	pages := make([]*image.RGBA, n)
	for i := range pages {
		p := image.NewRGBA(image.Rect(0, 0, 4, 4))
		p.SetRGBA(0, 0, color.RGBA{R: uint8(i), A: 255})
		pages[i] = p
	}
	return pages
}

func TestNewEmpty(t *testing.T) {
	if _, err := New(zap.NewNop(), nil, Events{}); err == nil {
		t.Error("expected error for empty book")
	}
}

func TestTurning(t *testing.T) {
	b, err := New(zap.NewNop(), makePages(3), Events{})
	if err != nil {
		t.Fatal(err)
	}

	if b.Index() != 0 {
		t.Fatalf("initial index = %d", b.Index())
	}
	if b.CanTurnBackward() {
		t.Error("should not turn backward at first page")
	}

	if !b.TurnForward() || b.Index() != 1 {
		t.Fatalf("after forward: index = %d", b.Index())
	}
	if !b.TurnForward() || b.Index() != 2 {
		t.Fatalf("after second forward: index = %d", b.Index())
	}
	if b.CanTurnForward() {
		t.Error("should not turn forward at last page")
	}

	if !b.TurnBackward() || b.Index() != 1 {
		t.Fatalf("after backward: index = %d", b.Index())
	}
}

func TestBoundaryEvents(t *testing.T) {
	var reachedStart, reachedEnd int
	b, err := New(zap.NewNop(), makePages(1), Events{
		OnReachStart: func() { reachedStart++ },
		OnReachEnd:   func() { reachedEnd++ },
	})
	if err != nil {
		t.Fatal(err)
	}

	if b.TurnForward() {
		t.Error("forward turn past last page must be refused")
	}
	if reachedEnd != 1 {
		t.Errorf("OnReachEnd fired %d times, want 1", reachedEnd)
	}

	if b.TurnBackward() {
		t.Error("backward turn past first page must be refused")
	}
	if reachedStart != 1 {
		t.Errorf("OnReachStart fired %d times, want 1", reachedStart)
	}
	if b.Index() != 0 {
		t.Errorf("index moved to %d on refused turns", b.Index())
	}
}

func TestSlots(t *testing.T) {
	pages := makePages(3)
	b, err := New(zap.NewNop(), pages, Events{})
	if err != nil {
		t.Fatal(err)
	}

	if b.Slot(curl.SlotPrevious) != nil {
		t.Error("previous slot at first page should be nil")
	}
	if b.Slot(curl.SlotCurrent) != pages[0] {
		t.Error("current slot mismatch")
	}
	if b.Slot(curl.SlotNext) != pages[1] {
		t.Error("next slot mismatch")
	}

	b.TurnForward()
	if b.Slot(curl.SlotPrevious) != pages[0] {
		t.Error("previous slot after turn mismatch")
	}
	if b.Slot(curl.SlotCurrent) != pages[1] {
		t.Error("current slot after turn mismatch")
	}

	b.TurnForward()
	if b.Slot(curl.SlotNext) != nil {
		t.Error("next slot at last page should be nil")
	}
}

func TestFitToCap(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 400, 200))
	out := fitToCap(big, 100)
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 50 {
		t.Errorf("scaled bounds = %v, want 100x50", out.Bounds())
	}

	tall := image.NewRGBA(image.Rect(0, 0, 200, 400))
	out = fitToCap(tall, 100)
	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 100 {
		t.Errorf("scaled bounds = %v, want 50x100", out.Bounds())
	}

	small := image.NewRGBA(image.Rect(0, 0, 50, 50))
	if fitToCap(small, 100) != small {
		t.Error("page within cap must pass through")
	}
	if fitToCap(big, 0) != big {
		t.Error("zero cap disables downscaling")
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()

	writePNG := func(name string, w, h int) {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
	}
	writePNG("01.png", 8, 8)
	writePNG("02.png", 300, 100)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	b, err := Load(zap.NewNop(), dir, 128, Events{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b.Len() != 2 {
		t.Fatalf("loaded %d pages, want 2", b.Len())
	}
	if got := b.Slot(curl.SlotNext).Bounds(); got.Dx() != 128 {
		t.Errorf("oversized page not downscaled: %v", got)
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := Load(zap.NewNop(), "/nonexistent-pages", 0, Events{}); err == nil {
		t.Error("expected error for missing directory")
	}
}
