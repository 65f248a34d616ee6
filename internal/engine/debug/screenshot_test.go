package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCaptureFromPixelsFlipsRows(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "test")

	// 1x2 image: bottom row red, top row blue (GL order, bottom first)
	pixels := []byte{
		255, 0, 0, 255, // row 0 (bottom)
		0, 0, 255, 255, // row 1 (top)
	}

	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening screenshot: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding screenshot: %v", err)
	}

	r, _, b, _ := img.At(0, 0).RGBA()
	if r != 0 || b == 0 {
		t.Errorf("top pixel = (%d,_,%d), want blue", r>>8, b>>8)
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r == 0 || b != 0 {
		t.Errorf("bottom pixel = (%d,_,%d), want red", r>>8, b>>8)
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "test")
	if _, err := sc.CaptureFromPixels(make([]byte, 10), 2, 2); err == nil {
		t.Error("expected error for short pixel buffer")
	}
}

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "curl")
	name := sc.GenerateFilename()
	if filepath.Dir(name) != "shots" {
		t.Errorf("dir = %q, want shots", filepath.Dir(name))
	}
	base := filepath.Base(name)
	if !strings.HasPrefix(base, "curl_") || !strings.HasSuffix(base, ".png") {
		t.Errorf("filename = %q, want curl_*.png", base)
	}
}
