package texture_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Volograms/vol-cl-tools/internal/texture"
	"github.com/Volograms/vol-cl-tools/internal/texture/basisstub"
)

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestResizeRawPNG(t *testing.T) {
	src := encodeTestPNG(t, 8, 8)
	out, warn, err := texture.Resize(basisstub.New(), src, texture.ContainerRaw, texture.CompressionNone, 4, 4, nil)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if warn != "" {
		t.Fatalf("unexpected warning: %s", warn)
	}
	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding resized image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("resized dims = %dx%d, want 4x4", b.Dx(), b.Dy())
	}
}

func TestResizeBasisFallsBackWhenUnavailable(t *testing.T) {
	out, warn, err := texture.Resize(basisstub.New(), []byte{1, 2, 3}, texture.ContainerBasis, texture.CompressionUASTC, 16, 16, nil)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if warn == "" {
		t.Fatalf("expected a fallback warning when no basis codec is compiled in")
	}
	if !bytes.Equal(out, []byte{1, 2, 3}) {
		t.Fatalf("expected passthrough of original bytes, got %v", out)
	}
}

func TestResizeNoOpOnZeroDims(t *testing.T) {
	src := []byte{9, 9, 9}
	out, warn, err := texture.Resize(basisstub.New(), src, texture.ContainerRaw, texture.CompressionNone, 0, 0, nil)
	if err != nil || warn != "" {
		t.Fatalf("Resize with zero dims should no-op, got warn=%q err=%v", warn, err)
	}
	if !bytes.Equal(out, src) {
		t.Fatalf("expected unchanged passthrough, got %v", out)
	}
}
