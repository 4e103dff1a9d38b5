package inkpress

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &buf
}

func TestProcessImageKeepsSmallSizes(t *testing.T) {
	src := encodePNG(t, 320, 200)

	img, data, err := processImage(src, "Team Photo.png")
	if err != nil {
		t.Fatalf("processImage failed: %v", err)
	}
	if img.Width != 320 || img.Height != 200 {
		t.Errorf("dimensions = %dx%d, want 320x200", img.Width, img.Height)
	}
	if !strings.HasPrefix(img.Filename, "team-photo-") || !strings.HasSuffix(img.Filename, ".jpg") {
		t.Errorf("filename = %q", img.Filename)
	}
	if img.Size != len(data) || len(data) == 0 {
		t.Errorf("size = %d, data = %d bytes", img.Size, len(data))
	}
}

func TestProcessImageResizesWideImages(t *testing.T) {
	src := encodePNG(t, maxImageWidth*2, 400)

	img, _, err := processImage(src, "banner.png")
	if err != nil {
		t.Fatalf("processImage failed: %v", err)
	}
	if img.Width != maxImageWidth {
		t.Errorf("width = %d, want %d", img.Width, maxImageWidth)
	}
	if img.Height != 200 {
		t.Errorf("height = %d, want 200 (aspect preserved)", img.Height)
	}
}

func TestProcessImageUniqueFilenames(t *testing.T) {
	a := processImageMust(t, "photo.png")
	b := processImageMust(t, "photo.png")
	if a == b {
		t.Errorf("two uploads of the same name produced the same filename %q", a)
	}
}

func processImageMust(t *testing.T, name string) string {
	t.Helper()
	img, _, err := processImage(encodePNG(t, 10, 10), name)
	if err != nil {
		t.Fatalf("processImage failed: %v", err)
	}
	return img.Filename
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	if _, _, err := processImage(strings.NewReader("not an image"), "junk.png"); err == nil {
		t.Fatal("expected error for non-image input")
	}
}
