package snapshot

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	img.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, A: 255})
	return img
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.png", PNG},
		{"OUT.PNG", PNG},
		{"dir/frame.bmp", BMP},
		{"frame.tif", TIFF},
		{"frame.tiff", TIFF},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatFor(%q) = %v, %v; want %v", tt.path, got, err, tt.want)
		}
	}
	for _, path := range []string{"frame.jpg", "frame", "frame.webp"} {
		if _, err := FormatFor(path); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFor(%q) error = %v, want ErrUnsupportedFormat", path, err)
		}
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	src := testImage()

	decoders := map[string]func(*os.File) (image.Image, error){
		"frame.png":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"frame.bmp":  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
		"frame.tiff": func(f *os.File) (image.Image, error) { return tiff.Decode(f) },
	}
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Write(path, src); err != nil {
				t.Fatalf("Write: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer f.Close()
			got, err := decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", got.Bounds(), src.Bounds())
			}
			r, g, b, _ := got.At(1, 1).RGBA()
			if r>>8 != 255 || g>>8 != 255 || b>>8 != 0 {
				t.Errorf("pixel (1,1) = %d,%d,%d, want yellow", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestWriteUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.gif")
	if err := Write(path, testImage()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Write error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("unsupported format should not create a file")
	}
}
