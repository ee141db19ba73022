package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/laplace-cli/internal/grid"
)

func gradientGrid(t *testing.T, w, h int) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, grid.R, uint8(x*16))
			g.Set(x, y, grid.G, uint8(y*16))
			g.Set(x, y, grid.B, uint8((x+y)*8))
		}
	}
	return g
}

func TestFromImage_DropsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 7})

	g, err := FromImage(img)
	if err != nil {
		t.Fatalf("from image: %v", err)
	}
	want := []uint8{10, 20, 30, 40, 50, 60}
	if !bytes.Equal(g.Pix(), want) {
		t.Errorf("pixels: got %v, want %v", g.Pix(), want)
	}
}

func TestFromImage_OffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	img.SetNRGBA(5, 5, color.NRGBA{R: 99, A: 255})
	g, err := FromImage(img)
	if err != nil {
		t.Fatalf("from image: %v", err)
	}
	if g.Width() != 3 || g.Height() != 2 {
		t.Fatalf("size: got %dx%d", g.Width(), g.Height())
	}
	if g.Get(0, 0, grid.R) != 99 {
		t.Error("origin pixel not mapped to (0,0)")
	}
}

func TestPNGRoundtrip(t *testing.T) {
	g := gradientGrid(t, 7, 5)
	path := filepath.Join(t.TempDir(), "out.png")

	if err := NewRegistry().Encode(path, g, 0); err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, src, err := Decode(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if src.Format != "png" || src.Size <= 0 {
		t.Errorf("source info: %+v", src)
	}
	if !bytes.Equal(back.Pix(), g.Pix()) {
		t.Error("png roundtrip changed pixels")
	}
}

func TestLosslessFormats(t *testing.T) {
	g := gradientGrid(t, 4, 4)
	dir := t.TempDir()
	for _, name := range []string{"a.bmp", "a.tif", "a.tiff"} {
		path := filepath.Join(dir, name)
		if err := NewRegistry().Encode(path, g, 0); err != nil {
			t.Fatalf("%s: encode: %v", name, err)
		}
		back, _, err := Decode(path)
		if err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if !bytes.Equal(back.Pix(), g.Pix()) {
			t.Errorf("%s: roundtrip changed pixels", name)
		}
	}
}

func TestJPEGEncode(t *testing.T) {
	g := gradientGrid(t, 8, 8)
	path := filepath.Join(t.TempDir(), "out.jpg")
	if err := NewRegistry().Encode(path, g, 75); err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, src, err := Decode(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if src.Format != "jpeg" {
		t.Errorf("format: got %q", src.Format)
	}
	if back.Width() != 8 || back.Height() != 8 {
		t.Errorf("size: got %dx%d", back.Width(), back.Height())
	}
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	g := gradientGrid(t, 2, 2)
	path := filepath.Join(t.TempDir(), "out.xyz")
	err := NewRegistry().Encode(path, g, 0)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("output file created for unsupported format")
	}
}

func TestDecode_Missing(t *testing.T) {
	_, _, err := Decode(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}

func TestDecode_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err := Decode(path)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("got %v, want ErrDecode", err)
	}
}

func TestToImage_Opaque(t *testing.T) {
	g := gradientGrid(t, 3, 2)
	img := ToImage(g)
	if !img.Opaque() {
		t.Error("encoded image is not opaque")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]string{
		"a.JPG":       "jpeg",
		"b.jpeg":      "jpeg",
		"c.tif":       "tiff",
		"d.png":       "png",
		"dir.x/e.gif": "gif",
		"noext":       "",
	}
	for in, want := range cases {
		if got := FormatFromPath(in); got != want {
			t.Errorf("%s: got %q, want %q", in, got, want)
		}
	}
}

func TestEncode_NoExtensionWritesPNG(t *testing.T) {
	g := gradientGrid(t, 5, 3)
	path := filepath.Join(t.TempDir(), "out")
	if err := NewRegistry().Encode(path, g, 0); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not png: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 3 {
		t.Errorf("size: got %v", img.Bounds())
	}
}

// rotatedJPEG encodes a w×h JPEG tagged with EXIF orientation 6 (rotate 90° CW).
func rotatedJPEG(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, ToImage(gradientGrid(t, w, h)), nil); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}
	app1 := []byte{
		0xff, 0xe1, 0x00, 0x22, // APP1, length 34
		'E', 'x', 'i', 'f', 0, 0,
		'M', 'M', 0x00, 0x2a, 0x00, 0x00, 0x00, 0x08, // big-endian TIFF header, IFD at 8
		0x00, 0x01, // one entry
		0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, 0x06, 0x00, 0x00, // orientation = 6
		0x00, 0x00, 0x00, 0x00, // no next IFD
	}
	data := append(append(append([]byte{}, buf.Bytes()[:2]...), app1...), buf.Bytes()[2:]...)

	path := filepath.Join(t.TempDir(), "rotated.jpg")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDecode_AutoOrientation(t *testing.T) {
	path := rotatedJPEG(t, 6, 2)

	g, _, err := Decode(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if g.Width() != 2 || g.Height() != 6 {
		t.Errorf("oriented size: got %dx%d, want 2x6", g.Width(), g.Height())
	}

	g, _, err = Decode(path, AutoOrientation(false))
	if err != nil {
		t.Fatalf("decode without orientation: %v", err)
	}
	if g.Width() != 6 || g.Height() != 2 {
		t.Errorf("stored size: got %dx%d, want 6x2", g.Width(), g.Height())
	}
}
