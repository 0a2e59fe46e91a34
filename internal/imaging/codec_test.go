package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func fixtureImage(t *testing.T) image.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeSniffsFormat(t *testing.T) {
	data := encodePNG(t, fixtureImage(t))
	img, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("definitely not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestTranscodeToJPEG(t *testing.T) {
	data := encodePNG(t, fixtureImage(t))
	out, err := Transcode(data, FormatJPEG, Options{Quality: 80, Speed: 3})
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
		t.Fatalf("output is not valid jpeg: %v", err)
	}
}

func TestTranscodeToPNGAllSpeeds(t *testing.T) {
	data := encodePNG(t, fixtureImage(t))
	// Out-of-range speeds must clamp, never panic or fail.
	for _, speed := range []int{-5, 0, 1, 2, 7, 10, 99} {
		out, err := Transcode(data, FormatPNG, Options{Quality: 50, Speed: speed})
		if err != nil {
			t.Fatalf("speed %d: %v", speed, err)
		}
		if _, err := png.Decode(bytes.NewReader(out)); err != nil {
			t.Fatalf("speed %d: output is not valid png: %v", speed, err)
		}
	}
}

func TestOptionsClamp(t *testing.T) {
	cases := []struct {
		in   Options
		want Options
	}{
		{Options{Quality: -1, Speed: -1}, Options{Quality: 0, Speed: 0}},
		{Options{Quality: 101, Speed: 11}, Options{Quality: 100, Speed: 10}},
		{Options{Quality: 30, Speed: 3}, Options{Quality: 30, Speed: 3}},
	}
	for _, tc := range cases {
		if got := tc.in.Clamp(); got != tc.want {
			t.Fatalf("Clamp(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestPNGCompressionMapping(t *testing.T) {
	if pngCompression(0) != png.BestSpeed {
		t.Fatal("speed 0 should map to fastest compression")
	}
	if pngCompression(1) != png.DefaultCompression {
		t.Fatal("speed 1 should map to default compression")
	}
	for _, speed := range []int{2, 5, 10} {
		if pngCompression(speed) != png.BestCompression {
			t.Fatalf("speed %d should map to best compression", speed)
		}
	}
}

func TestJXLEffortInversion(t *testing.T) {
	if got := jxlEffort(0); got != 10 {
		t.Fatalf("jxlEffort(0) = %d", got)
	}
	if got := jxlEffort(10); got != 1 {
		t.Fatalf("jxlEffort(10) = %d", got)
	}
}
