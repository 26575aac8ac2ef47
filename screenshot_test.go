// screenshot_test.go - PNG frame dump tests

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine

License: GPLv3 or later
*/

package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	return img
}

func TestScreenshot_FrameImageSharesBuffer(t *testing.T) {
	buf := make([]byte, 2*2*4)
	img := FrameImage(buf, 2, 2)
	img.SetNRGBA(1, 1, color.NRGBA{9, 8, 7, 6})
	if buf[12] != 9 || buf[15] != 6 {
		t.Errorf("Expected writes through the image to reach the buffer, got %v", buf[12:])
	}
}

func TestScreenshot_EncodeFlattensAlpha(t *testing.T) {
	buf := []byte{
		255, 0, 0, 255,
		0, 255, 0, 0,
	}
	data, err := EncodeFramePNG(buf, 2, 1, 1)
	if err != nil {
		t.Fatalf("EncodeFramePNG failed: %v", err)
	}
	img := decodePNG(t, data)

	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Fatalf("Expected 2x1, got %v", b)
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Expected opaque red, got %v", got)
	}
	if got := color.RGBAModel.Convert(img.At(1, 0)).(color.RGBA); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Expected alpha 0 flattened to black, got %v", got)
	}
}

func TestScreenshot_EncodeStraightAlpha(t *testing.T) {
	tests := []struct {
		name string
		px   []byte
		want color.RGBA
	}{
		{"cleared_pixel_hidden", []byte{0, 255, 0, 0}, color.RGBA{0, 0, 0, 255}},
		{"half_alpha_over_black", []byte{255, 0, 0, 128}, color.RGBA{128, 0, 0, 255}},
		{"opaque_kept", []byte{10, 20, 30, 255}, color.RGBA{10, 20, 30, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeFramePNG(tt.px, 1, 1, 1)
			if err != nil {
				t.Fatalf("EncodeFramePNG failed: %v", err)
			}
			got := color.RGBAModel.Convert(decodePNG(t, data).At(0, 0)).(color.RGBA)
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestScreenshot_EncodeScales(t *testing.T) {
	buf := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	data, err := EncodeFramePNG(buf, 2, 1, 3)
	if err != nil {
		t.Fatalf("EncodeFramePNG failed: %v", err)
	}
	img := decodePNG(t, data)
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("Expected 6x3, got %v", b)
	}
	if got := color.RGBAModel.Convert(img.At(2, 2)).(color.RGBA); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Expected red at (2,2), got %v", got)
	}
	if got := color.RGBAModel.Convert(img.At(3, 0)).(color.RGBA); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("Expected blue at (3,0), got %v", got)
	}
}

func TestScreenshot_EncodeRejectsShortBuffer(t *testing.T) {
	if _, err := EncodeFramePNG(make([]byte, 7), 2, 1, 1); err == nil {
		t.Fatal("Expected an error for a short buffer")
	}
	if _, err := EncodeFramePNG(nil, 0, 0, 1); err == nil {
		t.Fatal("Expected an error for an empty frame")
	}
}

func TestScreenshot_WriteFramePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := WriteFramePNG(path, make([]byte, 4*4*4), 4, 4, 1); err != nil {
		t.Fatalf("WriteFramePNG failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	decodePNG(t, data)

	bad := filepath.Join(t.TempDir(), "missing", "frame.png")
	if err := WriteFramePNG(bad, make([]byte, 4*4*4), 4, 4, 1); err == nil {
		t.Fatal("Expected an error for a missing directory")
	}
}

func TestScreenshot_Name(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	if got := screenshotName(ts); got != "gxsoft-20260314-092653.png" {
		t.Errorf("Unexpected name %q", got)
	}
}
