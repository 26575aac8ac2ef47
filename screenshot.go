// screenshot.go - PNG frame dumps

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
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"golang.org/x/image/draw"
)

// FrameImage wraps a straight-alpha RGBA frame buffer without copying.
func FrameImage(buf []byte, width, height int) *image.NRGBA {
	return &image.NRGBA{
		Pix:    buf[:width*height*4],
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
}

// ScaleFrame resizes src by an integer factor. smooth selects Catmull-Rom
// over nearest neighbour.
func ScaleFrame(src *image.RGBA, scale int, smooth bool) *image.RGBA {
	if scale <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	var s draw.Scaler = draw.NearestNeighbor
	if smooth {
		s = draw.CatmullRom
	}
	s.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// EncodeFramePNG flattens the frame onto opaque black and encodes it.
func EncodeFramePNG(buf []byte, width, height, scale int) ([]byte, error) {
	if width <= 0 || height <= 0 || len(buf) < width*height*4 {
		return nil, &VideoError{
			Operation: "screenshot",
			Details:   fmt.Sprintf("frame buffer too small for %dx%d", width, height),
		}
	}
	src := FrameImage(buf, width, height)
	flat := image.NewRGBA(src.Bounds())
	draw.Draw(flat, flat.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), src, image.Point{}, draw.Over)

	var out bytes.Buffer
	if err := png.Encode(&out, ScaleFrame(flat, scale, false)); err != nil {
		return nil, &VideoError{Operation: "screenshot", Details: "png encode", Err: err}
	}
	return out.Bytes(), nil
}

// WriteFramePNG writes the frame to path.
func WriteFramePNG(path string, buf []byte, width, height, scale int) error {
	data, err := EncodeFramePNG(buf, width, height, scale)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &VideoError{Operation: "screenshot", Details: path, Err: err}
	}
	return nil
}

func screenshotName(t time.Time) string {
	return "gxsoft-" + t.Format("20060102-150405") + ".png"
}
