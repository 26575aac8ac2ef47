// video_compositor_test.go - Tests and benchmarks for video compositor

package main

import (
	"image/color"
	"testing"
)

func compositePixel(c *VideoCompositor, x, y int) [4]byte {
	w, _ := c.Dimensions()
	frame := c.Composite()
	o := (y*w + x) * 4
	return [4]byte{frame[o], frame[o+1], frame[o+2], frame[o+3]}
}

func TestCompositor_LayerOrder(t *testing.T) {
	c := NewVideoCompositor(4, 4)
	// Registered out of order; layer 20 must still land on top
	c.RegisterSource(newSolidSource(4, 4, LAYER_OVERLAY, color.RGBA{0, 255, 0, 255}))
	c.RegisterSource(newSolidSource(4, 4, LAYER_BACKDROP, color.RGBA{255, 0, 0, 255}))

	if p := compositePixel(c, 1, 1); p != [4]byte{0, 255, 0, 255} {
		t.Errorf("Expected the overlay on top, got %v", p)
	}
}

func TestCompositor_AlphaBlend(t *testing.T) {
	c := NewVideoCompositor(2, 2)
	c.RegisterSource(newSolidSource(2, 2, LAYER_BACKDROP, color.RGBA{10, 20, 30, 255}))
	c.RegisterSource(newSolidSource(2, 2, LAYER_OVERLAY, color.RGBA{200, 100, 0, 128}))

	// (s*a + d*(255-a) + 127) / 255 per channel
	if p := compositePixel(c, 0, 0); p != [4]byte{105, 60, 15, 255} {
		t.Errorf("Expected {105 60 15 255}, got %v", p)
	}
}

func TestCompositor_TransparentPixelsSkipped(t *testing.T) {
	c := NewVideoCompositor(2, 1)
	c.RegisterSource(newSolidSource(2, 1, LAYER_BACKDROP, color.RGBA{0, 0, 255, 255}))
	layer := newBufferSource(2, 1, LAYER_GX)
	layer.SetBuffer([]byte{255, 0, 0, 255, 99, 99, 99, 0})
	c.RegisterSource(layer)

	if p := compositePixel(c, 0, 0); p != [4]byte{255, 0, 0, 255} {
		t.Errorf("Expected red, got %v", p)
	}
	if p := compositePixel(c, 1, 0); p != [4]byte{0, 0, 255, 255} {
		t.Errorf("Expected the backdrop through alpha 0, got %v", p)
	}
}

func TestCompositor_DisabledAndEmptySources(t *testing.T) {
	c := NewVideoCompositor(2, 2)
	solid := newSolidSource(2, 2, LAYER_BACKDROP, color.RGBA{1, 2, 3, 255})
	c.RegisterSource(solid)
	c.RegisterSource(newBufferSource(2, 2, LAYER_GX))

	solid.SetEnabled(false)
	if p := compositePixel(c, 0, 0); p != [4]byte{} {
		t.Errorf("Expected an empty frame, got %v", p)
	}
	solid.SetEnabled(true)
	if p := compositePixel(c, 0, 0); p != [4]byte{1, 2, 3, 255} {
		t.Errorf("Expected the solid color back, got %v", p)
	}
}

func TestCompositor_NearestScaling(t *testing.T) {
	c := NewVideoCompositor(4, 2)
	src := newBufferSource(2, 1, LAYER_GX)
	src.SetBuffer([]byte{255, 0, 0, 255, 0, 255, 0, 255})
	c.RegisterSource(src)

	want := [][4]byte{
		{255, 0, 0, 255}, {255, 0, 0, 255}, {0, 255, 0, 255}, {0, 255, 0, 255},
	}
	for y := range 2 {
		for x := range 4 {
			if p := compositePixel(c, x, y); p != want[x] {
				t.Errorf("(%d,%d): expected %v, got %v", x, y, want[x], p)
			}
		}
	}
}

func TestCompositor_SetDimensions(t *testing.T) {
	c := NewVideoCompositor(4, 4)
	c.SetDimensions(8, 2)
	if w, h := c.Dimensions(); w != 8 || h != 2 {
		t.Fatalf("Expected 8x2, got %dx%d", w, h)
	}
	if n := len(c.Composite()); n != 8*2*4 {
		t.Errorf("Expected %d bytes, got %d", 8*2*4, n)
	}
}

func BenchmarkCompositor_BackdropAndGX(b *testing.B) {
	c := NewVideoCompositor(GX_DEFAULT_WIDTH, GX_DEFAULT_HEIGHT)
	c.RegisterSource(newSolidSource(GX_DEFAULT_WIDTH, GX_DEFAULT_HEIGHT, LAYER_BACKDROP, color.RGBA{0, 0, 0, 255}))
	layer := newBufferSource(GX_DEFAULT_WIDTH, GX_DEFAULT_HEIGHT, LAYER_GX)
	buf := make([]byte, GX_DEFAULT_WIDTH*GX_DEFAULT_HEIGHT*4)
	for i := 3; i < len(buf); i += 8 {
		buf[i] = 0xFF
	}
	layer.SetBuffer(buf)
	c.RegisterSource(layer)

	b.ReportAllocs()
	for b.Loop() {
		c.Composite()
	}
}
