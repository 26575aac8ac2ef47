// gx_helpers_test.go - Shared fixtures for the GX core tests

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
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type testVert struct {
	x, y, z float32
	c       [4]uint8
}

func newTestGX(t testing.TB, w, h int) *GXEngine {
	t.Helper()
	gx, err := NewGXEngine(w, h)
	if err != nil {
		t.Fatalf("NewGXEngine(%d, %d) failed: %v", w, h, err)
	}
	return gx
}

func pixelAt(gx *GXEngine, x, y int) [4]byte {
	o := (y*gx.Width() + x) * 4
	fb := gx.Framebuffer()
	return [4]byte{fb[o], fb[o+1], fb[o+2], fb[o+3]}
}

func depthAt(gx *GXEngine, x, y int) float32 {
	return gx.DepthBuffer()[y*gx.Width()+x]
}

// countWritten counts pixels whose alpha no longer holds the clear value.
func countWritten(gx *GXEngine) int {
	n := 0
	fb := gx.Framebuffer()
	for i := 3; i < len(fb); i += 4 {
		if fb[i] != 0 {
			n++
		}
	}
	return n
}

// drawColoredTriangle submits one direct POS+CLR0 triangle.
func drawColoredTriangle(gx *GXEngine, a, b, c testVert) {
	gx.ClearVtxDesc()
	gx.SetVtxDesc(GX_VA_POS, GX_DIRECT)
	gx.SetVtxDesc(GX_VA_CLR0, GX_DIRECT)
	gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
	for _, v := range []testVert{a, b, c} {
		gx.Position3f32(v.x, v.y, v.z)
		gx.Color4u8(v.c[0], v.c[1], v.c[2], v.c[3])
	}
	gx.End()
}

// drawFullscreen covers the whole viewport with one triangle at NDC depth z.
func drawFullscreen(gx *GXEngine, z float32, c [4]uint8) {
	drawColoredTriangle(gx,
		testVert{-1, -1, z, c},
		testVert{-1, 3, z, c},
		testVert{3, -1, z, c})
}

func approxEqual(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

// elemsNear compares element-wise by absolute difference, so a zero on either
// side tolerates float noise up to eps.
func elemsNear(a, b []float32, eps float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !approxEqual(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

func mat4Near(a, b mgl32.Mat4, eps float32) bool { return elemsNear(a[:], b[:], eps) }

func vec4Near(a, b mgl32.Vec4, eps float32) bool { return elemsNear(a[:], b[:], eps) }

func vec3Near(a, b mgl32.Vec3, eps float32) bool { return elemsNear(a[:], b[:], eps) }
