// gx_copy.go - Embedded frame buffer copy and clear

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

import "image/color"

// SetCopyClear sets the color and 24-bit depth used when CopyDisp clears.
func (gx *GXEngine) SetCopyClear(c color.RGBA, clearZ uint32) {
	gx.clearColor = c
	gx.clearZ = clearZ & GX_MAX_Z24
}

// clearDepth maps the 24-bit clear value into the 0..1 depth range.
func (gx *GXEngine) clearDepth() float32 {
	return float32(gx.clearZ) / float32(GX_MAX_Z24)
}

// clearBuffers fills the frame buffer with the clear color at alpha 0 and
// the depth buffer with the clear depth. Alpha 0 marks pixels no geometry
// touched, so the frame can be composited over a backdrop.
func (gx *GXEngine) clearBuffers() {
	cc := gx.clearColor
	for i := 0; i < len(gx.framebuffer); i += 4 {
		gx.framebuffer[i+0] = cc.R
		gx.framebuffer[i+1] = cc.G
		gx.framebuffer[i+2] = cc.B
		gx.framebuffer[i+3] = 0
	}
	z := gx.clearDepth()
	for i := range gx.depthBuffer {
		gx.depthBuffer[i] = z
	}
}

// CopyDisp copies the frame buffer into dest (RGBA8, same dimensions; a
// shorter dest receives a prefix) and optionally clears the frame and depth
// buffers. Every GX_STATS_INTERVAL copies the frame counters are logged
// and reset.
func (gx *GXEngine) CopyDisp(dest []byte, clear bool) {
	copy(dest, gx.framebuffer)

	gx.lastFrame = FrameStatus{
		Triangles: gx.stats.Triangles - gx.frameMark.Triangles,
		Pixels:    gx.stats.PixelsWritten - gx.frameMark.PixelsWritten,
	}
	if gx.copyCount%GX_STATS_INTERVAL == 0 {
		gx.reportStats()
	}
	gx.copyCount++
	gx.frameMark = gx.stats

	if clear {
		gx.clearBuffers()
	}
}

// CopyClear returns the values set by SetCopyClear.
func (gx *GXEngine) CopyClear() (color.RGBA, uint32) { return gx.clearColor, gx.clearZ }

// LastFrame reports the triangles and pixels drawn between the two most
// recent copies.
func (gx *GXEngine) LastFrame() FrameStatus { return gx.lastFrame }

// CopyCount returns the number of CopyDisp calls since Init.
func (gx *GXEngine) CopyCount() int { return gx.copyCount }

// GetYScaleFactor returns the vertical scale from EFB to XFB height.
func GetYScaleFactor(efbHeight, xfbHeight int) float32 {
	if efbHeight == 0 {
		return 1
	}
	return float32(xfbHeight) / float32(efbHeight)
}
