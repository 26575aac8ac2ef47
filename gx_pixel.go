// gx_pixel.go - Per-fragment texture, TEV, blend and test stages

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

/*
gx_pixel.go - Fragment Pipeline

Per covered pixel, in order:

  1. depth test against the Z buffer (when enabled); failure discards
  2. nearest texture sample with per-axis wrap
  3. TEV stage 0 combine of rasterized and texture color
  4. source/destination blend (GX_BM_BLEND only), clamped per channel
  5. dual alpha compare; failure discards before any write
  6. color write (when color update is on), alpha forced to 0xFF unless
     alpha update is on
  7. depth write (when Z update is on)

Each stage is a small function so it can be exercised on its own.
*/

package main

import "math"

// fragment is one rasterized sample entering the pixel pipeline.
type fragment struct {
	x, y  int
	z     float32
	color [4]float32
	u, v  float32
}

func floorf(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

// wrapCoord applies a texture wrap mode to a normalized coordinate.
func wrapCoord(c float32, mode int) float32 {
	switch mode {
	case GX_REPEAT:
		return c - floorf(c)
	case GX_MIRROR:
		f := floorf(c)
		if int(f)&1 != 0 {
			return 1 - (c - f)
		}
		return c - f
	default:
		return clampf(c, 0, 1)
	}
}

// sampleTexel returns the nearest texel as packed 0xRRGGBBAA. A nil texture
// samples as opaque white.
func sampleTexel(tc *decodedTexture, u, v float32) uint32 {
	if tc == nil || tc.pixels == nil {
		return GX_NULL_TEXEL
	}
	w, h := tc.width, tc.height
	u = wrapCoord(u, tc.wrapS)
	v = wrapCoord(v, tc.wrapT)

	tx := int(u*float32(w-1) + 0.5)
	ty := int(v*float32(h-1) + 0.5)
	if tx < 0 {
		tx = 0
	}
	if tx >= w {
		tx = w - 1
	}
	if ty < 0 {
		ty = 0
	}
	if ty >= h {
		ty = h - 1
	}
	o := (ty*w + tx) * 4
	p := tc.pixels[o : o+4 : o+4]
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3])
}

// sampleTexture returns the nearest texel as 0..1 RGBA.
func sampleTexture(tc *decodedTexture, u, v float32) [4]float32 {
	t := sampleTexel(tc, u, v)
	const inv255 = float32(1.0 / 255.0)
	return [4]float32{
		float32(t>>24&0xFF) * inv255,
		float32(t>>16&0xFF) * inv255,
		float32(t>>8&0xFF) * inv255,
		float32(t&0xFF) * inv255,
	}
}

// tevCombine evaluates a single TEV stage. Without a texture every mode
// passes the rasterized color through.
func tevCombine(mode int, ras, tex [4]float32, hasTex bool) [4]float32 {
	if !hasTex {
		return ras
	}
	switch mode {
	case GX_MODULATE:
		return [4]float32{tex[0] * ras[0], tex[1] * ras[1], tex[2] * ras[2], tex[3] * ras[3]}
	case GX_DECAL:
		return [4]float32{tex[0], tex[1], tex[2], ras[3]}
	case GX_REPLACE:
		return tex
	case GX_BLEND:
		a := tex[3]
		return [4]float32{
			ras[0]*(1-a) + tex[0]*a,
			ras[1]*(1-a) + tex[1]*a,
			ras[2]*(1-a) + tex[2]*a,
			ras[3],
		}
	default:
		return ras
	}
}

// blendFactor returns the factor for channel ch. Color factors refer to
// the source color on both sides of the equation.
func blendFactor(factor int, src, dst [4]float32, ch int) float32 {
	switch factor {
	case GX_BL_ZERO:
		return 0
	case GX_BL_ONE:
		return 1
	case GX_BL_SRCCLR:
		return src[ch]
	case GX_BL_INVSRCCLR:
		return 1 - src[ch]
	case GX_BL_SRCALPHA:
		return src[3]
	case GX_BL_INVSRCALPHA:
		return 1 - src[3]
	case GX_BL_DSTALPHA:
		return dst[3]
	case GX_BL_INVDSTALPHA:
		return 1 - dst[3]
	default:
		return 1
	}
}

// blendColor computes src*srcFactor + dst*dstFactor per channel, clamped.
func blendColor(src, dst [4]float32, srcFactor, dstFactor int) [4]float32 {
	var out [4]float32
	for c := 0; c < 4; c++ {
		sf := blendFactor(srcFactor, src, dst, c)
		df := blendFactor(dstFactor, src, dst, c)
		out[c] = clampf(src[c]*sf+dst[c]*df, 0, 1)
	}
	return out
}

// compareAlpha tests one side of the alpha compare. Unknown functions pass.
func compareAlpha(fn int, a, ref uint8) bool {
	switch fn {
	case GX_NEVER:
		return false
	case GX_LESS:
		return a < ref
	case GX_EQUAL:
		return a == ref
	case GX_LEQUAL:
		return a <= ref
	case GX_GREATER:
		return a > ref
	case GX_NEQUAL:
		return a != ref
	case GX_GEQUAL:
		return a >= ref
	default:
		return true
	}
}

// combineAlpha merges the two alpha compare results.
func combineAlpha(op int, pass0, pass1 bool) bool {
	switch op {
	case GX_AOP_AND:
		return pass0 && pass1
	case GX_AOP_OR:
		return pass0 || pass1
	case GX_AOP_XOR:
		return pass0 != pass1
	case GX_AOP_XNOR:
		return pass0 == pass1
	default:
		return true
	}
}

// alphaPass runs the configured dual alpha compare on a 0..1 alpha.
func (gx *GXEngine) alphaPass(alpha float32) bool {
	a8 := uint8(alpha * 255)
	return combineAlpha(gx.alphaOp,
		compareAlpha(gx.alphaComp0, a8, gx.alphaRef0),
		compareAlpha(gx.alphaComp1, a8, gx.alphaRef1))
}

// depthCompare tests z against the stored depth. EQUAL and NEQUAL use a
// 1e-6 tolerance.
func depthCompare(z, zbuf float32, fn int) bool {
	switch fn {
	case GX_NEVER:
		return false
	case GX_LESS:
		return z < zbuf
	case GX_EQUAL:
		return abs32(z-zbuf) < 1e-6
	case GX_LEQUAL:
		return z <= zbuf
	case GX_GREATER:
		return z > zbuf
	case GX_NEQUAL:
		return abs32(z-zbuf) >= 1e-6
	case GX_GEQUAL:
		return z >= zbuf
	default:
		return true
	}
}

// processFragment runs one fragment through the pixel pipeline and reports
// whether it reached the buffers. tex may be nil.
func (gx *GXEngine) processFragment(f *fragment, tex *decodedTexture, tevMode int) bool {
	idx := f.y*gx.width + f.x
	if gx.zEnable && !depthCompare(f.z, gx.depthBuffer[idx], gx.zFunc) {
		return false
	}

	texColor := [4]float32{1, 1, 1, 1}
	if tex != nil {
		texColor = sampleTexture(tex, f.u, f.v)
	}
	out := tevCombine(tevMode, f.color, texColor, tex != nil)

	o := idx * 4
	pix := gx.framebuffer[o : o+4 : o+4]
	if gx.blendMode == GX_BM_BLEND {
		const inv255 = float32(1.0 / 255.0)
		dst := [4]float32{
			float32(pix[0]) * inv255,
			float32(pix[1]) * inv255,
			float32(pix[2]) * inv255,
			float32(pix[3]) * inv255,
		}
		out = blendColor(out, dst, gx.blendSrc, gx.blendDst)
	}

	if !gx.alphaPass(out[3]) {
		return false
	}

	if gx.colorUpdate {
		pix[0] = uint8(out[0] * 255)
		pix[1] = uint8(out[1] * 255)
		pix[2] = uint8(out[2] * 255)
		if gx.alphaUpdate {
			pix[3] = uint8(out[3] * 255)
		} else {
			pix[3] = 0xFF
		}
		gx.stats.PixelsWritten++
	}
	if gx.zWrite {
		gx.depthBuffer[idx] = f.z
	}
	return true
}
