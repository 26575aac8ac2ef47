// gx_raster.go - Primitive assembly and edge-function triangle rasterizer

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
gx_raster.go - Triangle Rasterizer

Primitives are split into triangles:

  GX_TRIANGLES      (0,1,2) (3,4,5) ...
  GX_QUADS          (0,1,2) (0,2,3) per quad
  GX_TRIANGLESTRIP  (i,i+1,i+2), odd i as (i+1,i,i+2)
  GX_TRIANGLEFAN    (0,i,i+1)

Lines and points are accepted and ignored.

Each triangle is transformed to screen space, culled by the sign of its
area, rejected when the area is under half a pixel, clipped to the scissor
and frame buffer, then scanned at pixel centers with three edge functions.
Depth interpolates linearly in screen space; color and texcoord 0
interpolate with 1/w weights.
*/

package main

// flushPrimitive hands the pending vertices to the observer and rasterizer.
func (gx *GXEngine) flushPrimitive() {
	verts := gx.vtx.buf
	if gx.drawObserver != nil {
		gx.drawObserver(gx.vtx.prim, verts)
	}
	gx.rasterizePrimitive(verts, gx.vtx.prim)
}

func (gx *GXEngine) rasterizePrimitive(vb []SWVertex, prim int) {
	n := len(vb)
	switch prim {
	case GX_TRIANGLES:
		for i := 0; i+2 < n; i += 3 {
			gx.rasterizeTriangle(&vb[i], &vb[i+1], &vb[i+2])
		}
	case GX_QUADS:
		for i := 0; i+3 < n; i += 4 {
			gx.rasterizeTriangle(&vb[i], &vb[i+1], &vb[i+2])
			gx.rasterizeTriangle(&vb[i], &vb[i+2], &vb[i+3])
		}
	case GX_TRIANGLESTRIP:
		for i := 0; i+2 < n; i++ {
			if i&1 != 0 {
				gx.rasterizeTriangle(&vb[i+1], &vb[i], &vb[i+2])
			} else {
				gx.rasterizeTriangle(&vb[i], &vb[i+1], &vb[i+2])
			}
		}
	case GX_TRIANGLEFAN:
		for i := 1; i+1 < n; i++ {
			gx.rasterizeTriangle(&vb[0], &vb[i], &vb[i+1])
		}
	}
}

// edgeFunction is the signed doubled area of (a, b, p); positive when p is
// to the left of a->b in a Y-down frame with the console's winding.
func edgeFunction(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// invW guards the perspective weight against a vanishing w.
func invW(w float32) float32 {
	if abs32(w) > 1e-6 {
		return 1 / w
	}
	return 1
}

// rasterizeTriangle scan-converts one triangle into the frame buffer.
func (gx *GXEngine) rasterizeTriangle(v0, v1, v2 *SWVertex) {
	gx.stats.Triangles++

	s0, w0 := gx.transformVertex(v0)
	s1, w1 := gx.transformVertex(v1)
	s2, w2 := gx.transformVertex(v2)

	x0, y0, z0 := s0[0], s0[1], s0[2]
	x1, y1, z1 := s1[0], s1[1], s1[2]
	x2, y2, z2 := s2[0], s2[1], s2[2]

	area := edgeFunction(x0, y0, x1, y1, x2, y2)

	switch gx.cullMode {
	case GX_CULL_BACK:
		if area <= 0 {
			gx.stats.RejectCull++
			return
		}
	case GX_CULL_FRONT:
		if area >= 0 {
			gx.stats.RejectCull++
			return
		}
	case GX_CULL_ALL:
		gx.stats.RejectCull++
		return
	}

	if abs32(area) < 0.5 {
		gx.stats.RejectDegenerate++
		return
	}
	invArea := 1 / area

	// Bounding box, inclusive, clamped to scissor then frame buffer
	sc := gx.scissor
	minX := int(maxf(min3f(x0, x1, x2), float32(sc.Left)))
	maxX := int(minf(max3f(x0, x1, x2), float32(sc.Left+sc.Width-1)))
	minY := int(maxf(min3f(y0, y1, y2), float32(sc.Top)))
	maxY := int(minf(max3f(y0, y1, y2), float32(sc.Top+sc.Height-1)))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= gx.width {
		maxX = gx.width - 1
	}
	if maxY >= gx.height {
		maxY = gx.height - 1
	}
	if minX > maxX || minY > maxY {
		gx.stats.RejectOffscreen++
		return
	}
	gx.stats.RasterizedTris++

	// Untextured, uncolored geometry takes channel 0's material color
	vtxHasColor := v0.Clr[0] != 0 || v0.Clr[1] != 0 || v0.Clr[2] != 0 || v0.Clr[3] != 0
	var matColor [4]float32
	if !vtxHasColor {
		m := gx.chanMat[0]
		matColor = [4]float32{float32(m.R) / 255, float32(m.G) / 255, float32(m.B) / 255, float32(m.A) / 255}
	}

	tex := gx.boundTexture(gx.tevOrder[0].tmap)
	tevMode := gx.tevMode[0]

	iw0, iw1, iw2 := invW(w0), invW(w1), invW(w2)
	positive := area > 0

	var frag fragment
	for py := minY; py <= maxY; py++ {
		pyf := float32(py) + 0.5
		for px := minX; px <= maxX; px++ {
			pxf := float32(px) + 0.5

			e0 := edgeFunction(x0, y0, x1, y1, pxf, pyf)
			e1 := edgeFunction(x1, y1, x2, y2, pxf, pyf)
			e2 := edgeFunction(x2, y2, x0, y0, pxf, pyf)
			if positive {
				if e0 < 0 || e1 < 0 || e2 < 0 {
					continue
				}
			} else if e0 > 0 || e1 > 0 || e2 > 0 {
				continue
			}

			// e0 is opposite v2, e1 opposite v0, e2 opposite v1
			b2 := e0 * invArea
			b0 := e1 * invArea
			b1 := e2 * invArea

			frag.x, frag.y = px, py
			frag.z = b0*z0 + b1*z1 + b2*z2

			pw0, pw1, pw2 := b0*iw0, b1*iw1, b2*iw2
			denom := pw0 + pw1 + pw2
			pcInv := float32(1)
			if abs32(denom) > 1e-10 {
				pcInv = 1 / denom
			}

			if vtxHasColor {
				for c := 0; c < 4; c++ {
					val := (pw0*v0.Clr[c] + pw1*v1.Clr[c] + pw2*v2.Clr[c]) * pcInv
					frag.color[c] = clampf(val, 0, 1)
				}
			} else {
				frag.color = matColor
			}

			if tex != nil {
				frag.u = (pw0*v0.Tex[0][0] + pw1*v1.Tex[0][0] + pw2*v2.Tex[0][0]) * pcInv
				frag.v = (pw0*v0.Tex[0][1] + pw1*v1.Tex[0][1] + pw2*v2.Tex[0][1]) * pcInv
			}

			gx.processFragment(&frag, tex, tevMode)
		}
	}
}

// =============================================================================
// Helper functions
// =============================================================================

func min3f(a, b, c float32) float32 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

func max3f(a, b, c float32) float32 {
	if a > b {
		if a > c {
			return a
		}
		return c
	}
	if b > c {
		return b
	}
	return c
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
