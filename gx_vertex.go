// gx_vertex.go - Immediate-mode vertex assembly

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
gx_vertex.go - Vertex Assembly

The GX API has no end-of-vertex call. Attributes arrive in a fixed order
(position, normal, color, texcoords) and a vertex is complete when the last
attribute the active descriptor list asks for has been written:

  - any texcoord write completes the vertex unconditionally
  - with no texcoords described, a color write completes it
  - with neither, a normal write completes it
  - with none of the three, the position write completes it

Completed vertices go to a bounded pending buffer that End (or the end of a
display list replay) hands to the rasterizer.

Indexed variants read from arrays bound with SetArray, decoding components
per the active vertex format. Reads past the end of an array behave as if
no array was bound.
*/

package main

import (
	"encoding/binary"
	"math"
)

// SWVertex is one assembled vertex.
type SWVertex struct {
	Pos [3]float32
	Nrm [3]float32
	Clr [4]float32 // 0..1
	Tex [GX_MAX_TEXCOORDS][2]float32
}

type vertexAssembler struct {
	prim   int
	vtxFmt int
	nverts int

	buf     []SWVertex
	dropped bool

	cur     SWVertex
	hasPos  bool
	hasNrm  bool
	hasClr  bool
	tcCount int
}

func (va *vertexAssembler) reset() {
	va.buf = va.buf[:0]
	va.dropped = false
	va.clearCurrent()
}

func (va *vertexAssembler) clearCurrent() {
	va.cur = SWVertex{}
	va.hasPos = false
	va.hasNrm = false
	va.hasClr = false
	va.tcCount = 0
}

// PendingVertices returns the vertices buffered since the last Begin.
func (gx *GXEngine) PendingVertices() []SWVertex {
	return gx.vtx.buf
}

// Begin starts a primitive of type prim using vertex format vtxfmt.
func (gx *GXEngine) Begin(prim, vtxfmt, nverts int) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlBegin, prim: uint8(prim), fmt: uint8(vtxfmt), nverts: uint16(nverts)})
		return
	}
	gx.vtx.prim = prim
	gx.vtx.vtxFmt = vtxfmt
	gx.vtx.nverts = nverts
	gx.vtx.reset()
}

// End rasterizes the buffered vertices as the current primitive.
func (gx *GXEngine) End() {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlEnd})
		return
	}
	if len(gx.vtx.buf) > 0 {
		gx.flushPrimitive()
	} else {
		gx.stats.EmptyEnds++
	}
	gx.vtx.buf = gx.vtx.buf[:0]
}

func (gx *GXEngine) submitVertex() {
	va := &gx.vtx
	if len(va.buf) < GX_MAX_PENDING_VERTS {
		va.buf = append(va.buf, va.cur)
	} else {
		gx.stats.DroppedVerts++
		if !va.dropped {
			va.dropped = true
			Logger().Warn("gx: pending vertex buffer full, dropping vertices",
				"prim", va.prim, "capacity", GX_MAX_PENDING_VERTS)
		}
	}
	va.clearCurrent()
}

// maybeAutoSubmit submits the current vertex once every attribute group the
// descriptor list requires has been written.
func (gx *GXEngine) maybeAutoSubmit() {
	var needNrm, needClr, needTc bool
	for _, d := range gx.vtxDesc {
		if d.typ == GX_NONE {
			continue
		}
		switch {
		case d.attr == GX_VA_NRM || d.attr == GX_VA_NBT:
			needNrm = true
		case d.attr == GX_VA_CLR0 || d.attr == GX_VA_CLR1:
			needClr = true
		case d.attr >= GX_VA_TEX0 && d.attr <= GX_VA_TEX7:
			needTc = true
		}
	}

	va := &gx.vtx
	if !va.hasPos {
		return
	}
	switch {
	case needTc:
		if va.tcCount > 0 {
			gx.submitVertex()
		}
	case needClr:
		if va.hasClr {
			gx.submitVertex()
		}
	case needNrm:
		if va.hasNrm {
			gx.submitVertex()
		}
	default:
		gx.submitVertex()
	}
}

// =============================================================================
// Indexed component decoding
// =============================================================================

func compSize(compType int) int {
	switch compType {
	case GX_U16, GX_S16:
		return 2
	case GX_F32:
		return 4
	default:
		return 1
	}
}

// readComp decodes one big-endian component. Fixed-point types scale by
// 1/2^frac; floats are not scaled.
func readComp(p []byte, compType, frac int) float32 {
	scale := float32(1)
	if frac > 0 {
		scale = 1 / float32(uint32(1)<<uint(frac))
	}
	switch compType {
	case GX_U8:
		return float32(p[0]) * scale
	case GX_S8:
		return float32(int8(p[0])) * scale
	case GX_U16:
		return float32(binary.BigEndian.Uint16(p)) * scale
	case GX_S16:
		return float32(int16(binary.BigEndian.Uint16(p))) * scale
	case GX_F32:
		return math.Float32frombits(binary.BigEndian.Uint32(p))
	default:
		return 0
	}
}

// arrayElement returns size bytes of element index of attr's array, or nil
// if no array is bound or the element lies outside it.
func (gx *GXEngine) arrayElement(attr, index, size int) []byte {
	arr := &gx.arrays[attr]
	if arr.data == nil {
		return nil
	}
	off := index * arr.stride
	if off < 0 || off+size > len(arr.data) {
		return nil
	}
	return arr.data[off : off+size]
}

func (gx *GXEngine) currentAttrFmt(attr int) vtxAttrFmt {
	f := gx.vtx.vtxFmt
	if f < 0 || f >= GX_MAX_VTXFMT {
		f = 0
	}
	return gx.vtxAttrFmt[f][attr]
}

// =============================================================================
// Position
// =============================================================================

func (gx *GXEngine) Position3f32(x, y, z float32) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlPosition3f32, f: [3]float32{x, y, z}})
		return
	}
	gx.vtx.cur.Pos = [3]float32{x, y, z}
	gx.vtx.hasPos = true
	gx.maybeAutoSubmit()
}

func (gx *GXEngine) Position3u16(x, y, z uint16) { gx.Position3f32(float32(x), float32(y), float32(z)) }
func (gx *GXEngine) Position3s16(x, y, z int16)  { gx.Position3f32(float32(x), float32(y), float32(z)) }
func (gx *GXEngine) Position3u8(x, y, z uint8)   { gx.Position3f32(float32(x), float32(y), float32(z)) }
func (gx *GXEngine) Position3s8(x, y, z int8)    { gx.Position3f32(float32(x), float32(y), float32(z)) }
func (gx *GXEngine) Position2f32(x, y float32)   { gx.Position3f32(x, y, 0) }
func (gx *GXEngine) Position2u16(x, y uint16)    { gx.Position3f32(float32(x), float32(y), 0) }
func (gx *GXEngine) Position2s16(x, y int16)     { gx.Position3f32(float32(x), float32(y), 0) }
func (gx *GXEngine) Position2u8(x, y uint8)      { gx.Position3f32(float32(x), float32(y), 0) }
func (gx *GXEngine) Position2s8(x, y int8)       { gx.Position3f32(float32(x), float32(y), 0) }

// Position1x16 fetches position index from the GX_VA_POS array. With no
// usable array the position is marked present without completing the vertex.
func (gx *GXEngine) Position1x16(index uint16) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlPosition1x16, index: index})
		return
	}
	gx.positionIndexed(int(index))
}

func (gx *GXEngine) Position1x8(index uint8) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlPosition1x8, index: uint16(index)})
		return
	}
	gx.positionIndexed(int(index))
}

func (gx *GXEngine) positionIndexed(index int) {
	f := gx.currentAttrFmt(GX_VA_POS)
	cs := compSize(f.compType)
	n := 2
	if f.cnt == GX_POS_XYZ {
		n = 3
	}
	p := gx.arrayElement(GX_VA_POS, index, n*cs)
	if p == nil {
		gx.vtx.hasPos = true
		return
	}
	pos := &gx.vtx.cur.Pos
	pos[0] = readComp(p, f.compType, f.frac)
	pos[1] = readComp(p[cs:], f.compType, f.frac)
	pos[2] = 0
	if n == 3 {
		pos[2] = readComp(p[2*cs:], f.compType, f.frac)
	}
	gx.vtx.hasPos = true
	gx.maybeAutoSubmit()
}

// =============================================================================
// Normal
// =============================================================================

func (gx *GXEngine) Normal3f32(x, y, z float32) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlNormal3f32, f: [3]float32{x, y, z}})
		return
	}
	gx.vtx.cur.Nrm = [3]float32{x, y, z}
	gx.vtx.hasNrm = true
	gx.maybeAutoSubmit()
}

func (gx *GXEngine) Normal3s16(x, y, z int16) {
	gx.Normal3f32(float32(x)/32767, float32(y)/32767, float32(z)/32767)
}

func (gx *GXEngine) Normal3s8(x, y, z int8) {
	gx.Normal3f32(float32(x)/127, float32(y)/127, float32(z)/127)
}

func (gx *GXEngine) Normal1x16(index uint16) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlNormal1x16, index: index})
		return
	}
	gx.normalIndexed(int(index))
}

func (gx *GXEngine) Normal1x8(index uint8) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlNormal1x8, index: uint16(index)})
		return
	}
	gx.normalIndexed(int(index))
}

// normalIndexed applies the source format's fixed normal scale: S8 normals
// are 1.6 fixed point and S16 normals are 1.14.
func (gx *GXEngine) normalIndexed(index int) {
	f := gx.currentAttrFmt(GX_VA_NRM)
	cs := compSize(f.compType)
	p := gx.arrayElement(GX_VA_NRM, index, 3*cs)
	if p == nil {
		gx.vtx.hasNrm = true
		return
	}
	nx := readComp(p, f.compType, f.frac)
	ny := readComp(p[cs:], f.compType, f.frac)
	nz := readComp(p[2*cs:], f.compType, f.frac)
	switch f.compType {
	case GX_S8:
		nx, ny, nz = nx/64, ny/64, nz/64
	case GX_S16:
		nx, ny, nz = nx/16384, ny/16384, nz/16384
	}
	gx.vtx.cur.Nrm = [3]float32{nx, ny, nz}
	gx.vtx.hasNrm = true
	gx.maybeAutoSubmit()
}

// =============================================================================
// Color
// =============================================================================

func (gx *GXEngine) Color4u8(r, g, b, a uint8) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlColor4u8, rgba: [4]uint8{r, g, b, a}})
		return
	}
	gx.setColor(float32(r)/255, float32(g)/255, float32(b)/255, float32(a)/255)
}

func (gx *GXEngine) Color3u8(r, g, b uint8) { gx.Color4u8(r, g, b, 255) }

// Color1u32 takes a packed 0xRRGGBBAA color.
func (gx *GXEngine) Color1u32(c uint32) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlColor1u32, packed: c})
		return
	}
	gx.Color4u8(uint8(c>>24), uint8(c>>16), uint8(c>>8), uint8(c))
}

// Color1u16 takes an RGB565 color; channels are shifted up, not rescaled.
func (gx *GXEngine) Color1u16(c uint16) {
	r := uint8(c>>11&0x1F) << 3
	g := uint8(c>>5&0x3F) << 2
	b := uint8(c&0x1F) << 3
	gx.Color4u8(r, g, b, 255)
}

// Color4f32 sets a 0..1 color directly. It is not captured by display lists.
func (gx *GXEngine) Color4f32(r, g, b, a float32) {
	gx.setColor(r, g, b, a)
}

func (gx *GXEngine) setColor(r, g, b, a float32) {
	gx.vtx.cur.Clr = [4]float32{r, g, b, a}
	gx.vtx.hasClr = true
	gx.maybeAutoSubmit()
}

func (gx *GXEngine) Color1x16(index uint16) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlColor1x16, index: index})
		return
	}
	gx.colorIndexed(int(index))
}

func (gx *GXEngine) Color1x8(index uint8) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlColor1x8, index: uint16(index)})
		return
	}
	gx.colorIndexed(int(index))
}

// colorIndexed decodes a packed color from the GX_VA_CLR0 array. Unknown
// formats (including GX_RGB565) are read as RGBA8, taking alpha only when
// the stride leaves room for it.
func (gx *GXEngine) colorIndexed(index int) {
	f := gx.currentAttrFmt(GX_VA_CLR0)
	stride := gx.arrays[GX_VA_CLR0].stride

	size := 3
	switch f.compType {
	case GX_RGBA8, GX_RGBX8:
		size = 4
	case GX_RGBA4:
		size = 2
	default:
		if f.compType != GX_RGB8 && f.compType != GX_RGBA6 && stride >= 4 {
			size = 4
		}
	}

	p := gx.arrayElement(GX_VA_CLR0, index, size)
	if p == nil {
		gx.vtx.hasClr = true
		return
	}

	switch f.compType {
	case GX_RGBA8:
		gx.Color4u8(p[0], p[1], p[2], p[3])
	case GX_RGB8, GX_RGBX8:
		gx.Color4u8(p[0], p[1], p[2], 255)
	case GX_RGBA4:
		v := binary.BigEndian.Uint16(p)
		gx.Color4u8(uint8(v>>12&0xF)*17, uint8(v>>8&0xF)*17, uint8(v>>4&0xF)*17, uint8(v&0xF)*17)
	case GX_RGBA6:
		v := uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
		gx.Color4u8(uint8(v>>18&0x3F)*4, uint8(v>>12&0x3F)*4, uint8(v>>6&0x3F)*4, uint8(v&0x3F)*4)
	default:
		a := uint8(255)
		if size == 4 {
			a = p[3]
		}
		gx.Color4u8(p[0], p[1], p[2], a)
	}
}

// =============================================================================
// Texture coordinates
// =============================================================================

// TexCoord2f32 stores the next texcoord slot and always completes the vertex.
func (gx *GXEngine) TexCoord2f32(s, t float32) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlTexCoord2f32, f: [3]float32{s, t, 0}})
		return
	}
	gx.pushTexCoord(s, t)
	gx.submitVertex()
}

func (gx *GXEngine) TexCoord2u16(s, t uint16) { gx.TexCoord2f32(float32(s), float32(t)) }
func (gx *GXEngine) TexCoord2s16(s, t int16)  { gx.TexCoord2f32(float32(s), float32(t)) }
func (gx *GXEngine) TexCoord2u8(s, t uint8)   { gx.TexCoord2f32(float32(s), float32(t)) }
func (gx *GXEngine) TexCoord2s8(s, t int8)    { gx.TexCoord2f32(float32(s), float32(t)) }
func (gx *GXEngine) TexCoord1f32(s float32)   { gx.TexCoord2f32(s, 0) }

func (gx *GXEngine) pushTexCoord(s, t float32) {
	va := &gx.vtx
	if va.tcCount < GX_MAX_TEXCOORDS {
		va.cur.Tex[va.tcCount] = [2]float32{s, t}
		va.tcCount++
	}
}

func (gx *GXEngine) TexCoord1x16(index uint16) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlTexCoord1x16, index: index})
		return
	}
	gx.texCoordIndexed(int(index))
}

func (gx *GXEngine) TexCoord1x8(index uint8) {
	if gx.dl.recording {
		gx.dl.record(dlEntry{op: dlTexCoord1x8, index: uint16(index)})
		return
	}
	gx.texCoordIndexed(int(index))
}

// texCoordIndexed reads an ST pair from the GX_VA_TEX0 array. The vertex is
// completed even when the array is missing.
func (gx *GXEngine) texCoordIndexed(index int) {
	f := gx.currentAttrFmt(GX_VA_TEX0)
	cs := compSize(f.compType)
	if p := gx.arrayElement(GX_VA_TEX0, index, 2*cs); p != nil {
		gx.pushTexCoord(readComp(p, f.compType, f.frac), readComp(p[cs:], f.compType, f.frac))
	}
	gx.submitVertex()
}
