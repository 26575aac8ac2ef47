// gx_texture.go - Texture objects, palettes and the decoded texture cache

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
gx_texture.go - Texture Objects and Decoded Texture Cache

TexObj and TlutObj describe caller-owned source data. LoadTexObj binds a
TexObj to one of the eight texture maps and decodes it into that slot's
cache entry. Entries are keyed by a content fingerprint (dimensions, format,
source bytes and palette bytes) rather than by buffer identity, so reloading
the same image is a cache hit even if the caller reallocated it, and
rewriting a buffer in place is detected.

Invariant: each texture slot owns at most one decoded entry. Entries are
replaced on a bind with different content and cleared by InvalidateTexAll.
*/

package main

import (
	"encoding/binary"
	"hash/fnv"
)

// TexObj describes a texture image in console format.
type TexObj struct {
	data     []byte
	width    int
	height   int
	format   int
	wrapS    int
	wrapT    int
	mipmap   bool
	tlutName int // Palette slot for C4/C8, -1 for direct formats
}

// InitTexObj describes a direct-color texture.
func InitTexObj(obj *TexObj, data []byte, width, height, format, wrapS, wrapT int, mipmap bool) {
	if obj == nil {
		return
	}
	*obj = TexObj{
		data:     data,
		width:    width,
		height:   height,
		format:   format,
		wrapS:    wrapS,
		wrapT:    wrapT,
		mipmap:   mipmap,
		tlutName: -1,
	}
}

// InitTexObjCI describes an indexed texture that resolves through palette slot tlutName.
func InitTexObjCI(obj *TexObj, data []byte, width, height, format, wrapS, wrapT int, mipmap bool, tlutName int) {
	if obj == nil {
		return
	}
	InitTexObj(obj, data, width, height, format, wrapS, wrapT, mipmap)
	obj.tlutName = tlutName
}

func (t *TexObj) InitWrapMode(wrapS, wrapT int) { t.wrapS, t.wrapT = wrapS, wrapT }
func (t *TexObj) InitData(data []byte)          { t.data = data }

func (t *TexObj) Width() int   { return t.width }
func (t *TexObj) Height() int  { return t.height }
func (t *TexObj) Format() int  { return t.format }
func (t *TexObj) WrapS() int   { return t.wrapS }
func (t *TexObj) WrapT() int   { return t.wrapT }
func (t *TexObj) Data() []byte { return t.data }
func (t *TexObj) MipMap() bool { return t.mipmap }
func (t *TexObj) Destroy()     { *t = TexObj{tlutName: -1} }

// TlutObj is a color palette for indexed textures.
type TlutObj struct {
	data    []byte
	format  int
	entries int
}

// InitTlutObj describes nEntries big-endian 16-bit palette entries in lut.
func InitTlutObj(obj *TlutObj, lut []byte, format, nEntries int) {
	if obj == nil {
		return
	}
	*obj = TlutObj{data: lut, format: format, entries: nEntries}
}

// entry decodes palette entry idx to packed RGBA.
func (t *TlutObj) entry(idx int) (uint32, bool) {
	if idx < 0 || idx >= t.entries || idx*2+1 >= len(t.data) {
		return 0, false
	}
	p := be16(t.data[idx*2:])
	switch t.format {
	case GX_TL_IA8:
		a := uint32(p >> 8)
		i := uint32(p & 0xFF)
		return packRGBA(i, i, i, a), true
	case GX_TL_RGB565:
		return rgb565ToRGBA(p), true
	default:
		return rgb5a3ToRGBA(p), true
	}
}

// decodedTexture is one texture slot's cache entry.
type decodedTexture struct {
	pixels []byte // Linear RGBA8
	width  int
	height int
	format int
	wrapS  int
	wrapT  int
	key    uint64
}

// texFingerprint hashes everything that affects the decoded image.
func texFingerprint(obj *TexObj, tlut *TlutObj) uint64 {
	h := fnv.New64a()
	var hdr [16]byte
	binary.BigEndian.PutUint32(hdr[0:], uint32(obj.width))
	binary.BigEndian.PutUint32(hdr[4:], uint32(obj.height))
	binary.BigEndian.PutUint32(hdr[8:], uint32(obj.format))
	binary.BigEndian.PutUint32(hdr[12:], uint32(len(obj.data)))
	_, _ = h.Write(hdr[:]) // fnv.Write never returns an error

	n := min(max(texTiledSize(obj.width, obj.height, obj.format), 0), len(obj.data))
	_, _ = h.Write(obj.data[:n])

	if tlut != nil {
		var th [8]byte
		binary.BigEndian.PutUint32(th[0:], uint32(tlut.format))
		binary.BigEndian.PutUint32(th[4:], uint32(tlut.entries))
		_, _ = h.Write(th[:])
		_, _ = h.Write(tlut.data)
	}
	return h.Sum64()
}

// LoadTlut copies a palette description into palette slot name.
func (gx *GXEngine) LoadTlut(obj *TlutObj, name int) {
	if obj == nil || name < 0 || name >= GX_MAX_TLUTS {
		return
	}
	t := *obj
	gx.tluts[name] = &t
}

// LoadTexObj binds obj to texture map mapID, decoding it unless the slot
// already holds the same content, in which case only wrap modes update.
func (gx *GXEngine) LoadTexObj(obj *TexObj, mapID int) {
	if obj == nil || mapID < 0 || mapID >= GX_MAX_TEXMAPS {
		return
	}
	gx.texObj[mapID] = *obj
	gx.texLoaded[mapID] = true

	if obj.width <= 0 || obj.height <= 0 {
		gx.texCache[mapID] = decodedTexture{}
		return
	}

	var tlut *TlutObj
	if obj.format == GX_TF_C4 || obj.format == GX_TF_C8 {
		if obj.tlutName >= 0 && obj.tlutName < GX_MAX_TLUTS {
			tlut = gx.tluts[obj.tlutName]
		}
	}

	key := texFingerprint(obj, tlut)
	tc := &gx.texCache[mapID]
	if tc.pixels != nil && tc.key == key && tc.width == obj.width && tc.height == obj.height {
		tc.wrapS = obj.wrapS
		tc.wrapT = obj.wrapT
		gx.stats.TexCacheHits++
		return
	}

	*tc = decodedTexture{
		pixels: DecodeTexture(obj.data, obj.width, obj.height, obj.format, tlut),
		width:  obj.width,
		height: obj.height,
		format: obj.format,
		wrapS:  obj.wrapS,
		wrapT:  obj.wrapT,
		key:    key,
	}
	gx.stats.TexDecodes++
}

// InvalidateTexAll drops every decoded texture and unbinds all maps.
func (gx *GXEngine) InvalidateTexAll() {
	for i := range gx.texCache {
		gx.texCache[i] = decodedTexture{}
		gx.texLoaded[i] = false
	}
}

// boundTexture returns the decoded texture for map, or nil.
func (gx *GXEngine) boundTexture(mapID int) *decodedTexture {
	if mapID < 0 || mapID >= GX_MAX_TEXMAPS || !gx.texLoaded[mapID] {
		return nil
	}
	tc := &gx.texCache[mapID]
	if tc.pixels == nil {
		return nil
	}
	return tc
}
