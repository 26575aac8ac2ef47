// gx_texture_decode.go - Console tiled texture format decoders

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
gx_texture_decode.go - Tiled Texture Decoding

Converts the console's tiled texel layouts into a linear RGBA8 buffer
(4 bytes per texel, row-major) so the rasterizer can address texels with
y*width+x.

Tile geometry (width x height, bytes per tile):
  I4, C4, CMPR     8x8  32 bytes
  I8, IA4, C8      8x4  32 bytes
  IA8, RGB565,
  RGB5A3           4x4  32 bytes
  RGBA8            4x4  64 bytes (AR plane then GB plane)

Texels that fall outside the image in partial edge tiles are consumed from
the source but not written. Sources shorter than the tiled size are padded
with zeros before decoding.
*/

package main

// texTileDims returns tile width, tile height and bytes per tile for a format.
func texTileDims(format int) (tw, th, tileBytes int) {
	switch format {
	case GX_TF_I4, GX_TF_C4, GX_TF_CMPR:
		return 8, 8, 32
	case GX_TF_I8, GX_TF_IA4, GX_TF_C8:
		return 8, 4, 32
	case GX_TF_RGBA8:
		return 4, 4, 64
	default:
		return 4, 4, 32
	}
}

// texBitsPerPixel matches the console's GXGetTexBufferSize table.
func texBitsPerPixel(format int) int {
	switch format {
	case GX_TF_I4, GX_TF_C4, GX_TF_CMPR:
		return 4
	case GX_TF_I8, GX_TF_IA4, GX_TF_C8:
		return 8
	case GX_TF_IA8, GX_TF_RGB565, GX_TF_RGB5A3, GX_TF_C14X2:
		return 16
	default:
		return 32
	}
}

// GetTexBufferSize returns the byte size of a width x height image in format.
func GetTexBufferSize(width, height, format int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return (width*height*texBitsPerPixel(format) + 7) / 8
}

// texTiledSize is the number of source bytes the decoder walks, including
// padding of partial edge tiles.
func texTiledSize(width, height, format int) int {
	tw, th, tb := texTileDims(format)
	return ((width + tw - 1) / tw) * ((height + th - 1) / th) * tb
}

// DecodeTexture converts a tiled source image to linear RGBA8. Indexed
// formats look colors up in tlut; with no palette they decode to grayscale
// from the index. Unknown formats produce a magenta fill. Returns nil when
// the source is empty or the dimensions are not positive.
func DecodeTexture(src []byte, width, height, format int, tlut *TlutObj) []byte {
	if len(src) == 0 || width <= 0 || height <= 0 {
		return nil
	}

	if need := texTiledSize(width, height, format); len(src) < need {
		padded := make([]byte, need)
		copy(padded, src)
		src = padded
	}

	dst := make([]byte, width*height*4)
	switch format {
	case GX_TF_RGBA8:
		decodeRGBA8(src, dst, width, height)
	case GX_TF_RGB5A3:
		decode16(src, dst, width, height, rgb5a3ToRGBA)
	case GX_TF_RGB565:
		decode16(src, dst, width, height, rgb565ToRGBA)
	case GX_TF_I4:
		decodeI4(src, dst, width, height)
	case GX_TF_I8:
		decodeI8(src, dst, width, height)
	case GX_TF_IA4:
		decodeIA4(src, dst, width, height)
	case GX_TF_IA8:
		decodeIA8(src, dst, width, height)
	case GX_TF_CMPR:
		decodeCMPR(src, dst, width, height)
	case GX_TF_C8:
		decodeC8(src, dst, width, height, tlut)
	case GX_TF_C4:
		decodeC4(src, dst, width, height, tlut)
	default:
		for i := 0; i < len(dst); i += 4 {
			putTexel(dst, i/4, GX_FALLBACK_TEXEL)
		}
	}
	return dst
}

// putTexel stores a packed 0xRRGGBBAA texel at index i.
func putTexel(dst []byte, i int, c uint32) {
	o := i * 4
	dst[o+0] = byte(c >> 24)
	dst[o+1] = byte(c >> 16)
	dst[o+2] = byte(c >> 8)
	dst[o+3] = byte(c)
}

func packRGBA(r, g, b, a uint32) uint32 {
	return r<<24 | g<<16 | b<<8 | a
}

func rgb5a3ToRGBA(p uint16) uint32 {
	if p&0x8000 != 0 {
		r := uint32(p>>10&0x1F) * 255 / 31
		g := uint32(p>>5&0x1F) * 255 / 31
		b := uint32(p&0x1F) * 255 / 31
		return packRGBA(r, g, b, 255)
	}
	a := uint32(p>>12&0x7) * 255 / 7
	r := uint32(p>>8&0xF) * 255 / 15
	g := uint32(p>>4&0xF) * 255 / 15
	b := uint32(p&0xF) * 255 / 15
	return packRGBA(r, g, b, a)
}

func rgb565ToRGBA(p uint16) uint32 {
	r := uint32(p>>11&0x1F) * 255 / 31
	g := uint32(p>>5&0x3F) * 255 / 63
	b := uint32(p&0x1F) * 255 / 31
	return packRGBA(r, g, b, 255)
}

func be16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func decodeRGBA8(src, dst []byte, w, h int) {
	s := 0
	for ty := 0; ty < h; ty += 4 {
		for tx := 0; tx < w; tx += 4 {
			ar := s
			gb := s + 32
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					px, py := tx+x, ty+y
					if px < w && py < h {
						a, r := src[ar], src[ar+1]
						g, b := src[gb], src[gb+1]
						o := (py*w + px) * 4
						dst[o], dst[o+1], dst[o+2], dst[o+3] = r, g, b, a
					}
					ar += 2
					gb += 2
				}
			}
			s += 64
		}
	}
}

// decode16 walks 4x4 tiles of big-endian 16-bit texels.
func decode16(src, dst []byte, w, h int, conv func(uint16) uint32) {
	s := 0
	for ty := 0; ty < h; ty += 4 {
		for tx := 0; tx < w; tx += 4 {
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					px, py := tx+x, ty+y
					p := be16(src[s:])
					s += 2
					if px < w && py < h {
						putTexel(dst, py*w+px, conv(p))
					}
				}
			}
		}
	}
}

func decodeI4(src, dst []byte, w, h int) {
	s := 0
	for ty := 0; ty < h; ty += 8 {
		for tx := 0; tx < w; tx += 8 {
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x += 2 {
					v := src[s]
					s++
					for n := 0; n < 2; n++ {
						px, py := tx+x+n, ty+y
						i := uint32(v >> 4 & 0xF)
						if n == 1 {
							i = uint32(v & 0xF)
						}
						i = i * 255 / 15
						if px < w && py < h {
							putTexel(dst, py*w+px, packRGBA(i, i, i, 255))
						}
					}
				}
			}
		}
	}
}

func decodeI8(src, dst []byte, w, h int) {
	s := 0
	for ty := 0; ty < h; ty += 4 {
		for tx := 0; tx < w; tx += 8 {
			for y := 0; y < 4; y++ {
				for x := 0; x < 8; x++ {
					px, py := tx+x, ty+y
					i := uint32(src[s])
					s++
					if px < w && py < h {
						putTexel(dst, py*w+px, packRGBA(i, i, i, 255))
					}
				}
			}
		}
	}
}

// decodeIA4: low nibble intensity, high nibble alpha.
func decodeIA4(src, dst []byte, w, h int) {
	s := 0
	for ty := 0; ty < h; ty += 4 {
		for tx := 0; tx < w; tx += 8 {
			for y := 0; y < 4; y++ {
				for x := 0; x < 8; x++ {
					px, py := tx+x, ty+y
					v := src[s]
					s++
					i := uint32(v&0xF) * 255 / 15
					a := uint32(v>>4&0xF) * 255 / 15
					if px < w && py < h {
						putTexel(dst, py*w+px, packRGBA(i, i, i, a))
					}
				}
			}
		}
	}
}

func decodeIA8(src, dst []byte, w, h int) {
	s := 0
	for ty := 0; ty < h; ty += 4 {
		for tx := 0; tx < w; tx += 4 {
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					px, py := tx+x, ty+y
					a := uint32(src[s])
					i := uint32(src[s+1])
					s += 2
					if px < w && py < h {
						putTexel(dst, py*w+px, packRGBA(i, i, i, a))
					}
				}
			}
		}
	}
}

// cmprPalette builds the four colors of one DXT1-style block. When
// c0 > c1 the block is opaque with two 1/3 blends, otherwise the third
// entry is the midpoint and the fourth is transparent black.
func cmprPalette(c0, c1 uint16) [4]uint32 {
	r0 := uint32(c0>>11&0x1F) * 255 / 31
	g0 := uint32(c0>>5&0x3F) * 255 / 63
	b0 := uint32(c0&0x1F) * 255 / 31
	r1 := uint32(c1>>11&0x1F) * 255 / 31
	g1 := uint32(c1>>5&0x3F) * 255 / 63
	b1 := uint32(c1&0x1F) * 255 / 31

	var pal [4]uint32
	pal[0] = packRGBA(r0, g0, b0, 255)
	pal[1] = packRGBA(r1, g1, b1, 255)
	if c0 > c1 {
		pal[2] = packRGBA((2*r0+r1)/3, (2*g0+g1)/3, (2*b0+b1)/3, 255)
		pal[3] = packRGBA((r0+2*r1)/3, (g0+2*g1)/3, (b0+2*b1)/3, 255)
	} else {
		pal[2] = packRGBA((r0+r1)/2, (g0+g1)/2, (b0+b1)/2, 255)
		pal[3] = 0
	}
	return pal
}

// decodeCMPR walks 8x8 meta-tiles of four 4x4 blocks in Z order. Each block
// is two RGB565 endpoints and 32 bits of 2-bit indices, MSB first.
func decodeCMPR(src, dst []byte, w, h int) {
	s := 0
	for ty := 0; ty < h; ty += 8 {
		for tx := 0; tx < w; tx += 8 {
			for by := 0; by < 2; by++ {
				for bx := 0; bx < 2; bx++ {
					c0 := be16(src[s:])
					c1 := be16(src[s+2:])
					bits := uint32(src[s+4])<<24 | uint32(src[s+5])<<16 | uint32(src[s+6])<<8 | uint32(src[s+7])
					s += 8

					pal := cmprPalette(c0, c1)
					for y := 0; y < 4; y++ {
						for x := 0; x < 4; x++ {
							px := tx + bx*4 + x
							py := ty + by*4 + y
							idx := bits >> 30 & 3
							bits <<= 2
							if px < w && py < h {
								putTexel(dst, py*w+px, pal[idx])
							}
						}
					}
				}
			}
		}
	}
}

// paletteLookup resolves an index through tlut, falling back to grayscale
// from the index when the palette is missing or too short.
func paletteLookup(tlut *TlutObj, idx int) uint32 {
	if tlut != nil {
		if c, ok := tlut.entry(idx); ok {
			return c
		}
	}
	i := uint32(idx & 0xFF)
	return packRGBA(i, i, i, 255)
}

func decodeC8(src, dst []byte, w, h int, tlut *TlutObj) {
	s := 0
	for ty := 0; ty < h; ty += 4 {
		for tx := 0; tx < w; tx += 8 {
			for y := 0; y < 4; y++ {
				for x := 0; x < 8; x++ {
					px, py := tx+x, ty+y
					idx := int(src[s])
					s++
					if px < w && py < h {
						putTexel(dst, py*w+px, paletteLookup(tlut, idx))
					}
				}
			}
		}
	}
}

func decodeC4(src, dst []byte, w, h int, tlut *TlutObj) {
	s := 0
	for ty := 0; ty < h; ty += 8 {
		for tx := 0; tx < w; tx += 8 {
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x += 2 {
					v := src[s]
					s++
					for n := 0; n < 2; n++ {
						px, py := tx+x+n, ty+y
						idx := int(v >> 4 & 0xF)
						if n == 1 {
							idx = int(v & 0xF)
						}
						if px < w && py < h {
							putTexel(dst, py*w+px, paletteLookup(tlut, idx))
						}
					}
				}
			}
		}
	}
}
