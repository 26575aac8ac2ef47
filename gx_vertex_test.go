// gx_vertex_test.go - Vertex assembly tests

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
	"encoding/binary"
	"math"
	"testing"
)

func vec3Equal(a, b [3]float32) bool {
	return approxEqual(a[0], b[0], 1e-6) && approxEqual(a[1], b[1], 1e-6) && approxEqual(a[2], b[2], 1e-6)
}

// =============================================================================
// Auto-submit
// =============================================================================

func TestVertex_PositionTexCoordSubmitsEachVertex(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.SetVtxDesc(GX_VA_POS, GX_DIRECT)
	gx.SetVtxDesc(GX_VA_TEX0, GX_DIRECT)

	gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 6)
	for i := 0; i < 5; i++ {
		gx.Position3f32(float32(i), 0, 0)
		if i%2 == 0 {
			gx.Color4u8(1, 2, 3, 4)
		}
		gx.TexCoord2f32(float32(i)*0.1, 0.5)
	}

	pending := gx.PendingVertices()
	if len(pending) != 5 {
		t.Fatalf("Expected 5 pending vertices, got %d", len(pending))
	}
	if pending[3].Pos[0] != 3 || !approxEqual(pending[3].Tex[0][0], 0.3, 1e-6) {
		t.Errorf("Unexpected vertex 3: %+v", pending[3])
	}
}

func TestVertex_CompletionRules(t *testing.T) {
	tests := []struct {
		name   string
		desc   []int
		submit func(gx *GXEngine)
		count  int
	}{
		{"position_only", nil, func(gx *GXEngine) { gx.Position3f32(0, 0, 0) }, 1},
		{"color_pending", []int{GX_VA_CLR0}, func(gx *GXEngine) { gx.Position3f32(0, 0, 0) }, 0},
		{"color_completes", []int{GX_VA_CLR0}, func(gx *GXEngine) {
			gx.Position3f32(0, 0, 0)
			gx.Color4u8(255, 255, 255, 255)
		}, 1},
		{"normal_pending", []int{GX_VA_NRM}, func(gx *GXEngine) { gx.Position3f32(0, 0, 0) }, 0},
		{"normal_completes", []int{GX_VA_NRM}, func(gx *GXEngine) {
			gx.Position3f32(0, 0, 0)
			gx.Normal3f32(0, 0, 1)
		}, 1},
		{"normal_then_color", []int{GX_VA_NRM, GX_VA_CLR0}, func(gx *GXEngine) {
			gx.Position3f32(0, 0, 0)
			gx.Normal3f32(0, 0, 1)
			gx.Color4u8(255, 255, 255, 255)
		}, 1},
		{"color_waits_for_texcoord", []int{GX_VA_CLR0, GX_VA_TEX0}, func(gx *GXEngine) {
			gx.Position3f32(0, 0, 0)
			gx.Color4u8(255, 255, 255, 255)
		}, 0},
		{"texcoord_without_position", []int{GX_VA_CLR0}, func(gx *GXEngine) {
			gx.TexCoord2f32(0.5, 0.5)
		}, 1},
		{"color_before_position", []int{GX_VA_CLR0}, func(gx *GXEngine) {
			gx.Color4u8(255, 0, 0, 255)
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx := newTestGX(t, 32, 32)
			gx.SetVtxDesc(GX_VA_POS, GX_DIRECT)
			for _, attr := range tt.desc {
				gx.SetVtxDesc(attr, GX_DIRECT)
			}
			gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
			tt.submit(gx)
			if got := len(gx.PendingVertices()); got != tt.count {
				t.Errorf("Expected %d pending vertices, got %d", tt.count, got)
			}
		})
	}
}

func TestVertex_NoneDescriptorIgnored(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.SetVtxDesc(GX_VA_POS, GX_DIRECT)
	gx.SetVtxDesc(GX_VA_CLR0, GX_DIRECT)
	gx.SetVtxDesc(GX_VA_CLR0, GX_NONE)

	gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
	gx.Position3f32(1, 2, 3)
	if got := len(gx.PendingVertices()); got != 1 {
		t.Errorf("Expected position to complete the vertex, got %d pending", got)
	}
}

func TestVertex_SetVtxDescvStopsAtNull(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.SetVtxDescv([]VtxDescEntry{
		{GX_VA_POS, GX_DIRECT},
		{GX_VA_NULL, GX_NONE},
		{GX_VA_CLR0, GX_DIRECT},
	})

	gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
	gx.Position3f32(0, 0, 0)
	if got := len(gx.PendingVertices()); got != 1 {
		t.Errorf("Expected descriptors after GX_VA_NULL to be ignored, got %d pending", got)
	}
}

func TestVertex_BeginDiscardsPartialVertex(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.SetVtxDesc(GX_VA_POS, GX_DIRECT)
	gx.SetVtxDesc(GX_VA_CLR0, GX_DIRECT)

	gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
	gx.Position3f32(9, 9, 9)
	gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
	gx.Color4u8(255, 0, 0, 255)
	if got := len(gx.PendingVertices()); got != 0 {
		t.Errorf("Expected the partial vertex to be discarded, got %d pending", got)
	}
}

func TestVertex_EndWithoutVerticesCounted(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 0)
	gx.End()
	if got := gx.Stats().EmptyEnds; got != 1 {
		t.Errorf("Expected EmptyEnds 1, got %d", got)
	}
}

func TestVertex_OverflowDropsVertices(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.Begin(GX_POINTS, GX_VTXFMT0, 0)
	for i := 0; i < GX_MAX_PENDING_VERTS+10; i++ {
		gx.Position3f32(0, 0, 0)
	}
	if got := len(gx.PendingVertices()); got != GX_MAX_PENDING_VERTS {
		t.Errorf("Expected buffer capped at %d, got %d", GX_MAX_PENDING_VERTS, got)
	}
	if got := gx.Stats().DroppedVerts; got != 10 {
		t.Errorf("Expected 10 dropped vertices, got %d", got)
	}
	gx.End()
}

// =============================================================================
// Direct colors
// =============================================================================

func TestVertex_PackedColors(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.SetVtxDesc(GX_VA_POS, GX_DIRECT)
	gx.SetVtxDesc(GX_VA_CLR0, GX_DIRECT)

	gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
	gx.Position3f32(0, 0, 0)
	gx.Color1u32(0xFF000080)
	gx.Position3f32(0, 0, 0)
	gx.Color1u16(0x07E0)
	gx.Position3f32(0, 0, 0)
	gx.Color3u8(0, 0, 255)

	pending := gx.PendingVertices()
	if len(pending) != 3 {
		t.Fatalf("Expected 3 vertices, got %d", len(pending))
	}
	expected := [][4]float32{
		{1, 0, 0, 128.0 / 255},
		{0, 252.0 / 255, 0, 1},
		{0, 0, 1, 1},
	}
	for i, exp := range expected {
		for c := range exp {
			if !approxEqual(pending[i].Clr[c], exp[c], 1e-6) {
				t.Errorf("Vertex %d channel %d: expected %f, got %f", i, c, exp[c], pending[i].Clr[c])
			}
		}
	}
}

// =============================================================================
// Indexed attributes
// =============================================================================

func TestVertex_IndexedPositionS16Fixed(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.SetVtxDesc(GX_VA_POS, GX_INDEX8)
	gx.SetVtxAttrFmt(GX_VTXFMT1, GX_VA_POS, GX_POS_XYZ, GX_S16, 8)

	arr := make([]byte, 12)
	for i, v := range []int16{0, 0, 0, 256, -128, 512} {
		binary.BigEndian.PutUint16(arr[i*2:], uint16(v))
	}
	gx.SetArray(GX_VA_POS, arr, 6)

	gx.Begin(GX_TRIANGLES, GX_VTXFMT1, 3)
	gx.Position1x8(1)
	pending := gx.PendingVertices()
	if len(pending) != 1 {
		t.Fatalf("Expected 1 vertex, got %d", len(pending))
	}
	if !vec3Equal(pending[0].Pos, [3]float32{1, -0.5, 2}) {
		t.Errorf("Expected (1, -0.5, 2), got %v", pending[0].Pos)
	}
}

func TestVertex_IndexedPositionF32XY(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.SetVtxAttrFmt(GX_VTXFMT0, GX_VA_POS, GX_POS_XY, GX_F32, 0)

	arr := make([]byte, 16)
	binary.BigEndian.PutUint32(arr[8:], math.Float32bits(1.5))
	binary.BigEndian.PutUint32(arr[12:], math.Float32bits(-2.25))
	gx.SetArray(GX_VA_POS, arr, 8)

	gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
	gx.Position1x16(1)
	pending := gx.PendingVertices()
	if len(pending) != 1 || !vec3Equal(pending[0].Pos, [3]float32{1.5, -2.25, 0}) {
		t.Errorf("Expected (1.5, -2.25, 0), got %+v", pending)
	}
}

func TestVertex_MissingArrayMarksPresence(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.SetVtxDesc(GX_VA_POS, GX_INDEX16)
	gx.SetVtxDesc(GX_VA_TEX0, GX_DIRECT)

	gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
	gx.Position1x16(7)
	if got := len(gx.PendingVertices()); got != 0 {
		t.Fatalf("Expected no vertex before the texcoord, got %d", got)
	}
	gx.TexCoord2f32(0.25, 0.75)
	pending := gx.PendingVertices()
	if len(pending) != 1 {
		t.Fatalf("Expected texcoord to complete the vertex, got %d", len(pending))
	}
	if pending[0].Pos != [3]float32{} {
		t.Errorf("Expected zero position, got %v", pending[0].Pos)
	}
}

func TestVertex_OutOfRangeIndexActsAsMissing(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.SetVtxAttrFmt(GX_VTXFMT0, GX_VA_POS, GX_POS_XYZ, GX_U8, 0)
	gx.SetArray(GX_VA_POS, []byte{1, 2, 3}, 3)

	gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
	gx.Position1x8(4)
	if got := len(gx.PendingVertices()); got != 0 {
		t.Errorf("Expected out-of-range index to leave the vertex open, got %d", got)
	}
	gx.Position1x8(0)
	pending := gx.PendingVertices()
	if len(pending) != 1 || pending[0].Pos != [3]float32{1, 2, 3} {
		t.Errorf("Expected (1, 2, 3), got %+v", pending)
	}
}

func TestVertex_IndexedNormalScales(t *testing.T) {
	tests := []struct {
		name     string
		compType int
		data     []byte
		expected [3]float32
	}{
		{"s8", GX_S8, []byte{64, 0xC0, 32}, [3]float32{1, -1, 0.5}},
		{"s16", GX_S16, []byte{0x40, 0x00, 0xE0, 0x00, 0x00, 0x00}, [3]float32{1, -0.5, 0}},
		{"f32", GX_F32, func() []byte {
			b := make([]byte, 12)
			binary.BigEndian.PutUint32(b[0:], math.Float32bits(0.25))
			binary.BigEndian.PutUint32(b[4:], math.Float32bits(-1))
			binary.BigEndian.PutUint32(b[8:], math.Float32bits(2))
			return b
		}(), [3]float32{0.25, -1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx := newTestGX(t, 32, 32)
			gx.SetVtxDesc(GX_VA_POS, GX_DIRECT)
			gx.SetVtxDesc(GX_VA_NRM, GX_INDEX8)
			gx.SetVtxAttrFmt(GX_VTXFMT0, GX_VA_NRM, GX_NRM_XYZ, tt.compType, 0)
			gx.SetArray(GX_VA_NRM, tt.data, len(tt.data))

			gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
			gx.Position3f32(0, 0, 0)
			gx.Normal1x8(0)
			pending := gx.PendingVertices()
			if len(pending) != 1 {
				t.Fatalf("Expected 1 vertex, got %d", len(pending))
			}
			if !vec3Equal(pending[0].Nrm, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, pending[0].Nrm)
			}
		})
	}
}

func TestVertex_IndexedColorFormats(t *testing.T) {
	tests := []struct {
		name     string
		compType int
		data     []byte
		stride   int
		expected [4]uint8
	}{
		{"rgba8", GX_RGBA8, []byte{10, 20, 30, 40}, 4, [4]uint8{10, 20, 30, 40}},
		{"rgb8", GX_RGB8, []byte{10, 20, 30}, 3, [4]uint8{10, 20, 30, 255}},
		{"rgbx8", GX_RGBX8, []byte{10, 20, 30, 0}, 4, [4]uint8{10, 20, 30, 255}},
		{"rgba4", GX_RGBA4, []byte{0xF0, 0x8F}, 2, [4]uint8{255, 0, 136, 255}},
		{"rgba6", GX_RGBA6, []byte{0xFC, 0x08, 0x3F}, 3, [4]uint8{252, 0, 128, 252}},
		{"rgb565_stride4", GX_RGB565, []byte{1, 2, 3, 4}, 4, [4]uint8{1, 2, 3, 4}},
		{"rgb565_stride3", GX_RGB565, []byte{1, 2, 3}, 3, [4]uint8{1, 2, 3, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gx := newTestGX(t, 32, 32)
			gx.SetVtxDesc(GX_VA_POS, GX_DIRECT)
			gx.SetVtxDesc(GX_VA_CLR0, GX_INDEX8)
			gx.SetVtxAttrFmt(GX_VTXFMT0, GX_VA_CLR0, GX_CLR_RGBA, tt.compType, 0)
			gx.SetArray(GX_VA_CLR0, tt.data, tt.stride)

			gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
			gx.Position3f32(0, 0, 0)
			gx.Color1x8(0)
			pending := gx.PendingVertices()
			if len(pending) != 1 {
				t.Fatalf("Expected 1 vertex, got %d", len(pending))
			}
			for c := 0; c < 4; c++ {
				want := float32(tt.expected[c]) / 255
				if !approxEqual(pending[0].Clr[c], want, 1e-6) {
					t.Errorf("Channel %d: expected %f, got %f", c, want, pending[0].Clr[c])
				}
			}
		})
	}
}

func TestVertex_IndexedTexCoordU16Fixed(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.SetVtxDesc(GX_VA_POS, GX_DIRECT)
	gx.SetVtxDesc(GX_VA_TEX0, GX_INDEX8)
	gx.SetVtxAttrFmt(GX_VTXFMT0, GX_VA_TEX0, GX_TEX_ST, GX_U16, 8)
	gx.SetArray(GX_VA_TEX0, []byte{0x01, 0x80, 0x00, 0x40}, 4)

	gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
	gx.Position3f32(0, 0, 0)
	gx.TexCoord1x8(0)
	pending := gx.PendingVertices()
	if len(pending) != 1 {
		t.Fatalf("Expected 1 vertex, got %d", len(pending))
	}
	if tc := pending[0].Tex[0]; !approxEqual(tc[0], 1.5, 1e-6) || !approxEqual(tc[1], 0.25, 1e-6) {
		t.Errorf("Expected (1.5, 0.25), got %v", tc)
	}
}

func TestVertex_ReadComp(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		compType int
		frac     int
		expected float32
	}{
		{"u8", []byte{200}, GX_U8, 0, 200},
		{"s8", []byte{0xFF}, GX_S8, 0, -1},
		{"u8_frac", []byte{0x80}, GX_U8, 7, 1},
		{"u16", []byte{0x12, 0x34}, GX_U16, 0, 0x1234},
		{"s16", []byte{0xFF, 0xFE}, GX_S16, 1, -1},
		{"f32_ignores_frac", []byte{0x3F, 0x80, 0x00, 0x00}, GX_F32, 4, 1},
	}
	for _, tt := range tests {
		if got := readComp(tt.data, tt.compType, tt.frac); got != tt.expected {
			t.Errorf("%s: expected %f, got %f", tt.name, tt.expected, got)
		}
	}
}
