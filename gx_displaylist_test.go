// gx_displaylist_test.go - Display list record and replay tests

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
	"encoding/binary"
	"testing"
)

type drawCapture struct {
	prims []int
	verts [][]SWVertex
}

func (c *drawCapture) observe(prim int, verts []SWVertex) {
	c.prims = append(c.prims, prim)
	c.verts = append(c.verts, append([]SWVertex(nil), verts...))
}

func setupTexturedColorDesc(gx *GXEngine) {
	gx.SetCullMode(GX_CULL_NONE)
	gx.SetVtxDesc(GX_VA_POS, GX_DIRECT)
	gx.SetVtxDesc(GX_VA_CLR0, GX_DIRECT)
	gx.SetVtxDesc(GX_VA_TEX0, GX_DIRECT)
}

func submitTestTriangle(gx *GXEngine, withEnd bool) {
	gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
	gx.Position3f32(-0.5, -0.5, 0)
	gx.Color4u8(255, 0, 0, 255)
	gx.TexCoord2f32(0, 0)
	gx.Position3f32(-0.5, 0.5, 0)
	gx.Color4u8(0, 255, 0, 255)
	gx.TexCoord2f32(0, 1)
	gx.Position3f32(0.5, -0.5, 0)
	gx.Color4u8(0, 0, 255, 255)
	gx.TexCoord2f32(1, 0)
	if withEnd {
		gx.End()
	}
}

func recordList(t *testing.T, gx *GXEngine, buf []byte, body func()) int {
	t.Helper()
	gx.BeginDisplayList(buf)
	if !gx.IsRecording() {
		t.Fatal("Expected recording to be active")
	}
	body()
	n := gx.EndDisplayList()
	if gx.IsRecording() {
		t.Fatal("Expected recording to stop")
	}
	return n
}

// =============================================================================
// Round trip
// =============================================================================

func TestDisplayList_ReplayMatchesImmediate(t *testing.T) {
	for _, withEnd := range []bool{true, false} {
		immediate := newTestGX(t, 64, 64)
		setupTexturedColorDesc(immediate)
		var want drawCapture
		immediate.SetDrawObserver(want.observe)
		submitTestTriangle(immediate, true)

		replayed := newTestGX(t, 64, 64)
		setupTexturedColorDesc(replayed)
		var got drawCapture
		replayed.SetDrawObserver(got.observe)

		buf := make([]byte, 32)
		n := recordList(t, replayed, buf, func() { submitTestTriangle(replayed, withEnd) })
		if n != GX_DL_HANDLE_SIZE {
			t.Fatalf("Expected handle size %d, got %d", GX_DL_HANDLE_SIZE, n)
		}
		if len(got.prims) != 0 || len(replayed.PendingVertices()) != 0 {
			t.Fatalf("Recording must not draw or buffer vertices")
		}

		replayed.CallDisplayList(buf, n)

		if len(got.prims) != 1 {
			t.Fatalf("withEnd=%v: expected one primitive, got %d", withEnd, len(got.prims))
		}
		if got.prims[0] != want.prims[0] {
			t.Errorf("withEnd=%v: expected prim %#x, got %#x", withEnd, want.prims[0], got.prims[0])
		}
		if len(got.verts[0]) != 3 {
			t.Fatalf("withEnd=%v: expected 3 vertices, got %d", withEnd, len(got.verts[0]))
		}
		for i := range want.verts[0] {
			if got.verts[0][i] != want.verts[0][i] {
				t.Errorf("withEnd=%v vertex %d: expected %+v, got %+v", withEnd, i, want.verts[0][i], got.verts[0][i])
			}
		}
		if !bytes.Equal(immediate.Framebuffer(), replayed.Framebuffer()) {
			t.Errorf("withEnd=%v: replayed frame differs from immediate mode", withEnd)
		}
		if s := replayed.Stats(); s.DLCalls != 1 || s.DLOK != 1 || s.DLCreated != 1 {
			t.Errorf("withEnd=%v: unexpected display list stats %+v", withEnd, s)
		}
	}
}

func TestDisplayList_IndexedCommands(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.SetVtxDesc(GX_VA_POS, GX_INDEX8)
	gx.SetVtxDesc(GX_VA_CLR0, GX_INDEX16)
	gx.SetVtxAttrFmt(GX_VTXFMT0, GX_VA_POS, GX_POS_XYZ, GX_S8, 0)
	gx.SetVtxAttrFmt(GX_VTXFMT0, GX_VA_CLR0, GX_CLR_RGBA, GX_RGBA8, 0)
	gx.SetArray(GX_VA_POS, []byte{1, 2, 3, 0xFF, 0xFE, 0xFD}, 3)
	gx.SetArray(GX_VA_CLR0, []byte{255, 0, 0, 255, 0, 0, 255, 128}, 4)

	var got drawCapture
	gx.SetDrawObserver(got.observe)

	buf := make([]byte, GX_DL_HANDLE_SIZE)
	n := recordList(t, gx, buf, func() {
		gx.Begin(GX_POINTS, GX_VTXFMT0, 2)
		gx.Position1x8(1)
		gx.Color1x16(1)
		gx.Position1x8(0)
		gx.Color1x16(0)
	})
	gx.CallDisplayList(buf, n)

	if len(got.verts) != 1 || len(got.verts[0]) != 2 {
		t.Fatalf("Expected one primitive with 2 vertices, got %+v", got.verts)
	}
	v := got.verts[0]
	if v[0].Pos != [3]float32{-1, -2, -3} || v[1].Pos != [3]float32{1, 2, 3} {
		t.Errorf("Unexpected positions %v %v", v[0].Pos, v[1].Pos)
	}
	if v[0].Clr[2] != 1 || v[1].Clr[0] != 1 {
		t.Errorf("Unexpected colors %v %v", v[0].Clr, v[1].Clr)
	}
}

// =============================================================================
// Handles
// =============================================================================

func TestDisplayList_HandleLayout(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	buf := make([]byte, 64)
	recordList(t, gx, buf, func() {
		gx.Begin(GX_TRIANGLES, GX_VTXFMT0, 3)
		gx.Position3f32(0, 0, 0)
		gx.End()
	})

	if magic := binary.BigEndian.Uint32(buf[0:]); magic != GX_DL_HANDLE_MAGIC {
		t.Errorf("Expected magic %#x, got %#x", GX_DL_HANDLE_MAGIC, magic)
	}
	if count := binary.BigEndian.Uint32(buf[4:]); count != 3 {
		t.Errorf("Expected 3 entries, got %d", count)
	}
	if id := binary.BigEndian.Uint32(buf[8:]); id == 0 {
		t.Error("Expected a non-zero list id")
	}
}

func TestDisplayList_BadHandleIgnored(t *testing.T) {
	gx := newTestGX(t, 32, 32)

	gx.CallDisplayList(make([]byte, 16), 16)
	gx.CallDisplayList([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 4)

	// A real handle with a tampered entry count
	buf := make([]byte, 16)
	recordList(t, gx, buf, func() { gx.Position3f32(0, 0, 0) })
	binary.BigEndian.PutUint32(buf[4:], 99)
	gx.CallDisplayList(buf, 16)

	s := gx.Stats()
	if s.DLBadMagic != 3 || s.DLOK != 0 || s.DLCalls != 3 {
		t.Errorf("Expected 3 rejected calls, got %+v", s)
	}
	if n := countWritten(gx); n != 0 {
		t.Errorf("Expected nothing drawn, got %d pixels", n)
	}
}

func TestDisplayList_HandleFromOtherEngineRejected(t *testing.T) {
	a := newTestGX(t, 32, 32)
	b := newTestGX(t, 32, 32)

	buf := make([]byte, 16)
	recordList(t, a, buf, func() { a.Position3f32(0, 0, 0) })

	b.CallDisplayList(buf, 16)
	if got := b.Stats().DLBadMagic; got != 1 {
		t.Errorf("Expected handle to be unknown to the second engine, got DLBadMagic %d", got)
	}
}

func TestDisplayList_NullCall(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	gx.CallDisplayList(nil, 32)
	gx.CallDisplayList(make([]byte, 32), 0)

	s := gx.Stats()
	if s.DLNull != 2 || s.DLBadMagic != 0 {
		t.Errorf("Expected 2 null calls, got %+v", s)
	}
}

func TestDisplayList_ShortBuffer(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	if n := recordList(t, gx, make([]byte, 8), func() { gx.Position3f32(0, 0, 0) }); n != 0 {
		t.Errorf("Expected 0 for a buffer too small for a handle, got %d", n)
	}
	if n := gx.EndDisplayList(); n != 0 {
		t.Errorf("Expected 0 when not recording, got %d", n)
	}
}

func TestDisplayList_RerecordReplacesList(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	var got drawCapture
	gx.SetDrawObserver(got.observe)

	buf := make([]byte, 16)
	recordList(t, gx, buf, func() {
		gx.Begin(GX_POINTS, GX_VTXFMT0, 1)
		gx.Position3f32(1, 1, 1)
	})
	firstID := binary.BigEndian.Uint32(buf[8:])

	recordList(t, gx, buf, func() {
		gx.Begin(GX_POINTS, GX_VTXFMT0, 1)
		gx.Position3f32(2, 2, 2)
	})
	if id := binary.BigEndian.Uint32(buf[8:]); id != firstID {
		t.Errorf("Expected list id %d to be reused, got %d", firstID, id)
	}
	if len(gx.dl.lists) != 1 {
		t.Errorf("Expected one stored list, got %d", len(gx.dl.lists))
	}

	gx.CallDisplayList(buf, GX_DL_HANDLE_SIZE)
	if len(got.verts) != 1 || got.verts[0][0].Pos != [3]float32{2, 2, 2} {
		t.Errorf("Expected replay of the second recording, got %+v", got.verts)
	}
}

func TestDisplayList_FreeReleasesList(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	buf := make([]byte, 16)
	recordList(t, gx, buf, func() {
		gx.Begin(GX_POINTS, GX_VTXFMT0, 1)
		gx.Position3f32(0, 0, 0)
	})

	if !gx.FreeDisplayList(buf) {
		t.Fatal("Expected the recorded list to be freed")
	}
	if len(gx.dl.lists) != 0 {
		t.Errorf("Expected no stored lists, got %d", len(gx.dl.lists))
	}
	if gx.FreeDisplayList(buf) {
		t.Error("Expected a second free to report nothing freed")
	}

	gx.CallDisplayList(buf, GX_DL_HANDLE_SIZE)
	if s := gx.Stats(); s.DLOK != 0 || s.DLBadMagic != 1 {
		t.Errorf("Expected the freed handle to be rejected, got %+v", s)
	}

	// The buffer can be recorded into again and gets a fresh id
	recordList(t, gx, buf, func() { gx.Position3f32(0, 0, 0) })
	if len(gx.dl.lists) != 1 {
		t.Errorf("Expected one stored list after re-recording, got %d", len(gx.dl.lists))
	}
}

func TestDisplayList_FreeIgnoresForeignBuffers(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	for _, buf := range [][]byte{nil, make([]byte, 4), make([]byte, 16)} {
		if gx.FreeDisplayList(buf) {
			t.Errorf("Expected %d-byte buffer to free nothing", len(buf))
		}
	}
}

func TestDisplayList_LiveListLimit(t *testing.T) {
	gx := newTestGX(t, 32, 32)
	var first []byte
	for i := range GX_MAX_DISPLAY_LISTS {
		buf := make([]byte, GX_DL_HANDLE_SIZE)
		if n := recordList(t, gx, buf, func() {}); n != GX_DL_HANDLE_SIZE {
			t.Fatalf("Expected list %d to be stored, got %d", i, n)
		}
		if i == 0 {
			first = buf
		}
	}

	extra := make([]byte, GX_DL_HANDLE_SIZE)
	if n := recordList(t, gx, extra, func() {}); n != 0 {
		t.Errorf("Expected a new list past the limit to be refused, got %d", n)
	}
	if n := recordList(t, gx, first, func() {}); n != GX_DL_HANDLE_SIZE {
		t.Errorf("Expected re-recording an existing handle to work at the limit, got %d", n)
	}

	gx.FreeDisplayList(first)
	if n := recordList(t, gx, extra, func() {}); n != GX_DL_HANDLE_SIZE {
		t.Errorf("Expected room for a new list after a free, got %d", n)
	}
	if len(gx.dl.lists) != GX_MAX_DISPLAY_LISTS {
		t.Errorf("Expected %d stored lists, got %d", GX_MAX_DISPLAY_LISTS, len(gx.dl.lists))
	}
}
