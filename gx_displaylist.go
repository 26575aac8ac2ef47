// gx_displaylist.go - Display list recording and replay

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
gx_displaylist.go - Display Lists

BeginDisplayList switches the vertex and primitive entry points into record
mode: each call appends a tagged dlEntry to an internal log instead of
executing. EndDisplayList stores the log in the engine, writes a small
handle into the caller's buffer and returns the handle size, which is what
the caller treats as the list length.

Handle layout (big-endian, GX_DL_HANDLE_SIZE bytes):

  0  magic  0xDEAD0101
  4  entry count
  8  list id in this engine

CallDisplayList validates the handle, replays the entries in order through
the normal entry points and then rasterizes whatever vertices are pending.
Console display lists carry no end-of-primitive marker, so that final flush
is what draws the last primitive of a list.

Stored lists live until FreeDisplayList. At most GX_MAX_DISPLAY_LISTS new
lists are kept; past that EndDisplayList refuses with a warning, while
re-recording into an existing handle still works.
*/

package main

import "encoding/binary"

const (
	GX_DL_HANDLE_MAGIC = 0xDEAD0101
	GX_DL_HANDLE_SIZE  = 12
)

type dlOp uint8

const (
	dlBegin dlOp = iota + 1
	dlEnd
	dlPosition1x16
	dlPosition1x8
	dlNormal1x16
	dlNormal1x8
	dlColor1x16
	dlColor1x8
	dlTexCoord1x16
	dlTexCoord1x8
	dlPosition3f32
	dlNormal3f32
	dlTexCoord2f32
	dlColor4u8
	dlColor1u32
)

// dlEntry is one recorded call. Only the fields used by op are set.
type dlEntry struct {
	op     dlOp
	prim   uint8
	fmt    uint8
	nverts uint16
	index  uint16
	f      [3]float32
	rgba   [4]uint8
	packed uint32
}

type dlHandle struct {
	magic   uint32
	entries []dlEntry
}

type dlRecorder struct {
	recording  bool
	entries    []dlEntry
	target     []byte
	targetID   uint32
	lists      map[uint32]*dlHandle
	nextID     uint32
	overflow   bool
	fullWarned bool

	magicWarnings int
}

func (r *dlRecorder) record(e dlEntry) {
	if len(r.entries) >= GX_MAX_DL_ENTRIES {
		if !r.overflow {
			r.overflow = true
			Logger().Warn("gx: display list full, dropping commands", "capacity", GX_MAX_DL_ENTRIES)
		}
		return
	}
	r.entries = append(r.entries, e)
}

// IsRecording reports whether a display list is being recorded.
func (gx *GXEngine) IsRecording() bool { return gx.dl.recording }

// BeginDisplayList starts recording. buf receives the handle on
// EndDisplayList; re-recording into a buffer that already holds a handle
// from this engine replaces that list.
func (gx *GXEngine) BeginDisplayList(buf []byte) {
	r := &gx.dl
	r.recording = true
	r.entries = make([]dlEntry, 0, 256)
	r.target = buf
	r.overflow = false
	r.targetID = 0
	if id, ok := parseDLHandle(buf); ok {
		if _, known := r.lists[id]; known {
			r.targetID = id
		}
	}
	gx.stats.DLCreated++
}

// EndDisplayList finishes recording and returns the handle size written to
// the buffer given to BeginDisplayList, or 0 if that buffer cannot hold a
// handle or no recording was active.
func (gx *GXEngine) EndDisplayList() int {
	r := &gx.dl
	if !r.recording {
		return 0
	}
	r.recording = false

	entries := make([]dlEntry, len(r.entries))
	copy(entries, r.entries)
	r.entries = nil

	target := r.target
	r.target = nil
	if len(target) < GX_DL_HANDLE_SIZE {
		Logger().Warn("gx: display list buffer too small for handle",
			"size", len(target), "need", GX_DL_HANDLE_SIZE)
		return 0
	}

	id := r.targetID
	if _, live := r.lists[id]; id == 0 || !live {
		id = 0
	}
	if id == 0 && len(r.lists) >= GX_MAX_DISPLAY_LISTS {
		if !r.fullWarned {
			r.fullWarned = true
			Logger().Warn("gx: too many display lists, free unused ones",
				"limit", GX_MAX_DISPLAY_LISTS)
		}
		return 0
	}
	if id == 0 {
		r.nextID++
		id = r.nextID
	}
	r.lists[id] = &dlHandle{magic: GX_DL_HANDLE_MAGIC, entries: entries}

	binary.BigEndian.PutUint32(target[0:], GX_DL_HANDLE_MAGIC)
	binary.BigEndian.PutUint32(target[4:], uint32(len(entries)))
	binary.BigEndian.PutUint32(target[8:], id)
	return GX_DL_HANDLE_SIZE
}

// FreeDisplayList drops the list whose handle is in buf and clears the
// handle magic, so later calls with buf are rejected. It reports whether a
// list was freed.
func (gx *GXEngine) FreeDisplayList(buf []byte) bool {
	id, ok := parseDLHandle(buf)
	if !ok {
		return false
	}
	r := &gx.dl
	if _, known := r.lists[id]; !known {
		return false
	}
	delete(r.lists, id)
	if r.recording && r.targetID == id {
		r.targetID = 0
	}
	r.fullWarned = false
	binary.BigEndian.PutUint32(buf[0:], 0)
	return true
}

// parseDLHandle returns the list id stored in buf if it carries the magic.
func parseDLHandle(buf []byte) (uint32, bool) {
	if len(buf) < GX_DL_HANDLE_SIZE {
		return 0, false
	}
	if binary.BigEndian.Uint32(buf[0:]) != GX_DL_HANDLE_MAGIC {
		return 0, false
	}
	return binary.BigEndian.Uint32(buf[8:]), true
}

// CallDisplayList replays the list whose handle is in buf. Empty or short
// buffers and unknown handles are counted and otherwise ignored.
func (gx *GXEngine) CallDisplayList(buf []byte, nbytes int) {
	gx.stats.DLCalls++
	if len(buf) == 0 || nbytes == 0 {
		gx.stats.DLNull++
		return
	}

	h := gx.lookupDisplayList(buf)
	if h == nil {
		gx.stats.DLBadMagic++
		if gx.dl.magicWarnings < GX_MAX_MAGIC_WARNINGS {
			gx.dl.magicWarnings++
			var magic uint32
			if len(buf) >= 4 {
				magic = binary.BigEndian.Uint32(buf)
			}
			Logger().Warn("gx: display list handle rejected",
				"nbytes", nbytes, "magic", magic, "want", uint32(GX_DL_HANDLE_MAGIC))
		}
		return
	}
	gx.stats.DLOK++

	for i := range h.entries {
		gx.replayEntry(&h.entries[i])
	}

	if len(gx.vtx.buf) > 0 {
		gx.flushPrimitive()
		gx.vtx.buf = gx.vtx.buf[:0]
	}
}

func (gx *GXEngine) lookupDisplayList(buf []byte) *dlHandle {
	id, ok := parseDLHandle(buf)
	if !ok {
		return nil
	}
	h := gx.dl.lists[id]
	if h == nil || h.magic != GX_DL_HANDLE_MAGIC {
		return nil
	}
	if binary.BigEndian.Uint32(buf[4:]) != uint32(len(h.entries)) {
		return nil
	}
	return h
}

func (gx *GXEngine) replayEntry(e *dlEntry) {
	switch e.op {
	case dlBegin:
		gx.Begin(int(e.prim), int(e.fmt), int(e.nverts))
	case dlEnd:
		gx.End()
	case dlPosition1x16:
		gx.Position1x16(e.index)
	case dlPosition1x8:
		gx.Position1x8(uint8(e.index))
	case dlNormal1x16:
		gx.Normal1x16(e.index)
	case dlNormal1x8:
		gx.Normal1x8(uint8(e.index))
	case dlColor1x16:
		gx.Color1x16(e.index)
	case dlColor1x8:
		gx.Color1x8(uint8(e.index))
	case dlTexCoord1x16:
		gx.TexCoord1x16(e.index)
	case dlTexCoord1x8:
		gx.TexCoord1x8(uint8(e.index))
	case dlPosition3f32:
		gx.Position3f32(e.f[0], e.f[1], e.f[2])
	case dlNormal3f32:
		gx.Normal3f32(e.f[0], e.f[1], e.f[2])
	case dlTexCoord2f32:
		gx.TexCoord2f32(e.f[0], e.f[1])
	case dlColor4u8:
		gx.Color4u8(e.rgba[0], e.rgba[1], e.rgba[2], e.rgba[3])
	case dlColor1u32:
		gx.Color1u32(e.packed)
	}
}
