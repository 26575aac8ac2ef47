// scene_lua.go - Lua scene runner

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
scene_lua.go - Lua scene runner

A scene is a Lua script that drives a GXEngine through three modules:

  gx   engine entry points and constants (gx.TRIANGLES, gx.VA_POS, ...)
  mtx  matrix helpers; matrices are flat row-major tables of 12 or 16 numbers
  vi   video interface (frame number, blanking, retrace count)

The script must define frame(n), called once per retrace, and may define
setup(), called once after the script body runs.
*/

package main

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
)

//go:embed scenes/default.lua
var defaultSceneSource string

const (
	luaBufferType  = "gx.buffer"
	luaTextureType = "gx.texture"
	luaTlutType    = "gx.tlut"
)

// LuaScene owns one Lua state bound to an engine and its VI bridge.
type LuaScene struct {
	L       *lua.LState
	name    string
	gx      *GXEngine
	vi      *VIBridge
	frameFn *lua.LFunction
	frameNo int
	scratch []byte // CopyDisp target when no VI is attached
}

type luaBuffer struct {
	data []byte
}

// NewLuaScene loads and runs a scene script. vi may be nil.
func NewLuaScene(gx *GXEngine, vi *VIBridge, name, source string) (*LuaScene, error) {
	s := &LuaScene{
		L:    lua.NewState(),
		name: name,
		gx:   gx,
		vi:   vi,
	}
	s.openModules()

	if err := s.L.DoString(source); err != nil {
		s.L.Close()
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}

	fn, ok := s.L.GetGlobal("frame").(*lua.LFunction)
	if !ok {
		s.L.Close()
		return nil, fmt.Errorf("scene %s: no frame(n) function", name)
	}
	s.frameFn = fn

	if setup, ok := s.L.GetGlobal("setup").(*lua.LFunction); ok {
		if err := s.L.CallByParam(lua.P{Fn: setup, NRet: 0, Protect: true}); err != nil {
			s.L.Close()
			return nil, fmt.Errorf("scene %s: setup: %w", name, err)
		}
	}
	return s, nil
}

// RunFrame calls frame(n) with the next frame number.
func (s *LuaScene) RunFrame() error {
	n := s.frameNo
	s.frameNo++
	if err := s.L.CallByParam(lua.P{Fn: s.frameFn, NRet: 0, Protect: true}, lua.LNumber(n)); err != nil {
		return fmt.Errorf("scene %s: frame %d: %w", s.name, n, err)
	}
	return nil
}

func (s *LuaScene) FrameNumber() int { return s.frameNo }

func (s *LuaScene) Close() {
	s.L.Close()
}

func (s *LuaScene) openModules() {
	L := s.L

	bufMT := L.NewTypeMetatable(luaBufferType)
	L.SetField(bufMT, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"size": func(L *lua.LState) int {
			L.Push(lua.LNumber(len(checkBuffer(L, 1).data)))
			return 1
		},
	}))
	L.NewTypeMetatable(luaTextureType)
	L.NewTypeMetatable(luaTlutType)

	gxMod := L.SetFuncs(L.NewTable(), s.gxFuncs())
	for name, v := range luaGXConstants {
		L.SetField(gxMod, name, lua.LNumber(v))
	}
	L.SetGlobal("gx", gxMod)
	L.SetGlobal("mtx", L.SetFuncs(L.NewTable(), luaMtxFuncs))
	L.SetGlobal("vi", L.SetFuncs(L.NewTable(), s.viFuncs()))
}

// =============================================================================
// Argument helpers
// =============================================================================

func checkF32(L *lua.LState, n int) float32 { return float32(L.CheckNumber(n)) }
func optF32(L *lua.LState, n int, def float32) float32 {
	return float32(L.OptNumber(n, lua.LNumber(def)))
}

func checkU8(L *lua.LState, n int) uint8   { return uint8(L.CheckInt(n)) }
func checkS8(L *lua.LState, n int) int8    { return int8(L.CheckInt(n)) }
func checkU16(L *lua.LState, n int) uint16 { return uint16(L.CheckInt(n)) }
func checkS16(L *lua.LState, n int) int16  { return int16(L.CheckInt(n)) }

// checkVtxDescList reads {{attr, type}, ...} as a SetVtxDescv list.
func checkVtxDescList(L *lua.LState, n int) []VtxDescEntry {
	tbl := L.CheckTable(n)
	list := make([]VtxDescEntry, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		pair, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.ArgError(n, fmt.Sprintf("entry %d is not an {attr, type} pair", i))
		}
		list = append(list, VtxDescEntry{
			Attr: int(lua.LVAsNumber(pair.RawGetInt(1))),
			Type: int(lua.LVAsNumber(pair.RawGetInt(2))),
		})
	}
	return list
}

func checkColor(L *lua.LState, n int) color.RGBA {
	return color.RGBA{
		R: checkU8(L, n),
		G: checkU8(L, n+1),
		B: checkU8(L, n+2),
		A: uint8(L.OptInt(n+3, 255)),
	}
}

func checkVec3(L *lua.LState, n int) mgl32.Vec3 {
	return mgl32.Vec3{checkF32(L, n), checkF32(L, n+1), checkF32(L, n+2)}
}

func checkNumbers(L *lua.LState, n, count int) []float32 {
	tbl := L.CheckTable(n)
	if tbl.Len() != count {
		L.ArgError(n, fmt.Sprintf("expected %d numbers, got %d", count, tbl.Len()))
	}
	out := make([]float32, count)
	for i := range out {
		out[i] = float32(lua.LVAsNumber(tbl.RawGetInt(i + 1)))
	}
	return out
}

func checkMtx(L *lua.LState, n int) Mtx {
	v := checkNumbers(L, n, 12)
	var m Mtx
	for i := range 12 {
		m[i/4][i%4] = v[i]
	}
	return m
}

func checkMtx44(L *lua.LState, n int) Mtx44 {
	v := checkNumbers(L, n, 16)
	var m Mtx44
	for i := range 16 {
		m[i/4][i%4] = v[i]
	}
	return m
}

func pushMtx(L *lua.LState, m Mtx) int {
	tbl := L.CreateTable(12, 0)
	for i := range 12 {
		tbl.RawSetInt(i+1, lua.LNumber(m[i/4][i%4]))
	}
	L.Push(tbl)
	return 1
}

func pushMtx44(L *lua.LState, m Mtx44) int {
	tbl := L.CreateTable(16, 0)
	for i := range 16 {
		tbl.RawSetInt(i+1, lua.LNumber(m[i/4][i%4]))
	}
	L.Push(tbl)
	return 1
}

func checkBuffer(L *lua.LState, n int) *luaBuffer {
	ud := L.CheckUserData(n)
	if b, ok := ud.Value.(*luaBuffer); ok {
		return b
	}
	L.ArgError(n, "gx.buffer expected")
	return nil
}

func checkTexture(L *lua.LState, n int) *TexObj {
	ud := L.CheckUserData(n)
	if t, ok := ud.Value.(*TexObj); ok {
		return t
	}
	L.ArgError(n, "gx.texture expected")
	return nil
}

func checkTlut(L *lua.LState, n int) *TlutObj {
	ud := L.CheckUserData(n)
	if t, ok := ud.Value.(*TlutObj); ok {
		return t
	}
	L.ArgError(n, "gx.tlut expected")
	return nil
}

func pushUserData(L *lua.LState, v any, typeName string) int {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(typeName))
	L.Push(ud)
	return 1
}

func fieldInt(tbl *lua.LTable, key string, def int) int {
	if v, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(v)
	}
	return def
}

// packArray builds a big-endian binary string from a table of numbers.
func packArray(size int, put func(b []byte, v float64)) lua.LGFunction {
	return func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		n := tbl.Len()
		out := make([]byte, n*size)
		for i := range n {
			put(out[i*size:], float64(lua.LVAsNumber(tbl.RawGetInt(i+1))))
		}
		L.Push(lua.LString(out))
		return 1
	}
}

// =============================================================================
// gx module
// =============================================================================

func (s *LuaScene) gxFuncs() map[string]lua.LGFunction {
	gx := s.gx
	return map[string]lua.LGFunction{
		// Transform
		"SetProjection": func(L *lua.LState) int {
			gx.SetProjection(checkMtx44(L, 1), L.OptInt(2, GX_PERSPECTIVE))
			return 0
		},
		"LoadPosMtxImm": func(L *lua.LState) int {
			gx.LoadPosMtxImm(checkMtx(L, 1), L.OptInt(2, GX_PNMTX0))
			return 0
		},
		"LoadNrmMtxImm": func(L *lua.LState) int {
			gx.LoadNrmMtxImm(checkMtx(L, 1), L.OptInt(2, GX_PNMTX0))
			return 0
		},
		"LoadTexMtxImm": func(L *lua.LState) int {
			gx.LoadTexMtxImm(checkMtx(L, 1), L.OptInt(2, GX_TEXMTX0))
			return 0
		},
		"SetCurrentMtx": func(L *lua.LState) int {
			gx.SetCurrentMtx(L.CheckInt(1))
			return 0
		},
		"SetViewport": func(L *lua.LState) int {
			gx.SetViewport(checkF32(L, 1), checkF32(L, 2), checkF32(L, 3), checkF32(L, 4),
				optF32(L, 5, 0), optF32(L, 6, 1))
			return 0
		},
		"SetViewportJitter": func(L *lua.LState) int {
			gx.SetViewportJitter(checkF32(L, 1), checkF32(L, 2), checkF32(L, 3), checkF32(L, 4),
				checkF32(L, 5), checkF32(L, 6), L.OptInt(7, 0))
			return 0
		},
		"SetScissor": func(L *lua.LState) int {
			gx.SetScissor(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4))
			return 0
		},

		// Vertex format
		"SetVtxDesc": func(L *lua.LState) int {
			gx.SetVtxDesc(L.CheckInt(1), L.CheckInt(2))
			return 0
		},
		"SetVtxDescv": func(L *lua.LState) int {
			gx.SetVtxDescv(checkVtxDescList(L, 1))
			return 0
		},
		"ClearVtxDesc": func(L *lua.LState) int {
			gx.ClearVtxDesc()
			return 0
		},
		"SetVtxAttrFmt": func(L *lua.LState) int {
			gx.SetVtxAttrFmt(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), L.OptInt(5, 0))
			return 0
		},
		"SetArray": func(L *lua.LState) int {
			gx.SetArray(L.CheckInt(1), []byte(L.CheckString(2)), L.CheckInt(3))
			return 0
		},
		"SetNumTexGens": func(L *lua.LState) int {
			gx.SetNumTexGens(L.CheckInt(1))
			return 0
		},

		// TEV and channels
		"SetNumTevStages": func(L *lua.LState) int {
			gx.SetNumTevStages(L.CheckInt(1))
			return 0
		},
		"SetTevOp": func(L *lua.LState) int {
			gx.SetTevOp(L.CheckInt(1), L.CheckInt(2))
			return 0
		},
		"SetTevOrder": func(L *lua.LState) int {
			gx.SetTevOrder(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4))
			return 0
		},
		"SetNumChans": func(L *lua.LState) int {
			gx.SetNumChans(L.CheckInt(1))
			return 0
		},
		"SetChanMatColor": func(L *lua.LState) int {
			gx.SetChanMatColor(L.CheckInt(1), checkColor(L, 2))
			return 0
		},
		"SetChanAmbColor": func(L *lua.LState) int {
			gx.SetChanAmbColor(L.CheckInt(1), checkColor(L, 2))
			return 0
		},

		// Pixel engine
		"SetBlendMode": func(L *lua.LState) int {
			gx.SetBlendMode(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.OptInt(4, GX_LO_COPY))
			return 0
		},
		"SetZMode": func(L *lua.LState) int {
			gx.SetZMode(L.CheckBool(1), L.CheckInt(2), L.CheckBool(3))
			return 0
		},
		"SetColorUpdate": func(L *lua.LState) int {
			gx.SetColorUpdate(L.CheckBool(1))
			return 0
		},
		"SetAlphaUpdate": func(L *lua.LState) int {
			gx.SetAlphaUpdate(L.CheckBool(1))
			return 0
		},
		"SetAlphaCompare": func(L *lua.LState) int {
			gx.SetAlphaCompare(L.CheckInt(1), checkU8(L, 2), L.CheckInt(3), L.CheckInt(4), checkU8(L, 5))
			return 0
		},
		"SetCullMode": func(L *lua.LState) int {
			gx.SetCullMode(L.CheckInt(1))
			return 0
		},
		"SetFog": func(L *lua.LState) int {
			gx.SetFog(L.CheckInt(1), checkF32(L, 2), checkF32(L, 3), checkF32(L, 4), checkF32(L, 5), checkColor(L, 6))
			return 0
		},
		"SetFogColor": func(L *lua.LState) int {
			gx.SetFogColor(checkColor(L, 1))
			return 0
		},
		"SetCopyClear": func(L *lua.LState) int {
			gx.SetCopyClear(checkColor(L, 1), uint32(L.OptInt(5, GX_MAX_Z24)))
			return 0
		},
		"CopyDisp": func(L *lua.LState) int {
			gx.CopyDisp(s.copyTarget(), L.OptBool(1, true))
			return 0
		},

		// Vertices
		"Begin": func(L *lua.LState) int {
			gx.Begin(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3))
			return 0
		},
		"End": func(L *lua.LState) int {
			gx.End()
			return 0
		},
		"Position3f32": func(L *lua.LState) int {
			gx.Position3f32(checkF32(L, 1), checkF32(L, 2), checkF32(L, 3))
			return 0
		},
		"Position2f32": func(L *lua.LState) int {
			gx.Position2f32(checkF32(L, 1), checkF32(L, 2))
			return 0
		},
		"Position3u16": func(L *lua.LState) int {
			gx.Position3u16(checkU16(L, 1), checkU16(L, 2), checkU16(L, 3))
			return 0
		},
		"Position3s16": func(L *lua.LState) int {
			gx.Position3s16(checkS16(L, 1), checkS16(L, 2), checkS16(L, 3))
			return 0
		},
		"Position3u8": func(L *lua.LState) int {
			gx.Position3u8(checkU8(L, 1), checkU8(L, 2), checkU8(L, 3))
			return 0
		},
		"Position3s8": func(L *lua.LState) int {
			gx.Position3s8(checkS8(L, 1), checkS8(L, 2), checkS8(L, 3))
			return 0
		},
		"Position2u16": func(L *lua.LState) int {
			gx.Position2u16(checkU16(L, 1), checkU16(L, 2))
			return 0
		},
		"Position2s16": func(L *lua.LState) int {
			gx.Position2s16(checkS16(L, 1), checkS16(L, 2))
			return 0
		},
		"Position2u8": func(L *lua.LState) int {
			gx.Position2u8(checkU8(L, 1), checkU8(L, 2))
			return 0
		},
		"Position2s8": func(L *lua.LState) int {
			gx.Position2s8(checkS8(L, 1), checkS8(L, 2))
			return 0
		},
		"Position1x16": func(L *lua.LState) int {
			gx.Position1x16(uint16(L.CheckInt(1)))
			return 0
		},
		"Position1x8": func(L *lua.LState) int {
			gx.Position1x8(checkU8(L, 1))
			return 0
		},
		"Normal3f32": func(L *lua.LState) int {
			gx.Normal3f32(checkF32(L, 1), checkF32(L, 2), checkF32(L, 3))
			return 0
		},
		"Normal3s16": func(L *lua.LState) int {
			gx.Normal3s16(checkS16(L, 1), checkS16(L, 2), checkS16(L, 3))
			return 0
		},
		"Normal3s8": func(L *lua.LState) int {
			gx.Normal3s8(checkS8(L, 1), checkS8(L, 2), checkS8(L, 3))
			return 0
		},
		"Normal1x16": func(L *lua.LState) int {
			gx.Normal1x16(uint16(L.CheckInt(1)))
			return 0
		},
		"Normal1x8": func(L *lua.LState) int {
			gx.Normal1x8(checkU8(L, 1))
			return 0
		},
		"Color4u8": func(L *lua.LState) int {
			c := checkColor(L, 1)
			gx.Color4u8(c.R, c.G, c.B, c.A)
			return 0
		},
		"Color3u8": func(L *lua.LState) int {
			gx.Color3u8(checkU8(L, 1), checkU8(L, 2), checkU8(L, 3))
			return 0
		},
		"Color1u32": func(L *lua.LState) int {
			gx.Color1u32(uint32(L.CheckInt64(1)))
			return 0
		},
		"Color1u16": func(L *lua.LState) int {
			gx.Color1u16(checkU16(L, 1))
			return 0
		},
		"Color4f32": func(L *lua.LState) int {
			gx.Color4f32(checkF32(L, 1), checkF32(L, 2), checkF32(L, 3), optF32(L, 4, 1))
			return 0
		},
		"Color1x16": func(L *lua.LState) int {
			gx.Color1x16(uint16(L.CheckInt(1)))
			return 0
		},
		"Color1x8": func(L *lua.LState) int {
			gx.Color1x8(checkU8(L, 1))
			return 0
		},
		"TexCoord2f32": func(L *lua.LState) int {
			gx.TexCoord2f32(checkF32(L, 1), checkF32(L, 2))
			return 0
		},
		"TexCoord2u16": func(L *lua.LState) int {
			gx.TexCoord2u16(checkU16(L, 1), checkU16(L, 2))
			return 0
		},
		"TexCoord2s16": func(L *lua.LState) int {
			gx.TexCoord2s16(checkS16(L, 1), checkS16(L, 2))
			return 0
		},
		"TexCoord2u8": func(L *lua.LState) int {
			gx.TexCoord2u8(checkU8(L, 1), checkU8(L, 2))
			return 0
		},
		"TexCoord2s8": func(L *lua.LState) int {
			gx.TexCoord2s8(checkS8(L, 1), checkS8(L, 2))
			return 0
		},
		"TexCoord1f32": func(L *lua.LState) int {
			gx.TexCoord1f32(checkF32(L, 1))
			return 0
		},
		"TexCoord1x16": func(L *lua.LState) int {
			gx.TexCoord1x16(uint16(L.CheckInt(1)))
			return 0
		},
		"TexCoord1x8": func(L *lua.LState) int {
			gx.TexCoord1x8(checkU8(L, 1))
			return 0
		},

		// Display lists
		"BeginDisplayList": func(L *lua.LState) int {
			b := &luaBuffer{data: make([]byte, L.OptInt(1, GX_DL_HANDLE_SIZE))}
			gx.BeginDisplayList(b.data)
			return pushUserData(L, b, luaBufferType)
		},
		"EndDisplayList": func(L *lua.LState) int {
			L.Push(lua.LNumber(gx.EndDisplayList()))
			return 1
		},
		"CallDisplayList": func(L *lua.LState) int {
			b := checkBuffer(L, 1)
			gx.CallDisplayList(b.data, L.OptInt(2, len(b.data)))
			return 0
		},
		"FreeDisplayList": func(L *lua.LState) int {
			L.Push(lua.LBool(gx.FreeDisplayList(checkBuffer(L, 1).data)))
			return 1
		},

		// Textures
		"texture": func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			w, h := fieldInt(tbl, "w", 0), fieldInt(tbl, "h", 0)
			format := fieldInt(tbl, "fmt", GX_TF_RGBA8)
			data := []byte(lua.LVAsString(tbl.RawGetString("data")))
			obj := &TexObj{}
			wrapS := fieldInt(tbl, "wrap_s", GX_REPEAT)
			wrapT := fieldInt(tbl, "wrap_t", GX_REPEAT)
			if tlut := fieldInt(tbl, "tlut", -1); tlut >= 0 {
				InitTexObjCI(obj, data, w, h, format, wrapS, wrapT, false, tlut)
			} else {
				InitTexObj(obj, data, w, h, format, wrapS, wrapT, false)
			}
			return pushUserData(L, obj, luaTextureType)
		},
		"LoadTexObj": func(L *lua.LState) int {
			gx.LoadTexObj(checkTexture(L, 1), L.OptInt(2, GX_TEXMAP0))
			return 0
		},
		"InvalidateTexAll": func(L *lua.LState) int {
			gx.InvalidateTexAll()
			return 0
		},
		"tlut": func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			obj := &TlutObj{}
			InitTlutObj(obj, []byte(lua.LVAsString(tbl.RawGetString("data"))),
				fieldInt(tbl, "fmt", GX_TL_RGB5A3), fieldInt(tbl, "n", 256))
			return pushUserData(L, obj, luaTlutType)
		},
		"LoadTlut": func(L *lua.LState) int {
			gx.LoadTlut(checkTlut(L, 1), L.CheckInt(2))
			return 0
		},
		"GetTexBufferSize": func(L *lua.LState) int {
			L.Push(lua.LNumber(GetTexBufferSize(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3))))
			return 1
		},

		// Binary array builders for SetArray and texture data
		"u8array": packArray(1, func(b []byte, v float64) { b[0] = uint8(v) }),
		"s16array": packArray(2, func(b []byte, v float64) {
			binary.BigEndian.PutUint16(b, uint16(int16(v)))
		}),
		"u16array": packArray(2, func(b []byte, v float64) {
			binary.BigEndian.PutUint16(b, uint16(v))
		}),
		"f32array": packArray(4, func(b []byte, v float64) {
			binary.BigEndian.PutUint32(b, math.Float32bits(float32(v)))
		}),

		"Stats": func(L *lua.LState) int {
			st := gx.Stats()
			tbl := L.NewTable()
			L.SetField(tbl, "triangles", lua.LNumber(st.Triangles))
			L.SetField(tbl, "rasterized", lua.LNumber(st.RasterizedTris))
			L.SetField(tbl, "pixels", lua.LNumber(st.PixelsWritten))
			L.SetField(tbl, "dl_calls", lua.LNumber(st.DLCalls))
			L.SetField(tbl, "tex_decodes", lua.LNumber(st.TexDecodes))
			L.Push(tbl)
			return 1
		},
	}
}

func (s *LuaScene) copyTarget() []byte {
	if s.vi != nil {
		return s.vi.XFB()
	}
	if s.scratch == nil {
		s.scratch = make([]byte, s.gx.Width()*s.gx.Height()*4)
	}
	return s.scratch
}

// =============================================================================
// vi module
// =============================================================================

func (s *LuaScene) viFuncs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"frame": func(L *lua.LState) int {
			L.Push(lua.LNumber(s.frameNo))
			return 1
		},
		"SetBlack": func(L *lua.LState) int {
			if s.vi != nil {
				s.vi.SetBlack(L.CheckBool(1))
			}
			return 0
		},
		"GetRetraceCount": func(L *lua.LState) int {
			var n uint32
			if s.vi != nil {
				n = s.vi.GetRetraceCount()
			}
			L.Push(lua.LNumber(n))
			return 1
		},
		"width": func(L *lua.LState) int {
			L.Push(lua.LNumber(s.gx.Width()))
			return 1
		},
		"height": func(L *lua.LState) int {
			L.Push(lua.LNumber(s.gx.Height()))
			return 1
		},
	}
}

// =============================================================================
// mtx module
// =============================================================================

func checkAxis(L *lua.LState, n int) byte {
	a := L.CheckString(n)
	if len(a) != 1 {
		L.ArgError(n, "axis must be 'x', 'y' or 'z'")
	}
	return a[0]
}

var luaMtxFuncs = map[string]lua.LGFunction{
	"Identity": func(L *lua.LState) int { return pushMtx(L, MtxIdentity()) },
	"Trans": func(L *lua.LState) int {
		return pushMtx(L, MtxTrans(checkF32(L, 1), checkF32(L, 2), checkF32(L, 3)))
	},
	"Scale": func(L *lua.LState) int {
		return pushMtx(L, MtxScale(checkF32(L, 1), checkF32(L, 2), checkF32(L, 3)))
	},
	"RotDeg": func(L *lua.LState) int { return pushMtx(L, MtxRotDeg(checkAxis(L, 1), checkF32(L, 2))) },
	"RotRad": func(L *lua.LState) int { return pushMtx(L, MtxRotRad(checkAxis(L, 1), checkF32(L, 2))) },
	"RotAxisDeg": func(L *lua.LState) int {
		return pushMtx(L, MtxRotAxisRad(checkVec3(L, 1), mgl32.DegToRad(checkF32(L, 4))))
	},
	"Concat": func(L *lua.LState) int { return pushMtx(L, MtxConcat(checkMtx(L, 1), checkMtx(L, 2))) },
	"Inverse": func(L *lua.LState) int {
		m, ok := MtxInverse(checkMtx(L, 1))
		pushMtx(L, m)
		L.Push(lua.LBool(ok))
		return 2
	},
	"LookAt": func(L *lua.LState) int {
		return pushMtx(L, MtxLookAt(checkVec3(L, 1), checkVec3(L, 4), checkVec3(L, 7)))
	},
	"Perspective": func(L *lua.LState) int {
		return pushMtx44(L, MtxPerspective(checkF32(L, 1), checkF32(L, 2), checkF32(L, 3), checkF32(L, 4)))
	},
	"Frustum": func(L *lua.LState) int {
		return pushMtx44(L, MtxFrustum(checkF32(L, 1), checkF32(L, 2), checkF32(L, 3),
			checkF32(L, 4), checkF32(L, 5), checkF32(L, 6)))
	},
	"Ortho": func(L *lua.LState) int {
		return pushMtx44(L, MtxOrtho(checkF32(L, 1), checkF32(L, 2), checkF32(L, 3),
			checkF32(L, 4), checkF32(L, 5), checkF32(L, 6)))
	},
}

var luaGXConstants = map[string]int{
	"QUADS":          GX_QUADS,
	"TRIANGLES":      GX_TRIANGLES,
	"TRIANGLESTRIP":  GX_TRIANGLESTRIP,
	"TRIANGLEFAN":    GX_TRIANGLEFAN,
	"LINES":          GX_LINES,
	"LINESTRIP":      GX_LINESTRIP,
	"POINTS":         GX_POINTS,
	"VA_PNMTXIDX":    GX_VA_PNMTXIDX,
	"VA_TEX0MTXIDX":  GX_VA_TEX0MTXIDX,
	"VA_TEX7MTXIDX":  GX_VA_TEX7MTXIDX,
	"VA_POS":         GX_VA_POS,
	"VA_NRM":         GX_VA_NRM,
	"VA_CLR0":        GX_VA_CLR0,
	"VA_CLR1":        GX_VA_CLR1,
	"VA_TEX0":        GX_VA_TEX0,
	"VA_TEX1":        GX_VA_TEX1,
	"VA_TEX2":        GX_VA_TEX2,
	"VA_TEX3":        GX_VA_TEX3,
	"VA_TEX4":        GX_VA_TEX4,
	"VA_TEX5":        GX_VA_TEX5,
	"VA_TEX6":        GX_VA_TEX6,
	"VA_TEX7":        GX_VA_TEX7,
	"POS_MTX_ARRAY":  GX_POS_MTX_ARRAY,
	"NRM_MTX_ARRAY":  GX_NRM_MTX_ARRAY,
	"TEX_MTX_ARRAY":  GX_TEX_MTX_ARRAY,
	"LIGHT_ARRAY":    GX_LIGHT_ARRAY,
	"VA_NBT":         GX_VA_NBT,
	"VA_MAX_ATTR":    GX_VA_MAX_ATTR,
	"VA_NULL":        GX_VA_NULL,
	"NONE":           GX_NONE,
	"DIRECT":         GX_DIRECT,
	"INDEX8":         GX_INDEX8,
	"INDEX16":        GX_INDEX16,
	"POS_XY":         GX_POS_XY,
	"POS_XYZ":        GX_POS_XYZ,
	"NRM_XYZ":        GX_NRM_XYZ,
	"NRM_NBT":        GX_NRM_NBT,
	"CLR_RGB":        GX_CLR_RGB,
	"CLR_RGBA":       GX_CLR_RGBA,
	"TEX_S":          GX_TEX_S,
	"TEX_ST":         GX_TEX_ST,
	"U8":             GX_U8,
	"S8":             GX_S8,
	"U16":            GX_U16,
	"S16":            GX_S16,
	"F32":            GX_F32,
	"RGB565":         GX_RGB565,
	"RGB8":           GX_RGB8,
	"RGBX8":          GX_RGBX8,
	"RGBA4":          GX_RGBA4,
	"RGBA6":          GX_RGBA6,
	"RGBA8":          GX_RGBA8,
	"VTXFMT0":        GX_VTXFMT0,
	"VTXFMT1":        GX_VTXFMT1,
	"VTXFMT2":        GX_VTXFMT2,
	"VTXFMT3":        GX_VTXFMT3,
	"VTXFMT4":        GX_VTXFMT4,
	"VTXFMT5":        GX_VTXFMT5,
	"VTXFMT6":        GX_VTXFMT6,
	"VTXFMT7":        GX_VTXFMT7,
	"PNMTX0":         GX_PNMTX0,
	"PNMTX1":         GX_PNMTX1,
	"PNMTX2":         GX_PNMTX2,
	"PNMTX3":         GX_PNMTX3,
	"PNMTX4":         GX_PNMTX4,
	"PNMTX5":         GX_PNMTX5,
	"PNMTX6":         GX_PNMTX6,
	"PNMTX7":         GX_PNMTX7,
	"PNMTX8":         GX_PNMTX8,
	"PNMTX9":         GX_PNMTX9,
	"TEXMTX0":        GX_TEXMTX0,
	"PERSPECTIVE":    GX_PERSPECTIVE,
	"ORTHOGRAPHIC":   GX_ORTHOGRAPHIC,
	"TF_I4":          GX_TF_I4,
	"TF_I8":          GX_TF_I8,
	"TF_IA4":         GX_TF_IA4,
	"TF_IA8":         GX_TF_IA8,
	"TF_RGB565":      GX_TF_RGB565,
	"TF_RGB5A3":      GX_TF_RGB5A3,
	"TF_RGBA8":       GX_TF_RGBA8,
	"TF_C4":          GX_TF_C4,
	"TF_C8":          GX_TF_C8,
	"TF_C14X2":       GX_TF_C14X2,
	"TF_CMPR":        GX_TF_CMPR,
	"TL_IA8":         GX_TL_IA8,
	"TL_RGB565":      GX_TL_RGB565,
	"TL_RGB5A3":      GX_TL_RGB5A3,
	"CLAMP":          GX_CLAMP,
	"REPEAT":         GX_REPEAT,
	"MIRROR":         GX_MIRROR,
	"TEXMAP0":        GX_TEXMAP0,
	"TEXMAP1":        GX_TEXMAP1,
	"TEXMAP2":        GX_TEXMAP2,
	"TEXMAP3":        GX_TEXMAP3,
	"TEXMAP4":        GX_TEXMAP4,
	"TEXMAP5":        GX_TEXMAP5,
	"TEXMAP6":        GX_TEXMAP6,
	"TEXMAP7":        GX_TEXMAP7,
	"TEXMAP_NULL":    GX_TEXMAP_NULL,
	"TEXCOORD0":      GX_TEXCOORD0,
	"TEXCOORD1":      GX_TEXCOORD1,
	"TEXCOORD2":      GX_TEXCOORD2,
	"TEXCOORD3":      GX_TEXCOORD3,
	"TEXCOORD4":      GX_TEXCOORD4,
	"TEXCOORD5":      GX_TEXCOORD5,
	"TEXCOORD6":      GX_TEXCOORD6,
	"TEXCOORD7":      GX_TEXCOORD7,
	"TEXCOORD_NULL":  GX_TEXCOORD_NULL,
	"NEVER":          GX_NEVER,
	"LESS":           GX_LESS,
	"EQUAL":          GX_EQUAL,
	"LEQUAL":         GX_LEQUAL,
	"GREATER":        GX_GREATER,
	"NEQUAL":         GX_NEQUAL,
	"GEQUAL":         GX_GEQUAL,
	"ALWAYS":         GX_ALWAYS,
	"AOP_AND":        GX_AOP_AND,
	"AOP_OR":         GX_AOP_OR,
	"AOP_XOR":        GX_AOP_XOR,
	"AOP_XNOR":       GX_AOP_XNOR,
	"BM_NONE":        GX_BM_NONE,
	"BM_BLEND":       GX_BM_BLEND,
	"BM_LOGIC":       GX_BM_LOGIC,
	"BM_SUBTRACT":    GX_BM_SUBTRACT,
	"BL_ZERO":        GX_BL_ZERO,
	"BL_ONE":         GX_BL_ONE,
	"BL_SRCCLR":      GX_BL_SRCCLR,
	"BL_INVSRCCLR":   GX_BL_INVSRCCLR,
	"BL_SRCALPHA":    GX_BL_SRCALPHA,
	"BL_INVSRCALPHA": GX_BL_INVSRCALPHA,
	"BL_DSTALPHA":    GX_BL_DSTALPHA,
	"BL_INVDSTALPHA": GX_BL_INVDSTALPHA,
	"LO_CLEAR":       GX_LO_CLEAR,
	"LO_COPY":        GX_LO_COPY,
	"LO_NOOP":        GX_LO_NOOP,
	"CULL_NONE":      GX_CULL_NONE,
	"CULL_FRONT":     GX_CULL_FRONT,
	"CULL_BACK":      GX_CULL_BACK,
	"CULL_ALL":       GX_CULL_ALL,
	"TEVSTAGE0":      GX_TEVSTAGE0,
	"MODULATE":       GX_MODULATE,
	"DECAL":          GX_DECAL,
	"BLEND":          GX_BLEND,
	"REPLACE":        GX_REPLACE,
	"PASSCLR":        GX_PASSCLR,
	"COLOR0":         GX_COLOR0,
	"COLOR1":         GX_COLOR1,
	"ALPHA0":         GX_ALPHA0,
	"ALPHA1":         GX_ALPHA1,
	"COLOR0A0":       GX_COLOR0A0,
	"COLOR1A1":       GX_COLOR1A1,
	"COLOR_ZERO":     GX_COLOR_ZERO,
	"COLOR_NULL":     GX_COLOR_NULL,
	"FOG_NONE":       GX_FOG_NONE,
	"FOG_LIN":        GX_FOG_LIN,
	"FOG_EXP":        GX_FOG_EXP,
	"MAX_Z24":        GX_MAX_Z24,
}
