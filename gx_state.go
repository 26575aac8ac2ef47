// gx_state.go - Pipeline state store for the software GX core

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
gx_state.go - GX Pipeline State

GXEngine is one rendering context: every piece of fixed-function state,
the vertex assembler, the display-list recorder and the embedded frame and
depth buffers. All entry points run to completion on the calling goroutine;
a GXEngine must not be shared between goroutines without external locking.

Setters follow the console's permissive contract: out-of-range ids and
indices are ignored and leave state unchanged.
*/

package main

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	ErrInvalidDimensions   = errors.New("invalid framebuffer dimensions")
	ErrFramebufferTooLarge = errors.New("framebuffer exceeds maximum size")
)

// GXError reports a setup failure of a GX context.
type GXError struct {
	Operation string
	Details   string
	Err       error
}

func (e *GXError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gx %s: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("gx %s: %s", e.Operation, e.Details)
}

func (e *GXError) Unwrap() error { return e.Err }

// Viewport maps NDC to screen space.
type Viewport struct {
	Left, Top     float32
	Width, Height float32
	NearZ, FarZ   float32
}

// ScissorRect clips rasterization, inclusive of Left/Top.
type ScissorRect struct {
	Left, Top     int
	Width, Height int
}

type vtxDesc struct {
	attr int
	typ  int
}

// VtxDescEntry is one element of a SetVtxDescv list, terminated by GX_VA_NULL.
type VtxDescEntry struct {
	Attr int
	Type int
}

type vtxAttrFmt struct {
	cnt      int
	compType int
	frac     int
}

type vtxArray struct {
	data   []byte
	stride int
}

type tevOrder struct {
	coord int
	tmap  int
	color int
}

// FogState is recorded for completeness; the pipeline does not apply fog.
type FogState struct {
	Type         int
	StartZ, EndZ float32
	NearZ, FarZ  float32
	Color        color.RGBA
}

// GXEngine is a software implementation of the GX fixed-function pipeline.
type GXEngine struct {
	width  int
	height int

	framebuffer []byte    // RGBA8, row-major
	depthBuffer []float32 // Screen-space z per pixel

	// Transform
	projection Mtx44
	projType   int
	posMtx     [GX_MAX_POS_MATRICES]Mtx
	nrmMtx     [GX_MAX_NRM_MATRICES]Mtx
	texMtx     [GX_MAX_TEX_MATRICES]Mtx
	currentMtx int
	viewport   Viewport
	scissor    ScissorRect

	// Vertex format
	vtxDesc    []vtxDesc
	vtxAttrFmt [GX_MAX_VTXFMT][GX_VA_MAX_ATTR]vtxAttrFmt
	arrays     [GX_VA_MAX_ATTR]vtxArray
	numTexGens int

	// TEV and channels
	numTevStages int
	tevMode      [GX_MAX_TEV_STAGES]int
	tevOrder     [GX_MAX_TEV_STAGES]tevOrder
	numChans     int
	chanMat      [GX_MAX_CHANNELS]color.RGBA
	chanAmb      [GX_MAX_CHANNELS]color.RGBA

	// Textures
	texObj    [GX_MAX_TEXMAPS]TexObj
	texLoaded [GX_MAX_TEXMAPS]bool
	texCache  [GX_MAX_TEXMAPS]decodedTexture
	tluts     [GX_MAX_TLUTS]*TlutObj

	// Pixel engine
	blendMode   int
	blendSrc    int
	blendDst    int
	logicOp     int
	zEnable     bool
	zFunc       int
	zWrite      bool
	colorUpdate bool
	alphaUpdate bool
	alphaComp0  int
	alphaRef0   uint8
	alphaOp     int
	alphaComp1  int
	alphaRef1   uint8
	cullMode    int
	fog         FogState
	clearColor  color.RGBA
	clearZ      uint32

	// Vertex assembly
	vtx vertexAssembler

	// Display lists
	dl dlRecorder

	stats        GXStats
	frameMark    GXStats // stats at the previous copy
	lastFrame    FrameStatus
	copyCount    int
	drawObserver func(prim int, verts []SWVertex)
}

// NewGXEngine allocates a context with a width x height frame buffer and
// applies the power-on defaults.
func NewGXEngine(width, height int) (*GXEngine, error) {
	if width <= 0 || height <= 0 {
		return nil, &GXError{
			Operation: "init",
			Details:   fmt.Sprintf("%dx%d", width, height),
			Err:       ErrInvalidDimensions,
		}
	}
	if width > GX_MAX_WIDTH || height > GX_MAX_HEIGHT {
		return nil, &GXError{
			Operation: "init",
			Details:   fmt.Sprintf("%dx%d exceeds %dx%d", width, height, GX_MAX_WIDTH, GX_MAX_HEIGHT),
			Err:       ErrFramebufferTooLarge,
		}
	}

	gx := &GXEngine{
		width:       width,
		height:      height,
		framebuffer: make([]byte, width*height*4),
		depthBuffer: make([]float32, width*height),
	}
	gx.vtx.buf = make([]SWVertex, 0, 1024)
	gx.dl.lists = make(map[uint32]*dlHandle)
	gx.Init()
	return gx, nil
}

// Init restores the power-on state: identity matrices, a full-frame
// viewport and scissor, LEQUAL depth test with writes, back-face culling,
// one pass-through TEV stage and an always-passing alpha compare. Frame
// and depth buffers are cleared to the clear color (alpha 0) and depth.
// Display lists recorded earlier stay valid.
func (gx *GXEngine) Init() {
	gx.projection = Mtx44Identity()
	gx.projType = GX_PERSPECTIVE
	for i := range gx.posMtx {
		gx.posMtx[i] = MtxIdentity()
		gx.nrmMtx[i] = MtxIdentity()
		gx.texMtx[i] = MtxIdentity()
	}
	gx.currentMtx = GX_PNMTX0

	gx.viewport = Viewport{Width: float32(gx.width), Height: float32(gx.height), FarZ: 1}
	gx.scissor = ScissorRect{Width: gx.width, Height: gx.height}

	gx.vtxDesc = gx.vtxDesc[:0]
	gx.vtxAttrFmt = [GX_MAX_VTXFMT][GX_VA_MAX_ATTR]vtxAttrFmt{}
	gx.arrays = [GX_VA_MAX_ATTR]vtxArray{}
	gx.numTexGens = 0

	gx.numTevStages = 1
	for i := range gx.tevOrder {
		gx.tevOrder[i] = tevOrder{coord: GX_TEXCOORD0, tmap: GX_TEXMAP0, color: GX_COLOR0A0}
		gx.tevMode[i] = GX_PASSCLR
	}
	gx.numChans = 1
	gx.chanMat = [GX_MAX_CHANNELS]color.RGBA{}
	gx.chanAmb = [GX_MAX_CHANNELS]color.RGBA{}

	gx.texObj = [GX_MAX_TEXMAPS]TexObj{}
	gx.tluts = [GX_MAX_TLUTS]*TlutObj{}
	gx.InvalidateTexAll()

	gx.blendMode = GX_BM_NONE
	gx.blendSrc = GX_BL_SRCALPHA
	gx.blendDst = GX_BL_INVSRCALPHA
	gx.logicOp = GX_LO_COPY
	gx.zEnable = true
	gx.zFunc = GX_LEQUAL
	gx.zWrite = true
	gx.colorUpdate = true
	gx.alphaUpdate = false
	gx.alphaComp0, gx.alphaRef0 = GX_ALWAYS, 0
	gx.alphaOp = GX_AOP_AND
	gx.alphaComp1, gx.alphaRef1 = GX_ALWAYS, 0
	gx.cullMode = GX_CULL_BACK
	gx.fog = FogState{}
	gx.clearColor = color.RGBA{}
	gx.clearZ = GX_MAX_Z24

	gx.vtx.reset()
	gx.dl.recording = false
	gx.dl.entries = nil
	gx.stats = GXStats{}
	gx.frameMark = GXStats{}
	gx.lastFrame = FrameStatus{}
	gx.copyCount = 0

	gx.clearBuffers()
}

// Width returns the frame buffer width in pixels.
func (gx *GXEngine) Width() int { return gx.width }

// Height returns the frame buffer height in pixels.
func (gx *GXEngine) Height() int { return gx.height }

// Framebuffer exposes the live RGBA8 frame buffer.
func (gx *GXEngine) Framebuffer() []byte { return gx.framebuffer }

// DepthBuffer exposes the live depth buffer.
func (gx *GXEngine) DepthBuffer() []float32 { return gx.depthBuffer }

// SetDrawObserver installs a callback that receives each primitive's
// assembled vertices just before rasterization. Pass nil to remove it.
// The slice is only valid for the duration of the call.
func (gx *GXEngine) SetDrawObserver(fn func(prim int, verts []SWVertex)) {
	gx.drawObserver = fn
}

// =============================================================================
// Transform state
// =============================================================================

func (gx *GXEngine) SetProjection(m Mtx44, projType int) {
	gx.projection = m
	gx.projType = projType
}

func (gx *GXEngine) GetProjection() (Mtx44, int) {
	return gx.projection, gx.projType
}

func (gx *GXEngine) LoadPosMtxImm(m Mtx, id int) {
	if id < 0 || id >= GX_MAX_POS_MATRICES {
		return
	}
	gx.posMtx[id] = m
}

func (gx *GXEngine) LoadNrmMtxImm(m Mtx, id int) {
	if id < 0 || id >= GX_MAX_NRM_MATRICES {
		return
	}
	gx.nrmMtx[id] = m
}

// LoadTexMtxImm accepts a slot index or a console id based at GX_TEXMTX0.
func (gx *GXEngine) LoadTexMtxImm(m Mtx, id int) {
	idx := id
	if id >= GX_TEXMTX0 {
		idx = (id - GX_TEXMTX0) / 3
	}
	if idx < 0 || idx >= GX_MAX_TEX_MATRICES {
		return
	}
	gx.texMtx[idx] = m
}

// SetCurrentMtx selects the position matrix. Out-of-range ids are stored
// and fall back to slot 0 at transform time.
func (gx *GXEngine) SetCurrentMtx(id int) {
	gx.currentMtx = id
}

func (gx *GXEngine) SetViewport(left, top, wd, ht, nearZ, farZ float32) {
	gx.viewport = Viewport{Left: left, Top: top, Width: wd, Height: ht, NearZ: nearZ, FarZ: farZ}
}

// SetViewportJitter ignores the field selector; there is no interlacing.
func (gx *GXEngine) SetViewportJitter(left, top, wd, ht, nearZ, farZ float32, field int) {
	gx.SetViewport(left, top, wd, ht, nearZ, farZ)
}

func (gx *GXEngine) GetViewport() Viewport { return gx.viewport }

func (gx *GXEngine) SetScissor(left, top, wd, ht int) {
	gx.scissor = ScissorRect{Left: left, Top: top, Width: wd, Height: ht}
}

func (gx *GXEngine) GetScissor() ScissorRect { return gx.scissor }

// =============================================================================
// Vertex format state
// =============================================================================

// SetVtxDesc updates attr in place or appends it to the descriptor list.
func (gx *GXEngine) SetVtxDesc(attr, typ int) {
	for i := range gx.vtxDesc {
		if gx.vtxDesc[i].attr == attr {
			gx.vtxDesc[i].typ = typ
			return
		}
	}
	if len(gx.vtxDesc) < GX_MAX_VTX_ATTRS {
		gx.vtxDesc = append(gx.vtxDesc, vtxDesc{attr: attr, typ: typ})
	}
}

// SetVtxDescv replaces the descriptor list, stopping at GX_VA_NULL.
func (gx *GXEngine) SetVtxDescv(list []VtxDescEntry) {
	gx.vtxDesc = gx.vtxDesc[:0]
	for _, d := range list {
		if d.Attr == GX_VA_NULL {
			break
		}
		if len(gx.vtxDesc) < GX_MAX_VTX_ATTRS {
			gx.vtxDesc = append(gx.vtxDesc, vtxDesc{attr: d.Attr, typ: d.Type})
		}
	}
}

func (gx *GXEngine) ClearVtxDesc() {
	gx.vtxDesc = gx.vtxDesc[:0]
}

func (gx *GXEngine) SetVtxAttrFmt(vtxfmt, attr, cnt, compType, frac int) {
	if vtxfmt < 0 || vtxfmt >= GX_MAX_VTXFMT || attr < 0 || attr >= GX_VA_MAX_ATTR {
		return
	}
	gx.vtxAttrFmt[vtxfmt][attr] = vtxAttrFmt{cnt: cnt, compType: compType, frac: frac}
}

// GetVtxAttrFmt returns zeros for out-of-range arguments.
func (gx *GXEngine) GetVtxAttrFmt(vtxfmt, attr int) (cnt, compType, frac int) {
	if vtxfmt < 0 || vtxfmt >= GX_MAX_VTXFMT || attr < 0 || attr >= GX_VA_MAX_ATTR {
		return 0, 0, 0
	}
	f := gx.vtxAttrFmt[vtxfmt][attr]
	return f.cnt, f.compType, f.frac
}

// SetArray binds indexed vertex data for attr. Element i starts at i*stride.
func (gx *GXEngine) SetArray(attr int, data []byte, stride int) {
	if attr < 0 || attr >= GX_VA_MAX_ATTR {
		return
	}
	gx.arrays[attr] = vtxArray{data: data, stride: stride}
}

func (gx *GXEngine) SetNumTexGens(n int) { gx.numTexGens = n }

// =============================================================================
// TEV and channel state
// =============================================================================

// SetNumTevStages is recorded; only stage 0 is evaluated.
func (gx *GXEngine) SetNumTevStages(n int) { gx.numTevStages = n }

func (gx *GXEngine) SetTevOp(stage, mode int) {
	if stage < 0 || stage >= GX_MAX_TEV_STAGES {
		return
	}
	gx.tevMode[stage] = mode
}

func (gx *GXEngine) SetTevOrder(stage, coord, tmap, chanID int) {
	if stage < 0 || stage >= GX_MAX_TEV_STAGES {
		return
	}
	gx.tevOrder[stage] = tevOrder{coord: coord, tmap: tmap, color: chanID}
}

func (gx *GXEngine) SetNumChans(n int) { gx.numChans = n }

func chanIndex(chanID int) int {
	if chanID == GX_COLOR0A0 || chanID == GX_COLOR0 {
		return 0
	}
	return 1
}

func (gx *GXEngine) SetChanMatColor(chanID int, c color.RGBA) {
	gx.chanMat[chanIndex(chanID)] = c
}

func (gx *GXEngine) SetChanAmbColor(chanID int, c color.RGBA) {
	gx.chanAmb[chanIndex(chanID)] = c
}

// =============================================================================
// Pixel engine state
// =============================================================================

// SetBlendMode records the logic op but only GX_BM_BLEND changes output.
func (gx *GXEngine) SetBlendMode(mode, src, dst, logicOp int) {
	gx.blendMode = mode
	gx.blendSrc = src
	gx.blendDst = dst
	gx.logicOp = logicOp
}

func (gx *GXEngine) SetZMode(enable bool, fn int, update bool) {
	gx.zEnable = enable
	gx.zFunc = fn
	gx.zWrite = update
}

func (gx *GXEngine) SetColorUpdate(enable bool) { gx.colorUpdate = enable }
func (gx *GXEngine) SetAlphaUpdate(enable bool) { gx.alphaUpdate = enable }

func (gx *GXEngine) SetAlphaCompare(comp0 int, ref0 uint8, op int, comp1 int, ref1 uint8) {
	gx.alphaComp0, gx.alphaRef0 = comp0, ref0
	gx.alphaOp = op
	gx.alphaComp1, gx.alphaRef1 = comp1, ref1
}

func (gx *GXEngine) SetCullMode(mode int) { gx.cullMode = mode }

func (gx *GXEngine) SetFog(fogType int, startZ, endZ, nearZ, farZ float32, c color.RGBA) {
	gx.fog = FogState{Type: fogType, StartZ: startZ, EndZ: endZ, NearZ: nearZ, FarZ: farZ, Color: c}
}

func (gx *GXEngine) SetFogColor(c color.RGBA) { gx.fog.Color = c }

func (gx *GXEngine) Fog() FogState { return gx.fog }
