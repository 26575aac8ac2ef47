// vi_bridge.go - Video interface retrace bridge

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
vi_bridge.go - Video interface retrace bridge

VIBridge stands in for the console's video interface. Each retrace it
composites the external frame buffer (the GX copy) over an opaque
backdrop in the copy clear color, pushes the result to the VideoOutput
and waits for vsync. Game code hooks the retrace through pre and post
callbacks exactly as it would on hardware.

Retrace order:
  1. pre-retrace callback (current count)
  2. composite + UpdateFrame
  3. WaitForVSync
  4. count++
  5. post-retrace callback (new count)
*/

package main

import (
	"image/color"
	"sync"
	"sync/atomic"
)

// VIRetraceCallback receives the retrace count.
type VIRetraceCallback func(retraceCount uint32)

type VIBridge struct {
	mutex      sync.Mutex
	gx         *GXEngine
	output     VideoOutput
	compositor *VideoCompositor
	backdrop   *solidSource
	gxLayer    *bufferSource

	xfb     []byte // default external frame buffer
	nextXfb []byte // pending until Flush
	black   bool

	retraceCount atomic.Uint32
	preCB        VIRetraceCallback
	postCB       VIRetraceCallback
	lastFrame    []byte
	status       FrameStatus
}

// NewVIBridge wires a bridge between an engine and an output. output may be
// nil, in which case frames are composited but not presented.
func NewVIBridge(gx *GXEngine, output VideoOutput) *VIBridge {
	w, h := gx.Width(), gx.Height()
	vi := &VIBridge{
		gx:         gx,
		output:     output,
		compositor: NewVideoCompositor(w, h),
		backdrop:   newSolidSource(w, h, LAYER_BACKDROP, color.RGBA{0, 0, 0, 255}),
		gxLayer:    newBufferSource(w, h, LAYER_GX),
		xfb:        make([]byte, w*h*4),
		lastFrame:  make([]byte, w*h*4),
	}
	vi.compositor.RegisterSource(vi.backdrop)
	vi.compositor.RegisterSource(vi.gxLayer)
	vi.Init()
	return vi
}

// Init resets the retrace count and blanks the display.
func (vi *VIBridge) Init() {
	vi.mutex.Lock()
	defer vi.mutex.Unlock()
	vi.retraceCount.Store(0)
	vi.black = true
	vi.nextXfb = nil
	vi.gxLayer.SetBuffer(vi.xfb)
}

// XFB returns the default external frame buffer, sized for CopyDisp.
func (vi *VIBridge) XFB() []byte { return vi.xfb }

// Compositor exposes the layer stack so callers can add overlays.
func (vi *VIBridge) Compositor() *VideoCompositor { return vi.compositor }

func (vi *VIBridge) SetBlack(black bool) {
	vi.mutex.Lock()
	vi.black = black
	vi.mutex.Unlock()
}

func (vi *VIBridge) IsBlack() bool {
	vi.mutex.Lock()
	defer vi.mutex.Unlock()
	return vi.black
}

// SetNextFrameBuffer queues buf for display from the next Flush.
func (vi *VIBridge) SetNextFrameBuffer(buf []byte) {
	vi.mutex.Lock()
	vi.nextXfb = buf
	vi.mutex.Unlock()
}

// Flush commits the queued frame buffer.
func (vi *VIBridge) Flush() {
	vi.mutex.Lock()
	defer vi.mutex.Unlock()
	if vi.nextXfb != nil {
		vi.gxLayer.SetBuffer(vi.nextXfb)
		vi.nextXfb = nil
	}
}

// SetPreRetraceCallback installs cb and returns the previous callback.
func (vi *VIBridge) SetPreRetraceCallback(cb VIRetraceCallback) VIRetraceCallback {
	vi.mutex.Lock()
	defer vi.mutex.Unlock()
	old := vi.preCB
	vi.preCB = cb
	return old
}

// SetPostRetraceCallback installs cb and returns the previous callback.
func (vi *VIBridge) SetPostRetraceCallback(cb VIRetraceCallback) VIRetraceCallback {
	vi.mutex.Lock()
	defer vi.mutex.Unlock()
	old := vi.postCB
	vi.postCB = cb
	return old
}

func (vi *VIBridge) GetRetraceCount() uint32 { return vi.retraceCount.Load() }

// WaitForRetrace presents one frame and advances the retrace count.
// Callbacks run without the bridge lock held, so they may call back into
// the bridge.
func (vi *VIBridge) WaitForRetrace() error {
	vi.mutex.Lock()
	pre, post := vi.preCB, vi.postCB
	vi.mutex.Unlock()

	if pre != nil {
		pre(vi.retraceCount.Load())
	}

	frame := vi.composite()

	if vi.output != nil && vi.output.IsStarted() {
		if err := vi.output.UpdateFrame(frame); err != nil {
			return &VideoError{Operation: "retrace", Details: "frame update", Err: err}
		}
		if err := vi.output.WaitForVSync(); err != nil {
			return &VideoError{Operation: "retrace", Details: "vsync", Err: err}
		}
	}

	n := vi.retraceCount.Add(1)
	st := vi.gx.LastFrame()
	st.Retrace = n
	vi.mutex.Lock()
	st.Black = vi.black
	vi.status = st
	vi.mutex.Unlock()

	if post != nil {
		post(n)
	}
	return nil
}

func (vi *VIBridge) composite() []byte {
	vi.mutex.Lock()
	black := vi.black
	vi.mutex.Unlock()

	if black {
		vi.backdrop.SetColor(color.RGBA{0, 0, 0, 255})
		vi.gxLayer.SetEnabled(false)
	} else {
		cc, _ := vi.gx.CopyClear()
		cc.A = 255
		vi.backdrop.SetColor(cc)
		vi.gxLayer.SetEnabled(true)
	}

	frame := vi.compositor.Composite()
	vi.mutex.Lock()
	copy(vi.lastFrame, frame)
	vi.mutex.Unlock()
	return frame
}

// LastFrame returns a copy of the most recently composited frame.
func (vi *VIBridge) LastFrame() []byte {
	vi.mutex.Lock()
	defer vi.mutex.Unlock()
	out := make([]byte, len(vi.lastFrame))
	copy(out, vi.lastFrame)
	return out
}

// Status reports the counters of the last retrace. Safe to call from the
// presentation goroutine.
func (vi *VIBridge) Status() FrameStatus {
	vi.mutex.Lock()
	defer vi.mutex.Unlock()
	return vi.status
}
