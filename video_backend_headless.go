// video_backend_headless.go - Windowless presentation backend

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
	"sync"
	"sync/atomic"
	"time"
)

// HeadlessVideoOutput keeps the last presented frame in memory. It backs
// -headless runs, CI and the VI tests.
type HeadlessVideoOutput struct {
	mutex       sync.RWMutex
	started     bool
	config      DisplayConfig
	frame       []byte
	frameCount  uint64
	vsyncCount  uint64
	refreshRate int
}

func NewHeadlessOutput() *HeadlessVideoOutput {
	return &HeadlessVideoOutput{
		config: DisplayConfig{
			Width:       GX_DEFAULT_WIDTH,
			Height:      GX_DEFAULT_HEIGHT,
			Scale:       1,
			RefreshRate: 60,
			PixelFormat: PixelFormatRGBA,
		},
		refreshRate: 60,
	}
}

func (h *HeadlessVideoOutput) Start() error {
	h.mutex.Lock()
	h.started = true
	h.mutex.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) Stop() error {
	h.mutex.Lock()
	h.started = false
	h.mutex.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) Close() error {
	return h.Stop()
}

func (h *HeadlessVideoOutput) IsStarted() bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.started
}

func (h *HeadlessVideoOutput) SetDisplayConfig(config DisplayConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return &VideoError{
			Operation: "display config",
			Details:   "width and height must be positive",
		}
	}
	config.Scale = ClampScale(config.Scale)
	h.mutex.Lock()
	h.config = config
	h.frame = nil
	h.mutex.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) GetDisplayConfig() DisplayConfig {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.config
}

func (h *HeadlessVideoOutput) UpdateFrame(buffer []byte) error {
	h.mutex.Lock()
	size := h.config.Width * h.config.Height * 4
	if len(h.frame) != size {
		h.frame = make([]byte, size)
	}
	copy(h.frame, buffer)
	h.mutex.Unlock()
	atomic.AddUint64(&h.frameCount, 1)
	return nil
}

func (h *HeadlessVideoOutput) WaitForVSync() error {
	atomic.AddUint64(&h.vsyncCount, 1)
	return nil
}

func (h *HeadlessVideoOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

func (h *HeadlessVideoOutput) VSyncCount() uint64 {
	return atomic.LoadUint64(&h.vsyncCount)
}

func (h *HeadlessVideoOutput) GetRefreshRate() int {
	if h.refreshRate == 0 {
		return 60
	}
	return h.refreshRate
}

func (h *HeadlessVideoOutput) GetSnapshot() (FrameSnapshot, error) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if h.frame == nil {
		return FrameSnapshot{}, &VideoError{Operation: "snapshot", Details: "no frame presented"}
	}
	buf := make([]byte, len(h.frame))
	copy(buf, h.frame)
	return FrameSnapshot{
		Buffer:    buf,
		Width:     h.config.Width,
		Height:    h.config.Height,
		Format:    h.config.PixelFormat,
		Timestamp: time.Now(),
	}, nil
}
