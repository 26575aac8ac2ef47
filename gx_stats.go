// gx_stats.go - Frame statistics for the software GX core

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

import "log/slog"

// GXStats counts pipeline events since the last report.
type GXStats struct {
	Triangles        int // Triangles submitted to the rasterizer
	RasterizedTris   int // Triangles that reached scan conversion
	RejectCull       int
	RejectDegenerate int
	RejectOffscreen  int
	PixelsWritten    int
	EmptyEnds        int // End calls with no complete vertex
	DroppedVerts     int

	DLCreated  int
	DLCalls    int
	DLOK       int
	DLNull     int
	DLBadMagic int

	TexDecodes   int
	TexCacheHits int

	NonClearSamples int // Non-clear pixels in a 1-in-100 sample at the last report
}

// Stats returns a snapshot of the counters.
func (gx *GXEngine) Stats() GXStats { return gx.stats }

// ResetStats zeroes the counters.
func (gx *GXEngine) ResetStats() {
	gx.stats = GXStats{}
	gx.frameMark = GXStats{}
}

// reportStats logs and resets the counters. It samples every 100th pixel
// for non-clear content.
func (gx *GXEngine) reportStats() {
	cc := gx.clearColor
	nonClear, samples := 0, 0
	for i := 0; i < gx.width*gx.height; i += 100 {
		o := i * 4
		p := gx.framebuffer[o : o+4 : o+4]
		// The clear writes alpha 0, so only RGB tells a drawn pixel apart.
		if p[0] != cc.R || p[1] != cc.G || p[2] != cc.B {
			nonClear++
		}
		samples++
	}
	gx.stats.NonClearSamples = nonClear

	s := gx.stats
	Logger().Debug("gx: frame stats",
		slog.Int("copy", gx.copyCount),
		slog.Int("tris", s.Triangles),
		slog.Int("pixels", s.PixelsWritten),
		slog.Int("non_clear", nonClear),
		slog.Int("samples", samples),
		slog.Group("dl",
			slog.Int("call", s.DLCalls),
			slog.Int("ok", s.DLOK),
			slog.Int("null", s.DLNull),
			slog.Int("magic", s.DLBadMagic)),
		slog.Group("reject",
			slog.Int("cull", s.RejectCull),
			slog.Int("degen", s.RejectDegenerate),
			slog.Int("oob", s.RejectOffscreen)),
		slog.Int("raster_ok", s.RasterizedTris),
		slog.Int("tex_decodes", s.TexDecodes),
		slog.Int("tex_hits", s.TexCacheHits),
		slog.Int("dropped_verts", s.DroppedVerts),
	)

	gx.stats = GXStats{NonClearSamples: nonClear}
}
