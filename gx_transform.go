// gx_transform.go - Vertex transform and viewport mapping

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

// clipToScreen runs an object-space position through a 3x4 model-view and
// a 4x4 projection, divides by w and maps NDC into the viewport with Y
// pointing down. w is the clip-space w before the divide; a w within 1e-6
// of zero skips the divide.
func clipToScreen(pos [3]float32, mv *Mtx, proj *Mtx44, vp *Viewport) (screen [3]float32, w float32) {
	x, y, z := pos[0], pos[1], pos[2]
	ex := mv[0][0]*x + mv[0][1]*y + mv[0][2]*z + mv[0][3]
	ey := mv[1][0]*x + mv[1][1]*y + mv[1][2]*z + mv[1][3]
	ez := mv[2][0]*x + mv[2][1]*y + mv[2][2]*z + mv[2][3]

	cx := proj[0][0]*ex + proj[0][1]*ey + proj[0][2]*ez + proj[0][3]
	cy := proj[1][0]*ex + proj[1][1]*ey + proj[1][2]*ez + proj[1][3]
	cz := proj[2][0]*ex + proj[2][1]*ey + proj[2][2]*ez + proj[2][3]
	cw := proj[3][0]*ex + proj[3][1]*ey + proj[3][2]*ez + proj[3][3]

	invW := float32(1)
	if abs32(cw) > 1e-6 {
		invW = 1 / cw
	}
	nx, ny, nz := cx*invW, cy*invW, cz*invW

	screen[0] = vp.Left + vp.Width*(nx+1)*0.5
	screen[1] = vp.Top + vp.Height*(1-ny)*0.5
	screen[2] = vp.NearZ + (vp.FarZ-vp.NearZ)*(nz+1)*0.5
	return screen, cw
}

// transformVertex maps a vertex through the current position matrix,
// falling back to slot 0 when the selection is out of range.
func (gx *GXEngine) transformVertex(v *SWVertex) ([3]float32, float32) {
	id := gx.currentMtx
	if id < 0 || id >= GX_MAX_POS_MATRICES {
		id = 0
	}
	return clipToScreen(v.Pos, &gx.posMtx[id], &gx.projection, &gx.viewport)
}

// Project maps an object-space point to screen coordinates with an explicit
// model-view, projection and viewport.
func Project(x, y, z float32, mv Mtx, proj Mtx44, vp Viewport) (sx, sy, sz float32) {
	s, _ := clipToScreen([3]float32{x, y, z}, &mv, &proj, &vp)
	return s[0], s[1], s[2]
}
