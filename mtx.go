// mtx.go - Affine and projection matrix library

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
mtx.go - Affine and projection matrix library

Mtx is a 3x4 row-major affine matrix: the upper 3x3 holds rotation and
scale, column 3 holds translation. Mtx44 is a full 4x4 row-major
projection. Vectors transform as column vectors (M * v).

Projection matrices follow the console convention: eye-space z in
[-near, -far] maps to clip z/w in [-1, 0], not the GL [-1, 1] range.
*/

package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Mtx [3][4]float32

type Mtx44 [4][4]float32

func MtxIdentity() Mtx {
	return Mtx{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}
}

func Mtx44Identity() Mtx44 {
	return Mtx44{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// MtxConcat returns a * b.
func MtxConcat(a, b Mtx) Mtx {
	var m Mtx
	for i := range 3 {
		for j := range 4 {
			m[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
		m[i][3] += a[i][3]
	}
	return m
}

// MtxInverse inverts an affine matrix. ok is false for a singular matrix,
// in which case the identity is returned.
func MtxInverse(src Mtx) (Mtx, bool) {
	a := src
	det := a[0][0]*a[1][1]*a[2][2] + a[0][1]*a[1][2]*a[2][0] + a[0][2]*a[1][0]*a[2][1] -
		a[2][0]*a[1][1]*a[0][2] - a[1][0]*a[0][1]*a[2][2] - a[0][0]*a[2][1]*a[1][2]
	if det == 0 {
		return MtxIdentity(), false
	}
	inv := 1 / det

	var m Mtx
	m[0][0] = (a[1][1]*a[2][2] - a[2][1]*a[1][2]) * inv
	m[0][1] = -(a[0][1]*a[2][2] - a[2][1]*a[0][2]) * inv
	m[0][2] = (a[0][1]*a[1][2] - a[1][1]*a[0][2]) * inv
	m[1][0] = -(a[1][0]*a[2][2] - a[2][0]*a[1][2]) * inv
	m[1][1] = (a[0][0]*a[2][2] - a[2][0]*a[0][2]) * inv
	m[1][2] = -(a[0][0]*a[1][2] - a[1][0]*a[0][2]) * inv
	m[2][0] = (a[1][0]*a[2][1] - a[2][0]*a[1][1]) * inv
	m[2][1] = -(a[0][0]*a[2][1] - a[2][0]*a[0][1]) * inv
	m[2][2] = (a[0][0]*a[1][1] - a[1][0]*a[0][1]) * inv

	for i := range 3 {
		m[i][3] = -(m[i][0]*a[0][3] + m[i][1]*a[1][3] + m[i][2]*a[2][3])
	}
	return m, true
}

func MtxTrans(x, y, z float32) Mtx {
	m := MtxIdentity()
	m[0][3], m[1][3], m[2][3] = x, y, z
	return m
}

func MtxScale(x, y, z float32) Mtx {
	return Mtx{
		{x, 0, 0, 0},
		{0, y, 0, 0},
		{0, 0, z, 0},
	}
}

// MtxRotTrig builds a rotation about a principal axis ('x', 'y' or 'z',
// either case) from a precomputed sine and cosine. Unknown axes yield
// the identity.
func MtxRotTrig(axis byte, s, c float32) Mtx {
	switch axis {
	case 'x', 'X':
		return Mtx{
			{1, 0, 0, 0},
			{0, c, -s, 0},
			{0, s, c, 0},
		}
	case 'y', 'Y':
		return Mtx{
			{c, 0, s, 0},
			{0, 1, 0, 0},
			{-s, 0, c, 0},
		}
	case 'z', 'Z':
		return Mtx{
			{c, -s, 0, 0},
			{s, c, 0, 0},
			{0, 0, 1, 0},
		}
	}
	return MtxIdentity()
}

func MtxRotRad(axis byte, rad float32) Mtx {
	s, c := math.Sincos(float64(rad))
	return MtxRotTrig(axis, float32(s), float32(c))
}

func MtxRotDeg(axis byte, deg float32) Mtx {
	return MtxRotRad(axis, mgl32.DegToRad(deg))
}

// MtxRotAxisRad rotates about an arbitrary axis. The axis need not be
// normalized; a zero axis yields the identity.
func MtxRotAxisRad(axis mgl32.Vec3, rad float32) Mtx {
	if axis.Len() == 0 {
		return MtxIdentity()
	}
	n := axis.Normalize()
	s64, c64 := math.Sincos(float64(rad))
	s, c := float32(s64), float32(c64)
	t := 1 - c
	x, y, z := n[0], n[1], n[2]

	return Mtx{
		{t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0},
		{t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0},
		{t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0},
	}
}

// MtxLookAt builds a view matrix for a camera at cam looking at target.
// The camera looks down its local -z.
func MtxLookAt(cam, up, target mgl32.Vec3) Mtx {
	look := cam.Sub(target).Normalize()
	right := up.Cross(look).Normalize()
	vup := look.Cross(right)

	return Mtx{
		{right[0], right[1], right[2], -cam.Dot(right)},
		{vup[0], vup[1], vup[2], -cam.Dot(vup)},
		{look[0], look[1], look[2], -cam.Dot(look)},
	}
}

func MtxFrustum(t, b, l, r, n, f float32) Mtx44 {
	var m Mtx44
	m[0][0] = 2 * n / (r - l)
	m[0][2] = (r + l) / (r - l)
	m[1][1] = 2 * n / (t - b)
	m[1][2] = (t + b) / (t - b)
	m[2][2] = -n / (f - n)
	m[2][3] = -(f * n) / (f - n)
	m[3][2] = -1
	return m
}

// MtxPerspective takes the vertical field of view in degrees.
func MtxPerspective(fovY, aspect, n, f float32) Mtx44 {
	cot := float32(1 / math.Tan(float64(mgl32.DegToRad(fovY*0.5))))
	var m Mtx44
	m[0][0] = cot / aspect
	m[1][1] = cot
	m[2][2] = -n / (f - n)
	m[2][3] = -(f * n) / (f - n)
	m[3][2] = -1
	return m
}

func MtxOrtho(t, b, l, r, n, f float32) Mtx44 {
	var m Mtx44
	m[0][0] = 2 / (r - l)
	m[0][3] = -(r + l) / (r - l)
	m[1][1] = 2 / (t - b)
	m[1][3] = -(t + b) / (t - b)
	m[2][2] = -1 / (f - n)
	m[2][3] = -f / (f - n)
	m[3][3] = 1
	return m
}

// MtxMultVec transforms a point (w = 1).
func MtxMultVec(m Mtx, v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2] + m[0][3],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2] + m[1][3],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2] + m[2][3],
	}
}

// MtxMultVecSR transforms a direction, ignoring translation.
func MtxMultVecSR(m Mtx, v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// =============================================================================
// mgl32 interop
// =============================================================================

// Mat4 widens an affine matrix to a column-major mgl32 matrix.
func (m Mtx) Mat4() mgl32.Mat4 {
	var out mgl32.Mat4
	for r := range 3 {
		for c := range 4 {
			out.Set(r, c, m[r][c])
		}
	}
	out.Set(3, 3, 1)
	return out
}

func (m Mtx44) Mat4() mgl32.Mat4 {
	var out mgl32.Mat4
	for r := range 4 {
		for c := range 4 {
			out.Set(r, c, m[r][c])
		}
	}
	return out
}

// MtxFromMat4 drops the bottom row of a column-major matrix.
func MtxFromMat4(a mgl32.Mat4) Mtx {
	var m Mtx
	for r := range 3 {
		for c := range 4 {
			m[r][c] = a.At(r, c)
		}
	}
	return m
}

func Mtx44FromMat4(a mgl32.Mat4) Mtx44 {
	var m Mtx44
	for r := range 4 {
		for c := range 4 {
			m[r][c] = a.At(r, c)
		}
	}
	return m
}
