// gx_constants.go - GX pipeline constants for the software GX core

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
gx_constants.go - GX Enumerations and Limits

Enumerations keep the console numbering so recorded vertex data, display
lists and scene scripts use the same values the game code was written
against. Only the subset the software pipeline understands is listed.
*/

package main

// Pipeline limits
const (
	GX_MAX_POS_MATRICES = 10
	GX_MAX_NRM_MATRICES = 10
	GX_MAX_TEX_MATRICES = 10
	GX_MAX_TEV_STAGES   = 16
	GX_MAX_TEXMAPS      = 8
	GX_MAX_TLUTS        = 16
	GX_MAX_VTXFMT       = 8
	GX_MAX_VTX_ATTRS    = 32
	GX_MAX_ARRAYS       = 32
	GX_MAX_TEXCOORDS    = 8
	GX_MAX_CHANNELS     = 2

	GX_MAX_PENDING_VERTS = 65536 // Vertices buffered between Begin and End
	GX_MAX_DL_ENTRIES    = 16384 // Commands per recorded display list
	GX_MAX_DISPLAY_LISTS = 4096  // Live lists per engine until FreeDisplayList

	GX_DEFAULT_WIDTH  = 640
	GX_DEFAULT_HEIGHT = 480
	GX_MAX_WIDTH      = 4096
	GX_MAX_HEIGHT     = 4096

	GX_STATS_INTERVAL     = 60 // CopyDisp calls between stats reports
	GX_MAX_MAGIC_WARNINGS = 5
)

// Primitive types
const (
	GX_QUADS         = 0x80
	GX_TRIANGLES     = 0x90
	GX_TRIANGLESTRIP = 0x98
	GX_TRIANGLEFAN   = 0xA0
	GX_LINES         = 0xA8
	GX_LINESTRIP     = 0xB0
	GX_POINTS        = 0xB8
)

// Vertex attributes
const (
	GX_VA_PNMTXIDX   = 0
	GX_VA_TEX0MTXIDX = 1
	GX_VA_TEX7MTXIDX = 8
	GX_VA_POS        = 9
	GX_VA_NRM        = 10
	GX_VA_CLR0       = 11
	GX_VA_CLR1       = 12
	GX_VA_TEX0       = 13
	GX_VA_TEX1       = 14
	GX_VA_TEX2       = 15
	GX_VA_TEX3       = 16
	GX_VA_TEX4       = 17
	GX_VA_TEX5       = 18
	GX_VA_TEX6       = 19
	GX_VA_TEX7       = 20
	GX_POS_MTX_ARRAY = 21
	GX_NRM_MTX_ARRAY = 22
	GX_TEX_MTX_ARRAY = 23
	GX_LIGHT_ARRAY   = 24
	GX_VA_NBT        = 25
	GX_VA_MAX_ATTR   = 26
	GX_VA_NULL       = 0xFF
)

// Attribute fetch types
const (
	GX_NONE    = 0
	GX_DIRECT  = 1
	GX_INDEX8  = 2
	GX_INDEX16 = 3
)

// Component counts
const (
	GX_POS_XY   = 0
	GX_POS_XYZ  = 1
	GX_NRM_XYZ  = 0
	GX_NRM_NBT  = 1
	GX_CLR_RGB  = 0
	GX_CLR_RGBA = 1
	GX_TEX_S    = 0
	GX_TEX_ST   = 1
)

// Component types. Color attributes reuse the slot for their packed format.
const (
	GX_U8  = 0
	GX_S8  = 1
	GX_U16 = 2
	GX_S16 = 3
	GX_F32 = 4

	GX_RGB565 = 0
	GX_RGB8   = 1
	GX_RGBX8  = 2
	GX_RGBA4  = 3
	GX_RGBA6  = 4
	GX_RGBA8  = 5
)

// Vertex formats
const (
	GX_VTXFMT0 = 0
	GX_VTXFMT1 = 1
	GX_VTXFMT2 = 2
	GX_VTXFMT3 = 3
	GX_VTXFMT4 = 4
	GX_VTXFMT5 = 5
	GX_VTXFMT6 = 6
	GX_VTXFMT7 = 7
)

// Matrix slots
const (
	GX_PNMTX0 = 0
	GX_PNMTX1 = 1
	GX_PNMTX2 = 2
	GX_PNMTX3 = 3
	GX_PNMTX4 = 4
	GX_PNMTX5 = 5
	GX_PNMTX6 = 6
	GX_PNMTX7 = 7
	GX_PNMTX8 = 8
	GX_PNMTX9 = 9

	GX_TEXMTX0 = 30 // Console base id for texture matrices (stride 3)
)

// Projection types
const (
	GX_PERSPECTIVE  = 0
	GX_ORTHOGRAPHIC = 1
)

// Texture formats
const (
	GX_TF_I4     = 0x0
	GX_TF_I8     = 0x1
	GX_TF_IA4    = 0x2
	GX_TF_IA8    = 0x3
	GX_TF_RGB565 = 0x4
	GX_TF_RGB5A3 = 0x5
	GX_TF_RGBA8  = 0x6
	GX_TF_C4     = 0x8
	GX_TF_C8     = 0x9
	GX_TF_C14X2  = 0xA
	GX_TF_CMPR   = 0xE
)

// TLUT formats
const (
	GX_TL_IA8    = 0
	GX_TL_RGB565 = 1
	GX_TL_RGB5A3 = 2
)

// Texture wrap modes
const (
	GX_CLAMP  = 0
	GX_REPEAT = 1
	GX_MIRROR = 2
)

// Texture maps and coordinates
const (
	GX_TEXMAP0       = 0
	GX_TEXMAP1       = 1
	GX_TEXMAP2       = 2
	GX_TEXMAP3       = 3
	GX_TEXMAP4       = 4
	GX_TEXMAP5       = 5
	GX_TEXMAP6       = 6
	GX_TEXMAP7       = 7
	GX_TEXMAP_NULL   = 0xFF
	GX_TEXCOORD0     = 0
	GX_TEXCOORD1     = 1
	GX_TEXCOORD2     = 2
	GX_TEXCOORD3     = 3
	GX_TEXCOORD4     = 4
	GX_TEXCOORD5     = 5
	GX_TEXCOORD6     = 6
	GX_TEXCOORD7     = 7
	GX_TEXCOORD_NULL = 0xFF
)

// Compare functions (depth and alpha)
const (
	GX_NEVER   = 0
	GX_LESS    = 1
	GX_EQUAL   = 2
	GX_LEQUAL  = 3
	GX_GREATER = 4
	GX_NEQUAL  = 5
	GX_GEQUAL  = 6
	GX_ALWAYS  = 7
)

// Alpha compare combinators
const (
	GX_AOP_AND  = 0
	GX_AOP_OR   = 1
	GX_AOP_XOR  = 2
	GX_AOP_XNOR = 3
)

// Blend modes
const (
	GX_BM_NONE     = 0
	GX_BM_BLEND    = 1
	GX_BM_LOGIC    = 2
	GX_BM_SUBTRACT = 3
)

// Blend factors
const (
	GX_BL_ZERO        = 0
	GX_BL_ONE         = 1
	GX_BL_SRCCLR      = 2
	GX_BL_INVSRCCLR   = 3
	GX_BL_SRCALPHA    = 4
	GX_BL_INVSRCALPHA = 5
	GX_BL_DSTALPHA    = 6
	GX_BL_INVDSTALPHA = 7
)

// Logic ops (accepted, not applied)
const (
	GX_LO_CLEAR = 0
	GX_LO_COPY  = 3
	GX_LO_NOOP  = 5
)

// Cull modes
const (
	GX_CULL_NONE  = 0
	GX_CULL_FRONT = 1
	GX_CULL_BACK  = 2
	GX_CULL_ALL   = 3
)

// TEV stages and modes
const (
	GX_TEVSTAGE0 = 0

	GX_MODULATE = 0
	GX_DECAL    = 1
	GX_BLEND    = 2
	GX_REPLACE  = 3
	GX_PASSCLR  = 4
)

// Color channels
const (
	GX_COLOR0     = 0
	GX_COLOR1     = 1
	GX_ALPHA0     = 2
	GX_ALPHA1     = 3
	GX_COLOR0A0   = 4
	GX_COLOR1A1   = 5
	GX_COLOR_ZERO = 6
	GX_COLOR_NULL = 0xFF
)

// Fog types
const (
	GX_FOG_NONE = 0
	GX_FOG_LIN  = 2
	GX_FOG_EXP  = 4
)

// Z buffer
const (
	GX_MAX_Z24 = 0x00FFFFFF
)

// Sentinel colors
const (
	GX_FALLBACK_TEXEL = 0xFF00FFFF // RGBA magenta for undecodable formats
	GX_NULL_TEXEL     = 0xFFFFFFFF // Opaque white when no texture is bound
)
