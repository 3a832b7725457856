package objheader

// Sync marker: framing constant that precedes every top-level object. The
// byte order in which it is found in the file selects the endian engine
// used for the remainder of that file (spec §3, §6).
const (
	SyncMarkerLE uint32 = 0xD41F8A37 // canonical byte order, files written little-endian
	SyncMarkerBE uint32 = 0x378A1FD4 // SyncMarkerLE byte-reversed, selects big-endian files

	SyncMarkerSize = 4
)

// Header word layout (see header.go for the bit-level Parse/Bytes implementation):
//
//	word0 (4 bytes): type(16) | user_bit(1) | extended(1) | version(12) | reserved(2)
//	word1 (4 bytes): length(30) | reserved(1) | only_sub_objects(1)
//	word2 (4 bytes): id (int32)
//	word3 (4 bytes, present only if extended): length_high(12) in the top bits, reserved otherwise
const (
	HeaderSize          = 12 // word0 + word1 + word2
	ExtensionSize       = 4  // word3, present only when the extended bit is set
	HeaderSizeExtended  = HeaderSize + ExtensionSize
	MaxObjectNestDepth  = 3 // observed maximum depth of only_sub_objects nesting

	typeMask        = 0x0000FFFF
	userBitMask     = 0x00010000
	extendedMask    = 0x00020000
	versionMask     = 0x3FFC0000
	versionShift    = 18

	onlySubObjMask  = 0x80000000
	length30Mask    = 0x3FFFFFFF

	length12HighShift = 20 // top 12 bits of the extension word
)
