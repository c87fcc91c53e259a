// The lzss package implements LZSS compression with a 2-KB sliding window.
//
// The compressed stream is a sequence of blocks, each holding one flag byte
// followed by up to eight units. A unit is either a single literal byte or a
// two-byte back-reference into the window (an 11-bit position and a 5-bit
// length covering copies of 2 to 24 bytes). The bits of the flag byte,
// consumed least-significant first, tell the two apart: 1 for a literal,
// 0 for a back-reference.
//
// The encoder finds matches with 256 binary search trees, one per possible
// first byte, keyed on the 24-byte string starting at each window position.
// Inserting the string for a new position reports the longest match against
// the window as a side effect, so match search, window maintenance, and
// output run in a single pass.
//
// There is no stream header, length field, or checksum, and a stream does
// not mark its own end: decoding simply stops at the end of the input, and
// a truncated stream decodes to a prefix of the original data. Because of
// that, concatenating two compressed streams does not decode to the
// concatenation of the two originals; callers that need to compose streams
// must add their own framing.
package lzss

const (
	// windowSize is the size of the sliding window. It must be a power of
	// two, and the back-reference encoding fixes it at 2048.
	windowSize = 2048
	windowMask = windowSize - 1

	// maxMatch is the upper limit for a match length, and also the length
	// of the strings the match trees are keyed on.
	maxMatch = 24

	// threshold is the longest match that is still emitted as literals;
	// only matches of threshold+1 bytes or more pay for a two-byte unit.
	threshold = 1

	// nilNode is the tree index that stands for "no node".
	nilNode = windowSize
)

// MaxEncodedLen returns the length of the largest possible encoding of
// srcLen bytes of input: every byte emitted as a literal, plus one flag
// byte per eight units.
func MaxEncodedLen(srcLen int) int {
	return srcLen + (srcLen+7)/8
}
