package lzss

import (
	"bufio"
	"io"
)

// An encoder holds the state for one compression pass: the sliding window
// and the match trees over it. The window is a ring buffer of windowSize
// bytes with maxMatch-1 extra bytes at the end that mirror the start of the
// ring, so that the maxMatch-byte string at any ring position can be
// compared without wrapping.
type encoder struct {
	textBuf [windowSize + maxMatch - 1]byte

	// The match trees. lson and rson are left and right children, dad is
	// the parent; indexes are window positions, with rson also holding the
	// 256 root slots past the end.
	lson [windowSize + 1]int
	rson [windowSize + 257]int
	dad  [windowSize + 1]int

	// Longest match found by the most recent insertNode call.
	matchPos int
	matchLen int
}

// Encode reads src until EOF and writes its compressed form to dst.
// It returns the first error encountered while reading or writing.
// If src does not implement io.ByteReader, it is wrapped in a bufio.Reader.
func Encode(dst io.Writer, src io.Reader) error {
	br, ok := src.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(src)
	}
	return new(encoder).encode(dst, br)
}

// Compress appends the compressed form of src to dst and returns the
// resulting slice.
func Compress(dst, src []byte) []byte {
	if dst == nil {
		dst = make([]byte, 0, MaxEncodedLen(len(src)))
	}
	w := &appendWriter{buf: dst}
	_ = new(encoder).encode(w, &sliceReader{data: src})
	return w.buf
}

func (e *encoder) encode(dst io.Writer, src io.ByteReader) error {
	e.initTree()
	for i := range e.textBuf {
		e.textBuf[i] = 0
	}

	// codeBuf collects one flag byte plus up to eight units of one or two
	// bytes each, so a full block is at most 17 bytes.
	var codeBuf [17]byte
	codeBufPtr := 1
	mask := byte(1)

	s := 0
	r := windowSize - maxMatch

	// Fill the lookahead with up to maxMatch bytes.
	lookahead := 0
	for lookahead < maxMatch {
		c, err := src.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		e.textBuf[r+lookahead] = c
		lookahead++
	}
	if lookahead == 0 {
		return nil
	}

	// Insert the maxMatch strings leading up to r, the ones with the
	// longest history last, so the trees start out less degenerate.
	// The final insert, at r itself, reports the first match.
	for i := 1; i <= maxMatch; i++ {
		e.insertNode(r - i)
	}
	e.insertNode(r)

	for {
		if e.matchLen > lookahead {
			// Near the end of the input the comparison runs into
			// stale window bytes; only lookahead bytes are real.
			e.matchLen = lookahead
		}

		if e.matchLen <= threshold {
			e.matchLen = 1
			codeBuf[0] |= mask
			codeBuf[codeBufPtr] = e.textBuf[r]
			codeBufPtr++
		} else {
			codeBuf[codeBufPtr] = byte(e.matchPos)
			codeBuf[codeBufPtr+1] = byte((e.matchPos>>3)&0xe0 | (e.matchLen - (threshold + 1)))
			codeBufPtr += 2
		}

		mask <<= 1
		if mask == 0 {
			if _, err := dst.Write(codeBuf[:codeBufPtr]); err != nil {
				return err
			}
			codeBuf[0] = 0
			codeBufPtr = 1
			mask = 1
		}

		// Consume the bytes just coded: slide the window forward over
		// them, deleting each string that falls out and inserting each
		// new one. The last insert reports the next match.
		last := e.matchLen
		i := 0
		for ; i < last; i++ {
			c, err := src.ReadByte()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			e.deleteNode(s)
			e.textBuf[s] = c
			if s < maxMatch-1 {
				e.textBuf[s+windowSize] = c
			}
			s = (s + 1) & windowMask
			r = (r + 1) & windowMask
			e.insertNode(r)
		}
		for ; i < last; i++ {
			// Input exhausted; drain the lookahead.
			e.deleteNode(s)
			s = (s + 1) & windowMask
			r = (r + 1) & windowMask
			if lookahead--; lookahead > 0 {
				e.insertNode(r)
			}
		}
		if lookahead == 0 {
			break
		}
	}

	if codeBufPtr > 1 {
		if _, err := dst.Write(codeBuf[:codeBufPtr]); err != nil {
			return err
		}
	}
	return nil
}
