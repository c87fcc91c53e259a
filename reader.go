package lzss

import (
	"bufio"
	"io"
)

// A Reader decompresses a stream incrementally as it is read from.
// A truncated compressed stream is not an error: Read returns whatever
// prefix of the original data can be reconstructed, then io.EOF.
type Reader struct {
	src    io.ByteReader
	window [windowSize]byte
	wpos   int    // next window position to fill
	flags  uint32 // flag shift register; the high byte counts remaining bits
	pos    int    // window position of the back-reference being copied
	n      int    // bytes left in the back-reference being copied
	err    error
}

// NewReader returns a Reader that decompresses the stream from r.
// If r does not implement io.ByteReader, it is wrapped in a bufio.Reader.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{src: br, wpos: windowSize - maxMatch}
}

func (z *Reader) Read(p []byte) (n int, err error) {
	for n < len(p) && z.err == nil {
		if z.n > 0 {
			// Continue a window copy. One byte at a time, so an
			// overlapping reference sees the bytes it just wrote.
			c := z.window[z.pos&windowMask]
			z.pos++
			z.n--
			z.window[z.wpos] = c
			z.wpos = (z.wpos + 1) & windowMask
			p[n] = c
			n++
			continue
		}

		z.flags >>= 1
		if z.flags&0x100 == 0 {
			c, err := z.src.ReadByte()
			if err != nil {
				z.err = err
				break
			}
			z.flags = uint32(c) | 0xff00
		}

		if z.flags&1 != 0 {
			c, err := z.src.ReadByte()
			if err != nil {
				z.err = err
				break
			}
			z.window[z.wpos] = c
			z.wpos = (z.wpos + 1) & windowMask
			p[n] = c
			n++
		} else {
			i, err := z.src.ReadByte()
			if err != nil {
				z.err = err
				break
			}
			j, err := z.src.ReadByte()
			if err != nil {
				z.err = err
				break
			}
			z.pos = int(i) | int(j&0xe0)<<3
			z.n = int(j&0x1f) + threshold + 1
		}
	}
	if n > 0 {
		return n, nil
	}
	return 0, z.err
}
