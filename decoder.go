package lzss

import (
	"bufio"
	"io"
)

// Decode reads a compressed stream from src and writes the decompressed
// bytes to dst. The end of the input, wherever it falls, ends the stream:
// a truncated input decodes to a prefix of the original data, not an error.
func Decode(dst io.Writer, src io.Reader) error {
	br, ok := src.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(src)
	}
	if bw, ok := dst.(byteWriter); ok {
		return decode(bw, br)
	}
	bw := bufio.NewWriter(dst)
	if err := decode(bw, br); err != nil {
		return err
	}
	return bw.Flush()
}

// Decompress appends the decompressed form of src to dst and returns the
// resulting slice.
func Decompress(dst, src []byte) []byte {
	w := &appendWriter{buf: dst}
	_ = decode(w, &sliceReader{data: src})
	return w.buf
}

func decode(dst byteWriter, src io.ByteReader) error {
	var window [windowSize]byte
	r := windowSize - maxMatch
	flags := uint32(0)

	for {
		flags >>= 1
		if flags&0x100 == 0 {
			c, err := src.ReadByte()
			if err != nil {
				return endOfInput(err)
			}
			// The high byte of flags counts how many of the eight
			// flag bits are still valid.
			flags = uint32(c) | 0xff00
		}

		if flags&1 != 0 {
			c, err := src.ReadByte()
			if err != nil {
				return endOfInput(err)
			}
			if err := dst.WriteByte(c); err != nil {
				return err
			}
			window[r] = c
			r = (r + 1) & windowMask
		} else {
			i, err := src.ReadByte()
			if err != nil {
				return endOfInput(err)
			}
			j, err := src.ReadByte()
			if err != nil {
				return endOfInput(err)
			}
			pos := int(i) | int(j&0xe0)<<3
			length := int(j&0x1f) + threshold
			// The unit stores the copy count minus threshold+1,
			// because shorter copies are never emitted, so length+1
			// bytes are copied. Copying one byte at a time makes each
			// written byte visible to later reads, which is what an
			// overlapping reference needs.
			for k := 0; k <= length; k++ {
				c := window[(pos+k)&windowMask]
				if err := dst.WriteByte(c); err != nil {
					return err
				}
				window[r] = c
				r = (r + 1) & windowMask
			}
		}
	}
}

// endOfInput turns the end of the compressed stream, which may fall between
// or inside units, into a normal return.
func endOfInput(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}
