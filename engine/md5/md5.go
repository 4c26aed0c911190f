package md5

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"

	"github.com/byte4ever/ftssl/engine"
)

// Size is the MD5 digest length in bytes.
const Size = 16

// shifts holds the per-round left rotation amounts.
var shifts = [64]int{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

// k holds floor(abs(sin(i+1)) * 2^32) for each round.
var k = [64]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee,
	0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be,
	0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa,
	0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed,
	0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c,
	0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05,
	0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039,
	0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1,
	0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

var iv = [4]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476}

// lengthBytes is the size of the trailing bit length field.
const lengthBytes = 8

// Sum returns the MD5 digest of msg. The message is padded in a fresh
// buffer, so msg is never modified.
func Sum(msg []byte) ([Size]byte, error) {
	const errCtx = "computing md5"

	var out [Size]byte

	padded, err := pad(msg)
	if err != nil {
		return out, fmt.Errorf("%s: %w", errCtx, err)
	}

	st := iv

	for off := 0; off < len(padded); off += engine.BlockSize {
		block(&st, padded[off:off+engine.BlockSize])
	}

	for i, w := range st {
		binary.LittleEndian.PutUint32(out[4*i:], w)
	}

	return out, nil
}

// pad returns msg followed by 0x80, zeros up to 56 mod 64, and the
// message length in bits as a 64-bit little-endian integer. The full
// 64 bits are written, as RFC 1321 requires.
func pad(msg []byte) ([]byte, error) {
	n := len(msg)
	if n > math.MaxInt-2*engine.BlockSize {
		return nil, engine.ErrMessageTooLarge
	}

	size := (n+lengthBytes)/engine.BlockSize*engine.BlockSize +
		engine.BlockSize

	padded := make([]byte, size)
	copy(padded, msg)
	padded[n] = 0x80

	binary.LittleEndian.PutUint64(
		padded[size-lengthBytes:], uint64(n)<<3,
	)

	return padded, nil
}

// block runs the 64 rounds over one 64-byte block and adds the result
// into st.
func block(st *[4]uint32, p []byte) {
	var w [16]uint32
	for i := range w {
		w[i] = binary.LittleEndian.Uint32(p[4*i:])
	}

	a, b, c, d := st[0], st[1], st[2], st[3]

	for i := 0; i < 64; i++ {
		var (
			f uint32
			g int
		)

		switch {
		case i < 16:
			f = (b & c) | (^b & d)
			g = i
		case i < 32:
			f = (d & b) | (^d & c)
			g = (5*i + 1) % 16
		case i < 48:
			f = b ^ c ^ d
			g = (3*i + 5) % 16
		default:
			f = c ^ (b | ^d)
			g = (7 * i) % 16
		}

		a, b, c, d = d, b+bits.RotateLeft32(a+f+k[i]+w[g], shifts[i]), b, c
	}

	st[0] += a
	st[1] += b
	st[2] += c
	st[3] += d
}
