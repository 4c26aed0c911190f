package sha256

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/byte4ever/ftssl/engine"
)

// Size is the SHA-256 digest length in bytes.
const Size = 32

// maxBytes is the largest message whose bit length fits the 64-bit
// length field.
const maxBytes = 1<<61 - 1

// k holds the first 32 bits of the fractional parts of the cube roots
// of the first 64 primes.
var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5,
	0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc,
	0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7,
	0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13,
	0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3,
	0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5,
	0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208,
	0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var iv = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// Digest is a streaming SHA-256 session. The zero value is not
// initialized; use New or call Reset first.
type Digest struct {
	h     [8]uint32
	buf   [engine.BlockSize]byte
	count uint64
	state engine.State
}

var _ engine.Session = (*Digest)(nil)

// New returns an initialized session.
func New() *Digest {
	d := new(Digest)
	d.Reset()

	return d
}

// Sum returns the SHA-256 digest of msg.
func Sum(msg []byte) ([Size]byte, error) {
	const errCtx = "computing sha256"

	var out [Size]byte

	d := New()
	if err := d.Update(msg); err != nil {
		return out, fmt.Errorf("%s: %w", errCtx, err)
	}

	sum, err := d.Final()
	if err != nil {
		return out, fmt.Errorf("%s: %w", errCtx, err)
	}

	copy(out[:], sum)

	return out, nil
}

// Reset restores the initial hash values and clears the carry buffer.
func (d *Digest) Reset() {
	d.h = iv
	d.buf = [engine.BlockSize]byte{}
	d.count = 0
	d.state = engine.StateActive
}

// Size returns the digest length in bytes.
func (d *Digest) Size() int {
	return Size
}

// Update absorbs p. It may be called any number of times with any
// chunking.
func (d *Digest) Update(p []byte) error {
	const errCtx = "updating sha256"

	if err := d.state.Check(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if uint64(len(p)) > maxBytes-d.count {
		return fmt.Errorf(
			"%s: %w", errCtx, engine.ErrMessageTooLarge,
		)
	}

	d.absorb(p)

	return nil
}

// Final appends the padding and the 64-bit big-endian bit count,
// flushes the last block and returns the state words big-endian. The
// session is finalized afterwards and must be Reset before reuse.
func (d *Digest) Final() ([]byte, error) {
	const errCtx = "finalizing sha256"

	if err := d.state.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	bitLen := d.count << 3

	// 0x80 then zeros so that the count lands at byte 56 of a block.
	var tmp [engine.BlockSize + 8]byte
	tmp[0] = 0x80

	padLen := 56 - int(d.count%engine.BlockSize)
	if padLen <= 0 {
		padLen += engine.BlockSize
	}

	binary.BigEndian.PutUint64(tmp[padLen:], bitLen)
	d.absorb(tmp[:padLen+8])

	out := make([]byte, Size)
	for i, w := range d.h {
		binary.BigEndian.PutUint32(out[4*i:], w)
	}

	d.state = engine.StateFinalized

	return out, nil
}

// absorb copies p through the carry buffer, compressing every full
// block.
func (d *Digest) absorb(p []byte) {
	pos := int(d.count % engine.BlockSize)
	d.count += uint64(len(p))

	if pos > 0 {
		n := copy(d.buf[pos:], p)
		p = p[n:]

		if pos+n < engine.BlockSize {
			return
		}

		block(&d.h, d.buf[:])
	}

	for len(p) >= engine.BlockSize {
		block(&d.h, p[:engine.BlockSize])
		p = p[engine.BlockSize:]
	}

	copy(d.buf[:], p)
}

// block compresses one 64-byte block into h. The message schedule is
// kept in a 16-word circular window: w[i&15] holds W[i-16] until it is
// overwritten with W[i].
func block(h *[8]uint32, p []byte) {
	var w [16]uint32
	for i := range w {
		w[i] = binary.BigEndian.Uint32(p[4*i:])
	}

	a, b, c, dd := h[0], h[1], h[2], h[3]
	e, f, g, hh := h[4], h[5], h[6], h[7]

	for i := 0; i < 64; i++ {
		if i >= 16 {
			w[i&15] += sigma1(w[(i-2)&15]) +
				w[(i-7)&15] +
				sigma0(w[(i-15)&15])
		}

		t1 := hh + bigSigma1(e) + ch(e, f, g) + k[i] + w[i&15]
		t2 := bigSigma0(a) + maj(a, b, c)

		hh, g, f, e = g, f, e, dd+t1
		dd, c, b, a = c, b, a, t1+t2
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += dd
	h[4] += e
	h[5] += f
	h[6] += g
	h[7] += hh
}

func rotr(x uint32, n int) uint32 {
	return bits.RotateLeft32(x, -n)
}

func bigSigma0(x uint32) uint32 {
	return rotr(x, 2) ^ rotr(x, 13) ^ rotr(x, 22)
}

func bigSigma1(x uint32) uint32 {
	return rotr(x, 6) ^ rotr(x, 11) ^ rotr(x, 25)
}

func sigma0(x uint32) uint32 {
	return rotr(x, 7) ^ rotr(x, 18) ^ (x >> 3)
}

func sigma1(x uint32) uint32 {
	return rotr(x, 17) ^ rotr(x, 19) ^ (x >> 10)
}

func ch(x, y, z uint32) uint32 {
	return z ^ (x & (y ^ z))
}

func maj(x, y, z uint32) uint32 {
	return (x & y) | (z & (x | y))
}
