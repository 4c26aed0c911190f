package whirlpool

import (
	"encoding/binary"
	"fmt"

	"github.com/byte4ever/ftssl/engine"
)

const (
	// Size is the Whirlpool digest length in bytes.
	Size = 64

	rounds = 10

	// The length field is 256 bits wide; only its low 64 bits, at
	// lengthOffset, can be non-zero for messages hashed here.
	lengthFieldBytes = 32
	lengthOffset     = engine.BlockSize - 8

	maxBytes = 1<<61 - 1
)

// Digest is a streaming Whirlpool session. The zero value is not
// initialized; use New or call Reset first.
type Digest struct {
	h     [8]uint64
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

// Sum returns the Whirlpool digest of msg.
func Sum(msg []byte) ([Size]byte, error) {
	const errCtx = "computing whirlpool"

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

// Reset zeroes the hash lanes, the carry buffer and the byte counter.
func (d *Digest) Reset() {
	d.h = [8]uint64{}
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
	const errCtx = "updating whirlpool"

	if err := d.state.Check(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if uint64(len(p)) > maxBytes-d.count {
		return fmt.Errorf(
			"%s: %w", errCtx, engine.ErrMessageTooLarge,
		)
	}

	pos := int(d.count % engine.BlockSize)
	d.count += uint64(len(p))

	if pos > 0 {
		n := copy(d.buf[pos:], p)
		p = p[n:]

		if pos+n < engine.BlockSize {
			return nil
		}

		block(&d.h, d.buf[:])
	}

	for len(p) >= engine.BlockSize {
		block(&d.h, p[:engine.BlockSize])
		p = p[engine.BlockSize:]
	}

	copy(d.buf[:], p)

	return nil
}

// Final pads with 0x80, zeros and the bit count, runs the last one or
// two transforms and returns the hash lanes big-endian. The session is
// finalized afterwards and must be Reset before reuse.
func (d *Digest) Final() ([]byte, error) {
	const errCtx = "finalizing whirlpool"

	if err := d.state.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	pos := int(d.count % engine.BlockSize)
	d.buf[pos] = 0x80
	pos++

	// No room left for the 256-bit length field.
	if pos > engine.BlockSize-lengthFieldBytes {
		clear(d.buf[pos:])
		block(&d.h, d.buf[:])

		pos = 0
	}

	clear(d.buf[pos:lengthOffset])
	binary.BigEndian.PutUint64(d.buf[lengthOffset:], d.count<<3)
	block(&d.h, d.buf[:])

	out := make([]byte, Size)
	for i, lane := range d.h {
		binary.BigEndian.PutUint64(out[8*i:], lane)
	}

	d.state = engine.StateFinalized

	return out, nil
}

// block runs the W cipher keyed by h over one message block and folds
// the result back into h (Miyaguchi-Preneel).
func block(h *[8]uint64, p []byte) {
	var msg, key, st [8]uint64

	for i := range msg {
		msg[i] = binary.BigEndian.Uint64(p[8*i:])
		key[i] = h[i]
		st[i] = msg[i] ^ key[i]
	}

	for r := 0; r < rounds; r++ {
		key = rho(&key)
		key[0] ^= rc[r]

		st = rho(&st)
		for i := range st {
			st[i] ^= key[i]
		}
	}

	for i := range h {
		h[i] ^= st[i] ^ msg[i]
	}
}

// rho applies the substitution, column shift and mixing layers. Output
// lane i takes byte j (most significant first) of lane i-j through
// table j.
func rho(a *[8]uint64) [8]uint64 {
	var out [8]uint64

	for i := range out {
		out[i] = tables[0][byte(a[i]>>56)] ^
			tables[1][byte(a[(i+7)&7]>>48)] ^
			tables[2][byte(a[(i+6)&7]>>40)] ^
			tables[3][byte(a[(i+5)&7]>>32)] ^
			tables[4][byte(a[(i+4)&7]>>24)] ^
			tables[5][byte(a[(i+3)&7]>>16)] ^
			tables[6][byte(a[(i+2)&7]>>8)] ^
			tables[7][byte(a[(i+1)&7])]
	}

	return out
}
