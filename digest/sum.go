package digest

import (
	"fmt"

	"github.com/byte4ever/ftssl/engine/md5"
	"github.com/byte4ever/ftssl/engine/sha256"
	"github.com/byte4ever/ftssl/engine/whirlpool"
	"github.com/byte4ever/ftssl/hexenc"
)

// Sum returns the raw digest of msg computed with algo. The result has
// exactly algo.Size() bytes.
func Sum(algo Algorithm, msg []byte) ([]byte, error) {
	const errCtx = "computing digest"

	var (
		sum []byte
		err error
	)

	switch algo {
	case MD5:
		var out [md5.Size]byte

		out, err = md5.Sum(msg)
		sum = out[:]
	case SHA256:
		var out [sha256.Size]byte

		out, err = sha256.Sum(msg)
		sum = out[:]
	case Whirlpool:
		var out [whirlpool.Size]byte

		out, err = whirlpool.Sum(msg)
		sum = out[:]
	default:
		return nil, fmt.Errorf(
			"%s: %w: %s", errCtx, ErrUnknownAlgorithm, algo,
		)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return sum, nil
}

// SumHex returns the lowercase hexadecimal digest of msg.
func SumHex(algo Algorithm, msg []byte) (string, error) {
	const errCtx = "computing hex digest"

	sum, err := Sum(algo, msg)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	hx, err := hexenc.Encode(sum)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return hx, nil
}
