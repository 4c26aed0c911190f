package hexenc

import (
	"errors"
	"fmt"
	"math"
)

const alphabet = "0123456789abcdef"

// ErrTooLarge is returned when the encoded form of the input cannot be
// allocated.
var ErrTooLarge = errors.New("input too large to encode")

// Encode returns the lowercase hexadecimal form of src. The result is
// exactly 2*len(src) characters long.
func Encode(src []byte) (string, error) {
	const errCtx = "encoding hex"

	if len(src) > math.MaxInt/2 {
		return "", fmt.Errorf("%s: %w", errCtx, ErrTooLarge)
	}

	return string(Append(make([]byte, 0, 2*len(src)), src)), nil
}

// Append appends the hexadecimal form of src to dst and returns the
// extended buffer.
func Append(dst []byte, src []byte) []byte {
	for _, b := range src {
		dst = append(dst, alphabet[b>>4], alphabet[b&0x0f])
	}

	return dst
}
