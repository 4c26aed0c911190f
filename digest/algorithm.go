package digest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/byte4ever/ftssl/engine/md5"
	"github.com/byte4ever/ftssl/engine/sha256"
	"github.com/byte4ever/ftssl/engine/whirlpool"
)

// Algorithm identifies a digest algorithm. The zero value is invalid.
type Algorithm int

// Supported algorithms.
const (
	MD5 Algorithm = iota + 1
	SHA256
	Whirlpool
)

// ErrUnknownAlgorithm is returned for names that match no algorithm.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

type algorithmInfo struct {
	name  string
	label string
	size  int
}

var algorithms = map[Algorithm]algorithmInfo{
	MD5:       {name: "md5", label: "MD5", size: md5.Size},
	SHA256:    {name: "sha256", label: "SHA256", size: sha256.Size},
	Whirlpool: {name: "whirlpool", label: "WHIRLPOOL", size: whirlpool.Size},
}

// Algorithms returns every supported algorithm in command order.
func Algorithms() []Algorithm {
	return []Algorithm{MD5, SHA256, Whirlpool}
}

// ParseAlgorithm maps a command name ("md5", "sha256", "whirlpool") to
// its Algorithm. Matching is exact.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, al := range Algorithms() {
		if algorithms[al].name == name {
			return al, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// String returns the command name of the algorithm.
func (a Algorithm) String() string {
	if info, ok := algorithms[a]; ok {
		return info.name
	}

	return fmt.Sprintf("algorithm(%d)", int(a))
}

// Label returns the uppercase name printed before digests.
func (a Algorithm) Label() string {
	if info, ok := algorithms[a]; ok {
		return info.label
	}

	return strings.ToUpper(a.String())
}

// Size returns the digest length in bytes, or 0 for an invalid
// algorithm.
func (a Algorithm) Size() int {
	return algorithms[a].size
}

// Valid reports whether a is a supported algorithm.
func (a Algorithm) Valid() bool {
	_, ok := algorithms[a]

	return ok
}

// MarshalText encodes the algorithm as its command name.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf(
			"%w: %d", ErrUnknownAlgorithm, int(a),
		)
	}

	return []byte(a.String()), nil
}

// UnmarshalText decodes a command name.
func (a *Algorithm) UnmarshalText(text []byte) error {
	al, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}

	*a = al

	return nil
}
