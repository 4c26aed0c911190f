package config

import (
	"errors"
	"fmt"

	"github.com/multiformats/go-multibase"

	"github.com/byte4ever/ftssl/digest"
	"github.com/byte4ever/ftssl/source"
)

// Validation errors.
var (
	ErrUnknownEncoding      = errors.New("unknown encoding")
	ErrInvalidParallelism   = errors.New("parallelism must not be negative")
	ErrMultihashUnsupported = errors.New("algorithm has no multihash code")
	ErrConflictingModes     = errors.New(
		"--check and --save-digest are mutually exclusive",
	)
	ErrNothingToCheck = errors.New("--check needs at least one file")
)

// Config is the settings of one run.
type Config struct {
	Algorithm digest.Algorithm

	// Echo, Quiet and Reverse select the text layout.
	Echo    bool
	Quiet   bool
	Reverse bool

	// Strings and Files are hashed in order, after standard input.
	Strings []string
	Files   []string

	// JSON switches output to one JSON record per line.
	JSON bool

	// Encoding names a multibase encoding for digests. Empty means
	// plain lowercase hexadecimal.
	Encoding string

	// Multihash wraps digests in a self-describing multihash.
	Multihash bool

	// Template overrides the per-line text layout.
	Template string

	// Parallelism bounds concurrent hashing; 0 means one per CPU.
	Parallelism int

	// SaveDigest writes <file>.<algo> sidecars; Check verifies them.
	SaveDigest bool
	Check      bool
}

// Validate reports the first setting that cannot be honored.
func (c Config) Validate() error {
	const errCtx = "validating config"

	if !c.Algorithm.Valid() {
		return fmt.Errorf(
			"%s: %w: %s", errCtx, digest.ErrUnknownAlgorithm, c.Algorithm,
		)
	}

	if c.Encoding != "" {
		if _, err := multibase.EncoderByName(c.Encoding); err != nil {
			return fmt.Errorf(
				"%s: %w: %q", errCtx, ErrUnknownEncoding, c.Encoding,
			)
		}
	}

	if c.Parallelism < 0 {
		return fmt.Errorf(
			"%s: %w: %d", errCtx, ErrInvalidParallelism, c.Parallelism,
		)
	}

	if c.Multihash && c.Algorithm == digest.Whirlpool {
		return fmt.Errorf(
			"%s: %w: %s", errCtx, ErrMultihashUnsupported, c.Algorithm,
		)
	}

	if c.Check && c.SaveDigest {
		return fmt.Errorf("%s: %w", errCtx, ErrConflictingModes)
	}

	if c.Check && len(c.Files) == 0 {
		return fmt.Errorf("%s: %w", errCtx, ErrNothingToCheck)
	}

	return nil
}

// Inputs returns the inputs of the run in processing order.
func (c Config) Inputs() []source.Input {
	return source.Plan(c.Echo, c.Strings, c.Files)
}
