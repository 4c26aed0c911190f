package digester

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/byte4ever/ftssl/digest"
)

// SidecarPath returns the sidecar path of path for algo.
func SidecarPath(algo digest.Algorithm, path string) string {
	return path + "." + algo.String()
}

// Calculate computes the hex digest of the file at path.
func Calculate(algo digest.Algorithm, path string) (string, error) {
	const errCtx = "calculating digest"

	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided by design
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	hx, err := digest.SumHex(algo, data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return hx, nil
}

// Load reads the digest stored in the sidecar of path. It returns an
// empty string with no error when the sidecar does not exist.
func Load(algo digest.Algorithm, path string) (string, error) {
	const errCtx = "loading stored digest"

	raw, err := os.ReadFile(SidecarPath(algo, path)) //nolint:gosec // path is caller-provided by design
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return strings.TrimSpace(string(raw)), nil
}

// Store writes hex to the sidecar of path.
func Store(algo digest.Algorithm, path string, hex string) error {
	const errCtx = "storing digest"

	if err := os.WriteFile(
		SidecarPath(algo, path),
		[]byte(hex+"\n"),
		0o600,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Save calculates the digest of the file at path and stores it in its
// sidecar.
func Save(algo digest.Algorithm, path string) error {
	const errCtx = "saving digest"

	hx, err := Calculate(algo, path)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := Store(algo, path, hx); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Compare reports whether hex matches the sidecar of path. A missing
// sidecar never matches. Case is ignored.
func Compare(algo digest.Algorithm, path string, hex string) (bool, error) {
	const errCtx = "comparing digest"

	stored, err := Load(algo, path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return stored != "" && strings.EqualFold(stored, hex), nil
}

// Verify compares the calculated digest of the file at path against
// its sidecar.
func Verify(algo digest.Algorithm, path string) (bool, error) {
	const errCtx = "verifying digest"

	hx, err := Calculate(algo, path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	ok, err := Compare(algo, path, hx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtx, err)
	}

	return ok, nil
}
