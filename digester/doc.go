// Package digester keeps file digests in sidecar files next to the
// file they describe. The sidecar of data.bin hashed with sha256 is
// data.bin.sha256 and holds the lowercase hex digest, so files can be
// re-verified later with --check.
package digester
