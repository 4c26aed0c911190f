// Package sha256 implements the SHA-256 digest (FIPS 180-4) as a
// streaming session. Message words and the length field are big-endian.
//
// Unlike crypto/sha256, a Digest is single-use: Final marks it
// finalized and any further Update or Final fails with
// engine.ErrFinalized until Reset is called.
package sha256
