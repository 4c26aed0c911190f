// Package engine holds what the digest engines share: the block size,
// the misuse and resource exhaustion errors, the streaming Session
// contract, and the session lifecycle State. The engines themselves live
// in the md5, sha256 and whirlpool subpackages.
package engine
