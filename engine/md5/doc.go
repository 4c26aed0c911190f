// Package md5 implements the MD5 digest (RFC 1321) as a one-shot
// function over an in-memory message. Message words are decoded
// little-endian and the four state words are emitted little-endian.
//
// The trailing length field always carries the full 64-bit bit count,
// so messages of 512 MiB and more hash to the standard value.
package md5
