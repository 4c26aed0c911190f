// Package hexenc renders digests as lowercase hexadecimal strings, two
// characters per byte with the high nibble first.
package hexenc
