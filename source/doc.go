// Package source describes where a message comes from (standard input,
// a command-line string, or a file) and reads it fully into memory
// before any digest is computed.
package source
