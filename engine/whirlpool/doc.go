// Package whirlpool implements the Whirlpool digest (ISO/IEC
// 10118-3:2004) as a streaming session.
//
// Each 64-byte block is decoded into eight big-endian lanes and run
// through a 10-round substitution-permutation cipher keyed by the
// running hash, whose output is folded back into the hash in
// Miyaguchi-Preneel mode. The eight 256-entry lookup tables in
// tables.go merge the S-box with the MDS matrix multiplication.
//
// Sessions follow the same lifecycle as the sha256 package: Final
// finalizes, Reset re-arms.
package whirlpool
