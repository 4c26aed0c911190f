// Package digest selects a digest engine by algorithm and dispatches
// messages to it.
//
// Algorithm identifies MD5, SHA-256 or Whirlpool and knows its name,
// display label and digest size. Sum and SumHex hash one in-memory
// message. Dispatcher reads a planned list of inputs and hashes them
// concurrently with a bounded errgroup, returning results in input
// order. Each computation uses its own engine state; only the engines'
// constant tables are shared.
package digest
