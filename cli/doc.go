// Package cli builds the ft_ssl cobra command tree.
//
// The root command takes no flags of its own besides --config and
// --verbose; invoked without arguments it starts the interactive shell.
// One subcommand per algorithm (md5, sha256, whirlpool) parses the
// digest flags, stopping at the first file operand, and runs the
// dispatcher, the printer and the sidecar digester.
package cli
