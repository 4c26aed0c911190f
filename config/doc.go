// Package config holds the immutable settings of one ft_ssl run.
//
// A Config is built by the CLI from its flags, optionally seeded from a
// YAML defaults file (see Load), then validated once. Nothing mutates it
// afterwards; the interactive shell builds a fresh value per command.
package config
