// Package interactive runs the ft_ssl command shell started when the
// binary is invoked without arguments. Each line is either "exit" or
// "execute <algo> [flags] [files]"; execution is delegated to an
// Executor so the shell stays free of flag parsing.
package interactive
