// Binary ft_ssl computes MD5, SHA-256 and Whirlpool digests of
// standard input, strings and files.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/byte4ever/ftssl/cli"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.Execute(
		ctx,
		os.Args[1:],
		cli.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
	)
}

func main() {
	cli.SetupLogging(os.Stderr, false)

	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			slog.Error(err.Error())
		}

		os.Exit(1)
	}
}
