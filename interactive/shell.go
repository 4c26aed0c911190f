package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/byte4ever/ftssl/digest"
)

const (
	prompt = "ft_ssl> "
	banner = "Usage: [command] [algo] [options]\n" +
		"Commands: exit, execute\n"
)

// ErrNoInput is returned by an Executor when a command names neither a
// string nor a file.
var ErrNoInput = errors.New("no input specified")

// Executor runs one "execute" command. args are the tokens after the
// algorithm name.
type Executor func(
	ctx context.Context,
	algo digest.Algorithm,
	args []string,
) error

// Shell reads commands from In until "exit" or end of input.
type Shell struct {
	In      io.Reader
	Out     io.Writer
	Execute Executor
}

// Run prints the banner and processes lines. Command errors are
// reported on Out and do not end the loop; only a read failure or a
// cancelled context does.
func (sh Shell) Run(ctx context.Context) error {
	const errCtx = "running interactive shell"

	if _, err := io.WriteString(sh.Out, banner); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	scanner := bufio.NewScanner(sh.In)

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if _, err := io.WriteString(sh.Out, prompt); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if !scanner.Scan() {
			break
		}

		done, err := sh.process(ctx, scanner.Text())
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if done {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// process handles one line and reports whether the shell must stop.
// The returned error is a write failure on Out.
func (sh Shell) process(ctx context.Context, line string) (bool, error) {
	tokens := split(line)
	if len(tokens) == 0 {
		return false, nil
	}

	switch tokens[0] {
	case "exit":
		return true, nil
	case "execute":
		return false, sh.execute(ctx, tokens[1:])
	default:
		return false, sh.errorf(
			"'%s' is an invalid command (use execute or exit).",
			tokens[0],
		)
	}
}

func (sh Shell) execute(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return sh.errorf("no algorithm specified.")
	}

	algo, err := digest.ParseAlgorithm(tokens[0])
	if err != nil {
		return sh.errorf(
			"'%s' is an invalid algorithm (use md5, sha256 or whirlpool).",
			tokens[0],
		)
	}

	err = sh.Execute(ctx, algo, tokens[1:])

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNoInput):
		return sh.errorf(
			"no input specified. In interactive mode you must " +
				"specify a file or a string.",
		)
	default:
		slog.Debug("interactive command failed", "error", err)

		return sh.errorf("%s", err.Error())
	}
}

func (sh Shell) errorf(format string, args ...any) error {
	_, err := fmt.Fprintf(
		sh.Out, "ft_ssl: Error: "+format+"\n", args...,
	)

	return err
}

// split cuts a line on spaces, dropping empty tokens.
func split(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\r'
	})
}
