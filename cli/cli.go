package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/byte4ever/ftssl/config"
	"github.com/byte4ever/ftssl/digest"
	"github.com/byte4ever/ftssl/interactive"
)

// ErrReported marks failures already shown to the user; the caller
// only has to set the exit status.
var ErrReported = errors.New("error reported")

// Errors reported on the error stream.
var (
	ErrInvalidCommand = errors.New("invalid command")
	ErrCheckFailed    = errors.New("digest check failed")
)

// Streams are the standard streams of a run.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// globalOptions are the persistent flags of the root command.
type globalOptions struct {
	configPath string
	verbose    bool
}

// Execute runs ft_ssl with args, which exclude the program name.
func Execute(ctx context.Context, args []string, st Streams) error {
	const errCtx = "ft_ssl"

	// cobra falls back to os.Args on nil.
	if args == nil {
		args = []string{}
	}

	// The first argument is always the command; cobra would take a
	// leading flag for its own or offer its help command.
	if len(args) > 0 &&
		(strings.HasPrefix(args[0], "-") || args[0] == "help") {
		return fmt.Errorf(
			"%s: %w", errCtx, reportInvalidCommand(st.Err, args[0]),
		)
	}

	root := NewRootCommand(st)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// NewRootCommand returns the ft_ssl command tree bound to st.
func NewRootCommand(st Streams) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "ft_ssl [command] [flags] [files...]",
		Short: "Compute MD5, SHA-256 and Whirlpool digests",
		Long: "ft_ssl hashes standard input, strings and files.\n" +
			"Without arguments it starts an interactive shell.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			SetupLogging(st.Err, opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return reportInvalidCommand(st.Err, args[0])
			}

			shell := interactive.Shell{
				In:      st.In,
				Out:     st.Out,
				Execute: shellExecutor(st, opts),
			}

			return shell.Run(cmd.Context())
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true
	// Unknown commands are reported by RunE, whatever flags follow them.
	root.FParseErrWhitelist.UnknownFlags = true
	root.SetIn(st.In)
	root.SetOut(st.Out)
	root.SetErr(st.Err)

	root.PersistentFlags().StringVar(
		&opts.configPath, "config", config.DefaultPath(),
		"YAML defaults file (default $"+config.EnvPath+")",
	)

	root.PersistentFlags().BoolVar(
		&opts.verbose, "verbose", false,
		"log debug events on stderr",
	)

	for _, algo := range digest.Algorithms() {
		root.AddCommand(newDigestCommand(algo, st, opts, false))
	}

	return root
}

// shellExecutor runs one interactive "execute" line on a fresh
// command. Standard input belongs to the shell, so stdin inputs read
// nothing.
func shellExecutor(st Streams, opts *globalOptions) interactive.Executor {
	return func(
		ctx context.Context,
		algo digest.Algorithm,
		args []string,
	) error {
		lineStreams := Streams{
			In:  strings.NewReader(""),
			Out: st.Out,
			Err: st.Out,
		}

		cmd := newDigestCommand(algo, lineStreams, opts, true)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		cmd.SetArgs(args)
		cmd.SetOut(st.Out)
		cmd.SetErr(st.Out)

		err := cmd.ExecuteContext(ctx)

		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrReported):
			slog.Debug("interactive command failed", "error", err)

			return nil
		default:
			return err
		}
	}
}

// SetupLogging installs the default slog text handler on w, at debug
// level when verbose.
func SetupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		w,
		&slog.HandlerOptions{Level: level},
	)))
}
