package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/byte4ever/ftssl/config"
	"github.com/byte4ever/ftssl/digest"
	"github.com/byte4ever/ftssl/digester"
	"github.com/byte4ever/ftssl/display"
	"github.com/byte4ever/ftssl/hexenc"
	"github.com/byte4ever/ftssl/interactive"
	"github.com/byte4ever/ftssl/source"
)

// digestFlags are the per-command flag values.
type digestFlags struct {
	echo        bool
	quiet       bool
	reverse     bool
	strings     []string
	json        bool
	encoding    string
	multihash   bool
	template    string
	parallelism int
	saveDigest  bool
	check       bool
}

func newDigestCommand(
	algo digest.Algorithm,
	st Streams,
	opts *globalOptions,
	interactiveLine bool,
) *cobra.Command {
	fl := &digestFlags{}

	cmd := &cobra.Command{
		Use:   algo.String() + " [flags] [files...]",
		Short: "Compute " + algo.Label() + " digests",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, files []string) error {
			cfg, err := buildConfig(
				algo, fl, files, cmd.Flags(), opts.configPath,
			)
			if err != nil {
				return err
			}

			if interactiveLine && len(cfg.Strings) == 0 &&
				len(cfg.Files) == 0 {
				return interactive.ErrNoInput
			}

			return run(cmd.Context(), cfg, st)
		},
	}

	cmd.SetFlagErrorFunc(flagError(st.Err))

	fs := cmd.Flags()
	fs.SetInterspersed(false)

	fs.BoolVarP(
		&fl.echo, "echo", "p", false,
		"echo standard input and include it in the output",
	)

	fs.BoolVarP(
		&fl.quiet, "quiet", "q", false,
		"print only the digest",
	)

	fs.BoolVarP(
		&fl.reverse, "reverse", "r", false,
		"print the digest before the input name",
	)

	fs.StringArrayVarP(
		&fl.strings, "string", "s", nil,
		"hash the given string (repeatable)",
	)

	fs.BoolVar(
		&fl.json, "json", false,
		"print one JSON record per input",
	)

	fs.StringVar(
		&fl.encoding, "encoding", "",
		"multibase encoding for digests (default lowercase hex)",
	)

	fs.BoolVar(
		&fl.multihash, "multihash", false,
		"wrap digests in a multihash (md5 and sha256 only)",
	)

	fs.StringVar(
		&fl.template, "template", "",
		"output line template with {{algorithm}} {{label}} "+
			"{{kind}} {{name}} {{digest}}",
	)

	fs.IntVar(
		&fl.parallelism, "parallelism", 0,
		"inputs hashed concurrently (default one per CPU)",
	)

	fs.BoolVar(
		&fl.saveDigest, "save-digest", false,
		"write <file>."+algo.String()+" sidecar digests",
	)

	fs.BoolVar(
		&fl.check, "check", false,
		"verify files against their sidecar digests",
	)

	return cmd
}

// buildConfig assembles the run configuration: flag values, then file
// defaults for every flag left unset.
func buildConfig(
	algo digest.Algorithm,
	fl *digestFlags,
	files []string,
	fs *pflag.FlagSet,
	configPath string,
) (config.Config, error) {
	const errCtx = "building config"

	cfg := config.Config{
		Algorithm:   algo,
		Echo:        fl.echo,
		Quiet:       fl.quiet,
		Reverse:     fl.reverse,
		Strings:     fl.strings,
		Files:       files,
		JSON:        fl.json,
		Encoding:    fl.encoding,
		Multihash:   fl.multihash,
		Template:    fl.template,
		Parallelism: fl.parallelism,
		SaveDigest:  fl.saveDigest,
		Check:       fl.check,
	}

	def, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return def.Apply(cfg, fs.Changed), nil
}

// run hashes, prints and optionally saves or checks sidecars.
func run(ctx context.Context, cfg config.Config, st Streams) error {
	const errCtx = "running digest"

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	pr, err := display.New(cfg, st.Out, st.Err)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if cfg.Check {
		return check(ctx, cfg.Algorithm, cfg.Files, pr)
	}

	inputs := cfg.Inputs()

	slog.Debug(
		"running digest",
		"algorithm", cfg.Algorithm.String(),
		"inputs", len(inputs),
		"parallelism", cfg.Parallelism,
	)

	dp := digest.Dispatcher{
		Algorithm:   cfg.Algorithm,
		Parallelism: cfg.Parallelism,
		Stdin:       st.In,
	}

	results, err := dp.Run(ctx, inputs)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := pr.PrintAll(results); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if cfg.SaveDigest {
		if err := save(cfg.Algorithm, results); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	return nil
}

// check verifies each file against its sidecar and prints a verdict
// per file. Unreadable files are reported as failures.
func check(
	ctx context.Context,
	algo digest.Algorithm,
	files []string,
	pr *display.Printer,
) error {
	const errCtx = "checking digests"

	failed := 0

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		ok, err := digester.Verify(algo, path)
		if err != nil {
			failed++

			if err := pr.Failure(path, err); err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			continue
		}

		if !ok {
			failed++
		}

		if err := pr.Verdict(path, ok); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf(
			"%w: %w: %d of %d", ErrReported, ErrCheckFailed,
			failed, len(files),
		)
	}

	return nil
}

// save writes a sidecar for every file that was hashed, reusing the
// digests already computed.
func save(algo digest.Algorithm, results []digest.Result) error {
	const errCtx = "saving sidecar digests"

	for _, res := range results {
		if res.Input.Kind != source.File || res.Err != nil {
			continue
		}

		hx, err := hexenc.Encode(res.Digest)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if err := digester.Store(algo, res.Input.Name, hx); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		slog.Debug(
			"sidecar digest saved",
			"path", digester.SidecarPath(algo, res.Input.Name),
		)
	}

	return nil
}
