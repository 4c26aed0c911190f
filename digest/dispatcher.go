package digest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/byte4ever/ftssl/source"
)

// Result is the outcome of hashing one input. Err is set when the
// input could not be read; the engine never saw it in that case.
type Result struct {
	Input source.Input

	// Content holds the bytes read from standard input, which the
	// display layer may echo. It is nil for other kinds.
	Content []byte

	Digest []byte
	Err    error
}

// Dispatcher hashes a list of inputs with one algorithm.
type Dispatcher struct {
	// Algorithm selects the engine.
	Algorithm Algorithm

	// Parallelism bounds the number of inputs read and hashed at
	// once. Zero or less means runtime.NumCPU().
	Parallelism int

	// Stdin is read for source.Stdin inputs.
	Stdin io.Reader
}

// Run reads and hashes every input and returns one Result per input, in
// input order. Read failures are reported on the Result and do not stop
// the run; engine failures and context cancellation do.
func (d Dispatcher) Run(
	ctx context.Context,
	inputs []source.Input,
) ([]Result, error) {
	const errCtx = "dispatching inputs"

	if !d.Algorithm.Valid() {
		return nil, fmt.Errorf(
			"%s: %w: %s", errCtx, ErrUnknownAlgorithm, d.Algorithm,
		)
	}

	parallelism := d.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	results := make([]Result, len(inputs))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(parallelism)

	for idx, in := range inputs {
		grp.Go(func() error {
			res, err := d.hash(gctx, in)
			if err != nil {
				return err
			}

			results[idx] = res

			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return results, nil
}

// hash reads and hashes a single input.
func (d Dispatcher) hash(
	ctx context.Context,
	in source.Input,
) (Result, error) {
	const errCtx = "hashing input"

	res := Result{Input: in}

	data, err := source.Read(ctx, in, d.Stdin)
	if err != nil {
		if ctx.Err() != nil {
			return res, fmt.Errorf("%s: %w", errCtx, ctx.Err())
		}

		slog.Debug(
			"input unreadable",
			"kind", in.Kind.String(),
			"name", in.Name,
			"error", err,
		)

		res.Err = err

		return res, nil
	}

	slog.Debug(
		"hashing input",
		"algorithm", d.Algorithm.String(),
		"kind", in.Kind.String(),
		"name", in.Name,
		"bytes", len(data),
	)

	sum, err := Sum(d.Algorithm, data)
	if err != nil {
		return res, fmt.Errorf("%s: %w", errCtx, err)
	}

	if in.Kind == source.Stdin {
		res.Content = data
	}

	res.Digest = sum

	return res, nil
}
