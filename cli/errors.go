package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// reportInvalidCommand prints the invalid command message for name.
func reportInvalidCommand(w io.Writer, name string) error {
	fmt.Fprintf( //nolint:errcheck // best-effort report
		w,
		"ft_ssl: Error: '%s' is an invalid command.\n",
		name,
	)

	return fmt.Errorf(
		"%w: %w: %q", ErrReported, ErrInvalidCommand, name,
	)
}

// flagError prints flag parsing failures the way ft_ssl always has
// and marks them reported.
func flagError(w io.Writer) func(*cobra.Command, error) error {
	return func(_ *cobra.Command, err error) error {
		fmt.Fprintf( //nolint:errcheck // best-effort report
			w, "ft_ssl: Error: %s\n", flagMessage(err),
		)

		return fmt.Errorf("%w: %w", ErrReported, err)
	}
}

// flagMessage maps pflag error texts to ft_ssl messages. Unrecognized
// errors keep their text.
func flagMessage(err error) string {
	msg := err.Error()

	if rest, ok := strings.CutPrefix(msg, "unknown shorthand flag: "); ok {
		if _, arg, found := strings.Cut(rest, " in "); found {
			return fmt.Sprintf("'%s' is an invalid flag.", arg)
		}
	}

	if arg, ok := strings.CutPrefix(msg, "unknown flag: "); ok {
		return fmt.Sprintf("'%s' is an invalid flag.", arg)
	}

	if rest, ok := strings.CutPrefix(msg, "flag needs an argument: "); ok {
		name := missingValueFlag(rest)
		if name == "-s" || name == "--string" {
			return fmt.Sprintf("'%s' expect a string after it.", name)
		}

		return fmt.Sprintf("'%s' expect a value after it.", name)
	}

	return msg
}

// missingValueFlag extracts the flag from "'s' in -s" or "--string".
func missingValueFlag(rest string) string {
	quoted, ok := strings.CutPrefix(rest, "'")
	if !ok {
		return rest
	}

	short, _, _ := strings.Cut(quoted, "'")

	return "-" + short
}
