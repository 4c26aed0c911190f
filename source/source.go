package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Kind identifies the origin of an input.
type Kind int

// Input kinds, in the order they are processed.
const (
	Stdin Kind = iota + 1
	String
	File
)

// ErrNoStdin is returned when a stdin input is read without a reader.
var ErrNoStdin = errors.New("no standard input available")

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Stdin:
		return "stdin"
	case String:
		return "string"
	case File:
		return "file"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Input is one message to hash. Name holds the literal text for String
// inputs and the path for File inputs; it is empty for Stdin.
type Input struct {
	Kind Kind
	Name string
}

// Plan orders the inputs of one run: standard input first when echo is
// requested or nothing else was given, then strings, then files.
func Plan(
	echo bool,
	strs []string,
	files []string,
) []Input {
	inputs := make([]Input, 0, 1+len(strs)+len(files))

	if echo || (len(strs) == 0 && len(files) == 0) {
		inputs = append(inputs, Input{Kind: Stdin})
	}

	for _, st := range strs {
		inputs = append(inputs, Input{Kind: String, Name: st})
	}

	for _, fi := range files {
		inputs = append(inputs, Input{Kind: File, Name: fi})
	}

	return inputs
}

// Read returns the complete content of in. stdin is only consulted for
// Stdin inputs.
func Read(
	ctx context.Context,
	in Input,
	stdin io.Reader,
) ([]byte, error) {
	const errCtx = "reading input"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	switch in.Kind {
	case Stdin:
		if stdin == nil {
			return nil, fmt.Errorf("%s: %w", errCtx, ErrNoStdin)
		}

		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: stdin: %w", errCtx, err,
			)
		}

		return data, nil
	case String:
		return []byte(in.Name), nil
	case File:
		data, err := os.ReadFile(in.Name) //nolint:gosec // path from CLI args
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return data, nil
	default:
		return nil, fmt.Errorf(
			"%s: unsupported input %s", errCtx, in.Kind,
		)
	}
}

// Reason returns the operating system reason behind a read failure,
// capitalized the way strerror prints it ("No such file or directory").
func Reason(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}

	msg := err.Error()
	if msg == "" {
		return msg
	}

	return strings.ToUpper(msg[:1]) + msg[1:]
}
