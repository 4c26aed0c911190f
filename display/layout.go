package display

import (
	"fmt"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/ftssl/source"
)

const (
	startTag = "{{"
	endTag   = "}}"
)

// layout holds one compiled template per input kind.
type layout map[source.Kind]*fasttemplate.Template

var (
	defaultLayout = map[source.Kind]string{
		source.Stdin:  "(stdin)= {{digest}}",
		source.String: `{{label}} ("{{name}}") = {{digest}}`,
		source.File:   "{{label}} ({{name}}) = {{digest}}",
	}

	echoLayout = map[source.Kind]string{
		source.Stdin:  `("{{name}}")= {{digest}}`,
		source.String: defaultLayout[source.String],
		source.File:   defaultLayout[source.File],
	}

	reverseLayout = map[source.Kind]string{
		source.Stdin:  `("{{name}}")= {{digest}}`,
		source.String: `{{digest}} "{{name}}"`,
		source.File:   "{{digest}} {{name}}",
	}

	quietLayout = map[source.Kind]string{
		source.Stdin:  "{{digest}}",
		source.String: "{{digest}}",
		source.File:   "{{digest}}",
	}

	quietEchoLayout = map[source.Kind]string{
		source.Stdin:  "{{name}}\n{{digest}}",
		source.String: "{{digest}}",
		source.File:   "{{digest}}",
	}
)

// selectLayout picks the built-in layout for the flags. Quiet wins over
// reverse, reverse over echo.
func selectLayout(quiet, reverse, echo bool) map[source.Kind]string {
	switch {
	case quiet && echo:
		return quietEchoLayout
	case quiet:
		return quietLayout
	case reverse:
		return reverseLayout
	case echo:
		return echoLayout
	default:
		return defaultLayout
	}
}

// compileLayout compiles either the custom template, used for every
// kind, or the built-in layout.
func compileLayout(
	custom string,
	builtin map[source.Kind]string,
) (layout, error) {
	const errCtx = "compiling layout"

	out := make(layout, len(builtin))

	for kind, text := range builtin {
		if custom != "" {
			text = custom
		}

		tpl, err := fasttemplate.NewTemplate(text, startTag, endTag)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		out[kind] = tpl
	}

	return out, nil
}
