package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// EnvPath names the environment variable holding the defaults file
// path used when --config is not given.
const EnvPath = "FT_SSL_CONFIG"

// Defaults are the values of a YAML defaults file. Nil fields were not
// set in the file.
type Defaults struct {
	Quiet       *bool   `yaml:"quiet"`
	Reverse     *bool   `yaml:"reverse"`
	Echo        *bool   `yaml:"echo"`
	JSON        *bool   `yaml:"json"`
	Encoding    *string `yaml:"encoding"`
	Template    *string `yaml:"template"`
	Parallelism *int    `yaml:"parallelism"`
}

// DefaultPath returns the defaults file named by $FT_SSL_CONFIG, or an
// empty string.
func DefaultPath() string {
	return os.Getenv(EnvPath)
}

// Load reads a defaults file. An empty path yields empty Defaults.
// Unknown keys are rejected.
func Load(path string) (Defaults, error) {
	const errCtx = "loading config defaults"

	var def Defaults

	if path == "" {
		return def, nil
	}

	raw, err := os.ReadFile(path) //nolint:gosec // path from CLI flag or env
	if err != nil {
		return def, fmt.Errorf("%s: %w", errCtx, err)
	}

	decoder := yaml.NewDecoder(
		bytes.NewReader(raw),
		yaml.DisallowUnknownField(),
	)

	if err := decoder.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return Defaults{}, fmt.Errorf(
			"%s: decoding %s: %w", errCtx, path, err,
		)
	}

	return def, nil
}

// Apply returns cfg with every file value whose flag was not set
// explicitly. changed reports whether the named flag was given on the
// command line.
func (d Defaults) Apply(
	cfg Config,
	changed func(name string) bool,
) Config {
	applyValue(d.Quiet, &cfg.Quiet, "quiet", changed)
	applyValue(d.Reverse, &cfg.Reverse, "reverse", changed)
	applyValue(d.Echo, &cfg.Echo, "echo", changed)
	applyValue(d.JSON, &cfg.JSON, "json", changed)
	applyValue(d.Encoding, &cfg.Encoding, "encoding", changed)
	applyValue(d.Template, &cfg.Template, "template", changed)
	applyValue(d.Parallelism, &cfg.Parallelism, "parallelism", changed)

	return cfg
}

func applyValue[T any](
	val *T,
	dst *T,
	flag string,
	changed func(string) bool,
) {
	if val == nil || changed(flag) {
		return
	}

	*dst = *val
}
