package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/ftssl/cli"
	"github.com/byte4ever/ftssl/config"
)

const (
	abcMD5      = "900150983cd24fb0d6963f7d28e17f72"
	abcNLMD5    = "0bee89b07a248e27c83fc3d5951213c1"
	abcSHA256   = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	shellBanner = "Usage: [command] [algo] [options]\n" +
		"Commands: exit, execute\n"
)

type outcome struct {
	out    string
	errOut string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) outcome {
	t.Helper()

	var out, errOut bytes.Buffer

	err := cli.Execute(
		context.Background(),
		args,
		cli.Streams{
			In:  strings.NewReader(stdin),
			Out: &out,
			Err: &errOut,
		},
	)

	return outcome{out: out.String(), errOut: errOut.String(), err: err}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	pa := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(pa, []byte(content), 0o600))

	return pa
}

func TestExecute_text_output(t *testing.T) {
	t.Parallel()

	file := writeFile(t, "abc.txt", "abc")

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "string",
			args: []string{"md5", "-s", "abc"},
			want: `MD5 ("abc") = ` + abcMD5 + "\n",
		},
		{
			name:  "stdin only",
			stdin: "abc\n",
			args:  []string{"md5"},
			want:  "(stdin)= " + abcNLMD5 + "\n",
		},
		{
			name:  "echo stdin with string",
			stdin: "abc\n",
			args:  []string{"md5", "-p", "-s", "abc"},
			want: `("abc")= ` + abcNLMD5 + "\n" +
				`MD5 ("abc") = ` + abcMD5 + "\n",
		},
		{
			name:  "quiet echo",
			stdin: "abc\n",
			args:  []string{"md5", "-q", "-p", "-s", "abc"},
			want:  "abc\n" + abcNLMD5 + "\n" + abcMD5 + "\n",
		},
		{
			name: "reverse file",
			args: []string{"sha256", "-r", file},
			want: abcSHA256 + " " + file + "\n",
		},
		{
			name: "file",
			args: []string{"sha256", file},
			want: "SHA256 (" + file + ") = " + abcSHA256 + "\n",
		},
		{
			name: "strings in order",
			args: []string{"md5", "-q", "-s", "abc", "-s", "abc\n"},
			want: abcMD5 + "\n" + abcNLMD5 + "\n",
		},
		{
			name:  "stdin not read when inputs are given",
			stdin: "ignored",
			args:  []string{"md5", "-q", file},
			want:  abcMD5 + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := execute(t, tt.stdin, tt.args...)

			require.NoError(t, got.err)
			assert.Equal(t, tt.want, got.out)
			assert.Empty(t, got.errOut)
		})
	}
}

func TestExecute_flags_stop_at_first_file(t *testing.T) {
	t.Parallel()

	file := writeFile(t, "abc.txt", "abc")

	got := execute(t, "", "md5", "-q", file, "-s")

	require.NoError(t, got.err)
	assert.Equal(t, abcMD5+"\n", got.out)
	assert.Equal(
		t,
		"ft_ssl: md5: -s: No such file or directory\n",
		got.errOut,
	)
}

func TestExecute_unreadable_file_continues(t *testing.T) {
	t.Parallel()

	got := execute(
		t, "", "whirlpool", "-q", "/nonexistent/file", "-s",
	)

	require.NoError(t, got.err)
	assert.Empty(t, got.out)
	assert.Equal(
		t,
		"ft_ssl: whirlpool: /nonexistent/file: No such file or directory\n"+
			"ft_ssl: whirlpool: -s: No such file or directory\n",
		got.errOut,
	)
}

func TestExecute_invalid_command(t *testing.T) {
	t.Parallel()

	got := execute(t, "", "sha1", "-s", "abc")

	require.ErrorIs(t, got.err, cli.ErrReported)
	require.ErrorIs(t, got.err, cli.ErrInvalidCommand)
	assert.Equal(
		t,
		"ft_ssl: Error: 'sha1' is an invalid command.\n",
		got.errOut,
	)
}

func TestExecute_invalid_settings(t *testing.T) {
	t.Parallel()

	got := execute(t, "", "md5", "--encoding", "rot13", "-s", "x")

	require.ErrorIs(t, got.err, config.ErrUnknownEncoding)
	assert.NotErrorIs(t, got.err, cli.ErrReported)

	got = execute(t, "", "whirlpool", "--multihash", "-s", "x")

	require.ErrorIs(t, got.err, config.ErrMultihashUnsupported)
}

func TestExecute_json_and_encoding(t *testing.T) {
	t.Parallel()

	got := execute(t, "", "md5", "--json", "-s", "abc")

	require.NoError(t, got.err)
	assert.JSONEq(
		t,
		`{"algorithm":"md5","kind":"string","name":"abc","digest":"`+
			abcMD5+`"}`,
		got.out,
	)

	got = execute(
		t, "", "md5", "-q", "--encoding", "base16", "--multihash",
		"-s", "abc",
	)

	require.NoError(t, got.err)
	assert.Equal(t, "fd50110"+abcMD5+"\n", got.out)
}

func TestExecute_template(t *testing.T) {
	t.Parallel()

	got := execute(
		t, "", "sha256", "--template", "{{digest}}  {{name}}",
		"-s", "abc",
	)

	require.NoError(t, got.err)
	assert.Equal(t, abcSHA256+"  abc\n", got.out)
}

func TestExecute_config_file_defaults(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, "ft_ssl.yaml", "quiet: true\nreverse: true\n")

	got := execute(t, "", "md5", "--config", cfgPath, "-s", "abc")

	require.NoError(t, got.err)
	assert.Equal(t, abcMD5+"\n", got.out)

	got = execute(
		t, "", "md5", "--config", cfgPath, "--quiet=false", "-s", "abc",
	)

	require.NoError(t, got.err)
	assert.Equal(t, abcMD5+` "abc"`+"\n", got.out)
}

func TestExecute_config_file_invalid(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, "ft_ssl.yaml", "unknown: 1\n")

	got := execute(t, "", "md5", "--config", cfgPath, "-s", "abc")

	require.Error(t, got.err)
	assert.Empty(t, got.out)
}

func TestExecute_save_and_check(t *testing.T) {
	t.Parallel()

	file := writeFile(t, "data.bin", "payload")

	got := execute(t, "", "sha256", "-q", "--save-digest", file)
	require.NoError(t, got.err)
	assert.FileExists(t, file+".sha256")

	got = execute(t, "", "sha256", "--check", file)
	require.NoError(t, got.err)
	assert.Equal(t, file+": OK\n", got.out)

	require.NoError(t, os.WriteFile(file, []byte("tampered"), 0o600))

	got = execute(t, "", "sha256", "--check", file, "/nonexistent/x")
	require.ErrorIs(t, got.err, cli.ErrCheckFailed)
	require.ErrorIs(t, got.err, cli.ErrReported)
	assert.Equal(t, file+": FAILED\n", got.out)
	assert.Equal(
		t,
		"ft_ssl: sha256: /nonexistent/x: No such file or directory\n",
		got.errOut,
	)
}

func TestExecute_check_without_sidecar(t *testing.T) {
	t.Parallel()

	file := writeFile(t, "data.bin", "payload")

	got := execute(t, "", "md5", "--check", file)

	require.ErrorIs(t, got.err, cli.ErrCheckFailed)
	assert.Equal(t, file+": FAILED\n", got.out)
}

func TestExecute_interactive(t *testing.T) {
	t.Parallel()

	file := writeFile(t, "abc.txt", "abc")

	got := execute(
		t,
		"execute md5 -s abc\n"+
			"execute md5 -q\n"+
			"execute sha256 -r "+file+"\n"+
			"hash md5\n"+
			"exit\n"+
			"execute md5 -s never\n",
	)

	require.NoError(t, got.err)
	assert.Equal(
		t,
		shellBanner+
			"ft_ssl> "+`MD5 ("abc") = `+abcMD5+"\n"+
			"ft_ssl> ft_ssl: Error: no input specified. In interactive "+
			"mode you must specify a file or a string.\n"+
			"ft_ssl> "+abcSHA256+" "+file+"\n"+
			"ft_ssl> ft_ssl: Error: 'hash' is an invalid command "+
			"(use execute or exit).\n"+
			"ft_ssl> ",
		got.out,
	)
}

func TestExecute_interactive_reports_missing_file_inline(t *testing.T) {
	t.Parallel()

	got := execute(t, "execute md5 /nonexistent/file\n")

	require.NoError(t, got.err)
	assert.Equal(
		t,
		shellBanner+
			"ft_ssl> ft_ssl: md5: /nonexistent/file: "+
			"No such file or directory\n"+
			"ft_ssl> ",
		got.out,
	)
}

func TestExecute_verbose_logs_debug(t *testing.T) {
	got := execute(t, "", "md5", "--verbose", "-q", "-s", "abc")

	require.NoError(t, got.err)
	assert.Equal(t, abcMD5+"\n", got.out)
	assert.Contains(t, got.errOut, "hashing input")
	assert.Contains(t, got.errOut, "level=DEBUG")
}

func TestExecute_leading_argument_is_the_command(t *testing.T) {
	t.Parallel()

	for _, arg := range []string{"-q", "--verbose", "-", "help"} {
		t.Run(arg, func(t *testing.T) {
			t.Parallel()

			got := execute(t, "exit\n", arg, "md5")

			require.ErrorIs(t, got.err, cli.ErrReported)
			require.ErrorIs(t, got.err, cli.ErrInvalidCommand)
			assert.Empty(t, got.out)
			assert.Equal(
				t,
				"ft_ssl: Error: '"+arg+"' is an invalid command.\n",
				got.errOut,
			)
		})
	}
}

func TestExecute_invalid_flags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "unknown shorthand",
			args: []string{"md5", "-x"},
			want: "ft_ssl: Error: '-x' is an invalid flag.\n",
		},
		{
			name: "unknown shorthand in group",
			args: []string{"md5", "-qx", "-s", "a"},
			want: "ft_ssl: Error: '-qx' is an invalid flag.\n",
		},
		{
			name: "unknown long flag",
			args: []string{"sha256", "--bogus"},
			want: "ft_ssl: Error: '--bogus' is an invalid flag.\n",
		},
		{
			name: "string without value",
			args: []string{"md5", "-q", "-s"},
			want: "ft_ssl: Error: '-s' expect a string after it.\n",
		},
		{
			name: "long string without value",
			args: []string{"md5", "--string"},
			want: "ft_ssl: Error: '--string' expect a string after it.\n",
		},
		{
			name: "encoding without value",
			args: []string{"md5", "--encoding"},
			want: "ft_ssl: Error: '--encoding' expect a value after it.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := execute(t, "", tt.args...)

			require.ErrorIs(t, got.err, cli.ErrReported)
			assert.Empty(t, got.out)
			assert.Equal(t, tt.want, got.errOut)
		})
	}
}

func TestExecute_interactive_invalid_flag(t *testing.T) {
	t.Parallel()

	got := execute(t, "execute md5 -x\nexecute md5 -s\n")

	require.NoError(t, got.err)
	assert.Equal(
		t,
		shellBanner+
			"ft_ssl> ft_ssl: Error: '-x' is an invalid flag.\n"+
			"ft_ssl> ft_ssl: Error: '-s' expect a string after it.\n"+
			"ft_ssl> ",
		got.out,
	)
	assert.Empty(t, got.errOut)
}

func TestExecute_malformed_template(t *testing.T) {
	t.Parallel()

	got := execute(t, "", "md5", "--template", "{{oops", "-s", "a")

	require.Error(t, got.err)
	assert.NotErrorIs(t, got.err, cli.ErrReported)
	assert.Empty(t, got.out)
}
