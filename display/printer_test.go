package display_test

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"
	"syscall"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/ftssl/config"
	"github.com/byte4ever/ftssl/digest"
	"github.com/byte4ever/ftssl/display"
	"github.com/byte4ever/ftssl/source"
)

const abcMD5 = "900150983cd24fb0d6963f7d28e17f72"

func mustSum(t *testing.T, algo digest.Algorithm, msg string) []byte {
	t.Helper()

	sum, err := digest.Sum(algo, []byte(msg))
	require.NoError(t, err)

	return sum
}

func render(
	t *testing.T,
	cfg config.Config,
	results ...digest.Result,
) (string, string) {
	t.Helper()

	var out, errOut bytes.Buffer

	pr, err := display.New(cfg, &out, &errOut)
	require.NoError(t, err)
	require.NoError(t, pr.PrintAll(results))

	return out.String(), errOut.String()
}

func results(t *testing.T, algo digest.Algorithm) []digest.Result {
	t.Helper()

	return []digest.Result{
		{
			Input:   source.Input{Kind: source.Stdin},
			Content: []byte("abc\n"),
			Digest:  mustSum(t, algo, "abc\n"),
		},
		{
			Input:  source.Input{Kind: source.String, Name: "abc"},
			Digest: mustSum(t, algo, "abc"),
		},
		{
			Input:  source.Input{Kind: source.File, Name: "notes.txt"},
			Digest: mustSum(t, algo, "abc"),
		},
	}
}

func TestPrinter_text_layouts(t *testing.T) {
	t.Parallel()

	const stdinMD5 = "0bee89b07a248e27c83fc3d5951213c1"

	tests := []struct {
		name string
		cfg  config.Config
		want []string
	}{
		{
			name: "default",
			cfg:  config.Config{Algorithm: digest.MD5},
			want: []string{
				"(stdin)= " + stdinMD5,
				`MD5 ("abc") = ` + abcMD5,
				"MD5 (notes.txt) = " + abcMD5,
			},
		},
		{
			name: "echo",
			cfg:  config.Config{Algorithm: digest.MD5, Echo: true},
			want: []string{
				`("abc")= ` + stdinMD5,
				`MD5 ("abc") = ` + abcMD5,
				"MD5 (notes.txt) = " + abcMD5,
			},
		},
		{
			name: "reverse",
			cfg:  config.Config{Algorithm: digest.MD5, Reverse: true},
			want: []string{
				`("abc")= ` + stdinMD5,
				abcMD5 + ` "abc"`,
				abcMD5 + " notes.txt",
			},
		},
		{
			name: "quiet",
			cfg: config.Config{
				Algorithm: digest.MD5,
				Quiet:     true,
				Reverse:   true,
			},
			want: []string{stdinMD5, abcMD5, abcMD5},
		},
		{
			name: "quiet echo",
			cfg: config.Config{
				Algorithm: digest.MD5,
				Quiet:     true,
				Echo:      true,
			},
			want: []string{"abc", stdinMD5, abcMD5, abcMD5},
		},
		{
			name: "custom template",
			cfg: config.Config{
				Algorithm: digest.MD5,
				Template:  "{{algorithm}}|{{kind}}|{{name}}|{{digest}}",
			},
			want: []string{
				"md5|stdin|abc|" + stdinMD5,
				"md5|string|abc|" + abcMD5,
				"md5|file|notes.txt|" + abcMD5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, errOut := render(t, tt.cfg, results(t, digest.MD5)...)

			assert.Equal(t, strings.Join(tt.want, "\n")+"\n", out)
			assert.Empty(t, errOut)
		})
	}
}

func TestPrinter_labels(t *testing.T) {
	t.Parallel()

	for _, algo := range digest.Algorithms() {
		t.Run(algo.String(), func(t *testing.T) {
			t.Parallel()

			sum := mustSum(t, algo, "x")
			out, _ := render(
				t,
				config.Config{Algorithm: algo},
				digest.Result{
					Input:  source.Input{Kind: source.String, Name: "x"},
					Digest: sum,
				},
			)

			assert.True(t, strings.HasPrefix(out, algo.Label()+` ("x") = `))
			assert.Len(t, out, len(algo.Label())+len(` ("x") = `)+2*algo.Size()+1)
		})
	}
}

func TestPrinter_only_one_trailing_newline_is_removed(t *testing.T) {
	t.Parallel()

	out, _ := render(
		t,
		config.Config{Algorithm: digest.MD5, Reverse: true},
		digest.Result{
			Input:  source.Input{Kind: source.String, Name: "two\n\n"},
			Digest: mustSum(t, digest.MD5, "two\n\n"),
		},
	)

	assert.True(t, strings.HasSuffix(out, "\"two\n\"\n"))
}

func TestPrinter_unreadable_input(t *testing.T) {
	t.Parallel()

	failed := digest.Result{
		Input: source.Input{Kind: source.File, Name: "missing"},
		Err: &fs.PathError{
			Op:   "open",
			Path: "missing",
			Err:  syscall.ENOENT,
		},
	}

	out, errOut := render(
		t,
		config.Config{Algorithm: digest.SHA256},
		failed,
	)

	assert.Empty(t, out)
	assert.Equal(
		t,
		"ft_ssl: sha256: missing: No such file or directory\n",
		errOut,
	)
}

func TestPrinter_json(t *testing.T) {
	t.Parallel()

	out, errOut := render(
		t,
		config.Config{Algorithm: digest.MD5, JSON: true, Echo: true},
		digest.Result{
			Input:   source.Input{Kind: source.Stdin},
			Content: []byte("abc"),
			Digest:  mustSum(t, digest.MD5, "abc"),
		},
		digest.Result{
			Input: source.Input{Kind: source.File, Name: "gone"},
			Err:   errors.New("permission denied"),
		},
	)

	assert.Empty(t, errOut)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.JSONEq(
		t,
		`{"algorithm":"md5","kind":"stdin","name":"abc","digest":"`+
			abcMD5+`"}`,
		lines[0],
	)

	var rec map[string]string
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, "Permission denied", rec["error"])
	assert.Equal(t, "gone", rec["name"])
	assert.NotContains(t, rec, "digest")
}

func TestPrinter_Encode(t *testing.T) {
	t.Parallel()

	sum := mustSum(t, digest.MD5, "abc")

	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "hex",
			cfg:  config.Config{Algorithm: digest.MD5},
			want: abcMD5,
		},
		{
			name: "multibase base16",
			cfg:  config.Config{Algorithm: digest.MD5, Encoding: "base16"},
			want: "f" + abcMD5,
		},
		{
			name: "multibase base16upper",
			cfg: config.Config{
				Algorithm: digest.MD5,
				Encoding:  "base16upper",
			},
			want: "F" + strings.ToUpper(abcMD5),
		},
		{
			name: "multihash",
			cfg:  config.Config{Algorithm: digest.MD5, Multihash: true},
			want: "d50110" + abcMD5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pr, err := display.New(tt.cfg, &bytes.Buffer{}, &bytes.Buffer{})
			require.NoError(t, err)

			got, err := pr.Encode(sum)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrinter_multihash_sha256(t *testing.T) {
	t.Parallel()

	pr, err := display.New(
		config.Config{Algorithm: digest.SHA256, Multihash: true},
		&bytes.Buffer{},
		&bytes.Buffer{},
	)
	require.NoError(t, err)

	got, err := pr.Encode(mustSum(t, digest.SHA256, "abc"))

	require.NoError(t, err)
	assert.Equal(
		t,
		"1220ba7816bf8f01cfea414140de5dae2223"+
			"b00361a396177a9cb410ff61f20015ad",
		got,
	)
}

func TestNew_rejects(t *testing.T) {
	t.Parallel()

	_, err := display.New(
		config.Config{Algorithm: digest.Whirlpool, Multihash: true},
		&bytes.Buffer{},
		&bytes.Buffer{},
	)
	require.ErrorIs(t, err, config.ErrMultihashUnsupported)

	_, err = display.New(
		config.Config{Algorithm: digest.MD5, Encoding: "nope"},
		&bytes.Buffer{},
		&bytes.Buffer{},
	)
	require.Error(t, err)
}

func TestPrinter_Verdict(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	pr, err := display.New(
		config.Config{Algorithm: digest.MD5},
		&out,
		&bytes.Buffer{},
	)
	require.NoError(t, err)

	require.NoError(t, pr.Verdict("a.bin", true))
	require.NoError(t, pr.Verdict("b.bin", false))

	assert.Equal(t, "a.bin: OK\nb.bin: FAILED\n", out.String())
}

func TestNew_malformed_template(t *testing.T) {
	t.Parallel()

	_, err := display.New(
		config.Config{Algorithm: digest.MD5, Template: "{{oops"},
		&bytes.Buffer{},
		&bytes.Buffer{},
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling layout")
}
