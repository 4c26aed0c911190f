package digester_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/ftssl/digest"
	"github.com/byte4ever/ftssl/digester"
)

func writeData(t *testing.T, content string) string {
	t.Helper()

	pa := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(pa, []byte(content), 0o600))

	return pa
}

func TestCalculate_returns_hex(t *testing.T) {
	t.Parallel()

	pa := writeData(t, "hello")

	got, err := digester.Calculate(digest.SHA256, pa)

	require.NoError(t, err)
	// sha256("hello")
	assert.Equal(
		t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		got,
	)
}

func TestCalculate_nonexistent_file(t *testing.T) {
	t.Parallel()

	_, err := digester.Calculate(digest.MD5, "/nonexistent")

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSidecarPath(t *testing.T) {
	t.Parallel()

	assert.Equal(
		t,
		"dir/a.txt.whirlpool",
		digester.SidecarPath(digest.Whirlpool, "dir/a.txt"),
	)
}

func TestLoad_missing_sidecar(t *testing.T) {
	t.Parallel()

	got, err := digester.Load(digest.MD5, writeData(t, "x"))

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSave_and_Load_roundtrip(t *testing.T) {
	t.Parallel()

	for _, algo := range digest.Algorithms() {
		t.Run(algo.String(), func(t *testing.T) {
			t.Parallel()

			pa := writeData(t, "content")

			require.NoError(t, digester.Save(algo, pa))

			got, err := digester.Load(algo, pa)
			require.NoError(t, err)

			expected, err := digester.Calculate(algo, pa)
			require.NoError(t, err)

			assert.Equal(t, expected, got)
			assert.FileExists(t, pa+"."+algo.String())
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	pa := writeData(t, "content")

	ok, err := digester.Compare(digest.MD5, pa, "")
	require.NoError(t, err)
	assert.False(t, ok, "missing sidecar never matches")

	require.NoError(t, digester.Store(digest.MD5, pa, "ABCDEF"))

	ok, err = digester.Compare(digest.MD5, pa, "abcdef")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = digester.Compare(digest.MD5, pa, "abcdee")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_valid(t *testing.T) {
	t.Parallel()

	pa := writeData(t, "content")
	require.NoError(t, digester.Save(digest.SHA256, pa))

	ok, err := digester.Verify(digest.SHA256, pa)

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_tampered(t *testing.T) {
	t.Parallel()

	pa := writeData(t, "content")
	require.NoError(t, digester.Save(digest.SHA256, pa))

	require.NoError(t, os.WriteFile(pa, []byte("tampered"), 0o600))

	ok, err := digester.Verify(digest.SHA256, pa)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_other_algorithm_sidecar_is_ignored(t *testing.T) {
	t.Parallel()

	pa := writeData(t, "content")
	require.NoError(t, digester.Save(digest.MD5, pa))

	ok, err := digester.Verify(digest.SHA256, pa)

	require.NoError(t, err)
	assert.False(t, ok)
}

func FuzzCalculate(f *testing.F) {
	f.Add([]byte("hello"))
	f.Add([]byte(""))
	f.Add([]byte("\x00\xff"))

	f.Fuzz(func(t *testing.T, data []byte) {
		pa := filepath.Join(t.TempDir(), "fuzz.bin")
		require.NoError(t, os.WriteFile(pa, data, 0o600))

		for _, algo := range digest.Algorithms() {
			dg, err := digester.Calculate(algo, pa)

			require.NoError(t, err)
			assert.Len(t, dg, 2*algo.Size())
			assert.Equal(t, strings.ToLower(dg), dg)
		}
	})
}
