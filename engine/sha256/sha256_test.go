package sha256_test

import (
	stdsha256 "crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/ftssl/engine"
	"github.com/byte4ever/ftssl/engine/sha256"
)

func TestSum_known_vectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "e3b0c44298fc1c149afbf4c8996fb924" +
				"27ae41e4649b934ca495991b7852b855",
		},
		{
			name: "abc",
			in:   "abc",
			want: "ba7816bf8f01cfea414140de5dae2223" +
				"b00361a396177a9cb410ff61f20015ad",
		},
		{
			name: "two blocks",
			in: "abcdbcdecdefdefgefghfghighijhijk" +
				"ijkljklmklmnlmnomnopnopq",
			want: "248d6a61d20638b8e5c026930c3e6039" +
				"a33ce45964ff2167f6ecedd419db06c1",
		},
		{
			name: "hello",
			in:   "hello",
			want: "2cf24dba5fb0a30e26e83b2ac5b9e29e" +
				"1b161e5c1fa7425e73043362938b9824",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := sha256.Sum([]byte(tt.in))

			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(got[:]))
		})
	}
}

func TestSum_block_boundaries_match_stdlib(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 3*64+1; n++ {
		msg := []byte(strings.Repeat("q", n))

		got, err := sha256.Sum(msg)

		require.NoError(t, err)
		assert.Equal(t, stdsha256.Sum256(msg), got, "length %d", n)
	}
}

func TestDigest_chunking_is_irrelevant(t *testing.T) {
	t.Parallel()

	msg := []byte(strings.Repeat("The quick brown fox. ", 20))
	want := stdsha256.Sum256(msg)

	for _, chunk := range []int{1, 3, 7, 63, 64, 65, 128, len(msg)} {
		d := sha256.New()

		for off := 0; off < len(msg); off += chunk {
			end := min(off+chunk, len(msg))
			require.NoError(t, d.Update(msg[off:end]))
		}

		got, err := d.Final()

		require.NoError(t, err)
		assert.Equal(t, want[:], got, "chunk %d", chunk)
	}
}

func TestDigest_empty_updates(t *testing.T) {
	t.Parallel()

	d := sha256.New()
	require.NoError(t, d.Update(nil))
	require.NoError(t, d.Update([]byte("abc")))
	require.NoError(t, d.Update([]byte{}))

	got, err := d.Final()

	require.NoError(t, err)
	assert.Equal(
		t,
		"ba7816bf8f01cfea414140de5dae2223"+
			"b00361a396177a9cb410ff61f20015ad",
		hex.EncodeToString(got),
	)
}

func TestDigest_zero_value_is_rejected(t *testing.T) {
	t.Parallel()

	var d sha256.Digest

	_, err := d.Final()
	require.ErrorIs(t, err, engine.ErrNotInitialized)

	err = d.Update([]byte("x"))
	require.ErrorIs(t, err, engine.ErrNotInitialized)
}

func TestDigest_reuse_after_final_requires_reset(t *testing.T) {
	t.Parallel()

	d := sha256.New()
	require.NoError(t, d.Update([]byte("abc")))

	first, err := d.Final()
	require.NoError(t, err)

	_, err = d.Final()
	require.ErrorIs(t, err, engine.ErrFinalized)
	require.ErrorIs(
		t, d.Update([]byte("abc")), engine.ErrFinalized,
	)

	d.Reset()
	require.NoError(t, d.Update([]byte("abc")))

	second, err := d.Final()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDigest_size(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sha256.Size, sha256.New().Size())
}

func FuzzDigest(f *testing.F) {
	f.Add([]byte(""), uint8(1))
	f.Add([]byte("abc"), uint8(2))
	f.Add([]byte(strings.Repeat("z", 130)), uint8(64))

	f.Fuzz(func(t *testing.T, data []byte, chunk uint8) {
		step := int(chunk) + 1
		d := sha256.New()

		for off := 0; off < len(data); off += step {
			end := min(off+step, len(data))
			require.NoError(t, d.Update(data[off:end]))
		}

		got, err := d.Final()
		require.NoError(t, err)

		want := stdsha256.Sum256(data)
		assert.Equal(t, want[:], got)
	})
}
