package digest_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/ftssl/digest"
)

func TestParseAlgorithm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    digest.Algorithm
		wantErr bool
	}{
		{name: "md5", in: "md5", want: digest.MD5},
		{name: "sha256", in: "sha256", want: digest.SHA256},
		{name: "whirlpool", in: "whirlpool", want: digest.Whirlpool},
		{name: "case sensitive", in: "MD5", wantErr: true},
		{name: "prefix", in: "sha", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := digest.ParseAlgorithm(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, digest.ErrUnknownAlgorithm)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlgorithm_attributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		algo  digest.Algorithm
		name  string
		label string
		size  int
	}{
		{algo: digest.MD5, name: "md5", label: "MD5", size: 16},
		{algo: digest.SHA256, name: "sha256", label: "SHA256", size: 32},
		{
			algo:  digest.Whirlpool,
			name:  "whirlpool",
			label: "WHIRLPOOL",
			size:  64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, tt.algo.Valid())
			assert.Equal(t, tt.name, tt.algo.String())
			assert.Equal(t, tt.label, tt.algo.Label())
			assert.Equal(t, tt.size, tt.algo.Size())
		})
	}
}

func TestAlgorithm_invalid(t *testing.T) {
	t.Parallel()

	var zero digest.Algorithm

	assert.False(t, zero.Valid())
	assert.Equal(t, 0, zero.Size())
	assert.Equal(t, "algorithm(0)", zero.String())

	_, err := zero.MarshalText()
	require.ErrorIs(t, err, digest.ErrUnknownAlgorithm)
}

func TestAlgorithm_text_roundtrip_in_json(t *testing.T) {
	t.Parallel()

	type doc struct {
		Algorithm digest.Algorithm `json:"algorithm"`
	}

	raw, err := json.Marshal(doc{Algorithm: digest.Whirlpool})
	require.NoError(t, err)
	assert.JSONEq(t, `{"algorithm":"whirlpool"}`, string(raw))

	var back doc
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, digest.Whirlpool, back.Algorithm)

	err = json.Unmarshal([]byte(`{"algorithm":"crc32"}`), &back)
	require.Error(t, err)
}
