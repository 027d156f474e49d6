package gameid

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	id := Generate()
	assert.Len(t, id, Length)
	assert.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	t.Parallel()

	ids := make(map[string]bool)
	for range 100 {
		id := Generate()
		require.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	t.Parallel()

	var ids []string
	for range 10 {
		ids = append(ids, Generate())
		time.Sleep(time.Millisecond)
	}
	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "%s >= %s", ids[i-1], ids[i])
	}
}

func TestGeneratorUsesReader(t *testing.T) {
	t.Parallel()

	seed := bytes.Repeat([]byte{0xa5, 0x3c, 0x99, 0x01}, 8)
	a := NewGenerator(bytes.NewReader(seed)).Generate()
	b := NewGenerator(bytes.NewReader(seed)).Generate()

	require.NoError(t, Validate(a))
	// The trailing 60 bits come straight from the reader
	assert.Equal(t, a[Length-12:], b[Length-12:])
}

func TestGeneratorPanicsOnEmptyReader(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewGenerator(bytes.NewReader(nil)).Generate()
	})
}

func TestEncode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, strings.Repeat("0", Length), Encode(uuid.UUID{}))

	var full uuid.UUID
	for i := range full {
		full[i] = 0xff
	}
	assert.Equal(t, "7"+strings.Repeat("z", Length-1), Encode(full))

	var one uuid.UUID
	one[15] = 1
	assert.Equal(t, strings.Repeat("0", Length-1)+"1", Encode(one))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ID", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase not allowed", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAlphabet(t *testing.T) {
	t.Parallel()

	assert.Len(t, alphabet, 32)
	seen := make(map[rune]bool)
	for _, c := range alphabet {
		assert.False(t, seen[c], "duplicate character %c", c)
		seen[c] = true
	}
	for _, c := range "ilou" {
		assert.NotContains(t, alphabet, string(c))
	}
}
