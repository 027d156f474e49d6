package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()

	a, b := New(42), New(42)
	for range 100 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestNearbySeedsDiverge(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestSeed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(7), Seed(7))
	assert.NotZero(t, Seed(0))
}
