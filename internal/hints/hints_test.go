package hints

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOnlyReturnsKnownTips(t *testing.T) {
	r := Default(rand.New(rand.NewSource(1)))
	known := map[string]bool{}
	for _, tip := range r.Tips() {
		known[tip] = true
	}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		tip := r.Next()
		require.True(t, known[tip], "unexpected tip %q", tip)
		seen[tip] = true
	}
	assert.Greater(t, len(seen), 1, "tips should vary across calls")
}

func TestNextIsDeterministicWithSeededSource(t *testing.T) {
	a := Default(rand.New(rand.NewSource(42)))
	b := Default(rand.New(rand.NewSource(42)))
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestNextEmptySet(t *testing.T) {
	assert.Equal(t, "", New(nil, nil).Next())
	var r *Rotator
	assert.Equal(t, "", r.Next())
}

func TestNewCopiesTips(t *testing.T) {
	tips := []string{"a"}
	r := New(tips, rand.New(rand.NewSource(1)))
	tips[0] = "b"
	assert.Equal(t, "a", r.Next())
}
