package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateEmbedding(t *testing.T) {
	vec := GenerateEmbedding("Beef stew")
	assert.Equal(t, []float32{8, 3, 2}, vec.Slice())

	// Deterministic and case-insensitive.
	assert.Equal(t, GenerateEmbedding("Beef stew"), GenerateEmbedding("BEEF STEW"))

	empty := GenerateEmbedding("")
	assert.Equal(t, []float32{0, 0, 0}, empty.Slice())
}

func l2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// An exact-name query must be strictly closer to its own recipe's vector
// than to the other names it is ranked against.
func TestExactNameQueryIsNearestNeighbor(t *testing.T) {
	query := GenerateEmbedding("Beef stew").Slice()

	own := l2(query, GenerateEmbedding("Beef stew").Slice())
	assert.Zero(t, own)

	for _, name := range []string{"Pancakes", "Apple pie", "Borscht", "Toast"} {
		other := l2(query, GenerateEmbedding(name).Slice())
		assert.Less(t, own, other, "query ranked %q above its own recipe", name)
	}
}
