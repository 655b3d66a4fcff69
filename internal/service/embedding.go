package service

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/pageza/greenmeal/backend/internal/models"
)

// GenerateEmbedding hashes the character trigrams of each word in text into
// a fixed-size vector and scales it to unit length. Names sharing words or
// word fragments end up close under L2 distance.
func GenerateEmbedding(text string) models.Embedding {
	v := make([]float32, models.EmbeddingDimensions)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		padded := []rune(" " + word + " ")
		for i := 0; i+3 <= len(padded); i++ {
			h := fnv.New32a()
			_, _ = h.Write([]byte(string(padded[i : i+3])))
			v[h.Sum32()%uint32(len(v))]++
		}
	}

	var norm float64
	for _, x := range v {
		norm += float64(x * x)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range v {
			v[i] *= scale
		}
	}
	return models.NewEmbedding(v)
}
