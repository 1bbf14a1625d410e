package memory

import (
	"math"
	"sort"

	"github.com/dukex/superagente/pkg/models"
)

// cosineSimilarity returns the cosine of the angle between a and b.
// Vectors of different length or with zero norm score 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64

	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// rank scores every memory against query and returns the top limit matches,
// most similar first. Ties keep the newest memory first.
func rank(memories []*models.Memory, query []float64, limit int) []models.MemoryMatch {
	matches := make([]models.MemoryMatch, 0, len(memories))

	for _, m := range memories {
		matches = append(matches, models.MemoryMatch{
			Memory:     m,
			Similarity: cosineSimilarity(query, m.Embedding),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}

		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	return matches
}
