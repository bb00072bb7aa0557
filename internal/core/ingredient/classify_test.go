package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, name string) CatalogEntry {
	return CatalogEntry{ID: id, Name: name}
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name       string
		query      string
		entry      string
		matchType  MatchType
		similarity float64
	}{
		{"exact after plural folding", "Tomatoes", "tomato", MatchExact, 1.0},
		{"exact after stopword removal", "Extra Virgin Olive Oil", "Olive Oil", MatchExact, 1.0},
		{"synonym", "cilantro", "Coriander", MatchAlias, 0.90},
		{"synonym reverse", "Coriander", "cilantro", MatchAlias, 0.90},
		{"multi word synonym", "green onions", "Scallion", MatchAlias, 0.90},
		{"typo", "worchestershire sauce", "Worcestershire Sauce", MatchAlias, 1 - 1.0/21},
		{"partial query inside entry", "tomato", "Roma Tomato", MatchPartial, 0.5},
		{"partial entry inside query", "cherry tomatoes", "Tomato", MatchPartial, 0.5},
		{"partial clamped to floor", "salt", "Sea Salt Flakes", MatchPartial, 0.5},
		{"partial two of three", "wine vinegar", "Red Wine Vinegar", MatchPartial, 2.0 / 3},
		{"fuzzy token overlap", "red onion", "Onion Powder", MatchFuzzy, 1.0 / 3},
		{"fuzzy reordered tokens capped", "tomato roma", "Roma Tomato", MatchFuzzy, 0.99},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, ok := Classify(Normalize(tc.query), entry("id-1", tc.entry))
			require.True(t, ok)
			assert.Equal(t, tc.matchType, result.MatchType)
			assert.InDelta(t, tc.similarity, result.Similarity, 1e-9)
			assert.Equal(t, "id-1", result.ID)
			assert.Equal(t, tc.entry, result.Name)
		})
	}
}

func TestClassifyNoOverlap(t *testing.T) {
	_, ok := Classify(Normalize("apple"), entry("1", "Banana"))
	assert.False(t, ok)

	_, ok = Classify(Normalize(""), entry("1", "Banana"))
	assert.False(t, ok)

	_, ok = Classify(Normalize("banana"), entry("1", "!!!"))
	assert.False(t, ok)
}

func TestClassifyTierBands(t *testing.T) {
	catalog := []string{
		"Tomato", "Roma Tomato", "Cherry Tomatoes", "Tomato Paste", "Sun Dried Tomato",
		"Coriander", "Green Onion", "Worcestershire Sauce", "Onion Powder", "Red Onion",
	}
	queries := []string{"tomato", "cilantro", "onion", "red onion", "worchestershire sauce", "paste tomato"}

	for _, q := range queries {
		for _, name := range catalog {
			result, ok := Classify(Normalize(q), entry("x", name))
			if !ok {
				continue
			}
			switch result.MatchType {
			case MatchExact:
				assert.Equal(t, 1.0, result.Similarity)
			case MatchAlias:
				assert.GreaterOrEqual(t, result.Similarity, 0.90)
				assert.Less(t, result.Similarity, 1.0)
			case MatchPartial:
				assert.GreaterOrEqual(t, result.Similarity, 0.5)
				assert.Less(t, result.Similarity, 0.95)
			case MatchFuzzy:
				assert.Greater(t, result.Similarity, 0.0)
				assert.Less(t, result.Similarity, 1.0)
			default:
				t.Fatalf("unexpected match type %q", result.MatchType)
			}
		}
	}
}

func TestMatchTypeRank(t *testing.T) {
	assert.Greater(t, MatchExact.Rank(), MatchAlias.Rank())
	assert.Greater(t, MatchAlias.Rank(), MatchPartial.Rank())
	assert.Greater(t, MatchPartial.Rank(), MatchFuzzy.Rank())
	assert.Equal(t, 0, MatchType("other").Rank())
}
