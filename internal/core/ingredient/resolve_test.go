package ingredient

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tomatoCatalog() []CatalogEntry {
	return []CatalogEntry{
		{ID: "t1", Name: "Tomato", Unit: "each", CostPerUnit: decimal.RequireFromString("0.45"), Category: "Produce"},
		{ID: "t2", Name: "Roma Tomato", Unit: "each", CostPerUnit: decimal.RequireFromString("0.55"), Category: "Produce"},
		{ID: "t3", Name: "Tomato Paste", Unit: "g", CostPerUnit: decimal.RequireFromString("0.01"), Category: "Pantry"},
		{ID: "t4", Name: "Cherry Tomatoes", Unit: "kg", CostPerUnit: decimal.RequireFromString("8.90"), Category: "Produce"},
		{ID: "t5", Name: "Sun Dried Tomato", Unit: "g", CostPerUnit: decimal.RequireFromString("0.05"), Category: "Pantry"},
		{ID: "t6", Name: "Tomato Soup", Unit: "L", CostPerUnit: decimal.RequireFromString("3.20"), Category: "Pantry"},
		{ID: "b1", Name: "Basil", Unit: "bunch", CostPerUnit: decimal.RequireFromString("2.50"), Category: "Produce"},
	}
}

func TestFindSimilarIngredientsExactReflexivity(t *testing.T) {
	outcome, err := FindSimilarIngredients("Tomato", []CatalogEntry{entry("t1", "Tomato")}, nil)
	require.NoError(t, err)

	require.Len(t, outcome.Matches, 1)
	assert.Equal(t, MatchExact, outcome.Matches[0].MatchType)
	assert.Equal(t, 1.0, outcome.Matches[0].Similarity)
	assert.True(t, outcome.HasExactMatch)
	assert.False(t, outcome.ShouldOfferCreate)
}

func TestFindSimilarIngredientsPluralAndAdjectiveFolding(t *testing.T) {
	outcome, err := FindSimilarIngredients("fresh tomatoes", []CatalogEntry{entry("t1", "Tomato")}, nil)
	require.NoError(t, err)
	assert.True(t, outcome.HasExactMatch)
	assert.False(t, outcome.ShouldOfferCreate)
}

func TestFindSimilarIngredientsIrregularPlurals(t *testing.T) {
	testCases := []struct {
		query string
		name  string
	}{
		{"pies", "Pie"},
		{"cookies", "Cookie"},
		{"brownies", "Brownie"},
		{"apple pies", "Apple Pie"},
		{"bay leaves", "Bay Leaf"},
		{"chillies", "Chilli"},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			outcome, err := FindSimilarIngredients(tc.query, []CatalogEntry{entry("x1", tc.name)}, nil)
			require.NoError(t, err)

			require.Len(t, outcome.Matches, 1)
			assert.Equal(t, MatchExact, outcome.Matches[0].MatchType)
			assert.True(t, outcome.HasExactMatch)
			assert.False(t, outcome.ShouldOfferCreate)
		})
	}

	outcome, err := FindSimilarIngredients("red chillies", []CatalogEntry{entry("c1", "Chilli")}, nil)
	require.NoError(t, err)
	require.Len(t, outcome.Matches, 1)
	assert.Equal(t, "c1", outcome.Matches[0].ID)
	assert.Equal(t, MatchPartial, outcome.Matches[0].MatchType)
}

func TestFindSimilarIngredientsAliasSynonym(t *testing.T) {
	outcome, err := FindSimilarIngredients("cilantro", []CatalogEntry{entry("c1", "Coriander")}, nil)
	require.NoError(t, err)

	require.Len(t, outcome.Matches, 1)
	assert.Equal(t, MatchAlias, outcome.Matches[0].MatchType)
	assert.GreaterOrEqual(t, outcome.Matches[0].Similarity, 0.90)
	assert.False(t, outcome.HasExactMatch)
	assert.True(t, outcome.ShouldOfferCreate)
}

func TestFindSimilarIngredientsPartialContainment(t *testing.T) {
	outcome, err := FindSimilarIngredients("tomato", []CatalogEntry{entry("t2", "Roma Tomato")}, nil)
	require.NoError(t, err)

	require.Len(t, outcome.Matches, 1)
	assert.Equal(t, MatchPartial, outcome.Matches[0].MatchType)
}

func TestFindSimilarIngredientsCreateGating(t *testing.T) {
	outcome, err := FindSimilarIngredients("xyzzy123", tomatoCatalog(), nil)
	require.NoError(t, err)

	assert.Empty(t, outcome.Matches)
	assert.False(t, outcome.HasExactMatch)
	assert.True(t, outcome.ShouldOfferCreate)
}

func TestFindSimilarIngredientsShortQuerySuppression(t *testing.T) {
	outcome, err := FindSimilarIngredients("a", tomatoCatalog(), nil)
	require.NoError(t, err)
	assert.False(t, outcome.ShouldOfferCreate)
}

func TestFindSimilarIngredientsEmptyInputs(t *testing.T) {
	for _, q := range []string{"", "   ", "?!"} {
		outcome, err := FindSimilarIngredients(q, tomatoCatalog(), nil)
		require.NoError(t, err)
		assert.NotNil(t, outcome.Matches)
		assert.Empty(t, outcome.Matches)
		assert.False(t, outcome.HasExactMatch)
		assert.False(t, outcome.ShouldOfferCreate)
	}

	outcome, err := FindSimilarIngredients("tomato", []CatalogEntry{}, nil)
	require.NoError(t, err)
	assert.Empty(t, outcome.Matches)
	assert.True(t, outcome.ShouldOfferCreate)
}

func TestFindSimilarIngredientsInvalidArgument(t *testing.T) {
	_, err := FindSimilarIngredients("tomato", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = FindSimilarIngredients("tomato", []CatalogEntry{{ID: " ", Name: "Tomato"}}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestFindSimilarIngredientsRankingAndTruncation(t *testing.T) {
	outcome, err := FindSimilarIngredients("Tomatoes", tomatoCatalog(), nil)
	require.NoError(t, err)

	ids := make([]string, 0, len(outcome.Matches))
	for _, m := range outcome.Matches {
		ids = append(ids, m.ID)
	}
	// 部分相符皆為 0.5，依名稱排序
	assert.Equal(t, []string{"t1", "t4", "t2", "t5", "t3"}, ids)
	assert.Equal(t, 6, outcome.TotalCandidates)
	assert.Len(t, outcome.Ranked(), 6)
	assert.Equal(t, "t6", outcome.Ranked()[5].ID)

	top, ok := outcome.Top()
	require.True(t, ok)
	assert.Equal(t, "t1", top.ID)
}

func TestFindSimilarIngredientsTierOrdering(t *testing.T) {
	catalog := append(tomatoCatalog(),
		entry("o1", "Onion Powder"),
		entry("o2", "Red Onion"),
		entry("o3", "Green Onion"),
		entry("o4", "Scallion"),
		entry("o5", "Onion"),
	)

	for _, q := range []string{"red onion", "tomato", "scallions", "paste tomato", "green onion"} {
		outcome, err := FindSimilarIngredients(q, catalog, nil)
		require.NoError(t, err)

		ranked := outcome.Ranked()
		for i := 1; i < len(ranked); i++ {
			prev, cur := ranked[i-1], ranked[i]
			require.GreaterOrEqual(t, prev.MatchType.Rank(), cur.MatchType.Rank(), "query %q", q)
			if prev.MatchType == cur.MatchType {
				require.GreaterOrEqual(t, prev.Similarity, cur.Similarity, "query %q", q)
			}
		}
	}
}

func TestFindSimilarIngredientsExclusion(t *testing.T) {
	exclude := []string{"t1", "t4"}
	outcome, err := FindSimilarIngredients("tomato", tomatoCatalog(), exclude)
	require.NoError(t, err)

	for _, m := range outcome.Ranked() {
		assert.NotContains(t, exclude, m.ID)
	}
	assert.False(t, outcome.HasExactMatch)
	assert.True(t, outcome.ShouldOfferCreate)
}

func TestFindSimilarIngredientsDeterministic(t *testing.T) {
	catalog := tomatoCatalog()
	first, err := FindSimilarIngredients("roma tomatoes", catalog, []string{"b1"})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := FindSimilarIngredients("roma tomatoes", catalog, []string{"b1"})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFindSimilarIngredientsDuplicateIDs(t *testing.T) {
	catalog := []CatalogEntry{entry("1", "Roma Tomato"), entry("1", "Tomato")}
	outcome, err := FindSimilarIngredients("tomato", catalog, nil)
	require.NoError(t, err)

	require.Len(t, outcome.Matches, 1)
	assert.Equal(t, MatchExact, outcome.Matches[0].MatchType)
	assert.Equal(t, "Tomato", outcome.Matches[0].Name)
}

func TestFindSimilarIngredientsTieBreaksByNameThenID(t *testing.T) {
	catalog := []CatalogEntry{entry("b", "tomato"), entry("a", "Tomato"), entry("c", "Apple Tomato")}
	outcome, err := FindSimilarIngredients("tomato", catalog, nil)
	require.NoError(t, err)

	require.Len(t, outcome.Matches, 3)
	assert.Equal(t, "a", outcome.Matches[0].ID)
	assert.Equal(t, "b", outcome.Matches[1].ID)
	assert.Equal(t, "c", outcome.Matches[2].ID)
}

func TestFindSimilarIngredientsNearExactSimilarity(t *testing.T) {
	outcome, err := FindSimilarIngredients("worchestershire sauce", []CatalogEntry{entry("w1", "Worcestershire Sauce")}, nil)
	require.NoError(t, err)

	require.Len(t, outcome.Matches, 1)
	assert.Equal(t, MatchAlias, outcome.Matches[0].MatchType)
	assert.True(t, outcome.HasExactMatch)
	assert.False(t, outcome.ShouldOfferCreate)
}

func TestFilterCatalog(t *testing.T) {
	catalog := tomatoCatalog()

	got := FilterCatalog("TOM", catalog, []string{"t2"})
	names := make([]string, 0, len(got))
	for _, e := range got {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Tomato", "Tomato Paste", "Cherry Tomatoes", "Sun Dried Tomato", "Tomato Soup"}, names)

	assert.Len(t, FilterCatalog("  ", catalog, []string{"b1"}), len(catalog)-1)
	assert.Empty(t, FilterCatalog("tomatoes fresh", catalog, nil))
	assert.Empty(t, FilterCatalog("basil", nil, nil))
}
