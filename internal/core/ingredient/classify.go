package ingredient

import (
	"github.com/agnivade/levenshtein"
)

// 各層級的相似度邊界
const (
	aliasMinSimilarity   = 0.90
	aliasMaxEditRatio    = 0.10
	partialMinSimilarity = 0.50
	partialMaxSimilarity = 0.94 // 必須小於 0.95
	fuzzyMaxSimilarity   = 0.99
)

// Classify 比對查詢與單一目錄條目，依序嘗試 exact、alias、partial、fuzzy，
// 第一個成立者勝出；沒有任何共同詞時回傳 false。
func Classify(query NormalizedName, entry CatalogEntry) (MatchResult, bool) {
	if query.IsEmpty() {
		return MatchResult{}, false
	}
	return classifyNormalized(query, Normalize(entry.Name), entry)
}

func classifyNormalized(query, name NormalizedName, entry CatalogEntry) (MatchResult, bool) {
	if query.IsEmpty() || name.IsEmpty() {
		return MatchResult{}, false
	}

	result := MatchResult{ID: entry.ID, Name: entry.Name}

	if query.Text == name.Text {
		result.MatchType = MatchExact
		result.Similarity = 1.0
		return result, true
	}

	if sim, ok := aliasSimilarity(query.Text, name.Text); ok {
		result.MatchType = MatchAlias
		result.Similarity = sim
		return result, true
	}

	if sim, ok := partialSimilarity(query.Tokens, name.Tokens); ok {
		result.MatchType = MatchPartial
		result.Similarity = sim
		return result, true
	}

	if sim := jaccard(query.Tokens, name.Tokens); sim > 0 {
		result.MatchType = MatchFuzzy
		result.Similarity = sim
		return result, true
	}

	return MatchResult{}, false
}

// aliasSimilarity 同義詞或編輯距離比例 <= 0.10
func aliasSimilarity(a, b string) (float64, bool) {
	if areSynonyms(a, b) {
		return aliasMinSimilarity, true
	}

	maxLen := runeLen(a)
	if l := runeLen(b); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0, false
	}

	dist := levenshtein.ComputeDistance(a, b)
	if float64(dist)/float64(maxLen) > aliasMaxEditRatio {
		return 0, false
	}

	sim := 1 - float64(dist)/float64(maxLen)
	if sim < aliasMinSimilarity {
		sim = aliasMinSimilarity
	}
	return sim, true
}

// partialSimilarity 一方的詞序列是另一方的連續子序列
func partialSimilarity(query, entry []string) (float64, bool) {
	shorter, longer := query, entry
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if !containsSequence(longer, shorter) {
		return 0, false
	}

	sim := float64(len(shorter)) / float64(len(longer))
	switch {
	case sim < partialMinSimilarity:
		sim = partialMinSimilarity
	case sim > partialMaxSimilarity:
		sim = partialMaxSimilarity
	}
	return sim, true
}

// jaccard 詞集合的交集除以聯集
func jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 || intersection == 0 {
		return 0
	}

	sim := float64(intersection) / float64(union)
	if sim > fuzzyMaxSimilarity {
		sim = fuzzyMaxSimilarity
	}
	return sim
}
