package ingredient

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// MaxMatches 對外顯示的相似結果上限
	MaxMatches = 5
	// EffectivelyExact 視為完全相符的相似度門檻
	EffectivelyExact = 0.95
	// minCreateLen 提供「建立新食材」所需的最短正規化長度
	minCreateLen = 2
)

// FindSimilarIngredients 對整個目錄執行比對並排序，決定是否提供建立新食材。
// catalog 為 nil 時回傳 ErrInvalidArgument；空目錄與空查詢不視為錯誤。
func FindSimilarIngredients(query string, catalog []CatalogEntry, excludeIDs []string) (*ResolutionOutcome, error) {
	if err := validateCatalog(catalog); err != nil {
		return nil, err
	}

	outcome := &ResolutionOutcome{Matches: []MatchResult{}}
	normalized := Normalize(query)
	if normalized.IsEmpty() {
		return outcome, nil
	}

	excluded := toSet(excludeIDs)
	best := make(map[string]MatchResult, len(catalog))
	for _, entry := range catalog {
		if _, skip := excluded[entry.ID]; skip {
			continue
		}
		result, ok := Classify(normalized, entry)
		if !ok {
			continue
		}
		// 同一個 id 只保留排序最前的結果
		if prev, seen := best[entry.ID]; seen && !rankedBefore(result, prev) {
			continue
		}
		best[entry.ID] = result
	}

	ranked := make([]MatchResult, 0, len(best))
	for _, r := range best {
		ranked = append(ranked, r)
	}
	SortMatches(ranked)

	outcome.ranked = ranked
	outcome.TotalCandidates = len(ranked)
	if len(ranked) > MaxMatches {
		outcome.Matches = append(outcome.Matches, ranked[:MaxMatches]...)
	} else {
		outcome.Matches = append(outcome.Matches, ranked...)
	}

	for _, r := range ranked {
		if r.MatchType == MatchExact || r.Similarity >= EffectivelyExact {
			outcome.HasExactMatch = true
			break
		}
	}
	outcome.ShouldOfferCreate = normalized.Len() >= minCreateLen && !outcome.HasExactMatch

	return outcome, nil
}

// SortMatches 依層級、相似度、名稱（不分大小寫）、id 排序
func SortMatches(results []MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return rankedBefore(results[i], results[j])
	})
}

func rankedBefore(a, b MatchResult) bool {
	if ra, rb := a.MatchType.Rank(), b.MatchType.Rank(); ra != rb {
		return ra > rb
	}
	if a.Similarity != b.Similarity {
		return a.Similarity > b.Similarity
	}
	if na, nb := strings.ToLower(a.Name), strings.ToLower(b.Name); na != nb {
		return na < nb
	}
	return a.ID < b.ID
}

// FilterCatalog 下拉選單用的不分大小寫子字串篩選，不經過比對器，保留目錄順序
func FilterCatalog(query string, catalog []CatalogEntry, excludeIDs []string) []CatalogEntry {
	needle := strings.ToLower(strings.TrimSpace(query))
	excluded := toSet(excludeIDs)

	out := make([]CatalogEntry, 0, len(catalog))
	for _, entry := range catalog {
		if _, skip := excluded[entry.ID]; skip {
			continue
		}
		if needle == "" || strings.Contains(strings.ToLower(entry.Name), needle) {
			out = append(out, entry)
		}
	}
	return out
}

func validateCatalog(catalog []CatalogEntry) error {
	if catalog == nil {
		return fmt.Errorf("%w: catalog is nil", ErrInvalidArgument)
	}
	for i, entry := range catalog {
		if strings.TrimSpace(entry.ID) == "" {
			return fmt.Errorf("%w: catalog entry %d (%q) has empty id", ErrInvalidArgument, i, entry.Name)
		}
	}
	return nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
