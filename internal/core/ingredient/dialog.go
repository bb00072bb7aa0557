package ingredient

import (
	"fmt"
	"math"
)

// MatchLabel 比對層級的使用者顯示文字
func MatchLabel(m MatchResult) string {
	switch m.MatchType {
	case MatchExact:
		return "Exact Match"
	case MatchAlias:
		return "Variation"
	case MatchPartial:
		return "Contains"
	case MatchFuzzy:
		return fmt.Sprintf("%d%% Similar", int(math.Round(m.Similarity*100)))
	default:
		return ""
	}
}

// MatchOption 對話框中的一個可選項目
type MatchOption struct {
	MatchResult
	Label string `json:"label"`
}

// DialogView 新食材確認對話框所需資料
type DialogView struct {
	Query         string        `json:"query"`
	Options       []MatchOption `json:"options"`
	HasExactMatch bool          `json:"has_exact_match"`
	CanCreate     bool          `json:"can_create"`
	Draft         InferredDraft `json:"draft"`
}

// LabelMatches 為比對結果加上顯示文字
func LabelMatches(matches []MatchResult) []MatchOption {
	options := make([]MatchOption, 0, len(matches))
	for _, m := range matches {
		options = append(options, MatchOption{MatchResult: m, Label: MatchLabel(m)})
	}
	return options
}

// BuildDialog 由解析結果組出對話框；選擇既有食材或建立新食材都由呼叫端決定
func BuildDialog(query string, outcome *ResolutionOutcome) DialogView {
	view := DialogView{
		Query:   query,
		Options: []MatchOption{},
		Draft:   InferDraft(query),
	}
	if outcome == nil {
		return view
	}

	matches := outcome.Matches
	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}
	view.Options = LabelMatches(matches)
	view.HasExactMatch = outcome.HasExactMatch
	view.CanCreate = outcome.ShouldOfferCreate
	return view
}
