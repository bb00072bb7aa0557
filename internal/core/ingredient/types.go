package ingredient

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidArgument 呼叫端傳入無效參數（例如 nil catalog）
var ErrInvalidArgument = errors.New("invalid argument")

// MatchType 比對層級
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchAlias   MatchType = "alias"
	MatchPartial MatchType = "partial"
	MatchFuzzy   MatchType = "fuzzy"
)

// Rank 層級排序權重，數字越大越優先
func (t MatchType) Rank() int {
	switch t {
	case MatchExact:
		return 4
	case MatchAlias:
		return 3
	case MatchPartial:
		return 2
	case MatchFuzzy:
		return 1
	default:
		return 0
	}
}

// 類別標籤
const (
	CategoryProtein   = "Protein"
	CategoryDairy     = "Dairy"
	CategoryProduce   = "Produce"
	CategoryFruit     = "Fruit"
	CategoryPantry    = "Pantry"
	CategorySpices    = "Spices"
	CategorySeafood   = "Seafood"
	CategoryBakery    = "Bakery"
	CategoryBeverages = "Beverages"
	CategoryOther     = "Other"
)

// 單位標籤
const (
	UnitGram       = "g"
	UnitKilogram   = "kg"
	UnitMilliliter = "ml"
	UnitLiter      = "L"
	UnitEach       = "each"
	UnitPound      = "lb"
	UnitOunce      = "oz"
	UnitBunch      = "bunch"
	UnitTablespoon = "tbsp"
	UnitTeaspoon   = "tsp"
	UnitCup        = "cup"
)

// CatalogEntry 食材目錄條目（由外部儲存擁有，引擎只讀取快照）
type CatalogEntry struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	Category    string          `json:"category"`
}

// MatchResult 單一目錄條目的比對結果
type MatchResult struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MatchType  MatchType `json:"match_type"`
	Similarity float64   `json:"similarity"`
}

// ResolutionOutcome 解析結果
type ResolutionOutcome struct {
	Matches           []MatchResult `json:"matches"`             // 最多 MaxMatches 筆，最佳在前
	HasExactMatch     bool          `json:"has_exact_match"`     // 完全相符或相似度 >= 0.95
	ShouldOfferCreate bool          `json:"should_offer_create"` // 是否提供「建立新食材」
	TotalCandidates   int           `json:"total_candidates"`    // 截斷前的結果數量

	ranked []MatchResult
}

// Ranked 回傳截斷前的完整排序結果
func (o *ResolutionOutcome) Ranked() []MatchResult {
	out := make([]MatchResult, len(o.ranked))
	copy(out, o.ranked)
	return out
}

// Top 回傳最佳比對結果
func (o *ResolutionOutcome) Top() (MatchResult, bool) {
	if len(o.ranked) == 0 {
		return MatchResult{}, false
	}
	return o.ranked[0], true
}

// InferredDraft 建立新食材時的預填建議，永遠不會自動套用
type InferredDraft struct {
	SuggestedName     string `json:"suggested_name"`
	SuggestedCategory string `json:"suggested_category"`
	SuggestedUnit     string `json:"suggested_unit"`
}
