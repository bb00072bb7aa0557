package ingredient

import (
	engine "ingredient-resolver/internal/core/ingredient"
)

// SearchRequest 下拉選單即時搜尋
type SearchRequest struct {
	Query      string                `json:"query"`
	Catalog    []engine.CatalogEntry `json:"catalog" binding:"required"`
	ExcludeIDs []string              `json:"exclude_ids,omitempty"`
	Limit      int                   `json:"limit,omitempty" binding:"min=0"` // 0 表示不限制
}

// SearchResponse 搜尋結果，保留目錄順序
type SearchResponse struct {
	Results []engine.CatalogEntry `json:"results"`
	Total   int                   `json:"total"` // 截斷前的數量
}

// ResolveRequest 名稱解析請求，catalog 為呼叫端持有的目錄快照
type ResolveRequest struct {
	Query      string                `json:"query"`
	Catalog    []engine.CatalogEntry `json:"catalog" binding:"required"`
	ExcludeIDs []string              `json:"exclude_ids,omitempty"`
}

// ResolveResponse 名稱解析結果
type ResolveResponse struct {
	Query             string               `json:"query"`
	Matches           []engine.MatchOption `json:"matches"`
	HasExactMatch     bool                 `json:"has_exact_match"`
	ShouldOfferCreate bool                 `json:"should_offer_create"`
	TotalCandidates   int                  `json:"total_candidates"`
	Cached            bool                 `json:"cached"`
}

// InferRequest 推斷新食材類別與單位
type InferRequest struct {
	Name string `json:"name" binding:"required"`
}

// ImportRequest AI 擷取食材的批次解析
type ImportRequest struct {
	Names      []string              `json:"names" binding:"required"`
	Catalog    []engine.CatalogEntry `json:"catalog" binding:"required"`
	ExcludeIDs []string              `json:"exclude_ids,omitempty"`
}

// ImportResponse 批次解析結果
type ImportResponse struct {
	BatchID string `json:"batch_id"`
	*engine.ImportReport
}
