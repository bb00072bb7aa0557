package ingredient

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ImportStatus 批次匯入單筆狀態
type ImportStatus string

const (
	ImportBound       ImportStatus = "bound"        // 已自動綁定既有食材
	ImportNeedsReview ImportStatus = "needs_review" // 需人工處理
	ImportSkipped     ImportStatus = "skipped"      // 空白名稱
)

// ImportedItem 單一擷取食材的處理結果
type ImportedItem struct {
	Index        int            `json:"index"`
	Name         string         `json:"name"`
	Status       ImportStatus   `json:"status"`
	IngredientID string         `json:"ingredient_id,omitempty"`
	Match        *MatchResult   `json:"match,omitempty"`
	Candidates   []MatchResult  `json:"candidates,omitempty"`
	Draft        *InferredDraft `json:"draft,omitempty"`
}

// ImportReport 批次匯入結果，Items 與輸入順序一致
type ImportReport struct {
	Items       []ImportedItem `json:"items"`
	Bound       int            `json:"bound"`
	NeedsReview int            `json:"needs_review"`
	Skipped     int            `json:"skipped"`
}

// BulkImporter AI 擷取食材的批次解析器
type BulkImporter struct {
	workers int
}

// NewBulkImporter 創建批次解析器，workers <= 0 時使用 1
func NewBulkImporter(workers int) *BulkImporter {
	if workers <= 0 {
		workers = 1
	}
	return &BulkImporter{workers: workers}
}

// Import 逐筆呼叫 FindSimilarIngredients；HasExactMatch 時自動綁定最佳結果，
// 否則保留未綁定並附上預填草稿。目錄只讀，各筆可平行處理。
func (b *BulkImporter) Import(ctx context.Context, names []string, catalog []CatalogEntry, excludeIDs []string) (*ImportReport, error) {
	if err := validateCatalog(catalog); err != nil {
		return nil, err
	}

	items := make([]ImportedItem, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := resolveImportItem(i, name, catalog, excludeIDs)
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &ImportReport{Items: items}
	for _, item := range items {
		switch item.Status {
		case ImportBound:
			report.Bound++
		case ImportNeedsReview:
			report.NeedsReview++
		case ImportSkipped:
			report.Skipped++
		}
	}
	return report, nil
}

func resolveImportItem(index int, name string, catalog []CatalogEntry, excludeIDs []string) (ImportedItem, error) {
	item := ImportedItem{Index: index, Name: name}
	if strings.TrimSpace(name) == "" {
		item.Status = ImportSkipped
		return item, nil
	}

	outcome, err := FindSimilarIngredients(name, catalog, excludeIDs)
	if err != nil {
		return item, err
	}

	if top, ok := outcome.Top(); ok && outcome.HasExactMatch {
		item.Status = ImportBound
		item.IngredientID = top.ID
		item.Match = &top
		return item, nil
	}

	draft := InferDraft(name)
	item.Status = ImportNeedsReview
	item.Candidates = outcome.Matches
	item.Draft = &draft
	return item, nil
}
