package ingredient

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"ingredient-resolver/internal/core/cache"
	engine "ingredient-resolver/internal/core/ingredient"
	"ingredient-resolver/internal/infrastructure/config"
	"ingredient-resolver/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// resolveNamespace 解析結果的快取命名空間
const resolveNamespace = "resolve"

// Handler 食材解析處理程序
type Handler struct {
	cfg      *config.Config
	store    cache.Store // nil 表示不快取
	importer *engine.BulkImporter
}

// NewHandler 創建新的食材解析處理程序
func NewHandler(cfg *config.Config, store cache.Store) *Handler {
	return &Handler{
		cfg:      cfg,
		store:    store,
		importer: engine.NewBulkImporter(cfg.Import.Workers),
	}
}

// HandleSearch 下拉選單即時篩選，不經過比對器
func (h *Handler) HandleSearch(c *gin.Context) {
	requestID := common.RequestID(c)

	var req SearchRequest
	if !h.bind(c, requestID, &req) {
		return
	}

	results := engine.FilterCatalog(req.Query, req.Catalog, req.ExcludeIDs)
	total := len(results)
	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}

	common.LogDebug("目錄篩選完成",
		zap.String("request_id", requestID),
		zap.String("query", req.Query),
		zap.Int("total", total),
	)

	c.JSON(http.StatusOK, SearchResponse{Results: results, Total: total})
}

// HandleResolve 將輸入名稱與目錄比對，回傳排序後的候選與建立提示
func (h *Handler) HandleResolve(c *gin.Context) {
	requestID := common.RequestID(c)
	start := time.Now()

	var req ResolveRequest
	if !h.bind(c, requestID, &req) {
		return
	}

	outcome, cached, err := h.resolve(c.Request.Context(), requestID, req)
	if err != nil {
		h.respondError(c, requestID, err)
		return
	}

	common.LogResolution(requestID, req.Query, len(req.Catalog), len(outcome.Matches),
		outcome.HasExactMatch, outcome.ShouldOfferCreate, time.Since(start))

	c.JSON(http.StatusOK, ResolveResponse{
		Query:             req.Query,
		Matches:           engine.LabelMatches(outcome.Matches),
		HasExactMatch:     outcome.HasExactMatch,
		ShouldOfferCreate: outcome.ShouldOfferCreate,
		TotalCandidates:   outcome.TotalCandidates,
		Cached:            cached,
	})
}

// HandleDialog 新食材確認對話框資料
func (h *Handler) HandleDialog(c *gin.Context) {
	requestID := common.RequestID(c)

	var req ResolveRequest
	if !h.bind(c, requestID, &req) {
		return
	}

	outcome, _, err := h.resolve(c.Request.Context(), requestID, req)
	if err != nil {
		h.respondError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, engine.BuildDialog(req.Query, outcome))
}

// HandleInfer 推斷新食材的名稱、類別與單位建議
func (h *Handler) HandleInfer(c *gin.Context) {
	requestID := common.RequestID(c)

	var req InferRequest
	if !h.bind(c, requestID, &req) {
		return
	}

	c.JSON(http.StatusOK, engine.InferDraft(req.Name))
}

// HandleImport 批次解析 AI 擷取的食材名稱
func (h *Handler) HandleImport(c *gin.Context) {
	requestID := common.RequestID(c)
	start := time.Now()

	var req ImportRequest
	if !h.bind(c, requestID, &req) {
		return
	}

	if len(req.Names) > h.cfg.Import.MaxItems {
		common.LogWarn("匯入項目超出限制",
			zap.String("request_id", requestID),
			zap.Int("count", len(req.Names)),
			zap.Int("max_items", h.cfg.Import.MaxItems),
		)
		common.RespondError(c, common.ErrTooManyItems, h.cfg.App.Debug)
		return
	}

	report, err := h.importer.Import(c.Request.Context(), req.Names, req.Catalog, req.ExcludeIDs)
	if err != nil {
		h.respondError(c, requestID, err)
		return
	}

	batchID := common.GenerateUUID()
	common.LogInfo("批次匯入完成",
		zap.String("request_id", requestID),
		zap.String("batch_id", batchID),
		zap.Int("items", len(report.Items)),
		zap.Int("bound", report.Bound),
		zap.Int("needs_review", report.NeedsReview),
		zap.Int("skipped", report.Skipped),
		zap.Duration("耗時", time.Since(start)),
	)

	c.JSON(http.StatusOK, ImportResponse{BatchID: batchID, ImportReport: report})
}

// resolve 先查快取，未命中再執行解析並寫回
func (h *Handler) resolve(ctx context.Context, requestID string, req ResolveRequest) (*engine.ResolutionOutcome, bool, error) {
	if h.store == nil {
		outcome, err := engine.FindSimilarIngredients(req.Query, req.Catalog, req.ExcludeIDs)
		return outcome, false, err
	}

	key, err := cache.Key(resolveNamespace, req.Query, req.Catalog, req.ExcludeIDs)
	if err != nil {
		return nil, false, err
	}

	if data, err := h.store.Get(ctx, key); err == nil {
		var outcome engine.ResolutionOutcome
		parseErr := common.DecodeJSONStrict(bytes.NewReader(data), &outcome)
		if parseErr == nil {
			return &outcome, true, nil
		}
		common.LogWarn("快取內容無法解析", zap.String("request_id", requestID), zap.Error(parseErr))
	} else if !errors.Is(err, common.ErrCacheMiss) {
		common.LogWarn("快取讀取失敗", zap.String("request_id", requestID), zap.Error(err))
	}

	outcome, err := engine.FindSimilarIngredients(req.Query, req.Catalog, req.ExcludeIDs)
	if err != nil {
		return nil, false, err
	}

	data, err := common.ToJSON(outcome)
	if err == nil {
		err = h.store.Set(ctx, key, data)
	}
	if err != nil {
		common.LogWarn("快取寫入失敗", zap.String("request_id", requestID), zap.Error(err))
	}

	return outcome, false, nil
}

// bind 解析請求體，失敗時直接寫入錯誤響應
func (h *Handler) bind(c *gin.Context, requestID string, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
		)

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.RespondError(c, common.ErrRequestTooLarge.Wrap(err), h.cfg.App.Debug)
			return false
		}
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err), h.cfg.App.Debug)
		return false
	}
	return true
}

// respondError 將解析錯誤轉為 API 錯誤
func (h *Handler) respondError(c *gin.Context, requestID string, err error) {
	var apiErr *common.CustomError
	switch {
	case errors.Is(err, engine.ErrInvalidArgument):
		apiErr = common.ErrInvalidArgument.Wrap(err)
	case errors.Is(err, context.DeadlineExceeded):
		apiErr = common.ErrGatewayTimeout.Wrap(err)
	case errors.Is(err, context.Canceled):
		apiErr = common.ErrRequestTimeout.Wrap(err)
	default:
		apiErr = common.ErrInternalError.Wrap(err)
	}

	if apiErr.Status >= http.StatusInternalServerError {
		common.LogError("食材解析失敗", zap.String("request_id", requestID), zap.Error(err))
	} else {
		common.LogWarn("食材解析請求被拒絕", zap.String("request_id", requestID), zap.Error(err))
	}

	common.RespondError(c, apiErr, h.cfg.App.Debug)
}
