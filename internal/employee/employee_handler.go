package employee

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/vjorihoxha/tiktak-vjori/internal/shared/apperror"
	"github.com/vjorihoxha/tiktak-vjori/internal/shared/contextutil"
	"github.com/vjorihoxha/tiktak-vjori/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

// Ingest accepts one raw provider payload. The body is decoded as a free
// shape map; shape enforcement belongs to the provider mapper, not the
// binding layer.
func (h *Handler) Ingest(c *gin.Context) {
	// Release the idempotency lock whichever way the request ends; a repeat
	// of the same key then either replays the cached body or reprocesses.
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	provider := c.Param("provider")

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON data")
		return
	}

	resp, err := h.service.Process(c.Request.Context(), provider, payload)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	body := gin.H{
		"message":     "Employee processed successfully",
		"employee_id": resp.ID,
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if cached, marshalErr := json.Marshal(body); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, cached, idempotencyCacheTTL).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, body)
}

// List returns employees as a bare array, optionally filtered by the
// provider query parameter.
func (h *Handler) List(c *gin.Context) {
	provider := c.Query("provider")

	var (
		resp []EmployeeResponse
		err  error
	)
	if provider != "" {
		resp, err = h.service.GetByProvider(c.Request.Context(), provider)
	} else {
		resp, err = h.service.GetAll(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("list employees failed",
			zap.String("request_id", contextutil.GetRequestID(c.Request.Context())),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	response.List(c, http.StatusOK, resp)
}

// SyncAll sweeps records still pending a TrackTik sync. The optional limit
// query parameter bounds the batch.
func (h *Handler) SyncAll(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(c, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	syncedCount, err := h.service.SyncAllPending(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("batch sync failed",
			zap.String("request_id", contextutil.GetRequestID(c.Request.Context())),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "Failed to sync employees")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":      "Sync completed",
		"synced_count": syncedCount,
	})
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("process employee failed",
			zap.String("request_id", contextutil.GetRequestID(c.Request.Context())),
			zap.Error(err),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Message)
}
