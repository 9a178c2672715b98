package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tileworld.ai/sprite-gateway/app/domain/genlog"
	"tileworld.ai/sprite-gateway/app/interfaces/http/responses"
	"tileworld.ai/sprite-gateway/app/utils/functional"
)

const defaultGenerationLogLimit = 50

// GenerationLogAPI exposes the recorded generation calls read-only.
type GenerationLogAPI struct {
	genlogService *genlog.Service
}

func NewGenerationLogAPI(genlogService *genlog.Service) *GenerationLogAPI {
	return &GenerationLogAPI{
		genlogService: genlogService,
	}
}

func (logAPI *GenerationLogAPI) RegisterRouter(router *gin.RouterGroup) {
	router.GET("/generation-log", logAPI.GetGenerationLog)
}

type GenerationLogEntry struct {
	ID          uint      `json:"id"`
	Kind        string    `json:"kind"`
	ObjectKey   string    `json:"objectKey,omitempty"`
	Orientation string    `json:"orientation,omitempty"`
	Backend     string    `json:"backend"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	DurationMs  int64     `json:"durationMs"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type GenerationLogResponse struct {
	Object string               `json:"object"`
	Data   []GenerationLogEntry `json:"data"`
}

// GetGenerationLog
// @Summary List recent generation calls
// @Description Returns the most recent generation calls, newest first.
// @Tags Generation Log API
// @Produce json
// @Param limit query int false "Maximum entries to return (default 50)"
// @Success 200 {object} GenerationLogResponse "Recent generation calls"
// @Router /api/generation-log [get]
func (logAPI *GenerationLogAPI) GetGenerationLog(reqCtx *gin.Context) {
	limit := defaultGenerationLogLimit
	if raw := reqCtx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
				Code:  "e2f8d4a6-0b7c-4d5e-9f2a-1b0c9d8e7f6a",
				Error: "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	records, err := logAPI.genlogService.List(reqCtx.Request.Context(), limit)
	if err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:          "f3a9e5b7-1c8d-4e6f-8a3b-2c1d0e9f8a7b",
			ErrorInstance: err,
		})
		return
	}

	reqCtx.JSON(http.StatusOK, GenerationLogResponse{
		Object: "list",
		Data: functional.Map(records, func(record genlog.Record) GenerationLogEntry {
			return GenerationLogEntry{
				ID:          record.ID,
				Kind:        string(record.Kind),
				ObjectKey:   record.ObjectKey,
				Orientation: record.Orientation,
				Backend:     record.Backend,
				ImageURL:    record.ImageURL,
				DurationMs:  record.DurationMs,
				Success:     record.Success,
				Error:       record.ErrorText,
				CreatedAt:   record.CreatedAt,
			}
		}),
	})
}
