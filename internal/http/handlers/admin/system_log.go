package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/shopsync/internal/http/handlers/shared"
	"github.com/shopsync/internal/http/response"
	"github.com/shopsync/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListSystemLogs 审计日志列表
func (h *Handler) ListSystemLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	logs, total, err := h.SystemLogService.List(repository.SystemLogListFilter{
		Page:     page,
		PageSize: pageSize,
		Level:    strings.ToUpper(strings.TrimSpace(c.Query("level"))),
		Context:  strings.TrimSpace(c.Query("context")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.system_log_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, logs, handlershared.BuildPagination(page, pageSize, total))
}

// LogCleanupRequest 日志清理请求
type LogCleanupRequest struct {
	RetentionDays int `json:"retention_days" binding:"omitempty,min=1,max=3650"`
}

// CleanupSystemLogs 清理过期审计日志，body 可为空
func (h *Handler) CleanupSystemLogs(c *gin.Context) {
	var req LogCleanupRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handlershared.RespondBindError(c, err)
			return
		}
	}
	result, err := h.TaskService.RequestLogCleanup(c.Request.Context(), req.RetentionDays)
	if err != nil {
		respondError(c, response.CodeInternal, "error.system_log_cleanup_failed", err)
		return
	}
	requestLog(c).Infow("admin_system_log_cleanup", "queued", result.Queued, "retention_days", result.RetentionDays, "removed", result.Removed)
	response.Success(c, result)
}
