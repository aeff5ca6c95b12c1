package admin

import (
	"github.com/shopsync/internal/http/response"
	"github.com/shopsync/internal/i18n"

	handlershared "github.com/shopsync/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// TriggerProductSync 立即执行一次商品同步，同步中返回冲突
func (h *Handler) TriggerProductSync(c *gin.Context) {
	result, err := h.TaskService.TriggerSync(c.Request.Context())
	if err != nil {
		handlershared.RespondWithMappedError(c, err, syncErrorRules, response.CodeInternal, "error.sync_failed")
		return
	}
	requestLog(c).Infow("admin_product_sync_done",
		"run_id", result.RunID,
		"synchronized", result.Synchronized,
		"errors", result.Errors,
	)
	response.Success(c, result)
}

// ManualSync 手动同步，同步中时返回提示而非错误
func (h *Handler) ManualSync(c *gin.Context) {
	result, err := h.TaskService.ManualSync(c.Request.Context())
	if err != nil {
		handlershared.RespondWithMappedError(c, err, syncErrorRules, response.CodeInternal, "error.sync_failed")
		return
	}
	locale := i18n.ResolveLocale(c)
	key := "message.sync_completed"
	if result.InProgress {
		key = "message.sync_in_progress"
	}
	result.Message = i18n.T(locale, key)
	response.SuccessWithMsg(c, result.Message, result)
}

// EnqueueSync 投递异步同步任务
func (h *Handler) EnqueueSync(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	taskID, err := h.TaskService.EnqueueSync(uid)
	if err != nil {
		handlershared.RespondWithMappedError(c, err, syncErrorRules, response.CodeInternal, "error.sync_failed")
		return
	}
	msg := i18n.T(i18n.ResolveLocale(c), "message.sync_queued")
	response.SuccessWithMsg(c, msg, gin.H{"task_id": taskID})
}

// GetTaskStatus 查询同步任务状态
func (h *Handler) GetTaskStatus(c *gin.Context) {
	response.Success(c, h.TaskService.Status(h.Clock.Now()))
}
