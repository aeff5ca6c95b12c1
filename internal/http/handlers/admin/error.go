package admin

import (
	handlershared "github.com/shopsync/internal/http/handlers/shared"
	"github.com/shopsync/internal/http/response"
	"github.com/shopsync/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

var syncErrorRules = []handlershared.MappedError{
	{Target: service.ErrSyncInProgress, Code: response.CodeConflict, Key: "error.sync_in_progress"},
	{Target: service.ErrUpstream, Code: response.CodeBadGateway, Key: "error.upstream_unavailable"},
	{Target: service.ErrQueueUnavailable, Code: response.CodeUnavailable, Key: "error.queue_unavailable"},
}
