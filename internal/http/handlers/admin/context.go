package admin

import (
	handlershared "github.com/shopsync/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetUserID(c)
}

func currentRequestID(c *gin.Context) string {
	return handlershared.GetContextString(c, handlershared.ContextKeyRequestID)
}
