package public

import (
	handlershared "github.com/pianao-store/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, handlershared.ContextKeyUserID, "error.unauthorized", "error.internal")
}

func getUserEmail(c *gin.Context) string {
	return c.GetString(handlershared.ContextKeyUserEmail)
}
