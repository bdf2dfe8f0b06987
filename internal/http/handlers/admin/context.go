package admin

import (
	"time"

	handlershared "github.com/pianao-store/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, handlershared.ContextKeyAdminID, "error.unauthorized", "error.internal")
}

func currentUsername(c *gin.Context) string {
	return c.GetString(handlershared.ContextKeyUsername)
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
