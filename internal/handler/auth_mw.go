package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/FeedApp/feed-service/internal/dto"
	"github.com/FeedApp/feed-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// authMiddleware verifies the bearer token and stores the verified user id in
// the request context. Token issuance lives in the auth service; this side
// only ever sees the resulting identity.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized.Error()))
		c.Abort()
		return
	}

	accessToken := strings.Split(header, " ")[1]
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized.Error()))
		c.Abort()
		return
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized.Error()))
		c.Abort()
		return
	}

	idString, ok := claims["userId"].(string)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized.Error()))
		c.Abort()
		return
	}

	userID, err := uuid.Parse(idString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Set("userID", userID)

	c.Next()
}

func (h *Handler) getUserIDFromRequest(c *gin.Context) (uuid.UUID, bool) {
	userIDValue, _ := c.Get("userID")

	userID, ok := userIDValue.(uuid.UUID)
	return userID, ok
}
