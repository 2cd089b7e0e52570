package handler

import (
	"errors"
	"net/http"

	"github.com/FeedApp/feed-service/internal/dto"
	"github.com/FeedApp/feed-service/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized    = errors.New("user is not authorized")
	errInvalidPostID    = errors.New("invalid post ID")
	errValidationFailed = errors.New("validation failed, entered data is incorrect")
)

// respondError maps service failures onto the HTTP taxonomy: 422 for input
// problems, 404 for a missing post, 403 for a non-owner, 500 for everything
// unclassified.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoImageProvided), errors.Is(err, service.ErrNoImageResolvable):
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(err.Error()))
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(err.Error()))
	case errors.Is(err, service.ErrNotPostCreator):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(service.ErrInternal.Error()))
	}
}
