package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/FeedApp/feed-service/internal/dto"
	"github.com/FeedApp/feed-service/internal/storage"
	"github.com/gin-gonic/gin"
)

func (h *Handler) feedGetPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	feedPage, err := h.services.Feed.List(c.Request.Context(), page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListPostsResponse{
		Message:    "posts fetched successfully",
		Posts:      feedPage.Posts,
		TotalItems: feedPage.TotalItems,
	})
}

func (h *Handler) feedCreatePost(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized.Error()))
		return
	}

	var input dto.CreatePostRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponseWithData(errValidationFailed.Error(), err.Error()))
		return
	}

	createdPost, creator, err := h.services.Feed.Create(c.Request.Context(), userID, input, h.imageFromRequest(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePostResponse{
		Message: "post created successfully",
		Post:    createdPost,
		Creator: dto.CreatorInfo{
			ID:   creator.ID,
			Name: creator.Name,
		},
	})
}

func (h *Handler) feedGetPost(c *gin.Context) {
	postID, err := postIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID.Error()))
		return
	}

	post, err := h.services.Feed.FindByID(c.Request.Context(), postID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostResponse{
		Message: "post fetched successfully",
		Post:    post,
	})
}

func (h *Handler) feedUpdatePost(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized.Error()))
		return
	}

	postID, err := postIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID.Error()))
		return
	}

	var input dto.UpdatePostRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponseWithData(errValidationFailed.Error(), err.Error()))
		return
	}

	updatedPost, err := h.services.Feed.Update(c.Request.Context(), userID, postID, input, h.imageFromRequest(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PostResponse{
		Message: "post updated successfully",
		Post:    updatedPost,
	})
}

func (h *Handler) feedDeletePost(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errNotAuthorized.Error()))
		return
	}

	postID, err := postIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errInvalidPostID.Error()))
		return
	}

	if err := h.services.Feed.Delete(c.Request.Context(), userID, postID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "post deleted successfully"})
}

func postIDParam(c *gin.Context) (int64, error) {
	postIDString := strings.TrimSpace(c.Param("postId"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil {
		return 0, err
	}

	return postID, nil
}

// imageFromRequest extracts the uploaded image, if any. Disallowed MIME types
// are dropped right here at the ingestion boundary, indistinguishable from no
// file being attached at all.
func (h *Handler) imageFromRequest(c *gin.Context) *dto.ImageUpload {
	file, fileHeader, err := c.Request.FormFile("image")
	if err != nil {
		return nil
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !storage.AllowedImageType(contentType) {
		file.Close()
		return nil
	}

	return &dto.ImageUpload{
		Name:        fileHeader.Filename,
		ContentType: contentType,
		Data:        file,
	}
}
