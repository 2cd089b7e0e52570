package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/FeedApp/feed-service/internal/dto"
	"github.com/FeedApp/feed-service/internal/handler"
	"github.com/FeedApp/feed-service/internal/model"
	"github.com/FeedApp/feed-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	list   func(ctx context.Context, page int) (*dto.FeedPage, error)
	create func(ctx context.Context, creatorID uuid.UUID, in dto.CreatePostRequest, image *dto.ImageUpload) (*model.Post, *model.Creator, error)
	find   func(ctx context.Context, id int64) (*model.Post, error)
	update func(ctx context.Context, requesterID uuid.UUID, postID int64, in dto.UpdatePostRequest, image *dto.ImageUpload) (*model.Post, error)
	remove func(ctx context.Context, requesterID uuid.UUID, postID int64) error
}

func (s *stubFeed) List(ctx context.Context, page int) (*dto.FeedPage, error) {
	return s.list(ctx, page)
}

func (s *stubFeed) Create(ctx context.Context, creatorID uuid.UUID, in dto.CreatePostRequest, image *dto.ImageUpload) (*model.Post, *model.Creator, error) {
	return s.create(ctx, creatorID, in, image)
}

func (s *stubFeed) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	return s.find(ctx, id)
}

func (s *stubFeed) Update(ctx context.Context, requesterID uuid.UUID, postID int64, in dto.UpdatePostRequest, image *dto.ImageUpload) (*model.Post, error) {
	return s.update(ctx, requesterID, postID, in, image)
}

func (s *stubFeed) Delete(ctx context.Context, requesterID uuid.UUID, postID int64) error {
	return s.remove(ctx, requesterID, postID)
}

func setupRouter(t *testing.T, feed service.Feed) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	viper.Set("client.origin", "http://localhost:3000")
	viper.Set("storage.local-dir", t.TempDir())
	t.Setenv("ACCESS_SECRET", "test-secret")

	h := handler.New(&service.Service{Feed: feed})
	return h.InitRoutes()
}

func signToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID.String(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func multipartBody(t *testing.T, fields map[string]string, imageName string, imageType string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}

	if imageName != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, imageName))
		header.Set("Content-Type", imageType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("not really an image"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestFeedRoutes_RequireAuth(t *testing.T) {
	r := setupRouter(t, &stubFeed{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/feed/posts", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetPosts(t *testing.T) {
	userID := uuid.New()
	var gotPage int
	feed := &stubFeed{
		list: func(ctx context.Context, page int) (*dto.FeedPage, error) {
			gotPage = page
			return &dto.FeedPage{
				Posts:      []*model.Post{{ID: 5, CreatorID: userID, Title: "t", Content: "c"}},
				TotalItems: 5,
			}, nil
		},
	}
	r := setupRouter(t, feed)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/feed/posts?page=3", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, gotPage)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "posts fetched successfully", resp["message"])
	assert.EqualValues(t, 5, resp["totalItems"])
	assert.Len(t, resp["posts"], 1)
}

func TestGetPosts_InvalidPageDefaultsToFirst(t *testing.T) {
	var gotPage int
	feed := &stubFeed{
		list: func(ctx context.Context, page int) (*dto.FeedPage, error) {
			gotPage = page
			return &dto.FeedPage{Posts: []*model.Post{}}, nil
		},
	}
	r := setupRouter(t, feed)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/feed/posts?page=abc", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New()))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, gotPage)
}

func TestCreatePost(t *testing.T) {
	userID := uuid.New()
	feed := &stubFeed{
		create: func(ctx context.Context, creatorID uuid.UUID, in dto.CreatePostRequest, image *dto.ImageUpload) (*model.Post, *model.Creator, error) {
			require.NotNil(t, image)
			assert.Equal(t, userID, creatorID)
			return &model.Post{ID: 1, CreatorID: creatorID, Title: in.Title, Content: in.Content, ImageURL: "images/x.png"},
				&model.Creator{ID: creatorID, Name: "Max"}, nil
		},
	}
	r := setupRouter(t, feed)

	body, contentType := multipartBody(t, map[string]string{
		"title":   "first post",
		"content": "hello feed world",
	}, "photo.png", "image/png")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/feed/post", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message string `json:"message"`
		Creator struct {
			ID   string `json:"_id"`
			Name string `json:"name"`
		} `json:"creator"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "post created successfully", resp.Message)
	assert.Equal(t, userID.String(), resp.Creator.ID)
	assert.Equal(t, "Max", resp.Creator.Name)
}

func TestCreatePost_ValidationFails(t *testing.T) {
	r := setupRouter(t, &stubFeed{})

	body, contentType := multipartBody(t, map[string]string{
		"title":   "abc", // too short
		"content": "hello feed world",
	}, "photo.png", "image/png")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/feed/post", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New()))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreatePost_DisallowedImageTypeIsDropped(t *testing.T) {
	feed := &stubFeed{
		create: func(ctx context.Context, creatorID uuid.UUID, in dto.CreatePostRequest, image *dto.ImageUpload) (*model.Post, *model.Creator, error) {
			assert.Nil(t, image, "a disallowed MIME type must look like no file at all")
			return nil, nil, service.ErrNoImageProvided
		},
	}
	r := setupRouter(t, feed)

	body, contentType := multipartBody(t, map[string]string{
		"title":   "first post",
		"content": "hello feed world",
	}, "clip.gif", "image/gif")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/feed/post", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New()))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetPost_NotFound(t *testing.T) {
	feed := &stubFeed{
		find: func(ctx context.Context, id int64) (*model.Post, error) {
			return nil, service.ErrPostNotFound
		},
	}
	r := setupRouter(t, feed)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/feed/post/42", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New()))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, service.ErrPostNotFound.Error(), resp.Message)
}

func TestGetPost_InvalidID(t *testing.T) {
	r := setupRouter(t, &stubFeed{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/feed/post/not-a-number", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New()))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePost_Forbidden(t *testing.T) {
	feed := &stubFeed{
		update: func(ctx context.Context, requesterID uuid.UUID, postID int64, in dto.UpdatePostRequest, image *dto.ImageUpload) (*model.Post, error) {
			return nil, service.ErrNotPostCreator
		},
	}
	r := setupRouter(t, feed)

	body, contentType := multipartBody(t, map[string]string{
		"title":   "updated title",
		"content": "updated content",
		"image":   "images/old.png",
	}, "", "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/feed/post/1", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New()))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeletePost(t *testing.T) {
	userID := uuid.New()
	var gotPostID int64
	feed := &stubFeed{
		remove: func(ctx context.Context, requesterID uuid.UUID, postID int64) error {
			assert.Equal(t, userID, requesterID)
			gotPostID = postID
			return nil
		},
	}
	r := setupRouter(t, feed)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/feed/post/7", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 7, gotPostID)

	var resp dto.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "post deleted successfully", resp.Message)
}
