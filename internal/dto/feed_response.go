package dto

import (
	"github.com/FeedApp/feed-service/internal/model"
	"github.com/google/uuid"
)

// FeedPage is one fixed-size window of the global feed.
type FeedPage struct {
	Posts      []*model.Post `json:"posts"`
	TotalItems int64         `json:"totalItems"`
}

type ListPostsResponse struct {
	Message    string        `json:"message"`
	Posts      []*model.Post `json:"posts"`
	TotalItems int64         `json:"totalItems"`
}

type CreatorInfo struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}

type CreatePostResponse struct {
	Message string      `json:"message"`
	Post    *model.Post `json:"post"`
	Creator CreatorInfo `json:"creator"`
}

type PostResponse struct {
	Message string      `json:"message"`
	Post    *model.Post `json:"post"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
