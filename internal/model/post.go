package model

import (
	"time"

	"github.com/google/uuid"
)

// Post is a user-authored feed entry. CreatorID is immutable after creation;
// ImageURL is a storage-relative path with forward slashes.
type Post struct {
	ID        int64     `json:"_id"`
	CreatorID uuid.UUID `json:"creator"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
