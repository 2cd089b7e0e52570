package model

import "github.com/google/uuid"

// User carries the denormalized projection of post ownership in PostIDs.
// Post rows are authoritative; PostIDs is maintained by the feed service on
// every create/delete.
type User struct {
	ID      uuid.UUID `json:"_id"`
	Name    string    `json:"name"`
	PostIDs []int64   `json:"posts"`
}

// Creator is the minimal descriptor of a post's owner returned on creation.
type Creator struct {
	ID   uuid.UUID `json:"_id"`
	Name string    `json:"name"`
}
