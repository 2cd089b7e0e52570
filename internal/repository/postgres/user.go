package postgres

import (
	"context"

	"github.com/FeedApp/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func newUserRepo(db *pgxpool.Pool) User {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(
		ctx,
		"SELECT u.id, u.name, u.post_ids FROM users u WHERE u.id = $1",
		id,
	).Scan(
		&user.ID,
		&user.Name,
		&user.PostIDs,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

// Save upserts the whole user document, post_ids projection included.
func (r *userRepo) Save(ctx context.Context, user model.User) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO users(id, name, post_ids) VALUES($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, post_ids = EXCLUDED.post_ids`,
		user.ID,
		user.Name,
		user.PostIDs,
	)
	return err
}
