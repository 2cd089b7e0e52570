package postgres

import (
	"context"

	"github.com/FeedApp/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	FindPaged(ctx context.Context, limit int, offset int) ([]*model.Post, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, post model.Post) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
}

type User interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Save(ctx context.Context, user model.User) error
}

type PostgresRepository struct {
	Post
	User
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post: newPostRepo(db),
		User: newUserRepo(db),
	}
}
