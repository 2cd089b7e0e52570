package postgres

import (
	"context"
	"time"

	"github.com/FeedApp/feed-service/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(creator_id, title, content, image_url, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6) RETURNING id",
		post.CreatorID,
		post.Title,
		post.Content,
		post.ImageURL,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(
		ctx,
		"SELECT p.id, p.creator_id, p.title, p.content, p.image_url, p.created_at, p.updated_at FROM posts p WHERE p.id = $1",
		id,
	).Scan(
		&post.ID,
		&post.CreatorID,
		&post.Title,
		&post.Content,
		&post.ImageURL,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindPaged(ctx context.Context, limit int, offset int) ([]*model.Post, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT p.id, p.creator_id, p.title, p.content, p.image_url, p.created_at, p.updated_at
		FROM posts p
		ORDER BY p.id
		LIMIT $1
		OFFSET $2`,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(
			&post.ID,
			&post.CreatorID,
			&post.Title,
			&post.Content,
			&post.ImageURL,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, err
		}

		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepo) Update(ctx context.Context, post model.Post) (*model.Post, error) {
	post.UpdatedAt = time.Now()
	tag, err := r.db.Exec(
		ctx,
		"UPDATE posts SET title = $2, content = $3, image_url = $4, updated_at = $5 WHERE id = $1",
		post.ID,
		post.Title,
		post.Content,
		post.ImageURL,
		post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}

	return &post, nil
}

func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}
