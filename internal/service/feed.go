package service

import (
	"context"
	"time"

	"github.com/FeedApp/feed-service/internal/dto"
	"github.com/FeedApp/feed-service/internal/model"
	"github.com/FeedApp/feed-service/internal/rabbitmq"
	"github.com/FeedApp/feed-service/internal/repository"
	"github.com/FeedApp/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PER_PAGE is the fixed feed page size.
const PER_PAGE = 2

const cacheTTL = time.Hour

type feedService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	store    ImageStore
	rabbitmq *rabbitmq.MQConn
}

func newFeedService(logger *zap.Logger, repo *repository.Repository, store ImageStore, mq *rabbitmq.MQConn) *feedService {
	return &feedService{
		logger:   logger,
		repo:     repo,
		store:    store,
		rabbitmq: mq,
	}
}

func (s *feedService) List(ctx context.Context, page int) (*dto.FeedPage, error) {
	if page < 1 {
		page = 1
	}

	cachedPage, err := redisrepo.Get[dto.FeedPage](s.repo.Redis.Default, ctx, redisrepo.FeedPageKey(page))
	if err == nil && cachedPage != nil {
		return cachedPage, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get feed page(%d) from redis: %s", page, err.Error())
		return nil, ErrInternal
	}

	totalItems, err := s.repo.Postgres.Post.Count(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count posts from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	posts, err := s.repo.Postgres.Post.FindPaged(ctx, PER_PAGE, (page-1)*PER_PAGE)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find feed page(%d) from postgres: %s", page, err.Error())
		return nil, ErrInternal
	}
	if posts == nil {
		posts = []*model.Post{}
	}

	feedPage := &dto.FeedPage{
		Posts:      posts,
		TotalItems: totalItems,
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.FeedPageKey(page), feedPage, cacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set feed page(%d) in redis: %s", page, err.Error())
		return nil, ErrInternal
	}

	return feedPage, nil
}

func (s *feedService) Create(ctx context.Context, creatorID uuid.UUID, in dto.CreatePostRequest, image *dto.ImageUpload) (*model.Post, *model.Creator, error) {
	if image == nil {
		return nil, nil, ErrNoImageProvided
	}

	imageURL, err := s.store.Save(ctx, image)
	if err != nil {
		s.logger.Sugar().Errorf("failed to save image for user(%s): %s", creatorID.String(), err.Error())
		return nil, nil, ErrInternal
	}

	post := model.Post{
		CreatorID: creatorID,
		Title:     in.Title,
		Content:   in.Content,
		ImageURL:  imageURL,
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", creatorID.String(), err.Error())
		return nil, nil, ErrInternal
	}

	// The post row is authoritative from here on. The projection update below
	// is a second, independent write; if it fails the post stays and the
	// user's list is temporarily stale.
	user, err := s.repo.Postgres.User.FindByID(ctx, creatorID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s): %s", creatorID.String(), err.Error())
		return nil, nil, ErrInternal
	}

	user.PostIDs = append(user.PostIDs, createdPost.ID)
	if err := s.repo.Postgres.User.Save(ctx, *user); err != nil {
		s.logger.Sugar().Errorf("failed to save user(%s) post list: %s", creatorID.String(), err.Error())
		return nil, nil, ErrInternal
	}

	s.invalidateFeedCache(ctx)

	creator := &model.Creator{
		ID:   user.ID,
		Name: user.Name,
	}

	return createdPost, creator, nil
}

func (s *feedService) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	cachedPost, err := redisrepo.Get[model.Post](s.repo.Redis.Default, ctx, redisrepo.PostKey(id))
	if err == nil && cachedPost != nil {
		return cachedPost, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%d) from redis: %s", id, err.Error())
		return nil, ErrInternal
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(id), post, cacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%d) in redis: %s", id, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *feedService) Update(ctx context.Context, requesterID uuid.UUID, postID int64, in dto.UpdatePostRequest, image *dto.ImageUpload) (*model.Post, error) {
	imageURL := in.Image
	if image != nil {
		savedURL, err := s.store.Save(ctx, image)
		if err != nil {
			s.logger.Sugar().Errorf("failed to save image for user(%s): %s", requesterID.String(), err.Error())
			return nil, ErrInternal
		}
		imageURL = savedURL
	}
	if imageURL == "" {
		return nil, ErrNoImageResolvable
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err == pgx.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	if post.CreatorID != requesterID {
		return nil, ErrNotPostCreator
	}

	if imageURL != post.ImageURL {
		s.scheduleImageCleanup(ctx, post.ImageURL)
	}

	post.Title = in.Title
	post.Content = in.Content
	post.ImageURL = imageURL

	updatedPost, err := s.repo.Postgres.Post.Update(ctx, *post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update post(%d): %s", postID, err.Error())
		return nil, ErrInternal
	}

	s.invalidatePostCache(ctx, postID)
	s.invalidateFeedCache(ctx)

	return updatedPost, nil
}

func (s *feedService) Delete(ctx context.Context, requesterID uuid.UUID, postID int64) error {
	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err == pgx.ErrNoRows {
		return ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", postID, err.Error())
		return ErrInternal
	}

	if post.CreatorID != requesterID {
		return ErrNotPostCreator
	}

	s.scheduleImageCleanup(ctx, post.ImageURL)

	if err := s.repo.Postgres.Post.Delete(ctx, postID); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d): %s", postID, err.Error())
		return ErrInternal
	}

	// Second, independent write: the post row is already gone, a failure here
	// leaves a dangling id in the projection until the user is saved again.
	user, err := s.repo.Postgres.User.FindByID(ctx, post.CreatorID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s): %s", post.CreatorID.String(), err.Error())
		return ErrInternal
	}

	postIDs := user.PostIDs[:0]
	for _, id := range user.PostIDs {
		if id != postID {
			postIDs = append(postIDs, id)
		}
	}
	user.PostIDs = postIDs

	if err := s.repo.Postgres.User.Save(ctx, *user); err != nil {
		s.logger.Sugar().Errorf("failed to save user(%s) post list: %s", post.CreatorID.String(), err.Error())
		return ErrInternal
	}

	s.invalidatePostCache(ctx, postID)
	s.invalidateFeedCache(ctx)

	return nil
}

func (s *feedService) invalidatePostCache(ctx context.Context, postID int64) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostKey(postID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) from redis: %s", postID, err.Error())
	}
}

func (s *feedService) invalidateFeedCache(ctx context.Context) {
	keys, err := s.repo.Redis.Default.Keys(ctx, redisrepo.FEED_PAGE_KEY_PATTERN).Result()
	if err != nil {
		s.logger.Sugar().Errorf("failed to list feed page keys from redis: %s", err.Error())
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete feed pages from redis: %s", err.Error())
	}
}
