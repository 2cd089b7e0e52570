package service

import (
	"context"

	"github.com/FeedApp/feed-service/internal/dto"
	"github.com/FeedApp/feed-service/internal/model"
	"github.com/FeedApp/feed-service/internal/rabbitmq"
	"github.com/FeedApp/feed-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Feed interface {
	List(ctx context.Context, page int) (*dto.FeedPage, error)
	Create(ctx context.Context, creatorID uuid.UUID, in dto.CreatePostRequest, image *dto.ImageUpload) (*model.Post, *model.Creator, error)
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	Update(ctx context.Context, requesterID uuid.UUID, postID int64, in dto.UpdatePostRequest, image *dto.ImageUpload) (*model.Post, error)
	Delete(ctx context.Context, requesterID uuid.UUID, postID int64) error
}

// ImageStore is the artifact store the feed service saves to and cleans up
// after. Implemented by storage.Local.
type ImageStore interface {
	Save(ctx context.Context, upload *dto.ImageUpload) (string, error)
	Delete(ctx context.Context, path string) error
}

type Service struct {
	Feed

	feed *feedService
}

func New(logger *zap.Logger, repo *repository.Repository, store ImageStore, mq *rabbitmq.MQConn) *Service {
	feed := newFeedService(logger, repo, store, mq)
	return &Service{
		Feed: feed,
		feed: feed,
	}
}

func (s *Service) StartConsumeAll(ctx context.Context) {
	if s.feed == nil || s.feed.rabbitmq == nil {
		return
	}

	go s.feed.consumeImageCleanup(ctx)
}
