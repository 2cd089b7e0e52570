package service

import (
	"context"
	"encoding/json"

	"github.com/FeedApp/feed-service/internal/dto"
	"github.com/FeedApp/feed-service/internal/rabbitmq"
)

// scheduleImageCleanup dispatches a best-effort deletion of an orphaned
// artifact. The outcome is never observable on the request path: with a broker
// the task is published to the cleanup queue, without one the store is called
// directly and any failure is only logged.
func (s *feedService) scheduleImageCleanup(ctx context.Context, path string) {
	if path == "" {
		return
	}

	if s.rabbitmq != nil {
		body, err := json.Marshal(dto.MQImageCleanupMsg{Path: path})
		if err != nil {
			s.logger.Sugar().Errorf("failed to marshal cleanup task for image(%s): %s", path, err.Error())
			return
		}

		if err := s.rabbitmq.Publish(ctx, rabbitmq.IMAGE_CLEANUP_QUEUE, body); err == nil {
			return
		} else {
			s.logger.Sugar().Errorf("failed to publish cleanup task for image(%s), falling back to direct delete: %s", path, err.Error())
		}
	}

	if err := s.store.Delete(ctx, path); err != nil {
		s.logger.Sugar().Errorf("failed to delete image(%s): %s", path, err.Error())
	}
}

func (s *feedService) consumeImageCleanup(ctx context.Context) {
	queue := rabbitmq.IMAGE_CLEANUP_QUEUE
	msgs, err := s.rabbitmq.Consume(queue)
	if err != nil {
		s.logger.Sugar().Fatalf("failed to start consume tasks from queue(%s): %s", queue, err.Error())
	}

	for msg := range msgs {
		var task dto.MQImageCleanupMsg
		if err := json.Unmarshal(msg.Body, &task); err != nil {
			s.logger.Sugar().Errorf("failed to unmarshal json in queue(%s): %s", queue, err.Error())
			msg.Nack(false, false)
			continue
		}

		if task.Path == "" {
			s.logger.Sugar().Errorf("'path' field is not provided")
			msg.Nack(false, false)
			continue
		}

		// A missing file is swallowed by the store; a non-nil error here is
		// transient, so the task is requeued.
		if err := s.store.Delete(ctx, task.Path); err != nil {
			s.logger.Sugar().Errorf("failed to delete image(%s): %s", task.Path, err.Error())
			msg.Nack(false, true)
			continue
		}

		msg.Ack(false)
	}
}
