package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-hradmin/internal/events"
	"go-hradmin/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeAccessRequestReviewed(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.access_request_reviewed")
	log.Info("access request reviewed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("access request reviewed consumer stopped")
				return
			}
			log.Error("fetch reviewed message failed", zap.Error(err))
			continue
		}

		var event events.AccessRequestReviewedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode reviewed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notificationService.RecordAccessRequestReviewed(ctx, event); err != nil {
			log.Error("record reviewed notification failed",
				zap.String("access_request_id", event.AccessRequestID),
				zap.Error(err),
			)
			// A malformed payload will fail identically on every
			// redelivery; commit it so it does not wedge the group.
			if errors.Is(err, notification.ErrMalformedEvent) {
				_ = reader.CommitMessages(ctx, msg)
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit reviewed message failed", zap.Error(err))
			continue
		}

		log.Info("reviewed notification created",
			zap.String("access_request_id", event.AccessRequestID),
			zap.String("decision", event.Decision),
		)
	}
}
