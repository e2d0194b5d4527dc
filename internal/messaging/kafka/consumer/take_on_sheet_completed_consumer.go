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

func ConsumeTakeOnSheetCompleted(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.take_on_sheet_completed")
	log.Info("take-on sheet completed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("take-on sheet completed consumer stopped")
				return
			}
			log.Error("fetch completed message failed", zap.Error(err))
			continue
		}

		var event events.TakeOnSheetCompletedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode completed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notificationService.RecordTakeOnSheetCompleted(ctx, event); err != nil {
			log.Error("record completed notification failed",
				zap.String("sheet_id", event.SheetID),
				zap.Error(err),
			)
			// Malformed payloads never succeed on redelivery.
			if errors.Is(err, notification.ErrMalformedEvent) {
				_ = reader.CommitMessages(ctx, msg)
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit completed message failed", zap.Error(err))
			continue
		}

		log.Info("completed notification created", zap.String("sheet_number", event.SheetNumber))
	}
}
