package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campus_lost_found/internal/item/domain"
	"campus_lost_found/pkg/database"
	"campus_lost_found/pkg/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// CleanupConsumer 消費 image_cleanup 工作, 刪除孤立的圖片
type CleanupConsumer struct {
	rabbit     database.RabbitRepo
	storage    database.ObjectStorage
	queueName  string
	retryDelay time.Duration
}

// NewCleanupConsumer 建構 CleanupConsumer 實例
func NewCleanupConsumer(rabbit database.RabbitRepo, storage database.ObjectStorage, retryDelay time.Duration) *CleanupConsumer {
	return &CleanupConsumer{
		rabbit:     rabbit,
		storage:    storage,
		queueName:  domain.QueueName,
		retryDelay: retryDelay,
	}
}

// Start 持續消費直到 ctx 結束或 channel 關閉
func (c *CleanupConsumer) Start(ctx context.Context) error {
	if err := c.rabbit.DeclareQueue(c.queueName); err != nil {
		return fmt.Errorf("declare queue[%s]: %w", c.queueName, err)
	}
	msgs, err := c.rabbit.Consume(c.queueName, "")
	if err != nil {
		return fmt.Errorf("consume queue[%s]: %w", c.queueName, err)
	}

	logger.Log.Info("cleanup consumer started", zap.String("queue", c.queueName))

	for {
		select {
		case d, ok := <-msgs:
			if !ok {
				logger.Log.Warn("RabbitMQ 消費 channel 已關閉")
				return nil
			}
			c.handle(ctx, d)
		case <-ctx.Done():
			logger.Log.Info("cleanup consumer 收到停止訊號")
			return nil
		}
	}
}

func (c *CleanupConsumer) handle(ctx context.Context, d amqp.Delivery) {
	var job domain.ImageCleanupJob
	if err := json.Unmarshal(d.Body, &job); err != nil || job.ObjectName == "" {
		// 格式錯誤, 不重新排入
		logger.Log.Error("解析 cleanup 訊息失敗", zap.ByteString("body", d.Body), zap.Error(err))
		if err := d.Nack(false, false); err != nil {
			logger.Log.Error("Nack 訊息失敗", zap.Error(err))
		}
		return
	}

	if err := c.storage.RemoveObject(ctx, job.ObjectName); err != nil {
		logger.Log.Error("刪除孤立圖片失敗", zap.String("object", job.ObjectName), zap.Error(err))
		if c.retryDelay > 0 {
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
			}
		}
		if err := d.Nack(false, true); err != nil {
			logger.Log.Error("Nack 訊息失敗", zap.Error(err))
		}
		return
	}

	if err := d.Ack(false); err != nil {
		logger.Log.Error("確認訊息失敗", zap.Error(err))
		return
	}
	logger.Log.Info("孤立圖片已刪除", zap.String("object", job.ObjectName), zap.String("reason", job.Reason))
}
