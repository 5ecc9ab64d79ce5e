package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"campus_lost_found/internal/message/domain"
	"campus_lost_found/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ChangeFeed definition message change notification per member
type ChangeFeed interface {
	Publish(ctx context.Context, userID string, ev domain.ChangeEvent) error
	Subscribe(ctx context.Context, userID string) (<-chan domain.ChangeEvent, error)
}

// RedisChangeFeed definition redis pub/sub
type RedisChangeFeed struct {
	client *redis.Client
}

// NewRedisChangeFeed create RedisChangeFeed
func NewRedisChangeFeed(client *redis.Client) *RedisChangeFeed {
	return &RedisChangeFeed{client: client}
}

// Publish 將 event 序列化後，發布到 member channel
func (r *RedisChangeFeed) Publish(ctx context.Context, userID string, ev domain.ChangeEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, domain.ChannelOf(userID), data).Err()
}

// Subscribe 訂閱 member channel, ctx 結束時關閉訂閱與回傳的 channel
func (r *RedisChangeFeed) Subscribe(ctx context.Context, userID string) (<-chan domain.ChangeEvent, error) {
	channel := domain.ChannelOf(userID)
	sub := r.client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	out := make(chan domain.ChangeEvent, 1)
	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}
				var ev domain.ChangeEvent
				if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
					// payload 只是提示, 照樣當作變更
					logger.Log.Warn("change feed payload", zap.String("channel", channel), zap.Error(err))
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				logger.Log.Debug(fmt.Sprintf("%s , sub close", channel))
				return
			}
		}
	}()
	return out, nil
}
