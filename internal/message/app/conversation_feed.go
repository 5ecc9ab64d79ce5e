package app

import (
	"context"
	"time"

	memberdomain "campus_lost_found/internal/member/domain"
	"campus_lost_found/internal/message/domain"
	"campus_lost_found/internal/message/repository"
	"campus_lost_found/pkg/logger"

	"go.uber.org/zap"
)

// PushFunc 推送給 client, 回傳錯誤時 Run 結束
type PushFunc func(update domain.LiveUpdate) error

// ConversationFeed 即時會話列表: 先推 snapshot, 之後每次變更重算整份列表;
// unread count 依 pollInterval 另外輪詢
type ConversationFeed struct {
	uc           MessageUseCase
	feed         repository.ChangeFeed
	pollInterval time.Duration
}

// NewConversationFeed create ConversationFeed
func NewConversationFeed(uc MessageUseCase, feed repository.ChangeFeed, pollInterval time.Duration) *ConversationFeed {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	return &ConversationFeed{uc: uc, feed: feed, pollInterval: pollInterval}
}

// Run 阻塞直到 ctx 結束或 push 失敗
func (f *ConversationFeed) Run(ctx context.Context, viewer memberdomain.Viewer, push PushFunc) error {
	if err := viewer.Require(); err != nil {
		return err
	}

	// 先訂閱再取 snapshot, 避免中間的變更遺失
	var events <-chan domain.ChangeEvent
	if f.feed != nil {
		ch, err := f.feed.Subscribe(ctx, viewer.MemberID)
		if err != nil {
			return err
		}
		events = ch
	}

	// 1 格 buffer: 重算期間的多次變更合併為一次
	signal := make(chan struct{}, 1)
	if events != nil {
		go func() {
			for range events {
				select {
				case signal <- struct{}{}:
				default:
				}
			}
		}()
	}

	if err := f.pushConversations(ctx, viewer, push); err != nil {
		return err
	}
	if err := f.pushUnread(ctx, viewer, push); err != nil {
		return err
	}

	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-signal:
			if err := f.pushConversations(ctx, viewer, push); err != nil {
				return err
			}
		case <-ticker.C:
			if err := f.pushUnread(ctx, viewer, push); err != nil {
				return err
			}
		}
	}
}

// 查詢失敗只推 error, 不中斷; push 失敗才回傳
func (f *ConversationFeed) pushConversations(ctx context.Context, viewer memberdomain.Viewer, push PushFunc) error {
	convs, err := f.uc.ListConversations(ctx, viewer)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		logger.Log.Warn("feed list conversations", zap.String("member_id", viewer.MemberID), zap.Error(err))
		return push(domain.LiveUpdate{Action: domain.ActionConversations, Error: "failed to load conversations"})
	}
	if convs == nil {
		convs = []domain.Conversation{}
	}
	return push(domain.LiveUpdate{Action: domain.ActionConversations, Success: true, Conversations: convs})
}

func (f *ConversationFeed) pushUnread(ctx context.Context, viewer memberdomain.Viewer, push PushFunc) error {
	n, err := f.uc.UnreadCount(ctx, viewer)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		logger.Log.Warn("feed unread count", zap.String("member_id", viewer.MemberID), zap.Error(err))
		return push(domain.LiveUpdate{Action: domain.ActionUnread, Error: "failed to load unread count"})
	}
	return push(domain.LiveUpdate{Action: domain.ActionUnread, Success: true, UnreadCount: &n})
}
