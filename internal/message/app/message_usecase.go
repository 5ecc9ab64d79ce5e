package app

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	itemdomain "campus_lost_found/internal/item/domain"
	memberdomain "campus_lost_found/internal/member/domain"
	"campus_lost_found/internal/message/domain"
	"campus_lost_found/internal/message/repository"
	errprocess "campus_lost_found/pkg/err"
	"campus_lost_found/pkg/logger"
	"campus_lost_found/pkg/mailer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageUseCase 這裡封裝了對外提供的應用服務
type MessageUseCase interface {
	ListConversations(ctx context.Context, viewer memberdomain.Viewer) ([]domain.Conversation, error)
	ListThread(ctx context.Context, viewer memberdomain.Viewer, otherUserID string, itemID *string) ([]domain.Message, error)
	SendMessage(ctx context.Context, viewer memberdomain.Viewer, req domain.SendMessageReq) (*domain.Message, error)
	MarkRead(ctx context.Context, viewer memberdomain.Viewer, messageIDs []string) (int64, error)
	UnreadCount(ctx context.Context, viewer memberdomain.Viewer) (int, error)
}

// ProfileLookup member profile batch lookup
type ProfileLookup interface {
	FindProfiles(ctx context.Context, memberIDs []string) ([]memberdomain.Profile, error)
}

// ItemLookup item existence / title
type ItemLookup interface {
	GetItem(ctx context.Context, id string) (*itemdomain.Item, error)
}

type messageUseCase struct {
	repo     repository.MessageRepo
	profiles ProfileLookup
	items    ItemLookup
	feed     repository.ChangeFeed
	notifier mailer.Notifier
	now      func() time.Time
	newID    func() string
	// dispatch 執行 best effort 的背景工作 (郵件通知)
	dispatch func(func())
}

// NewMessageUseCase 建立一個新的 MessageUseCase, items/feed/notifier 可為 nil
func NewMessageUseCase(repo repository.MessageRepo,
	profiles ProfileLookup,
	items ItemLookup,
	feed repository.ChangeFeed,
	notifier mailer.Notifier,
) MessageUseCase {
	if notifier == nil {
		notifier = mailer.Noop{}
	}
	return &messageUseCase{
		repo:     repo,
		profiles: profiles,
		items:    items,
		feed:     feed,
		notifier: notifier,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		dispatch: func(f func()) { go f() },
	}
}

// ListConversations 聚合 viewer 的所有訊息, 並補上對方名稱
func (s *messageUseCase) ListConversations(ctx context.Context, viewer memberdomain.Viewer) ([]domain.Conversation, error) {
	if err := viewer.Require(); err != nil {
		return nil, err
	}
	msgs, err := s.repo.ListForUser(ctx, viewer.MemberID)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("member[%s] list messages err : %v", viewer.MemberID, err))
	}

	convs := domain.AggregateConversations(viewer.MemberID, msgs)
	if len(convs) == 0 {
		return convs, nil
	}

	var profiles []memberdomain.Profile
	if s.profiles != nil {
		profiles, err = s.profiles.FindProfiles(ctx, domain.CounterpartIDs(convs))
		if err != nil {
			// 名稱查不到時退回 id
			logger.Log.Warn("conversation profiles lookup", zap.String("member_id", viewer.MemberID), zap.Error(err))
			profiles = nil
		}
	}
	domain.ApplyDisplayNames(convs, profiles)
	return convs, nil
}

// ListThread 與 otherUserID 的對話內容, 舊到新
func (s *messageUseCase) ListThread(ctx context.Context, viewer memberdomain.Viewer, otherUserID string, itemID *string) ([]domain.Message, error) {
	if err := viewer.Require(); err != nil {
		return nil, err
	}
	otherUserID = strings.TrimSpace(otherUserID)
	if otherUserID == "" {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "other user id is required")
	}
	itemID, err := normalizeItemID(itemID)
	if err != nil {
		return nil, err
	}

	msgs, err := s.repo.Thread(ctx, viewer.MemberID, otherUserID, itemID)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("member[%s] other[%s] thread err : %v", viewer.MemberID, otherUserID, err))
	}
	return msgs, nil
}

// SendMessage 建立訊息後通知雙方的 change feed, 並寄送郵件給收件者
func (s *messageUseCase) SendMessage(ctx context.Context, viewer memberdomain.Viewer, req domain.SendMessageReq) (*domain.Message, error) {
	if err := viewer.Require(); err != nil {
		return nil, err
	}

	receiver := strings.TrimSpace(req.ReceiverID)
	content := strings.TrimSpace(req.Content)
	switch {
	case receiver == "":
		return nil, errprocess.Wrap(errprocess.ErrValidation, "receiver is required")
	case receiver == viewer.MemberID:
		return nil, errprocess.Wrap(errprocess.ErrValidation, "cannot send a message to yourself")
	case content == "":
		return nil, errprocess.Wrap(errprocess.ErrValidation, "message content is required")
	case utf8.RuneCountInString(content) > domain.MaxContentLength:
		return nil, errprocess.Wrap(errprocess.ErrValidation, "message exceeds %d characters", domain.MaxContentLength)
	}

	itemID, err := normalizeItemID(req.ItemID)
	if err != nil {
		return nil, err
	}
	var itemTitle *string
	if itemID != nil && s.items != nil {
		item, err := s.items.GetItem(ctx, *itemID)
		if err != nil {
			return nil, err
		}
		itemTitle = &item.Title
	}

	msg := &domain.Message{
		ID:         s.newID(),
		SenderID:   viewer.MemberID,
		ReceiverID: receiver,
		ItemID:     itemID,
		Content:    content,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("member[%s] -> [%s] 建立訊息失敗 : %v", viewer.MemberID, receiver, err))
	}
	msg.ItemTitle = itemTitle

	ev := domain.ChangeEvent{Kind: domain.ChangeInsert, MessageID: msg.ID, At: msg.CreatedAt}
	s.publish(ctx, ev, msg.SenderID, msg.ReceiverID)

	notice := *msg
	s.dispatch(func() { s.notify(viewer, notice) })

	logger.Log.Info("message sent", zap.String("message_id", msg.ID), zap.String("sender", msg.SenderID), zap.String("receiver", msg.ReceiverID))
	return msg, nil
}

// MarkRead 只影響 viewer 收到的訊息, 回傳實際更新筆數
func (s *messageUseCase) MarkRead(ctx context.Context, viewer memberdomain.Viewer, messageIDs []string) (int64, error) {
	if err := viewer.Require(); err != nil {
		return 0, err
	}

	ids := make([]string, 0, len(messageIDs))
	seen := make(map[string]struct{}, len(messageIDs))
	for _, id := range messageIDs {
		id = strings.TrimSpace(id)
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	n, err := s.repo.MarkRead(ctx, viewer.MemberID, ids)
	if err != nil {
		return 0, errprocess.Set(fmt.Sprintf("member[%s] mark read err : %v", viewer.MemberID, err))
	}
	if n > 0 {
		s.publish(ctx, domain.ChangeEvent{Kind: domain.ChangeUpdate, At: s.now()}, viewer.MemberID)
	}
	return n, nil
}

// UnreadCount receiver 為 viewer 且未讀的訊息數
func (s *messageUseCase) UnreadCount(ctx context.Context, viewer memberdomain.Viewer) (int, error) {
	if err := viewer.Require(); err != nil {
		return 0, err
	}
	n, err := s.repo.CountUnread(ctx, viewer.MemberID)
	if err != nil {
		return 0, errprocess.Set(fmt.Sprintf("member[%s] count unread err : %v", viewer.MemberID, err))
	}
	return int(n), nil
}

func (s *messageUseCase) publish(ctx context.Context, ev domain.ChangeEvent, userIDs ...string) {
	if s.feed == nil {
		return
	}
	for _, id := range userIDs {
		if err := s.feed.Publish(ctx, id, ev); err != nil {
			logger.Log.Warn("publish change feed", zap.String("member_id", id), zap.Error(err))
		}
	}
}

func (s *messageUseCase) notify(sender memberdomain.Viewer, msg domain.Message) {
	if s.profiles == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profiles, err := s.profiles.FindProfiles(ctx, []string{msg.SenderID, msg.ReceiverID})
	if err != nil {
		logger.Log.Warn("notify profiles lookup", zap.String("message_id", msg.ID), zap.Error(err))
		return
	}

	notice := mailer.MessageNotice{
		SenderName: memberdomain.DisplayName("", sender.Email, sender.MemberID),
		Preview:    msg.Content,
	}
	for _, p := range profiles {
		switch p.UserID {
		case msg.ReceiverID:
			notice.To = p.Email
		case msg.SenderID:
			notice.SenderName = p.DisplayName()
		}
	}
	if msg.ItemTitle != nil {
		notice.ItemTitle = *msg.ItemTitle
	}
	if notice.To == "" {
		return
	}

	if err := s.notifier.NotifyNewMessage(notice); err != nil {
		logger.Log.Warn("notify new message", zap.String("message_id", msg.ID), zap.Error(err))
	}
}

func normalizeItemID(itemID *string) (*string, error) {
	if itemID == nil {
		return nil, nil
	}
	id := strings.TrimSpace(*itemID)
	if id == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, errprocess.Wrap(errprocess.ErrValidation, "invalid item id %q", id)
	}
	return &id, nil
}
