package repository

import (
	"context"

	"campus_lost_found/internal/message/domain"

	"gorm.io/gorm"
)

// MessageRepo definition message storage
type MessageRepo interface {
	AutoMigrate() error
	Create(ctx context.Context, msg *domain.Message) error
	ListForUser(ctx context.Context, userID string) ([]domain.Message, error)
	Thread(ctx context.Context, userID, otherID string, itemID *string) ([]domain.Message, error)
	MarkRead(ctx context.Context, receiverID string, ids []string) (int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepo create MessageRepo
func NewMessageRepo(db *gorm.DB) MessageRepo {
	return &messageRepo{db: db}
}

// AutoMigrate 建立 / 更新 messages 表結構
func (r *messageRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Message{})
}

func (r *messageRepo) Create(ctx context.Context, msg *domain.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListForUser 自己送出或收到的訊息, 附帶 item title, 新到舊
func (r *messageRepo) ListForUser(ctx context.Context, userID string) ([]domain.Message, error) {
	var msgs []domain.Message
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Select("messages.*, items.title AS item_title").
		Joins("LEFT JOIN items ON items.id = messages.item_id").
		Where("messages.sender_id = ? OR messages.receiver_id = ?", userID, userID).
		Order("messages.created_at DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Thread 雙向訊息, 舊到新; itemID nil 時只取未關聯 item 的訊息
func (r *messageRepo) Thread(ctx context.Context, userID, otherID string, itemID *string) ([]domain.Message, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Select("messages.*, items.title AS item_title").
		Joins("LEFT JOIN items ON items.id = messages.item_id").
		Where("(messages.sender_id = ? AND messages.receiver_id = ?) OR (messages.sender_id = ? AND messages.receiver_id = ?)",
			userID, otherID, otherID, userID)

	if itemID != nil && *itemID != "" {
		q = q.Where("messages.item_id = ?", *itemID)
	} else {
		q = q.Where("messages.item_id IS NULL")
	}

	var msgs []domain.Message
	if err := q.Order("messages.created_at ASC").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead 只會更新 receiver 為自己且尚未讀取的訊息
func (r *messageRepo) MarkRead(ctx context.Context, receiverID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("id IN ? AND receiver_id = ? AND is_read = ?", ids, receiverID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *messageRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}
