package repository

import (
	"context"
	"errors"
	"time"

	"campus_lost_found/internal/item/domain"
	errprocess "campus_lost_found/pkg/err"

	"gorm.io/gorm"
)

// ItemRepo definition get item info
type ItemRepo interface {
	AutoMigrate() error
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Item, error)
	Recent(ctx context.Context, limit int) ([]domain.Item, error)
	SuccessStories(ctx context.Context, limit int) ([]domain.Item, error)
	Stats(ctx context.Context) (*domain.ItemStats, error)
	MarkResolved(ctx context.Context, id string, story *string, at time.Time) (bool, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepo create ItemRepo
func NewItemRepo(db *gorm.DB) ItemRepo {
	return &itemRepo{db: db}
}

// AutoMigrate 建立 / 更新 items 表結構
func (r *itemRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Item{})
}

func (r *itemRepo) Create(ctx context.Context, item *domain.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	var it domain.Item
	if err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errprocess.Wrap(errprocess.ErrNotFound, "item[%s] not found", id)
		}
		return nil, err
	}
	return &it, nil
}

// List 條件皆為 AND, search 以 ILIKE 對 title/description/location 做 OR
func (r *itemRepo) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	f := filter.Normalize()
	q := r.db.WithContext(ctx).Model(&domain.Item{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		like := domain.LikePattern(f.Search)
		q = q.Where("(title ILIKE ? OR description ILIKE ? OR location ILIKE ?)", like, like, like)
	}

	var items []domain.Item
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) ListByUser(ctx context.Context, userID string) ([]domain.Item, error) {
	var items []domain.Item
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Recent 最新未解決的項目
func (r *itemRepo) Recent(ctx context.Context, limit int) ([]domain.Item, error) {
	var items []domain.Item
	if err := r.db.WithContext(ctx).
		Where("is_resolved = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SuccessStories resolved items with a story, newest resolution first
func (r *itemRepo) SuccessStories(ctx context.Context, limit int) ([]domain.Item, error) {
	var items []domain.Item
	if err := r.db.WithContext(ctx).
		Where("is_resolved = ? AND success_story IS NOT NULL AND success_story <> ''", true).
		Order("COALESCE(resolved_at, updated_at) DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) Stats(ctx context.Context) (*domain.ItemStats, error) {
	var s domain.ItemStats
	err := r.db.WithContext(ctx).Model(&domain.Item{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = ?) AS lost,
			COUNT(*) FILTER (WHERE status = ?) AS found,
			COUNT(*) FILTER (WHERE is_resolved) AS resolved`, domain.ItemLost, domain.ItemFound).
		Scan(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// MarkResolved 只更新尚未解決的紀錄, false = 已被解決
func (r *itemRepo) MarkResolved(ctx context.Context, id string, story *string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Item{}).
		Where("id = ? AND is_resolved = ?", id, false).
		Updates(map[string]interface{}{
			"is_resolved":   true,
			"success_story": story,
			"resolved_at":   at,
			"updated_at":    at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
