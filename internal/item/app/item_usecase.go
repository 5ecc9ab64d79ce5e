package app

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"strings"
	"time"

	"campus_lost_found/internal/item/domain"
	"campus_lost_found/internal/item/repository"
	memberdomain "campus_lost_found/internal/member/domain"
	"campus_lost_found/pkg/database"
	errprocess "campus_lost_found/pkg/err"
	"campus_lost_found/pkg/logger"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// ItemUseCase 這裡封裝了對外提供的應用服務
type ItemUseCase interface {
	ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	ListUserItems(ctx context.Context, viewer memberdomain.Viewer) ([]domain.Item, error)
	CreateItem(ctx context.Context, viewer memberdomain.Viewer, req domain.CreateItemReq) (*domain.Item, error)
	UploadImage(ctx context.Context, viewer memberdomain.Viewer, up domain.ImageUpload) (string, error)
	ResolveItem(ctx context.Context, viewer memberdomain.Viewer, id, successStory string) (*domain.Item, error)
	RecentItems(ctx context.Context, limit int) ([]domain.Item, error)
	SuccessStories(ctx context.Context, limit int) ([]domain.Item, error)
	Stats(ctx context.Context) (*domain.ItemStats, error)
}

const (
	defaultListLimit = 6
	maxListLimit     = 50
	imagePrefix      = "items/"
)

type itemUseCase struct {
	storage       database.ObjectStorage
	repo          repository.ItemRepo
	rabbit        database.RabbitRepo // 發布 image_cleanup 工作
	maxImageBytes int64
	now           func() time.Time
	newID         func() string
}

// NewItemUseCase 建立一個新的 ItemUseCase
func NewItemUseCase(storage database.ObjectStorage,
	repo repository.ItemRepo,
	rabbit database.RabbitRepo,
	maxImageBytes int64,
) ItemUseCase {
	return &itemUseCase{
		storage:       storage,
		repo:          repo,
		rabbit:        rabbit,
		maxImageBytes: maxImageBytes,
		now:           time.Now,
		newID:         func() string { return uuid.New().String() },
	}
}

// ListItems filter query, created_at desc
func (s *itemUseCase) ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	f := filter.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("filter[%+v] list items err : %v", f, err))
	}
	return items, nil
}

// GetItem get item by id
func (s *itemUseCase) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errprocess.Wrap(errprocess.ErrNotFound, "item[%s] not found", id)
	}
	return s.repo.GetByID(ctx, id)
}

// ListUserItems viewer 自己的項目
func (s *itemUseCase) ListUserItems(ctx context.Context, viewer memberdomain.Viewer) ([]domain.Item, error) {
	if err := viewer.Require(); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByUser(ctx, viewer.MemberID)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("member[%s] list items err : %v", viewer.MemberID, err))
	}
	return items, nil
}

// CreateItem 1. 驗證 2. 上傳圖片取得公開 url 3. 建立紀錄
// 上傳失敗不建立紀錄; 建立失敗則發布 cleanup job 刪除已上傳的圖片
func (s *itemUseCase) CreateItem(ctx context.Context, viewer memberdomain.Viewer, req domain.CreateItemReq) (*domain.Item, error) {
	if err := viewer.Require(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ContactEmail) == "" {
		req.ContactEmail = viewer.Email
	}
	item, err := req.ToItem()
	if err != nil {
		return nil, err
	}

	var objectName string
	if req.Image != nil {
		objectName, err = s.putImage(ctx, *req.Image)
		if err != nil {
			return nil, err
		}
		url := s.storage.PublicURL(objectName)
		item.ImageURL = &url
	}

	now := s.now()
	item.ID = s.newID()
	item.UserID = viewer.MemberID
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.repo.Create(ctx, item); err != nil {
		if objectName != "" {
			s.scheduleCleanup(objectName, "create item failed")
		}
		return nil, errprocess.Set(fmt.Sprintf("title[%s] 資料庫建立項目失敗 : %v", item.Title, err))
	}

	logger.Log.Info("item created", zap.String("item_id", item.ID), zap.String("member_id", viewer.MemberID))
	return item, nil
}

// UploadImage 單獨上傳, 回傳公開 url
func (s *itemUseCase) UploadImage(ctx context.Context, viewer memberdomain.Viewer, up domain.ImageUpload) (string, error) {
	if err := viewer.Require(); err != nil {
		return "", err
	}
	objectName, err := s.putImage(ctx, up)
	if err != nil {
		return "", err
	}
	return s.storage.PublicURL(objectName), nil
}

func (s *itemUseCase) putImage(ctx context.Context, up domain.ImageUpload) (string, error) {
	if err := up.Validate(s.maxImageBytes); err != nil {
		return "", err
	}

	// items/<uuid>.<ext>
	objectName := fmt.Sprintf("%s%s.%s", imagePrefix, s.newID(), up.Ext())
	contentType := up.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension("." + up.Ext())
	}

	if err := s.storage.PutObject(ctx, objectName, up.File, up.Size, contentType); err != nil {
		return "", errprocess.Set(fmt.Sprintf("fileName[%s] 上傳 MinIO 失敗 : %v", up.FileName, err))
	}
	return objectName, nil
}

func (s *itemUseCase) scheduleCleanup(objectName, reason string) {
	fields := []zap.Field{zap.String("object", objectName), zap.String("reason", reason)}
	if s.rabbit == nil {
		logger.Log.Error("orphaned image, no cleanup queue", fields...)
		return
	}

	data, err := json.Marshal(domain.ImageCleanupJob{ObjectName: objectName, Reason: reason})
	if err != nil {
		logger.Log.Error("orphaned image, marshal cleanup job err", append(fields, zap.Error(err))...)
		return
	}
	err = s.rabbit.Publish(
		"",               // 預設 exchange
		domain.QueueName, // queue 名稱
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         data,
		},
	)
	if err != nil {
		logger.Log.Error("orphaned image, publish cleanup job err", append(fields, zap.Error(err))...)
		return
	}
	logger.Log.Warn("image cleanup scheduled", fields...)
}

// ResolveItem owner only, 不可逆
func (s *itemUseCase) ResolveItem(ctx context.Context, viewer memberdomain.Viewer, id, successStory string) (*domain.Item, error) {
	if err := viewer.Require(); err != nil {
		return nil, err
	}
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.UserID != viewer.MemberID {
		return nil, errprocess.Wrap(errprocess.ErrForbidden, "only the owner can resolve item[%s]", id)
	}
	if item.IsResolved {
		return nil, errprocess.Wrap(errprocess.ErrConflict, "item[%s] already resolved", id)
	}

	var story *string
	if st := strings.TrimSpace(successStory); st != "" {
		story = &st
	}
	now := s.now()

	ok, err := s.repo.MarkResolved(ctx, id, story, now)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("item[%s] resolve err : %v", id, err))
	}
	if !ok {
		return nil, errprocess.Wrap(errprocess.ErrConflict, "item[%s] already resolved", id)
	}

	item.IsResolved = true
	item.SuccessStory = story
	item.ResolvedAt = &now
	item.UpdatedAt = now
	return item, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// RecentItems 首頁最新項目
func (s *itemUseCase) RecentItems(ctx context.Context, limit int) ([]domain.Item, error) {
	items, err := s.repo.Recent(ctx, clampLimit(limit))
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("limit[%d] recent items err : %v", limit, err))
	}
	return items, nil
}

// SuccessStories 已解決且有故事的項目
func (s *itemUseCase) SuccessStories(ctx context.Context, limit int) ([]domain.Item, error) {
	items, err := s.repo.SuccessStories(ctx, clampLimit(limit))
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("limit[%d] success stories err : %v", limit, err))
	}
	return items, nil
}

// Stats totals
func (s *itemUseCase) Stats(ctx context.Context) (*domain.ItemStats, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("item stats err : %v", err))
	}
	return st, nil
}
