package router

import (
	"context"

	itemdomain "campus_lost_found/internal/item/domain"
	memberdomain "campus_lost_found/internal/member/domain"
	messagedomain "campus_lost_found/internal/message/domain"

	"github.com/stretchr/testify/mock"
)

// MockMemberUseCase 是 MemberUseCase 的 Mock
type MockMemberUseCase struct {
	mock.Mock
}

func (m *MockMemberUseCase) Register(ctx context.Context, email, password, fullName string) error {
	return m.Called(ctx, email, password, fullName).Error(0)
}

func (m *MockMemberUseCase) FindMember(ctx context.Context, param *memberdomain.MemberQuery) (*memberdomain.Member, error) {
	args := m.Called(ctx, param)
	if args.Get(0) != nil {
		return args.Get(0).(*memberdomain.Member), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberUseCase) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockMemberUseCase) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockMemberUseCase) ForceLogout(ctx context.Context, memberID string) error {
	return m.Called(ctx, memberID).Error(0)
}

func (m *MockMemberUseCase) CheckSessionTimeout(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberUseCase) ReconnectSession(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockMemberUseCase) Me(ctx context.Context, viewer memberdomain.Viewer) (*memberdomain.Profile, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) != nil {
		return args.Get(0).(*memberdomain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMemberUseCase) FindProfiles(ctx context.Context, ids []string) ([]memberdomain.Profile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) != nil {
		return args.Get(0).([]memberdomain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockItemUseCase 是 ItemUseCase 的 Mock
type MockItemUseCase struct {
	mock.Mock
}

func (m *MockItemUseCase) items(args mock.Arguments) ([]itemdomain.Item, error) {
	if args.Get(0) != nil {
		return args.Get(0).([]itemdomain.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemUseCase) item(args mock.Arguments) (*itemdomain.Item, error) {
	if args.Get(0) != nil {
		return args.Get(0).(*itemdomain.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemUseCase) ListItems(ctx context.Context, filter itemdomain.ItemFilter) ([]itemdomain.Item, error) {
	return m.items(m.Called(ctx, filter))
}

func (m *MockItemUseCase) GetItem(ctx context.Context, id string) (*itemdomain.Item, error) {
	return m.item(m.Called(ctx, id))
}

func (m *MockItemUseCase) ListUserItems(ctx context.Context, viewer memberdomain.Viewer) ([]itemdomain.Item, error) {
	return m.items(m.Called(ctx, viewer))
}

func (m *MockItemUseCase) CreateItem(ctx context.Context, viewer memberdomain.Viewer, req itemdomain.CreateItemReq) (*itemdomain.Item, error) {
	return m.item(m.Called(ctx, viewer, req))
}

func (m *MockItemUseCase) UploadImage(ctx context.Context, viewer memberdomain.Viewer, up itemdomain.ImageUpload) (string, error) {
	args := m.Called(ctx, viewer, up)
	return args.String(0), args.Error(1)
}

func (m *MockItemUseCase) ResolveItem(ctx context.Context, viewer memberdomain.Viewer, id, story string) (*itemdomain.Item, error) {
	return m.item(m.Called(ctx, viewer, id, story))
}

func (m *MockItemUseCase) RecentItems(ctx context.Context, limit int) ([]itemdomain.Item, error) {
	return m.items(m.Called(ctx, limit))
}

func (m *MockItemUseCase) SuccessStories(ctx context.Context, limit int) ([]itemdomain.Item, error) {
	return m.items(m.Called(ctx, limit))
}

func (m *MockItemUseCase) Stats(ctx context.Context) (*itemdomain.ItemStats, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).(*itemdomain.ItemStats), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMessageUseCase 是 MessageUseCase 的 Mock
type MockMessageUseCase struct {
	mock.Mock
}

func (m *MockMessageUseCase) ListConversations(ctx context.Context, viewer memberdomain.Viewer) ([]messagedomain.Conversation, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) != nil {
		return args.Get(0).([]messagedomain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageUseCase) ListThread(ctx context.Context, viewer memberdomain.Viewer, otherUserID string, itemID *string) ([]messagedomain.Message, error) {
	args := m.Called(ctx, viewer, otherUserID, itemID)
	if args.Get(0) != nil {
		return args.Get(0).([]messagedomain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageUseCase) SendMessage(ctx context.Context, viewer memberdomain.Viewer, req messagedomain.SendMessageReq) (*messagedomain.Message, error) {
	args := m.Called(ctx, viewer, req)
	if args.Get(0) != nil {
		return args.Get(0).(*messagedomain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageUseCase) MarkRead(ctx context.Context, viewer memberdomain.Viewer, ids []string) (int64, error) {
	args := m.Called(ctx, viewer, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageUseCase) UnreadCount(ctx context.Context, viewer memberdomain.Viewer) (int, error) {
	args := m.Called(ctx, viewer)
	return args.Int(0), args.Error(1)
}
