package app

import (
	"context"
	"sort"
	"sync"

	itemdomain "campus_lost_found/internal/item/domain"
	memberdomain "campus_lost_found/internal/member/domain"
	"campus_lost_found/internal/message/domain"
	"campus_lost_found/pkg/mailer"

	"github.com/stretchr/testify/mock"
)

// MockMessageRepo 是 MessageRepo 的 Mock
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepo) ListForUser(ctx context.Context, userID string) ([]domain.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepo) Thread(ctx context.Context, userID, otherID string, itemID *string) ([]domain.Message, error) {
	args := m.Called(ctx, userID, otherID, itemID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMessageRepo) MarkRead(ctx context.Context, receiverID string, ids []string) (int64, error) {
	args := m.Called(ctx, receiverID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProfiles 是 ProfileLookup 的 Mock
type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) FindProfiles(ctx context.Context, ids []string) ([]memberdomain.Profile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) != nil {
		return args.Get(0).([]memberdomain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockItems 是 ItemLookup 的 Mock
type MockItems struct {
	mock.Mock
}

func (m *MockItems) GetItem(ctx context.Context, id string) (*itemdomain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*itemdomain.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockNotifier 是 mailer.Notifier 的 Mock
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewMessage(n mailer.MessageNotice) error {
	args := m.Called(n)
	return args.Error(0)
}

// fakeFeed 記錄 publish, 並由測試控制 subscribe channel
type fakeFeed struct {
	mu        sync.Mutex
	published map[string][]domain.ChangeEvent
	events    chan domain.ChangeEvent
	subErr    error
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{published: map[string][]domain.ChangeEvent{}, events: make(chan domain.ChangeEvent, 16)}
}

func (f *fakeFeed) Publish(_ context.Context, userID string, ev domain.ChangeEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published[userID] = append(f.published[userID], ev)
	return nil
}

func (f *fakeFeed) Subscribe(ctx context.Context, _ string) (<-chan domain.ChangeEvent, error) {
	if f.subErr != nil {
		return nil, f.subErr
	}
	out := make(chan domain.ChangeEvent)
	go func() {
		defer close(out)
		for {
			select {
			case ev := <-f.events:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (f *fakeFeed) publishedTo(userID string) []domain.ChangeEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ChangeEvent(nil), f.published[userID]...)
}

// memRepo in-memory MessageRepo
type memRepo struct {
	mu   sync.Mutex
	msgs []domain.Message
}

func (r *memRepo) AutoMigrate() error { return nil }

func (r *memRepo) Create(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *memRepo) ListForUser(_ context.Context, userID string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.msgs {
		if m.Involves(userID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) Thread(_ context.Context, userID, otherID string, itemID *string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.msgs {
		if !(m.SenderID == userID && m.ReceiverID == otherID) && !(m.SenderID == otherID && m.ReceiverID == userID) {
			continue
		}
		if domain.KeyOf(otherID, m.ItemID) != domain.KeyOf(otherID, itemID) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) MarkRead(_ context.Context, receiverID string, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var n int64
	for i := range r.msgs {
		if want[r.msgs[i].ID] && r.msgs[i].ReceiverID == receiverID && !r.msgs[i].IsRead {
			r.msgs[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (r *memRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.msgs {
		if m.IsUnreadFor(userID) {
			n++
		}
	}
	return n, nil
}
