package app

import (
	"context"
	"io"
	"time"

	"campus_lost_found/internal/item/domain"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/mock"
)

// MockStorage 是 ObjectStorage 的 Mock
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) PutObject(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, objectName, r, size, contentType)
	return args.Error(0)
}

func (m *MockStorage) RemoveObject(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockStorage) PublicURL(objectName string) string {
	args := m.Called(objectName)
	return args.String(0)
}

// MockItemRepo 是 ItemRepo 的 Mock
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) AutoMigrate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemRepo) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemRepo) ListByUser(ctx context.Context, userID string) ([]domain.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemRepo) Recent(ctx context.Context, limit int) ([]domain.Item, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemRepo) SuccessStories(ctx context.Context, limit int) ([]domain.Item, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemRepo) Stats(ctx context.Context) (*domain.ItemStats, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ItemStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItemRepo) MarkResolved(ctx context.Context, id string, story *string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, story, at)
	return args.Bool(0), args.Error(1)
}

// MockRabbitChannel 是 RabbitRepo 的 Mock
type MockRabbitChannel struct {
	mock.Mock
}

func (m *MockRabbitChannel) GetRabbit() *amqp.Channel {
	args := m.Called()
	return args.Get(0).(*amqp.Channel)
}

func (m *MockRabbitChannel) DeclareQueue(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockRabbitChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *MockRabbitChannel) Consume(queue, consumer string) (<-chan amqp.Delivery, error) {
	args := m.Called(queue, consumer)
	if args.Get(0) != nil {
		return args.Get(0).(<-chan amqp.Delivery), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAcknowledger 記錄 ack / nack
type MockAcknowledger struct {
	mock.Mock
}

func (m *MockAcknowledger) Ack(tag uint64, multiple bool) error {
	args := m.Called(tag, multiple)
	return args.Error(0)
}

func (m *MockAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	args := m.Called(tag, multiple, requeue)
	return args.Error(0)
}

func (m *MockAcknowledger) Reject(tag uint64, requeue bool) error {
	args := m.Called(tag, requeue)
	return args.Error(0)
}
