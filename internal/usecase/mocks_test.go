package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

type mockURLRepository struct {
	mock.Mock
}

func (m *mockURLRepository) Save(ctx context.Context, shortCode, originalURL string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode, originalURL)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLRepository) RetrieveAndUpdateStats(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLRepository) Remove(ctx context.Context, shortCode string) error {
	args := m.Called(ctx, shortCode)
	return args.Error(0)
}

type mockContentRepository struct {
	mock.Mock
}

func (m *mockContentRepository) Collections() []entity.CollectionInfo {
	args := m.Called()
	infos, _ := args.Get(0).([]entity.CollectionInfo)
	return infos
}

func (m *mockContentRepository) ListByCollection(collection string) ([]*entity.Post, error) {
	args := m.Called(collection)
	posts, _ := args.Get(0).([]*entity.Post)
	return posts, args.Error(1)
}

func (m *mockContentRepository) FindBySlug(collection, slug string) (*entity.Post, error) {
	args := m.Called(collection, slug)
	post, _ := args.Get(0).(*entity.Post)
	return post, args.Error(1)
}

type mockBoardGateway struct {
	mock.Mock
}

func (m *mockBoardGateway) FetchBoard(ctx context.Context) (*entity.ProjectBoard, error) {
	args := m.Called(ctx)
	board, _ := args.Get(0).(*entity.ProjectBoard)
	return board, args.Error(1)
}

type mockCalendarGateway struct {
	mock.Mock
}

func (m *mockCalendarGateway) UpcomingEvents(ctx context.Context, limit int) ([]entity.CalendarEvent, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]entity.CalendarEvent)
	return events, args.Error(1)
}

type mockContactSender struct {
	mock.Mock
}

func (m *mockContactSender) SendContact(ctx context.Context, msg entity.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type mockNewsletterGateway struct {
	mock.Mock
}

func (m *mockNewsletterGateway) Subscribe(ctx context.Context, sub entity.Subscriber) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
