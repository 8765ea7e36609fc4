package http

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
	"github.com/vadimbarashkov/ngo-site/internal/usecase"
)

type mockURLUseCase struct {
	mock.Mock
}

func (m *mockURLUseCase) ShortenURL(ctx context.Context, originalURL string) (*entity.URL, error) {
	args := m.Called(ctx, originalURL)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLUseCase) GetURLStats(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

type mockContentUseCase struct {
	mock.Mock
}

func (m *mockContentUseCase) Collections() []entity.CollectionInfo {
	args := m.Called()
	infos, _ := args.Get(0).([]entity.CollectionInfo)
	return infos
}

func (m *mockContentUseCase) ListPosts(params usecase.ListPostsParams) (*entity.Page[*entity.Post], error) {
	args := m.Called(params)
	page, _ := args.Get(0).(*entity.Page[*entity.Post])
	return page, args.Error(1)
}

func (m *mockContentUseCase) GetPost(collection, slug string) (*entity.Post, error) {
	args := m.Called(collection, slug)
	post, _ := args.Get(0).(*entity.Post)
	return post, args.Error(1)
}

func (m *mockContentUseCase) RelatedPosts(collection, slug string, limit int) ([]*entity.Post, error) {
	args := m.Called(collection, slug, limit)
	posts, _ := args.Get(0).([]*entity.Post)
	return posts, args.Error(1)
}

func (m *mockContentUseCase) Categories(collection string) ([]entity.TermCount, error) {
	args := m.Called(collection)
	terms, _ := args.Get(0).([]entity.TermCount)
	return terms, args.Error(1)
}

func (m *mockContentUseCase) Tags(collection string) ([]entity.TermCount, error) {
	args := m.Called(collection)
	terms, _ := args.Get(0).([]entity.TermCount)
	return terms, args.Error(1)
}

type mockBoardUseCase struct {
	mock.Mock
}

func (m *mockBoardUseCase) GetBoard(ctx context.Context) (*entity.ProjectBoard, error) {
	args := m.Called(ctx)
	board, _ := args.Get(0).(*entity.ProjectBoard)
	return board, args.Error(1)
}

type mockEventsUseCase struct {
	mock.Mock
}

func (m *mockEventsUseCase) UpcomingEvents(ctx context.Context, limit int) ([]entity.CalendarEvent, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]entity.CalendarEvent)
	return events, args.Error(1)
}

type mockOutreachUseCase struct {
	mock.Mock
}

func (m *mockOutreachUseCase) SubmitContact(ctx context.Context, msg entity.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutreachUseCase) Subscribe(ctx context.Context, sub entity.Subscriber) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
