package mocks

import (
	"sync"

	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/models"
)

// MockPostStorage оборачивает настоящее хранилище и возвращает Err из всех
// выборок списков, пока Err не nil. Нужен для проверки страницы 500.
type MockPostStorage struct {
	post.PostStorage

	mu  sync.Mutex
	err error
}

func NewMockPostStorage(inner post.PostStorage) *MockPostStorage {
	return &MockPostStorage{PostStorage: inner}
}

func (m *MockPostStorage) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockPostStorage) failure() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *MockPostStorage) GetPostByID(id uint) (*models.Post, error) {
	if err := m.failure(); err != nil {
		return nil, err
	}
	return m.PostStorage.GetPostByID(id)
}

func (m *MockPostStorage) AllPosts(limit, offset int) ([]*models.Post, int, error) {
	if err := m.failure(); err != nil {
		return nil, 0, err
	}
	return m.PostStorage.AllPosts(limit, offset)
}

func (m *MockPostStorage) GroupPosts(groupID uint, limit, offset int) ([]*models.Post, int, error) {
	if err := m.failure(); err != nil {
		return nil, 0, err
	}
	return m.PostStorage.GroupPosts(groupID, limit, offset)
}

func (m *MockPostStorage) AuthorPosts(authorID uint, limit, offset int) ([]*models.Post, int, error) {
	if err := m.failure(); err != nil {
		return nil, 0, err
	}
	return m.PostStorage.AuthorPosts(authorID, limit, offset)
}

func (m *MockPostStorage) FollowedPosts(followerID uint, limit, offset int) ([]*models.Post, int, error) {
	if err := m.failure(); err != nil {
		return nil, 0, err
	}
	return m.PostStorage.FollowedPosts(followerID, limit, offset)
}
