package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/models"

	"golang.org/x/crypto/bcrypt"
)

type UserMemoryStorage struct {
	mu         sync.Mutex
	users      map[uint]*models.User
	byUsername map[string]uint
	nextID     uint
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:      make(map[uint]*models.User),
		byUsername: make(map[string]uint),
		nextID:     1,
	}
}

func (s *UserMemoryStorage) RegisterUser(username, email, password string) (*models.User, error) {
	if err := user.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("user %q: %w", username, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[username]; exists {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrAlreadyExists)
	}

	now := time.Now()
	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}
	user.ID = s.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.nextID++

	s.users[user.ID] = user
	s.byUsername[username] = user.ID

	return copyUser(user), nil
}

func (s *UserMemoryStorage) Authenticate(username, password string) (*models.User, error) {
	s.mu.Lock()
	id, exists := s.byUsername[username]
	var hashedPassword string
	if exists {
		hashedPassword = s.users[id].Password
	}
	s.mu.Unlock()

	if !exists {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrInvalidCredentials)
	}

	// bcrypt медленный, сравниваем без блокировки
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrInvalidCredentials)
	}

	return s.GetUserByID(id)
}

func (s *UserMemoryStorage) GetUserByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	return copyUser(user), nil
}

func (s *UserMemoryStorage) GetUserByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.byUsername[username]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrNotFound)
	}
	return copyUser(s.users[id]), nil
}

func (s *UserMemoryStorage) ListUsers(limit, offset int) ([]*models.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		a, b := strings.ToLower(users[i].Username), strings.ToLower(users[j].Username)
		if a != b {
			return a < b
		}
		return users[i].ID < users[j].ID
	})

	window := slice(users, limit, offset)
	result := make([]*models.User, 0, len(window))
	for _, user := range window {
		result = append(result, copyUser(user))
	}
	return result, len(users), nil
}

// copyUser отдает копию без хеша пароля
func copyUser(user *models.User) *models.User {
	c := *user
	c.Password = ""
	return &c
}
