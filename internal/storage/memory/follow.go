package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/models"
)

type followKey struct {
	userID   uint
	authorID uint
}

type FollowMemoryStorage struct {
	mu      sync.Mutex
	follows map[followKey]*models.Follow
	nextID  uint
	users   user.UserStorage
}

func NewFollowMemoryStorage(users user.UserStorage) *FollowMemoryStorage {
	return &FollowMemoryStorage{
		follows: make(map[followKey]*models.Follow),
		nextID:  1,
		users:   users,
	}
}

func (s *FollowMemoryStorage) Follow(userID, authorID uint) (bool, error) {
	if userID == authorID {
		return false, storage.ErrSelfFollow
	}
	for _, id := range []uint{userID, authorID} {
		if _, err := s.users.GetUserByID(id); err != nil {
			return false, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := followKey{userID: userID, authorID: authorID}
	if _, exists := s.follows[key]; exists {
		return false, nil
	}

	s.follows[key] = &models.Follow{
		ID:        s.nextID,
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}
	s.nextID++
	return true, nil
}

func (s *FollowMemoryStorage) Unfollow(userID, authorID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.follows, followKey{userID: userID, authorID: authorID})
	return nil
}

func (s *FollowMemoryStorage) IsFollowing(userID, authorID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.follows[followKey{userID: userID, authorID: authorID}]
	return exists, nil
}

func (s *FollowMemoryStorage) FollowedAuthorIDs(userID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []uint{}
	for key := range s.follows {
		if key.userID == userID {
			ids = append(ids, key.authorID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *FollowMemoryStorage) CountFollowers(authorID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for key := range s.follows {
		if key.authorID == authorID {
			count++
		}
	}
	return count, nil
}

func (s *FollowMemoryStorage) CountFollowing(userID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for key := range s.follows {
		if key.userID == userID {
			count++
		}
	}
	return count, nil
}

// Len - общее количество подписок (для тестов)
func (s *FollowMemoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.follows)
}
