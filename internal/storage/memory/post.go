package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/follow"
	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/models"
)

type PostMemoryStorage struct {
	mu     sync.Mutex
	posts  map[uint]*models.Post
	nextID uint

	// Хранилища, из которых подтягиваются автор, группа и подписки (внедрение зависимостей)
	users   user.UserStorage
	groups  group.GroupStorage
	follows follow.FollowStorage
}

func NewPostMemoryStorage(users user.UserStorage, groups group.GroupStorage, follows follow.FollowStorage) *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:   make(map[uint]*models.Post),
		nextID:  1,
		users:   users,
		groups:  groups,
		follows: follows,
	}
}

func (s *PostMemoryStorage) CreatePost(authorID uint, groupID *uint, text, image string) (*models.Post, error) {
	if _, err := s.users.GetUserByID(authorID); err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}
	if groupID != nil {
		if _, err := s.groups.GetGroupByID(*groupID); err != nil {
			return nil, fmt.Errorf("could not create post: %w", err)
		}
	}

	s.mu.Lock()
	now := time.Now()
	post := &models.Post{
		Text:     text,
		AuthorID: authorID,
		GroupID:  copyID(groupID),
		Image:    image,
	}
	post.ID = s.nextID
	post.CreatedAt = now
	post.UpdatedAt = now
	s.nextID++
	s.posts[post.ID] = post
	stored := *post
	s.mu.Unlock()

	return s.attach(&stored), nil
}

func (s *PostMemoryStorage) GetPostByID(id uint) (*models.Post, error) {
	s.mu.Lock()
	post, exists := s.posts[id]
	var stored models.Post
	if exists {
		stored = *post
	}
	s.mu.Unlock()

	if !exists {
		return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}
	return s.attach(&stored), nil
}

func (s *PostMemoryStorage) UpdatePost(postID uint, groupID *uint, text, image string) (*models.Post, error) {
	if groupID != nil {
		if _, err := s.groups.GetGroupByID(*groupID); err != nil {
			return nil, fmt.Errorf("could not update post: %w", err)
		}
	}

	s.mu.Lock()
	post, exists := s.posts[postID]
	if !exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("post %d: %w", postID, storage.ErrNotFound)
	}
	post.Text = text
	post.GroupID = copyID(groupID)
	post.Image = image
	post.UpdatedAt = time.Now()
	stored := *post
	s.mu.Unlock()

	return s.attach(&stored), nil
}

func (s *PostMemoryStorage) CountByAuthor(authorID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, post := range s.posts {
		if post.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (s *PostMemoryStorage) AllPosts(limit, offset int) ([]*models.Post, int, error) {
	return s.list(func(*models.Post) bool { return true }, limit, offset)
}

func (s *PostMemoryStorage) GroupPosts(groupID uint, limit, offset int) ([]*models.Post, int, error) {
	return s.list(func(p *models.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	}, limit, offset)
}

func (s *PostMemoryStorage) AuthorPosts(authorID uint, limit, offset int) ([]*models.Post, int, error) {
	return s.list(func(p *models.Post) bool {
		return p.AuthorID == authorID
	}, limit, offset)
}

func (s *PostMemoryStorage) FollowedPosts(followerID uint, limit, offset int) ([]*models.Post, int, error) {
	ids, err := s.follows.FollowedAuthorIDs(followerID)
	if err != nil {
		return nil, 0, fmt.Errorf("could not get followed authors: %w", err)
	}

	authors := make(map[uint]bool, len(ids))
	for _, id := range ids {
		authors[id] = true
	}
	return s.list(func(p *models.Post) bool {
		return authors[p.AuthorID]
	}, limit, offset)
}

// list фильтрует посты, сортирует от новых к старым и вырезает окно
func (s *PostMemoryStorage) list(match func(*models.Post) bool, limit, offset int) ([]*models.Post, int, error) {
	s.mu.Lock()
	var matched []models.Post
	for _, post := range s.posts {
		if match(post) {
			matched = append(matched, *post)
		}
	}
	s.mu.Unlock()

	// Сортируем по CreatedAt (по убыванию) и по ID при одинаковом времени создания
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	window := slice(matched, limit, offset)
	result := make([]*models.Post, 0, len(window))
	for i := range window {
		result = append(result, s.attach(&window[i]))
	}
	return result, len(matched), nil
}

// attach заполняет Author и Group. Вызывается без s.mu.
func (s *PostMemoryStorage) attach(post *models.Post) *models.Post {
	if author, err := s.users.GetUserByID(post.AuthorID); err == nil {
		post.Author = *author
	}
	post.Group = nil
	if post.GroupID != nil {
		if g, err := s.groups.GetGroupByID(*post.GroupID); err == nil {
			post.Group = g
		}
	}
	return post
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
