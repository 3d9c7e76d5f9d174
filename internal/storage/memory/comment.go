package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/models"
)

type CommentMemoryStorage struct {
	mu          sync.Mutex
	comments    map[uint]*models.Comment
	nextID      uint
	postStorage post.PostStorage // Хранилище постов (внедрение зависимости (DI))
	users       user.UserStorage
}

func NewCommentMemoryStorage(postStore post.PostStorage, users user.UserStorage) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments:    make(map[uint]*models.Comment),
		nextID:      1,
		postStorage: postStore,
		users:       users,
	}
}

func (s *CommentMemoryStorage) CreateComment(postID, authorID uint, text string) (*models.Comment, error) {
	if _, err := s.postStorage.GetPostByID(postID); err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}
	author, err := s.users.GetUserByID(authorID)
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	comment := &models.Comment{
		Text:     text,
		PostID:   postID,
		AuthorID: authorID,
	}
	comment.ID = s.nextID
	comment.CreatedAt = now
	comment.UpdatedAt = now
	s.nextID++
	s.comments[comment.ID] = comment

	result := *comment
	result.Author = *author
	return &result, nil
}

func (s *CommentMemoryStorage) GetComments(postID uint) ([]*models.Comment, error) {
	s.mu.Lock()
	var comments []*models.Comment
	for _, comment := range s.comments {
		if comment.PostID == postID {
			c := *comment
			comments = append(comments, &c)
		}
	}
	s.mu.Unlock()

	// Сортируем по CreatedAt (по возрастанию) и по ID при одинаковом времени создания
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	for _, c := range comments {
		if author, err := s.users.GetUserByID(c.AuthorID); err == nil {
			c.Author = *author
		}
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

func (s *CommentMemoryStorage) CountByAuthor(authorID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, comment := range s.comments {
		if comment.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}
