// Package feed собирает постраничные ленты постов поверх хранилища.
package feed

import (
	"errors"

	"github.com/VitaminP8/yatube/internal/access"
	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/pagination"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/models"
)

// ErrLoginRequired - ленту подписок запросил анонимный пользователь
var ErrLoginRequired = errors.New("login required")

type PostPage = pagination.Page[*models.Post]

type Service struct {
	posts    post.PostStorage
	pageSize int
}

func NewService(posts post.PostStorage, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = pagination.DefaultSize
	}
	return &Service{posts: posts, pageSize: pageSize}
}

func (s *Service) PageSize() int {
	return s.pageSize
}

// All - все посты, от новых к старым
func (s *Service) All(page string) (*PostPage, error) {
	return pagination.Fetch[*models.Post](page, s.pageSize, s.posts.AllPosts)
}

func (s *Service) ByGroup(group *models.Group, page string) (*PostPage, error) {
	return pagination.Fetch[*models.Post](page, s.pageSize, func(limit, offset int) ([]*models.Post, int, error) {
		return s.posts.GroupPosts(group.ID, limit, offset)
	})
}

func (s *Service) ByAuthor(author *models.User, page string) (*PostPage, error) {
	return pagination.Fetch[*models.Post](page, s.pageSize, func(limit, offset int) ([]*models.Post, int, error) {
		return s.posts.AuthorPosts(author.ID, limit, offset)
	})
}

// Followed - посты авторов, на которых подписан who. Без подписок лента пустая.
func (s *Service) Followed(who *auth.Identity, page string) (*PostPage, error) {
	if access.FollowFeed(who) != access.Allow {
		return nil, ErrLoginRequired
	}
	return pagination.Fetch[*models.Post](page, s.pageSize, func(limit, offset int) ([]*models.Post, int, error) {
		return s.posts.FollowedPosts(who.ID, limit, offset)
	})
}
