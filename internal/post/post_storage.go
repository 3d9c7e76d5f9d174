package post

import (
	"github.com/VitaminP8/yatube/models"
)

// PostStorage - хранилище постов.
// Все выборки списков отдают посты от новых к старым вместе с общим количеством,
// у каждого поста заполнены Author и Group.
type PostStorage interface {
	CreatePost(authorID uint, groupID *uint, text, image string) (*models.Post, error)
	GetPostByID(id uint) (*models.Post, error)
	UpdatePost(postID uint, groupID *uint, text, image string) (*models.Post, error)
	CountByAuthor(authorID uint) (int, error)

	AllPosts(limit, offset int) ([]*models.Post, int, error)
	GroupPosts(groupID uint, limit, offset int) ([]*models.Post, int, error)
	AuthorPosts(authorID uint, limit, offset int) ([]*models.Post, int, error)
	FollowedPosts(followerID uint, limit, offset int) ([]*models.Post, int, error)
}
