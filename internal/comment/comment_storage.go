package comment

import (
	"github.com/VitaminP8/yatube/models"
)

type CommentStorage interface {
	CreateComment(postID, authorID uint, text string) (*models.Comment, error)
	// GetComments отдает комментарии поста от старых к новым
	GetComments(postID uint) ([]*models.Comment, error)
	CountByAuthor(authorID uint) (int, error)
}
