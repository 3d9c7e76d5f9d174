package postgres

import (
	"fmt"

	"github.com/VitaminP8/yatube/models"
)

type CommentPostgresStorage struct{}

func NewCommentPostgresStorage() *CommentPostgresStorage {
	return &CommentPostgresStorage{}
}

func (s *CommentPostgresStorage) CreateComment(postID, authorID uint, text string) (*models.Comment, error) {
	var post models.Post
	err := DB.Select("id").First(&post, postID).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("post %d", postID))
	}

	var author models.User
	err = DB.First(&author, authorID).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("user %d", authorID))
	}

	comment := &models.Comment{
		Text:     text,
		PostID:   postID,
		AuthorID: authorID,
	}

	err = DB.Set("gorm:save_associations", false).Create(comment).Error
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	author.Password = ""
	comment.Author = author
	return comment, nil
}

func (s *CommentPostgresStorage) GetComments(postID uint) ([]*models.Comment, error) {
	var comments []models.Comment
	err := DB.Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	results := make([]*models.Comment, 0, len(comments))
	for i := range comments {
		results = append(results, &comments[i])
	}
	return results, nil
}

func (s *CommentPostgresStorage) CountByAuthor(authorID uint) (int, error) {
	var count int
	err := DB.Model(&models.Comment{}).Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count comments: %w", err)
	}
	return count, nil
}
