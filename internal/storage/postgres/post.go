package postgres

import (
	"fmt"

	"github.com/VitaminP8/yatube/models"
	"github.com/jinzhu/gorm"
)

type PostPostgresStorage struct{}

func NewPostPostgresStorage() *PostPostgresStorage {
	return &PostPostgresStorage{}
}

func (s *PostPostgresStorage) CreatePost(authorID uint, groupID *uint, text, image string) (*models.Post, error) {
	if err := checkPostRefs(authorID, groupID); err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	post := &models.Post{
		Text:     text,
		AuthorID: authorID,
		GroupID:  groupID,
		Image:    image,
	}

	err := DB.Set("gorm:save_associations", false).Create(post).Error
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return s.GetPostByID(post.ID)
}

func (s *PostPostgresStorage) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	err := withRelations(DB).First(&post, id).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("post %d", id))
	}
	return &post, nil
}

func (s *PostPostgresStorage) UpdatePost(postID uint, groupID *uint, text, image string) (*models.Post, error) {
	var post models.Post
	err := DB.First(&post, postID).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("post %d", postID))
	}
	if err := checkPostRefs(post.AuthorID, groupID); err != nil {
		return nil, fmt.Errorf("could not update post: %w", err)
	}

	// map, чтобы gorm записал и обнуление group_id, и пустую картинку
	err = DB.Model(&models.Post{}).Where("id = ?", postID).Updates(map[string]interface{}{
		"text":     text,
		"group_id": groupID,
		"image":    image,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("could not update post: %w", err)
	}

	return s.GetPostByID(postID)
}

func (s *PostPostgresStorage) CountByAuthor(authorID uint) (int, error) {
	var count int
	err := DB.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count posts: %w", err)
	}
	return count, nil
}

func (s *PostPostgresStorage) AllPosts(limit, offset int) ([]*models.Post, int, error) {
	return listPosts(DB.Model(&models.Post{}), limit, offset)
}

func (s *PostPostgresStorage) GroupPosts(groupID uint, limit, offset int) ([]*models.Post, int, error) {
	return listPosts(DB.Model(&models.Post{}).Where("group_id = ?", groupID), limit, offset)
}

func (s *PostPostgresStorage) AuthorPosts(authorID uint, limit, offset int) ([]*models.Post, int, error) {
	return listPosts(DB.Model(&models.Post{}).Where("author_id = ?", authorID), limit, offset)
}

func (s *PostPostgresStorage) FollowedPosts(followerID uint, limit, offset int) ([]*models.Post, int, error) {
	query := DB.Model(&models.Post{}).
		Where("author_id IN (SELECT author_id FROM follows WHERE user_id = ?)", followerID)
	return listPosts(query, limit, offset)
}

// listPosts считает все подходящие посты и отдает окно от новых к старым
func listPosts(query *gorm.DB, limit, offset int) ([]*models.Post, int, error) {
	var total int
	err := query.Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not count posts: %w", err)
	}

	var posts []models.Post
	err = window(withRelations(query).Order("created_at DESC, id DESC"), limit, offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not get posts: %w", err)
	}

	results := make([]*models.Post, 0, len(posts))
	for i := range posts {
		results = append(results, &posts[i])
	}
	return results, total, nil
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Group")
}

func checkPostRefs(authorID uint, groupID *uint) error {
	var author models.User
	if err := DB.Select("id").First(&author, authorID).Error; err != nil {
		return notFound(err, fmt.Sprintf("user %d", authorID))
	}
	if groupID != nil {
		var group models.Group
		if err := DB.First(&group, *groupID).Error; err != nil {
			return notFound(err, fmt.Sprintf("group %d", *groupID))
		}
	}
	return nil
}
