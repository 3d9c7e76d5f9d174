package postgres

import (
	"fmt"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
	"github.com/jinzhu/gorm"
)

type FollowPostgresStorage struct{}

func NewFollowPostgresStorage() *FollowPostgresStorage {
	return &FollowPostgresStorage{}
}

func (s *FollowPostgresStorage) Follow(userID, authorID uint) (bool, error) {
	if userID == authorID {
		return false, storage.ErrSelfFollow
	}
	for _, id := range []uint{userID, authorID} {
		var user models.User
		if err := DB.Select("id").First(&user, id).Error; err != nil {
			return false, notFound(err, fmt.Sprintf("user %d", id))
		}
	}

	var existFollow models.Follow
	err := DB.Where("user_id = ? AND author_id = ?", userID, authorID).First(&existFollow).Error
	if err == nil {
		return false, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return false, fmt.Errorf("could not check follow: %w", err)
	}

	err = DB.Create(&models.Follow{UserID: userID, AuthorID: authorID}).Error
	if err != nil {
		return false, fmt.Errorf("could not create follow: %w", err)
	}
	return true, nil
}

func (s *FollowPostgresStorage) Unfollow(userID, authorID uint) error {
	err := DB.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{}).Error
	if err != nil {
		return fmt.Errorf("could not delete follow: %w", err)
	}
	return nil
}

func (s *FollowPostgresStorage) IsFollowing(userID, authorID uint) (bool, error) {
	var count int
	err := DB.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("could not check follow: %w", err)
	}
	return count > 0, nil
}

func (s *FollowPostgresStorage) FollowedAuthorIDs(userID uint) ([]uint, error) {
	ids := []uint{}
	err := DB.Model(&models.Follow{}).Where("user_id = ?", userID).Order("author_id").Pluck("author_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("could not get followed authors: %w", err)
	}
	return ids, nil
}

func (s *FollowPostgresStorage) CountFollowers(authorID uint) (int, error) {
	var count int
	err := DB.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count followers: %w", err)
	}
	return count, nil
}

func (s *FollowPostgresStorage) CountFollowing(userID uint) (int, error) {
	var count int
	err := DB.Model(&models.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count following: %w", err)
	}
	return count, nil
}
