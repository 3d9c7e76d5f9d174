package postgres

import (
	"fmt"

	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
	"github.com/jinzhu/gorm"
)

type GroupPostgresStorage struct{}

func NewGroupPostgresStorage() *GroupPostgresStorage {
	return &GroupPostgresStorage{}
}

func (s *GroupPostgresStorage) CreateGroup(title, slug, description string) (*models.Group, error) {
	if err := group.ValidateSlug(slug); err != nil {
		return nil, fmt.Errorf("group %q: %w", slug, err)
	}

	var existGroup models.Group
	err := DB.Where("slug = ?", slug).First(&existGroup).Error
	if err == nil {
		return nil, fmt.Errorf("group %s: %w", slug, storage.ErrAlreadyExists)
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}

	group := &models.Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	err = DB.Create(group).Error
	if err != nil {
		return nil, fmt.Errorf("could not create group: %w", err)
	}
	return group, nil
}

func (s *GroupPostgresStorage) GetGroupByID(id uint) (*models.Group, error) {
	var group models.Group
	err := DB.First(&group, id).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("group %d", id))
	}
	return &group, nil
}

func (s *GroupPostgresStorage) GetGroupBySlug(slug string) (*models.Group, error) {
	var group models.Group
	err := DB.Where("slug = ?", slug).First(&group).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("group %s", slug))
	}
	return &group, nil
}

func (s *GroupPostgresStorage) ListGroups(limit, offset int) ([]*models.Group, int, error) {
	var total int
	err := DB.Model(&models.Group{}).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not count groups: %w", err)
	}

	var groups []models.Group
	err = window(DB.Order("title, id"), limit, offset).Find(&groups).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not get groups: %w", err)
	}

	results := make([]*models.Group, 0, len(groups))
	for i := range groups {
		results = append(results, &groups[i])
	}
	return results, total, nil
}
