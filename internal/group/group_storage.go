package group

import (
	"github.com/VitaminP8/yatube/models"
)

type GroupStorage interface {
	CreateGroup(title, slug, description string) (*models.Group, error)
	GetGroupByID(id uint) (*models.Group, error)
	GetGroupBySlug(slug string) (*models.Group, error)
	// ListGroups отдает группы по названию; limit < 0 означает без ограничения
	ListGroups(limit, offset int) ([]*models.Group, int, error)
}
