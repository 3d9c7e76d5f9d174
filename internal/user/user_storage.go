package user

import (
	"github.com/VitaminP8/yatube/models"
)

type UserStorage interface {
	RegisterUser(username, email, password string) (*models.User, error)
	// Authenticate проверяет пароль, при несовпадении возвращает storage.ErrInvalidCredentials
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	ListUsers(limit, offset int) ([]*models.User, int, error)
}
