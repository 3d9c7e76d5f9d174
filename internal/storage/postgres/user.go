package postgres

import (
	"fmt"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/models"
	"github.com/jinzhu/gorm"

	"golang.org/x/crypto/bcrypt"
)

type UserPostgresStorage struct{}

func NewUserPostgresStorage() *UserPostgresStorage {
	return &UserPostgresStorage{}
}

func (s *UserPostgresStorage) RegisterUser(username, email, password string) (*models.User, error) {
	if err := user.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("user %q: %w", username, err)
	}

	// проверка - существует ли такой пользователь
	var existUser models.User
	err := DB.Where("username = ?", username).First(&existUser).Error
	if err == nil {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrAlreadyExists)
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}

	err = DB.Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.Password = ""
	return user, nil
}

func (s *UserPostgresStorage) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", username, storage.ErrInvalidCredentials)
	}

	user.Password = ""
	return &user, nil
}

func (s *UserPostgresStorage) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := DB.First(&user, id).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("user %d", id))
	}
	user.Password = ""
	return &user, nil
}

func (s *UserPostgresStorage) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("user %s", username))
	}
	user.Password = ""
	return &user, nil
}

func (s *UserPostgresStorage) ListUsers(limit, offset int) ([]*models.User, int, error) {
	var total int
	err := DB.Model(&models.User{}).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not count users: %w", err)
	}

	var users []models.User
	err = window(DB.Order("lower(username), id"), limit, offset).Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not get users: %w", err)
	}

	results := make([]*models.User, 0, len(users))
	for i := range users {
		users[i].Password = ""
		results = append(results, &users[i])
	}
	return results, total, nil
}
