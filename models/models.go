package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

type User struct {
	gorm.Model
	Username  string `gorm:"unique;not null"`
	Email     string
	FirstName string
	LastName  string
	Password  string
	Posts     []Post    `gorm:"foreignkey:AuthorID"`
	Comments  []Comment `gorm:"foreignkey:AuthorID"`
}

type Group struct {
	ID          uint   `gorm:"primary_key"`
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"unique_index;not null"`
	Description string `gorm:"type:text"`
	Posts       []Post `gorm:"foreignkey:GroupID"`
}

// String возвращает название группы (так она выводится в формах и списках)
func (g Group) String() string {
	return g.Title
}

type Post struct {
	gorm.Model
	Text     string    `gorm:"type:text;not null"`
	AuthorID uint      `gorm:"not null;index"`
	Author   User      `gorm:"foreignkey:AuthorID"`
	GroupID  *uint     `gorm:"index"`
	Group    *Group    `gorm:"foreignkey:GroupID"`
	Image    string    // путь относительно MEDIA_ROOT, пусто если картинки нет
	Comments []Comment `gorm:"foreignkey:PostID"`
}

// String возвращает первые 15 символов текста поста
func (p Post) String() string {
	runes := []rune(p.Text)
	if len(runes) > 15 {
		return string(runes[:15])
	}
	return p.Text
}

type Comment struct {
	gorm.Model
	Text     string `gorm:"type:text;not null"`
	PostID   uint   `gorm:"not null;index"`
	AuthorID uint   `gorm:"not null;index"`
	Author   User   `gorm:"foreignkey:AuthorID"`
}

// Follow - подписка UserID (подписчик) на AuthorID. Пара уникальна.
type Follow struct {
	ID        uint `gorm:"primary_key"`
	UserID    uint `gorm:"not null;unique_index:idx_follow_pair"`
	AuthorID  uint `gorm:"not null;unique_index:idx_follow_pair;index"`
	CreatedAt time.Time
}

// All возвращает все модели для AutoMigrate
func All() []interface{} {
	return []interface{}{&User{}, &Group{}, &Post{}, &Comment{}, &Follow{}}
}
