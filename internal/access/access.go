// Package access решает, что может сделать identity запроса.
// Решения не зависят от HTTP: обработчики сами превращают Login в редирект
// на страницу входа, а Deny - в тихий редирект.
package access

import (
	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/models"
)

type Decision int

const (
	Allow Decision = iota
	// Login - нужен вход, анонимного пользователя отправляем на страницу входа
	Login
	// Deny - пользователь вошел, но действие ему запрещено
	Deny
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Login:
		return "login"
	case Deny:
		return "deny"
	}
	return "unknown"
}

// View - посты, группы и профили открыты всем
func View(_ *auth.Identity) Decision {
	return Allow
}

func authenticated(who *auth.Identity) Decision {
	if !who.Authenticated() {
		return Login
	}
	return Allow
}

func CreatePost(who *auth.Identity) Decision { return authenticated(who) }

func Comment(who *auth.Identity) Decision { return authenticated(who) }

func FollowFeed(who *auth.Identity) Decision { return authenticated(who) }

// EditPost - редактировать пост может только его автор
func EditPost(who *auth.Identity, post *models.Post) Decision {
	if !who.Authenticated() {
		return Login
	}
	if post == nil || post.AuthorID != who.ID {
		return Deny
	}
	return Allow
}

// Follow - подписаться (или отписаться) можно на любого, кроме себя
func Follow(who *auth.Identity, author *models.User) Decision {
	if !who.Authenticated() {
		return Login
	}
	if author == nil || author.ID == who.ID {
		return Deny
	}
	return Allow
}
