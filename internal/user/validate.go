package user

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const MaxUsernameLength = 150

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username is too long")
	ErrUsernameInvalid  = errors.New("username may contain only letters, numbers and @/./+/-/_")
	ErrUsernameReserved = errors.New("username is reserved")
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// reservedUsernames совпадают с первыми сегментами маршрутов сайта
var reservedUsernames = map[string]bool{
	"new":      true,
	"group":    true,
	"user":     true,
	"follow":   true,
	"unfollow": true,
	"auth":     true,
	"about":    true,
	"media":    true,
}

// ValidateUsername проверяет, что имя можно использовать как сегмент URL профиля.
// Вызывается и формой регистрации, и обеими реализациями RegisterUser.
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return ErrUsernameRequired
	case utf8.RuneCountInString(username) > MaxUsernameLength:
		return ErrUsernameTooLong
	case !usernamePattern.MatchString(username):
		return ErrUsernameInvalid
	case reservedUsernames[strings.ToLower(username)]:
		return ErrUsernameReserved
	}
	return nil
}
