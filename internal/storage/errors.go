package storage

import "errors"

// Ошибки, общие для всех реализаций хранилища (memory и postgres).
// Обработчики сравнивают с ними через errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
