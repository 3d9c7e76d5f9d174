// Package media сохраняет загруженные картинки постов на локальный диск.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxUploadSize = 5 << 20 // 5MB
	postsDir      = "posts"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type: only GIF, PNG and JPEG are allowed")
	ErrTooLarge        = errors.New("image is too large: the limit is 5MB")
)

var allowedImageTypes = map[string]string{
	"image/gif":  ".gif",
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

type Storage struct {
	root string
}

func NewStorage(root string) *Storage {
	return &Storage{root: root}
}

func (s *Storage) Root() string {
	return s.root
}

// Allowed сообщает, можно ли загрузить файл с таким Content-Type
func Allowed(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}

// Save пишет картинку в root/posts/<uuid><ext> и возвращает путь относительно root
func (s *Storage) Save(name, contentType string, r io.Reader) (string, error) {
	defaultExt, ok := allowedImageTypes[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}

	dir := filepath.Join(s.root, postsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create media directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = defaultExt
	}
	fileName := uuid.New().String() + ext
	filePath := filepath.Join(dir, fileName)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("could not create media file: %w", err)
	}

	written, err := io.Copy(dst, io.LimitReader(r, MaxUploadSize+1))
	closeErr := dst.Close()
	if err == nil && written > MaxUploadSize {
		err = ErrTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filePath)
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("could not write media file: %w", err)
	}

	return path.Join(postsDir, fileName), nil
}
