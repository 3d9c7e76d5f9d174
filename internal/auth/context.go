// internal/auth/context.go
package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
	"github.com/alexedwards/scs/v2"
)

// Identity - пользователь, от имени которого выполняется запрос.
// nil *Identity означает анонимного посетителя.
type Identity struct {
	ID       uint
	Username string
}

func (i *Identity) Authenticated() bool {
	return i != nil && i.ID != 0
}

type contextKey string

const identityKey = contextKey("identity")

// Ключи в сессии
const (
	SessionUserID   = "user_id"
	SessionUsername = "username"
)

// Сохраняет identity в контексте
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Достает identity из контекста, nil если пользователь не вошел
func IdentityFromContext(ctx context.Context) *Identity {
	id, ok := ctx.Value(identityKey).(*Identity)
	if !ok || !id.Authenticated() {
		return nil
	}
	return id
}

// Login записывает пользователя в сессию (токен сессии обновляется)
func Login(ctx context.Context, sessions *scs.SessionManager, id Identity) error {
	if err := sessions.RenewToken(ctx); err != nil {
		return err
	}
	sessions.Put(ctx, SessionUserID, int(id.ID))
	sessions.Put(ctx, SessionUsername, id.Username)
	return nil
}

func Logout(ctx context.Context, sessions *scs.SessionManager) error {
	return sessions.Destroy(ctx)
}

// UserLookup - часть user.UserStorage, нужная для проверки identity
type UserLookup interface {
	GetUserByID(id uint) (*models.User, error)
}

// Middleware определяет identity запроса: сначала по JWT из заголовка Authorization,
// затем по сессии. Без валидных данных запрос идет дальше анонимным.
// Пользователь из токена или сессии должен существовать и иметь то же имя:
// после перезапуска in-memory хранилища ID достаются другим пользователям.
// sessions.LoadAndSave должен оборачивать этот middleware.
func Middleware(sessions *scs.SessionManager, secret string, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := identityFromBearer(r, secret)
			if id == nil {
				id = identityFromSession(r.Context(), sessions)
			}

			if id != nil && verifyIdentity(users, id) {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
				return
			}

			next.ServeHTTP(w, r) // неавторизованный доступ, пропускаем
		})
	}
}

func verifyIdentity(users UserLookup, id *Identity) bool {
	u, err := users.GetUserByID(id.ID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("auth: could not load user %d: %v", id.ID, err)
		}
		return false
	}
	return u.Username == id.Username
}

func identityFromBearer(r *http.Request, secret string) *Identity {
	tokenStr := extractTokenFromHeader(r.Header.Get("Authorization"))
	if tokenStr == "" || secret == "" {
		return nil
	}
	id, err := ParseToken(secret, tokenStr)
	if err != nil {
		return nil
	}
	return id
}

func identityFromSession(ctx context.Context, sessions *scs.SessionManager) *Identity {
	if sessions == nil {
		return nil
	}
	userID := sessions.GetInt(ctx, SessionUserID)
	if userID <= 0 {
		return nil
	}
	return &Identity{
		ID:       uint(userID),
		Username: sessions.GetString(ctx, SessionUsername),
	}
}

func extractTokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
