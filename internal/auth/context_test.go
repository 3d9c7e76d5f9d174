package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret"

// testUsers - UserLookup поверх map ID -> username
type testUsers map[uint]string

func (u testUsers) GetUserByID(id uint) (*models.User, error) {
	username, ok := u[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	user := &models.User{Username: username}
	user.ID = id
	return user, nil
}

func TestWithIdentityAndIdentityFromContext(t *testing.T) {
	t.Run("Store and retrieve identity from context", func(t *testing.T) {
		id := &Identity{ID: 123, Username: "leo"}
		ctx := WithIdentity(context.Background(), id)

		got := IdentityFromContext(ctx)
		require.NotNil(t, got)
		assert.Equal(t, uint(123), got.ID)
		assert.Equal(t, "leo", got.Username)
		assert.True(t, got.Authenticated())
	})

	t.Run("Anonymous when identity not in context", func(t *testing.T) {
		assert.Nil(t, IdentityFromContext(context.Background()))
	})

	t.Run("Anonymous when context value has wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), identityKey, "not-an-identity")
		assert.Nil(t, IdentityFromContext(ctx))
	})

	t.Run("Zero ID is anonymous", func(t *testing.T) {
		ctx := WithIdentity(context.Background(), &Identity{})
		assert.Nil(t, IdentityFromContext(ctx))

		var nobody *Identity
		assert.False(t, nobody.Authenticated())
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	t.Run("Valid Bearer token", func(t *testing.T) {
		assert.Equal(t, "token123", extractTokenFromHeader("Bearer token123"))
	})

	t.Run("Invalid format - no Bearer prefix", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader("NotBearer token123"))
	})

	t.Run("Invalid format - no space", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader("Bearertoken123"))
	})

	t.Run("Empty header", func(t *testing.T) {
		assert.Equal(t, "", extractTokenFromHeader(""))
	})
}

func TestIssueAndParseToken(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		tokenString, err := IssueToken(testSecret, Identity{ID: 42, Username: "leo"}, time.Hour)
		require.NoError(t, err)

		id, err := ParseToken(testSecret, tokenString)
		require.NoError(t, err)
		assert.Equal(t, uint(42), id.ID)
		assert.Equal(t, "leo", id.Username)
	})

	t.Run("Empty secret", func(t *testing.T) {
		_, err := IssueToken("", Identity{ID: 42}, time.Hour)
		assert.ErrorIs(t, err, ErrNoSecret)
	})

	t.Run("Token without user_id", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"username": "leo",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = ParseToken(testSecret, tokenString)
		assert.Error(t, err)
	})
}

func TestMiddleware(t *testing.T) {
	sessions := scs.New()
	users := testUsers{123: "testuser", 7: "tolstoy"}

	// тестовый обработчик печатает identity из контекста
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		err := Login(r.Context(), sessions, Identity{ID: 7, Username: "tolstoy"})
		require.NoError(t, err)
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, Logout(r.Context(), sessions))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFromContext(r.Context())
		if id != nil {
			fmt.Fprintf(w, "User: %d %s", id.ID, id.Username)
		} else {
			fmt.Fprint(w, "Anonymous")
		}
	})

	handler := sessions.LoadAndSave(Middleware(sessions, testSecret, users)(mux))

	signedAs := func(t *testing.T, id uint, username string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id":  id,
			"username": username,
			"exp":      time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)
		return tokenString
	}

	signed := func(t *testing.T, secret string, exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id":  float64(123),
			"username": "testuser",
			"exp":      exp.Unix(),
		})
		tokenString, err := token.SignedString([]byte(secret))
		require.NoError(t, err)
		return tokenString
	}

	t.Run("Valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, testSecret, time.Now().Add(time.Hour)))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, "User: 123 testuser", w.Body.String())
	})

	t.Run("Invalid token signature", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, "wrong_secret", time.Now().Add(time.Hour)))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, "Anonymous", w.Body.String())
	})

	t.Run("Expired token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, testSecret, time.Now().Add(-time.Hour)))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, "Anonymous", w.Body.String())
	})

	t.Run("Token of a user that no longer exists", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedAs(t, 999, "ghost"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, "Anonymous", w.Body.String())
	})

	t.Run("Token whose ID now belongs to another user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signedAs(t, 7, "someone_else"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, "Anonymous", w.Body.String())
	})

	t.Run("No token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, "Anonymous", w.Body.String())
	})

	t.Run("Token ignored without secret", func(t *testing.T) {
		noSecret := sessions.LoadAndSave(Middleware(sessions, "", users)(mux))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, testSecret, time.Now().Add(time.Hour)))
		w := httptest.NewRecorder()

		noSecret.ServeHTTP(w, req)
		assert.Equal(t, "Anonymous", w.Body.String())
	})

	t.Run("Session login and logout", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w = httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, "User: 7 tolstoy", w.Body.String())

		req = httptest.NewRequest(http.MethodPost, "/logout", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)

		req = httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w = httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, "Anonymous", w.Body.String())
	})

	t.Run("Session of a user missing from storage", func(t *testing.T) {
		emptyStore := sessions.LoadAndSave(Middleware(sessions, testSecret, testUsers{})(mux))

		w := httptest.NewRecorder()
		emptyStore.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w = httptest.NewRecorder()
		emptyStore.ServeHTTP(w, req)
		assert.Equal(t, "Anonymous", w.Body.String())
	})
}
