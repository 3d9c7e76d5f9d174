package web

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupForm(username, password1, password2 string) url.Values {
	return url.Values{
		"username":  {username},
		"email":     {username + "@example.com"},
		"password1": {password1},
		"password2": {password2},
	}
}

func TestSignup(t *testing.T) {
	t.Run("New user is signed in", func(t *testing.T) {
		app := newTestApp(t)

		rec := app.post("/auth/signup/", "", signupForm("leo", "password123", "password123"))
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.NotEmpty(t, cookies)

		home := app.serve(request{target: "/", cookies: cookies})
		assert.Contains(t, home.Body.String(), "Signed in as")
		assert.Contains(t, home.Body.String(), `href="/leo/">leo</a>`)

		u, err := app.store.Users.GetUserByUsername("leo")
		require.NoError(t, err)
		assert.Equal(t, "leo@example.com", u.Email)
	})

	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{"Empty username", signupForm("", "password123", "password123"), msgRequired},
		{"Invalid characters", signupForm("leo tolstoy", "password123", "password123"), "Enter a valid username."},
		{"Too long", signupForm(strings.Repeat("a", 151), "password123", "password123"), "at most 150 characters"},
		{"Reserved name", signupForm("follow", "password123", "password123"), "This username is reserved."},
		{"Short password", signupForm("leo", "short", "short"), "This password is too short."},
		{"Passwords differ", signupForm("leo", "password123", "password456"), "password fields didn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			rec := app.post("/auth/signup/", "", tt.form)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.message)

			users, total, err := app.store.Users.ListUsers(-1, 0)
			require.NoError(t, err)
			assert.Zero(t, total)
			assert.Empty(t, users)
		})
	}

	t.Run("Duplicate username", func(t *testing.T) {
		app := newTestApp(t)
		app.createUser(t, "leo")

		rec := app.post("/auth/signup/", "", signupForm("leo", "password123", "password123"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "A user with that username already exists.")
	})

	t.Run("Passwords are not echoed back", func(t *testing.T) {
		app := newTestApp(t)

		rec := app.post("/auth/signup/", "", signupForm("leo", "secretpassword", "otherpassword"))
		assert.NotContains(t, rec.Body.String(), "secretpassword")
	})
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "leo")

	t.Run("Login form keeps next", func(t *testing.T) {
		rec := app.get("/auth/login/?next=/new/", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `name="next" value="/new/"`)
	})

	t.Run("Wrong password", func(t *testing.T) {
		rec := app.post("/auth/login/", "", url.Values{"username": {"leo"}, "password": {"wrong-password"}})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please enter a correct username and password.")
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("Missing fields", func(t *testing.T) {
		rec := app.post("/auth/login/", "", url.Values{})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), msgRequired)
	})

	t.Run("Success redirects to next", func(t *testing.T) {
		rec := app.post("/auth/login/?next=/follow/", "", url.Values{"username": {"leo"}, "password": {"password123"}})
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/follow/", rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.NotEmpty(t, cookies)

		page := app.serve(request{target: "/follow/", cookies: cookies})
		assert.Equal(t, http.StatusOK, page.Code)
	})

	t.Run("Next from the form field", func(t *testing.T) {
		rec := app.post("/auth/login/", "", url.Values{
			"username": {"leo"},
			"password": {"password123"},
			"next":     {"/group/"},
		})
		require.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/group/", rec.Header().Get("Location"))
	})

	for _, next := range []string{"//evil.com", "https://evil.com/", "/\\evil.com", "evil"} {
		t.Run("Unsafe next "+next, func(t *testing.T) {
			rec := app.post("/auth/login/?next="+url.QueryEscape(next), "", url.Values{
				"username": {"leo"},
				"password": {"password123"},
			})
			require.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))
		})
	}

	t.Run("Logout ends the session", func(t *testing.T) {
		rec := app.post("/auth/login/", "", url.Values{"username": {"leo"}, "password": {"password123"}})
		require.Equal(t, http.StatusFound, rec.Code)
		cookies := rec.Result().Cookies()

		out := app.serve(request{target: "/auth/logout/", cookies: cookies})
		assert.Equal(t, http.StatusFound, out.Code)
		assert.Equal(t, "/", out.Header().Get("Location"))

		// старая кука больше не дает доступа
		after := app.serve(request{target: "/new/", cookies: cookies})
		assert.Equal(t, http.StatusFound, after.Code)
		assert.True(t, strings.HasPrefix(after.Header().Get("Location"), "/auth/login/"))
	})
}

func TestToken(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "leo")

	t.Run("Valid credentials", func(t *testing.T) {
		rec := app.serve(request{
			method:  http.MethodPost,
			target:  "/auth/token/",
			body:    strings.NewReader(`{"username":"leo","password":"password123"}`),
			headers: map[string]string{"Content-Type": "application/json"},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp["token"])

		page := app.get("/new/", resp["token"])
		assert.Equal(t, http.StatusOK, page.Code)
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		rec := app.serve(request{
			method: http.MethodPost,
			target: "/auth/token/",
			body:   strings.NewReader(`{"username":"leo","password":"nope"}`),
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "error")
	})

	t.Run("Malformed body", func(t *testing.T) {
		rec := app.serve(request{
			method: http.MethodPost,
			target: "/auth/token/",
			body:   strings.NewReader(`{"username":`),
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Token of an unknown user is treated as anonymous", func(t *testing.T) {
		token, err := auth.IssueToken(testSecret, auth.Identity{ID: 999, Username: "ghost"}, time.Hour)
		require.NoError(t, err)

		rec := app.get("/new/", token)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/auth/login/"))
	})

	t.Run("Bad token is treated as anonymous", func(t *testing.T) {
		rec := app.get("/new/", "not-a-jwt")
		assert.Equal(t, http.StatusFound, rec.Code)
	})
}
