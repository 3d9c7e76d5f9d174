package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/storage"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.URL.Query().Get("next"))

	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "login.html", &view{
			Title: "Log in",
			Form:  &LoginForm{Errors: FieldErrors{}},
			Next:  next,
		})
		return
	}

	form, err := parseLoginForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if n := r.PostForm.Get("next"); n != "" {
		next = safeNext(n)
	}

	if form.Errors.Valid() {
		u, err := h.UserStore.Authenticate(form.Username, form.Password)
		switch {
		case errors.Is(err, storage.ErrInvalidCredentials):
			form.Errors.Add("form", "Please enter a correct username and password.")
		case err != nil:
			h.serverError(w, r, err)
			return
		default:
			if err := auth.Login(r.Context(), h.Sessions, auth.Identity{ID: u.ID, Username: u.Username}); err != nil {
				h.serverError(w, r, err)
				return
			}
			http.Redirect(w, r, next, http.StatusFound)
			return
		}
	}

	h.render(w, r, http.StatusOK, "login.html", &view{Title: "Log in", Form: form, Next: next})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := auth.Logout(r.Context(), h.Sessions); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "signup.html", &view{
			Title: "Sign up",
			Form:  &SignupForm{Errors: FieldErrors{}},
		})
		return
	}

	form, err := parseSignupForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if form.Errors.Valid() {
		u, err := h.UserStore.RegisterUser(form.Username, form.Email, form.Password)
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			form.Errors.Add("username", "A user with that username already exists.")
		case err != nil:
			h.serverError(w, r, err)
			return
		default:
			log.Printf("new user registered: %s", u.Username)
			if err := auth.Login(r.Context(), h.Sessions, auth.Identity{ID: u.ID, Username: u.Username}); err != nil {
				h.serverError(w, r, err)
				return
			}
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
	}

	// пароли в форму обратно не отдаем
	form.Password, form.Password2 = "", ""
	h.render(w, r, http.StatusOK, "signup.html", &view{Title: "Sign up", Form: form})
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// token выдает JWT для заголовка Authorization: Bearer
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	u, err := h.UserStore.Authenticate(creds.Username, creds.Password)
	if errors.Is(err, storage.ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": storage.ErrInvalidCredentials.Error()})
		return
	}
	if err != nil {
		log.Printf("token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	token, err := auth.IssueToken(h.JWTSecret, auth.Identity{ID: u.ID, Username: u.Username}, h.TokenTTL)
	if err != nil {
		log.Printf("token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not issue token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("could not write response: %v", err)
	}
}
