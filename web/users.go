package web

import (
	"errors"
	"net/http"

	"github.com/VitaminP8/yatube/internal/access"
	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/feed"
	"github.com/VitaminP8/yatube/internal/pagination"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	author, err := h.UserStore.GetUserByUsername(r.PathValue("username"))
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	page, err := h.Feed.ByAuthor(author, r.URL.Query().Get("page"))
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	v := &view{Title: "Posts by " + author.Username, Author: author, Page: page}
	if err := h.fillAuthorCard(r, v); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "profile.html", v)
}

func (h *Handler) userList(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Fetch[*models.User](r.URL.Query().Get("page"), h.Feed.PageSize(), h.UserStore.ListUsers)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "user_list.html", &view{Title: "Authors", Users: page})
}

func (h *Handler) followIndex(w http.ResponseWriter, r *http.Request) {
	page, err := h.Feed.Followed(auth.IdentityFromContext(r.Context()), r.URL.Query().Get("page"))
	if errors.Is(err, feed.ErrLoginRequired) {
		redirectToLogin(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "follow.html", &view{Title: "Following", Page: page})
}

func (h *Handler) profileFollow(w http.ResponseWriter, r *http.Request) {
	h.changeFollow(w, r, func(who *auth.Identity, author *models.User) error {
		_, err := h.FollowStore.Follow(who.ID, author.ID)
		return err
	})
}

func (h *Handler) profileUnfollow(w http.ResponseWriter, r *http.Request) {
	h.changeFollow(w, r, func(who *auth.Identity, author *models.User) error {
		return h.FollowStore.Unfollow(who.ID, author.ID)
	})
}

// changeFollow проверяет доступ и после изменения подписки возвращает на профиль автора
func (h *Handler) changeFollow(w http.ResponseWriter, r *http.Request, change func(*auth.Identity, *models.User) error) {
	who := auth.IdentityFromContext(r.Context())
	if !who.Authenticated() {
		redirectToLogin(w, r)
		return
	}

	author, err := h.UserStore.GetUserByUsername(r.PathValue("username"))
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	back := profileURL(author.Username)
	switch access.Follow(who, author) {
	case access.Login:
		redirectToLogin(w, r)
		return
	case access.Deny:
		http.Redirect(w, r, back, http.StatusFound)
		return
	}

	err = change(who, author)
	if err != nil && !errors.Is(err, storage.ErrSelfFollow) {
		h.storageError(w, r, err)
		return
	}
	http.Redirect(w, r, back, http.StatusFound)
}
