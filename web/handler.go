// Package web - HTML-интерфейс блога: маршруты, формы и шаблоны.
package web

import (
	"net/http"
	"time"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/comment"
	"github.com/VitaminP8/yatube/internal/feed"
	"github.com/VitaminP8/yatube/internal/feedcache"
	"github.com/VitaminP8/yatube/internal/follow"
	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/handlers"
)

// Handler служит корневой точкой для всех обработчиков.
// Здесь внедряются хранилища, сессии, кэш ленты и хранилище картинок.
type Handler struct {
	PostStore    post.PostStorage
	CommentStore comment.CommentStorage
	UserStore    user.UserStorage
	GroupStore   group.GroupStorage
	FollowStore  follow.FollowStorage

	Feed     *feed.Service
	Cache    *feedcache.Cache
	Media    *media.Storage
	Sessions *scs.SessionManager

	JWTSecret string
	TokenTTL  time.Duration
}

// methods отвечает 405 на все методы, кроме перечисленных
func methods(get, post http.HandlerFunc) http.Handler {
	m := handlers.MethodHandler{}
	if get != nil {
		m[http.MethodGet] = get
		m[http.MethodHead] = get
	}
	if post != nil {
		m[http.MethodPost] = post
	}
	return m
}

// Routes собирает все маршруты вместе с сессиями, авторизацией и восстановлением после паники
func (h *Handler) Routes() http.Handler {
	pages := http.NewServeMux()

	pages.Handle("/{$}", methods(h.index, nil))
	pages.Handle("/new/{$}", methods(h.newPost, h.newPost))
	pages.Handle("/group/{$}", methods(h.groupList, nil))
	pages.Handle("/group/{slug}/{$}", methods(h.groupPosts, nil))
	pages.Handle("/user/{$}", methods(h.userList, nil))
	pages.Handle("/follow/{$}", methods(h.followIndex, nil))
	pages.Handle("/follow/{username}/{$}", methods(h.profileFollow, h.profileFollow))
	pages.Handle("/unfollow/{username}/{$}", methods(h.profileUnfollow, h.profileUnfollow))

	pages.Handle("/auth/login/{$}", methods(h.login, h.login))
	pages.Handle("/auth/logout/{$}", methods(h.logout, h.logout))
	pages.Handle("/auth/signup/{$}", methods(h.signup, h.signup))
	pages.Handle("/auth/token/{$}", methods(nil, h.token))
	pages.Handle("/about/author/{$}", methods(h.static("about_author.html", "About the author"), nil))
	pages.Handle("/about/tech/{$}", methods(h.static("about_tech.html", "Technologies"), nil))

	pages.Handle("/{username}/{$}", methods(h.profile, nil))
	pages.Handle("/{username}/{post_id}/{$}", methods(h.postView, h.addComment))
	pages.Handle("/{username}/{post_id}/edit/{$}", methods(h.postEdit, h.postEdit))
	pages.Handle("/{username}/{post_id}/comment", methods(h.addComment, h.addComment))

	pages.HandleFunc("/", h.notFound)

	// /media/ пересекается с /{username}/..., поэтому живет на отдельном mux
	root := http.NewServeMux()
	if h.Media != nil {
		root.Handle("/media/", http.StripPrefix("/media/", http.FileServer(http.Dir(h.Media.Root()))))
	}
	root.Handle("/", pages)

	var handler http.Handler = auth.Middleware(h.Sessions, h.JWTSecret, h.UserStore)(root)
	handler = h.Sessions.LoadAndSave(handler)
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handler)
}
