package web

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/VitaminP8/yatube/internal/access"
	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/models"
)

// index - главная лента. Кэшируется только список постов, шапка с пользователем рендерится каждый раз.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("page")

	listing, ok := h.Cache.Get(raw)
	if !ok {
		page, err := h.Feed.All(raw)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		listing, err = executeTemplate("index.html", "listing", &view{Page: page})
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		h.Cache.Set(raw, listing)
	}

	h.render(w, r, http.StatusOK, "index.html", &view{
		Title:   "Latest posts",
		Listing: template.HTML(listing),
	})
}

func (h *Handler) newPost(w http.ResponseWriter, r *http.Request) {
	who := auth.IdentityFromContext(r.Context())
	if access.CreatePost(who) != access.Allow {
		redirectToLogin(w, r)
		return
	}

	groups, _, err := h.GroupStore.ListGroups(-1, 0)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	v := &view{Title: "New post", AllGroups: groups}

	if r.Method != http.MethodPost {
		v.Form = &PostForm{Errors: FieldErrors{}}
		h.render(w, r, http.StatusOK, "post_form.html", v)
		return
	}

	form, ok := h.readPostForm(w, r)
	if !ok {
		return
	}
	defer form.closeUpload()

	image, err := h.savePostForm(form)
	if errors.Is(err, errInvalidForm) {
		v.Form = form
		h.render(w, r, http.StatusOK, "post_form.html", v)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	_, err = h.PostStore.CreatePost(who.ID, form.group, form.Text, image)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.Cache.Invalidate()

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) postView(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPost(w, r)
	if !ok {
		return
	}
	h.renderPost(w, r, p, &CommentForm{Errors: FieldErrors{}})
}

func (h *Handler) renderPost(w http.ResponseWriter, r *http.Request, p *models.Post, form *CommentForm) {
	comments, err := h.CommentStore.GetComments(p.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	v := &view{
		Title:    p.String(),
		Post:     p,
		Author:   &p.Author,
		Comments: comments,
		Form:     form,
	}
	if err := h.fillAuthorCard(r, v); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "post.html", v)
}

func (h *Handler) postEdit(w http.ResponseWriter, r *http.Request) {
	who := auth.IdentityFromContext(r.Context())
	if !who.Authenticated() {
		redirectToLogin(w, r)
		return
	}

	p, ok := h.loadPost(w, r)
	if !ok {
		return
	}
	switch access.EditPost(who, p) {
	case access.Login:
		redirectToLogin(w, r)
		return
	case access.Deny:
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	groups, _, err := h.GroupStore.ListGroups(-1, 0)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	v := &view{Title: "Edit post", AllGroups: groups, Post: p, IsEdit: true}

	if r.Method != http.MethodPost {
		form := &PostForm{Text: p.Text, Image: p.Image, Errors: FieldErrors{}}
		if p.GroupID != nil {
			form.GroupID = strconv.FormatUint(uint64(*p.GroupID), 10)
		}
		v.Form = form
		h.render(w, r, http.StatusOK, "post_form.html", v)
		return
	}

	form, ok := h.readPostForm(w, r)
	if !ok {
		return
	}
	defer form.closeUpload()
	form.Image = p.Image

	image, err := h.savePostForm(form)
	if errors.Is(err, errInvalidForm) {
		v.Form = form
		h.render(w, r, http.StatusOK, "post_form.html", v)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	updated, err := h.PostStore.UpdatePost(p.ID, form.group, form.Text, image)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.Cache.Invalidate()

	http.Redirect(w, r, postURL(updated), http.StatusFound)
}

func (h *Handler) addComment(w http.ResponseWriter, r *http.Request) {
	who := auth.IdentityFromContext(r.Context())
	if access.Comment(who) != access.Allow {
		redirectToLogin(w, r)
		return
	}

	p, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "add_comment.html", &view{
			Title:  "Add comment",
			Post:   p,
			Author: &p.Author,
			Form:   &CommentForm{Errors: FieldErrors{}},
		})
		return
	}

	form, err := parseCommentForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !form.Errors.Valid() {
		h.renderPost(w, r, p, form)
		return
	}

	_, err = h.CommentStore.CreateComment(p.ID, who.ID, form.Text)
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	http.Redirect(w, r, postURL(p), http.StatusFound)
}

// loadPost находит пост по {post_id} и проверяет, что он принадлежит {username}.
// При ошибке ответ уже записан.
func (h *Handler) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := strconv.ParseUint(r.PathValue("post_id"), 10, 64)
	if err != nil {
		h.notFound(w, r)
		return nil, false
	}

	p, err := h.PostStore.GetPostByID(uint(id))
	if err != nil {
		h.storageError(w, r, err)
		return nil, false
	}
	if p.Author.Username != r.PathValue("username") {
		h.notFound(w, r)
		return nil, false
	}
	return p, true
}

func (h *Handler) readPostForm(w http.ResponseWriter, r *http.Request) (*PostForm, bool) {
	form, err := parsePostForm(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if err := form.Validate(h.GroupStore); err != nil {
		h.serverError(w, r, err)
		return nil, false
	}
	return form, true
}

var errInvalidForm = errors.New("invalid form")

// savePostForm сохраняет картинку валидной формы. errInvalidForm - форму надо показать снова.
func (h *Handler) savePostForm(form *PostForm) (string, error) {
	if !form.Errors.Valid() {
		return "", errInvalidForm
	}

	image, err := form.saveImage(h.Media)
	if errors.Is(err, media.ErrTooLarge) || errors.Is(err, media.ErrUnsupportedType) {
		form.Errors.Add("image", err.Error())
		return "", errInvalidForm
	}
	return image, err
}

// fillAuthorCard заполняет счетчики автора и признак подписки зрителя
func (h *Handler) fillAuthorCard(r *http.Request, v *view) error {
	author := v.Author

	var err error
	if v.PostCount, err = h.PostStore.CountByAuthor(author.ID); err != nil {
		return err
	}
	if v.FollowerCount, err = h.FollowStore.CountFollowers(author.ID); err != nil {
		return err
	}
	if v.FollowingCount, err = h.FollowStore.CountFollowing(author.ID); err != nil {
		return err
	}

	who := auth.IdentityFromContext(r.Context())
	if who.Authenticated() && who.ID != author.ID {
		if v.Following, err = h.FollowStore.IsFollowing(who.ID, author.ID); err != nil {
			return err
		}
	}
	return nil
}
