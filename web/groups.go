package web

import (
	"net/http"

	"github.com/VitaminP8/yatube/internal/pagination"
	"github.com/VitaminP8/yatube/models"
)

func (h *Handler) groupPosts(w http.ResponseWriter, r *http.Request) {
	g, err := h.GroupStore.GetGroupBySlug(r.PathValue("slug"))
	if err != nil {
		h.storageError(w, r, err)
		return
	}

	page, err := h.Feed.ByGroup(g, r.URL.Query().Get("page"))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "group.html", &view{Title: g.Title, Group: g, Page: page})
}

func (h *Handler) groupList(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.Fetch[*models.Group](r.URL.Query().Get("page"), h.Feed.PageSize(), h.GroupStore.ListGroups)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "group_list.html", &view{Title: "Groups", Groups: page})
}

func (h *Handler) static(page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, page, &view{Title: title})
	}
}
