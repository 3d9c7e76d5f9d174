package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/feed"
	"github.com/VitaminP8/yatube/internal/pagination"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/models"
)

//go:embed templates
var templateFS embed.FS

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2 Jan 2006 15:04")
	},
	"paragraphs": func(text string) []string {
		return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	},
}

// pages - по набору шаблонов на каждую страницу: base.html + partials.html + сама страница
var pages = mustParsePages()

func mustParsePages() map[string]*template.Template {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}

	result := make(map[string]*template.Template)
	for _, name := range names {
		page := path.Base(name)
		if page == "base.html" || page == "partials.html" {
			continue
		}
		result[page] = template.Must(template.New(page).Funcs(funcs).ParseFS(
			templateFS,
			"templates/base.html",
			"templates/partials.html",
			name,
		))
	}
	return result
}

// view - данные для всех шаблонов, каждая страница использует свою часть полей
type view struct {
	Title  string
	Viewer *auth.Identity

	Listing template.HTML
	Page    *feed.PostPage
	Groups  *pagination.Page[*models.Group]
	Users   *pagination.Page[*models.User]

	Group    *models.Group
	Author   *models.User
	Post     *models.Post
	Comments []*models.Comment

	PostCount      int
	FollowerCount  int
	FollowingCount int
	Following      bool

	Form      any
	AllGroups []*models.Group
	IsEdit    bool
	Next      string
}

func (v *view) IsAuthor() bool {
	return v.Viewer.Authenticated() && v.Author != nil && v.Author.ID == v.Viewer.ID
}

// renderPage выполняет шаблон в буфер, чтобы ошибка шаблона не оставила полстраницы
func renderPage(page string, v *view) ([]byte, error) {
	return executeTemplate(page, "base", v)
}

func executeTemplate(page, name string, data any) ([]byte, error) {
	tmpl, ok := pages[page]
	if !ok {
		return nil, fmt.Errorf("template %s not found", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("could not render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, v *view) {
	v.Viewer = auth.IdentityFromContext(r.Context())

	body, err := renderPage(page, v)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "404.html", &view{Title: "Page not found"})
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)

	body, renderErr := renderPage("500.html", &view{
		Title:  "Server error",
		Viewer: auth.IdentityFromContext(r.Context()),
	})
	if renderErr != nil {
		log.Printf("could not render error page: %v", renderErr)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write(body)
}

// storageError - 404 для отсутствующих объектов, 500 для всего остального
func (h *Handler) storageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	h.serverError(w, r, err)
}

// redirectToLogin отправляет на страницу входа с возвратом на текущий адрес
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	next := strings.ReplaceAll(url.QueryEscape(r.URL.RequestURI()), "%2F", "/")
	http.Redirect(w, r, "/auth/login/?next="+next, http.StatusFound)
}

// safeNext пропускает только локальные пути, иначе "/"
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func profileURL(username string) string {
	return "/" + username + "/"
}

func postURL(p *models.Post) string {
	return fmt.Sprintf("/%s/%d/", p.Author.Username, p.ID)
}
