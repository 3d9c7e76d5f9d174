package web

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/storage"
	"github.com/VitaminP8/yatube/internal/user"
)

const (
	msgRequired = "This field is required."

	minPasswordLength = 8
)

// usernameMessages - текст ошибки формы для каждой ошибки user.ValidateUsername
var usernameMessages = map[error]string{
	user.ErrUsernameRequired: msgRequired,
	user.ErrUsernameTooLong:  fmt.Sprintf("Ensure this value has at most %d characters.", user.MaxUsernameLength),
	user.ErrUsernameInvalid:  "Enter a valid username. It may contain only letters, numbers, and @/./+/-/_ characters.",
	user.ErrUsernameReserved: "This username is reserved.",
}

// FieldErrors - сообщения об ошибках по имени поля формы
type FieldErrors map[string]string

func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

type PostForm struct {
	Text       string
	GroupID    string
	Image      string // текущая картинка поста
	ClearImage bool
	Errors     FieldErrors

	group  *uint
	upload *upload
}

type upload struct {
	file        multipart.File
	name        string
	contentType string
}

// parsePostForm читает multipart-форму поста вместе с необязательной картинкой
func parsePostForm(w http.ResponseWriter, r *http.Request) (*PostForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadSize+1<<20)

	form := &PostForm{Errors: FieldErrors{}}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(media.MaxUploadSize); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				form.Errors.Add("image", media.ErrTooLarge.Error())
				return form, nil
			}
			return nil, fmt.Errorf("could not parse form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("could not parse form: %w", err)
	}

	form.Text = r.PostForm.Get("text")
	form.GroupID = r.PostForm.Get("group")
	form.ClearImage = r.PostForm.Get("image-clear") != ""

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		return nil, fmt.Errorf("could not read image: %w", err)
	default:
		form.upload = &upload{
			file:        file,
			name:        header.Filename,
			contentType: header.Header.Get("Content-Type"),
		}
		if header.Size > media.MaxUploadSize {
			form.Errors.Add("image", media.ErrTooLarge.Error())
		}
	}

	return form, nil
}

// Validate проверяет текст, группу и тип картинки. Группа должна существовать.
func (f *PostForm) Validate(groups group.GroupStorage) error {
	if strings.TrimSpace(f.Text) == "" {
		f.Errors.Add("text", msgRequired)
	}

	if f.GroupID != "" {
		id, err := strconv.ParseUint(f.GroupID, 10, 64)
		if err != nil {
			f.Errors.Add("group", "Select a valid group.")
		} else {
			g, err := groups.GetGroupByID(uint(id))
			switch {
			case errors.Is(err, storage.ErrNotFound):
				f.Errors.Add("group", "Select a valid group.")
			case err != nil:
				return err
			default:
				f.group = &g.ID
			}
		}
	}

	if f.upload != nil && !media.Allowed(f.upload.contentType) {
		f.Errors.Add("image", media.ErrUnsupportedType.Error())
	}
	return nil
}

// saveImage сохраняет загруженную картинку и возвращает итоговый путь поста
func (f *PostForm) saveImage(store *media.Storage) (string, error) {
	if f.upload == nil {
		if f.ClearImage {
			return "", nil
		}
		return f.Image, nil
	}
	if store == nil {
		return "", errors.New("media storage is not configured")
	}
	return store.Save(f.upload.name, f.upload.contentType, f.upload.file)
}

func (f *PostForm) closeUpload() {
	if f.upload != nil {
		f.upload.file.Close()
	}
}

// SelectedGroup - выбранная группа для <select> в шаблоне
func (f *PostForm) SelectedGroup(id uint) bool {
	return f.GroupID == strconv.FormatUint(uint64(id), 10)
}

type CommentForm struct {
	Text   string
	Errors FieldErrors
}

func parseCommentForm(r *http.Request) (*CommentForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("could not parse form: %w", err)
	}
	form := &CommentForm{Text: r.PostForm.Get("text"), Errors: FieldErrors{}}
	if strings.TrimSpace(form.Text) == "" {
		form.Errors.Add("text", msgRequired)
	}
	return form, nil
}

type SignupForm struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	Errors    FieldErrors
}

func parseSignupForm(r *http.Request) (*SignupForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("could not parse form: %w", err)
	}
	form := &SignupForm{
		Username:  strings.TrimSpace(r.PostForm.Get("username")),
		Email:     strings.TrimSpace(r.PostForm.Get("email")),
		Password:  r.PostForm.Get("password1"),
		Password2: r.PostForm.Get("password2"),
		Errors:    FieldErrors{},
	}
	form.validate()
	return form, nil
}

func (f *SignupForm) validate() {
	if err := user.ValidateUsername(f.Username); err != nil {
		f.Errors.Add("username", usernameMessages[err])
	}

	switch {
	case f.Password == "":
		f.Errors.Add("password1", msgRequired)
	case utf8.RuneCountInString(f.Password) < minPasswordLength:
		f.Errors.Add("password1", fmt.Sprintf("This password is too short. It must contain at least %d characters.", minPasswordLength))
	case f.Password != f.Password2:
		f.Errors.Add("password2", "The two password fields didn't match.")
	}
}

type LoginForm struct {
	Username string
	Password string
	Errors   FieldErrors
}

func parseLoginForm(r *http.Request) (*LoginForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("could not parse form: %w", err)
	}
	form := &LoginForm{
		Username: strings.TrimSpace(r.PostForm.Get("username")),
		Password: r.PostForm.Get("password"),
		Errors:   FieldErrors{},
	}
	if form.Username == "" {
		form.Errors.Add("username", msgRequired)
	}
	if form.Password == "" {
		form.Errors.Add("password", msgRequired)
	}
	return form, nil
}
