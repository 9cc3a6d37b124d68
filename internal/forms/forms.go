package forms

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Errors maps a form field to its validation message. Empty map means the
// form is valid.
type Errors map[string]string

func (e Errors) Any() bool { return len(e) > 0 }

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type LoginForm struct {
	Username string
	Password string
}

func ParseLoginForm(values url.Values) *LoginForm {
	return &LoginForm{
		Username: strings.TrimSpace(values.Get("username")),
		Password: values.Get("password"),
	}
}

func (f *LoginForm) Validate() Errors {
	errs := Errors{}
	if f.Username == "" {
		errs["username"] = "Username is required"
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

type RegisterForm struct {
	Username  string
	Email     string
	Password  string
	Password2 string
}

func ParseRegisterForm(values url.Values) *RegisterForm {
	return &RegisterForm{
		Username:  strings.TrimSpace(values.Get("username")),
		Email:     strings.TrimSpace(values.Get("email")),
		Password:  values.Get("password"),
		Password2: values.Get("password2"),
	}
}

func (f *RegisterForm) Validate() Errors {
	errs := Errors{}
	if n := utf8.RuneCountInString(f.Username); n < 2 || n > 20 {
		errs["username"] = "Username must be between 2 and 20 characters"
	}
	if !emailRe.MatchString(f.Email) {
		errs["email"] = "A valid email address is required"
	}
	if utf8.RuneCountInString(f.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	if f.Password2 != f.Password {
		errs["password2"] = "Passwords do not match"
	}
	return errs
}

type ChangePasswordForm struct {
	CurrentPassword string
	NewPassword     string
	NewPassword2    string
}

func ParseChangePasswordForm(values url.Values) *ChangePasswordForm {
	return &ChangePasswordForm{
		CurrentPassword: values.Get("current_password"),
		NewPassword:     values.Get("new_password"),
		NewPassword2:    values.Get("new_password2"),
	}
}

func (f *ChangePasswordForm) Validate() Errors {
	errs := Errors{}
	if f.CurrentPassword == "" {
		errs["current_password"] = "Current password is required"
	}
	if utf8.RuneCountInString(f.NewPassword) < 6 {
		errs["new_password"] = "New password must be at least 6 characters"
	}
	if f.NewPassword2 != f.NewPassword {
		errs["new_password2"] = "Passwords do not match"
	}
	return errs
}

type PostForm struct {
	Title   string
	Content string
}

func ParsePostForm(values url.Values) *PostForm {
	return &PostForm{
		Title:   strings.TrimSpace(values.Get("title")),
		Content: strings.TrimSpace(values.Get("content")),
	}
}

func (f *PostForm) Validate() Errors {
	errs := Errors{}
	if n := utf8.RuneCountInString(f.Title); n < 1 || n > 140 {
		errs["title"] = "Title must be between 1 and 140 characters"
	}
	if f.Content == "" {
		errs["content"] = "Content is required"
	}
	return errs
}

type CommentForm struct {
	DisplayName string
	Email       string
	Content     string
}

func ParseCommentForm(values url.Values) *CommentForm {
	return &CommentForm{
		DisplayName: strings.TrimSpace(values.Get("display_name")),
		Email:       strings.TrimSpace(values.Get("email")),
		Content:     strings.TrimSpace(values.Get("content")),
	}
}

func (f *CommentForm) Validate() Errors {
	errs := Errors{}
	if n := utf8.RuneCountInString(f.DisplayName); n < 2 || n > 64 {
		errs["display_name"] = "Display name must be between 2 and 64 characters"
	}
	if !emailRe.MatchString(f.Email) {
		errs["email"] = "A valid email address is required"
	}
	if f.Content == "" {
		errs["content"] = "Comment content is required"
	}
	return errs
}
