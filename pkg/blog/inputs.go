package blog

import "github.com/dmitrymomot/inkhive/pkg/validator"

const (
	MinPasswordLength  = 8
	MaxCategoryNameLen = 100
)

// Credentials are exchanged for a session. They are never persisted.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	return validator.Apply(
		validator.WithMessage(validator.Required("username", c.Username), "Username is required"),
		validator.WithMessage(validator.MinLen("password", c.Password, MinPasswordLength), "Password must be at least 8 characters"),
	)
}

type Registration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

func (r Registration) Validate() error {
	return validator.Apply(
		validator.WithMessage(validator.Required("username", r.Username), "Username is required"),
		validator.WithMessage(validator.ValidEmail("email", r.Email), "Invalid email address"),
		validator.WithMessage(validator.MinLen("password", r.Password, MinPasswordLength), "Password must be at least 8 characters"),
		validator.WithMessage(validator.MinLen("password_confirm", r.PasswordConfirm, MinPasswordLength), "Password must be at least 8 characters"),
		validator.WithMessage(validator.Equal("password_confirm", r.PasswordConfirm, r.Password), "Passwords do not match"),
	)
}

type CategoryInput struct {
	Name string `json:"name"`
}

func (c CategoryInput) Validate() error {
	return validator.Apply(
		validator.WithMessage(validator.Required("name", c.Name), "Name is required"),
		validator.MaxLen("name", c.Name, MaxCategoryNameLen),
	)
}

type PostInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID ID     `json:"category_id"`
}

func (p PostInput) Validate() error {
	return validator.Apply(
		validator.WithMessage(validator.Required("title", p.Title), "Title is required"),
		validator.WithMessage(validator.Required("content", p.Content), "Content is required"),
		validator.WithMessage(validator.RequiredComparable("category_id", p.CategoryID), "Category is required"),
	)
}

type CommentInput struct {
	Content string `json:"content"`
}

func (c CommentInput) Validate() error {
	return validator.Apply(
		validator.WithMessage(validator.Required("content", c.Content), "Comment content is required"),
	)
}
