package blog

// User is the public summary of an account.
type User struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type Category struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	PostCount int    `json:"post_count"`
	Creator   *User  `json:"creator,omitempty"`
}

type Comment struct {
	ID        ID        `json:"id"`
	Content   string    `json:"content"`
	Author    *User     `json:"author,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

type Post struct {
	ID         ID        `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     *User     `json:"author,omitempty"`
	CategoryID ID        `json:"category_id,omitempty"`
	Category   *Category `json:"category,omitempty"`
	Comments   []Comment `json:"comments,omitempty"`
	CreatedAt  Timestamp `json:"created_at"`
	UpdatedAt  Timestamp `json:"updated_at"`
}

// OwnedBy reports whether u authored the post.
func (p Post) OwnedBy(u User) bool {
	return p.Author != nil && !u.ID.IsZero() && p.Author.ID == u.ID
}

// OwnedBy reports whether u created the category.
func (c Category) OwnedBy(u User) bool {
	return c.Creator != nil && !u.ID.IsZero() && c.Creator.ID == u.ID
}

// OwnedBy reports whether u wrote the comment.
func (c Comment) OwnedBy(u User) bool {
	return c.Author != nil && !u.ID.IsZero() && c.Author.ID == u.ID
}
