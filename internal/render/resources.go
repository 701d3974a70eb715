package render

import (
	"fmt"
	"io"

	"github.com/dmitrymomot/inkhive/pkg/blog"
)

const titleWidth = 48

func (r *Renderer) User(u blog.User) error {
	if r.format != FormatTable {
		return r.Value(u)
	}
	return r.table(func(w io.Writer) {
		fmt.Fprintf(w, "ID\t%s\n", u.ID)
		fmt.Fprintf(w, "Username\t%s\n", u.Username)
		if u.Email != "" {
			fmt.Fprintf(w, "Email\t%s\n", u.Email)
		}
	})
}

func (r *Renderer) Categories(list *blog.CategoryList) error {
	if r.format != FormatTable {
		return r.Value(list)
	}
	if len(list.Categories) == 0 {
		return r.Message("No categories found.")
	}
	if err := r.table(func(w io.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tPOSTS\tCREATOR")
		for _, c := range list.Categories {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, r.Number(c.PostCount), username(c.Creator))
		}
	}); err != nil {
		return err
	}
	return r.footer(list.Pagination)
}

func (r *Renderer) Category(c *blog.Category) error {
	if r.format != FormatTable {
		return r.Value(c)
	}
	return r.table(func(w io.Writer) {
		fmt.Fprintf(w, "ID\t%s\n", c.ID)
		fmt.Fprintf(w, "Name\t%s\n", c.Name)
		fmt.Fprintf(w, "Posts\t%s\n", r.Number(c.PostCount))
	})
}

func (r *Renderer) Posts(list *blog.PostList) error {
	if r.format != FormatTable {
		return r.Value(list)
	}
	if len(list.Posts) == 0 {
		return r.Message("No posts found.")
	}
	if err := r.table(func(w io.Writer) {
		fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tCATEGORY\tCOMMENTS\tCREATED")
		for _, p := range list.Posts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				p.ID, oneLine(p.Title, titleWidth), username(p.Author), categoryName(p),
				r.Number(len(p.Comments)), r.Date(p.CreatedAt))
		}
	}); err != nil {
		return err
	}
	return r.footer(list.Pagination)
}

// Post prints the post header, its body and its comments.
func (r *Renderer) Post(p *blog.Post) error {
	if r.format != FormatTable {
		return r.Value(p)
	}
	if _, err := r.printer.Fprintf(r.out, "%s\n%s | Author: %s | Comments: (%d) | Category: %s\n\n%s\n",
		p.Title, r.Date(p.CreatedAt), username(p.Author), len(p.Comments), categoryName(*p), p.Content); err != nil {
		return wrapWrite(err)
	}
	if len(p.Comments) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(r.out, "\nComments"); err != nil {
		return wrapWrite(err)
	}
	return r.table(func(w io.Writer) {
		for _, c := range p.Comments {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, username(c.Author), r.Date(c.CreatedAt), oneLine(c.Content, 72))
		}
	})
}

func (r *Renderer) Comment(c *blog.Comment) error {
	if r.format != FormatTable {
		return r.Value(c)
	}
	return r.table(func(w io.Writer) {
		fmt.Fprintf(w, "ID\t%s\n", c.ID)
		fmt.Fprintf(w, "Author\t%s\n", username(c.Author))
		fmt.Fprintf(w, "Created\t%s\n", r.Date(c.CreatedAt))
		fmt.Fprintf(w, "Content\t%s\n", oneLine(c.Content, 72))
	})
}

// Home is the landing view: both lists, each of which may have failed on
// its own.
type Home struct {
	Categories    *blog.CategoryList `json:"categories,omitempty"`
	CategoriesErr string             `json:"categories_error,omitempty"`
	Posts         *blog.PostList     `json:"posts,omitempty"`
	PostsErr      string             `json:"posts_error,omitempty"`
}

func (r *Renderer) Home(h Home) error {
	if r.format != FormatTable {
		return r.Value(h)
	}
	if err := r.Message("Categories"); err != nil {
		return err
	}
	if err := r.section(h.CategoriesErr, func() error { return r.Categories(h.Categories) }, h.Categories != nil); err != nil {
		return err
	}
	if err := r.Message("\nRecent posts"); err != nil {
		return err
	}
	return r.section(h.PostsErr, func() error { return r.Posts(h.Posts) }, h.Posts != nil)
}

func (r *Renderer) section(failure string, show func() error, ok bool) error {
	switch {
	case failure != "":
		return r.Message("  error: %s", failure)
	case !ok:
		return nil
	default:
		return show()
	}
}

func categoryName(p blog.Post) string {
	switch {
	case p.Category != nil && p.Category.Name != "":
		return p.Category.Name
	case !p.CategoryID.IsZero():
		return "#" + p.CategoryID.String()
	default:
		return "-"
	}
}
