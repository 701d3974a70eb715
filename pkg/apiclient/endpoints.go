package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/inkhive/pkg/blog"
)

// ListOptions selects a page of a list endpoint. Zero values are omitted.
type ListOptions struct {
	Page  int
	Limit int
}

func (o ListOptions) encode(path string) string {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func idPath(prefix string, id blog.ID, rest ...string) string {
	p := prefix + "/" + url.PathEscape(id.String())
	for _, r := range rest {
		p += r
	}
	return p
}

func (c *Client) ListCategories(ctx context.Context, opts ListOptions) (*blog.CategoryList, error) {
	var list blog.CategoryList
	if err := c.Do(ctx, http.MethodGet, opts.encode("/categories"), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) CreateCategory(ctx context.Context, in blog.CategoryInput) (*blog.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var cat blog.Category
	if err := c.Do(ctx, http.MethodPost, "/categories", in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id blog.ID, in blog.CategoryInput) (*blog.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var cat blog.Category
	if err := c.Do(ctx, http.MethodPut, idPath("/categories", id), in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id blog.ID) error {
	return c.Do(ctx, http.MethodDelete, idPath("/categories", id), nil, nil)
}

func (c *Client) ListPosts(ctx context.Context, opts ListOptions) (*blog.PostList, error) {
	var list blog.PostList
	if err := c.Do(ctx, http.MethodGet, opts.encode("/posts"), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) GetPost(ctx context.Context, id blog.ID) (*blog.Post, error) {
	var post blog.Post
	if err := c.Do(ctx, http.MethodGet, idPath("/posts", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreatePost(ctx context.Context, in blog.PostInput) (*blog.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var post blog.Post
	if err := c.Do(ctx, http.MethodPost, "/posts", in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) UpdatePost(ctx context.Context, id blog.ID, in blog.PostInput) (*blog.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var post blog.Post
	if err := c.Do(ctx, http.MethodPut, idPath("/posts", id), in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, id blog.ID) error {
	return c.Do(ctx, http.MethodDelete, idPath("/posts", id), nil, nil)
}

func (c *Client) CreateComment(ctx context.Context, postID blog.ID, in blog.CommentInput) (*blog.Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var comment blog.Comment
	if err := c.Do(ctx, http.MethodPost, idPath("/posts", postID, "/comments"), in, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) UpdateComment(ctx context.Context, postID, commentID blog.ID, in blog.CommentInput) (*blog.Comment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var comment blog.Comment
	path := idPath("/posts", postID, "/comments/", url.PathEscape(commentID.String()))
	if err := c.Do(ctx, http.MethodPut, path, in, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, commentID blog.ID) error {
	return c.Do(ctx, http.MethodDelete, idPath("/comments", commentID), nil, nil)
}

// Healthz checks that the API answers.
func (c *Client) Healthz(ctx context.Context) error {
	_, _, err := c.send(ctx, http.MethodGet, "/healthz", nil, false)
	return err
}
