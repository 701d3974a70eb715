package web

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/inkhive/pkg/apiclient"
	"github.com/dmitrymomot/inkhive/pkg/async"
	"github.com/dmitrymomot/inkhive/pkg/blog"
)

func paginationMeta(p blog.Pagination) map[string]any {
	return map[string]any{"pagination": p}
}

func (g *Gateway) listCategories(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	list, err := g.api.ListCategories(r.Context(), opts)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, list.Categories, paginationMeta(list.Pagination))
}

func (g *Gateway) createCategory(w http.ResponseWriter, r *http.Request) {
	var in blog.CategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}
	cat, err := g.api.CreateCategory(r.Context(), in)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, cat, nil)
}

func (g *Gateway) updateCategory(w http.ResponseWriter, r *http.Request) {
	var in blog.CategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}
	cat, err := g.api.UpdateCategory(r.Context(), pathID(r, "id"), in)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, cat, nil)
}

func (g *Gateway) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := g.api.DeleteCategory(r.Context(), pathID(r, "id")); err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusNoContent, nil, nil)
}

func (g *Gateway) listPosts(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	list, err := g.api.ListPosts(r.Context(), opts)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, list.Posts, paginationMeta(list.Pagination))
}

func (g *Gateway) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := g.api.GetPost(r.Context(), pathID(r, "id"))
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, post, nil)
}

func (g *Gateway) createPost(w http.ResponseWriter, r *http.Request) {
	var in blog.PostInput
	if err := decodeJSON(w, r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}
	post, err := g.api.CreatePost(r.Context(), in)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, post, nil)
}

func (g *Gateway) updatePost(w http.ResponseWriter, r *http.Request) {
	var in blog.PostInput
	if err := decodeJSON(w, r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}
	post, err := g.api.UpdatePost(r.Context(), pathID(r, "id"), in)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, post, nil)
}

func (g *Gateway) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := g.api.DeletePost(r.Context(), pathID(r, "id")); err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusNoContent, nil, nil)
}

func (g *Gateway) createComment(w http.ResponseWriter, r *http.Request) {
	var in blog.CommentInput
	if err := decodeJSON(w, r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}
	comment, err := g.api.CreateComment(r.Context(), pathID(r, "id"), in)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, comment, nil)
}

func (g *Gateway) updateComment(w http.ResponseWriter, r *http.Request) {
	var in blog.CommentInput
	if err := decodeJSON(w, r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}
	comment, err := g.api.UpdateComment(r.Context(), pathID(r, "id"), pathID(r, "commentID"), in)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, comment, nil)
}

func (g *Gateway) deleteComment(w http.ResponseWriter, r *http.Request) {
	if err := g.api.DeleteComment(r.Context(), pathID(r, "commentID")); err != nil {
		g.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusNoContent, nil, nil)
}

// section is one independently fetched part of the home view.
type section struct {
	Data       any              `json:"data,omitempty"`
	Pagination *blog.Pagination `json:"pagination,omitempty"`
	Error      *ErrorDetail     `json:"error,omitempty"`
}

// home fetches categories and posts concurrently. A failure in one section
// is reported in that section only.
func (g *Gateway) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	first := apiclient.ListOptions{Page: 1}

	categories := async.Go(ctx, func(ctx context.Context) (*blog.CategoryList, error) {
		return g.api.ListCategories(ctx, first)
	})
	posts := async.Go(ctx, func(ctx context.Context) (*blog.PostList, error) {
		return g.api.ListPosts(ctx, first)
	})

	var catSection, postSection section
	if list, err := categories.Await(); err != nil {
		_, catSection.Error = errorDetail(err)
	} else {
		catSection = section{Data: list.Categories, Pagination: &list.Pagination}
	}
	if list, err := posts.Await(); err != nil {
		_, postSection.Error = errorDetail(err)
	} else {
		postSection = section{Data: list.Posts, Pagination: &list.Pagination}
	}

	writeData(w, http.StatusOK, map[string]section{
		"categories": catSection,
		"posts":      postSection,
	}, nil)
}
