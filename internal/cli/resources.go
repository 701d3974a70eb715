package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/inkhive/internal/render"
	"github.com/dmitrymomot/inkhive/pkg/apiclient"
	"github.com/dmitrymomot/inkhive/pkg/async"
	"github.com/dmitrymomot/inkhive/pkg/blog"
)

func subcommand(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("%w: missing subcommand", ErrUsage)
	}
	return args[0], args[1:], nil
}

func parseList(a *App, name string, args []string) (apiclient.ListOptions, error) {
	fs := newFlags(name, a)
	var opts apiclient.ListOptions
	fs.IntVar(&opts.Page, "page", 1, "page number")
	fs.IntVar(&opts.Limit, "limit", 0, "items per page; 0 uses the API default")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.Page < 1 || opts.Limit < 0 {
		return opts, fmt.Errorf("%w: page must be positive", ErrUsage)
	}
	return opts, nil
}

func runCategories(ctx context.Context, a *App, args []string) error {
	sub, args, err := subcommand(args)
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		opts, err := parseList(a, "categories list", args)
		if err != nil {
			return err
		}
		list, err := a.api.ListCategories(ctx, opts)
		if err != nil {
			return err
		}
		return a.render.Categories(list)

	case "create":
		if err := exactArgs(args, 1, "NAME"); err != nil {
			return err
		}
		if _, err := a.requireSession(ctx); err != nil {
			return err
		}
		cat, err := a.api.CreateCategory(ctx, blog.CategoryInput{Name: args[0]})
		if err != nil {
			return err
		}
		return a.render.Category(cat)

	case "update":
		if err := exactArgs(args, 2, "ID NAME"); err != nil {
			return err
		}
		if _, err := a.requireSession(ctx); err != nil {
			return err
		}
		cat, err := a.api.UpdateCategory(ctx, blog.ID(args[0]), blog.CategoryInput{Name: args[1]})
		if err != nil {
			return err
		}
		return a.render.Category(cat)

	case "delete":
		if err := exactArgs(args, 1, "ID"); err != nil {
			return err
		}
		if _, err := a.requireSession(ctx); err != nil {
			return err
		}
		if err := a.api.DeleteCategory(ctx, blog.ID(args[0])); err != nil {
			return err
		}
		return a.render.Message("Category %s deleted.", args[0])

	default:
		return fmt.Errorf("%w: unknown subcommand %q", ErrUsage, sub)
	}
}

func parsePost(a *App, name string, args []string) (blog.PostInput, []string, error) {
	fs := newFlags(name, a)
	var in blog.PostInput
	var category string
	fs.StringVar(&in.Title, "title", "", "post title")
	fs.StringVar(&in.Content, "content", "", "post body; - reads it from standard input")
	fs.StringVar(&category, "category", "", "category id")
	if err := fs.Parse(args); err != nil {
		return in, nil, err
	}
	in.CategoryID = blog.ID(category)
	return in, fs.Args(), nil
}

func runPosts(ctx context.Context, a *App, args []string) error {
	sub, args, err := subcommand(args)
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		opts, err := parseList(a, "posts list", args)
		if err != nil {
			return err
		}
		list, err := a.api.ListPosts(ctx, opts)
		if err != nil {
			return err
		}
		return a.render.Posts(list)

	case "show":
		if err := exactArgs(args, 1, "ID"); err != nil {
			return err
		}
		post, err := a.api.GetPost(ctx, blog.ID(args[0]))
		if err != nil {
			return err
		}
		return a.render.Post(post)

	case "create":
		in, rest, err := parsePost(a, "posts create", args)
		if err != nil {
			return err
		}
		if err := exactArgs(rest, 0, "no positional arguments"); err != nil {
			return err
		}
		if in.Content, err = a.content(in.Content); err != nil {
			return err
		}
		if _, err := a.requireSession(ctx); err != nil {
			return err
		}
		post, err := a.api.CreatePost(ctx, in)
		if err != nil {
			return err
		}
		return a.render.Post(post)

	case "update":
		if len(args) == 0 {
			return fmt.Errorf("%w: expected ID", ErrUsage)
		}
		id := blog.ID(args[0])
		in, rest, err := parsePost(a, "posts update", args[1:])
		if err != nil {
			return err
		}
		if err := exactArgs(rest, 0, "ID followed by flags"); err != nil {
			return err
		}
		if in.Content, err = a.content(in.Content); err != nil {
			return err
		}
		if _, err := a.requireSession(ctx); err != nil {
			return err
		}
		post, err := a.api.UpdatePost(ctx, id, in)
		if err != nil {
			return err
		}
		return a.render.Post(post)

	case "delete":
		if err := exactArgs(args, 1, "ID"); err != nil {
			return err
		}
		if _, err := a.requireSession(ctx); err != nil {
			return err
		}
		if err := a.api.DeletePost(ctx, blog.ID(args[0])); err != nil {
			return err
		}
		return a.render.Message("Post %s deleted.", args[0])

	default:
		return fmt.Errorf("%w: unknown subcommand %q", ErrUsage, sub)
	}
}

func runComments(ctx context.Context, a *App, args []string) error {
	sub, args, err := subcommand(args)
	if err != nil {
		return err
	}

	switch sub {
	case "add":
		if err := exactArgs(args, 2, "POST_ID CONTENT"); err != nil {
			return err
		}
		content, err := a.content(args[1])
		if err != nil {
			return err
		}
		if _, err := a.requireSession(ctx); err != nil {
			return err
		}
		comment, err := a.api.CreateComment(ctx, blog.ID(args[0]), blog.CommentInput{Content: content})
		if err != nil {
			return err
		}
		return a.render.Comment(comment)

	case "edit":
		if err := exactArgs(args, 3, "POST_ID COMMENT_ID CONTENT"); err != nil {
			return err
		}
		content, err := a.content(args[2])
		if err != nil {
			return err
		}
		if _, err := a.requireSession(ctx); err != nil {
			return err
		}
		comment, err := a.api.UpdateComment(ctx, blog.ID(args[0]), blog.ID(args[1]), blog.CommentInput{Content: content})
		if err != nil {
			return err
		}
		return a.render.Comment(comment)

	case "delete":
		if err := exactArgs(args, 1, "COMMENT_ID"); err != nil {
			return err
		}
		if _, err := a.requireSession(ctx); err != nil {
			return err
		}
		if err := a.api.DeleteComment(ctx, blog.ID(args[0])); err != nil {
			return err
		}
		return a.render.Message("Comment %s deleted.", args[0])

	default:
		return fmt.Errorf("%w: unknown subcommand %q", ErrUsage, sub)
	}
}

// runHome loads the first page of categories and posts concurrently. Either
// list may fail without hiding the other.
func runHome(ctx context.Context, a *App, _ []string) error {
	first := apiclient.ListOptions{Page: 1}
	categories := async.Go(ctx, func(ctx context.Context) (*blog.CategoryList, error) {
		return a.api.ListCategories(ctx, first)
	})
	posts := async.Go(ctx, func(ctx context.Context) (*blog.PostList, error) {
		return a.api.ListPosts(ctx, first)
	})

	var home render.Home
	if list, err := categories.Await(); err != nil {
		home.CategoriesErr = err.Error()
	} else {
		home.Categories = list
	}
	if list, err := posts.Await(); err != nil {
		home.PostsErr = err.Error()
	} else {
		home.Posts = list
	}
	return a.render.Home(home)
}

// content reads the whole of standard input when s is "-".
func (a *App) content(s string) (string, error) {
	if s != "-" {
		return s, nil
	}
	var b strings.Builder
	if _, err := a.in.WriteTo(&b); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\r\n"), nil
}
