package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/dmitrymomot/inkhive/internal/render"
	"github.com/dmitrymomot/inkhive/pkg/apiclient"
	"github.com/dmitrymomot/inkhive/pkg/blog"
	"github.com/dmitrymomot/inkhive/pkg/logger"
	"github.com/dmitrymomot/inkhive/pkg/session"
	"github.com/dmitrymomot/inkhive/pkg/validator"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// API is the part of the blog API the commands call.
type API interface {
	Register(ctx context.Context, in blog.Registration) (*blog.User, error)
	ListCategories(ctx context.Context, opts apiclient.ListOptions) (*blog.CategoryList, error)
	CreateCategory(ctx context.Context, in blog.CategoryInput) (*blog.Category, error)
	UpdateCategory(ctx context.Context, id blog.ID, in blog.CategoryInput) (*blog.Category, error)
	DeleteCategory(ctx context.Context, id blog.ID) error
	ListPosts(ctx context.Context, opts apiclient.ListOptions) (*blog.PostList, error)
	GetPost(ctx context.Context, id blog.ID) (*blog.Post, error)
	CreatePost(ctx context.Context, in blog.PostInput) (*blog.Post, error)
	UpdatePost(ctx context.Context, id blog.ID, in blog.PostInput) (*blog.Post, error)
	DeletePost(ctx context.Context, id blog.ID) error
	CreateComment(ctx context.Context, postID blog.ID, in blog.CommentInput) (*blog.Comment, error)
	UpdateComment(ctx context.Context, postID, commentID blog.ID, in blog.CommentInput) (*blog.Comment, error)
	DeleteComment(ctx context.Context, commentID blog.ID) error
}

// ServeFunc runs the web gateway until ctx is cancelled.
type ServeFunc func(ctx context.Context, args []string) error

// Deps are the collaborators of App. API calls must resolve the token
// through session.ContextTokens.
type Deps struct {
	API      API
	Sessions *session.Manager
	Serve    ServeFunc
	Logger   *slog.Logger
	In       io.Reader
	Out      io.Writer
	Err      io.Writer
}

type App struct {
	api      API
	sessions *session.Manager
	serve    ServeFunc
	logger   *slog.Logger
	in       *bufio.Reader
	out      io.Writer
	errOut   io.Writer

	render *render.Renderer
}

type command struct {
	usage string
	run   func(ctx context.Context, a *App, args []string) error
}

var commands = map[string]command{
	"login":      {"login -u USERNAME [-p PASSWORD]", runLogin},
	"logout":     {"logout", runLogout},
	"whoami":     {"whoami", runWhoami},
	"register":   {"register -u USERNAME -e EMAIL [-p PASSWORD]", runRegister},
	"categories": {"categories list|create|update|delete ...", runCategories},
	"posts":      {"posts list|show|create|update|delete ...", runPosts},
	"comments":   {"comments add|edit|delete ...", runComments},
	"home":       {"home", runHome},
	"serve":      {"serve [-addr ADDR]", runServe},
}

// New wires an App from deps. Nil writers discard output and a nil logger
// is silent.
func New(deps Deps) *App {
	a := &App{
		api:      deps.API,
		sessions: deps.Sessions,
		serve:    deps.Serve,
		logger:   deps.Logger,
		in:       bufio.NewReader(orEmpty(deps.In)),
		out:      orDiscard(deps.Out),
		errOut:   orDiscard(deps.Err),
	}
	if a.logger == nil {
		a.logger = logger.Discard()
	}
	return a
}

// Run executes one command line and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	global := flag.NewFlagSet("inkhive", flag.ContinueOnError)
	global.SetOutput(a.errOut)
	format := global.String("o", "table", "output format: table, json or yaml")
	global.Usage = a.usage
	if err := global.Parse(args); err != nil {
		return ExitUsage
	}

	f, err := render.ParseFormat(*format)
	if err != nil {
		fmt.Fprintln(a.errOut, err)
		return ExitUsage
	}
	a.render = render.New(a.out, f)

	rest := global.Args()
	if len(rest) == 0 {
		a.usage()
		return ExitUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(a.errOut, "unknown command %q\n\n", rest[0])
		a.usage()
		return ExitUsage
	}

	// serve resolves sessions per request from cookies, never from the CLI store.
	if rest[0] != "serve" {
		ctx = session.WithManager(ctx, a.sessions)
	}
	if err := cmd.run(ctx, a, rest[1:]); err != nil {
		return a.report(rest[0], cmd, err)
	}
	return ExitOK
}

func (a *App) usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.errOut, "usage: inkhive [-o table|json|yaml] <command> [args]")
	fmt.Fprintln(a.errOut, "\ncommands:")
	for _, name := range names {
		fmt.Fprintf(a.errOut, "  %s\n", commands[name].usage)
	}
}

// report prints err for a person and maps it to an exit code.
func (a *App) report(name string, cmd command, err error) int {
	a.logger.Debug("command failed", slog.String("command", name), logger.Error(err))

	if errors.Is(err, flag.ErrHelp) {
		return ExitUsage
	}
	if errors.Is(err, ErrUsage) {
		fmt.Fprintf(a.errOut, "%v\nusage: inkhive %s\n", err, cmd.usage)
		return ExitUsage
	}
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		for _, fe := range ve {
			fmt.Fprintf(a.errOut, "%s: %s\n", fe.Field, fe.Message)
		}
		return ExitError
	}

	var authErr *session.AuthError
	var apiErr *apiclient.APIError
	switch {
	case errors.As(err, &authErr):
		fmt.Fprintf(a.errOut, "login failed: %s\n", authErr.Message)
	case errors.Is(err, ErrNotLoggedIn), session.IsAbsent(err):
		fmt.Fprintln(a.errOut, "not logged in; run: inkhive login")
	case errors.As(err, &apiErr) && apiErr.IsUnauthorized():
		fmt.Fprintf(a.errOut, "%s; run: inkhive login\n", apiErr.Message)
	case errors.As(err, &apiErr):
		fmt.Fprintln(a.errOut, apiErr.Message)
	default:
		fmt.Fprintln(a.errOut, err)
	}
	return ExitError
}

// requireSession fails fast when a command needs a login.
func (a *App) requireSession(ctx context.Context) (*session.Session, error) {
	sess, err := a.sessions.Current(ctx)
	if err != nil {
		if session.IsAbsent(err) {
			return nil, errors.Join(ErrNotLoggedIn, err)
		}
		return nil, err
	}
	return sess, nil
}

// readLine returns the next line of input without its line ending.
func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("%w: no input", ErrUsage)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newFlags(name string, a *App) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

func orEmpty(r io.Reader) io.Reader {
	if r == nil {
		return strings.NewReader("")
	}
	return r
}
