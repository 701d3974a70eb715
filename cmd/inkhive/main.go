package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/inkhive/internal/cli"
	"github.com/dmitrymomot/inkhive/pkg/apiclient"
	"github.com/dmitrymomot/inkhive/pkg/clientip"
	"github.com/dmitrymomot/inkhive/pkg/config"
	"github.com/dmitrymomot/inkhive/pkg/environment"
	"github.com/dmitrymomot/inkhive/pkg/logger"
	"github.com/dmitrymomot/inkhive/pkg/requestid"
	"github.com/dmitrymomot/inkhive/pkg/session"
)

type appConfig struct {
	Env        string `env:"ENV" envDefault:"local"`
	LogLevel   string `env:"LOG_LEVEL"`
	AuthSecret string `env:"AUTH_SECRET"`
	TrustProxy bool   `env:"HTTP_TRUST_PROXY" envDefault:"false"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		appCfg  appConfig
		apiCfg  apiclient.Config
		sessCfg session.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&appCfg) },
		func() error { return config.Load(&apiCfg) },
		func() error { return config.Load(&sessCfg) },
	} {
		if err := load(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return cli.ExitError
		}
	}

	env := environment.Parse(appCfg.Env)
	log := newLogger(env, appCfg.LogLevel, isServe(args))

	client, err := apiclient.NewFromConfig(apiCfg,
		apiclient.WithTokenSource(session.ContextTokens{}),
		apiclient.WithLogger(log),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitError
	}

	app := cli.New(cli.Deps{
		API: client,
		Sessions: session.New(
			session.WithStore(session.NewFileStore(sessCfg.FilePath())),
			session.WithAuthenticator(client),
			session.WithLogger(log),
		),
		Serve:  serve(appCfg, sessCfg, env, client, log),
		Logger: log,
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx, args)
}

// newLogger uses tier defaults for the server. Client commands only log
// warnings unless LOG_LEVEL says otherwise, so normal output stays clean.
func newLogger(env environment.Environment, level string, server bool) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(env, "inkhive"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
		),
	}
	if !server {
		opts = append(opts, logger.WithLevel(slog.LevelWarn), logger.WithFormat(logger.FormatText))
	}
	opts = append(opts, logger.WithLevelName(level))

	l := logger.New(opts...)
	logger.SetAsDefault(l)
	return l
}

func isServe(args []string) bool {
	for _, a := range args {
		if a == "serve" {
			return true
		}
	}
	return false
}
