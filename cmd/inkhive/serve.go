package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/inkhive/internal/cli"
	"github.com/dmitrymomot/inkhive/internal/web"
	"github.com/dmitrymomot/inkhive/pkg/apiclient"
	"github.com/dmitrymomot/inkhive/pkg/config"
	"github.com/dmitrymomot/inkhive/pkg/cookie"
	"github.com/dmitrymomot/inkhive/pkg/environment"
	"github.com/dmitrymomot/inkhive/pkg/httpserver"
	"github.com/dmitrymomot/inkhive/pkg/jwt"
	"github.com/dmitrymomot/inkhive/pkg/ratelimiter"
	"github.com/dmitrymomot/inkhive/pkg/redis"
	"github.com/dmitrymomot/inkhive/pkg/secrets"
	"github.com/dmitrymomot/inkhive/pkg/session"
)

// Key purposes for secrets.Derive.
const (
	purposeCookie = "session-cookie"
	purposeToken  = "session-token"
)

const pruneInterval = 10 * time.Minute

var errNoAuthSecret = errors.New("inkhive.auth_secret_required")

func serve(appCfg appConfig, sessCfg session.Config, env environment.Environment, client *apiclient.Client, log *slog.Logger) cli.ServeFunc {
	return func(ctx context.Context, args []string) error {
		fs := flag.NewFlagSet("serve", flag.ContinueOnError)
		addr := fs.String("addr", "", "listen address; overrides HTTP_ADDR")
		if err := fs.Parse(args); err != nil {
			return err
		}

		var (
			httpCfg   httpserver.Config
			cookieCfg cookie.Config
			limitCfg  ratelimiter.Config
		)
		if err := config.Load(&httpCfg); err != nil {
			return err
		}
		if err := config.Load(&cookieCfg); err != nil {
			return err
		}
		if err := config.Load(&limitCfg); err != nil {
			return err
		}
		if appCfg.AuthSecret == "" {
			return errNoAuthSecret
		}

		cookies, err := newCookies(appCfg.AuthSecret, cookieCfg, env)
		if err != nil {
			return err
		}
		tokenKey, err := secrets.Derive(appCfg.AuthSecret, purposeToken)
		if err != nil {
			return err
		}
		signer, err := jwt.New(tokenKey, jwt.WithIssuer(session.TokenIssuer))
		if err != nil {
			return err
		}

		limits := ratelimiter.NewMemoryStore()
		go limits.RunPruner(ctx, pruneInterval)
		loginLimiter, err := ratelimiter.NewBucket(limits, limitCfg)
		if err != nil {
			return err
		}

		opts := []web.Option{
			web.WithLogger(log),
			web.WithEnvironment(env),
			web.WithTrustProxy(appCfg.TrustProxy),
			web.WithLoginLimiter(loginLimiter),
		}
		var sessions session.Factory

		switch sessCfg.Store {
		case session.StoreRedis:
			var redisCfg redis.Config
			if err := config.Load(&redisCfg); err != nil {
				return err
			}
			rdb, err := redis.Connect(ctx, redisCfg)
			if err != nil {
				return err
			}
			defer rdb.Close()

			store := session.NewRedisStore(redis.NewStorage(rdb, redisCfg.KeyPrefix))
			sessions = web.ServerSideSessions(cookies, store, client, log)
			opts = append(opts, web.WithReadinessCheck("redis", redis.Healthcheck(rdb)))
		case session.StoreCookie, "":
			sessions = web.CookieSessions(cookies, signer, client, log)
		default:
			return fmt.Errorf("%w: unknown SESSION_STORE %q", cli.ErrUsage, sessCfg.Store)
		}

		gateway := web.New(client, sessions, opts...)

		srvOpts := []httpserver.Option{httpserver.WithLogger(log)}
		if *addr != "" {
			srvOpts = append(srvOpts, httpserver.WithAddr(*addr))
		}
		return httpserver.NewFromConfig(httpCfg, srvOpts...).Run(ctx, gateway.Router())
	}
}

// newCookies keys the cookie manager from AUTH_SECRET. COOKIE_SECRETS, when
// set, takes over so keys can be rotated without changing AUTH_SECRET.
func newCookies(authSecret string, cfg cookie.Config, env environment.Environment) (*cookie.Manager, error) {
	var extra []cookie.Option
	if env.IsLive() {
		extra = append(extra, cookie.WithSecure(true))
	}
	if cfg.Secrets != "" {
		return cookie.NewFromConfig(cfg, extra...)
	}

	key, err := secrets.DeriveString(authSecret, purposeCookie)
	if err != nil {
		return nil, err
	}
	if cfg.Domain != "" {
		extra = append(extra, cookie.WithDomain(cfg.Domain))
	}
	if cfg.Secure {
		extra = append(extra, cookie.WithSecure(true))
	}
	return cookie.New([]string{key}, extra...)
}
