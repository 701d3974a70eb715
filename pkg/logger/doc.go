// Package logger builds *slog.Logger instances with tier-aware defaults and
// transparent injection of request-scoped values from context.Context.
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Parse(cfg.Env), "inkhive"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "session created", logger.Username(u.Username))
//
// Local and dev tiers log human-readable text at debug level; stage and prod
// log JSON at info level. Attribute helpers such as Error return an empty
// slog.Attr for nil input so callers never need a nil check.
package logger
