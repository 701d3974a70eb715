// Package environment models the deployment tier (local, dev, stage, prod)
// and propagates it through context.Context and structured logs.
//
// Live tiers (stage and prod) are served over HTTPS; session cookies issued
// there must carry the Secure flag and the "__Secure-" name prefix.
//
//	env := environment.Parse(os.Getenv("ENV"))
//	if env.IsLive() {
//	    // secure cookies
//	}
//
// Middleware stores the tier on every request context so handlers can call
// IsLive(ctx) without configuration plumbing.
package environment
