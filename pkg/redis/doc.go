// Package redis connects to Redis through go-redis and exposes a small
// namespaced key/value Storage used for server-side sessions.
//
//	client, err := redis.Connect(ctx, cfg) // retries per cfg
//	store := redis.NewStorage(client, cfg.KeyPrefix)
//	err = store.Set(ctx, "session:"+id, payload, ttl)
//
// Healthcheck adapts a client into a readiness probe for the HTTP gateway.
package redis
