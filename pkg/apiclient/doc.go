// Package apiclient is the HTTP client of the blog API.
//
// Every call goes through Client.Request: it attaches the bearer token from
// the configured TokenSource when a session is live, sends the body as JSON
// and turns any non-2xx response into *APIError. Calls are not retried.
//
//	client, err := apiclient.New("https://api.example.com", apiclient.WithTokenSource(manager))
//	raw, err := client.Request(ctx, http.MethodGet, "/categories", nil)
//
//	var apiErr *apiclient.APIError
//	if errors.As(err, &apiErr) && apiErr.IsTransport() {
//		// no response at all
//	}
//
// Typed wrappers (ListCategories, CreatePost, ...) bind paths and schemas from
// package blog. Client also implements session.Authenticator through
// Exchange, so a session.Manager can log in with it.
package apiclient
