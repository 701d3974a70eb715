// Package clientip resolves the address of the client behind a request.
//
// Proxy headers are only honoured when the server runs behind a proxy that
// sets them; otherwise a client could pick its own address. Resolution order
// with trusted headers is CF-Connecting-IP, X-Forwarded-For (first valid
// entry), X-Real-IP, then RemoteAddr.
//
//	r.Use(clientip.Middleware(trustProxy))
//	ip := clientip.FromContext(r.Context())
package clientip
