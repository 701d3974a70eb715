// Package cli implements the inkhive command line client.
//
// Each invocation builds a session.Manager over a file store, so a login
// survives between runs until the session expires or the user logs out.
// The API client reads the token from the manager stored in the context.
//
//	inkhive login -u alice
//	inkhive posts list -page 2
//	inkhive -o yaml whoami
package cli
