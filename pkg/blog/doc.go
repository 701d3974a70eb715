// Package blog holds the resource schemas exchanged with the blog API and the
// validated inputs sent to it.
//
// Decoding is lenient where servers disagree: identifiers accept JSON numbers
// and strings, timestamps accept RFC 3339 and zone-less ISO 8601, and list
// responses accept either the paginated envelope or a bare array.
package blog
