// Package requestid correlates a request across the gateway, its logs and
// the upstream blog API through the X-Request-ID header.
//
// Middleware assigns the ID, LoggerExtractor adds it to slog records and
// Propagate forwards it on outbound requests.
package requestid
