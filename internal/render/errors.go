package render

import "errors"

var (
	ErrUnknownFormat = errors.New("render.unknown_format")
	ErrWriteFailed   = errors.New("render.write_failed")
)
