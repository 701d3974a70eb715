package blog

import "errors"

var (
	ErrInvalidID        = errors.New("blog.invalid_id")
	ErrInvalidTimestamp = errors.New("blog.invalid_timestamp")
)
