package post

import "errors"

// Error kinds, distinguished by observable behavior. Handlers map these
// to HTTP statuses; everything that is not a client mistake or a miss
// surfaces as a bare 500 with the details kept in the server log.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("post not found")
	ErrConflict   = errors.New("duplicate post id")
	ErrTransport  = errors.New("database unreachable")
	ErrBackend    = errors.New("database error")
)
