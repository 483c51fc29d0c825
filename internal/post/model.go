package post

import (
	"time"

	"github.com/google/uuid"
)

// SubmitData is the payload a client sends when creating a post.
// Pointer fields distinguish "missing" from "empty": a request without
// a title or content key is rejected before it reaches the service.
type SubmitData struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// ReturnData is what the read paths hand back to clients.
type ReturnData struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
}
