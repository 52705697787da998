package remote

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoID is returned when a create call succeeds but its payload carries no
// id to link against.
var ErrNoID = errors.New("created record has no id")

type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// Error is returned when the API answers with a non-empty "errors" list.
type Error struct {
	Status int
	Errors []GraphQLError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return fmt.Sprintf("remote api: %s", strings.Join(msgs, "; "))
}

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote api: unexpected status %d: %s", e.Code, e.Body)
}
