package session

import (
	"context"
	"errors"
)

var ErrInvalidSessionID = errors.New("invalid session ID")

type ID string

func (id ID) IsZero() bool {
	return string(id) == ""
}

// Store keeps named string slots per session.
// Reading a slot that was never set returns an empty string and no error.
type Store interface {
	Get(ctx context.Context, id ID, key string) (string, error)
	Set(ctx context.Context, id ID, key string, value string) error
}

type IDGenerator interface {
	GenerateID() ID
}
