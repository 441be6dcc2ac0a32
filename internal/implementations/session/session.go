package session

import (
	"formcaptcha/internal/core/domain/session"

	"github.com/google/uuid"
)

type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateID() session.ID {
	return session.ID(uuid.New().String())
}
