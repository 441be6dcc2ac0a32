package captcha

import (
	"context"
	"formcaptcha/internal/core/domain/form"
	"formcaptcha/internal/core/domain/session"
)

// SessionChallengeKey is the session slot holding the simple session challenge.
const SessionChallengeKey = "captcha_string"

type VerifyInput struct {
	SessionID      session.ID
	Value          string
	Field          form.Field
	ClearChallenge bool
}

type Verifier interface {
	Verify(ctx context.Context, input VerifyInput) bool
}

// CalculatingCaptcha owns storage and clearing of calculating challenges.
type CalculatingCaptcha interface {
	ValidCode(
		ctx context.Context,
		sessionID session.ID,
		value string,
		field form.Field,
		clearOnSuccess bool,
	) bool
}

// Challenge is what the client gets to see. Image is a base64 data URI,
// the expected answer never leaves the session.
type Challenge struct {
	Mode  Mode
	Image string
}

type ChallengeIssuer interface {
	Issue(ctx context.Context, sessionID session.ID, field form.Field) (Challenge, error)
}
