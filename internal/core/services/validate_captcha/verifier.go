package validatecaptcha

import (
	"context"
	"formcaptcha/internal/core/domain/captcha"
	e "formcaptcha/internal/core/domain/errors"
	"formcaptcha/internal/core/domain/logging"
	"formcaptcha/internal/core/domain/session"
)

// NewVerifier selects the verification strategy of the given mode.
func NewVerifier(
	log logging.Logger,
	mode captcha.Mode,
	sessionStore session.Store,
	calculatingCaptcha captcha.CalculatingCaptcha,
) captcha.Verifier {
	switch mode {
	case captcha.SimpleSession:
		return NewSessionVerifier(log, sessionStore)
	default:
		return NewCalculatingVerifier(calculatingCaptcha)
	}
}

type SessionVerifier struct {
	log          logging.Logger
	sessionStore session.Store
}

func NewSessionVerifier(log logging.Logger, sessionStore session.Store) *SessionVerifier {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionStore == nil {
		panic(e.NewNilArgumentError("sessionStore"))
	}
	return &SessionVerifier{log: log, sessionStore: sessionStore}
}

// Verify compares the value with the challenge stored in the session.
// With ClearChallenge the challenge is consumed whatever the outcome is.
func (v *SessionVerifier) Verify(ctx context.Context, input captcha.VerifyInput) bool {
	challenge, err := v.sessionStore.Get(ctx, input.SessionID, captcha.SessionChallengeKey)
	if err != nil {
		logging.Error(ctx, v.log, err, logging.Entry("fieldID", input.Field.ID))
		challenge = ""
	}

	if input.ClearChallenge {
		err := v.sessionStore.Set(ctx, input.SessionID, captcha.SessionChallengeKey, "")
		if err != nil {
			logging.Error(ctx, v.log, err, logging.Entry("fieldID", input.Field.ID))
		}
	}

	return input.Value != "" && input.Value == challenge
}

type CalculatingVerifier struct {
	calculatingCaptcha captcha.CalculatingCaptcha
}

func NewCalculatingVerifier(calculatingCaptcha captcha.CalculatingCaptcha) *CalculatingVerifier {
	if calculatingCaptcha == nil {
		panic(e.NewNilArgumentError("calculatingCaptcha"))
	}
	return &CalculatingVerifier{calculatingCaptcha: calculatingCaptcha}
}

func (v *CalculatingVerifier) Verify(ctx context.Context, input captcha.VerifyInput) bool {
	return v.calculatingCaptcha.ValidCode(
		ctx,
		input.SessionID,
		input.Value,
		input.Field,
		input.ClearChallenge,
	)
}

// AllowAlwaysVerifier accepts any answer, it is used in test mode only.
type AllowAlwaysVerifier struct{}

func NewAllowAlwaysVerifier() *AllowAlwaysVerifier {
	return &AllowAlwaysVerifier{}
}

func (v *AllowAlwaysVerifier) Verify(ctx context.Context, input captcha.VerifyInput) bool {
	return true
}
