package sessioncaptcha

import (
	"context"
	"formcaptcha/internal/core/domain/captcha"
	e "formcaptcha/internal/core/domain/errors"
	"formcaptcha/internal/core/domain/form"
	"formcaptcha/internal/core/domain/session"

	"github.com/mojocn/base64Captcha"
)

const (
	IMAGE_WIDTH      = 240
	IMAGE_HEIGHT     = 80
	CHALLENGE_LENGTH = 6
	// 0/O and 1/l/I are left out, they are hard to tell apart on the image.
	CHALLENGE_SOURCE = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

func NewDriver() base64Captcha.Driver {
	return base64Captcha.NewDriverString(
		IMAGE_HEIGHT,
		IMAGE_WIDTH,
		0,
		base64Captcha.OptionShowHollowLine,
		CHALLENGE_LENGTH,
		CHALLENGE_SOURCE,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
}

// Issuer draws a random string and keeps it in the slot read by the simple session verifier.
type Issuer struct {
	sessionStore session.Store
	driver       base64Captcha.Driver
}

func New(sessionStore session.Store, driver base64Captcha.Driver) *Issuer {
	if sessionStore == nil {
		panic(e.NewNilArgumentError("sessionStore"))
	}
	if driver == nil {
		panic(e.NewNilArgumentError("driver"))
	}
	return &Issuer{sessionStore: sessionStore, driver: driver}
}

func (i *Issuer) Issue(ctx context.Context, sessionID session.ID, field form.Field) (c captcha.Challenge, err error) {
	_, content, answer := i.driver.GenerateIdQuestionAnswer()
	item, err := i.driver.DrawCaptcha(content)
	if err != nil {
		return c, err
	}
	if err := i.sessionStore.Set(ctx, sessionID, captcha.SessionChallengeKey, answer); err != nil {
		return c, err
	}
	return captcha.Challenge{Mode: captcha.SimpleSession, Image: item.EncodeB64string()}, nil
}
