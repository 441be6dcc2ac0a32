package calculatingcaptcha

import (
	"context"
	"fmt"
	"formcaptcha/internal/core/domain/captcha"
	e "formcaptcha/internal/core/domain/errors"
	"formcaptcha/internal/core/domain/form"
	"formcaptcha/internal/core/domain/logging"
	"formcaptcha/internal/core/domain/session"
	"strings"

	"github.com/mojocn/base64Captcha"
)

const (
	IMAGE_WIDTH  = 240
	IMAGE_HEIGHT = 80
)

func NewDriver() base64Captcha.Driver {
	return base64Captcha.NewDriverMath(
		IMAGE_HEIGHT,
		IMAGE_WIDTH,
		0,
		base64Captcha.OptionShowHollowLine,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
}

// Service draws arithmetic challenges and validates answers to them.
// Results are kept in the session, one slot per captcha field.
type Service struct {
	log          logging.Logger
	sessionStore session.Store
	driver       base64Captcha.Driver
}

func New(log logging.Logger, sessionStore session.Store, driver base64Captcha.Driver) *Service {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionStore == nil {
		panic(e.NewNilArgumentError("sessionStore"))
	}
	if driver == nil {
		panic(e.NewNilArgumentError("driver"))
	}
	return &Service{log: log, sessionStore: sessionStore, driver: driver}
}

func (s *Service) Issue(ctx context.Context, sessionID session.ID, field form.Field) (c captcha.Challenge, err error) {
	_, question, result := s.driver.GenerateIdQuestionAnswer()
	item, err := s.driver.DrawCaptcha(question)
	if err != nil {
		return c, err
	}
	if err := s.sessionStore.Set(ctx, sessionID, resultKey(field), result); err != nil {
		return c, err
	}
	return captcha.Challenge{Mode: captcha.Calculating, Image: item.EncodeB64string()}, nil
}

// ValidCode checks the answer, the result is cleared only on success.
func (s *Service) ValidCode(
	ctx context.Context,
	sessionID session.ID,
	value string,
	field form.Field,
	clearOnSuccess bool,
) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	expected, err := s.sessionStore.Get(ctx, sessionID, resultKey(field))
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("fieldID", field.ID))
		return false
	}
	if expected == "" || expected != value {
		return false
	}

	if clearOnSuccess {
		if err := s.sessionStore.Set(ctx, sessionID, resultKey(field), ""); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("fieldID", field.ID))
		}
	}
	return true
}

func resultKey(field form.Field) string {
	return fmt.Sprintf("calculating_captcha::%d", field.ID)
}
