package validatecaptcha

import (
	"context"
	"formcaptcha/internal/core/domain/captcha"
	c "formcaptcha/internal/core/domain/common"
	e "formcaptcha/internal/core/domain/errors"
	"formcaptcha/internal/core/domain/form"
	"formcaptcha/internal/core/domain/logging"
	"formcaptcha/internal/core/domain/session"
	"formcaptcha/internal/core/services"
)

type Input struct {
	Mail      form.Mail
	SessionID session.ID
	Action    form.Action
}

type Result struct {
	IsValid bool
	Errors  []captcha.Error
}

type service struct {
	log            logging.Logger
	formRepository form.Repository
	verifier       captcha.Verifier
}

func New(
	log logging.Logger,
	formRepository form.Repository,
	verifier captcha.Verifier,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if formRepository == nil {
		panic(e.NewNilArgumentError("formRepository"))
	}
	if verifier == nil {
		panic(e.NewNilArgumentError("verifier"))
	}
	return &service{
		log:            log,
		formRepository: formRepository,
		verifier:       verifier,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	hasCaptcha, err := s.formRepository.HasCaptcha(ctx, input.Mail.Form.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("formID", input.Mail.Form.ID))
		return result, err
	}
	if !hasCaptcha {
		return Result{IsValid: true}, nil
	}

	v := validator{
		verifier:       s.verifier,
		sessionID:      input.SessionID,
		clearChallenge: input.Action.ClearsChallenge(),
		errors:         captcha.NewErrors(),
	}
	v.validate(ctx, input.Mail)

	result = Result{IsValid: v.errors.IsValid(), Errors: v.errors.List()}
	if !result.IsValid {
		s.log.Info(
			ctx,
			"Captcha validation failed.",
			logging.Entry("formID", input.Mail.Form.ID),
			logging.Entry("action", input.Action),
			logging.Entry("errors", result.Errors),
		)
	}
	return result, nil
}

// validator holds the state of a single validation call.
type validator struct {
	verifier         captcha.Verifier
	sessionID        session.ID
	clearChallenge   bool
	captchaFieldSeen bool
	errors           *captcha.Errors
}

func (v *validator) validate(ctx context.Context, mail form.Mail) {
	for _, answer := range mail.Answers {
		if !answer.Field.IsCaptcha() {
			continue
		}

		v.captchaFieldSeen = true
		isValid := v.verifier.Verify(ctx, captcha.VerifyInput{
			SessionID:      v.sessionID,
			Value:          answer.Value,
			Field:          answer.Field,
			ClearChallenge: v.clearChallenge,
		})
		if !isValid {
			v.errors.Add(captcha.ErrorCodeMismatch, c.NewOptional(answer.Field, true))
			v.errors.SetIsValid(false)
		}
	}

	// The captcha field may have been removed from the page.
	if !v.captchaFieldSeen {
		v.errors.Add(captcha.ErrorCodeMissing, c.None[form.Field]())
		v.errors.SetIsValid(false)
	}
}
