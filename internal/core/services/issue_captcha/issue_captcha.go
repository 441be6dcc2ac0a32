package issuecaptcha

import (
	"context"
	"errors"
	"fmt"
	"formcaptcha/internal/core/domain/captcha"
	e "formcaptcha/internal/core/domain/errors"
	"formcaptcha/internal/core/domain/form"
	"formcaptcha/internal/core/domain/logging"
	"formcaptcha/internal/core/domain/session"
	"formcaptcha/internal/core/services"
	"net/netip"
)

type Input struct {
	FormID    form.ID
	FieldID   form.FieldID
	SessionID session.ID
	IP        netip.Addr
}

// GetRateLimitKey uses the client address, a new session is free to get.
func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("issue-captcha::%s", i.IP)
}

type Result struct {
	Challenge captcha.Challenge
}

type service struct {
	log             logging.Logger
	formRepository  form.Repository
	challengeIssuer captcha.ChallengeIssuer
}

func New(
	log logging.Logger,
	formRepository form.Repository,
	challengeIssuer captcha.ChallengeIssuer,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if formRepository == nil {
		panic(e.NewNilArgumentError("formRepository"))
	}
	if challengeIssuer == nil {
		panic(e.NewNilArgumentError("challengeIssuer"))
	}
	return &service{
		log:             log,
		formRepository:  formRepository,
		challengeIssuer: challengeIssuer,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.SessionID.IsZero() {
		return result, captcha.ErrSessionIsNotPassed
	}

	fields, err := s.formRepository.ListFields(ctx, input.FormID)
	if err != nil {
		if !errors.Is(err, form.ErrFormDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	field, err := findField(fields, input.FieldID)
	if err != nil {
		s.log.Info(ctx, "Captcha field not found.", logging.Entry("input", input), logging.Entry("err", err))
		return result, err
	}

	challenge, err := s.challengeIssuer.Issue(ctx, input.SessionID, field)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Debug(
		ctx,
		"Captcha challenge issued.",
		logging.Entry("formID", input.FormID),
		logging.Entry("fieldID", input.FieldID),
		logging.Entry("mode", challenge.Mode),
	)
	return Result{Challenge: challenge}, nil
}

func findField(fields []form.Field, id form.FieldID) (field form.Field, err error) {
	for _, f := range fields {
		if f.ID != id {
			continue
		}
		if !f.IsCaptcha() {
			return field, captcha.ErrFieldIsNotCaptcha
		}
		return f, nil
	}
	return field, form.ErrFieldDoesNotExist
}
