package submitmail

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
	validatecaptcha "formcaptcha/internal/core/services/validate_captcha"
	"net/netip"
)

type AnswerInput struct {
	FieldID form.FieldID
	Value   string
}

type Input struct {
	FormID    form.ID
	Answers   []AnswerInput
	SessionID session.ID
	Action    form.Action
	IP        netip.Addr
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("submit-mail::%s", i.IP)
}

type Result struct {
	Mail        form.Mail
	IsPublished bool
}

type InvalidCaptchaError struct {
	Errors []captcha.Error
}

func (err *InvalidCaptchaError) Error() string {
	return fmt.Sprintf("%s (%d errors)", captcha.ErrInvalidCaptcha, len(err.Errors))
}

func (err *InvalidCaptchaError) Unwrap() error {
	return captcha.ErrInvalidCaptcha
}

type service struct {
	log             logging.Logger
	formRepository  form.Repository
	validateCaptcha services.Service[validatecaptcha.Input, validatecaptcha.Result]
	mailPublisher   form.MailPublisher
}

func New(
	log logging.Logger,
	formRepository form.Repository,
	validateCaptcha services.Service[validatecaptcha.Input, validatecaptcha.Result],
	mailPublisher form.MailPublisher,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if formRepository == nil {
		panic(e.NewNilArgumentError("formRepository"))
	}
	if validateCaptcha == nil {
		panic(e.NewNilArgumentError("validateCaptcha"))
	}
	if mailPublisher == nil {
		panic(e.NewNilArgumentError("mailPublisher"))
	}
	return &service{
		log:             log,
		formRepository:  formRepository,
		validateCaptcha: validateCaptcha,
		mailPublisher:   mailPublisher,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	mail, err := s.buildMail(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, form.ErrFormDoesNotExist), errors.Is(err, form.ErrFieldDoesNotExist):
			s.log.Info(ctx, "Invalid mail submitted.", logging.Entry("formID", input.FormID), logging.Entry("err", err))
		default:
			logging.Error(ctx, s.log, err, logging.Entry("formID", input.FormID))
		}
		return result, err
	}
	result.Mail = mail

	validation, err := s.validateCaptcha.Run(ctx, validatecaptcha.Input{
		Mail:      mail,
		SessionID: input.SessionID,
		Action:    input.Action,
	})
	if err != nil {
		return result, err
	}
	if !validation.IsValid {
		return result, &InvalidCaptchaError{Errors: validation.Errors}
	}

	if input.Action != form.ActionCreate {
		s.log.Info(
			ctx,
			"Mail passed captcha validation.",
			logging.Entry("formID", mail.Form.ID),
			logging.Entry("action", input.Action),
		)
		return result, nil
	}

	if err := s.mailPublisher.PublishMail(ctx, mail); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("formID", mail.Form.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Mail has been successfully submitted.",
		logging.Entry("formID", mail.Form.ID),
		logging.Entry("answers", len(mail.Answers)),
	)
	result.IsPublished = true
	return result, nil
}

func (s *service) buildMail(ctx context.Context, input Input) (mail form.Mail, err error) {
	f, err := s.formRepository.GetByID(ctx, input.FormID)
	if err != nil {
		return mail, err
	}
	fields, err := s.formRepository.ListFields(ctx, input.FormID)
	if err != nil {
		return mail, err
	}
	fieldByID := make(map[form.FieldID]form.Field, len(fields))
	for _, field := range fields {
		fieldByID[field.ID] = field
	}

	mail = form.Mail{Form: f, Answers: make([]form.Answer, 0, len(input.Answers))}
	for _, answer := range input.Answers {
		field, ok := fieldByID[answer.FieldID]
		if !ok {
			return mail, fmt.Errorf("%w: %d", form.ErrFieldDoesNotExist, answer.FieldID)
		}
		mail.Answers = append(mail.Answers, form.Answer{Field: field, Value: answer.Value})
	}
	return mail, nil
}
