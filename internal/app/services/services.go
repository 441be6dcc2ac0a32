package services

import (
	"formcaptcha/internal/app/deps"
	drl "formcaptcha/internal/core/domain/rate_limiter"
	"formcaptcha/internal/core/services"
	issuecaptcha "formcaptcha/internal/core/services/issue_captcha"
	ratelimiting "formcaptcha/internal/core/services/rate_limiting"
	submitmail "formcaptcha/internal/core/services/submit_mail"
	validatecaptcha "formcaptcha/internal/core/services/validate_captcha"
)

const ISSUE_CAPTCHA_PER_HOUR = 60

type Services struct {
	ValidateCaptcha services.Service[validatecaptcha.Input, validatecaptcha.Result]
	SubmitMail      services.Service[submitmail.Input, submitmail.Result]
	IssueCaptcha    services.Service[issuecaptcha.Input, issuecaptcha.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.ValidateCaptcha = validatecaptcha.New(
		deps.Logger,
		deps.FormRepository,
		deps.CaptchaVerifier,
	)
	s.SubmitMail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.PerMinute(deps.Config.SubmitRateLimitPerMinute),
		submitmail.New(
			deps.Logger,
			deps.FormRepository,
			s.ValidateCaptcha,
			deps.MailPublisher,
		),
	)
	s.IssueCaptcha = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.PerHour(ISSUE_CAPTCHA_PER_HOUR),
		issuecaptcha.New(
			deps.Logger,
			deps.FormRepository,
			deps.ChallengeIssuer,
		),
	)

	return s
}
