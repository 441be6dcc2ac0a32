package response

import "formcaptcha/internal/core/domain/captcha"

type CaptchaError struct {
	FieldID *int64 `json:"field_id"`
	Code    string `json:"code"`
}

func (e *CaptchaError) FromDomainError(err captcha.Error) {
	e.Code = string(err.Code)
	e.FieldID = nil
	if err.Field.IsPresent {
		fieldID := int64(err.Field.Value.ID)
		e.FieldID = &fieldID
	}
}

func CaptchaErrors(errs []captcha.Error) []CaptchaError {
	result := make([]CaptchaError, len(errs))
	for i, err := range errs {
		result[i].FromDomainError(err)
	}
	return result
}

type Challenge struct {
	Mode  string `json:"mode"`
	Image string `json:"image"`
}

func (c *Challenge) FromDomainChallenge(challenge captcha.Challenge) {
	c.Mode = challenge.Mode.String()
	c.Image = challenge.Image
}
