package captcha

import (
	"context"
	"formcaptcha/internal/core/domain/form"
	"formcaptcha/internal/core/domain/session"
)

type ValidCodeCall struct {
	SessionID      session.ID
	Value          string
	Field          form.Field
	ClearOnSuccess bool
}

type FakeCalculatingCaptcha struct {
	IsValid bool
	Calls   []ValidCodeCall
}

func NewFakeCalculatingCaptcha(isValid bool) *FakeCalculatingCaptcha {
	return &FakeCalculatingCaptcha{IsValid: isValid}
}

func (c *FakeCalculatingCaptcha) ValidCode(
	ctx context.Context,
	sessionID session.ID,
	value string,
	field form.Field,
	clearOnSuccess bool,
) bool {
	c.Calls = append(c.Calls, ValidCodeCall{
		SessionID:      sessionID,
		Value:          value,
		Field:          field,
		ClearOnSuccess: clearOnSuccess,
	})
	return c.IsValid
}

type FakeVerifier struct {
	Results map[string]bool
	Inputs  []VerifyInput
}

// NewFakeVerifier accepts only the passed values.
func NewFakeVerifier(validValues ...string) *FakeVerifier {
	results := make(map[string]bool, len(validValues))
	for _, value := range validValues {
		results[value] = true
	}
	return &FakeVerifier{Results: results}
}

func (v *FakeVerifier) Verify(ctx context.Context, input VerifyInput) bool {
	v.Inputs = append(v.Inputs, input)
	return v.Results[input.Value]
}

type FakeChallengeIssuer struct {
	Challenge Challenge
	Error     error
	Issued    []form.Field
}

func NewFakeChallengeIssuer(challenge Challenge) *FakeChallengeIssuer {
	return &FakeChallengeIssuer{Challenge: challenge}
}

func (i *FakeChallengeIssuer) Issue(ctx context.Context, sessionID session.ID, field form.Field) (Challenge, error) {
	if i.Error != nil {
		return Challenge{}, i.Error
	}
	i.Issued = append(i.Issued, field)
	return i.Challenge, nil
}
