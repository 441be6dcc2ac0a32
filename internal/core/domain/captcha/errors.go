package captcha

import (
	"errors"
	c "formcaptcha/internal/core/domain/common"
	"formcaptcha/internal/core/domain/form"
)

var (
	ErrInvalidCaptcha     = errors.New("invalid captcha")
	ErrFieldIsNotCaptcha  = errors.New("field is not a captcha field")
	ErrSessionIsNotPassed = errors.New("session is not passed")
)

type ErrorCode string

const (
	// Captcha answer is present but does not match the challenge.
	ErrorCodeMismatch = ErrorCode("captcha")
	// Captcha answer is absent from the submission.
	ErrorCodeMissing = ErrorCode("0")
)

type Error struct {
	Field c.Optional[form.Field]
	Code  ErrorCode
}

// Errors accumulates validation errors, it starts valid.
type Errors struct {
	isInvalid bool
	list      []Error
}

func NewErrors() *Errors {
	return &Errors{}
}

func (e *Errors) Add(code ErrorCode, field c.Optional[form.Field]) {
	e.list = append(e.list, Error{Field: field, Code: code})
}

func (e *Errors) SetIsValid(isValid bool) {
	e.isInvalid = !isValid
}

func (e *Errors) IsValid() bool {
	return !e.isInvalid
}

func (e *Errors) List() []Error {
	list := make([]Error, len(e.list))
	copy(list, e.list)
	return list
}
