package form

import "errors"

var (
	ErrFormDoesNotExist  = errors.New("form does not exist")
	ErrFieldDoesNotExist = errors.New("field does not exist")
)
