package errors

import "errors"

var (
	ErrInvalid  = errors.New("invalid")
	ErrInternal = errors.New("internal")
)
