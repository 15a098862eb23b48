package models

import "errors"

var (
	ErrMissingText        = errors.New("user_input is required")
	ErrInvalidContentType = errors.New("unsupported content type")
	ErrInvalidRequestType = errors.New("unsupported request type")
)
