package domain

import "errors"

var (
	ErrNotFound          = errors.New("project not found")
	ErrUnknownSection    = errors.New("unknown section")
	ErrInvalidComplexity = errors.New("complexity must be Low, Medium or High")
)
