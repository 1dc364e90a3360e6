package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail  = errors.New("invalid email address")
	ErrEmptyName     = errors.New("name is required")
	ErrUnknownRole   = errors.New("unknown role")
	ErrPasswordShort = errors.New("password must be at least 8 characters")
	ErrPasswordLong  = errors.New("password must be at most 128 characters")
)
