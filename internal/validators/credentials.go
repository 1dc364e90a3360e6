package validators

import (
	"context"
	"regexp"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// Field names accepted by [CredentialPolicy.Validate] for scoped checks.
const (
	FieldEmail    = "email"
	FieldName     = "name"
	FieldRole     = "role"
	FieldPassword = "password"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// emailPattern is a pragmatic check, not a full RFC 5322 grammar: one "@",
// a non-empty local part and a dotted domain.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CredentialPolicy validates registration payloads and bare passwords
// against the account policy. It accepts a [models.RegisterRequest]
// (optionally scoped to named fields) or a plain password string.
type CredentialPolicy struct{}

// NewCredentialPolicy constructs the policy validator.
func NewCredentialPolicy() *CredentialPolicy {
	return &CredentialPolicy{}
}

// Validate implements [Validator].
func (v *CredentialPolicy) Validate(_ context.Context, value any, fields ...string) error {
	switch input := value.(type) {
	case models.RegisterRequest:
		return v.validateRegistration(input, fields...)
	case string:
		return v.validatePassword(input)
	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialPolicy) validateRegistration(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldName, FieldRole, FieldPassword}
	}

	for _, field := range fields {
		switch field {
		case FieldEmail:
			if !emailPattern.MatchString(req.Email) {
				return ErrInvalidEmail
			}
		case FieldName:
			if req.Name == "" {
				return ErrEmptyName
			}
		case FieldRole:
			if !req.Role.Valid() {
				return ErrUnknownRole
			}
		case FieldPassword:
			if err := v.validatePassword(req.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialPolicy) validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordLong
	}
	return nil
}
