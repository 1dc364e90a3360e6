package token

//go:generate mockgen -source=interfaces.go -destination=../mock/token_service_mock.go -package=mock

import (
	"time"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

// Service issues and verifies the signed, expiring tokens of the custody
// subsystem. Three token kinds exist, distinguished by an explicit purpose
// claim that is checked on every verification: session tokens authenticate
// requests, email-verify and password-reset tokens authorize exactly one
// out-of-band operation each.
type Service interface {
	// IssueSession signs a session token for the identity. The token
	// carries the subject, role and public-key claims and always expires;
	// the TTL is the configured session duration.
	IssueSession(identity models.Identity) (string, error)

	// IssuePurpose signs a single-operation token for the subject with the
	// configured TTL for that purpose (24h email-verify, 1h password-reset
	// by default). Returns the signed token and its expiry instant so the
	// caller can persist the supersession record.
	IssuePurpose(subjectID string, purpose models.TokenPurpose) (string, time.Time, error)

	// Verify checks signature and expiry and, when expectedPurpose is
	// non-empty, that the purpose claim matches. Failures are reported as
	// [ErrTokenExpired], [ErrSignatureInvalid], [ErrPurposeMismatch] or
	// [ErrTokenMalformed].
	Verify(tokenString string, expectedPurpose models.TokenPurpose) (models.Claims, error)
}
