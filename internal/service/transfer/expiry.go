package transfer

import (
	"time"

	"garasiku/internal/domain"
)

// IsExpired is the expiry policy: a request is expired once the current
// instant is strictly past its deadline. Every state-changing operation
// evaluates this inside its own transaction, so the periodic sweep is a
// freshness optimization rather than a correctness requirement.
func IsExpired(req *domain.TransferRequest, now time.Time) bool {
	return now.After(req.ExpiresAt)
}
