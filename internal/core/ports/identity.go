package ports

import "context"

// IdentityVerifier turns a bearer credential into a stable user identifier.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (userID string, err error)
}
