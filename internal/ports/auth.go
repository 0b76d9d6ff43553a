package ports

// Package ports defines interfaces (hexagonal ports) for identity and directory behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/target/dirsearch/internal/domain/auth"
)

// IdentityProvider creates interactive credentials. NewCredential does not prompt;
// the first Credential.Token call does.
type IdentityProvider interface {
	NewCredential(ctx context.Context) (Credential, error)
}

// Credential is an interactive login handle able to mint access tokens.
type Credential interface {
	// Token returns an access token for scopes. The first call runs the
	// interactive login; later calls refresh silently while the grant is valid.
	// Implementations must return promptly once ctx is done.
	Token(ctx context.Context, scopes []string) (domainauth.Token, error)
}
