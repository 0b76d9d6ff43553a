package ports

import (
	"context"
	"time"

	domainauth "github.com/target/dirsearch/internal/domain/auth"
	"github.com/target/dirsearch/internal/domain/directory"
)

// DirectoryClient performs the directory queries the search coordinator needs.
// Principal endpoints return KindPrincipal records and device endpoints return
// KindDevice records.
type DirectoryClient interface {
	// GetCallerProfile returns the signed-in user's own principal record.
	GetCallerProfile(ctx context.Context, token domainauth.Token) (directory.Record, error)

	// SearchPrincipals lists users matching filter.
	SearchPrincipals(ctx context.Context, token domainauth.Token, filter directory.Filter) ([]directory.Record, error)

	// SearchDevices lists managed devices matching filter.
	SearchDevices(ctx context.Context, token domainauth.Token, filter directory.Filter) ([]directory.Record, error)

	// GetPrincipalByID fetches a single user.
	GetPrincipalByID(ctx context.Context, token domainauth.Token, id string) (directory.Record, error)

	// GetDevicesByOwner lists managed devices registered to a user.
	GetDevicesByOwner(ctx context.Context, token domainauth.Token, ownerID string) ([]directory.Record, error)
}

// LookupCache stores lookup results keyed by an opaque string.
type LookupCache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, key string) (records []directory.Record, ok bool, err error)
	Set(ctx context.Context, key string, records []directory.Record, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
