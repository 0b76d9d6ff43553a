package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/dirsearch/internal/domain/auth"
	"github.com/target/dirsearch/internal/domain/directory"
	"github.com/target/dirsearch/internal/mocks"
	fakes "github.com/target/dirsearch/internal/mocks/auth"
	"github.com/target/dirsearch/internal/observability/statsd"
	"go.uber.org/mock/gomock"
)

func TestCachingDirectory_ServesRepeatLookupsFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockDirectoryClient(ctrl)
	cache := fakes.NewMemoryLookupCache()
	rec := &statsd.Recorder{}
	dir := NewCachingDirectory(CachingDirectoryOptions{Next: next, Cache: cache, Namespace: "contoso", Metrics: rec})

	filter := directory.PrincipalPrefixFilter("jane")
	next.EXPECT().SearchPrincipals(gomock.Any(), gomock.Any(), filter).Return(principals(2), nil).Times(1)

	ctx := context.Background()
	tok := domainauth.Token{Value: "t"}
	first, err := dir.SearchPrincipals(ctx, tok, filter)
	require.NoError(t, err)
	second, err := dir.SearchPrincipals(ctx, tok, filter)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())

	results := rec.Named("directory.cache")
	require.Len(t, results, 2)
	assert.Equal(t, "miss", results[0].Tags["result"])
	assert.Equal(t, "hit", results[1].Tags["result"])
}

func TestCachingDirectory_KeysAreScopedByKindAndNamespace(t *testing.T) {
	a := NewCachingDirectory(CachingDirectoryOptions{Namespace: "contoso"})
	b := NewCachingDirectory(CachingDirectoryOptions{Namespace: "fabrikam"})

	assert.NotEqual(t, a.Key("devices", "x"), a.Key("principals", "x"))
	assert.NotEqual(t, a.Key("devices", "x"), b.Key("devices", "x"))
	assert.Equal(t, a.Key("devices", "x"), a.Key("devices", "x"))
	assert.Contains(t, a.Key("devices", "x"), "dirsearch:lookup:contoso:devices:")
}

func TestCachingDirectory_DoesNotCacheErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockDirectoryClient(ctrl)
	cache := fakes.NewMemoryLookupCache()
	dir := NewCachingDirectory(CachingDirectoryOptions{Next: next, Cache: cache})

	boom := errors.New("throttled")
	next.EXPECT().SearchDevices(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := dir.SearchDevices(context.Background(), domainauth.Token{}, directory.DeviceSerialFilter("X"))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, cache.Len())
}

func TestCachingDirectory_CacheFailureFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockDirectoryClient(ctrl)
	cache := mocks.NewMockLookupCache(ctrl)
	dir := NewCachingDirectory(CachingDirectoryOptions{Next: next, Cache: cache, TTL: time.Minute})

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis down"))
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), time.Minute).Return(errors.New("redis down"))
	next.EXPECT().GetDevicesByOwner(gomock.Any(), gomock.Any(), "u1").
		Return([]directory.Record{device("LAPTOP-01", "ABC123", "u1")}, nil)

	got, err := dir.GetDevicesByOwner(context.Background(), domainauth.Token{}, "u1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCachingDirectory_PassesThroughSingleRecordCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockDirectoryClient(ctrl)
	dir := NewCachingDirectory(CachingDirectoryOptions{Next: next, Cache: fakes.NewMemoryLookupCache()})

	next.EXPECT().GetPrincipalByID(gomock.Any(), gomock.Any(), "u1").Return(principals(1)[0], nil).Times(2)

	for range 2 {
		_, err := dir.GetPrincipalByID(context.Background(), domainauth.Token{}, "u1")
		require.NoError(t, err)
	}
}
