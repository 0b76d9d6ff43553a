// Package mocks provides mock implementations of the ports for testing dirsearch.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	dir := mocks.NewMockDirectoryClient(ctrl)
//	dir.EXPECT().SearchPrincipals(gomock.Any(), gomock.Any(), gomock.Any()).Return(records, nil)
package mocks

// Generate mocks for every interface in internal/ports:
// Credential, DirectoryClient, IdentityProvider, LookupCache
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/target/dirsearch/internal/ports Credential,DirectoryClient,IdentityProvider,LookupCache
