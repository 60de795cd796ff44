// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// session ports. Hand-written doubles for the simpler ports live in mocks/auth.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	gateway := mocks.NewMockIdentityGateway(ctrl)
//	gateway.EXPECT().Authenticate(gomock.Any(), "test@example.com", gomock.Any()).Return(cred, nil)
package mocks

// Generate mock for IdentityGateway interface from internal/ports.
// This creates MockIdentityGateway with methods:
// Authenticate, FetchProfile
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=identity_gateway_mock.go github.com/justicia-ai/leia-auth/internal/ports IdentityGateway
