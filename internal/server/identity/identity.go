// Package identity carries the acting identity through store operations.
//
// There is no authentication in this deployment: a single built-in
// administrator performs every action. The actor is still passed explicitly
// so that the contract never assumes a singleton, and so audit logging has a
// subject to attach to.
package identity

import "context"

// Identity describes who is performing an operation.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Admin returns the built-in administrator identity.
func Admin() Identity {
	return Identity{
		ID:    "5d0b1b5e-0000-4000-8000-000000000001",
		Name:  "Admin User",
		Email: "admin@fortress.com",
		Role:  "Admin",
	}
}

type contextKey struct{}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the identity from the context, if present.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
