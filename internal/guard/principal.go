package guard

import "context"

// Principal is the authenticated actor a session token resolves to. A nil
// *Principal is the anonymous caller.
type Principal struct {
	ID    string
	Name  string
	Email string
}

// id returns the principal's id, or the empty string for anonymous callers.
// Ownership comparisons treat the two the same way.
func (p *Principal) id() string {
	if p == nil {
		return ""
	}

	return p.ID
}

// idPtr returns the principal's id for audit attribution, nil when anonymous.
func (p *Principal) idPtr() *string {
	if p == nil {
		return nil
	}

	id := p.ID

	return &id
}

// Resolver looks up the current principal for a call. It runs fresh on every
// guarded operation; (nil, nil) means anonymous.
type Resolver func(ctx context.Context) (*Principal, error)

type principalKey struct{}

// WithPrincipal returns a context carrying the given principal. The auth
// middleware installs it once the session token has been resolved.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext is the default Resolver: it reads the principal the auth
// middleware stored in the request context. Absent value means anonymous.
func FromContext(ctx context.Context) (*Principal, error) {
	p, _ := ctx.Value(principalKey{}).(*Principal)

	return p, nil
}
