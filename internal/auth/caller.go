package auth

import "context"

// Caller is the identity on whose behalf a core operation runs. The zero value
// is an anonymous caller.
type Caller struct {
	ID   int64
	Role Role
}

// Authenticated reports whether the caller carries a resolvable identity.
func (c Caller) Authenticated() bool {
	return c.ID > 0 && c.Role.Valid()
}

// CanManage reports whether the caller may mutate a record owned by ownerID.
func (c Caller) CanManage(ownerID int64) bool {
	if !c.Authenticated() {
		return false
	}

	switch c.Role {
	case RoleAdmin:
		return true
	case RoleUser:
		return c.ID == ownerID
	default:
		return false
	}
}

type callerKey struct{}

// ContextWithCaller attaches a verified caller to ctx. Only the transport layer
// uses this; services receive the caller as an explicit argument.
func ContextWithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the caller attached to ctx, or the anonymous caller.
func CallerFromContext(ctx context.Context) Caller {
	if c, ok := ctx.Value(callerKey{}).(Caller); ok {
		return c
	}

	return Caller{}
}
