// Package noop provides an authenticator that admits every request under
// a fixed identity. It backs rate limiting when auth is disabled and
// serves as a permissive voter in development chains.
package noop

import (
	"context"
	"net/http"

	"github.com/rhuss/stepsort/pkg/auth"
)

// Authenticator votes Yes for every request. Zero fields fall back to
// auth.AnonymousSubject and auth.DefaultTier.
type Authenticator struct {
	Subject     string
	ServiceTier string
}

func (a *Authenticator) Authenticate(_ context.Context, _ *http.Request) auth.AuthResult {
	id := &auth.Identity{Subject: a.Subject, ServiceTier: a.ServiceTier}
	if id.Subject == "" {
		id.Subject = auth.AnonymousSubject
	}
	if id.ServiceTier == "" {
		id.ServiceTier = auth.DefaultTier
	}
	return auth.AuthResult{Decision: auth.Yes, Identity: id}
}
