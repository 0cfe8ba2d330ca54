// Package tenancy carries the active tenant through a request's lifetime.
//
// The tenant id rides on the request context.Context, so every goroutine
// spawned with that context observes the same value and concurrent requests
// never see each other's tenant. It is established exactly once per request,
// by the tenant guard, and read-only afterwards.
package tenancy

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey struct{}

// WithTenant binds tenantID to the context for the rest of the request.
func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, tenantID)
}

// TenantID returns the tenant bound to ctx, if any.
func TenantID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Tenant hint sources, in priority order.
const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderTenant   = "X-Tenant"
	QueryTenant    = "tenant"
)

// ResolveHint extracts the advisory tenant hint from the request. It is
// never trusted for authorization by itself; the tenant guard reconciles it
// against the token's tenant claim. Returns "" when absent.
func ResolveHint(r *http.Request) string {
	candidate := r.Header.Get(HeaderTenantID)
	if candidate == "" {
		candidate = r.Header.Get(HeaderTenant)
	}
	if candidate == "" {
		candidate = r.URL.Query().Get(QueryTenant)
	}
	return strings.TrimSpace(candidate)
}
