// Package net carries request scoped ids on contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyOrganizationID ctxKey = "organization_id"

// WithRequest annotates ctx with the request id and the organization being served
func WithRequest(ctx context.Context, reqID, organizationID string) context.Context {
	if reqID != "" {
		// stored under chi's key so chimw.GetReqID sees it too
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if organizationID != "" {
		ctx = context.WithValue(ctx, keyOrganizationID, organizationID)
	}
	return ctx
}

// RequestID returns the request id on ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// OrganizationID returns the organization id on ctx, or ""
func OrganizationID(ctx context.Context) string {
	v, _ := ctx.Value(keyOrganizationID).(string)
	return v
}
