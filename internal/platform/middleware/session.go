// Copyright (c) 2026 Inkwell. All rights reserved.

// Session middleware: cookie-based identity resolution and route guarding.
//
// # Architecture
//
// The middleware chain splits authentication into two independent stages:
//
//  1. Sessions — best-effort identity resolution. Reads the session cookie,
//     asks the resolver for the principal it maps to, and injects it into
//     the request context. Never rejects a request: a missing, expired, or
//     dangling session simply leaves the request anonymous.
//  2. RequireSession / RequireRole — enforcement. Consult the pure [Guard]
//     decision and either admit the request or act on the denial.
//
// Keeping resolution and enforcement apart means public routes get identity
// for free (logging, personalization) while protected routes state their
// policy in the router, not in the handler.

package middleware

import (
	"context"
	"net/http"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
	"github.com/inkwell-dev/inkwell/internal/platform/constants"
	"github.com/inkwell-dev/inkwell/internal/platform/ctxutil"
	"github.com/inkwell-dev/inkwell/internal/platform/respond"
	"github.com/inkwell-dev/inkwell/internal/platform/sec"
)

// SessionResolver turns an opaque session key into a principal.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject stubs during unit
// testing and avoiding an import cycle with the auth package.
//
// # Contract
//
//   - (principal, nil): the key maps to a live session and an existing user.
//   - (nil, nil): the session is unknown, expired, or its user was deleted.
//     The request proceeds as anonymous.
//   - (nil, err): infrastructure failure (store unreachable, query error).
type SessionResolver interface {
	Resolve(ctx context.Context, sessionKey string) (*sec.Principal, error)
}

// Sessions resolves the session cookie into a context principal.
//
// # Flow
//  1. Read the session cookie. Absent cookie means anonymous; proceed.
//  2. Resolve the opaque key through the [SessionResolver].
//  3. A nil principal (expired session, deleted user) also proceeds as
//     anonymous — stale cookies are not an error condition.
//  4. Resolver infrastructure errors abort with HTTP 500; we cannot tell
//     whether the caller is authenticated, so we refuse to guess.
//  5. Inject [*sec.Principal] into the request context for downstream use.
func Sessions(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Anonymous Access ───────────────────────────────────────────
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Session Resolution ─────────────────────────────────────────
			principal, err := resolver.Resolve(request.Context(), cookie.Value)
			if err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}

			// ── 3. Stale Cookie ───────────────────────────────────────────────
			if principal == nil {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Route Guarding

// Decision is the outcome of a guard check.
//
// A denial always carries the redirect target for browser-facing routes;
// API-facing wrappers are free to ignore it and answer 401 instead.
type Decision struct {
	Admit          bool
	RedirectTarget string
}

// Guard decides whether the request context holds an authenticated principal.
//
// It is a pure function of the context: it performs no I/O, mutates nothing,
// and returns the same decision every time for the same context. Enforcement
// (redirect, 401, role checks) belongs to the wrappers below.
func Guard(ctx context.Context) Decision {
	if ctxutil.GetPrincipal(ctx) != nil {
		return Decision{Admit: true}
	}
	return Decision{Admit: false, RedirectTarget: constants.LoginRedirectPath}
}

// RequireSession blocks anonymous requests.
//
// # Usage
//
// Must be registered in the router AFTER [Sessions].
//
// # Behavior
//
// The denial response depends on redirectToLogin:
//   - true: HTTP 302 to the guard's redirect target, for routes a browser
//     navigates to directly.
//   - false: HTTP 401 with a JSON error, for API routes consumed by clients.
func RequireSession(redirectToLogin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			decision := Guard(request.Context())
			if !decision.Admit {
				if redirectToLogin {
					http.Redirect(writer, request, decision.RedirectTarget, http.StatusFound)
					return
				}
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// RequireRole blocks requests if the session principal lacks the required role.
//
// # Usage
//
// Must be registered in the router AFTER [Sessions]. It automatically implies
// [RequireSession] so you don't need to mount both.
//
// # Flow
//  1. Consult [Guard] (implies the session check).
//  2. Check if the principal's role meets or exceeds the target role using
//     [sec.UserRole.AtLeast].
//  3. If insufficient, abort with HTTP 403 Forbidden.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Authentication Check ───────────────────────────────────────
			if decision := Guard(request.Context()); !decision.Admit {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			principal := ctxutil.GetPrincipal(request.Context())
			if !principal.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
