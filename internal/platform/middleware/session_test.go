// Copyright (c) 2026 Inkwell. All rights reserved.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-dev/inkwell/internal/platform/constants"
	"github.com/inkwell-dev/inkwell/internal/platform/ctxutil"
	"github.com/inkwell-dev/inkwell/internal/platform/sec"
)

// stubResolver implements SessionResolver with canned responses keyed by session key.
type stubResolver struct {
	principals map[string]*sec.Principal
	err        error
}

func (s *stubResolver) Resolve(_ context.Context, sessionKey string) (*sec.Principal, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.principals[sessionKey], nil
}

func memberPrincipal() *sec.Principal {
	return &sec.Principal{
		UserID:   "0191b2c3-0000-7000-8000-000000000001",
		Username: "inkling",
		Role:     sec.RoleMember,
	}
}

// echoPrincipal responds 200 and records whether a principal was present.
func echoPrincipal(captured **sec.Principal) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*captured = ctxutil.GetPrincipal(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

/*
TestSessions_NoCookie verifies that requests without a session cookie pass
through as anonymous instead of being rejected.
*/
func TestSessions_NoCookie(t *testing.T) {
	var captured *sec.Principal
	handler := Sessions(&stubResolver{})(echoPrincipal(&captured))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/posts", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, captured)
}

/*
TestSessions_ValidCookie verifies that a live session key resolves to a
principal and that the principal is visible to downstream handlers.
*/
func TestSessions_ValidCookie(t *testing.T) {
	resolver := &stubResolver{principals: map[string]*sec.Principal{
		"live-key": memberPrincipal(),
	}}

	var captured *sec.Principal
	handler := Sessions(resolver)(echoPrincipal(&captured))

	request := httptest.NewRequest(http.MethodGet, "/posts", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "live-key"})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "inkling", captured.Username)
	assert.Equal(t, sec.RoleMember, captured.Role)
}

/*
TestSessions_StaleCookie verifies that a cookie whose session expired (or
whose user was deleted) degrades to anonymous rather than failing.
*/
func TestSessions_StaleCookie(t *testing.T) {
	var captured *sec.Principal
	handler := Sessions(&stubResolver{})(echoPrincipal(&captured))

	request := httptest.NewRequest(http.MethodGet, "/posts", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "gone-key"})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, captured)
}

/*
TestSessions_ResolverFailure verifies that infrastructure errors abort the
request with HTTP 500 instead of silently downgrading to anonymous.
*/
func TestSessions_ResolverFailure(t *testing.T) {
	resolver := &stubResolver{err: errors.New("redis: connection refused")}

	var captured *sec.Principal
	handler := Sessions(resolver)(echoPrincipal(&captured))

	request := httptest.NewRequest(http.MethodGet, "/posts", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "any"})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Nil(t, captured)
}

/*
TestGuard verifies the pure admission decision: authenticated contexts are
admitted, anonymous contexts are denied with the login redirect target, and
repeated evaluation of the same context yields the same decision.
*/
func TestGuard(t *testing.T) {
	anonymous := context.Background()
	authenticated := ctxutil.WithPrincipal(context.Background(), memberPrincipal())

	denied := Guard(anonymous)
	assert.False(t, denied.Admit)
	assert.Equal(t, constants.LoginRedirectPath, denied.RedirectTarget)

	admitted := Guard(authenticated)
	assert.True(t, admitted.Admit)
	assert.Empty(t, admitted.RedirectTarget)

	// Idempotency: the decision is a pure function of the context.
	assert.Equal(t, denied, Guard(anonymous))
	assert.Equal(t, admitted, Guard(authenticated))
}

/*
TestRequireSession covers both denial modes: browser routes redirect to the
login page, API routes answer 401 JSON, and authenticated requests pass.
*/
func TestRequireSession(t *testing.T) {
	okHandler := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous browser request redirects to login", func(t *testing.T) {
		handler := RequireSession(true)(okHandler)

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/posts/new", nil))

		assert.Equal(t, http.StatusFound, recorder.Code)
		assert.Equal(t, constants.LoginRedirectPath, recorder.Header().Get("Location"))
	})

	t.Run("anonymous api request gets 401", func(t *testing.T) {
		handler := RequireSession(false)(okHandler)

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/posts", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("authenticated request passes", func(t *testing.T) {
		handler := RequireSession(true)(okHandler)

		request := httptest.NewRequest(http.MethodGet, "/posts/new", nil)
		request = request.WithContext(ctxutil.WithPrincipal(request.Context(), memberPrincipal()))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

/*
TestRequireRole verifies the role ladder: anonymous gets 401, an insufficient
role gets 403, and a sufficient role passes through.
*/
func TestRequireRole(t *testing.T) {
	okHandler := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	handler := RequireRole(sec.RoleAdmin)(okHandler)

	t.Run("anonymous gets 401", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/api/users/1", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("member gets 403", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodDelete, "/api/users/1", nil)
		request = request.WithContext(ctxutil.WithPrincipal(request.Context(), memberPrincipal()))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		admin := memberPrincipal()
		admin.Role = sec.RoleAdmin

		request := httptest.NewRequest(http.MethodDelete, "/api/users/1", nil)
		request = request.WithContext(ctxutil.WithPrincipal(request.Context(), admin))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
