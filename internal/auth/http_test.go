// Copyright (c) 2026 Inkwell. All rights reserved.

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-dev/inkwell/internal/platform/constants"
	"github.com/inkwell-dev/inkwell/internal/platform/middleware"
)

// newAuthServer mounts the auth routes behind the session middleware, the
// way the real server wires them, on top of in-memory storage.
func newAuthServer(t *testing.T) (*fixture, http.Handler) {
	t.Helper()
	f := newFixture(t)
	handler := NewHandler(f.service)

	router := middleware.Sessions(f.service)(handler.Routes())
	return f, router
}

func postJSON(t *testing.T, handler http.Handler, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

/*
TestHandler_RegisterLoginMe walks the full lifecycle over HTTP: register,
login (cookie issued), authenticated /me, logout (cookie cleared), and a
denied /me afterwards.
*/
func TestHandler_RegisterLoginMe(t *testing.T) {
	_, server := newAuthServer(t)

	// Register
	recorder := postJSON(t, server, "/register",
		`{"username":"inkling","email":"ink@example.com","password":"correct horse","display_name":"Ink"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "correct horse")
	assert.NotContains(t, recorder.Body.String(), "password_hash")

	// Login issues the session cookie
	recorder = postJSON(t, server, "/login", `{"login":"inkling","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	cookie := sessionCookie(t, recorder)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	// Authenticated /me
	request := httptest.NewRequest(http.MethodGet, "/me", nil)
	request.AddCookie(cookie)
	meRecorder := httptest.NewRecorder()
	server.ServeHTTP(meRecorder, request)
	require.Equal(t, http.StatusOK, meRecorder.Code)

	var envelope struct {
		Data struct {
			Username string `json:"username"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(meRecorder.Body.Bytes(), &envelope))
	assert.Equal(t, "inkling", envelope.Data.Username)

	// Logout clears the cookie and kills the session
	recorder = postJSON(t, server, "/logout", "", cookie)
	require.Equal(t, http.StatusNoContent, recorder.Code)
	cleared := sessionCookie(t, recorder)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// The old cookie no longer authenticates
	request = httptest.NewRequest(http.MethodGet, "/me", nil)
	request.AddCookie(cookie)
	meRecorder = httptest.NewRecorder()
	server.ServeHTTP(meRecorder, request)
	assert.Equal(t, http.StatusUnauthorized, meRecorder.Code)
}

/*
TestHandler_LoginRejection verifies wrong credentials come back as 401 with
the generic message for both failure shapes.
*/
func TestHandler_LoginRejection(t *testing.T) {
	_, server := newAuthServer(t)
	postJSON(t, server, "/register",
		`{"username":"inkling","email":"ink@example.com","password":"correct horse"}`)

	unknown := postJSON(t, server, "/login", `{"login":"ghost","password":"correct horse"}`)
	wrong := postJSON(t, server, "/login", `{"login":"inkling","password":"nope nope"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.JSONEq(t, unknown.Body.String(), wrong.Body.String())
}

/*
TestHandler_RegisterValidation verifies field-level validation failures
return 400 before the service is ever involved.
*/
func TestHandler_RegisterValidation(t *testing.T) {
	_, server := newAuthServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"username":`},
		{"short password", `{"username":"inkling","email":"ink@example.com","password":"short"}`},
		{"bad email", `{"username":"inkling","email":"not-an-email","password":"correct horse"}`},
		{"short username", `{"username":"ab","email":"ink@example.com","password":"correct horse"}`},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := postJSON(t, server, "/register", testCase.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

/*
TestHandler_LogoutWithoutSession verifies logout stays a 204 even with no
cookie at all.
*/
func TestHandler_LogoutWithoutSession(t *testing.T) {
	_, server := newAuthServer(t)

	recorder := postJSON(t, server, "/logout", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestHandler_ChangePassword verifies the authenticated credential rotation
flow over HTTP.
*/
func TestHandler_ChangePassword(t *testing.T) {
	_, server := newAuthServer(t)
	postJSON(t, server, "/register",
		`{"username":"inkling","email":"ink@example.com","password":"correct horse"}`)
	login := postJSON(t, server, "/login", `{"login":"inkling","password":"correct horse"}`)
	cookie := sessionCookie(t, login)

	// Anonymous attempt is denied.
	recorder := postJSON(t, server, "/change-password",
		`{"current_password":"correct horse","new_password":"fresh words 9"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Authenticated attempt succeeds.
	recorder = postJSON(t, server, "/change-password",
		`{"current_password":"correct horse","new_password":"fresh words 9"}`, cookie)
	require.Equal(t, http.StatusOK, recorder.Code)

	// The new password now logs in.
	recorder = postJSON(t, server, "/login", `{"login":"inkling","password":"fresh words 9"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
