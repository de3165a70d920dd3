package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleetledger/internal/actor"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/auth"
)

const secret = "test-secret"

func whoami(t *testing.T, a *auth.Authenticator, header string) (*httptest.ResponseRecorder, actor.Actor) {
	t.Helper()

	var seen actor.Actor

	h := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = actor.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec, seen
}

func TestMiddleware(t *testing.T) {
	a := auth.New(secret)

	admin, err := a.Issue("ana", actor.RoleAdmin, time.Hour)
	require.NoError(t, err)

	expired, err := a.Issue("ana", actor.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	forged, err := auth.New("other-secret").Issue("ana", actor.RoleAdmin, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
		want     actor.Actor
	}{
		{name: "anonymous", wantCode: http.StatusNoContent},
		{name: "admin", header: "Bearer " + admin, wantCode: http.StatusNoContent, want: actor.Actor{Subject: "ana", Role: actor.RoleAdmin}},
		{name: "expired", header: "Bearer " + expired, wantCode: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + forged, wantCode: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic YWRtaW46YWRtaW4=", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, got := whoami(t, a, tt.header)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_RejectsUnknownRole(t *testing.T) {
	a := auth.New(secret)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Role: "Root",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = a.Parse(token)
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))
}

func TestMiddleware_NoSecret(t *testing.T) {
	rec, got := whoami(t, auth.New(""), "Bearer whatever")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, got.IsAdmin())
}
