// Package auth turns bearer tokens into the request actor.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/fleetledger/internal/actor"
	"github.com/MrJamesThe3rd/fleetledger/internal/http/respond"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role actor.Role `json:"role"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
}

func New(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Issue signs a token for subject with the given role.
func (a *Authenticator) Issue(subject string, role actor.Role, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) Parse(token string) (actor.Actor, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return actor.Actor{}, errors.Join(ErrInvalidToken, err)
	}

	switch claims.Role {
	case actor.RoleAdmin, actor.RoleUser:
	default:
		return actor.Actor{}, ErrInvalidToken
	}

	return actor.Actor{Subject: claims.Subject, Role: claims.Role}, nil
}

// Middleware attaches the bearer token's actor to the request. Requests
// without a token continue anonymously; a bad token is rejected with 401.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || len(a.secret) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "expected a bearer token"})
			return
		}

		who, err := a.Parse(strings.TrimSpace(token))
		if err != nil {
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": ErrInvalidToken.Error()})
			return
		}

		next.ServeHTTP(w, r.WithContext(actor.WithActor(r.Context(), who)))
	})
}
