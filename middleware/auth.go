package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"savorly/globals"
	"savorly/utils"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// The identity provider lives outside this service; it issues HS256 tokens
// carrying the user's email as a claim. These wrappers only consume them.

var errNoToken = errors.New("no bearer token")

// Authenticate rejects requests without a valid token and puts the user's
// email on the request context.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		email, err := emailFromRequest(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		ctx := context.WithValue(r.Context(), globals.UserEmailKey, email)
		next(w, r.WithContext(ctx), ps)
	}
}

// OptionalAuth attaches the user's email when a valid token is present and
// lets the request through either way.
func OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if email, err := emailFromRequest(r); err == nil {
			ctx := context.WithValue(r.Context(), globals.UserEmailKey, email)
			r = r.WithContext(ctx)
		}
		next(w, r, ps)
	}
}

func emailFromRequest(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", errNoToken
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", errors.New("token has no email claim")
	}
	return email, nil
}
