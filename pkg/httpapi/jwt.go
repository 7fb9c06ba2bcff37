package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const userKeyCtx ctxKey = "user_key"

const tokenLifetime = 30 * 24 * time.Hour

// IssueUserToken signs an HS256 token carrying the user key in the subject
// claim. Companion apps exchange it for access to the cycle endpoints.
func IssueUserToken(secret, userKey string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userKey,
		"exp": time.Now().Add(tokenLifetime).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// auth validates the Bearer token and stores the user key in the request
// context for userKeyFrom.
func auth(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		t, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !t.Valid {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		sub, err := t.Claims.GetSubject()
		if err != nil || sub == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), userKeyCtx, sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userKeyFrom(r *http.Request) string {
	key, _ := r.Context().Value(userKeyCtx).(string)
	return key
}
