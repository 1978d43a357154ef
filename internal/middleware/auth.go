package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/covid-tracker/pkg/logger"
)

// tokenVerifier is satisfied by *auth.Client.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type Middleware struct {
	AuthClient tokenVerifier
}

func NewMiddleware(client *auth.Client) *Middleware {
	m := &Middleware{}
	if client != nil {
		m.AuthClient = client
	}
	return m
}

type contextKey string

const UIDKey contextKey = "uid"

// FirebaseAuth requires a valid Firebase ID token and stores its uid in the
// context, on the request logger as well.
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}
		if m.AuthClient == nil {
			http.Error(w, "authentication unavailable", http.StatusUnauthorized)
			return
		}

		token, err := m.AuthClient.VerifyIDToken(r.Context(), parts[1])
		if err != nil {
			logger.FromContext(r.Context()).Warn("id token rejected", "error", err)
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		_, ctx := logger.With(r.Context(), "uid", token.UID)
		ctx = context.WithValue(ctx, UIDKey, token.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UID(ctx context.Context) string {
	uid, _ := ctx.Value(UIDKey).(string)
	return uid
}
