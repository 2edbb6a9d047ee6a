package middleware

import (
	"net/http"
	"strings"

	"bazaar/internal/auth"
	"bazaar/internal/httputil"
)

const sessionHeader = "X-Session-ID"

// Auth verifies the Bearer token on every request and stores the caller's
// user ID in the request context. Requests without a valid token are
// rejected with 401.
func Auth(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "missing or malformed Authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			r = httputil.WithUserID(r, claims.GetUserID())
			r = withSession(r)
			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth verifies the Bearer token when one is present but lets
// unauthenticated requests through with an empty user ID. Public surfaces
// (browsing published listings, recording contact clicks) use this so the
// same handlers can serve both visitors and signed-in users.
func OptionalAuth(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				claims, err := verifier.VerifyToken(token)
				if err != nil {
					// A present-but-invalid token is rejected rather than
					// silently downgraded to anonymous.
					httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
				r = httputil.WithUserID(r, claims.GetUserID())
			}

			r = withSession(r)
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func withSession(r *http.Request) *http.Request {
	if sid := r.Header.Get(sessionHeader); sid != "" {
		r = httputil.WithSessionID(r, sid)
	}
	return r
}
