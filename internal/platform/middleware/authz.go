// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/cliplet/internal/platform/ctxutil"
	"github.com/taibuivan/cliplet/internal/platform/sec"
)

// # Authentication Contracts

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// UserLoader resolves a verified token subject into a live caller identity.
// Implementations must return an error for unknown or deactivated accounts.
type UserLoader interface {
	LoadActive(ctx context.Context, userID string) (*sec.Identity, error)
}

// # Authentication

/*
Authenticate resolves the caller identity from the Authorization header.

This middleware never rejects a request on its own. A missing, malformed,
or expired token simply leaves the request anonymous, so that public
endpoints can serve both guests and logged-in users from the same handler.
Protected endpoints layer [RequireAuth] on top.

Parameters:
  - verifier: TokenVerifier (JWT signature and claims validation)
  - users: UserLoader (live account lookup; filters deactivated users)
*/
func Authenticate(verifier TokenVerifier, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Extract the bearer token from the Authorization header
			tokenString := bearerToken(request)
			if tokenString == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Verify the token signature and registered claims
			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				// Invalid tokens degrade to anonymous access
				next.ServeHTTP(writer, request)
				return
			}

			// 3. Resolve the live account; deactivated users stay anonymous
			identity, err := users.LoadActive(request.Context(), claims.UserID)
			if err != nil || identity == nil {
				next.ServeHTTP(writer, request)
				return
			}

			// 4. Attach the caller identity to the request context
			ctx := ctxutil.WithAuthUser(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Authorization

// RequireAuth rejects anonymous requests with 401 Unauthorized.
// It must be mounted after [Authenticate].
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			if ctxutil.GetAuthUser(request.Context()) == nil {
				writeError(writer, http.StatusUnauthorized, "Authentication required")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireRole rejects callers below the given role level.
// Anonymous requests receive 401, authenticated but under-privileged
// callers receive 403.
func RequireRole(minimum sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			identity := ctxutil.GetAuthUser(request.Context())

			if identity == nil {
				writeError(writer, http.StatusUnauthorized, "Authentication required")
				return
			}

			if !identity.Role.AtLeast(minimum) {
				writeError(writer, http.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAdmin restricts the route to administrators.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(sec.RoleAdmin)
}

// # Helpers

// bearerToken extracts the raw token from "Authorization: Bearer <token>".
// Returns an empty string when the header is absent or malformed.
func bearerToken(request *http.Request) string {
	header := request.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
